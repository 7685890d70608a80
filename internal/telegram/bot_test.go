package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"tg-quiz-webapp/internal/domain"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
}

func (s *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		s.sent = append(s.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

type fakeStats struct {
	stats domain.UserStats
	err   error
}

func (f fakeStats) UserStats(context.Context, int64) (domain.UserStats, error) {
	return f.stats, f.err
}

func TestStartCommandSendsWebAppButton(t *testing.T) {
	out := &fakeSender{}
	bot := &Bot{sender: out, stats: fakeStats{stats: domain.NewUserStats(4, 3)}, webappURL: "https://quiz.example"}

	bot.handleMessage(context.Background(), startMessage(42, "Ann"))

	if len(out.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(out.sent))
	}
	msg := out.sent[0]
	if msg.ChatID != 42 {
		t.Fatalf("expected chat 42, got %d", msg.ChatID)
	}
	if !strings.Contains(msg.Text, "Привет, Ann!") || !strings.Contains(msg.Text, "🎯 Точность: 75%") {
		t.Fatalf("unexpected greeting %q", msg.Text)
	}

	raw, err := json.Marshal(msg.ReplyMarkup)
	if err != nil {
		t.Fatalf("marshal markup: %v", err)
	}
	var markup struct {
		InlineKeyboard [][]map[string]json.RawMessage `json:"inline_keyboard"`
	}
	if err := json.Unmarshal(raw, &markup); err != nil {
		t.Fatalf("unmarshal markup: %v", err)
	}
	if len(markup.InlineKeyboard) != 1 || len(markup.InlineKeyboard[0]) != 1 {
		t.Fatalf("expected one button, got %s", raw)
	}
	button := markup.InlineKeyboard[0][0]
	if _, ok := button["url"]; ok {
		t.Fatalf("expected web_app button, got plain url button %s", raw)
	}
	var webApp struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(button["web_app"], &webApp); err != nil || webApp.URL != "https://quiz.example" {
		t.Fatalf("expected web_app url, got %s", raw)
	}
}

func TestStartCommandWithoutStats(t *testing.T) {
	out := &fakeSender{}
	bot := &Bot{sender: out, stats: fakeStats{err: errors.New("db down")}, webappURL: "https://quiz.example"}

	bot.handleMessage(context.Background(), startMessage(1, "Bo"))

	if len(out.sent) != 1 || strings.Contains(out.sent[0].Text, "статистика") {
		t.Fatalf("expected greeting without stats, got %+v", out.sent)
	}
}

func TestIgnoresOtherMessages(t *testing.T) {
	out := &fakeSender{}
	bot := &Bot{sender: out, stats: fakeStats{}}

	bot.handleMessage(context.Background(), &tgbotapi.Message{
		Text: "hello",
		Chat: &tgbotapi.Chat{ID: 1},
		From: &tgbotapi.User{ID: 1},
	})
	if len(out.sent) != 0 {
		t.Fatalf("expected no reply, got %d", len(out.sent))
	}
}

func startMessage(chatID int64, firstName string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Text:     "/start",
		Chat:     &tgbotapi.Chat{ID: chatID},
		From:     &tgbotapi.User{ID: chatID, FirstName: firstName},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}},
	}
}
