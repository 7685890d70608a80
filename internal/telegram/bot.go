package telegram

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"tg-quiz-webapp/internal/domain"
)

const (
	cmdStart       = "start"
	quizButtonText = "🧠 Пройти квиз"
)

// The bot API library has no web_app button type; reply_markup is sent as
// JSON, so these mirror the Bot API objects.
type webAppInfo struct {
	URL string `json:"url"`
}

type webAppButton struct {
	Text   string     `json:"text"`
	WebApp webAppInfo `json:"web_app"`
}

type inlineWebAppMarkup struct {
	InlineKeyboard [][]webAppButton `json:"inline_keyboard"`
}

// webAppKeyboard opens url inside the Telegram WebApp host rather than a browser.
func webAppKeyboard(text, url string) inlineWebAppMarkup {
	return inlineWebAppMarkup{
		InlineKeyboard: [][]webAppButton{{{Text: text, WebApp: webAppInfo{URL: url}}}},
	}
}

// StatsSource provides the per-user aggregate shown in the greeting.
type StatsSource interface {
	UserStats(ctx context.Context, userID int64) (domain.UserStats, error)
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot answers /start with a greeting, the user's stats and a button opening the quiz web app.
type Bot struct {
	api       *tgbotapi.BotAPI
	sender    sender
	stats     StatsSource
	webappURL string
}

func NewBot(token, webappURL string, stats StatsSource) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}
	log.Printf("telegram: authorised on account %s", api.Self.UserName)
	return &Bot{api: api, sender: api, stats: stats, webappURL: webappURL}, nil
}

// Start polls for updates until ctx is canceled.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil {
				b.handleMessage(ctx, update.Message)
			}
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if !message.IsCommand() || message.Command() != cmdStart || message.From == nil {
		return
	}

	stats, err := b.stats.UserStats(ctx, message.From.ID)
	if err != nil {
		log.Printf("telegram: stats for user %d: %v", message.From.ID, err)
		stats = domain.UserStats{}
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, greeting(message.From.FirstName, stats))
	msg.ReplyMarkup = webAppKeyboard(quizButtonText, b.webappURL)
	if _, err := b.sender.Send(msg); err != nil {
		log.Printf("telegram: send greeting to chat %d: %v", message.Chat.ID, err)
	}
}

func greeting(firstName string, stats domain.UserStats) string {
	text := fmt.Sprintf("Привет, %s! 👋\n\nДобро пожаловать в квиз-бот! Проверь свои знания, ответив на вопросы.", firstName)
	if stats.TotalQuestions > 0 {
		text += fmt.Sprintf("\n\nТвоя статистика:\n📊 Вопросов отвечено: %d\n✅ Правильных ответов: %d\n🎯 Точность: %v%%",
			stats.TotalQuestions, stats.CorrectAnswers, stats.Accuracy)
	}
	return text
}
