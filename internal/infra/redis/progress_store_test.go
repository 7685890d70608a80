package redis

import (
	"context"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"tg-quiz-webapp/internal/domain"
)

func TestProgressStoreCountsAnswers(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewProgressStore(newClient(mr))

	for i, correct := range []bool{true, false, true} {
		if _, err := store.Record(ctx, domain.ProgressEntry{
			UserID:     12345,
			QuestionID: i + 1,
			UserAnswer: "x",
			IsCorrect:  correct,
			AnsweredAt: time.Now(),
		}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	stats, err := store.Stats(ctx, 12345)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalQuestions != 3 || stats.CorrectAnswers != 2 || stats.Accuracy != 66.7 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	entries, err := mr.List("user_progress:12345")
	if err != nil {
		t.Fatalf("list log: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 log entries, got %d", len(entries))
	}

	empty, err := store.Stats(ctx, 1)
	if err != nil {
		t.Fatalf("stats unknown user: %v", err)
	}
	if empty.TotalQuestions != 0 {
		t.Fatalf("expected zero stats, got %+v", empty)
	}
}

func TestProgressStoreRejectsCorruptCounters(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewProgressStore(newClient(mr))
	mr.HSet("user_stats:5", "total", "abc", "correct", "1")

	if _, err := store.Stats(context.Background(), 5); err == nil || !strings.Contains(err.Error(), "total") {
		t.Fatalf("expected corrupt counter error, got %v", err)
	}

	// a hash holding only the total still reads the missing field as zero
	mr.HSet("user_stats:6", "total", "2")
	stats, err := store.Stats(context.Background(), 6)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalQuestions != 2 || stats.CorrectAnswers != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}
