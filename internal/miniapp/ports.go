package miniapp

import (
	"context"

	"tg-quiz-webapp/internal/domain"
)

// QuizAPI is the remote backend the mini-app talks to.
type QuizAPI interface {
	Questions(ctx context.Context) ([]domain.Question, error)
	SubmitAnswer(ctx context.Context, sub domain.Submission) (domain.Verdict, error)
	UserStats(ctx context.Context, userID int64) (domain.UserStats, error)
}

// View is the UI surface the controller renders onto.
type View interface {
	// RenderQuestion replaces the previous question, its option controls and
	// hides any result banner.
	RenderQuestion(q QuestionView)
	SetOptionsEnabled(enabled bool)
	MarkOption(option string, correct bool)
	RenderResult(r ResultView)
	RenderSummary(s Scorecard)
	RenderLoadError(message string)
}

// Host is the chat-platform container the mini-app runs in.
type Host interface {
	Expand()
	Ready()
	Alert(text string)
	Close()
	SetMainButton(b MainButton)
	// UserID returns the user identity supplied by the host, if any.
	UserID() (int64, bool)
}

// MainButton configures the host-level primary action button.
type MainButton struct {
	Text    string
	OnClick func()
}

type QuestionView struct {
	Number   int
	Total    int
	Progress float64 // percent, (index+1)/total*100
	Text     string
	Options  []string
}

type ResultView struct {
	Correct       bool
	Message       string
	CorrectAnswer string
}

// Scorecard is the final summary. Overall is nil when stats could not be fetched.
type Scorecard struct {
	Correct    int
	Total      int
	Percentage int
	Tier       Tier
	Overall    *domain.UserStats
	Degraded   bool
}
