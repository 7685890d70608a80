package miniapp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"tg-quiz-webapp/internal/domain"
)

// DefaultUserID is used when the host supplies no user, e.g. outside the chat app.
const DefaultUserID int64 = 12345

var (
	// ErrNotLoaded is returned when the question list is not available.
	ErrNotLoaded = errors.New("questions not loaded")
	// ErrNotPresenting is returned when an answer is selected outside of question presentation.
	ErrNotPresenting = errors.New("no question awaiting an answer")
	// ErrNotAnswered is returned by Next before the current question has a verdict.
	ErrNotAnswered = errors.New("current question not answered")
	// ErrUnknownOption indicates the selected text is not an option of the current question.
	ErrUnknownOption = errors.New("option not offered by current question")
)

// Controller drives one quiz session: it loads questions, renders them,
// submits answers and reports the summary. It is meant to be called from a
// single event loop.
type Controller struct {
	api  QuizAPI
	view View
	host Host
	msgs Messages

	userID  int64
	session Session
}

func NewController(api QuizAPI, view View, host Host, msgs Messages) *Controller {
	return &Controller{
		api:     api,
		view:    view,
		host:    host,
		msgs:    msgs,
		userID:  DefaultUserID,
		session: Session{Phase: PhaseLoading},
	}
}

// Session returns the current session state.
func (c *Controller) Session() Session {
	return c.session
}

func (c *Controller) UserID() int64 {
	return c.userID
}

// Load performs the host handshake, fetches the questions and renders the first one.
func (c *Controller) Load(ctx context.Context) error {
	c.host.Expand()
	c.host.Ready()
	if id, ok := c.host.UserID(); ok {
		c.userID = id
	}
	c.host.SetMainButton(MainButton{Text: c.msgs.CloseButton, OnClick: c.host.Close})

	questions, err := c.api.Questions(ctx)
	if err != nil {
		log.Printf("load questions: %v", err)
		c.session = c.session.withPhase(PhaseFailed)
		c.view.RenderLoadError(c.msgs.LoadError)
		return fmt.Errorf("load questions: %w", err)
	}

	c.session = newSession(questions)
	return c.render(ctx)
}

// Select submits option as the answer to the current question.
func (c *Controller) Select(ctx context.Context, option string) error {
	if c.session.Phase != PhasePresenting {
		if c.session.Phase == PhaseLoading || c.session.Phase == PhaseFailed {
			return ErrNotLoaded
		}
		return ErrNotPresenting
	}
	question, _ := c.session.Current()
	if !hasOption(question, option) {
		return ErrUnknownOption
	}

	c.view.SetOptionsEnabled(false)
	c.session = c.session.withPhase(PhaseSubmitting)

	verdict, err := c.api.SubmitAnswer(ctx, domain.Submission{
		UserID:     c.userID,
		QuestionID: question.ID,
		UserAnswer: option,
	})
	if err != nil {
		log.Printf("submit answer to question %d: %v", question.ID, err)
		c.session = c.session.withPhase(PhasePresenting)
		c.host.Alert(c.msgs.SubmitError)
		c.view.SetOptionsEnabled(true)
		return fmt.Errorf("submit answer: %w", err)
	}

	c.session = c.session.withVerdict(domain.AnswerRecord{
		Question:      question.Question,
		UserAnswer:    option,
		CorrectAnswer: question.Answer,
		IsCorrect:     verdict.IsCorrect,
	})

	c.view.MarkOption(option, verdict.IsCorrect)
	result := ResultView{Correct: verdict.IsCorrect, Message: c.msgs.Correct}
	if !verdict.IsCorrect {
		for _, opt := range question.Options {
			if strings.EqualFold(opt, question.Answer) {
				c.view.MarkOption(opt, true)
			}
		}
		result.Message = c.msgs.Incorrect
		result.CorrectAnswer = question.Answer
	}
	c.view.RenderResult(result)
	return nil
}

// Next moves past an answered question, showing the summary after the last one.
func (c *Controller) Next(ctx context.Context) error {
	switch c.session.Phase {
	case PhaseAnswered:
	case PhaseLoading, PhaseFailed:
		return ErrNotLoaded
	default:
		return ErrNotAnswered
	}
	c.session = c.session.advance()
	return c.render(ctx)
}

// Restart clears progress and renders the first question again.
func (c *Controller) Restart(ctx context.Context) error {
	if c.session.Phase == PhaseLoading || c.session.Phase == PhaseFailed {
		return ErrNotLoaded
	}
	c.session = c.session.reset()
	return c.render(ctx)
}

// Close asks the host to close the mini-app.
func (c *Controller) Close() {
	c.host.Close()
}

func (c *Controller) render(ctx context.Context) error {
	question, ok := c.session.Current()
	if !ok {
		return c.finish(ctx)
	}
	total := c.session.Total()
	c.view.RenderQuestion(QuestionView{
		Number:   c.session.Index + 1,
		Total:    total,
		Progress: float64(c.session.Index+1) / float64(total) * 100,
		Text:     question.Question,
		Options:  append([]string(nil), question.Options...),
	})
	return nil
}

func (c *Controller) finish(ctx context.Context) error {
	correct, total := c.session.Correct, c.session.Total()
	percentage := Percentage(correct, total)
	card := Scorecard{
		Correct:    correct,
		Total:      total,
		Percentage: percentage,
		Tier:       c.msgs.TierFor(percentage),
	}

	stats, err := c.api.UserStats(ctx, c.userID)
	if err != nil {
		log.Printf("fetch stats for user %d: %v", c.userID, err)
		card.Degraded = true
	} else {
		card.Overall = &stats
	}

	c.session = c.session.withPhase(PhaseFinished)
	c.view.RenderSummary(card)
	c.host.Alert(c.msgs.finished(correct, total, percentage))
	return nil
}

func hasOption(q domain.Question, option string) bool {
	for _, opt := range q.Options {
		if opt == option {
			return true
		}
	}
	return false
}
