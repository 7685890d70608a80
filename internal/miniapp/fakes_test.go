package miniapp

import (
	"context"
	"errors"
	"strings"

	"tg-quiz-webapp/internal/domain"
)

var errBackend = errors.New("backend unavailable")

// fakeAPI judges answers locally and can be told to fail any endpoint.
type fakeAPI struct {
	questions   []domain.Question
	failLoad    bool
	failSubmit  bool
	failStats   bool
	submissions []domain.Submission
	statsCalls  int
}

func (a *fakeAPI) Questions(context.Context) ([]domain.Question, error) {
	if a.failLoad {
		return nil, errBackend
	}
	return a.questions, nil
}

func (a *fakeAPI) SubmitAnswer(_ context.Context, sub domain.Submission) (domain.Verdict, error) {
	if a.failSubmit {
		return domain.Verdict{}, errBackend
	}
	a.submissions = append(a.submissions, sub)
	for _, q := range a.questions {
		if q.ID == sub.QuestionID {
			return domain.Verdict{IsCorrect: strings.EqualFold(q.Answer, sub.UserAnswer)}, nil
		}
	}
	return domain.Verdict{}, domain.ErrQuestionNotFound
}

func (a *fakeAPI) UserStats(context.Context, int64) (domain.UserStats, error) {
	a.statsCalls++
	if a.failStats {
		return domain.UserStats{}, errBackend
	}
	return domain.UserStats{TotalQuestions: 10, CorrectAnswers: 7, Accuracy: 70}, nil
}

type fakeView struct {
	questions      []QuestionView
	results        []ResultView
	summaries      []Scorecard
	loadErrors     []string
	marks          map[string]bool
	optionsEnabled bool
	resultVisible  bool
}

func newFakeView() *fakeView {
	return &fakeView{marks: make(map[string]bool)}
}

func (v *fakeView) RenderQuestion(q QuestionView) {
	v.questions = append(v.questions, q)
	v.marks = make(map[string]bool)
	v.optionsEnabled = true
	v.resultVisible = false
}

func (v *fakeView) SetOptionsEnabled(enabled bool) { v.optionsEnabled = enabled }

func (v *fakeView) MarkOption(option string, correct bool) { v.marks[option] = correct }

func (v *fakeView) RenderResult(r ResultView) {
	v.results = append(v.results, r)
	v.resultVisible = true
}

func (v *fakeView) RenderSummary(s Scorecard) { v.summaries = append(v.summaries, s) }

func (v *fakeView) RenderLoadError(message string) { v.loadErrors = append(v.loadErrors, message) }

type fakeHost struct {
	expanded bool
	ready    bool
	closed   int
	alerts   []string
	button   MainButton
	userID   int64
	hasUser  bool
}

func (h *fakeHost) Expand()                    { h.expanded = true }
func (h *fakeHost) Ready()                     { h.ready = true }
func (h *fakeHost) Alert(text string)          { h.alerts = append(h.alerts, text) }
func (h *fakeHost) Close()                     { h.closed++ }
func (h *fakeHost) SetMainButton(b MainButton) { h.button = b }
func (h *fakeHost) UserID() (int64, bool)      { return h.userID, h.hasUser }
