package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tg-quiz-webapp/internal/domain"
)

// QuestionRepository loads question sets (from cache/backing store).
type QuestionRepository interface {
	GetQuestionSet(ctx context.Context, setID string) (domain.QuestionSet, error)
}

// ProgressStore abstracts where answers and per-user stats live (memory, Redis, Postgres, SQLite).
type ProgressStore interface {
	// Record appends an answer to the log and returns the updated stats.
	Record(ctx context.Context, entry domain.ProgressEntry) (domain.UserStats, error)
	Stats(ctx context.Context, userID int64) (domain.UserStats, error)
}

// QuizService contains the backend quiz use cases.
type QuizService struct {
	questions QuestionRepository
	progress  ProgressStore
	setID     string
	now       func() time.Time
	hub       *statsHub
}

func NewQuizService(questions QuestionRepository, progress ProgressStore, setID string) *QuizService {
	if setID == "" {
		setID = domain.DefaultQuestionSet().ID
	}
	return &QuizService{
		questions: questions,
		progress:  progress,
		setID:     setID,
		now:       time.Now,
		hub:       newStatsHub(),
	}
}

// Questions returns the ordered question list served to clients.
func (s *QuizService) Questions(ctx context.Context) ([]domain.Question, error) {
	set, err := s.questions.GetQuestionSet(ctx, s.setID)
	if err != nil {
		return nil, err
	}
	return set.Questions, nil
}

// SubmitAnswer judges a submission, stores it and pushes fresh stats to subscribers.
func (s *QuizService) SubmitAnswer(ctx context.Context, sub domain.Submission) (domain.Verdict, error) {
	if sub.UserID == 0 || sub.QuestionID == 0 {
		return domain.Verdict{}, domain.ErrInvalidSubmission
	}

	set, err := s.questions.GetQuestionSet(ctx, s.setID)
	if err != nil {
		return domain.Verdict{}, err
	}
	question, ok := findQuestion(set, sub.QuestionID)
	if !ok {
		return domain.Verdict{}, domain.ErrQuestionNotFound
	}

	answer := normalize(sub.UserAnswer)
	correctAnswer := normalize(question.Answer)
	isCorrect := answer == correctAnswer

	stats, err := s.progress.Record(ctx, domain.ProgressEntry{
		UserID:     sub.UserID,
		QuestionID: sub.QuestionID,
		UserAnswer: answer,
		IsCorrect:  isCorrect,
		AnsweredAt: s.now(),
	})
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("record answer: %w", err)
	}
	s.hub.publish(sub.UserID, stats)

	verdict := domain.Verdict{IsCorrect: isCorrect}
	if !isCorrect {
		verdict.CorrectAnswer = &correctAnswer
	}
	return verdict, nil
}

// UserStats returns the aggregate for a user; unknown users get zeros.
func (s *QuizService) UserStats(ctx context.Context, userID int64) (domain.UserStats, error) {
	return s.progress.Stats(ctx, userID)
}

// Subscribe returns a channel that receives stats updates for a user.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *QuizService) Subscribe(ctx context.Context, userID int64) (<-chan domain.UserStats, func(), error) {
	initial, err := s.progress.Stats(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := s.hub.subscribe(userID, initial)
	return ch, cancel, nil
}

func findQuestion(set domain.QuestionSet, id int) (domain.Question, bool) {
	for _, q := range set.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return domain.Question{}, false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
