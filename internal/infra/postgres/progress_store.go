package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"tg-quiz-webapp/internal/domain"
)

// ProgressStore writes the answer log and the per-user aggregate in one transaction.
type ProgressStore struct {
	pool *pgxpool.Pool
}

func NewProgressStore(pool *pgxpool.Pool) *ProgressStore {
	return &ProgressStore{pool: pool}
}

func (s *ProgressStore) Record(ctx context.Context, entry domain.ProgressEntry) (domain.UserStats, error) {
	correct := 0
	if entry.IsCorrect {
		correct = 1
	}

	var total, right int
	err := s.pool.BeginFunc(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_progress (user_id, question_id, user_answer, is_correct, answered_at) VALUES ($1, $2, $3, $4, $5)`,
			entry.UserID, entry.QuestionID, entry.UserAnswer, entry.IsCorrect, entry.AnsweredAt); err != nil {
			return fmt.Errorf("insert progress: %w", err)
		}
		return tx.QueryRow(ctx, `
			INSERT INTO user_stats (user_id, total_questions, correct_answers, last_quiz_at)
			VALUES ($1, 1, $2, $3)
			ON CONFLICT (user_id) DO UPDATE SET
				total_questions = user_stats.total_questions + 1,
				correct_answers = user_stats.correct_answers + $2,
				last_quiz_at = $3
			RETURNING total_questions, correct_answers`,
			entry.UserID, correct, entry.AnsweredAt).Scan(&total, &right)
	})
	if err != nil {
		return domain.UserStats{}, err
	}
	return domain.NewUserStats(total, right), nil
}

func (s *ProgressStore) Stats(ctx context.Context, userID int64) (domain.UserStats, error) {
	var total, correct int
	err := s.pool.QueryRow(ctx,
		`SELECT total_questions, correct_answers FROM user_stats WHERE user_id=$1`, userID).Scan(&total, &correct)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NewUserStats(0, 0), nil
	}
	if err != nil {
		return domain.UserStats{}, fmt.Errorf("load stats: %w", err)
	}
	return domain.NewUserStats(total, correct), nil
}
