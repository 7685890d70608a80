package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"tg-quiz-webapp/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS user_progress (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	question_id INTEGER NOT NULL,
	user_answer TEXT NOT NULL,
	is_correct BOOLEAN NOT NULL,
	answered_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS user_stats (
	user_id INTEGER PRIMARY KEY,
	total_questions INTEGER NOT NULL DEFAULT 0,
	correct_answers INTEGER NOT NULL DEFAULT 0,
	last_quiz_at INTEGER NOT NULL
);`

// ProgressStore keeps answers in a local SQLite file, for single-node deployments without Postgres.
type ProgressStore struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema exists.
func Open(path string) (*ProgressStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &ProgressStore{db: db}, nil
}

func (s *ProgressStore) Close() error {
	return s.db.Close()
}

func (s *ProgressStore) Record(ctx context.Context, entry domain.ProgressEntry) (domain.UserStats, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.UserStats{}, err
	}
	defer tx.Rollback()

	answeredAt := entry.AnsweredAt.Unix()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO user_progress (user_id, question_id, user_answer, is_correct, answered_at) VALUES (?, ?, ?, ?, ?)`,
		entry.UserID, entry.QuestionID, entry.UserAnswer, entry.IsCorrect, answeredAt); err != nil {
		return domain.UserStats{}, fmt.Errorf("insert progress: %w", err)
	}

	correct := 0
	if entry.IsCorrect {
		correct = 1
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO user_stats (user_id, total_questions, correct_answers, last_quiz_at)
		VALUES (?, 1, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			total_questions = total_questions + 1,
			correct_answers = correct_answers + excluded.correct_answers,
			last_quiz_at = excluded.last_quiz_at`,
		entry.UserID, correct, answeredAt); err != nil {
		return domain.UserStats{}, fmt.Errorf("update stats: %w", err)
	}

	stats, err := statsFrom(tx.QueryRowContext(ctx,
		`SELECT total_questions, correct_answers FROM user_stats WHERE user_id = ?`, entry.UserID))
	if err != nil {
		return domain.UserStats{}, err
	}
	return stats, tx.Commit()
}

func (s *ProgressStore) Stats(ctx context.Context, userID int64) (domain.UserStats, error) {
	return statsFrom(s.db.QueryRowContext(ctx,
		`SELECT total_questions, correct_answers FROM user_stats WHERE user_id = ?`, userID))
}

func statsFrom(row *sql.Row) (domain.UserStats, error) {
	var total, correct int
	err := row.Scan(&total, &correct)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewUserStats(0, 0), nil
	}
	if err != nil {
		return domain.UserStats{}, fmt.Errorf("load stats: %w", err)
	}
	return domain.NewUserStats(total, correct), nil
}
