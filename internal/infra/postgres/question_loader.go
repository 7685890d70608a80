package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"tg-quiz-webapp/internal/domain"
)

// QuestionLoader loads a question set from the questions table.
type QuestionLoader struct {
	pool *pgxpool.Pool
}

func NewQuestionLoader(pool *pgxpool.Pool) *QuestionLoader {
	return &QuestionLoader{pool: pool}
}

func (l *QuestionLoader) LoadQuestionSet(ctx context.Context, setID string) (domain.QuestionSet, error) {
	rows, err := l.pool.Query(ctx,
		`SELECT id, question, options, answer FROM questions WHERE set_id=$1 ORDER BY position, id`, setID)
	if err != nil {
		return domain.QuestionSet{}, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	set := domain.QuestionSet{ID: setID}
	for rows.Next() {
		var (
			q       domain.Question
			options []byte
		)
		if err := rows.Scan(&q.ID, &q.Question, &options, &q.Answer); err != nil {
			return domain.QuestionSet{}, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal(options, &q.Options); err != nil {
			return domain.QuestionSet{}, fmt.Errorf("unmarshal options of question %d: %w", q.ID, err)
		}
		set.Questions = append(set.Questions, q)
	}
	if err := rows.Err(); err != nil {
		return domain.QuestionSet{}, fmt.Errorf("load questions: %w", err)
	}
	if len(set.Questions) == 0 {
		return domain.QuestionSet{}, domain.ErrQuestionSetNotFound
	}
	return set, nil
}

// SeedQuestionSet upserts every question of a set, keeping list order in position.
func SeedQuestionSet(ctx context.Context, pool *pgxpool.Pool, set domain.QuestionSet) error {
	for i, q := range set.Questions {
		options, err := json.Marshal(q.Options)
		if err != nil {
			return err
		}
		_, err = pool.Exec(ctx, `
			INSERT INTO questions (set_id, id, position, question, options, answer)
			VALUES ($1, $2, $3, $4, $5::jsonb, $6)
			ON CONFLICT (set_id, id) DO UPDATE SET
				position = EXCLUDED.position,
				question = EXCLUDED.question,
				options  = EXCLUDED.options,
				answer   = EXCLUDED.answer`,
			set.ID, q.ID, i, q.Question, string(options), q.Answer)
		if err != nil {
			return fmt.Errorf("seed question %d: %w", q.ID, err)
		}
	}
	return nil
}
