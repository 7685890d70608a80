package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"tg-quiz-webapp/internal/domain"
)

// ProgressStore keeps per-user counters and an answer log in Redis.
// Counters: HINCRBY user_stats:{userID} total|correct
// Log:      RPUSH   user_progress:{userID} {json entry}
type ProgressStore struct {
	client *redis.Client
}

func NewProgressStore(client *redis.Client) *ProgressStore {
	return &ProgressStore{client: client}
}

type progressRecord struct {
	QuestionID int       `json:"question_id"`
	UserAnswer string    `json:"user_answer"`
	IsCorrect  bool      `json:"is_correct"`
	AnsweredAt time.Time `json:"answered_at"`
}

func (s *ProgressStore) Record(ctx context.Context, entry domain.ProgressEntry) (domain.UserStats, error) {
	raw, err := json.Marshal(progressRecord{
		QuestionID: entry.QuestionID,
		UserAnswer: entry.UserAnswer,
		IsCorrect:  entry.IsCorrect,
		AnsweredAt: entry.AnsweredAt,
	})
	if err != nil {
		return domain.UserStats{}, err
	}

	correct := 0
	if entry.IsCorrect {
		correct = 1
	}

	statsKey := s.statsKey(entry.UserID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, s.logKey(entry.UserID), raw)
	total := pipe.HIncrBy(ctx, statsKey, "total", 1)
	right := pipe.HIncrBy(ctx, statsKey, "correct", int64(correct))
	if _, err := pipe.Exec(ctx); err != nil {
		return domain.UserStats{}, err
	}
	return domain.NewUserStats(int(total.Val()), int(right.Val())), nil
}

func (s *ProgressStore) Stats(ctx context.Context, userID int64) (domain.UserStats, error) {
	values, err := s.client.HGetAll(ctx, s.statsKey(userID)).Result()
	if err != nil {
		return domain.UserStats{}, err
	}
	total, err := counter(values, "total")
	if err != nil {
		return domain.UserStats{}, fmt.Errorf("stats for user %d: %w", userID, err)
	}
	correct, err := counter(values, "correct")
	if err != nil {
		return domain.UserStats{}, fmt.Errorf("stats for user %d: %w", userID, err)
	}
	return domain.NewUserStats(total, correct), nil
}

// counter reads a hash field; a missing field counts as zero.
func counter(values map[string]string, field string) (int, error) {
	raw, ok := values[field]
	if !ok || raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("corrupt %s counter %q: %w", field, raw, err)
	}
	return n, nil
}

func (s *ProgressStore) statsKey(userID int64) string {
	return "user_stats:" + strconv.FormatInt(userID, 10)
}

func (s *ProgressStore) logKey(userID int64) string {
	return "user_progress:" + strconv.FormatInt(userID, 10)
}
