package memory

import (
	"context"
	"sync"

	"tg-quiz-webapp/internal/domain"
)

// ProgressStore is an in-memory implementation of app.ProgressStore.
type ProgressStore struct {
	mu      sync.RWMutex
	entries []domain.ProgressEntry
	totals  map[int64]counters
}

type counters struct {
	total   int
	correct int
}

func NewProgressStore() *ProgressStore {
	return &ProgressStore{totals: make(map[int64]counters)}
}

func (s *ProgressStore) Record(_ context.Context, entry domain.ProgressEntry) (domain.UserStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)
	c := s.totals[entry.UserID]
	c.total++
	if entry.IsCorrect {
		c.correct++
	}
	s.totals[entry.UserID] = c
	return domain.NewUserStats(c.total, c.correct), nil
}

func (s *ProgressStore) Stats(_ context.Context, userID int64) (domain.UserStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := s.totals[userID]
	return domain.NewUserStats(c.total, c.correct), nil
}

// Entries returns a copy of the answer log for a user.
func (s *ProgressStore) Entries(userID int64) []domain.ProgressEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.ProgressEntry
	for _, e := range s.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}
