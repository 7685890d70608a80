package app

import (
	"sync"

	"tg-quiz-webapp/internal/domain"
)

// statsHub fans out per-user stats updates to live subscribers.
type statsHub struct {
	mu          sync.Mutex
	subscribers map[int64]map[chan domain.UserStats]struct{}
}

func newStatsHub() *statsHub {
	return &statsHub{subscribers: make(map[int64]map[chan domain.UserStats]struct{})}
}

func (h *statsHub) subscribe(userID int64, initial domain.UserStats) (<-chan domain.UserStats, func()) {
	ch := make(chan domain.UserStats, 8)
	ch <- initial

	h.mu.Lock()
	subs, ok := h.subscribers[userID]
	if !ok {
		subs = make(map[chan domain.UserStats]struct{})
		h.subscribers[userID] = subs
	}
	subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		subs := h.subscribers[userID]
		if _, ok := subs[ch]; !ok {
			return
		}
		delete(subs, ch)
		close(ch)
		if len(subs) == 0 {
			delete(h.subscribers, userID)
		}
	}
	return ch, cancel
}

func (h *statsHub) publish(userID int64, stats domain.UserStats) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers[userID] {
		select {
		case ch <- stats:
		default:
			// slow reader: drop the oldest update so only fresh stats are kept
			select {
			case <-ch:
			default:
			}
			ch <- stats
		}
	}
}
