package session

import (
	"sync"
	"time"

	"crumbline-be/internal/checkout"
	"crumbline-be/internal/logger"
	"crumbline-be/internal/promo"

	"go.uber.org/zap"
)

// Registry owns one checkout flow per visitor session. Flows are created
// on first touch and reaped after sitting idle for the TTL; nothing about
// a session outlives it except orders already handed to the backend.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry

	backend checkout.OrderBackend
	promos  *promo.Table
	ttl     time.Duration
	stop    chan struct{}
}

type entry struct {
	flow     *checkout.Flow
	lastSeen time.Time
}

func NewRegistry(backend checkout.OrderBackend, promos *promo.Table, ttl time.Duration) *Registry {
	r := &Registry{
		sessions: make(map[string]*entry),
		backend:  backend,
		promos:   promos,
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	go r.sweep()
	return r
}

// GetOrCreate returns the session's flow, constructing a fresh one for
// unseen ids, and refreshes the idle timer.
func (r *Registry) GetOrCreate(sessionID string) *checkout.Flow {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[sessionID]
	if !ok {
		e = &entry{flow: checkout.NewFlow(sessionID, r.backend, r.promos)}
		r.sessions[sessionID] = e
	}
	e.lastSeen = time.Now()
	return e.flow
}

// Reset discards the session's state entirely; the next touch starts from
// an initial-load flow.
func (r *Registry) Reset(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Close stops the background sweeper.
func (r *Registry) Close() {
	close(r.stop)
}

func (r *Registry) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.reapIdle()
		}
	}
}

func (r *Registry) reapIdle() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, e := range r.sessions {
		if time.Since(e.lastSeen) <= r.ttl {
			continue
		}
		// never reap an order mid-flight; the next sweep gets it
		if e.flow.State() == checkout.StateProcessing {
			continue
		}
		delete(r.sessions, id)
		logger.L().Debug("session reaped", zap.String("session_id", id))
	}
}
