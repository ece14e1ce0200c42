package state

import (
	"context"
	"sync"

	"sprintsync/pkg/api"

	"github.com/rs/zerolog/log"
)

// FallbackPlan is stored when the plan request fails, so the panel always
// has renderable content once a request has been made.
const FallbackPlan = "Could not generate a plan right now. Pick the oldest TO_DO task and start there."

// Planner holds at most one daily-plan suggestion. It is independent of the
// task collection. Unlike the task store it is touched from a worker
// goroutine while a request is in flight, so it carries its own lock.
type Planner struct {
	backend Backend

	mu         sync.Mutex
	loading    bool
	suggestion *api.Suggestion
}

// NewPlanner creates an empty planner.
func NewPlanner(backend Backend) *Planner {
	return &Planner{backend: backend}
}

// Request asks the backend for a daily plan and blocks until it settles.
// While one request is in flight further calls are ignored, whichever path
// they arrive through. The loading flag is cleared on every outcome.
func (p *Planner) Request(ctx context.Context) {
	p.mu.Lock()
	if p.loading {
		p.mu.Unlock()

		return
	}

	p.loading = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.loading = false
		p.mu.Unlock()
	}()

	suggestion, err := p.backend.DailyPlan(ctx)
	if err != nil {
		log.Err(err).Msg("error requesting daily plan")

		suggestion = api.Suggestion{Plan: FallbackPlan, EstimatedHours: 0}
	}

	p.mu.Lock()
	p.suggestion = &suggestion
	p.mu.Unlock()
}

// Loading reports whether a request is in flight.
func (p *Planner) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.loading
}

// Current returns a copy of the held suggestion, or nil when none is held.
func (p *Planner) Current() *api.Suggestion {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.suggestion == nil {
		return nil
	}

	suggestion := *p.suggestion

	return &suggestion
}

// Dismiss clears the suggestion. Dismissing with nothing held is a no-op.
func (p *Planner) Dismiss() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.suggestion = nil
}
