package state

import (
	"context"
	"fmt"

	"sprintsync/pkg/api"

	"github.com/rs/zerolog/log"
)

// Backend is the slice of the REST client the state layer depends on.
type Backend interface {
	ListTasks(ctx context.Context) ([]api.Task, error)
	CreateTask(ctx context.Context, draft api.TaskDraft) error
	UpdateTask(ctx context.Context, id int, draft api.TaskDraft) error
	ChangeStatus(ctx context.Context, id int, status string) error
	DeleteTask(ctx context.Context, id int) error
	DailyPlan(ctx context.Context) (api.Suggestion, error)
}

// Store holds the task collection shown by the UI and is its single source
// of truth; all mutation goes through these methods. Everything here runs
// on the UI event goroutine, so no locking is needed.
//
// Mutation failures are logged and otherwise swallowed: the collection is
// left as it was, nothing is rolled back or retried, and the caller only
// learns enough (a bool) to show a notice.
type Store struct {
	backend Backend
	tasks   []api.Task
}

// NewStore creates an empty task store.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Refresh replaces the whole collection with the server's, preserving the
// server's order. Duplicate ids are dropped (first occurrence wins) to keep
// the collection a set keyed by id. On failure the old collection stays.
func (s *Store) Refresh(ctx context.Context) error {
	tasks, err := s.backend.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("error refreshing tasks: %w", err)
	}

	seen := map[int]bool{}
	fresh := make([]api.Task, 0, len(tasks))

	for _, task := range tasks {
		if seen[task.ID] {
			continue
		}

		seen[task.ID] = true
		fresh = append(fresh, task)
	}

	s.tasks = fresh

	return nil
}

// Create sends the draft and then refetches the whole collection rather
// than inserting locally, so server-assigned fields (notably the id) are
// never guessed at.
func (s *Store) Create(ctx context.Context, draft api.TaskDraft) bool {
	if err := s.backend.CreateTask(ctx, draft); err != nil {
		log.Err(err).Str("title", draft.Title).Msg("error creating task")

		return false
	}

	s.refreshAfterMutation(ctx)

	return true
}

// Update overwrites the task with the given id, then refetches.
func (s *Store) Update(ctx context.Context, id int, draft api.TaskDraft) bool {
	if err := s.backend.UpdateTask(ctx, id, draft); err != nil {
		log.Err(err).Int("id", id).Msg("error updating task")

		return false
	}

	s.refreshAfterMutation(ctx)

	return true
}

// ChangeStatus is the one optimistic path: after the PATCH succeeds, the
// matching record is patched in place instead of refetching, since status
// moves are the highest-frequency interaction. There is no rollback.
func (s *Store) ChangeStatus(ctx context.Context, id int, status string) bool {
	if err := s.backend.ChangeStatus(ctx, id, status); err != nil {
		log.Warn().Err(err).Int("id", id).Str("status", status).Msg("error changing task status")

		return false
	}

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Status = status

			break
		}
	}

	return true
}

// Delete removes the task with the given id, then refetches. Confirmation
// is the caller's job; by the time this runs the user has already agreed.
func (s *Store) Delete(ctx context.Context, id int) bool {
	if err := s.backend.DeleteTask(ctx, id); err != nil {
		log.Err(err).Int("id", id).Msg("error deleting task")

		return false
	}

	s.refreshAfterMutation(ctx)

	return true
}

// Tasks returns the current collection in display order.
func (s *Store) Tasks() []api.Task {
	return s.tasks
}

// TaskAt returns a copy of the task at display position i, or nil when out
// of range.
func (s *Store) TaskAt(i int) *api.Task {
	if i < 0 || i >= len(s.tasks) {
		return nil
	}

	task := s.tasks[i]

	return &task
}

// Len returns the number of tasks held.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Clear drops the whole collection, e.g. on logout.
func (s *Store) Clear() {
	s.tasks = nil
}

func (s *Store) refreshAfterMutation(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		log.Err(err).Msg("error refreshing tasks after mutation")
	}
}
