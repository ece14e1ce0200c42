package api

// These constants refer to the task statuses supported by the backend.
const (
	StatusToDo       = "TO_DO"
	StatusInProgress = "IN_PROGRESS"
	StatusDone       = "DONE"
)

// Statuses returns the supported statuses in board order.
func Statuses() []string {
	return []string{StatusToDo, StatusInProgress, StatusDone}
}

// Task is one unit of tracked work. The id is assigned by the server and
// never changes after creation.
type Task struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Status       string `json:"status"`
	TotalMinutes int    `json:"total_minutes"`
}

// TaskDraft is the payload for creating or fully updating a task.
type TaskDraft struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Status       string `json:"status"`
	TotalMinutes int    `json:"total_minutes"`
}

// User is the profile of the authenticated principal.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	IsStaff  bool   `json:"is_staff,omitempty"`
}

// TokenPair holds the access and refresh tokens returned by the token endpoint.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Suggestion is one AI-generated daily plan.
type Suggestion struct {
	Plan           string  `json:"plan"`
	EstimatedHours float64 `json:"estimated_hours"`
}
