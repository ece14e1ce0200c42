package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Client talks to the SprintSync REST backend. The bearer token is attached
// to every request once set; the token endpoint itself is called without one.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// SetToken sets the bearer token used on all subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// ClearToken removes the bearer token.
func (c *Client) ClearToken() {
	c.token = ""
}

// do issues one request and returns the response body. Non-2xx responses
// become errors carrying the status code and the (trimmed) body.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("error encoding %s %s request: %w", method, path, err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("error building %s %s request: %w", method, path, err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// request ids let server logs be matched against the client log
	req.Header.Set("X-Request-ID", uuid.NewString())

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling %s %s: %w", method, path, err)
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading %s %s response: %w", method, path, err)
	}

	log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("api call")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%s %s returned status %d: %s", method, path, resp.StatusCode,
			strings.TrimSpace(string(data)))
	}

	return data, nil
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, username, password string) (TokenPair, error) {
	credentials := map[string]string{"username": username, "password": password}

	data, err := c.do(ctx, http.MethodPost, "/users/auth/token/", credentials)
	if err != nil {
		return TokenPair{}, err
	}

	var pair TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return TokenPair{}, fmt.Errorf("error decoding token response: %w", err)
	}

	return pair, nil
}

// Profile fetches the profile of the user with the given id.
func (c *Client) Profile(ctx context.Context, id int) (User, error) {
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/users/%d/", id), nil)
	if err != nil {
		return User{}, err
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return User{}, fmt.Errorf("error decoding profile response: %w", err)
	}

	return user, nil
}

// ListTasks returns the server's current task collection.
func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	data, err := c.do(ctx, http.MethodGet, "/tasks/tasks/", nil)
	if err != nil {
		return nil, err
	}

	return decodeTaskList(data)
}

// decodeTaskList handles the two shapes the list endpoint is known to
// return. The paginated wrapper is the primary branch; a bare array is the
// fallback when no results field is present.
func decodeTaskList(data []byte) ([]Task, error) {
	var page struct {
		Results []Task `json:"results"`
	}

	if err := json.Unmarshal(data, &page); err == nil && page.Results != nil {
		return page.Results, nil
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("unrecognized task list response: %w", err)
	}

	return tasks, nil
}

// CreateTask sends a new task draft. The caller refetches the collection to
// pick up server-assigned fields.
func (c *Client) CreateTask(ctx context.Context, draft TaskDraft) error {
	_, err := c.do(ctx, http.MethodPost, "/tasks/tasks/", draft)

	return err
}

// UpdateTask overwrites the task with the given id.
func (c *Client) UpdateTask(ctx context.Context, id int, draft TaskDraft) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/tasks/%d/", id), draft)

	return err
}

// ChangeStatus sends a partial update carrying only the status.
func (c *Client) ChangeStatus(ctx context.Context, id int, status string) error {
	_, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/tasks/%d/status/", id), map[string]string{"status": status})

	return err
}

// DeleteTask deletes the task with the given id.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/tasks/%d/", id), nil)

	return err
}

// DailyPlan asks the backend for an AI-generated plan for today.
func (c *Client) DailyPlan(ctx context.Context) (Suggestion, error) {
	data, err := c.do(ctx, http.MethodPost, "/tasks/ai/daily_plan/", nil)
	if err != nil {
		return Suggestion{}, err
	}

	var suggestion Suggestion
	if err := json.Unmarshal(data, &suggestion); err != nil {
		return Suggestion{}, fmt.Errorf("error decoding daily plan response: %w", err)
	}

	return suggestion, nil
}
