// Package client is the Go counterpart of the web front end's data layer: a
// typed HTTP client for the REST surface plus a TaskSession that caches the
// task list, coalesces concurrent fetches, and applies optimistic patches on
// mutation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// APIError is the decoded server error envelope.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken sets the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination *PageInfo       `json:"pagination"`
	Error      *APIError       `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) (*PageInfo, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if !env.Success {
		apiErr := env.Error
		if apiErr == nil {
			apiErr = &APIError{Code: "INTERNAL_ERROR", Message: http.StatusText(resp.StatusCode)}
		}
		apiErr.StatusCode = resp.StatusCode
		return nil, apiErr
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode data: %w", err)
		}
	}
	return env.Pagination, nil
}

// ListParams is the full query state of a task listing.
type ListParams struct {
	Filters   TaskFilters
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Signature is a stable key for the query; identical queries coalesce on it.
func (p ListParams) Signature() string {
	f := p.Filters
	return strings.Join([]string{
		string(f.Status), string(f.Priority), f.Search, strings.Join(f.Tags, ","),
		f.StartDate, f.EndDate, f.TaskOwner,
		strconv.Itoa(p.Page), strconv.Itoa(p.Limit), p.SortBy, p.SortOrder,
	}, "|")
}

func (p ListParams) queryString() string {
	q := url.Values{}
	f := p.Filters
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Priority != "" {
		q.Set("priority", string(f.Priority))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if len(f.Tags) > 0 {
		q.Set("tags", strings.Join(f.Tags, ","))
	}
	if f.StartDate != "" {
		q.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("endDate", f.EndDate)
	}
	if f.TaskOwner != "" {
		q.Set("taskOwner", f.TaskOwner)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.SortBy != "" {
		q.Set("sortBy", p.SortBy)
	}
	if p.SortOrder != "" {
		q.Set("sortOrder", p.SortOrder)
	}
	if encoded := q.Encode(); encoded != "" {
		return "?" + encoded
	}
	return ""
}

func (c *Client) ListTasks(ctx context.Context, params ListParams) ([]Task, PageInfo, error) {
	var tasks []Task
	page, err := c.do(ctx, http.MethodGet, "/api/tasks"+params.queryString(), nil, &tasks)
	if err != nil {
		return nil, PageInfo{}, err
	}
	info := PageInfo{}
	if page != nil {
		info = *page
	}
	return tasks, info, nil
}

func (c *Client) GetTask(ctx context.Context, id string) (Task, error) {
	var task Task
	_, err := c.do(ctx, http.MethodGet, "/api/tasks/"+id, nil, &task)
	return task, err
}

func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (Task, error) {
	var task Task
	_, err := c.do(ctx, http.MethodPost, "/api/tasks", req, &task)
	return task, err
}

func (c *Client) UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (Task, error) {
	var task Task
	_, err := c.do(ctx, http.MethodPut, "/api/tasks/"+id, req, &task)
	return task, err
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil)
	return err
}

func (c *Client) Register(ctx context.Context, name, email, password string) (AuthResult, error) {
	var result AuthResult
	body := map[string]string{"name": name, "email": email, "password": password}
	_, err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &result)
	if err == nil {
		c.SetToken(result.Token)
	}
	return result, err
}

func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	var result AuthResult
	body := map[string]string{"email": email, "password": password}
	_, err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &result)
	if err == nil {
		c.SetToken(result.Token)
	}
	return result, err
}

func (c *Client) Me(ctx context.Context) (User, error) {
	var user User
	_, err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user)
	return user, err
}
