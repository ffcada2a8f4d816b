package client

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ErrSessionClosed is returned by operations on a closed session.
var ErrSessionClosed = errors.New("session closed")

type fetchResult struct {
	tasks []Task
	page  PageInfo
}

// TaskSession mirrors the front end's task data hook. It owns a cached copy
// of the server's task list together with the active filter/pagination state,
// and re-fetches whenever that state changes.
//
// At most one list fetch per query is in flight at a time: concurrent
// Refresh calls for the same query coalesce onto a single HTTP request and
// all receive its result. Mutations bypass that gate, patch the cached list
// optimistically on success, and report failures through the notification
// feed. After Close, late fetch completions no longer touch session state.
type TaskSession struct {
	client *Client
	group  singleflight.Group

	mu       sync.Mutex
	params   ListParams
	tasks    []Task
	pageInfo PageInfo
	loading  bool
	mutating bool
	lastErr  error
	closed   bool
	subs     []chan struct{}

	Notifications *NotificationCenter
}

func NewTaskSession(c *Client) *TaskSession {
	return &TaskSession{
		client: c,
		params: ListParams{
			Page:      1,
			Limit:     10,
			SortBy:    "creationTime",
			SortOrder: "desc",
		},
		Notifications: NewNotificationCenter(20),
	}
}

// SessionState is a point-in-time copy of the session's observable state.
type SessionState struct {
	Tasks    []Task
	Page     PageInfo
	Params   ListParams
	Loading  bool
	Mutating bool
	Err      error
}

func (s *TaskSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := make([]Task, len(s.tasks))
	copy(tasks, s.tasks)
	return SessionState{
		Tasks:    tasks,
		Page:     s.pageInfo,
		Params:   s.params,
		Loading:  s.loading,
		Mutating: s.mutating,
		Err:      s.lastErr,
	}
}

// Subscribe returns a channel that receives a signal after every state
// change. The channel is closed when the session closes.
func (s *TaskSession) Subscribe() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan struct{}, 1)
	if s.closed {
		close(ch)
		return ch
	}
	s.subs = append(s.subs, ch)
	return ch
}

func (s *TaskSession) notifyLocked() {
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Close tears the session down. Any fetch still in flight completes but its
// result is discarded instead of updating state.
func (s *TaskSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for _, ch := range s.subs {
		close(ch)
	}
	s.subs = nil
}

// Refresh fetches the list for the current query state. Concurrent calls
// with the same query share one underlying request.
func (s *TaskSession) Refresh(ctx context.Context) ([]Task, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	params := s.params
	s.loading = true
	s.lastErr = nil
	s.notifyLocked()
	s.mu.Unlock()

	v, err, _ := s.group.Do(params.Signature(), func() (interface{}, error) {
		tasks, page, err := s.client.ListTasks(ctx, params)
		if err != nil {
			return nil, err
		}
		return fetchResult{tasks: tasks, page: page}, nil
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		// Unmounted while the fetch was in flight: drop the result.
		if err != nil {
			return nil, err
		}
		return v.(fetchResult).tasks, nil
	}

	s.loading = false
	if err != nil {
		s.lastErr = err
		s.notifyLocked()
		return nil, err
	}

	res := v.(fetchResult)
	// Apply only if the query state has not moved on since this fetch began.
	// The cached copy is independent of the returned slice, which coalesced
	// callers share; later patches must not rewrite results callers hold.
	if params.Signature() == s.params.Signature() {
		s.tasks = append([]Task(nil), res.tasks...)
		s.pageInfo = res.page
	}
	s.notifyLocked()
	return res.tasks, nil
}

// SetFilters replaces the filter state and re-fetches.
func (s *TaskSession) SetFilters(ctx context.Context, filters TaskFilters) ([]Task, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	s.params.Filters = filters
	s.params.Page = 1
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// SetPage moves to the given page and re-fetches.
func (s *TaskSession) SetPage(ctx context.Context, page int) ([]Task, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if page < 1 {
		page = 1
	}
	s.params.Page = page
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// SetLimit changes the page size and re-fetches from page 1.
func (s *TaskSession) SetLimit(ctx context.Context, limit int) ([]Task, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if limit < 1 {
		limit = 1
	}
	s.params.Limit = limit
	s.params.Page = 1
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// SetSort changes the sort key/order and re-fetches.
func (s *TaskSession) SetSort(ctx context.Context, sortBy, sortOrder string) ([]Task, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	s.params.SortBy = sortBy
	s.params.SortOrder = sortOrder
	s.mu.Unlock()
	return s.Refresh(ctx)
}

func (s *TaskSession) setMutating(on bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.mutating = on
	s.notifyLocked()
	return true
}

// CreateTask creates the task and appends it to the cached list on success.
// It does not pass through the coalescing gate.
func (s *TaskSession) CreateTask(ctx context.Context, req CreateTaskRequest) (Task, error) {
	if !s.setMutating(true) {
		return Task{}, ErrSessionClosed
	}
	defer s.setMutating(false)

	task, err := s.client.CreateTask(ctx, req)
	if err != nil {
		s.Notifications.Push(NotifyError, "Failed to create task")
		return Task{}, err
	}

	s.mu.Lock()
	if !s.closed {
		s.tasks = append(s.tasks, task)
		s.notifyLocked()
	}
	s.mu.Unlock()

	s.Notifications.Push(NotifySuccess, "Task created")
	return task, nil
}

// UpdateTask updates the task and patches the cached copy on success.
func (s *TaskSession) UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (Task, error) {
	if !s.setMutating(true) {
		return Task{}, ErrSessionClosed
	}
	defer s.setMutating(false)

	task, err := s.client.UpdateTask(ctx, id, req)
	if err != nil {
		s.Notifications.Push(NotifyError, "Failed to update task")
		return Task{}, err
	}

	s.mu.Lock()
	if !s.closed {
		for i := range s.tasks {
			if s.tasks[i].ID == id {
				s.tasks[i] = task
				break
			}
		}
		s.notifyLocked()
	}
	s.mu.Unlock()

	s.Notifications.Push(NotifySuccess, "Task updated")
	return task, nil
}

// DeleteTask deletes the task and removes it from the cached list on success.
func (s *TaskSession) DeleteTask(ctx context.Context, id string) error {
	if !s.setMutating(true) {
		return ErrSessionClosed
	}
	defer s.setMutating(false)

	if err := s.client.DeleteTask(ctx, id); err != nil {
		s.Notifications.Push(NotifyError, "Failed to delete task")
		return err
	}

	s.mu.Lock()
	if !s.closed {
		kept := make([]Task, 0, len(s.tasks))
		for _, t := range s.tasks {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		s.tasks = kept
		s.notifyLocked()
	}
	s.mu.Unlock()

	s.Notifications.Push(NotifySuccess, "Task deleted")
	return nil
}
