package services

import (
	"context"
	"time"

	"github.com/gofrs/uuid"

	"taskboard/internal/apperrors"
	"taskboard/internal/models"
	"taskboard/internal/query"
	"taskboard/internal/store"
)

type TaskService interface {
	ListTasks(ctx context.Context, filters query.TaskFilters, p query.PaginationParams) (query.Result, error)
	GetTaskByID(ctx context.Context, id string) (models.Task, error)
	CreateTask(ctx context.Context, req models.CreateTaskRequest) (models.Task, error)
	UpdateTask(ctx context.Context, id string, req models.UpdateTaskRequest) (models.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// TaskServiceImpl enforces the business rules and drives the query engine
// over the document store. Every mutation rewrites the whole collection.
type TaskServiceImpl struct {
	store store.TaskStore
	now   func() time.Time
}

func NewTaskService(taskStore store.TaskStore) *TaskServiceImpl {
	return &TaskServiceImpl{store: taskStore, now: time.Now}
}

func (s *TaskServiceImpl) ListTasks(ctx context.Context, filters query.TaskFilters, p query.PaginationParams) (query.Result, error) {
	tasks, err := s.store.ReadAll(ctx)
	if err != nil {
		return query.Result{}, apperrors.Internal("Failed to load tasks").WithDetails(err.Error())
	}
	return query.Run(tasks, filters, p), nil
}

func (s *TaskServiceImpl) GetTaskByID(ctx context.Context, id string) (models.Task, error) {
	tasks, err := s.store.ReadAll(ctx)
	if err != nil {
		return models.Task{}, apperrors.Internal("Failed to load tasks").WithDetails(err.Error())
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Task{}, apperrors.TaskNotFound()
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, req models.CreateTaskRequest) (models.Task, error) {
	if req.Title == "" {
		return models.Task{}, apperrors.Validation("Title is required")
	}
	if !req.Status.Valid() {
		return models.Task{}, apperrors.Validation("Invalid status value")
	}
	if !req.Priority.Valid() {
		return models.Task{}, apperrors.Validation("Invalid priority value")
	}
	if req.DueDate.Before(s.now()) {
		return models.Task{}, apperrors.Validation("Due date cannot be in the past")
	}

	id, err := uuid.NewV4()
	if err != nil {
		return models.Task{}, apperrors.Internal("Failed to generate task ID").WithDetails(err.Error())
	}

	task := models.Task{
		ID:           id.String(),
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
		Status:       req.Status,
		Priority:     req.Priority,
		TaskOwner:    req.TaskOwner,
		Tags:         req.Tags,
		CreationTime: s.now(),
	}

	tasks, err := s.store.ReadAll(ctx)
	if err != nil {
		return models.Task{}, apperrors.Internal("Failed to load tasks").WithDetails(err.Error())
	}
	tasks = append(tasks, task)
	if err := s.store.WriteAll(ctx, tasks); err != nil {
		return models.Task{}, apperrors.Internal("Failed to save tasks").WithDetails(err.Error())
	}

	return task, nil
}

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, id string, req models.UpdateTaskRequest) (models.Task, error) {
	if req.Status != nil && !req.Status.Valid() {
		return models.Task{}, apperrors.Validation("Invalid status value")
	}
	if req.Priority != nil && !req.Priority.Valid() {
		return models.Task{}, apperrors.Validation("Invalid priority value")
	}
	if req.DueDate != nil && req.DueDate.Before(s.now()) {
		return models.Task{}, apperrors.Validation("Due date cannot be in the past")
	}
	if req.Title != nil && *req.Title == "" {
		return models.Task{}, apperrors.Validation("Title cannot be empty")
	}

	tasks, err := s.store.ReadAll(ctx)
	if err != nil {
		return models.Task{}, apperrors.Internal("Failed to load tasks").WithDetails(err.Error())
	}

	idx := -1
	for i, t := range tasks {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.Task{}, apperrors.TaskNotFound()
	}

	// Merge supplied fields over the existing record. ID and CreationTime are
	// never touched.
	task := tasks[idx]
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.TaskOwner != nil {
		task.TaskOwner = *req.TaskOwner
	}
	if req.Tags != nil {
		task.Tags = *req.Tags
	}

	tasks[idx] = task
	if err := s.store.WriteAll(ctx, tasks); err != nil {
		return models.Task{}, apperrors.Internal("Failed to save tasks").WithDetails(err.Error())
	}

	return task, nil
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	tasks, err := s.store.ReadAll(ctx)
	if err != nil {
		return apperrors.Internal("Failed to load tasks").WithDetails(err.Error())
	}

	remaining := tasks[:0:0]
	for _, t := range tasks {
		if t.ID != id {
			remaining = append(remaining, t)
		}
	}
	if len(remaining) == len(tasks) {
		return apperrors.TaskNotFound()
	}

	if err := s.store.WriteAll(ctx, remaining); err != nil {
		return apperrors.Internal("Failed to save tasks").WithDetails(err.Error())
	}
	return nil
}
