package services

import (
	"context"
	"fmt"
	"time"

	"taskboard/internal/cache"
	"taskboard/internal/models"
	"taskboard/internal/query"
)

// CachedTaskService is a read-through cache over the list operation, keyed by
// the full query signature. Every mutation invalidates all list entries and
// the per-task entry; the server state stays authoritative and cache failures
// degrade to the underlying service.
type CachedTaskService struct {
	inner   TaskService
	cache   *cache.RedisCache
	listTTL time.Duration
}

func NewCachedTaskService(inner TaskService, cacheInstance *cache.RedisCache, listTTL time.Duration) *CachedTaskService {
	if listTTL <= 0 {
		listTTL = 5 * time.Minute
	}
	return &CachedTaskService{inner: inner, cache: cacheInstance, listTTL: listTTL}
}

type cachedListResult struct {
	Items      []models.Task  `json:"items"`
	Pagination query.PageInfo `json:"pagination"`
}

func listKey(filters query.TaskFilters, p query.PaginationParams) string {
	return fmt.Sprintf("tasks:list:%s:%s", filters.Signature(), p.Signature())
}

func taskKey(id string) string {
	return fmt.Sprintf("tasks:item:%s", id)
}

func (s *CachedTaskService) ListTasks(ctx context.Context, filters query.TaskFilters, p query.PaginationParams) (query.Result, error) {
	key := listKey(filters, p)

	var cached cachedListResult
	if err := s.cache.Get(key, &cached); err == nil {
		return query.Result{Items: cached.Items, Pagination: cached.Pagination}, nil
	}

	result, err := s.inner.ListTasks(ctx, filters, p)
	if err != nil {
		return result, err
	}

	s.cache.Set(key, cachedListResult{Items: result.Items, Pagination: result.Pagination}, s.listTTL)
	return result, nil
}

func (s *CachedTaskService) GetTaskByID(ctx context.Context, id string) (models.Task, error) {
	key := taskKey(id)

	var cached models.Task
	if err := s.cache.Get(key, &cached); err == nil {
		return cached, nil
	}

	task, err := s.inner.GetTaskByID(ctx, id)
	if err != nil {
		return task, err
	}

	s.cache.Set(key, task, s.listTTL)
	return task, nil
}

func (s *CachedTaskService) CreateTask(ctx context.Context, req models.CreateTaskRequest) (models.Task, error) {
	task, err := s.inner.CreateTask(ctx, req)
	if err != nil {
		return task, err
	}
	s.invalidate(task.ID)
	return task, nil
}

func (s *CachedTaskService) UpdateTask(ctx context.Context, id string, req models.UpdateTaskRequest) (models.Task, error) {
	task, err := s.inner.UpdateTask(ctx, id, req)
	if err != nil {
		return task, err
	}
	s.invalidate(id)
	return task, nil
}

func (s *CachedTaskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.inner.DeleteTask(ctx, id); err != nil {
		return err
	}
	s.invalidate(id)
	return nil
}

func (s *CachedTaskService) invalidate(id string) {
	s.cache.Delete(taskKey(id))
	s.cache.DeletePattern("tasks:list:*")
}
