package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/apperrors"
	"taskboard/internal/models"
	"taskboard/internal/query"
	"taskboard/internal/store"
)

func newTestService(t *testing.T) *TaskServiceImpl {
	t.Helper()
	fileStore, err := store.NewFileTaskStore(filepath.Join(t.TempDir(), "tasks.json"))
	require.NoError(t, err)
	return NewTaskService(fileStore)
}

func validCreateRequest() models.CreateTaskRequest {
	return models.CreateTaskRequest{
		Title:     "Write report",
		DueDate:   time.Now().Add(48 * time.Hour),
		Status:    models.StatusToDo,
		Priority:  models.PriorityHigh,
		TaskOwner: "alice",
		Tags:      []string{"work"},
	}
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	req := validCreateRequest()
	created, err := svc.CreateTask(ctx, req)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreationTime.IsZero())

	got, err := svc.GetTaskByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, req.Title, got.Title)
	assert.Equal(t, req.Status, got.Status)
	assert.Equal(t, req.Priority, got.Priority)
	assert.Equal(t, req.TaskOwner, got.TaskOwner)
	assert.Equal(t, req.Tags, got.Tags)
	assert.Equal(t, created.ID, got.ID)
	assert.True(t, got.CreationTime.Equal(created.CreationTime))
}

func TestCreateRejectsPastDueDate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	req := validCreateRequest()
	req.DueDate = time.Now().Add(-24 * time.Hour)

	_, err := svc.CreateTask(ctx, req)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Equal(t, 400, appErr.StatusCode)

	// No record may have been added.
	result, err := svc.ListTasks(ctx, query.TaskFilters{}, query.ValidatePagination("", "", "", ""))
	require.NoError(t, err)
	assert.Zero(t, result.Pagination.TotalItems)
}

func TestCreateRejectsInvalidEnums(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	req := validCreateRequest()
	req.Status = "Done"
	_, err := svc.CreateTask(ctx, req)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)

	req = validCreateRequest()
	req.Priority = "Critical"
	_, err = svc.CreateTask(ctx, req)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}

func TestUpdateMergesPartialFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, validCreateRequest())
	require.NoError(t, err)

	newTitle := "Write the Q3 report"
	newStatus := models.StatusInProgress
	updated, err := svc.UpdateTask(ctx, created.ID, models.UpdateTaskRequest{
		Title:  &newTitle,
		Status: &newStatus,
	})
	require.NoError(t, err)

	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, newStatus, updated.Status)
	// Unsupplied fields keep their prior values.
	assert.Equal(t, created.Priority, updated.Priority)
	assert.Equal(t, created.TaskOwner, updated.TaskOwner)
	assert.True(t, updated.DueDate.Equal(created.DueDate))
	assert.True(t, updated.CreationTime.Equal(created.CreationTime))
}

func TestUpdateRejectsPastDueDateAndBadEnum(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, validCreateRequest())
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	_, err = svc.UpdateTask(ctx, created.ID, models.UpdateTaskRequest{DueDate: &past})
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)

	bad := models.TaskStatus("Archived")
	_, err = svc.UpdateTask(ctx, created.ID, models.UpdateTaskRequest{Status: &bad})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)

	// The record must be untouched after rejected updates.
	got, err := svc.GetTaskByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Status, got.Status)
	assert.True(t, got.DueDate.Equal(created.DueDate))
}

func TestUpdateUnknownIDIsNotFound(t *testing.T) {
	svc := newTestService(t)

	title := "x"
	_, err := svc.UpdateTask(context.Background(), "missing", models.UpdateTaskRequest{Title: &title})
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeTaskNotFound, appErr.Code)
}

func TestDeleteThenGetIsNotFound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(ctx, created.ID))

	_, err = svc.GetTaskByID(ctx, created.ID)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeTaskNotFound, appErr.Code)

	// A second delete reports not-found too, not a crash.
	err = svc.DeleteTask(ctx, created.ID)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeTaskNotFound, appErr.Code)
}

func TestListAppliesFiltersAndPagination(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		req := validCreateRequest()
		if i%3 == 0 {
			req.Status = models.StatusCompleted
		}
		_, err := svc.CreateTask(ctx, req)
		require.NoError(t, err)
	}

	result, err := svc.ListTasks(ctx,
		query.TaskFilters{Status: models.StatusCompleted},
		query.ValidatePagination("1", "3", "creationTime", "asc"))
	require.NoError(t, err)

	assert.Equal(t, 4, result.Pagination.TotalItems)
	assert.Equal(t, 2, result.Pagination.TotalPages)
	assert.Len(t, result.Items, 3)
	for _, task := range result.Items {
		assert.Equal(t, models.StatusCompleted, task.Status)
	}
}

type failingStore struct{ err error }

func (f *failingStore) ReadAll(ctx context.Context) ([]models.Task, error) { return nil, f.err }
func (f *failingStore) WriteAll(ctx context.Context, tasks []models.Task) error {
	return f.err
}

func TestStoreFailureSurfacesAsInternal(t *testing.T) {
	svc := NewTaskService(&failingStore{err: errors.New("disk on fire")})

	_, err := svc.ListTasks(context.Background(), query.TaskFilters{}, query.ValidatePagination("", "", "", ""))
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeInternal, appErr.Code)
	assert.Equal(t, 500, appErr.StatusCode)
}
