package query

import (
	"fmt"
	"math"
	"testing"
	"time"

	"taskboard/internal/models"
)

func makeTasks(n int) []models.Task {
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	tasks := make([]models.Task, 0, n)
	for i := 0; i < n; i++ {
		status := models.StatusToDo
		if i%2 == 1 {
			status = models.StatusCompleted
		}
		tasks = append(tasks, models.Task{
			ID:           fmt.Sprintf("task-%03d", i),
			Title:        fmt.Sprintf("Task %d", i),
			Status:       status,
			Priority:     models.PriorityMedium,
			DueDate:      base.Add(time.Duration(i) * 24 * time.Hour),
			CreationTime: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return tasks
}

func TestRunTotalsComputedOnFilteredSet(t *testing.T) {
	tasks := makeTasks(20)
	filters := TaskFilters{Status: models.StatusToDo} // 10 of 20 match
	p := PaginationParams{Page: 1, Limit: 3, SortBy: SortByCreationTime, SortOrder: SortAsc}

	result := Run(tasks, filters, p)

	if result.Pagination.TotalItems != 10 {
		t.Errorf("Expected totalItems 10, got %d", result.Pagination.TotalItems)
	}
	if result.Pagination.TotalPages != 4 {
		t.Errorf("Expected totalPages 4, got %d", result.Pagination.TotalPages)
	}
	if len(result.Items) != 3 {
		t.Errorf("Expected 3 items, got %d", len(result.Items))
	}
	for _, task := range result.Items {
		if !filters.Matches(task) {
			t.Errorf("Item %s does not satisfy the active filters", task.ID)
		}
	}
}

func TestRunTwentyFiveTasksPageThree(t *testing.T) {
	tasks := makeTasks(25)
	p := PaginationParams{Page: 3, Limit: 10, SortBy: SortByCreationTime, SortOrder: SortAsc}

	result := Run(tasks, TaskFilters{}, p)

	if len(result.Items) != 5 {
		t.Errorf("Expected 5 items on page 3 of 25, got %d", len(result.Items))
	}
	if result.Pagination.HasNextPage {
		t.Error("Page 3 of 3 should not report a next page")
	}
	if !result.Pagination.HasPreviousPage {
		t.Error("Page 3 should report a previous page")
	}
}

func TestRunPageBeyondRange(t *testing.T) {
	tasks := makeTasks(5)
	p := PaginationParams{Page: 10, Limit: 10, SortBy: SortByCreationTime, SortOrder: SortDesc}

	result := Run(tasks, TaskFilters{}, p)

	if len(result.Items) != 0 {
		t.Errorf("Expected empty slice past the last page, got %d items", len(result.Items))
	}
	if result.Pagination.TotalItems != 5 {
		t.Errorf("Expected totalItems 5, got %d", result.Pagination.TotalItems)
	}
}

func TestRunEmptyCollection(t *testing.T) {
	p := PaginationParams{Page: 1, Limit: 10, SortBy: SortByCreationTime, SortOrder: SortDesc}

	result := Run(nil, TaskFilters{}, p)

	if len(result.Items) != 0 {
		t.Errorf("Expected no items, got %d", len(result.Items))
	}
	if result.Pagination.TotalItems != 0 || result.Pagination.TotalPages != 0 {
		t.Errorf("Expected zero totals, got %+v", result.Pagination)
	}
	if result.Pagination.HasNextPage || result.Pagination.HasPreviousPage {
		t.Error("Empty collection should have no next/previous page")
	}
}

func TestRunSortOrder(t *testing.T) {
	tasks := makeTasks(5)
	p := PaginationParams{Page: 1, Limit: 10, SortBy: SortByDueDate, SortOrder: SortDesc}

	result := Run(tasks, TaskFilters{}, p)

	for i := 1; i < len(result.Items); i++ {
		if result.Items[i].DueDate.After(result.Items[i-1].DueDate) {
			t.Fatalf("Expected descending due dates, got %v after %v",
				result.Items[i].DueDate, result.Items[i-1].DueDate)
		}
	}

	p.SortOrder = SortAsc
	result = Run(tasks, TaskFilters{}, p)
	for i := 1; i < len(result.Items); i++ {
		if result.Items[i].DueDate.Before(result.Items[i-1].DueDate) {
			t.Fatalf("Expected ascending due dates, got %v before %v",
				result.Items[i].DueDate, result.Items[i-1].DueDate)
		}
	}
}

func TestRunHugePageYieldsEmptySlice(t *testing.T) {
	// A page number near MaxInt makes (Page-1)*Limit wrap negative; the
	// engine must treat it like any other page past the end.
	tasks := makeTasks(5)
	p := PaginationParams{Page: math.MaxInt, Limit: 100, SortBy: SortByCreationTime, SortOrder: SortDesc}

	result := Run(tasks, TaskFilters{}, p)

	if len(result.Items) != 0 {
		t.Errorf("Expected empty slice for a huge page number, got %d items", len(result.Items))
	}
	if result.Pagination.TotalItems != 5 {
		t.Errorf("Expected totalItems 5, got %d", result.Pagination.TotalItems)
	}
}

func TestRunTieBreakIsDeterministic(t *testing.T) {
	// All tasks share a due date; ordering must fall back to ID either way
	// the input is arranged.
	due := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	forward := []models.Task{
		{ID: "a", DueDate: due},
		{ID: "b", DueDate: due},
		{ID: "c", DueDate: due},
	}
	backward := []models.Task{forward[2], forward[0], forward[1]}

	p := PaginationParams{Page: 1, Limit: 10, SortBy: SortByDueDate, SortOrder: SortAsc}
	r1 := Run(forward, TaskFilters{}, p)
	r2 := Run(backward, TaskFilters{}, p)

	for i := range r1.Items {
		if r1.Items[i].ID != r2.Items[i].ID {
			t.Fatalf("Tie-break not deterministic: position %d is %s vs %s",
				i, r1.Items[i].ID, r2.Items[i].ID)
		}
	}
	if r1.Items[0].ID != "a" || r1.Items[2].ID != "c" {
		t.Errorf("Expected ties ordered by ID ascending, got %s..%s", r1.Items[0].ID, r1.Items[2].ID)
	}

	// Ties order by ID ascending in descending sorts too.
	p.SortOrder = SortDesc
	r3 := Run(forward, TaskFilters{}, p)
	if r3.Items[0].ID != "a" || r3.Items[2].ID != "c" {
		t.Errorf("Expected desc ties ordered by ID ascending, got %s..%s", r3.Items[0].ID, r3.Items[2].ID)
	}
}

func TestRunFilterSoundnessAndCompleteness(t *testing.T) {
	tasks := makeTasks(30)
	filters := TaskFilters{Status: models.StatusCompleted, Search: "task"}
	p := PaginationParams{Page: 1, Limit: 100, SortBy: SortByCreationTime, SortOrder: SortAsc}

	result := Run(tasks, filters, p)

	matched := make(map[string]bool, len(result.Items))
	for _, task := range result.Items {
		if !filters.Matches(task) {
			t.Errorf("Result contains non-matching task %s", task.ID)
		}
		matched[task.ID] = true
	}
	for _, task := range tasks {
		if filters.Matches(task) && !matched[task.ID] {
			t.Errorf("Matching task %s missing from result", task.ID)
		}
	}
}
