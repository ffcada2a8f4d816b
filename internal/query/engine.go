package query

import (
	"sort"

	"taskboard/internal/models"
)

// Result is one page of a filtered listing. TotalItems counts the filtered
// set before slicing, not the raw collection.
type Result struct {
	Items      []models.Task
	Pagination PageInfo
}

// Run applies filters, then sort, then the page slice, in that order. Totals
// are computed on the filtered set; a page past the end yields an empty slice.
func Run(tasks []models.Task, filters TaskFilters, p PaginationParams) Result {
	filtered := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if filters.Matches(t) {
			filtered = append(filtered, t)
		}
	}

	total := len(filtered)
	sortTasks(filtered, p.SortBy, p.SortOrder)

	// (Page-1)*Limit can overflow for absurd page numbers; a negative start
	// means the page is past the end, same as start > total.
	start := (p.Page - 1) * p.Limit
	if start < 0 || start > total {
		start = total
	}
	end := start + p.Limit
	if end > total {
		end = total
	}

	return Result{
		Items:      filtered[start:end],
		Pagination: NewPageInfo(total, p),
	}
}

// sortTasks orders by the named field, ties broken by ID ascending so the
// ordering is deterministic regardless of input order.
func sortTasks(tasks []models.Task, field SortField, order SortOrder) {
	less := lessFunc(field)
	sort.Slice(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		x, y := a, b
		if order == SortDesc {
			x, y = y, x
		}
		if less(x, y) {
			return true
		}
		if less(y, x) {
			return false
		}
		// Ties order by ID ascending regardless of direction.
		return a.ID < b.ID
	})
}

// lessFunc maps each sort field to a typed accessor. The switch is exhaustive
// over SortField; the validator guarantees only enumerated values reach here.
func lessFunc(field SortField) func(a, b models.Task) bool {
	switch field {
	case SortByTitle:
		return func(a, b models.Task) bool { return a.Title < b.Title }
	case SortByDueDate:
		return func(a, b models.Task) bool { return a.DueDate.Before(b.DueDate) }
	case SortByStatus:
		return func(a, b models.Task) bool { return a.Status < b.Status }
	case SortByPriority:
		return func(a, b models.Task) bool { return priorityRank(a.Priority) < priorityRank(b.Priority) }
	case SortByTaskOwner:
		return func(a, b models.Task) bool { return a.TaskOwner < b.TaskOwner }
	case SortByCreationTime:
		return func(a, b models.Task) bool { return a.CreationTime.Before(b.CreationTime) }
	default:
		return func(a, b models.Task) bool { return a.CreationTime.Before(b.CreationTime) }
	}
}

func priorityRank(p models.TaskPriority) int {
	switch p {
	case models.PriorityLow:
		return 0
	case models.PriorityMedium:
		return 1
	case models.PriorityHigh:
		return 2
	}
	return -1
}
