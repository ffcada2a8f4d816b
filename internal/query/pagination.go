package query

import (
	"fmt"
	"math"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortField enumerates the fields a listing may be ordered by.
type SortField string

const (
	SortByTitle        SortField = "title"
	SortByDueDate      SortField = "dueDate"
	SortByStatus       SortField = "status"
	SortByPriority     SortField = "priority"
	SortByTaskOwner    SortField = "taskOwner"
	SortByCreationTime SortField = "creationTime"
)

func (f SortField) Valid() bool {
	switch f {
	case SortByTitle, SortByDueDate, SortByStatus, SortByPriority, SortByTaskOwner, SortByCreationTime:
		return true
	}
	return false
}

type PaginationParams struct {
	Page      int       `json:"page"`
	Limit     int       `json:"limit"`
	SortBy    SortField `json:"sortBy"`
	SortOrder SortOrder `json:"sortOrder"`
}

// ValidatePagination clamps raw page/limit strings to usable values and
// normalizes the sort parameters. It never fails: unusable input falls back to
// the defaults (page 1, limit 10, creationTime descending).
func ValidatePagination(page, limit, sortBy, sortOrder string) PaginationParams {
	p := PaginationParams{
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		SortBy:    SortByCreationTime,
		SortOrder: SortDesc,
	}

	if n, err := strconv.Atoi(page); err == nil && n >= 1 {
		p.Page = n
	}
	if n, err := strconv.Atoi(limit); err == nil && n >= 1 {
		if n > MaxLimit {
			n = MaxLimit
		}
		p.Limit = n
	}
	if f := SortField(sortBy); f.Valid() {
		p.SortBy = f
	}
	if sortOrder == string(SortAsc) {
		p.SortOrder = SortAsc
	}

	return p
}

// Signature is a stable string form used for cache keys and coalescing.
func (p PaginationParams) Signature() string {
	return fmt.Sprintf("%d:%d:%s:%s", p.Page, p.Limit, p.SortBy, p.SortOrder)
}

// PageInfo is the pagination metadata attached to every list response.
type PageInfo struct {
	TotalItems      int  `json:"totalItems"`
	TotalPages      int  `json:"totalPages"`
	CurrentPage     int  `json:"currentPage"`
	ItemsPerPage    int  `json:"itemsPerPage"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

func NewPageInfo(total int, p PaginationParams) PageInfo {
	totalPages := int(math.Ceil(float64(total) / float64(p.Limit)))
	return PageInfo{
		TotalItems:      total,
		TotalPages:      totalPages,
		CurrentPage:     p.Page,
		ItemsPerPage:    p.Limit,
		HasNextPage:     p.Page < totalPages,
		HasPreviousPage: p.Page > 1,
	}
}
