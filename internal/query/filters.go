package query

import (
	"strings"
	"time"

	"taskboard/internal/models"
)

// TaskFilters is a predicate bag: a nil/zero field means no constraint.
type TaskFilters struct {
	Status    models.TaskStatus   `json:"status,omitempty"`
	Priority  models.TaskPriority `json:"priority,omitempty"`
	Search    string              `json:"search,omitempty"`
	Tags      []string            `json:"tags,omitempty"`
	StartDate *time.Time          `json:"startDate,omitempty"`
	EndDate   *time.Time          `json:"endDate,omitempty"`
	TaskOwner string              `json:"taskOwner,omitempty"`
}

// RawFilters is the unvalidated input, typically straight off query params.
type RawFilters struct {
	Status    string
	Priority  string
	Search    string
	Tags      []string
	StartDate string
	EndDate   string
	TaskOwner string
}

// Date layouts accepted for startDate/endDate.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ValidateFilters whitelists the raw input into a usable TaskFilters. Invalid
// or unknown values are silently dropped, never errored.
func ValidateFilters(raw RawFilters) TaskFilters {
	var f TaskFilters

	if s := models.TaskStatus(raw.Status); s.Valid() {
		f.Status = s
	}
	if p := models.TaskPriority(raw.Priority); p.Valid() {
		f.Priority = p
	}
	if search := strings.TrimSpace(raw.Search); search != "" {
		f.Search = search
	}
	for _, tag := range raw.Tags {
		if tag != "" {
			f.Tags = append(f.Tags, tag)
		}
	}
	if t, ok := parseDate(raw.StartDate); ok {
		f.StartDate = &t
	}
	if t, ok := parseDate(raw.EndDate); ok {
		f.EndDate = &t
	}
	if owner := strings.TrimSpace(raw.TaskOwner); owner != "" {
		f.TaskOwner = owner
	}

	return f
}

// Matches reports whether the task satisfies every present filter field.
func (f TaskFilters) Matches(task models.Task) bool {
	if f.Status != "" && task.Status != f.Status {
		return false
	}
	if f.Priority != "" && task.Priority != f.Priority {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(task.Title), needle) &&
			!strings.Contains(strings.ToLower(task.Description), needle) {
			return false
		}
	}
	if len(f.Tags) > 0 && !hasAnyTag(task.Tags, f.Tags) {
		return false
	}
	if f.StartDate != nil && task.DueDate.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && task.DueDate.After(*f.EndDate) {
		return false
	}
	if f.TaskOwner != "" && task.TaskOwner != f.TaskOwner {
		return false
	}
	return true
}

func hasAnyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

// Signature is a stable string form of the filters, used for cache keys and
// request coalescing.
func (f TaskFilters) Signature() string {
	var b strings.Builder
	b.WriteString(string(f.Status))
	b.WriteByte('|')
	b.WriteString(string(f.Priority))
	b.WriteByte('|')
	b.WriteString(f.Search)
	b.WriteByte('|')
	b.WriteString(strings.Join(f.Tags, ","))
	b.WriteByte('|')
	if f.StartDate != nil {
		b.WriteString(f.StartDate.UTC().Format(time.RFC3339))
	}
	b.WriteByte('|')
	if f.EndDate != nil {
		b.WriteString(f.EndDate.UTC().Format(time.RFC3339))
	}
	b.WriteByte('|')
	b.WriteString(f.TaskOwner)
	return b.String()
}
