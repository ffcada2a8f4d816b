package client

import "time"

// The client keeps its own view of the task types. Priority additionally
// lists "Critical", which the UI offers even though the server enum does not
// accept it yet.
type TaskStatus string

const (
	StatusToDo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
)

type TaskPriority string

const (
	PriorityLow      TaskPriority = "Low"
	PriorityMedium   TaskPriority = "Medium"
	PriorityHigh     TaskPriority = "High"
	PriorityCritical TaskPriority = "Critical"
)

type Task struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	DueDate      time.Time    `json:"dueDate"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"priority"`
	TaskOwner    string       `json:"taskOwner"`
	Tags         []string     `json:"tags"`
	CreationTime time.Time    `json:"creationTime"`
}

type CreateTaskRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     time.Time    `json:"dueDate"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	TaskOwner   string       `json:"taskOwner"`
	Tags        []string     `json:"tags"`
}

type UpdateTaskRequest struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	DueDate     *time.Time    `json:"dueDate,omitempty"`
	Status      *TaskStatus   `json:"status,omitempty"`
	Priority    *TaskPriority `json:"priority,omitempty"`
	TaskOwner   *string       `json:"taskOwner,omitempty"`
	Tags        *[]string     `json:"tags,omitempty"`
}

// TaskFilters mirrors the server's predicate bag; zero fields are omitted
// from the request.
type TaskFilters struct {
	Status    TaskStatus
	Priority  TaskPriority
	Search    string
	Tags      []string
	StartDate string
	EndDate   string
	TaskOwner string
}

type PageInfo struct {
	TotalItems      int  `json:"totalItems"`
	TotalPages      int  `json:"totalPages"`
	CurrentPage     int  `json:"currentPage"`
	ItemsPerPage    int  `json:"itemsPerPage"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
