package models

import "time"

type TaskStatus string

const (
	StatusToDo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is the persisted record. ID and CreationTime are assigned by the server
// at create time; CreationTime is never mutated afterwards.
type Task struct {
	ID           string       `json:"id" gorm:"primaryKey"`
	Title        string       `json:"title" gorm:"not null"`
	Description  string       `json:"description"`
	DueDate      time.Time    `json:"dueDate"`
	Status       TaskStatus   `json:"status" gorm:"not null"`
	Priority     TaskPriority `json:"priority" gorm:"not null"`
	TaskOwner    string       `json:"taskOwner"`
	Tags         []string     `json:"tags" gorm:"serializer:json"`
	CreationTime time.Time    `json:"creationTime"`
	OwnerUserID  string       `json:"userId,omitempty"`
}

// CreateTaskRequest is the create payload; server-assigned fields are absent.
type CreateTaskRequest struct {
	Title       string       `json:"title" binding:"required"`
	Description string       `json:"description"`
	DueDate     time.Time    `json:"dueDate" binding:"required"`
	Status      TaskStatus   `json:"status" binding:"required"`
	Priority    TaskPriority `json:"priority" binding:"required"`
	TaskOwner   string       `json:"taskOwner"`
	Tags        []string     `json:"tags"`
}

// UpdateTaskRequest is fully partial: nil fields keep the prior value.
type UpdateTaskRequest struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	DueDate     *time.Time    `json:"dueDate"`
	Status      *TaskStatus   `json:"status"`
	Priority    *TaskPriority `json:"priority"`
	TaskOwner   *string       `json:"taskOwner"`
	Tags        *[]string     `json:"tags"`
}
