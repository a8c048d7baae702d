package models

import (
	"fmt"
	"time"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

var TaskPriorities = []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}

var TaskStatuses = []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted}

func ParseTaskPriority(value string) (TaskPriority, error) {
	for _, p := range TaskPriorities {
		if string(p) == value {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown task priority %q", value)
}

func ParseTaskStatus(value string) (TaskStatus, error) {
	for _, s := range TaskStatuses {
		if string(s) == value {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown task status %q", value)
}

// Task is a unit of follow-up work, usually a scheduled callback.
type Task struct {
	ID           string       `json:"id" db:"id"`
	AgencyID     string       `json:"agencyId" db:"agency_id"`
	Title        string       `json:"title" db:"title"`
	Description  *string      `json:"description,omitempty" db:"description"`
	Priority     TaskPriority `json:"priority" db:"priority"`
	Status       TaskStatus   `json:"status" db:"status"`
	DueDate      *time.Time   `json:"dueDate,omitempty" db:"due_date"`
	CreatedByID  string       `json:"createdById" db:"created_by_id"`
	AssignedToID string       `json:"assignedToId" db:"assigned_to_id"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt" db:"updated_at"`
}
