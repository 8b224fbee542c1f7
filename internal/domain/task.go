package domain

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// ValidTaskStatus reports whether s is one of the known status values.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// Task is a unit of work owned by exactly one user. OwnerID is set at
// creation and never reassigned.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      TaskStatus
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Attachment is file metadata tied to a task. The bytes themselves live in
// object storage under Key; the row here is the source of truth for listing.
type Attachment struct {
	ID          string
	TaskID      string
	Name        string
	Size        int64
	ContentType string
	Key         string
	CreatedAt   time.Time
}
