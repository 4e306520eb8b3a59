package model

import "time"

const (
	TaskStatusPending   = "pending"
	DefaultTaskAssignee = "Me"
)

// Values a task's linkedType may take. The linked id is an advisory weak
// reference; its existence is not checked.
const (
	LinkTypeContact     = "contact"
	LinkTypeOpportunity = "opportunity"
)

// ValidLinkType reports whether t is an allowed linkedType. Empty means the
// task is not linked to anything.
func ValidLinkType(t string) bool {
	return t == "" || t == LinkTypeContact || t == LinkTypeOpportunity
}

type Task struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	DueDate    string    `json:"dueDate,omitempty"`
	Status     string    `json:"status"`
	AssignedTo string    `json:"assignedTo"`
	LinkedType string    `json:"linkedType,omitempty"`
	LinkedID   string    `json:"linkedId,omitempty"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"createdAt,omitzero"`
	UpdatedAt  time.Time `json:"updatedAt,omitzero"`
	Archived   bool      `json:"archived"`
	ArchivedAt time.Time `json:"archivedAt,omitzero"`
}
