package domain

import "time"

// IdeaStatus enumerates lifecycle states for project ideas.
type IdeaStatus string

const (
	IdeaStatusPending    IdeaStatus = "pending"
	IdeaStatusAssigned   IdeaStatus = "assigned"
	IdeaStatusInProgress IdeaStatus = "in-progress"
	IdeaStatusCompleted  IdeaStatus = "completed"
	IdeaStatusCancelled  IdeaStatus = "cancelled"
)

// IdeaStatuses lists every status in lifecycle order.
var IdeaStatuses = []IdeaStatus{
	IdeaStatusPending,
	IdeaStatusAssigned,
	IdeaStatusInProgress,
	IdeaStatusCompleted,
	IdeaStatusCancelled,
}

var statusLabels = map[IdeaStatus]string{
	IdeaStatusPending:    "Pending Review",
	IdeaStatusAssigned:   "Assigned",
	IdeaStatusInProgress: "In Progress",
	IdeaStatusCompleted:  "Completed",
	IdeaStatusCancelled:  "Cancelled",
}

// Label returns the display label for the status.
func (s IdeaStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Valid reports whether s is a known status.
func (s IdeaStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Terminal reports whether no transition may leave s.
func (s IdeaStatus) Terminal() bool {
	return s == IdeaStatusCompleted || s == IdeaStatusCancelled
}

// Idea is a project idea submitted by a customer.
type Idea struct {
	ID                string           `json:"id"`
	Title             string           `json:"title"`
	Description       string           `json:"description"`
	CustomerName      string           `json:"customer_name"`
	CustomerEmail     string           `json:"customer_email"`
	Status            IdeaStatus       `json:"status"`
	AssignedDeveloper *string          `json:"assigned_developer"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
	Progress          []ProgressUpdate `json:"progress"`
}

// AssignedTo reports whether the idea is assigned to the named developer.
func (i *Idea) AssignedTo(name string) bool {
	return i.AssignedDeveloper != nil && *i.AssignedDeveloper == name
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (i Idea) Clone() Idea {
	out := i
	if i.AssignedDeveloper != nil {
		dev := *i.AssignedDeveloper
		out.AssignedDeveloper = &dev
	}
	out.Progress = append([]ProgressUpdate{}, i.Progress...)
	return out
}

// ProgressUpdate is an immutable entry in an idea's progress log.
type ProgressUpdate struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
