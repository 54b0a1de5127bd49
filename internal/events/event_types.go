package events

import (
	"time"

	"github.com/spec-kit/ideaflow/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventIdeaSubmitted        EventType = "idea_submitted"
	EventIdeaStatusChanged    EventType = "idea_status_changed"
	EventIdeaAssigned         EventType = "idea_assigned"
	EventIdeaProgressAdded    EventType = "idea_progress_added"
	EventUserRegistered       EventType = "user_registered"
	EventDeveloperSubmitted   EventType = "developer_submitted"
	EventDeveloperApproved    EventType = "developer_approved"
	EventDeveloperRejected    EventType = "developer_rejected"
	EventContactDraftComposed EventType = "contact_draft_composed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Role   domain.Role `json:"role,omitempty"`
	UserID string      `json:"user_id,omitempty"`
	Email  string      `json:"email,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// IdeaSubmittedPayload payload.
type IdeaSubmittedPayload struct {
	Title         string `json:"title"`
	CustomerEmail string `json:"customer_email"`
}

// IdeaStatusChangedPayload payload.
type IdeaStatusChangedPayload struct {
	OldStatus domain.IdeaStatus `json:"old_status"`
	NewStatus domain.IdeaStatus `json:"new_status"`
}

// IdeaAssignedPayload payload.
type IdeaAssignedPayload struct {
	Developer string `json:"developer"`
}

// IdeaProgressAddedPayload payload.
type IdeaProgressAddedPayload struct {
	UpdateID       string `json:"update_id"`
	MessagePreview string `json:"message_preview"`
}

// AccountPayload describes a registration or approval outcome.
type AccountPayload struct {
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  domain.Role `json:"role"`
}

// ContactDraftPayload describes a composed contact mail.
type ContactDraftPayload struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	From      string `json:"from"`
}
