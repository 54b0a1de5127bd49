package dto

import (
	"time"

	"github.com/spec-kit/ideaflow/internal/domain"
)

// SubmitIdeaRequest payload.
type SubmitIdeaRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AssignIdeaRequest payload.
type AssignIdeaRequest struct {
	Developer string `json:"developer"`
}

// ProgressRequest payload.
type ProgressRequest struct {
	Message string `json:"message"`
}

// IdeaResponse is the public view of an idea.
type IdeaResponse struct {
	ID                string             `json:"id"`
	Title             string             `json:"title"`
	Description       string             `json:"description"`
	CustomerName      string             `json:"customer_name"`
	CustomerEmail     string             `json:"customer_email"`
	Status            domain.IdeaStatus  `json:"status"`
	StatusLabel       string             `json:"status_label"`
	AssignedDeveloper *string            `json:"assigned_developer"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
	Progress          []ProgressResponse `json:"progress"`
}

// ProgressResponse is one progress log entry.
type ProgressResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NewIdeaResponse converts a domain idea.
func NewIdeaResponse(idea *domain.Idea) IdeaResponse {
	progress := make([]ProgressResponse, 0, len(idea.Progress))
	for _, update := range idea.Progress {
		progress = append(progress, NewProgressResponse(update))
	}
	return IdeaResponse{
		ID:                idea.ID,
		Title:             idea.Title,
		Description:       idea.Description,
		CustomerName:      idea.CustomerName,
		CustomerEmail:     idea.CustomerEmail,
		Status:            idea.Status,
		StatusLabel:       idea.Status.Label(),
		AssignedDeveloper: idea.AssignedDeveloper,
		CreatedAt:         idea.CreatedAt,
		UpdatedAt:         idea.UpdatedAt,
		Progress:          progress,
	}
}

// NewIdeaList converts a slice of ideas.
func NewIdeaList(ideas []domain.Idea) []IdeaResponse {
	out := make([]IdeaResponse, 0, len(ideas))
	for i := range ideas {
		out = append(out, NewIdeaResponse(&ideas[i]))
	}
	return out
}

// NewProgressResponse converts one progress entry.
func NewProgressResponse(update domain.ProgressUpdate) ProgressResponse {
	return ProgressResponse{ID: update.ID, Message: update.Message, Timestamp: update.Timestamp}
}
