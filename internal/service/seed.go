package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/ideaflow/internal/auth"
	"github.com/spec-kit/ideaflow/internal/domain"
	"github.com/spec-kit/ideaflow/internal/repository"
)

// Seeder loads demonstration data into empty stores.
type Seeder struct {
	ideas      repository.IdeaRepository
	users      repository.UserRepository
	bcryptCost int
}

// NewSeeder constructs a seeder.
func NewSeeder(ideas repository.IdeaRepository, users repository.UserRepository, bcryptCost int) *Seeder {
	return &Seeder{ideas: ideas, users: users, bcryptCost: bcryptCost}
}

// DemoDevelopers are the developer accounts created by SeedDevelopers.
var DemoDevelopers = []struct{ Name, Email string }{
	{"Alice Dev", "alice@techlearners.com"},
	{"Bob Code", "bob@techlearners.com"},
	{"Charlie Tech", "charlie@techlearners.com"},
}

func demoIdeas() []domain.Idea {
	ts := func(v string) time.Time {
		t, _ := time.Parse(time.RFC3339, v)
		return t
	}
	alice, bob := "Alice Dev", "Bob Code"
	return []domain.Idea{
		{
			Title:         "Smart Irrigation System",
			Description:   "Automated irrigation system for small farms using soil moisture sensors",
			CustomerName:  "John Farmer",
			CustomerEmail: "john@farm.com",
			Status:        domain.IdeaStatusPending,
			CreatedAt:     ts("2024-01-15T10:00:00Z"),
			UpdatedAt:     ts("2024-01-15T10:00:00Z"),
			Progress:      []domain.ProgressUpdate{},
		},
		{
			Title:             "Warehouse Inventory Tracker",
			Description:       "IoT solution for real-time inventory tracking in warehouses",
			CustomerName:      "Sarah Logistics",
			CustomerEmail:     "sarah@logistics.com",
			Status:            domain.IdeaStatusAssigned,
			AssignedDeveloper: &alice,
			CreatedAt:         ts("2024-01-10T14:30:00Z"),
			UpdatedAt:         ts("2024-01-12T09:15:00Z"),
			Progress: []domain.ProgressUpdate{
				{Message: "Initial requirements gathering completed", Timestamp: ts("2024-01-12T09:15:00Z")},
			},
		},
		{
			Title:             "Energy Monitoring Dashboard",
			Description:       "Web dashboard for monitoring energy consumption across multiple sites",
			CustomerName:      "Mike Energy",
			CustomerEmail:     "mike@energy.com",
			Status:            domain.IdeaStatusInProgress,
			AssignedDeveloper: &bob,
			CreatedAt:         ts("2024-01-08T16:45:00Z"),
			UpdatedAt:         ts("2024-01-14T11:20:00Z"),
			Progress: []domain.ProgressUpdate{
				{Message: "UI mockups completed", Timestamp: ts("2024-01-10T13:00:00Z")},
				{Message: "Backend API structure defined", Timestamp: ts("2024-01-14T11:20:00Z")},
			},
		},
	}
}

// SeedIdeas stores the demo ideas when the idea store is empty. It returns
// how many ideas were written.
func (s *Seeder) SeedIdeas(ctx context.Context) (int, error) {
	existing, err := s.ideas.List(ctx, repository.IdeaFilter{})
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	ideas := demoIdeas()
	for i := range ideas {
		ideas[i].ID = uuid.NewString()
		for j := range ideas[i].Progress {
			ideas[i].Progress[j].ID = uuid.NewString()
		}
		if err := s.ideas.Create(ctx, &ideas[i]); err != nil {
			return i, err
		}
	}
	return len(ideas), nil
}

// SeedDevelopers creates the demo developer accounts that do not exist yet,
// all sharing password.
func (s *Seeder) SeedDevelopers(ctx context.Context, password string) (int, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return 0, err
	}
	created := 0
	for _, dev := range DemoDevelopers {
		err := s.users.Create(ctx, &domain.User{
			ID:           uuid.NewString(),
			Email:        dev.Email,
			PasswordHash: hash,
			Name:         dev.Name,
			Role:         domain.RoleDeveloper,
			CreatedAt:    time.Now(),
		})
		if errors.Is(err, repository.ErrDuplicate) {
			continue
		}
		if err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
