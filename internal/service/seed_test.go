package service

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/ideaflow/internal/domain"
	"github.com/spec-kit/ideaflow/internal/persistence"
	"github.com/spec-kit/ideaflow/internal/repository"
)

func TestSeeder(t *testing.T) {
	store := persistence.NewMemoryBlobStore()
	ideas := repository.NewIdeaRepository(store)
	users := repository.NewUserRepository(store)
	seeder := NewSeeder(ideas, users, bcrypt.MinCost)
	ctx := context.Background()

	n, err := seeder.SeedIdeas(ctx)
	if err != nil {
		t.Fatalf("SeedIdeas() error = %v", err)
	}
	if n != 3 {
		t.Fatalf("SeedIdeas() = %d, want 3", n)
	}
	if n, _ := seeder.SeedIdeas(ctx); n != 0 {
		t.Errorf("second SeedIdeas() = %d, want 0", n)
	}

	all, _ := ideas.List(ctx, repository.IdeaFilter{})
	if all[2].Title != "Energy Monitoring Dashboard" || all[2].Status != domain.IdeaStatusInProgress || len(all[2].Progress) != 2 {
		t.Errorf("third idea = %+v", all[2])
	}

	created, err := seeder.SeedDevelopers(ctx, "secret1")
	if err != nil {
		t.Fatalf("SeedDevelopers() error = %v", err)
	}
	if created != len(DemoDevelopers) {
		t.Errorf("SeedDevelopers() = %d, want %d", created, len(DemoDevelopers))
	}
	if again, _ := seeder.SeedDevelopers(ctx, "secret1"); again != 0 {
		t.Errorf("second SeedDevelopers() = %d, want 0", again)
	}
	devs, _ := users.ListByRole(ctx, domain.RoleDeveloper)
	if len(devs) != 3 {
		t.Errorf("developers = %d, want 3", len(devs))
	}
}
