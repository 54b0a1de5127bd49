package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/ideaflow/internal/auth"
	"github.com/spec-kit/ideaflow/internal/config"
	"github.com/spec-kit/ideaflow/internal/persistence"
	"github.com/spec-kit/ideaflow/internal/repository"
	"github.com/spec-kit/ideaflow/internal/service"
)

var (
	seedDevelopers        bool
	seedDeveloperPassword string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo data into the configured store",
	Long: `Load the demo ideas into the store selected by STORAGE_BACKEND.

Ideas are only written when the store holds none. The memory backend is
refused because nothing written to it outlives this command; for an
in-memory server set SEED_DEMO_IDEAS=true on the api instead. With --developers the
demo developer accounts (Alice Dev, Bob Code, Charlie Tech) are created as
approved developers sharing --developer-password.

Example:
  STORAGE_BACKEND=sqlite ideactl seed --developers --developer-password changeme`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedDevelopers && len(seedDeveloperPassword) < auth.MinPasswordLength {
			return errors.New("--developer-password must be at least 6 characters")
		}
		if len(seedDeveloperPassword) > auth.MaxPasswordLength {
			return errors.New("--developer-password must be at most 72 bytes")
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := checkSeedTarget(cfg.Storage.Backend); err != nil {
			return err
		}
		ctx := context.Background()
		store, err := persistence.NewBlobStore(ctx, *cfg, zap.NewNop())
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer store.Close()

		seeder := service.NewSeeder(repository.NewIdeaRepository(store), repository.NewUserRepository(store), cfg.Auth.BcryptCost)
		ideas, err := seeder.SeedIdeas(ctx)
		if err != nil {
			return fmt.Errorf("seed ideas: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d idea(s) into %s storage.\n", ideas, cfg.Storage.Backend)

		if seedDevelopers {
			devs, err := seeder.SeedDevelopers(ctx, seedDeveloperPassword)
			if err != nil {
				return fmt.Errorf("seed developers: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d developer account(s).\n", devs)
		}
		return nil
	},
}

// checkSeedTarget rejects backends whose contents die with the process.
func checkSeedTarget(backend string) error {
	if backend == config.StorageMemory {
		return fmt.Errorf("STORAGE_BACKEND=%s does not persist; choose %s, %s or %s",
			backend, config.StorageSQLite, config.StoragePostgres, config.StorageRedis)
	}
	return nil
}

func init() {
	seedCmd.Flags().BoolVar(&seedDevelopers, "developers", false, "also create demo developer accounts")
	seedCmd.Flags().StringVar(&seedDeveloperPassword, "developer-password", "", "password for demo developer accounts")
	rootCmd.AddCommand(seedCmd)
}
