package seed

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	billingUsecases "github.com/oysterbuild/backend/internal/application/billing/usecases"
	"github.com/oysterbuild/backend/internal/application/permission"
	"github.com/oysterbuild/backend/internal/infrastructure/config"
	"github.com/oysterbuild/backend/internal/infrastructure/database"
	"github.com/oysterbuild/backend/internal/infrastructure/repository"
	"github.com/oysterbuild/backend/internal/shared/biztime"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed reference data",
		Long:  `Install the default roles, permissions, and plan catalog. Safe to run repeatedly.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	gdb := database.Get()
	ctx := context.Background()

	seeder := permission.NewSeeder(
		repository.NewRoleRepository(gdb),
		repository.NewPermissionRepository(gdb),
		repository.NewRolePermissionRepository(gdb),
		log,
	)
	if err := seeder.Seed(ctx); err != nil {
		return fmt.Errorf("failed to seed roles and permissions: %w", err)
	}

	planSeeder := billingUsecases.NewSeedPlansUseCase(
		repository.NewPlanRepository(gdb),
		repository.NewPackageRepository(gdb),
		log,
	)
	if err := planSeeder.Execute(ctx); err != nil {
		return fmt.Errorf("failed to seed plans: %w", err)
	}

	log.Infow("seeding completed", "environment", env)
	return nil
}
