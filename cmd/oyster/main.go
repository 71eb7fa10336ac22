package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/oysterbuild/backend/internal/interfaces/cli/migrate"
	"github.com/oysterbuild/backend/internal/interfaces/cli/seed"
	"github.com/oysterbuild/backend/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "oyster",
		Short: "Oyster - construction project management backend",
		Long:  `Oyster is the construction project management backend with built-in server, migration, and seeding commands.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
