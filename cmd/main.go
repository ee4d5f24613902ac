package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"hepatotrack/cmd/bootstrap"
	"hepatotrack/config"
	"hepatotrack/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hepatotrack",
		Short: "Hepatology patient tracking API",
	}
	rootCmd.PersistentFlags().String("config", ".env", "Path to the .env configuration file")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Run: func(cmd *cobra.Command, args []string) {
			configPath, _ := cmd.Flags().GetString("config")

			// Initialize application with all dependencies
			app, err := bootstrap.New(configPath)
			if err != nil {
				logrus.Fatalf("Failed to initialize application: %v", err)
			}

			// Run the application
			app.Run()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL schema",
	}

	withMigrator := func(run func(*database.Migrator) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			mg, err := database.NewMigrator(cfg.DB)
			if err != nil {
				return err
			}
			defer mg.Close()

			return run(mg)
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: withMigrator(func(mg *database.Migrator) error {
			if err := mg.Up(); err != nil {
				return err
			}
			fmt.Println("Schema is up to date.")
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: withMigrator(func(mg *database.Migrator) error {
			if err := mg.Down(); err != nil {
				return err
			}
			fmt.Println("Rolled back one migration.")
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show the applied schema version",
		RunE: withMigrator(func(mg *database.Migrator) error {
			version, dirty, err := mg.Version()
			if err != nil {
				return err
			}
			fmt.Printf("version=%d dirty=%t\n", version, dirty)
			return nil
		}),
	})

	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the research CSV export to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			output, _ := cmd.Flags().GetString("output")

			app, err := bootstrap.New(configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			file, err := app.Research.ExportCSV(ctx)
			if err != nil {
				return err
			}

			if output == "" {
				output = file.Filename
			}
			if err := os.WriteFile(output, file.Content, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Printf("Exported %d bytes to %s\n", len(file.Content), output)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "Output file (defaults to HepatoTrack_Export_<date>.csv)")

	return cmd
}
