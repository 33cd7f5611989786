package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/KieuOanh0106/sales-dashboard/internal/config"
	"github.com/KieuOanh0106/sales-dashboard/internal/core"
	"github.com/KieuOanh0106/sales-dashboard/internal/logging"
	"github.com/KieuOanh0106/sales-dashboard/internal/migration"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "salesctl",
		Short:        "Manage sales dashboard data",
		SilenceUsage: true,
	}
	root.AddCommand(newImportCmd())
	root.AddCommand(newResetCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newImportCmd() *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a sales CSV or TSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, pool, err := setup(cmd.Context(), !skipMigrate)
			if err != nil {
				return err
			}
			defer pool.Close()

			res, err := service.ImportPath(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			fmt.Printf("Imported %d order items\n", res.Rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Skip running schema migrations before the import")

	return cmd
}

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all imported sales data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete all data without --yes")
			}

			service, pool, err := setup(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := service.Reset(cmd.Context()); err != nil {
				return fmt.Errorf("reset: %w", err)
			}
			fmt.Println("All sales data deleted")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion of all data")

	return cmd
}

// setup loads configuration, connects to the database and optionally runs
// migrations. The caller owns the returned pool.
func setup(ctx context.Context, migrate bool) (*core.Service, *pgxpool.Pool, error) {
	if err := godotenv.Overload(); err == nil {
		slog.Debug("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	if migrate {
		if err := migration.Run(cfg.Database.URL); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	return core.NewService(pool, cfg), pool, nil
}
