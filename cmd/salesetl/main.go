package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/salesetl/internal/clock"
	"github.com/railzwaylabs/salesetl/internal/config"
	"github.com/railzwaylabs/salesetl/internal/etl"
	"github.com/railzwaylabs/salesetl/internal/extract"
	"github.com/railzwaylabs/salesetl/internal/load"
	"github.com/railzwaylabs/salesetl/internal/migration"
	"github.com/railzwaylabs/salesetl/internal/observability"
	"github.com/railzwaylabs/salesetl/internal/transform"
	"github.com/railzwaylabs/salesetl/pkg/db"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "salesetl",
		Short:   "Sales batch ETL",
		Version: readVersionFromEnv(),
	}
	root.AddCommand(newMigrateCmd(), newRunCmd(), newAllCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the destination schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Execute one ETL run",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runETL()
		},
	}
}

func newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Apply the schema, then execute one ETL run",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runMigrate(); err != nil {
				return err
			}
			return runETL()
		},
	}
}

func runMigrate() error {
	app := fx.New(
		fx.NopLogger,
		config.Module,
		observability.Module,
		db.Module,
		migration.Module,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return nil
}

func runETL() error {
	var runErr error
	app := fx.New(
		fx.NopLogger,
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		extract.Module,
		transform.Module,
		load.Module,
		etl.Module,
		fx.Invoke(func(runner *etl.Runner) {
			runErr = runner.Run(context.Background())
		}),
	)

	if err := app.Start(context.Background()); err != nil {
		return fmt.Errorf("etl run failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return runErr
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func readVersionFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("APP_VERSION")); v != "" {
		return v
	}
	return "dev"
}
