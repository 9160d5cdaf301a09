package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"biography-site/internal/sessions"
	"biography-site/internal/shared/storage/db"
)

//nolint:gochecknoglobals // Cobra boilerplate
var pruneOlderThan time.Duration

//nolint:gochecknoglobals // Cobra boilerplate
var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Inspect the unlock session registry",
	Long: `Inspect the unlock sessions recorded in DATABASE_URL. Sessions kept in
memory by a server without a database are not visible here.`,
}

//nolint:gochecknoglobals // Cobra boilerplate
var sessionsCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of recorded unlock sessions",
	Args:  cobra.NoArgs,
	RunE:  runSessionsCount,
}

//nolint:gochecknoglobals // Cobra boilerplate
var sessionsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete unlock sessions idle for longer than --older-than",
	Long: `Delete unlock sessions whose last visit is older than --older-than. Visitors
whose session is pruned see the password prompt again.

Example:
  biographyctl sessions prune --older-than 720h`,
	Args: cobra.NoArgs,
	RunE: runSessionsPrune,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsCountCmd, sessionsPruneCmd)
	sessionsPruneCmd.Flags().DurationVar(&pruneOlderThan, "older-than", 30*24*time.Hour, "idle age after which sessions are deleted")
}

func openSessions(ctx context.Context) (svc *sessions.Service, sqlDB *sql.DB, err error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	target, err := db.ParseURL(cfg.DatabaseURL)
	if err != nil {
		err = errors.Wrap(err, "DATABASE_URL")
		return nil, nil, err
	}
	sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		err = errors.Wrap(err, "failed to connect database")
		return nil, nil, err
	}
	svc = sessions.NewService(&sessions.SQLRepo{DB: sqlDB, Dialect: target.Dialect})
	return svc, sqlDB, nil
}

func runSessionsCount(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	svc, sqlDB, err := openSessions(ctx)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	n, err := svc.Count(ctx)
	if err != nil {
		err = errors.Wrap(err, "failed to count sessions")
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), n)
	return nil
}

func runSessionsPrune(cmd *cobra.Command, args []string) (err error) {
	if pruneOlderThan <= 0 {
		err = errors.New("--older-than must be positive")
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	svc, sqlDB, err := openSessions(ctx)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	n, err := svc.Prune(ctx, pruneOlderThan)
	if err != nil {
		err = errors.Wrap(err, "failed to prune sessions")
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "pruned %d sessions\n", n)
	return nil
}
