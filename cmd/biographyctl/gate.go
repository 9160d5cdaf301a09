package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"biography-site/biography/gate"
)

//nolint:gochecknoglobals // Cobra boilerplate
var gateCmd = &cobra.Command{
	Use:   "gate",
	Short: "Inspect the access gate configuration",
}

//nolint:gochecknoglobals // Cobra boilerplate
var gateCheckCmd = &cobra.Command{
	Use:   "check <password>",
	Short: "Report whether a password would unlock the site",
	Long: `Run one unlock attempt against the configured gate (GATE_ENABLED,
GATE_SECRET) with an empty in-memory flag store. Nothing is persisted and no
session is recorded.

Example:
  biographyctl gate check qpwoeiruty`,
	Args: cobra.ExactArgs(1),
	RunE: runGateCheck,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(gateCmd)
	gateCmd.AddCommand(gateCheckCmd)
}

func runGateCheck(cmd *cobra.Command, args []string) (err error) {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := context.Background()
	g := gate.New(gate.Config{Enabled: cfg.GateEnabled, Secret: cfg.GateSecret}, gate.NewMemoryFlags())
	state, err := g.Init(ctx)
	if err != nil {
		err = errors.Wrap(err, "failed to initialise gate")
		return err
	}
	out := cmd.OutOrStdout()
	if state == gate.Unlocked {
		fmt.Fprintln(out, "gate disabled: every visitor is unlocked")
		return nil
	}
	err = g.AttemptUnlock(ctx, args[0])
	if errors.Is(err, gate.ErrIncorrectPassword) {
		err = errors.New("password rejected")
		return err
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "password accepted")
	return nil
}
