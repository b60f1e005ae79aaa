package main

import (
	"github.com/spf13/cobra"

	"github.com/wakehub/wakehub/internal/probe"
	"github.com/wakehub/wakehub/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive status dashboard",
	Long: `Open a full-screen terminal dashboard showing every registered device with
its live status. Devices can be woken directly from the list.

Keys: ↑/↓ move, enter/w wake, r refresh, ? help, q quit.`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, store, err := openStore()
	if err != nil {
		return err
	}

	pool := probe.NewPool(cfg.Probe.Port, cfg.Probe.Timeout(), cfg.Probe.Concurrency)
	return tui.Run(store, pool, cfg.WakePort)
}
