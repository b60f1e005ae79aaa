package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wakehub/wakehub/internal/probe"
	"github.com/wakehub/wakehub/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Probe every registered device and print the results",
	Long: `Probe every registered device concurrently and print who is online.

Each device with a configured host address gets a TCP connection attempt
against the configured probe port (default 3389). Devices without an address
are listed as offline without being probed.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, store, err := openStore()
	if err != nil {
		return err
	}

	devices := store.List()
	pool := probe.NewPool(cfg.Probe.Port, cfg.Probe.Timeout(), cfg.Probe.Concurrency)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	statuses := pool.ProbeAll(ctx, devices)
	fmt.Print(ui.StatusTable(devices, statuses))
	return nil
}
