// Wakehub is a Wake-on-LAN manager for small networks.
//
// It keeps a registry of devices keyed by MAC address, sends magic packets to
// power them on, and probes a TCP port on each device to report who is
// currently up. The registry, wake dispatch, and probing are available both
// from the command line and over an HTTP API started with 'wakehub serve'.
//
// Usage:
//
//	wakehub [command] [flags]
//
// See 'wakehub --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wakehub/wakehub/internal/config"
	"github.com/wakehub/wakehub/internal/logging"
	"github.com/wakehub/wakehub/internal/registry"
	"github.com/wakehub/wakehub/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var storePath string

var rootCmd = &cobra.Command{
	Use:   "wakehub",
	Short: "Wake-on-LAN device manager",
	Long: `Wakehub manages a registry of network devices and powers them on remotely
with Wake-on-LAN magic packets.

Devices are registered by MAC address with an optional host address used for
liveness probing, a free-text remark, and an optional broadcast address for
waking across subnets. The registry lives in a single JSON file.

Run 'wakehub serve' to expose the same operations over an HTTP API.`,
	Version: version.Version,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Device registry file (default: <config dir>/devices.json)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(deviceCmd)
	rootCmd.AddCommand(wakeCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wakehub %s (commit: %s)\n", version.Version, version.Commit)
	},
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if storePath != "" {
		cfg.StorePath = storePath
	}
	return cfg, nil
}

// openStore initializes logging from the environment and opens the device
// registry at the configured location.
func openStore() (*config.Config, *registry.Store, error) {
	if err := logging.InitializeFromEnv(); err != nil {
		return nil, nil, err
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	path, err := cfg.ResolveStorePath()
	if err != nil {
		return nil, nil, err
	}

	store, err := registry.Open(path)
	if err != nil {
		return nil, nil, err
	}

	return cfg, store, nil
}
