package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wakehub/wakehub/internal/mac"
	"github.com/wakehub/wakehub/internal/ui"
	"github.com/wakehub/wakehub/internal/wol"
)

var (
	wakePort      int
	wakeBroadcast string
)

var wakeCmd = &cobra.Command{
	Use:   "wake MAC...",
	Short: "Send Wake-on-LAN magic packets",
	Long: `Send a magic packet to one or more devices.

For registered devices the configured broadcast address is used; unregistered
MACs are woken via the global broadcast (255.255.255.255). Wake-on-LAN is
fire-and-forget: success only means the packet was handed to the network
stack, not that the device powered on.`,
	Example: `  # Wake a registered device
  wakehub wake aa:bb:cc:dd:ee:ff

  # Wake several devices at once
  wakehub wake aa:bb:cc:dd:ee:ff 00-11-22-33-44-55

  # Override destination and port
  wakehub wake aa:bb:cc:dd:ee:ff --broadcast 192.168.2.255 --port 7`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWake,
}

func init() {
	wakeCmd.Flags().IntVar(&wakePort, "port", 0, "UDP port for the magic packet (default from config, 9)")
	wakeCmd.Flags().StringVar(&wakeBroadcast, "broadcast", "", "Destination address override")
}

func runWake(cmd *cobra.Command, args []string) error {
	cfg, store, err := openStore()
	if err != nil {
		return err
	}

	port := wakePort
	if port == 0 {
		port = cfg.WakePort
	}

	sender := wol.NewSender()
	failures := 0

	for _, macArg := range args {
		if !mac.Valid(macArg) {
			fmt.Println(ui.ErrorStyle.Render(fmt.Sprintf("%q is not a valid MAC address", macArg)))
			failures++
			continue
		}

		destination := wakeBroadcast
		if destination == "" {
			if device, ok := store.Find(macArg); ok {
				destination = device.BroadcastIP
			}
		}

		if err := sender.Send(macArg, destination, port); err != nil {
			fmt.Println(ui.ErrorStyle.Render(fmt.Sprintf("Failed to wake %s: %v", mac.Normalize(macArg), err)))
			failures++
			continue
		}

		fmt.Printf("Magic packet sent to %s\n", mac.Normalize(macArg))
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d wake(s) failed", failures, len(args))
	}
	return nil
}
