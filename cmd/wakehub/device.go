package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wakehub/wakehub/internal/mac"
	"github.com/wakehub/wakehub/internal/registry"
	"github.com/wakehub/wakehub/internal/ui"
)

var (
	addIP          string
	addRemark      string
	addBroadcastIP string
)

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Manage the device registry",
}

var deviceAddCmd = &cobra.Command{
	Use:   "add MAC",
	Short: "Register a device",
	Long: `Register a device by MAC address.

The MAC is accepted in any common form (colons, dashes, dots, bare hex) and
stored canonically. Records are immutable; to change a field, remove the
device and add it again.`,
	Example: `  wakehub device add aa:bb:cc:dd:ee:ff --ip 192.168.1.50 --remark "office desktop"

  # Waking across subnets needs the target subnet's broadcast address
  wakehub device add aa-bb-cc-dd-ee-ff --broadcast 192.168.2.255`,
	Args: cobra.ExactArgs(1),
	RunE: runDeviceAdd,
}

var deviceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered devices",
	Args:  cobra.NoArgs,
	RunE:  runDeviceList,
}

var deviceRemoveCmd = &cobra.Command{
	Use:     "remove MAC",
	Aliases: []string{"rm"},
	Short:   "Remove a device",
	Args:    cobra.ExactArgs(1),
	RunE:    runDeviceRemove,
}

var deviceSearchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search devices by MAC, IP, or remark",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeviceSearch,
}

func init() {
	deviceAddCmd.Flags().StringVar(&addIP, "ip", "", "Host address used for liveness probing and search")
	deviceAddCmd.Flags().StringVar(&addRemark, "remark", "", "Free-text label")
	deviceAddCmd.Flags().StringVar(&addBroadcastIP, "broadcast", "", "Broadcast address for magic packets (default: 255.255.255.255)")

	deviceCmd.AddCommand(deviceAddCmd)
	deviceCmd.AddCommand(deviceListCmd)
	deviceCmd.AddCommand(deviceRemoveCmd)
	deviceCmd.AddCommand(deviceSearchCmd)
}

func runDeviceAdd(cmd *cobra.Command, args []string) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}

	device, err := store.Add(registry.Device{
		MAC:         args[0],
		IP:          addIP,
		Remark:      addRemark,
		BroadcastIP: addBroadcastIP,
	})
	switch {
	case errors.Is(err, mac.ErrInvalidMAC):
		return fmt.Errorf("%q is not a valid MAC address", args[0])
	case errors.Is(err, registry.ErrDuplicate):
		return fmt.Errorf("device %s is already registered", mac.Normalize(args[0]))
	case err != nil:
		return err
	}

	fmt.Printf("Registered %s\n", device.MAC)
	return nil
}

func runDeviceList(cmd *cobra.Command, args []string) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}

	fmt.Print(ui.DeviceTable(store.List()))
	return nil
}

func runDeviceRemove(cmd *cobra.Command, args []string) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}

	if err := store.Remove(args[0]); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return fmt.Errorf("no device registered as %q", args[0])
		}
		return err
	}

	fmt.Printf("Removed %s\n", mac.Normalize(args[0]))
	return nil
}

func runDeviceSearch(cmd *cobra.Command, args []string) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}

	fmt.Print(ui.DeviceTable(store.Search(args[0])))
	return nil
}
