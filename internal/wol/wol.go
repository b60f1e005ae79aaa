// Package wol builds and transmits Wake-on-LAN magic packets.
//
// A magic packet is a 102-byte UDP payload: 6 bytes of 0xFF followed by the
// target MAC address repeated 16 times. The packet is sent as a single
// broadcast-capable datagram; delivery is never acknowledged, so a nil error
// from Send only means the datagram was handed to the local network stack,
// not that any device actually woke up.
package wol

import (
	"fmt"
	"net"

	"github.com/wakehub/wakehub/internal/logging"
	"github.com/wakehub/wakehub/internal/mac"
)

const (
	// DefaultBroadcast is the all-subnets broadcast address used when a
	// device has no configured broadcast address.
	DefaultBroadcast = "255.255.255.255"

	// DefaultPort is the conventional WOL discard port (7 is also seen in
	// the wild, 9 is the more common choice).
	DefaultPort = 9

	// PacketSize is the exact magic packet length: 6 sync bytes plus
	// 16 repetitions of the 6-byte MAC.
	PacketSize = 6 + 16*mac.ByteLength

	syncBytes  = 6
	macRepeats = 16
)

// BuildMagicPacket constructs the 102-byte magic packet for the given 6-byte
// hardware address. The layout must be byte-exact for NIC wake listeners to
// recognize it.
func BuildMagicPacket(hwAddr []byte) ([]byte, error) {
	if len(hwAddr) != mac.ByteLength {
		return nil, fmt.Errorf("hardware address must be %d bytes, got %d", mac.ByteLength, len(hwAddr))
	}

	packet := make([]byte, PacketSize)

	for i := 0; i < syncBytes; i++ {
		packet[i] = 0xFF
	}

	for i := 0; i < macRepeats; i++ {
		copy(packet[syncBytes+i*mac.ByteLength:], hwAddr)
	}

	return packet, nil
}

// Sender transmits magic packets over UDP.
// The zero value is ready to use.
type Sender struct{}

// NewSender creates a new magic packet sender.
func NewSender() *Sender {
	return &Sender{}
}

// Send normalizes and validates macAddr, builds the magic packet, and
// transmits it as a single UDP datagram to destination:port. An empty
// destination falls back to the global broadcast address, a zero port to the
// standard WOL port.
//
// This is a best-effort, fire-and-forget operation: WOL has no
// acknowledgment, and a nil return does not guarantee the target woke.
func (s *Sender) Send(macAddr, destination string, port int) error {
	hwAddr, err := mac.Bytes(macAddr)
	if err != nil {
		return err
	}

	if destination == "" {
		destination = DefaultBroadcast
	}
	if port == 0 {
		port = DefaultPort
	}

	destIP := net.ParseIP(destination)
	if destIP == nil {
		return fmt.Errorf("invalid destination address: %s", destination)
	}

	packet, err := BuildMagicPacket(hwAddr)
	if err != nil {
		return err
	}

	// Binding to the unspecified address with port 0 lets the kernel pick
	// the interface; broadcast sends are permitted on such sockets.
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: 0})
	if err != nil {
		return fmt.Errorf("failed to create UDP socket: %w", err)
	}
	defer conn.Close()

	destAddr := &net.UDPAddr{IP: destIP, Port: port}
	if _, err := conn.WriteToUDP(packet, destAddr); err != nil {
		return fmt.Errorf("failed to send magic packet: %w", err)
	}

	logging.LogWake(mac.Normalize(macAddr), destination, port)

	return nil
}
