package wol

import (
	"bytes"
	"net"
	"testing"
	"time"

	"github.com/wakehub/wakehub/internal/mac"
)

func TestBuildMagicPacket(t *testing.T) {
	hwAddr := []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}

	packet, err := BuildMagicPacket(hwAddr)
	if err != nil {
		t.Fatalf("BuildMagicPacket() error = %v", err)
	}

	if len(packet) != PacketSize {
		t.Fatalf("packet length = %d, want %d", len(packet), PacketSize)
	}

	// First 6 bytes are the 0xFF synchronization stream
	for i := 0; i < 6; i++ {
		if packet[i] != 0xFF {
			t.Errorf("packet[%d] = 0x%02x, want 0xFF", i, packet[i])
		}
	}

	// Remaining 96 bytes are the MAC repeated 16 times
	for i := 0; i < 16; i++ {
		start := 6 + i*6
		if !bytes.Equal(packet[start:start+6], hwAddr) {
			t.Errorf("repetition %d = %x, want %x", i, packet[start:start+6], hwAddr)
		}
	}
}

func TestBuildMagicPacketWrongLength(t *testing.T) {
	if _, err := BuildMagicPacket([]byte{0xAA, 0xBB}); err == nil {
		t.Error("BuildMagicPacket() with short address should fail")
	}
}

func TestSendInvalidMAC(t *testing.T) {
	s := NewSender()
	if err := s.Send("not-a-mac", "", 0); err != mac.ErrInvalidMAC {
		t.Errorf("Send() error = %v, want ErrInvalidMAC", err)
	}
}

func TestSendInvalidDestination(t *testing.T) {
	s := NewSender()
	if err := s.Send("aa:bb:cc:dd:ee:ff", "not an ip", 9); err == nil {
		t.Error("Send() with invalid destination should fail")
	}
}

func TestSendToLocalListener(t *testing.T) {
	// Listen on an ephemeral loopback UDP port and verify the datagram
	// that arrives is a correctly formed magic packet.
	listener, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
	if err != nil {
		t.Fatalf("failed to create listener: %v", err)
	}
	defer listener.Close()

	port := listener.LocalAddr().(*net.UDPAddr).Port

	received := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 256)
		_ = listener.SetReadDeadline(time.Now().Add(5 * time.Second))
		n, _, err := listener.ReadFromUDP(buf)
		if err != nil {
			close(received)
			return
		}
		received <- buf[:n]
	}()

	s := NewSender()
	if err := s.Send("aa-bb-cc-dd-ee-ff", "127.0.0.1", port); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	packet, ok := <-received
	if !ok {
		t.Fatal("no datagram received")
	}

	if len(packet) != PacketSize {
		t.Fatalf("received %d bytes, want %d", len(packet), PacketSize)
	}

	want, err := BuildMagicPacket([]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF})
	if err != nil {
		t.Fatalf("BuildMagicPacket() error = %v", err)
	}
	if !bytes.Equal(packet, want) {
		t.Error("received datagram does not match expected magic packet")
	}
}
