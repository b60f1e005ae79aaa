package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/wakehub/wakehub/internal/config"
	"github.com/wakehub/wakehub/internal/probe"
	"github.com/wakehub/wakehub/internal/registry"
	"github.com/wakehub/wakehub/internal/wol"
)

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()

	store, err := registry.Open(filepath.Join(t.TempDir(), "devices.json"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	cfg := config.Default()
	srv := New(cfg, store)
	return srv, srv.routes()
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAddDevice(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/devices", map[string]string{
		"mac":    "aa-bb-cc-dd-ee-ff",
		"ip":     "192.168.1.50",
		"remark": "desk",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		OK     bool            `json:"ok"`
		Device registry.Device `json:"device"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if !resp.OK || resp.Device.MAC != "AA:BB:CC:DD:EE:FF" {
		t.Errorf("response = %+v, want ok with canonical MAC", resp)
	}
}

func TestAddDeviceInvalidMAC(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/devices", map[string]string{"mac": "nope"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAddDeviceDuplicate(t *testing.T) {
	_, handler := newTestServer(t)

	first := doJSON(t, handler, http.MethodPost, "/api/devices", map[string]string{"mac": "AA:BB:CC:DD:EE:FF"})
	if first.Code != http.StatusCreated {
		t.Fatalf("first add status = %d, want 201", first.Code)
	}

	dup := doJSON(t, handler, http.MethodPost, "/api/devices", map[string]string{"mac": "aabbccddeeff"})
	if dup.Code != http.StatusConflict {
		t.Errorf("duplicate add status = %d, want 409", dup.Code)
	}
}

func TestDeleteDevice(t *testing.T) {
	_, handler := newTestServer(t)

	doJSON(t, handler, http.MethodPost, "/api/devices", map[string]string{"mac": "AA:BB:CC:DD:EE:FF"})

	// Path MAC in alternate spelling is normalized before lookup
	rec := doJSON(t, handler, http.MethodDelete, "/api/devices/aa-bb-cc-dd-ee-ff", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("delete status = %d, want 200", rec.Code)
	}

	missing := doJSON(t, handler, http.MethodDelete, "/api/devices/aa-bb-cc-dd-ee-ff", nil)
	if missing.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", missing.Code)
	}
}

func TestListDevices(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/devices", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	// Empty registry must serialize as [] rather than null
	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("empty list body = %q, want []", got)
	}
}

func TestSearchDevices(t *testing.T) {
	_, handler := newTestServer(t)

	doJSON(t, handler, http.MethodPost, "/api/devices", map[string]string{"mac": "AA:BB:CC:DD:EE:FF", "remark": "office"})
	doJSON(t, handler, http.MethodPost, "/api/devices", map[string]string{"mac": "00:11:22:33:44:55", "remark": "lab"})

	rec := doJSON(t, handler, http.MethodGet, "/api/search?q=office", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var devices []registry.Device
	if err := json.Unmarshal(rec.Body.Bytes(), &devices); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(devices) != 1 || devices[0].MAC != "AA:BB:CC:DD:EE:FF" {
		t.Errorf("search result = %+v, want only the office device", devices)
	}
}

func TestWakeInvalidMAC(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/wake", map[string]any{"mac": "bogus"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestWakeUsesRegisteredBroadcast(t *testing.T) {
	_, handler := newTestServer(t)

	// Capture the datagram on a loopback UDP listener standing in for
	// the device's broadcast address.
	listener, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
	if err != nil {
		t.Fatalf("failed to create listener: %v", err)
	}
	defer listener.Close()
	port := listener.LocalAddr().(*net.UDPAddr).Port

	doJSON(t, handler, http.MethodPost, "/api/devices", map[string]string{
		"mac":          "aa:bb:cc:dd:ee:ff",
		"broadcast_ip": "127.0.0.1",
	})

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

	rec := doJSON(t, handler, http.MethodPost, "/api/wake", map[string]any{
		"mac":  "aa:bb:cc:dd:ee:ff",
		"port": port,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("wake status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	packet, ok := <-received
	if !ok {
		t.Fatal("no magic packet received on registered broadcast address")
	}
	if len(packet) != wol.PacketSize {
		t.Fatalf("packet length = %d, want %d", len(packet), wol.PacketSize)
	}

	want, _ := wol.BuildMagicPacket([]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF})
	if !bytes.Equal(packet, want) {
		t.Error("received datagram is not the expected magic packet")
	}
}

func TestProbeEndpoint(t *testing.T) {
	_, handler := newTestServer(t)

	tcpListener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to start listener: %v", err)
	}
	defer tcpListener.Close()
	go func() {
		for {
			conn, err := tcpListener.Accept()
			if err != nil {
				return
			}
			_ = conn.Close()
		}
	}()
	port := tcpListener.Addr().(*net.TCPAddr).Port

	rec := doJSON(t, handler, http.MethodPost, "/api/probe", map[string]any{
		"address": "127.0.0.1",
		"port":    port,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var result probe.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if !result.Online || result.Latency == nil {
		t.Errorf("probe result = %+v, want online with latency", result)
	}
}

func TestProbeEndpointMissingAddress(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/probe", map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestStatusEndpoint(t *testing.T) {
	_, handler := newTestServer(t)

	for i := 0; i < 3; i++ {
		doJSON(t, handler, http.MethodPost, "/api/devices", map[string]string{
			"mac": fmt.Sprintf("aa:bb:cc:dd:ee:%02d", i),
		})
	}

	rec := doJSON(t, handler, http.MethodGet, "/api/status", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var statuses []probe.DeviceStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &statuses); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(statuses) != 3 {
		t.Fatalf("got %d statuses, want 3", len(statuses))
	}
	for _, s := range statuses {
		// No device has an address, so every result is offline
		if s.Online || s.Latency != nil {
			t.Errorf("status for %s = %+v, want offline", s.MAC, s)
		}
	}
}
