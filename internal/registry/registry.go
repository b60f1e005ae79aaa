package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/wakehub/wakehub/internal/logging"
	"github.com/wakehub/wakehub/internal/mac"
)

var (
	// ErrDuplicate indicates an add for a MAC that is already registered.
	ErrDuplicate = errors.New("device already registered")

	// ErrNotFound indicates a lookup or delete for an unknown MAC.
	ErrNotFound = errors.New("device not found")
)

// Device is a single registered device. MAC is always stored in canonical
// form and is the unique key; the optional fields are omitted from the
// persisted file when empty.
type Device struct {
	MAC         string `json:"mac"`
	IP          string `json:"ip,omitempty"`           // Host address, used for probing and search only
	Remark      string `json:"remark,omitempty"`       // Free-text label
	BroadcastIP string `json:"broadcast_ip,omitempty"` // Magic packet destination; empty = global broadcast
}

// Store is a file-backed device registry. The backing file holds a JSON
// array of devices in insertion order and is fully rewritten on every
// mutation. All operations are safe for concurrent use; a single mutex
// serializes the load-modify-save cycle so concurrent writers cannot lose
// updates.
type Store struct {
	path string

	mu      sync.Mutex
	devices []Device
}

// Open loads the registry from path, creating an empty registry if the file
// does not exist.
//
// A corrupt or unparseable file is treated as empty rather than returned as
// an error. This is a deliberate availability-over-correctness tradeoff: the
// damaged file is logged loudly and left untouched on disk until the next
// successful save overwrites it.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read device store: %w", err)
	}

	var devices []Device
	if err := json.Unmarshal(data, &devices); err != nil {
		logging.Error("Device store is corrupt, starting with an empty registry",
			zap.String("path", path),
			zap.Error(err),
		)
		return s, nil
	}

	s.devices = devices
	return s, nil
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// List returns all devices in insertion order. The result is never nil so it
// serializes as an empty JSON array rather than null.
func (s *Store) List() []Device {
	s.mu.Lock()
	defer s.mu.Unlock()

	devices := make([]Device, len(s.devices))
	copy(devices, s.devices)
	return devices
}

// Add validates and registers a new device. The stored MAC is the canonical
// form of candidate.MAC; optional fields are kept only when non-empty.
// Returns mac.ErrInvalidMAC for a malformed MAC and ErrDuplicate if the
// canonical MAC is already registered (under any input spelling).
func (s *Store) Add(candidate Device) (Device, error) {
	canonical := mac.Normalize(candidate.MAC)
	if canonical == "" {
		return Device{}, mac.ErrInvalidMAC
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(canonical) >= 0 {
		return Device{}, ErrDuplicate
	}

	device := Device{
		MAC:         canonical,
		IP:          candidate.IP,
		Remark:      candidate.Remark,
		BroadcastIP: candidate.BroadcastIP,
	}

	s.devices = append(s.devices, device)
	if err := s.save(); err != nil {
		// Roll back the in-memory append so memory and disk stay in sync.
		s.devices = s.devices[:len(s.devices)-1]
		return Device{}, err
	}

	return device, nil
}

// Remove deletes the device whose canonical MAC matches macAddr.
// Returns ErrNotFound if no such device is registered.
func (s *Store) Remove(macAddr string) error {
	canonical := mac.Normalize(macAddr)

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(canonical)
	if i < 0 {
		return ErrNotFound
	}

	removed := s.devices[i]
	s.devices = append(s.devices[:i], s.devices[i+1:]...)
	if err := s.save(); err != nil {
		// Reinsert at the original position on save failure.
		s.devices = append(s.devices[:i], append([]Device{removed}, s.devices[i:]...)...)
		return err
	}

	return nil
}

// Find looks up a device by MAC in any textual form.
func (s *Store) Find(macAddr string) (Device, bool) {
	canonical := mac.Normalize(macAddr)

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(canonical); i >= 0 {
		return s.devices[i], true
	}
	return Device{}, false
}

// Search returns devices whose MAC, IP, or remark contains query
// (case-insensitive). An empty query returns the full registry.
// Result order is registry order; there is no ranking.
func (s *Store) Search(query string) []Device {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.List()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	matches := []Device{}
	for _, d := range s.devices {
		if strings.Contains(strings.ToLower(d.MAC), query) ||
			strings.Contains(strings.ToLower(d.IP), query) ||
			strings.Contains(strings.ToLower(d.Remark), query) {
			matches = append(matches, d)
		}
	}
	return matches
}

// Len returns the number of registered devices.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.devices)
}

// indexOf returns the position of the device with the given canonical MAC,
// or -1. Callers must hold s.mu.
func (s *Store) indexOf(canonical string) int {
	for i, d := range s.devices {
		if d.MAC == canonical {
			return i
		}
	}
	return -1
}

// save writes the full device list to disk, pretty-printed. Writes go to a
// temporary file first and are moved into place with an atomic rename so a
// crash mid-write cannot corrupt the store. Callers must hold s.mu.
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	devices := s.devices
	if devices == nil {
		devices = []Device{}
	}

	data, err := json.MarshalIndent(devices, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal device store: %w", err)
	}
	data = append(data, '\n')

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary device store: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save device store: %w", err)
	}

	return nil
}
