package probe

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/wakehub/wakehub/internal/logging"
)

const (
	// DefaultPort is the port probed when none is specified. Remote
	// desktop (3389) is used because a listening RDP service is a strong
	// signal the machine is up and usable.
	DefaultPort = 3389

	// DefaultTimeout bounds a single connection attempt.
	DefaultTimeout = 1 * time.Second

	// DefaultConcurrency caps in-flight probes during a fan-out so a
	// large registry cannot exhaust sockets or file descriptors.
	DefaultConcurrency = 20
)

// Result is the outcome of a single liveness probe. Latency is round-trip
// time to connection establishment in whole milliseconds and is nil whenever
// the target is offline. All failure modes (refused, timeout, unreachable,
// malformed address) collapse into Online=false; the prober never surfaces
// an error.
type Result struct {
	Online  bool   `json:"online"`
	Latency *int64 `json:"latency"`
}

// DeviceStatus is a probe result correlated to a registered device.
type DeviceStatus struct {
	MAC     string `json:"mac"`
	Online  bool   `json:"online"`
	Latency *int64 `json:"latency"`
}

// Prober performs bounded-timeout TCP connection attempts.
type Prober struct {
	// Timeout bounds each connection attempt. Zero means DefaultTimeout.
	Timeout time.Duration
}

// NewProber creates a prober with the given per-attempt timeout.
func NewProber(timeout time.Duration) *Prober {
	return &Prober{Timeout: timeout}
}

// Probe attempts a TCP connection to address:port and reports reachability.
// An empty address short-circuits to offline without dialing. On success the
// connection is closed immediately; only establishment latency is measured.
func (p *Prober) Probe(ctx context.Context, address string, port int) Result {
	if address == "" {
		return Result{}
	}
	if port == 0 {
		port = DefaultPort
	}

	timeout := p.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	dialer := net.Dialer{Timeout: timeout}
	target := net.JoinHostPort(address, fmt.Sprintf("%d", port))

	start := time.Now()
	conn, err := dialer.DialContext(ctx, "tcp", target)
	if err != nil {
		logging.Debug("Probe failed",
			zap.String("target", target),
			zap.Error(err),
		)
		return Result{}
	}
	_ = conn.Close()

	latency := time.Since(start).Milliseconds()
	return Result{Online: true, Latency: &latency}
}
