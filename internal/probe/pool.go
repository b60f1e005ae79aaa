package probe

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wakehub/wakehub/internal/logging"
	"github.com/wakehub/wakehub/internal/registry"
)

// Pool fans a liveness probe out over many devices with a fixed worker
// ceiling. One probe's failure, timeout, or panic never aborts or delays
// collection of the other devices' results.
type Pool struct {
	prober      *Prober
	port        int
	concurrency int
}

// NewPool creates a probe pool. Zero values select DefaultPort,
// DefaultTimeout, and DefaultConcurrency.
func NewPool(port int, timeout time.Duration, concurrency int) *Pool {
	if port == 0 {
		port = DefaultPort
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	return &Pool{
		prober:      NewProber(timeout),
		port:        port,
		concurrency: concurrency,
	}
}

// ProbeAll probes every device concurrently and returns one status per input
// device, in input order. Devices without an address are reported offline
// immediately without dispatching a connection attempt. The call returns only
// once every device has a result.
func (p *Pool) ProbeAll(ctx context.Context, devices []registry.Device) []DeviceStatus {
	statuses := make([]DeviceStatus, len(devices))

	type job struct {
		index  int
		device registry.Device
	}

	jobs := make(chan job)

	workers := p.concurrency
	if workers > len(devices) {
		workers = len(devices)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				statuses[j.index] = p.probeOne(ctx, j.device)
			}
		}()
	}

	for i, d := range devices {
		if d.IP == "" {
			// No address to probe; report offline without dispatch.
			statuses[i] = DeviceStatus{MAC: d.MAC}
			continue
		}
		jobs <- job{index: i, device: d}
	}
	close(jobs)

	wg.Wait()

	return statuses
}

// probeOne runs a single probe and converts any panic into a plain offline
// status so one device cannot take down a fan-out.
func (p *Pool) probeOne(ctx context.Context, device registry.Device) (status DeviceStatus) {
	status = DeviceStatus{MAC: device.MAC}

	defer func() {
		if r := recover(); r != nil {
			logging.Error("Probe panicked",
				zap.String("mac", device.MAC),
				zap.Any("panic", r),
			)
			status = DeviceStatus{MAC: device.MAC}
		}
	}()

	result := p.prober.Probe(ctx, device.IP, p.port)
	status.Online = result.Online
	status.Latency = result.Latency
	return status
}
