// Package probe implements TCP liveness probing for registered devices.
//
// A probe is a timeout-bounded TCP connection attempt used as a heuristic for
// "device is powered on and reachable". Probe outcomes are a sum of two
// states, online with a latency measurement or offline; transient
// unreachability is the expected common case, so failures are collapsed into
// the offline state rather than surfaced as errors.
//
// Pool fans probes out over the whole registry through a fixed-size worker
// pool, so a status refresh over N devices completes in roughly one timeout
// interval rather than N of them, without unbounded socket usage.
package probe
