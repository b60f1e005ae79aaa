// Package tui implements the interactive terminal dashboard.
//
// The dashboard lists every registered device with its probed status and
// latency, refreshing on demand. A device can be woken directly from the
// list. Probes and wakes run as background commands so the UI never blocks
// on network I/O.
package tui
