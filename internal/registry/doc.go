// Package registry maintains the persistent device registry.
//
// Devices are keyed by their canonical MAC address (see the mac package) and
// stored as a pretty-printed JSON array at a single well-known path. The file
// is read fully on open and rewritten fully on every mutation; a mutex
// serializes mutations so concurrent add/delete calls cannot lose updates.
//
// # Persistence Format
//
// The backing file is a JSON array of objects with a required "mac" field and
// optional "ip", "remark", and "broadcast_ip" fields. Optional fields are
// omitted when empty rather than stored as empty strings:
//
//	[
//	  {
//	    "mac": "AA:BB:CC:DD:EE:FF",
//	    "ip": "192.168.1.50",
//	    "remark": "office workstation",
//	    "broadcast_ip": "192.168.1.255"
//	  }
//	]
//
// # Corrupt Store Recovery
//
// A missing file is equivalent to an empty registry. An unparseable file is
// also treated as empty: the error is logged loudly but never surfaced to the
// caller, and the damaged file stays on disk until the next successful save.
// This favors availability over correctness; an operator who needs the old
// contents can still recover them manually before the next write.
package registry
