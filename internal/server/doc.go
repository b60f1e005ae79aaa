// Package server implements the wakehub HTTP API.
//
// The server exposes the device registry, Wake-on-LAN dispatch, and liveness
// probing over a small JSON API, plus a websocket stream that pushes bulk
// probe results on an interval.
//
// # Endpoints
//
//	GET    /api/devices        list registered devices
//	POST   /api/devices        register a device {mac, ip?, remark?, broadcast_ip?}
//	DELETE /api/devices/{mac}  remove a device (MAC in any textual form)
//	GET    /api/search?q=      case-insensitive substring search over mac/ip/remark
//	POST   /api/wake           send a magic packet {mac, port?}
//	POST   /api/probe          probe one target {address, port?, timeout?}
//	GET    /api/status         probe every registered device
//	GET    /api/status/ws      websocket stream of /api/status payloads
//
// Errors are returned as {"error": "..."} with a meaningful status code:
// 400 for malformed input, 404 for unknown MACs, 409 for duplicate
// registrations, and 502 when a magic packet cannot be handed to the network
// stack.
//
// # Concurrency
//
// Handlers run concurrently; the registry serializes its own writes, and
// probe fan-outs are bounded by the configured worker ceiling. Wake dispatch
// is fire-and-forget: a 200 response means the datagram was sent, not that
// the device woke.
//
// # Graceful Shutdown
//
// Start blocks until SIGINT or SIGTERM, then drains in-flight requests for up
// to ten seconds before returning.
package server
