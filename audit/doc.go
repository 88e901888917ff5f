// Package audit provides an optional embedded request log for the gateway.
//
// Entries are stored in a local SQLite database, one row per HTTP request
// served by the gateway (method, path, remote address, response status,
// negotiated format, duration). No credentials or payloads are recorded.
package audit
