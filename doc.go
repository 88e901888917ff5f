// Package kvgate embeds an HTTP gateway inside a Redis-compatible key-value
// store deployment. It exposes a small set of store reads (GET, HGET,
// HGETALL) over plain HTTP, authenticated by probing the store with the
// caller's own credentials, and exposes generic outbound HTTP verbs as
// synchronous store commands.
//
// # Key Components
//
//   - Response types: ScalarResponse, FieldResponse, HashResponse for store
//     reads; OutboundResponse for outbound HTTP command replies
//   - Format / DetectFormat / Encode: content negotiation and the
//     JSON/XML/text response codec
//   - backend: go-redis client construction and connection-probe
//     credential validation
//   - http: chi router for the three read routes, Basic-auth gate, CORS
//   - gateway: lifecycle manager owning the listener (start/stop/status)
//   - command: the synchronous command entry points a host dispatcher
//     invokes (HTTP.GET/POST/PUT/DELETE, HTTP.SERVER.*)
//
// # Response Formats
//
// Every read route renders its result as JSON (default), XML
// (Accept: application/xml or text/xml) or plain text (Accept: text/plain).
// The codec is pure and safe for concurrent use.
//
// See cmd/kvgated for the server binary.
package kvgate
