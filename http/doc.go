// Package http provides the HTTP surface of the kvgate gateway.
//
// The router maps three read routes onto the backend store:
//
//	GET /GET/{key}           scalar read
//	GET /MGET/{key}/{field}  hash-field read
//	GET /MGETALL/{key}       full hash read
//
// All three sit behind a Basic-auth gate that validates credentials with a
// connection probe against the backend, and behind permissive CORS. The
// Accept header selects the response encoding (JSON by default, XML for
// application/xml or text/xml, plain text for text/plain); the response
// Content-Type matches the negotiated format.
//
// Backend failures never crash the server: every failure becomes a
// structured failed result returned to that caller only.
package http
