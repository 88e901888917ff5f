// Package backend wraps the Redis-compatible store behind the gateway.
//
// It provides client construction from a Config, the three read operations
// the gateway exposes (Get, HGet, HGetAll), and connection-probe credential
// validation: a caller's credentials are checked by opening a fresh
// authenticated connection against the backend rather than by consulting a
// local credential table. The gateway never stores secrets and always
// reflects the backend's current credential state, at the cost of one
// backend round-trip per validation.
package backend
