package backend

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Status is the outcome of a credential probe.
type Status int

const (
	// StatusAllowed means the backend accepted the credentials.
	StatusAllowed Status = iota
	// StatusDenied means the backend rejected the credentials.
	StatusDenied
)

// authFailureMarkers are the backend error fragments that distinguish a
// credential rejection from an operational failure.
var authFailureMarkers = []string{
	"NOAUTH",
	"WRONGPASS",
	"invalid username-password",
}

// ValidateCredentials probes the backend with the supplied credentials by
// opening a fresh single-connection client and issuing a PING. A clean
// handshake returns StatusAllowed. A handshake rejected for bad credentials
// returns StatusDenied with a nil error. Any other failure (unreachable
// backend, timeout, protocol error) returns StatusDenied with the error, so
// callers can tell an operational problem from a bad password; when the
// store never replied the error matches kvgate.ErrBackendUnavailable.
//
// An empty username authenticates with the password alone, mirroring a
// pre-ACL AUTH command.
func ValidateCredentials(ctx context.Context, cfg Config, username, password string) (Status, error) {
	probe := redis.NewClient(&redis.Options{
		Addr:            cfg.Addr,
		Username:        username,
		Password:        password,
		DB:              cfg.DB,
		DialTimeout:     time.Duration(cfg.DialTimeout) * time.Second,
		PoolSize:        1,
		MaxRetries:      -1,
		MinIdleConns:    0,
		ConnMaxIdleTime: time.Second,
	})
	defer func() { _ = probe.Close() }()

	if err := probe.Ping(ctx).Err(); err != nil {
		if IsAuthError(err) {
			return StatusDenied, nil
		}
		return StatusDenied, unavailable(err)
	}
	return StatusAllowed, nil
}

// IsAuthError reports whether a backend error indicates rejected
// credentials rather than an operational failure.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, marker := range authFailureMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
