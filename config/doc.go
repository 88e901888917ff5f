// Package config loads and validates kvgate configuration.
//
// Configuration comes from, in order of precedence (highest first):
// command-line flags, environment variables prefixed KVGATE_, config files
// (YAML), and built-in defaults. The loaded Config is validated with
// go-playground/validator struct tags before use.
//
// The gateway's listen address and the backend store address are both
// externalized here; the defaults (:4887 and 127.0.0.1:6379) match a
// store running next to the gateway on the same host.
package config
