// Package command implements the synchronous store commands the host
// dispatches to: the outbound HTTP verbs (HTTP.GET, HTTP.POST, HTTP.PUT,
// HTTP.DELETE) and the gateway lifecycle commands (HTTP.SERVER.START,
// HTTP.SERVER.STOP, HTTP.SERVER.STATUS).
//
// The host contract is narrow: handlers are registered by name through the
// Registry interface and each handler runs to completion on the caller's
// thread, blocking on outbound calls until done. Dispatcher is a map-backed
// Registry for hosts (such as the kvgated binary) that dispatch in-process.
package command
