package command

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kvgate/kvgate"
)

// Handler executes one store command. argv includes the command name at
// index 0, mirroring how a host dispatcher passes arguments. The returned
// string is the command reply; an error becomes a failed command outcome
// at the host, never an unhandled fault.
type Handler func(ctx context.Context, argv []string) (string, error)

// Registry is the host-side registration contract. Implementations must
// reject duplicate names.
type Registry interface {
	Register(name string, handler Handler) error
}

// Dispatcher is a map-backed Registry with a Dispatch method, for hosts
// that resolve commands in-process. Command names are case-insensitive.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]Handler)}
}

// Register adds a handler under name. Registering the same name twice is
// an error.
func (d *Dispatcher) Register(name string, handler Handler) error {
	key := strings.ToUpper(name)

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.handlers[key]; exists {
		return fmt.Errorf("register %s: already registered", key)
	}
	d.handlers[key] = handler
	return nil
}

// Dispatch runs the command named by argv[0], blocking until the handler
// completes.
func (d *Dispatcher) Dispatch(ctx context.Context, argv []string) (string, error) {
	if len(argv) == 0 {
		return "", fmt.Errorf("dispatch: %w", kvgate.ErrUnknownCommand)
	}
	key := strings.ToUpper(argv[0])

	d.mu.RLock()
	handler, ok := d.handlers[key]
	d.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%s: %w", key, kvgate.ErrUnknownCommand)
	}
	return handler(ctx, argv)
}

// Names returns the registered command names, for help output.
func (d *Dispatcher) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	return names
}
