package emulator

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// A Frontend renders the screen of a session and delivers host input to it.
// Run blocks until the user quits, the context is cancelled or the machine halts.
type Frontend interface {
	Run(ctx context.Context, session *Session) error
}

// Factory creates a frontend for the program options.
type Factory func(logger *log.Logger, opts options.Program) (Frontend, error)

var (
	registryMu sync.RWMutex
	registry   = map[options.Frontend]Factory{}
)

// RegisterFrontend registers a frontend factory to a name. Frontend packages
// call it from init, importing a frontend package makes it available.
func RegisterFrontend(name options.Frontend, factory Factory) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, ok := registry[name]; ok {
		return fmt.Errorf("frontend %s already registered", name)
	}
	registry[name] = factory
	return nil
}

// NewFrontend creates a registered frontend.
func NewFrontend(name options.Frontend, logger *log.Logger, opts options.Program) (Frontend, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("frontend '%s' is not available in this build", name)
	}

	frontend, err := factory(logger, opts)
	if err != nil {
		return nil, fmt.Errorf("creating %s frontend: %w", name, err)
	}
	return frontend, nil
}

// RegisteredFrontends returns the names of all registered frontends, sorted.
func RegisteredFrontends() []options.Frontend {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]options.Frontend, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
