package storage

import (
	"fmt"

	"github.com/dodd623/lucidscript/logger"
)

// Factory creates a Storage implementation from configuration.
type Factory func(cfg Config, log *logger.Logger) (Storage, error)

var factories = make(map[string]Factory)

// RegisterFactory registers a storage backend factory under the given name.
// Backend packages call this from an init function.
func RegisterFactory(name string, f Factory) {
	factories[name] = f
}

// New creates a Storage implementation based on cfg.Backend.
// The desired backend package must be imported (e.g.
// _ "github.com/dodd623/lucidscript/storage/local") so its factory is
// registered.
func New(cfg Config, log *logger.Logger) (Storage, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f, ok := factories[cfg.Backend]
	if !ok {
		return nil, fmt.Errorf("storage: unsupported backend %q (not registered)", cfg.Backend)
	}

	l := log.WithComponent("storage")
	l.Info("initializing storage", map[string]interface{}{"backend": cfg.Backend})
	return f(cfg, l)
}
