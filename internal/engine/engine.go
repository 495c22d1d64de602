// Package engine picks the rules engine named in the configuration.
package engine

import (
	"errors"
	"fmt"

	"github.com/mway1/san"
	"github.com/mway1/san/internal/engine/corentings"
	"github.com/mway1/san/internal/engine/notnil"
)

// ErrUnknownEngine is returned for names that are not registered.
var ErrUnknownEngine = errors.New("unknown rules engine")

// Default is used when no engine is configured.
const Default = corentings.Name

var registry = map[string]func() san.Engine{
	corentings.Name: func() san.Engine { return corentings.New() },
	notnil.Name:     func() san.Engine { return notnil.New() },
}

// New returns the engine registered under name. An empty name selects Default.
func New(name string) (san.Engine, error) {
	if name == "" {
		name = Default
	}
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
	return ctor(), nil
}
