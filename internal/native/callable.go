// Package native defines the contract for opaque native subsystems
// (tokenizers and similar pre-built text-processing routines) consumed by
// the IR layer. A callable is strictly a black box: ordered strings in,
// ordered tokens out. Nothing here inspects or implements the routines
// themselves.
package native

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Token is one output element of a callable: a piece of text optionally
// paired with an integer id (vocabulary index, offset, etc.).
type Token struct {
	Text string
	ID   int32
}

// Callable is an opaque native routine addressable by name.
type Callable interface {
	Name() string
	Call(inputs []string) ([]Token, error)
}

// ErrAlreadyRegistered indicates a second registration under a name
// already taken in the registry.
var ErrAlreadyRegistered = errors.New("callable already registered")

// Registry maps callable names to implementations so extern function
// bindings can be re-resolved by symbol (e.g. when a module snapshot is
// reloaded). Safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Callable
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Callable)}
}

// Register adds a callable under its own name. Names are unique.
func (r *Registry) Register(c Callable) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := c.Name()
	if _, taken := r.byName[name]; taken {
		return fmt.Errorf("%q: %w", name, ErrAlreadyRegistered)
	}
	r.byName[name] = c
	return nil
}

// Lookup returns the callable registered under name, if any.
func (r *Registry) Lookup(name string) (Callable, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byName[name]
	return c, ok
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
