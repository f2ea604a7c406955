package ir

import "fmt"

// bindings is the definition store for one namespace: the handle→node
// mapping plus its mutation rules. Iteration order comes from the symtab,
// not from here.
type bindings struct {
	byID map[uint32]Node
}

func newBindings(capacity uint32) *bindings {
	return &bindings{byID: make(map[uint32]Node, capacity)}
}

// bind associates node with id. An unbound id always binds; a bound id
// rebinds only when update is set, otherwise the call fails and the
// existing binding is left unchanged. The handle's identity never changes
// on rebind.
func (b *bindings) bind(id uint32, name string, node Node, update bool) error {
	if _, bound := b.byID[id]; bound && !update {
		return fmt.Errorf("global %q: %w", name, ErrDuplicateDefinition)
	}
	b.byID[id] = node
	return nil
}

// lookup returns the node bound to id, or false if id is unbound.
func (b *bindings) lookup(id uint32) (Node, bool) {
	n, ok := b.byID[id]
	return n, ok
}

func (b *bindings) len() int { return len(b.byID) }
