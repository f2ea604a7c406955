package ir

import (
	"errors"
	"fmt"
)

// Validate walks the module's tables checking structural invariants.
// Returns nil if everything is consistent; otherwise aggregates all
// detected issues. Checked invariants:
//  1. the name index and the arena agree in both namespaces
//  2. every binding targets a minted handle
//  3. every minted handle carries a binding (handles are only minted on
//     the write path, which always binds)
//  4. the export designation, if set, targets a bound function
func (m *Module) Validate() error {
	var errs []error

	checkNamespace := func(ns string, t *symtab, b *bindings) {
		for name, id := range t.index {
			if id == 0 || int(id) >= len(t.names) {
				errs = append(errs, fmt.Errorf("%s index entry %q points outside arena: %d", ns, name, id))
				continue
			}
			if t.names[id] != name {
				errs = append(errs, fmt.Errorf("%s index entry %q disagrees with arena name %q", ns, name, t.names[id]))
			}
		}
		if len(t.index) != t.len() {
			errs = append(errs, fmt.Errorf("%s index has %d entries for %d arena slots", ns, len(t.index), t.len()))
		}
		for id := range b.byID {
			if _, ok := t.name(id); !ok {
				errs = append(errs, fmt.Errorf("%s binding targets unminted handle %d", ns, id))
			}
		}
		for _, id := range t.all() {
			if _, bound := b.lookup(id); !bound {
				name, _ := t.name(id)
				errs = append(errs, fmt.Errorf("%s handle %q minted but unbound", ns, name))
			}
		}
	}
	checkNamespace("function", m.funcs, m.funcDefs)
	checkNamespace("type", m.types, m.typeDefs)

	if m.export.IsValid() {
		if _, bound := m.funcDefs.lookup(uint32(m.export)); !bound {
			errs = append(errs, fmt.Errorf("export designation %d has no binding", m.export))
		}
	}

	return errors.Join(errs...)
}
