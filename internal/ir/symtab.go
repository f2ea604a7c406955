package ir

import (
	"fmt"

	"fortio.org/safecast"
)

// symtab interns global names for one namespace in a compact slice-based
// arena. Index 0 is reserved for the invalid sentinel, so arena order is
// insertion order and IDs are stable for the table's lifetime.
type symtab struct {
	names []string // index 0 reserved
	index map[string]uint32
}

func newSymtab(capacity uint32) *symtab {
	if capacity == 0 {
		capacity = 16
	}
	return &symtab{
		names: make([]string, 1, capacity+1),
		index: make(map[string]uint32, capacity),
	}
}

// getOrCreate returns the existing ID for name, or mints and registers a
// fresh one. It never returns two different IDs for the same name.
func (t *symtab) getOrCreate(name string) uint32 {
	if id, ok := t.index[name]; ok {
		return id
	}
	value, err := safecast.Conv[uint32](len(t.names))
	if err != nil {
		panic(fmt.Errorf("symbol arena overflow: %w", err))
	}
	t.names = append(t.names, name)
	t.index[name] = value
	return value
}

// get returns the ID registered for name, if any. It never mints.
func (t *symtab) get(name string) (uint32, bool) {
	id, ok := t.index[name]
	return id, ok
}

func (t *symtab) contains(name string) bool {
	_, ok := t.index[name]
	return ok
}

// name returns the interned string for id, or false if id was never minted
// by this table.
func (t *symtab) name(id uint32) (string, bool) {
	if id == 0 || int(id) >= len(t.names) {
		return "", false
	}
	return t.names[id], true
}

// all returns every registered ID in insertion order. Indices were
// bounds-checked when minted, so the conversion is safe here.
func (t *symtab) all() []uint32 {
	if len(t.names) <= 1 {
		return nil
	}
	ids := make([]uint32, 0, len(t.names)-1)
	for i := 1; i < len(t.names); i++ {
		ids = append(ids, uint32(i))
	}
	return ids
}

// len reports the number of registered names excluding the sentinel.
func (t *symtab) len() int { return len(t.names) - 1 }
