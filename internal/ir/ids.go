// Package ir provides the module-level IR container for flare.
//
// A Module is the unit of compilation: it holds every globally-visible
// function definition and type definition, keyed by interned handles
// (GlobalVarID for functions, GlobalTypeVarID for types). All later IR
// transformation passes read and rewrite a Module; it is the basic unit
// for transformations across the stack.
//
// Names are interned: one name maps to exactly one handle for the
// lifetime of a module, so globally-referenced symbols keep a stable
// identity across repeated, possibly-overlapping insertions.
package ir

// GlobalVarID identifies a global function within a module.
type GlobalVarID uint32

// GlobalTypeVarID identifies a global type definition within a module.
// Function names and type names live in disjoint namespaces.
type GlobalTypeVarID uint32

// Invalid ID constants (zero is sentinel).
const (
	NoGlobalVarID     GlobalVarID     = 0
	NoGlobalTypeVarID GlobalTypeVarID = 0
)

// IsValid reports whether the ID refers to a registered global.
func (id GlobalVarID) IsValid() bool { return id != NoGlobalVarID }

// IsValid reports whether the ID refers to a registered global type.
func (id GlobalTypeVarID) IsValid() bool { return id != NoGlobalTypeVarID }
