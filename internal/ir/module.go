package ir

import (
	"fmt"
	"slices"
)

// EntryName is the conventional name FromExpr binds the entry function
// under and the default export designation target.
const EntryName = "main"

// Module holds the global function and type definitions for one unit of
// compilation. It is a single-owner mutable aggregate: no internal
// locking, callers running concurrent passes must either synchronize
// externally or give each pass its own Module and merge afterwards
// (Update is the composition primitive for that pattern).
type Module struct {
	funcs    *symtab
	types    *symtab
	funcDefs *bindings
	typeDefs *bindings
	export   GlobalVarID
}

// Hints provide optional capacity suggestions for the module's tables.
type Hints struct{ Funcs, Types uint32 }

// New returns an empty module.
func New() *Module {
	return NewWithHints(Hints{})
}

// NewWithHints returns an empty module with capacity hints.
func NewWithHints(h Hints) *Module {
	return &Module{
		funcs:    newSymtab(h.Funcs),
		types:    newSymtab(h.Types),
		funcDefs: newBindings(h.Funcs),
		typeDefs: newBindings(h.Types),
	}
}

// NewModule builds a module pre-seeded from name→definition mappings.
// String keys are resolved into fresh handles through the same insertion
// path as Add, so the usual kind checks apply: every funcs value must be
// function-kind and every typeDefs value type-kind. Keys are processed in
// sorted order so handle minting stays deterministic.
func NewModule(funcs map[string]Node, typeDefs map[string]Node) (*Module, error) {
	m := NewWithHints(Hints{
		Funcs: uint32(len(funcs)),
		Types: uint32(len(typeDefs)),
	})
	for _, name := range sortedKeys(funcs) {
		node := funcs[name]
		if node == nil || node.NodeKind() != NodeFunc {
			return nil, fmt.Errorf("functions entry %q is not function-kind: %w", name, ErrTypeMismatch)
		}
		if err := m.Add(ByName(name), node, true); err != nil {
			return nil, err
		}
	}
	for _, name := range sortedKeys(typeDefs) {
		node := typeDefs[name]
		if node == nil || node.NodeKind() != NodeType {
			return nil, fmt.Errorf("type definitions entry %q is not type-kind: %w", name, ErrTypeMismatch)
		}
		if err := m.Add(ByName(name), node, true); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func sortedKeys(nodes map[string]Node) []string {
	keys := make([]string, 0, len(nodes))
	for k := range nodes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// refKind tags the variants of VarRef.
type refKind uint8

const (
	refName refKind = iota
	refVar
	refTypeVar
)

// VarRef is the string-or-handle key accepted by the module's write-path
// operations: either a raw name, a function handle, or a type handle.
type VarRef struct {
	kind refKind
	name string
	fn   GlobalVarID
	ty   GlobalTypeVarID
}

// ByName refers to a global by name. On the write path a missing name is
// minted; read-path operations stay strict.
func ByName(name string) VarRef { return VarRef{kind: refName, name: name} }

// ByVar refers to a global function by handle.
func ByVar(id GlobalVarID) VarRef { return VarRef{kind: refVar, fn: id} }

// ByTypeVar refers to a global type by handle.
func ByTypeVar(id GlobalTypeVarID) VarRef { return VarRef{kind: refTypeVar, ty: id} }

// Add is the single insertion point. It classifies node by kind, resolves
// ref against the matching namespace (minting a handle for an unseen
// name), and binds the definition. With update unset, targeting an
// already-bound global fails with ErrDuplicateDefinition and leaves the
// binding unchanged.
func (m *Module) Add(ref VarRef, node Node, update bool) error {
	if node == nil {
		return fmt.Errorf("nil node: %w", ErrTypeMismatch)
	}
	switch node.NodeKind() {
	case NodeFunc:
		id, err := m.resolveFuncRef(ref, true)
		if err != nil {
			return err
		}
		name, _ := m.funcs.name(uint32(id))
		return m.funcDefs.bind(uint32(id), name, node, update)
	case NodeType:
		id, err := m.resolveTypeRef(ref, true)
		if err != nil {
			return err
		}
		name, _ := m.types.name(uint32(id))
		return m.typeDefs.bind(uint32(id), name, node, update)
	default:
		return fmt.Errorf("node kind %d: %w", node.NodeKind(), ErrTypeMismatch)
	}
}

// Set is insertion sugar: Add with update semantics.
func (m *Module) Set(ref VarRef, node Node) error {
	return m.Add(ref, node, true)
}

// resolveFuncRef resolves ref in the function namespace. With mint set,
// an unseen name gets a fresh handle; otherwise it is an error. A handle
// ref must have been minted by this module.
func (m *Module) resolveFuncRef(ref VarRef, mint bool) (GlobalVarID, error) {
	switch ref.kind {
	case refName:
		if id, ok := m.funcs.get(ref.name); ok {
			return GlobalVarID(id), nil
		}
		if !mint {
			return NoGlobalVarID, fmt.Errorf("global function %q: %w", ref.name, ErrUndefinedSymbol)
		}
		return GlobalVarID(m.funcs.getOrCreate(ref.name)), nil
	case refVar:
		if _, ok := m.funcs.name(uint32(ref.fn)); !ok {
			return NoGlobalVarID, fmt.Errorf("global var %d not minted by this module: %w", ref.fn, ErrUndefinedSymbol)
		}
		return ref.fn, nil
	default:
		return NoGlobalVarID, fmt.Errorf("type handle used in function namespace: %w", ErrTypeMismatch)
	}
}

// resolveTypeRef is the type-namespace counterpart of resolveFuncRef.
func (m *Module) resolveTypeRef(ref VarRef, mint bool) (GlobalTypeVarID, error) {
	switch ref.kind {
	case refName:
		if id, ok := m.types.get(ref.name); ok {
			return GlobalTypeVarID(id), nil
		}
		if !mint {
			return NoGlobalTypeVarID, fmt.Errorf("global type %q: %w", ref.name, ErrUndefinedSymbol)
		}
		return GlobalTypeVarID(m.types.getOrCreate(ref.name)), nil
	case refTypeVar:
		if _, ok := m.types.name(uint32(ref.ty)); !ok {
			return NoGlobalTypeVarID, fmt.Errorf("global type var %d not minted by this module: %w", ref.ty, ErrUndefinedSymbol)
		}
		return ref.ty, nil
	default:
		return NoGlobalTypeVarID, fmt.Errorf("function handle used in type namespace: %w", ErrTypeMismatch)
	}
}

// Lookup returns the function bound under name. The name path never
// mints: an unregistered name fails with ErrUndefinedSymbol.
func (m *Module) Lookup(name string) (Node, error) {
	id, err := m.GetGlobalVar(name)
	if err != nil {
		return nil, err
	}
	return m.LookupVar(id)
}

// LookupVar returns the function bound to the handle.
func (m *Module) LookupVar(id GlobalVarID) (Node, error) {
	name, ok := m.funcs.name(uint32(id))
	if !ok {
		return nil, fmt.Errorf("global var %d: %w", id, ErrUndefinedSymbol)
	}
	node, ok := m.funcDefs.lookup(uint32(id))
	if !ok {
		return nil, fmt.Errorf("global function %q has no definition: %w", name, ErrUndefinedSymbol)
	}
	return node, nil
}

// LookupTypeVar returns the type definition bound to the handle.
func (m *Module) LookupTypeVar(id GlobalTypeVarID) (Node, error) {
	name, ok := m.types.name(uint32(id))
	if !ok {
		return nil, fmt.Errorf("global type var %d: %w", id, ErrUndefinedSymbol)
	}
	node, ok := m.typeDefs.lookup(uint32(id))
	if !ok {
		return nil, fmt.Errorf("global type %q has no definition: %w", name, ErrUndefinedSymbol)
	}
	return node, nil
}

// UpdateFunc rebinds a global function to a new definition, keeping the
// handle's identity. A name never seen before behaves as a fresh
// insertion (write-path minting); a handle ref must already belong to
// this module.
func (m *Module) UpdateFunc(ref VarRef, fn Node) error {
	if fn == nil || fn.NodeKind() != NodeFunc {
		return fmt.Errorf("update target is not function-kind: %w", ErrTypeMismatch)
	}
	if ref.kind == refTypeVar {
		return fmt.Errorf("type handle used in function namespace: %w", ErrTypeMismatch)
	}
	return m.Add(ref, fn, true)
}

// Update merges other's bindings into m: every function and type binding
// of other is replayed through the insertion path with update semantics,
// so on conflict the incoming definition wins. other is left unchanged;
// handles are re-resolved by name, never shared across modules.
func (m *Module) Update(other *Module) {
	if other == nil {
		return
	}
	for _, id := range other.GetGlobalVars() {
		name, _ := other.funcs.name(uint32(id))
		node, ok := other.funcDefs.lookup(uint32(id))
		if !ok {
			continue
		}
		// Replayed bindings were classified on their original insert.
		if err := m.Add(ByName(name), node, true); err != nil {
			panic(fmt.Errorf("merge of function %q: %w", name, err))
		}
	}
	for _, id := range other.GetGlobalTypeVars() {
		name, _ := other.types.name(uint32(id))
		node, ok := other.typeDefs.lookup(uint32(id))
		if !ok {
			continue
		}
		if err := m.Add(ByName(name), node, true); err != nil {
			panic(fmt.Errorf("merge of type %q: %w", name, err))
		}
	}
}

// ContainsGlobalVar reports whether name is registered as a function.
func (m *Module) ContainsGlobalVar(name string) bool {
	return m.funcs.contains(name)
}

// ContainsGlobalTypeVar reports whether name is registered as a type.
func (m *Module) ContainsGlobalTypeVar(name string) bool {
	return m.types.contains(name)
}

// GetGlobalVar returns the handle registered for a function name. It is
// strict: it never mints and fails with ErrUndefinedSymbol for unknown
// names.
func (m *Module) GetGlobalVar(name string) (GlobalVarID, error) {
	id, ok := m.funcs.get(name)
	if !ok {
		return NoGlobalVarID, fmt.Errorf("global function %q: %w", name, ErrUndefinedSymbol)
	}
	return GlobalVarID(id), nil
}

// GetGlobalTypeVar returns the handle registered for a type name, strict
// like GetGlobalVar.
func (m *Module) GetGlobalTypeVar(name string) (GlobalTypeVarID, error) {
	id, ok := m.types.get(name)
	if !ok {
		return NoGlobalTypeVarID, fmt.Errorf("global type %q: %w", name, ErrUndefinedSymbol)
	}
	return GlobalTypeVarID(id), nil
}

// GetGlobalVars returns all registered function handles in insertion
// order.
func (m *Module) GetGlobalVars() []GlobalVarID {
	raw := m.funcs.all()
	ids := make([]GlobalVarID, len(raw))
	for i, id := range raw {
		ids[i] = GlobalVarID(id)
	}
	return ids
}

// GetGlobalTypeVars returns all registered type handles in insertion
// order.
func (m *Module) GetGlobalTypeVars() []GlobalTypeVarID {
	raw := m.types.all()
	ids := make([]GlobalTypeVarID, len(raw))
	for i, id := range raw {
		ids[i] = GlobalTypeVarID(id)
	}
	return ids
}

// GlobalVarName returns the name a function handle was minted for.
func (m *Module) GlobalVarName(id GlobalVarID) (string, bool) {
	return m.funcs.name(uint32(id))
}

// GlobalTypeVarName returns the name a type handle was minted for.
func (m *Module) GlobalTypeVarName(id GlobalTypeVarID) (string, bool) {
	return m.types.name(uint32(id))
}

// GetType returns the type handle registered under name together with
// its constructors in declaration order. The bound node must expose
// constructors (TypeNode); anything else trips the kind check.
func (m *Module) GetType(name string) (GlobalTypeVarID, []Constructor, error) {
	id, err := m.GetGlobalTypeVar(name)
	if err != nil {
		return NoGlobalTypeVarID, nil, err
	}
	node, err := m.LookupTypeVar(id)
	if err != nil {
		return NoGlobalTypeVarID, nil, err
	}
	tn, ok := node.(TypeNode)
	if !ok {
		return NoGlobalTypeVarID, nil, fmt.Errorf("global type %q carries no constructors: %w", name, ErrTypeMismatch)
	}
	return id, tn.Constructors(), nil
}

// AddExportFunc designates the module's entry point. The target must
// already be bound in the function namespace; a later call replaces the
// earlier designation.
func (m *Module) AddExportFunc(ref VarRef) error {
	id, err := m.resolveFuncRef(ref, false)
	if err != nil {
		return err
	}
	if _, bound := m.funcDefs.lookup(uint32(id)); !bound {
		name, _ := m.funcs.name(uint32(id))
		return fmt.Errorf("export target %q has no definition: %w", name, ErrUndefinedSymbol)
	}
	m.export = id
	return nil
}

// SetMain is a synonym for AddExportFunc.
func (m *Module) SetMain(ref VarRef) error {
	return m.AddExportFunc(ref)
}

// ExportFunc returns the designated entry handle, if one is set.
func (m *Module) ExportFunc() (GlobalVarID, bool) {
	return m.export, m.export.IsValid()
}

// FromExpr builds a fresh module whose entry point is a standalone
// expression. A function-kind expression is used as-is; anything else is
// wrapped in a nullary function. The entry is inserted under EntryName
// without update semantics, so a caller-supplied function colliding with
// EntryName fails with ErrDuplicateDefinition.
func FromExpr(e Expr, funcs map[string]Node, typeDefs map[string]Node) (*Module, error) {
	if e == nil {
		return nil, fmt.Errorf("nil entry expression: %w", ErrTypeMismatch)
	}
	m, err := NewModule(funcs, typeDefs)
	if err != nil {
		return nil, err
	}
	var entry Node
	if n, ok := e.(Node); ok && n.NodeKind() == NodeFunc {
		entry = n
	} else {
		entry = &Func{Body: e}
	}
	if err := m.Add(ByName(EntryName), entry, false); err != nil {
		return nil, err
	}
	if err := m.AddExportFunc(ByName(EntryName)); err != nil {
		return nil, err
	}
	return m, nil
}
