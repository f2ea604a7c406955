package ir

import (
	"flare/internal/native"
)

// NodeKind discriminates the two global namespaces a node can bind into.
type NodeKind uint8

const (
	// NodeFunc marks function-kind nodes (bindable to a GlobalVarID).
	NodeFunc NodeKind = iota
	// NodeType marks type-kind nodes (bindable to a GlobalTypeVarID).
	NodeType
)

// String returns a human-readable name for the node kind.
func (k NodeKind) String() string {
	switch k {
	case NodeFunc:
		return "function"
	case NodeType:
		return "type"
	default:
		return "unknown"
	}
}

// Node is an opaque IR value that can be bound in a Module. The module
// never inspects a node beyond its kind; bodies and structural rules
// belong to other layers.
type Node interface {
	NodeKind() NodeKind
}

// TypeNode is implemented by type-kind nodes that carry named
// constructors. GetType requires the bound node to satisfy it.
type TypeNode interface {
	Node
	Constructors() []Constructor
}

// Constructor is one named variant of a type definition.
type Constructor struct {
	Name string
	Tag  int32
}

// FuncFlags represents function modifiers as a bitmask.
type FuncFlags uint32

const (
	// FuncEntrypoint marks the module's designated export function.
	FuncEntrypoint FuncFlags = 1 << iota
	// FuncExtern marks a function backed by a native callable.
	FuncExtern
)

// HasFlag returns true if the given flag is set.
func (f FuncFlags) HasFlag(flag FuncFlags) bool {
	return f&flag != 0
}

// Param represents a function parameter.
type Param struct {
	Name string
}

// Func is a function definition: parameters plus an opaque expression
// body. A nil body is legal (a declaration whose body arrives later).
type Func struct {
	Params []Param
	Body   Expr
	Flags  FuncFlags
}

// NodeKind classifies Func as a function-kind node.
func (f *Func) NodeKind() NodeKind { return NodeFunc }

func (f *Func) exprNode() {}

// ExternFunc is a function definition whose body is a black-box native
// callable, resolved by symbol from a native registry. The module treats
// it like any other function binding.
type ExternFunc struct {
	Symbol string
	Call   native.Callable
}

// NodeKind classifies ExternFunc as a function-kind node.
func (f *ExternFunc) NodeKind() NodeKind { return NodeFunc }

func (f *ExternFunc) exprNode() {}

// ClassType is a nominal type definition carrying its constructors in
// declaration order.
type ClassType struct {
	Ctors []Constructor
}

// NodeKind classifies ClassType as a type-kind node.
func (t *ClassType) NodeKind() NodeKind { return NodeType }

// Constructors returns the constructors in declaration order.
func (t *ClassType) Constructors() []Constructor { return t.Ctors }
