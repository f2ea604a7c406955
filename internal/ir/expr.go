package ir

// Expr is an opaque IR expression. The module stores expressions inside
// function bodies without interpreting them; the concrete node set here
// is the minimum needed for entry-point wrapping and textual dumps.
type Expr interface {
	exprNode()
}

// Literal is a constant expression rendered verbatim.
type Literal struct {
	Value string
}

func (e *Literal) exprNode() {}

// CallGlobal invokes a global function by handle.
type CallGlobal struct {
	Fn   GlobalVarID
	Args []Expr
}

func (e *CallGlobal) exprNode() {}
