package ir

import (
	"fmt"
	"io"
	"strings"
)

// Printer dumps a module to a source-like text format. Dumping is a pure
// function of module state: type definitions first, then functions, both
// in handle insertion order.
type Printer struct {
	w io.Writer
	m *Module
}

// NewPrinter creates a printer for the given module.
func NewPrinter(w io.Writer, m *Module) *Printer {
	return &Printer{w: w, m: m}
}

// Dump writes the module to the writer.
func Dump(w io.Writer, m *Module) {
	NewPrinter(w, m).PrintModule()
}

// AsText renders the module as a string.
func (m *Module) AsText() string {
	var sb strings.Builder
	Dump(&sb, m)
	return sb.String()
}

func (m *Module) String() string { return m.AsText() }

// PrintModule prints every binding in the module.
func (p *Printer) PrintModule() {
	for _, id := range p.m.GetGlobalTypeVars() {
		name, _ := p.m.GlobalTypeVarName(id)
		node, err := p.m.LookupTypeVar(id)
		if err != nil {
			continue
		}
		p.printType(name, node)
	}
	for _, id := range p.m.GetGlobalVars() {
		name, _ := p.m.GlobalVarName(id)
		node, err := p.m.LookupVar(id)
		if err != nil {
			continue
		}
		p.printFunc(id, name, node)
	}
}

func (p *Printer) printType(name string, node Node) {
	p.printf("type @%s", name)
	if tn, ok := node.(TypeNode); ok {
		ctors := tn.Constructors()
		if len(ctors) == 0 {
			p.printf(" {}\n\n")
			return
		}
		p.printf(" {\n")
		for _, c := range ctors {
			p.printf("  %s/%d\n", c.Name, c.Tag)
		}
		p.printf("}\n\n")
		return
	}
	p.printf("\n\n")
}

func (p *Printer) printFunc(id GlobalVarID, name string, node Node) {
	if export, ok := p.m.ExportFunc(); ok && export == id {
		p.printf("@entrypoint\n")
	}
	switch fn := node.(type) {
	case *Func:
		p.printf("def @%s(", name)
		for i, param := range fn.Params {
			if i > 0 {
				p.printf(", ")
			}
			p.printf("%s", param.Name)
		}
		p.printf(") {\n  ")
		p.printExpr(fn.Body)
		p.printf("\n}\n\n")
	case *ExternFunc:
		p.printf("extern def @%s = native<%s>\n\n", name, fn.Symbol)
	default:
		p.printf("def @%s = <opaque>\n\n", name)
	}
}

func (p *Printer) printExpr(e Expr) {
	switch e := e.(type) {
	case nil:
		p.printf("<nil>")
	case *Literal:
		p.printf("%s", e.Value)
	case *CallGlobal:
		callee, ok := p.m.GlobalVarName(e.Fn)
		if !ok {
			callee = fmt.Sprintf("#%d", e.Fn)
		}
		p.printf("@%s(", callee)
		for i, arg := range e.Args {
			if i > 0 {
				p.printf(", ")
			}
			p.printExpr(arg)
		}
		p.printf(")")
	case *Func:
		p.printf("fn(")
		for i, param := range e.Params {
			if i > 0 {
				p.printf(", ")
			}
			p.printf("%s", param.Name)
		}
		p.printf(") { ")
		p.printExpr(e.Body)
		p.printf(" }")
	default:
		p.printf("<opaque>")
	}
}

func (p *Printer) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(p.w, format, args...)
}
