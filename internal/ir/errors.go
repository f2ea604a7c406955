package ir

import "errors"

var (
	// ErrTypeMismatch indicates that a key or value does not match the
	// namespace it is being used against (e.g. a type definition supplied
	// where a function is expected).
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrDuplicateDefinition indicates an insertion without update targeting
	// an already-bound global.
	ErrDuplicateDefinition = errors.New("duplicate definition")

	// ErrUndefinedSymbol indicates a strict lookup of a name or handle that
	// was never registered in the module.
	ErrUndefinedSymbol = errors.New("undefined symbol")
)
