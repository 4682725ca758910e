package ctxscope

// Token is an opaque restoration capability returned by a variable's Set
// operation. Between entering and exiting a guard, the tokens for its
// assignments are owned exclusively by that guard.
type Token any

// Var is the contract a dynamically-scoped variable facility must satisfy
// for its variables to be driven by a Set. The guard only sequences Set and
// Reset calls; isolation between logical execution contexts is the
// facility's job.
type Var interface {
	// Name returns a stable identifier, used only for display.
	Name() string

	// Set assigns a new value and returns a token capturing enough state to
	// restore the previous value.
	Set(value any) (Token, error)

	// Reset restores the value in effect before the Set that produced the
	// token, consuming the token.
	Reset(tok Token) error
}

// Assignment is an immutable (variable, value) pair. Within one guard the
// order of assignments is significant: later entries override earlier ones
// during activation and determine restoration order on exit.
type Assignment struct {
	Var   Var
	Value any
}

// Assign builds an Assignment for use with New.
func Assign(v Var, value any) Assignment {
	return Assignment{Var: v, Value: value}
}
