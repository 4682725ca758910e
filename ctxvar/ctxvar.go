// Package ctxvar implements a named-variable store with stack-like
// restoration tokens, suitable as the variable facility behind
// ctxscope.Set. Each Set on a variable returns a token capturing the value
// previously in effect; Reset consumes the token and restores that value.
// Any number of tokens may be live per variable as long as they are reset
// in reverse order of issue.
package ctxvar

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vk/ctxscope"
)

// ErrTokenUsed is returned by Reset when the token has already been
// consumed.
var ErrTokenUsed = errors.New("token has already been used")

// ErrForeignToken is returned by Reset when the token was issued by a
// different variable or is not a token at all.
var ErrForeignToken = errors.New("token was not created by this variable")

// Var is a dynamically-scoped variable. Independent variables may be used
// from different goroutines; ordering of Set/Reset calls on a single
// variable is the caller's responsibility, typically delegated to a
// ctxscope guard.
type Var struct {
	name string

	mu         sync.Mutex
	val        any
	assigned   bool
	def        any
	hasDefault bool
}

var _ ctxscope.Var = (*Var)(nil)

type token struct {
	owner    *Var
	prev     any
	prevSet  bool
	consumed bool
}

// New creates a variable with no value. Get reports ok=false until the
// first Set.
func New(name string) *Var {
	return &Var{name: name}
}

// NewWithDefault creates a variable whose Get falls back to def while no
// assignment is in effect.
func NewWithDefault(name string, def any) *Var {
	return &Var{name: name, def: def, hasDefault: true}
}

// Name returns the identifier the variable was created with.
func (v *Var) Name() string {
	return v.name
}

// Get returns the current value. When no assignment is in effect it returns
// the default, if one was given, and reports whether any value was found.
func (v *Var) Get() (any, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.assigned {
		return v.val, true
	}
	if v.hasDefault {
		return v.def, true
	}
	return nil, false
}

// MustGet is Get for callers that know a value is present; it panics
// otherwise.
func (v *Var) MustGet() any {
	val, ok := v.Get()
	if !ok {
		panic(fmt.Sprintf("ctxvar: variable %q has no value", v.name))
	}
	return val
}

// Set assigns a new value and returns a token restoring the previous state.
func (v *Var) Set(value any) (ctxscope.Token, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	tok := &token{owner: v, prev: v.val, prevSet: v.assigned}
	v.val = value
	v.assigned = true
	return tok, nil
}

// Reset restores the value captured by the token and consumes it. Tokens
// must be reset in reverse order of the corresponding Set calls for the
// restored chain to be consistent; the variable itself only checks token
// ownership and single use.
func (v *Var) Reset(tok ctxscope.Token) error {
	t, ok := tok.(*token)
	if !ok || t.owner != v {
		return fmt.Errorf("ctxvar: reset of %q: %w", v.name, ErrForeignToken)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if t.consumed {
		return fmt.Errorf("ctxvar: reset of %q: %w", v.name, ErrTokenUsed)
	}
	t.consumed = true
	v.val = t.prev
	v.assigned = t.prevSet
	return nil
}
