package ctxscope

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAlreadyActive is returned by Enter when the guard has been entered and
// not yet exited. The existing token sequence is left untouched.
var ErrAlreadyActive = errors.New("already active")

// ErrCombineUnsupported is returned by Combine when the other guard is not a
// *Set. Callers implementing their own guard kinds can detect it with
// errors.Is and attempt the combination themselves.
var ErrCombineUnsupported = errors.New("combination not supported")

// Guard is the enter/exit contract shared by scoped-assignment guards.
// *Set is the only implementation in this module; the interface exists so
// Combine can reject foreign guard kinds without a hard failure.
type Guard interface {
	Enter() error
	Exit() error
}

// Set is a scoped-assignment guard. Its assignment list is fixed at
// construction; the only mutable state is the activation record, a token
// slice which is nil exactly when the guard is inactive.
//
// A Set instance is not safe for concurrent activation from multiple
// goroutines. The reentrancy check in Enter guards against overlapping
// activations but provides no synchronization.
type Set struct {
	assignments []Assignment
	tokens      []Token
}

var _ Guard = (*Set)(nil)

// New builds a guard from the given assignments. The pairs are stored
// verbatim; duplicate variables are allowed, with the later entry winning
// while the guard is active.
func New(assignments ...Assignment) *Set {
	s := &Set{assignments: make([]Assignment, len(assignments))}
	copy(s.assignments, assignments)
	return s
}

// Combine returns a new guard performing this guard's assignments followed
// by other's. Neither operand is modified. Combining with a guard that is
// not a *Set fails with ErrCombineUnsupported.
func (s *Set) Combine(other Guard) (*Set, error) {
	o, ok := other.(*Set)
	if !ok {
		return nil, fmt.Errorf("cannot combine *ctxscope.Set with %T: %w", other, ErrCombineUnsupported)
	}
	merged := make([]Assignment, 0, len(s.assignments)+len(o.assignments))
	merged = append(merged, s.assignments...)
	merged = append(merged, o.assignments...)
	return New(merged...), nil
}

// Enter activates the guard: every assignment is applied in declaration
// order and the returned restoration tokens are recorded. Entering an
// already-active guard fails with ErrAlreadyActive without touching the held
// tokens. Errors from the variable facility propagate unchanged; assignments
// already applied before such an error are rolled back so the guard stays
// inactive.
func (s *Set) Enter() error {
	if s.tokens != nil {
		return fmt.Errorf("%s: %w", s, ErrAlreadyActive)
	}
	tokens := make([]Token, 0, len(s.assignments))
	for _, a := range s.assignments {
		tok, err := a.Var.Set(a.Value)
		if err != nil {
			for i := len(tokens) - 1; i >= 0; i-- {
				s.assignments[i].Var.Reset(tokens[i])
			}
			return err
		}
		tokens = append(tokens, tok)
	}
	s.tokens = tokens
	return nil
}

// Exit deactivates the guard, resetting the held tokens in reverse order so
// each variable is restored to the value it had immediately before Enter.
// The guard becomes inactive and reusable even when a reset fails; reset
// errors are returned unchanged (joined, if several resets fail).
func (s *Set) Exit() error {
	var errs []error
	for i := len(s.tokens) - 1; i >= 0; i-- {
		if err := s.assignments[i].Var.Reset(s.tokens[i]); err != nil {
			errs = append(errs, err)
		}
	}
	s.tokens = nil
	return errors.Join(errs...)
}

// Run enters the guard, invokes fn, and guarantees the guard is exited on
// every return path, including a panic inside fn. The error from fn and any
// reset error are both reported, joined.
func (s *Set) Run(fn func() error) (err error) {
	if err := s.Enter(); err != nil {
		return err
	}
	defer func() {
		// Runs on the panic path too, so restoration is unconditional.
		err = errors.Join(err, s.Exit())
	}()
	return fn()
}

// Assignments returns a copy of the guard's assignment list in declaration
// order.
func (s *Set) Assignments() []Assignment {
	out := make([]Assignment, len(s.assignments))
	copy(out, s.assignments)
	return out
}

// IsActive reports whether the guard has been entered and not yet exited.
func (s *Set) IsActive() bool {
	return s.tokens != nil
}

// String renders the activation state and every assignment in order, for
// debugging.
func (s *Set) String() string {
	state := "inactive"
	if s.tokens != nil {
		state = "active"
	}
	pairs := make([]string, len(s.assignments))
	for i, a := range s.assignments {
		pairs[i] = fmt.Sprintf("%s=%#v", a.Var.Name(), a.Value)
	}
	return fmt.Sprintf("<ctxscope.Set (%s): %s>", state, strings.Join(pairs, ", "))
}
