// Package ctxscope provides Set, a scoped-assignment guard for dynamically
// scoped (context-local) variables. A Set holds an ordered list of
// (variable, value) pairs; entering it assigns every value and collects one
// restoration token per assignment, and exiting it resets the tokens in
// reverse order so each variable ends up with the value it had before entry.
//
// The guard does not implement variable storage itself. It drives any
// facility satisfying the Var interface; the ctxvar subpackage ships a ready
// implementation.
//
// Usage:
//
//	a := ctxvar.New("A")
//	b := ctxvar.New("B")
//	a.Set("Hello,")
//	b.Set("world!")
//
//	s := ctxscope.New(ctxscope.Assign(a, "other"), ctxscope.Assign(b, "value"))
//	err := s.Run(func() error {
//	    // a resolves to "other", b to "value"
//	    return nil
//	})
//	// a and b are restored here, even if the callback failed.
//
// A Set is reusable across activation cycles but must not be entered while
// already active; doing so fails with ErrAlreadyActive.
package ctxscope
