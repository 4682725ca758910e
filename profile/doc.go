// Package profile loads declarative scope profiles from HCL files. A
// profile declares dynamically-scoped variables with optional initial
// values, and named scopes listing the assignments to apply while the scope
// is active. The loader translates every scope block into a ctxscope.Set
// driving ctxvar variables.
package profile
