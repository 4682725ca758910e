package profile

import (
	"github.com/vk/ctxscope"
	"github.com/vk/ctxscope/ctxvar"
)

// Scope is a named, loaded scope: a guard ready to be entered.
type Scope struct {
	Name  string
	Guard *ctxscope.Set
}

// Profile is the loaded form of a set of profile files: the declared
// variables and scopes, both in declaration order.
type Profile struct {
	vars       []*ctxvar.Var
	varIndex   map[string]*ctxvar.Var
	scopes     []*Scope
	scopeIndex map[string]*Scope
}

// Vars returns the declared variables in declaration order.
func (p *Profile) Vars() []*ctxvar.Var {
	return p.vars
}

// Var looks up a declared variable by name.
func (p *Profile) Var(name string) (*ctxvar.Var, bool) {
	v, ok := p.varIndex[name]
	return v, ok
}

// Scopes returns the declared scopes in declaration order.
func (p *Profile) Scopes() []*Scope {
	return p.scopes
}

// Scope looks up a scope by name.
func (p *Profile) Scope(name string) (*Scope, bool) {
	s, ok := p.scopeIndex[name]
	return s, ok
}

func (p *Profile) addVar(v *ctxvar.Var) {
	p.vars = append(p.vars, v)
	p.varIndex[v.Name()] = v
}

func (p *Profile) addScope(s *Scope) {
	p.scopes = append(p.scopes, s)
	p.scopeIndex[s.Name] = s
}
