package profile

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/ctxscope"
	"github.com/vk/ctxscope/ctxvar"
	"github.com/vk/ctxscope/internal/ctxlog"
	"github.com/vk/ctxscope/internal/fsutil"
)

// Loader parses profile HCL files into a Profile.
type Loader struct{}

// NewLoader creates a new profile loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load orchestrates the profile loading process. Each path may be a single
// .hcl file or a directory searched recursively. Variables from all files
// are declared first, then scopes, so a scope may reference a variable from
// another file regardless of load order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*Profile, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Profile loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFilesByExtension(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered profile files.", "count", len(files))

	parser := hclparse.NewParser()
	var roots []*fileRoot

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse profile file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode profile file %s: %w", file, diags)
		}
		roots = append(roots, &root)
	}

	p := &Profile{
		varIndex:   make(map[string]*ctxvar.Var),
		scopeIndex: make(map[string]*Scope),
	}

	for _, root := range roots {
		for _, vb := range root.Variables {
			if err := l.declareVariable(p, vb); err != nil {
				return nil, err
			}
		}
	}
	for _, root := range roots {
		for _, sb := range root.Scopes {
			if err := l.declareScope(p, sb); err != nil {
				return nil, err
			}
		}
	}

	logger.Debug("Profile loading complete.", "variables", len(p.vars), "scopes", len(p.scopes))
	return p, nil
}

// declareVariable translates a variable block into a ctxvar.Var and adds it
// to the profile.
func (l *Loader) declareVariable(p *Profile, vb *variableBlock) error {
	if _, exists := p.varIndex[vb.Name]; exists {
		return fmt.Errorf("variable %q declared more than once", vb.Name)
	}

	if vb.Initial == nil {
		p.addVar(ctxvar.New(vb.Name))
		return nil
	}

	val, diags := vb.Initial.Value(nil)
	if diags.HasErrors() {
		return fmt.Errorf("invalid initial value for variable %q: %w", vb.Name, diags)
	}
	if val.IsNull() {
		p.addVar(ctxvar.New(vb.Name))
		return nil
	}

	initial, err := fromCtyValue(val)
	if err != nil {
		return fmt.Errorf("invalid initial value for variable %q: %w", vb.Name, err)
	}
	p.addVar(ctxvar.NewWithDefault(vb.Name, initial))
	return nil
}

// declareScope translates a scope block into a guard. Scopes named in `use`
// must already be declared; their assignments are prepended via guard
// combination, preserving the listed order.
func (l *Loader) declareScope(p *Profile, sb *scopeBlock) error {
	if _, exists := p.scopeIndex[sb.Name]; exists {
		return fmt.Errorf("scope %q declared more than once", sb.Name)
	}

	assignments := make([]ctxscope.Assignment, 0, len(sb.Sets))
	for _, set := range sb.Sets {
		v, ok := p.varIndex[set.Variable]
		if !ok {
			return fmt.Errorf("scope %q sets undeclared variable %q", sb.Name, set.Variable)
		}

		val, diags := set.Value.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("invalid value for %q in scope %q: %w", set.Variable, sb.Name, diags)
		}
		value, err := fromCtyValue(val)
		if err != nil {
			return fmt.Errorf("invalid value for %q in scope %q: %w", set.Variable, sb.Name, err)
		}
		assignments = append(assignments, ctxscope.Assign(v, value))
	}

	guard := ctxscope.New()
	for _, used := range sb.Use {
		base, ok := p.scopeIndex[used]
		if !ok {
			return fmt.Errorf("scope %q uses unknown scope %q", sb.Name, used)
		}
		combined, err := guard.Combine(base.Guard)
		if err != nil {
			return fmt.Errorf("scope %q: %w", sb.Name, err)
		}
		guard = combined
	}
	combined, err := guard.Combine(ctxscope.New(assignments...))
	if err != nil {
		return fmt.Errorf("scope %q: %w", sb.Name, err)
	}

	p.addScope(&Scope{Name: sb.Name, Guard: combined})
	return nil
}
