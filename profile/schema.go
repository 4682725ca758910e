package profile

import "github.com/hashicorp/hcl/v2"

// variableBlock represents a `variable` block declaring one dynamically
// scoped variable.
type variableBlock struct {
	Name        string         `hcl:"name,label"`
	Initial     hcl.Expression `hcl:"initial,optional"`
	Description string         `hcl:"description,optional"`
}

// setBlock represents a `set` block inside a scope: one assignment to a
// declared variable.
type setBlock struct {
	Variable string         `hcl:"variable,label"`
	Value    hcl.Expression `hcl:"value"`
}

// scopeBlock represents a `scope` block. `use` prepends the assignments of
// previously declared scopes, in the listed order, before this scope's own
// set blocks.
type scopeBlock struct {
	Name string      `hcl:"name,label"`
	Use  []string    `hcl:"use,optional"`
	Sets []*setBlock `hcl:"set,block"`
}

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Variables []*variableBlock `hcl:"variable,block"`
	Scopes    []*scopeBlock    `hcl:"scope,block"`
	Remain    hcl.Body         `hcl:",remain"`
}
