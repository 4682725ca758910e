package profile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeProfileFile is a helper that writes one .hcl file into dir.
func writeProfileFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content), 0600)
	require.NoError(t, err, "failed to set up test file")
	return path
}

func TestLoad_Basic(t *testing.T) {
	dir := t.TempDir()
	writeProfileFile(t, dir, "main.hcl", `
		variable "greeting" {
			initial     = "Hello,"
			description = "Salutation prefix."
		}

		variable "subject" {
			initial = "world!"
		}

		scope "test" {
			set "greeting" { value = "other" }
			set "subject"  { value = "value" }
		}
	`)

	p, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	vars := p.Vars()
	require.Len(t, vars, 2)
	assert.Equal(t, "greeting", vars[0].Name())
	assert.Equal(t, "subject", vars[1].Name())

	greeting, ok := p.Var("greeting")
	require.True(t, ok)
	subject, ok := p.Var("subject")
	require.True(t, ok)
	assert.Equal(t, "Hello,", greeting.MustGet())
	assert.Equal(t, "world!", subject.MustGet())

	sc, ok := p.Scope("test")
	require.True(t, ok)
	require.Len(t, sc.Guard.Assignments(), 2)

	err = sc.Guard.Run(func() error {
		assert.Equal(t, "other", greeting.MustGet())
		assert.Equal(t, "value", subject.MustGet())
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello,", greeting.MustGet())
	assert.Equal(t, "world!", subject.MustGet())
}

func TestLoad_ValueKinds(t *testing.T) {
	dir := t.TempDir()
	writeProfileFile(t, dir, "kinds.hcl", `
		variable "count"    { initial = 3 }
		variable "ratio"    { initial = 0.5 }
		variable "enabled"  { initial = true }
		variable "tags"     { initial = ["a", "b"] }
		variable "labels"   { initial = { env = "dev" } }
		variable "untyped"  {}
	`)

	p, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	count, _ := p.Var("count")
	assert.Equal(t, int64(3), count.MustGet())

	ratio, _ := p.Var("ratio")
	assert.Equal(t, 0.5, ratio.MustGet())

	enabled, _ := p.Var("enabled")
	assert.Equal(t, true, enabled.MustGet())

	tags, _ := p.Var("tags")
	assert.Equal(t, []any{"a", "b"}, tags.MustGet())

	labels, _ := p.Var("labels")
	assert.Equal(t, map[string]any{"env": "dev"}, labels.MustGet())

	untyped, ok := p.Var("untyped")
	require.True(t, ok)
	_, hasValue := untyped.Get()
	assert.False(t, hasValue)
}

func TestLoad_UseCombinesScopes(t *testing.T) {
	dir := t.TempDir()
	writeProfileFile(t, dir, "main.hcl", `
		variable "a" { initial = "a0" }
		variable "b" { initial = "b0" }

		scope "base" {
			set "a" { value = "a1" }
		}

		scope "derived" {
			use = ["base"]
			set "b" { value = "b1" }
		}
	`)

	p, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	sc, ok := p.Scope("derived")
	require.True(t, ok)

	assignments := sc.Guard.Assignments()
	require.Len(t, assignments, 2)
	assert.Equal(t, "a", assignments[0].Var.Name())
	assert.Equal(t, "b", assignments[1].Var.Name())

	a, _ := p.Var("a")
	b, _ := p.Var("b")
	err = sc.Guard.Run(func() error {
		assert.Equal(t, "a1", a.MustGet())
		assert.Equal(t, "b1", b.MustGet())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "a0", a.MustGet())
	assert.Equal(t, "b0", b.MustGet())
}

func TestLoad_AcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeProfileFile(t, dir, "vars.hcl", `
		variable "region" { initial = "eu-west-1" }
	`)
	writeProfileFile(t, dir, "scopes.hcl", `
		scope "staging" {
			set "region" { value = "us-east-1" }
		}
	`)

	p, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	_, ok := p.Scope("staging")
	assert.True(t, ok)
	assert.Len(t, p.Vars(), 1)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("invalid syntax is rejected", func(t *testing.T) {
		dir := t.TempDir()
		writeProfileFile(t, dir, "broken.hcl", `
			scope "oops" {
				set "a" {
			// Missing closing braces
		`)

		_, err := NewLoader().Load(context.Background(), dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})

	t.Run("undeclared variable", func(t *testing.T) {
		dir := t.TempDir()
		writeProfileFile(t, dir, "main.hcl", `
			scope "test" {
				set "ghost" { value = "boo" }
			}
		`)

		_, err := NewLoader().Load(context.Background(), dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `sets undeclared variable "ghost"`)
	})

	t.Run("duplicate variable", func(t *testing.T) {
		dir := t.TempDir()
		writeProfileFile(t, dir, "main.hcl", `
			variable "a" { initial = 1 }
			variable "a" { initial = 2 }
		`)

		_, err := NewLoader().Load(context.Background(), dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `variable "a" declared more than once`)
	})

	t.Run("duplicate scope", func(t *testing.T) {
		dir := t.TempDir()
		writeProfileFile(t, dir, "main.hcl", `
			scope "s" {}
			scope "s" {}
		`)

		_, err := NewLoader().Load(context.Background(), dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `scope "s" declared more than once`)
	})

	t.Run("unknown used scope", func(t *testing.T) {
		dir := t.TempDir()
		writeProfileFile(t, dir, "main.hcl", `
			scope "derived" {
				use = ["missing"]
			}
		`)

		_, err := NewLoader().Load(context.Background(), dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `uses unknown scope "missing"`)
	})
}
