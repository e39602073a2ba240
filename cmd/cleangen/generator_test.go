package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idudko/go-autoclean/pkg/autoclean"
)

func writePackage(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func TestParseMarker(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		ok      bool
		want    Marker
		wantErr string
	}{
		{name: "no marker", text: "// Fixture is a fixture", ok: false},
		{name: "other generator", text: "// generate:reset", ok: false},
		{name: "prefix only", text: "// generate:autocleaner", ok: false},
		{name: "bare", text: "// generate:autoclean", ok: true},
		{
			name: "all arguments",
			text: "// generate:autoclean hierarchy=declared|inherited visibility=nonpublic options=donotdispose",
			ok:   true,
			want: Marker{
				Hierarchy: autoclean.Declared | autoclean.Inherited, hasHierarchy: true,
				Visibility: autoclean.NonPublic, hasVisibility: true,
				Options: autoclean.DoNotDispose, hasOptions: true,
			},
		},
		{name: "unknown flag", text: "// generate:autoclean hierarchy=sideways", ok: true, wantErr: `unknown hierarchy "sideways"`},
		{name: "unknown key", text: "// generate:autoclean depth=1", ok: true, wantErr: `unknown marker argument "depth"`},
		{name: "missing value", text: "// generate:autoclean hierarchy", ok: true, wantErr: "expected key=value"},
		{name: "empty selector", text: "// generate:autoclean visibility=,", ok: true, wantErr: "empty visibility"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok, err := parseMarker(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
		})
	}
}

func TestGenerateForPackage(t *testing.T) {
	dir := writePackage(t, map[string]string{
		"fixture.go": `package fixtures

import "io"

// generate:autoclean hierarchy=declared options=includereadonly|donotdispose
type Fixture struct {
	Base
	db   io.Closer ` + "`clean:\"readonly\"`" + `
	name string
}

// generate:autoclean
type Base struct {
	Runner string
}

type Plain struct {
	n int
}
`,
		"fixture_test.go": `package fixtures

// generate:autoclean
type Ignored struct{}
`,
	})

	n, err := generateForPackage(dir, "autoclean.gen.go")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	code, err := os.ReadFile(filepath.Join(dir, "autoclean.gen.go"))
	require.NoError(t, err)
	src := string(code)

	assert.Contains(t, src, "// Code generated by cleangen; DO NOT EDIT.")
	assert.Contains(t, src, `import "github.com/idudko/go-autoclean/pkg/autoclean"`)
	assert.Contains(t, src, "func (x *Fixture) Reset() error {\n\treturn autoclean.ResetAs[Fixture](x, "+
		"autoclean.WithHierarchy(autoclean.Declared), "+
		"autoclean.WithResetOptions(autoclean.IncludeReadOnly|autoclean.DoNotDispose))\n}")
	assert.Contains(t, src, "func (x *Base) Reset() error {\n\treturn autoclean.ResetAs[Base](x)\n}")
	assert.NotContains(t, src, "Plain")
	assert.NotContains(t, src, "Ignored")

	// regenerating ignores the generated file itself
	n, err = generateForPackage(dir, "autoclean.gen.go")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestGenerateForPackage_AllFlags(t *testing.T) {
	dir := writePackage(t, map[string]string{
		"a.go": `package a

// generate:autoclean hierarchy=all visibility=all options=none
type A struct{ v int }
`,
	})

	_, err := generateForPackage(dir, "autoclean.gen.go")
	require.NoError(t, err)

	code, err := os.ReadFile(filepath.Join(dir, "autoclean.gen.go"))
	require.NoError(t, err)
	assert.Contains(t, string(code), "autoclean.ResetAs[A](x, autoclean.WithHierarchy(autoclean.AllHierarchy), "+
		"autoclean.WithVisibility(autoclean.AllVisibility))")
}

func TestGenerateForPackage_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name: "bad tag",
			src: "package a\n\n// generate:autoclean\ntype A struct {\n\tv int `clean:\"sometimes\"`\n}\n",
			wantErr: `invalid clean tag "sometimes"`,
		},
		{
			name:    "not a struct",
			src:     "package a\n\n// generate:autoclean\ntype A int\n",
			wantErr: "A is not a struct type",
		},
		{
			name:    "generic",
			src:     "package a\n\n// generate:autoclean\ntype A[T any] struct{ v T }\n",
			wantErr: "generic type A is not supported",
		},
		{
			name:    "existing reset",
			src:     "package a\n\n// generate:autoclean\ntype A struct{ v int }\n\nfunc (a *A) Reset() error { return nil }\n",
			wantErr: "already declares a Reset method",
		},
		{
			name:    "bad marker",
			src:     "package a\n\n// generate:autoclean options=forever\ntype A struct{ v int }\n",
			wantErr: `unknown reset option "forever"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writePackage(t, map[string]string{"a.go": tt.src})
			_, err := generateForPackage(dir, "autoclean.gen.go")
			assert.ErrorContains(t, err, tt.wantErr)
			assert.NoFileExists(t, filepath.Join(dir, "autoclean.gen.go"))
		})
	}
}

func TestGenerateForPackage_RemovesStaleOutput(t *testing.T) {
	dir := writePackage(t, map[string]string{
		"a.go":             "package a\n\ntype A struct{ v int }\n",
		"autoclean.gen.go": "package a\n",
	})

	n, err := generateForPackage(dir, "autoclean.gen.go")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoFileExists(t, filepath.Join(dir, "autoclean.gen.go"))
}

func TestRunRecursive(t *testing.T) {
	root := writePackage(t, map[string]string{
		"a.go": "package a\n\n// generate:autoclean\ntype A struct{ v int }\n",
	})
	sub := filepath.Join(root, "sub")
	hidden := filepath.Join(root, "testdata")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.MkdirAll(hidden, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "b.go"),
		[]byte("package sub\n\n// generate:autoclean\ntype B struct{ v int }\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(hidden, "c.go"),
		[]byte("package testdata\n\n// generate:autoclean\ntype C struct{ v int }\n"), 0o600))

	require.NoError(t, run(root, "autoclean.gen.go", true))

	assert.FileExists(t, filepath.Join(root, "autoclean.gen.go"))
	assert.FileExists(t, filepath.Join(sub, "autoclean.gen.go"))
	assert.NoFileExists(t, filepath.Join(hidden, "autoclean.gen.go"))
}
