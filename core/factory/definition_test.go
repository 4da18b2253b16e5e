package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	label string
	size  int
}

func TestNewDefinitionValidation(t *testing.T) {
	cases := []struct {
		name  string
		defn  string
		ctors []any
	}{
		{"empty name", "", []any{func() widget { return widget{} }}},
		{"no constructors", "w", nil},
		{"nil constructor", "w", []any{nil}},
		{"not a function", "w", []any{42}},
		{"variadic", "w", []any{func(labels ...string) widget { return widget{} }}},
		{"no results", "w", []any{func() {}}},
		{"bad second result", "w", []any{func() (widget, string) { return widget{}, "" }}},
		{"too many results", "w", []any{func() (widget, error, error) { return widget{}, nil, nil }}},
		{"product disagreement", "w", []any{
			func() widget { return widget{} },
			func() *widget { return &widget{} },
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewDefinition(tc.defn, tc.ctors...)
			assert.Error(t, err)
		})
	}
}

func TestDefinitionProduct(t *testing.T) {
	def, err := NewDefinition("w",
		func() *widget { return &widget{} },
		func(label string) *widget { return &widget{label: label} },
	)
	require.NoError(t, err)
	assert.Equal(t, "w", def.Name())
	assert.Equal(t, "*factory.widget", def.Product().String())
}

func TestDuplicateDefinition(t *testing.T) {
	scope := NewScope(t.Name())
	require.NoError(t, scope.Define("w", func() widget { return widget{} }))
	err := scope.Define("w", func() widget { return widget{} })
	var dup *DuplicateDefinitionError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "w", dup.Name)
}

func TestSelectConstructorPrefersZeroArg(t *testing.T) {
	def, err := NewDefinition("w",
		func(label string) widget { return widget{label: label} },
		func() widget { return widget{label: "default"} },
	)
	require.NoError(t, err)

	// Even with a satisfiable argument constructor declared first, the
	// zero-argument constructor is used.
	args := NewArguments().Set("injected")
	c, bound, err := selectConstructor(def, args)
	require.NoError(t, err)
	assert.Empty(t, c.params)
	assert.Nil(t, bound)

	out, err := def.construct(c, bound)
	require.NoError(t, err)
	assert.Equal(t, "default", out.(widget).label)
}

func TestSelectConstructorBindsPositionallyByType(t *testing.T) {
	def, err := NewDefinition("w", func(label string, size int) widget {
		return widget{label: label, size: size}
	})
	require.NoError(t, err)

	args := NewArguments().Set("big").Set(7)
	c, bound, err := selectConstructor(def, args)
	require.NoError(t, err)
	require.Len(t, bound, 2)

	out, err := def.construct(c, bound)
	require.NoError(t, err)
	assert.Equal(t, widget{label: "big", size: 7}, out)
}

func TestSelectConstructorNoMatch(t *testing.T) {
	def, err := NewDefinition("w", func(label string, size int) widget {
		return widget{label: label, size: size}
	})
	require.NoError(t, err)

	// One of the two parameter types is missing.
	args := NewArguments().Set("big")
	_, _, err = selectConstructor(def, args)
	var ctorErr *NoSuchConstructorError
	require.ErrorAs(t, err, &ctorErr)
	assert.Contains(t, ctorErr.Error(), `"w"`)
}

func TestDecode(t *testing.T) {
	var conf struct {
		Label string `json:"label"`
		Size  int    `json:"size"`
	}
	err := Decode(map[string]any{"label": "x", "size": 3}, &conf)
	require.NoError(t, err)
	assert.Equal(t, "x", conf.Label)
	assert.Equal(t, 3, conf.Size)
}
