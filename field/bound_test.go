package field_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldmap/field"
)

func TestBoundTransformData(t *testing.T) {
	source := &field.Field{Name: "email", Source: "email_addr"}
	target := &field.Field{Name: "email", Target: "contact.email"}

	b, err := field.NewBound(source, target)
	require.NoError(t, err)

	out := map[string]any{}
	require.NoError(t, b.TransformData(map[string]any{"email_addr": "a@b.c"}, out))

	contact := out["contact"].(map[string]any)
	assert.Equal(t, "a@b.c", contact["email"])
}

func TestBoundExtraTransform(t *testing.T) {
	source := &field.Field{Name: "email", Source: "email"}
	target := &field.Field{Name: "email", Target: "email"}

	b, err := field.NewBound(source, target)
	require.NoError(t, err)

	b = b.WithTransform(func(v any) (any, error) {
		return strings.ToUpper(v.(string)), nil
	})

	value, err := b.ExtractOnly(map[string]any{"email": "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, "A@B.C", value)
}

func TestBoundSelfTarget(t *testing.T) {
	f := &field.Field{Name: "email", Source: "email_addr", Target: "email"}

	b, err := field.NewBound(f, nil)
	require.NoError(t, err)

	out := map[string]any{}
	require.NoError(t, b.TransformData(map[string]any{"email_addr": "a@b.c"}, out))
	assert.Equal(t, "a@b.c", out["email"])
}

func TestBoundValidation(t *testing.T) {
	noSource := &field.Field{Name: "x"}
	_, err := field.NewBound(noSource, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, field.ErrDefinition)

	source := &field.Field{Name: "x", Source: "x"}
	noTarget := &field.Field{Name: "x"}
	_, err = field.NewBound(source, noTarget)
	require.Error(t, err)
	assert.ErrorIs(t, err, field.ErrDefinition)
}

func TestBoundPaths(t *testing.T) {
	b, err := field.NewBound(
		&field.Field{Name: "email", Source: "in.email"},
		&field.Field{Name: "email", Target: "out.email"},
	)
	require.NoError(t, err)

	assert.Equal(t, "in.email", b.SourcePath())
	assert.Equal(t, "out.email", b.TargetPath())
}

func TestBoundNestedSource(t *testing.T) {
	nested := field.NewNested(&field.Field{Name: "email", Source: "email"}, "profile")

	b, err := field.NewBound(nested, &field.Field{Name: "email", Target: "email"})
	require.NoError(t, err)

	out := map[string]any{}
	data := map[string]any{"profile": map[string]any{"email": "a@b.c"}}

	require.NoError(t, b.TransformData(data, out))
	assert.Equal(t, "a@b.c", out["email"])
}

func TestBoundFromMapping(t *testing.T) {
	bound, err := field.BoundFromMapping(map[string]field.Binding{
		"email": field.BindSource("contact.email"),
		"name":  field.BindSource("full_name"),
	})
	require.NoError(t, err)
	require.Len(t, bound, 2)

	out := map[string]any{}
	data := map[string]any{
		"contact":   map[string]any{"email": "a@b.c"},
		"full_name": "Ana",
	}

	for _, b := range bound {
		require.NoError(t, b.TransformData(data, out))
	}

	assert.Equal(t, "a@b.c", out["email"])
	assert.Equal(t, "Ana", out["name"])
}

func TestBoundFromMappingNoSource(t *testing.T) {
	_, err := field.BoundFromMapping(map[string]field.Binding{
		"email": field.BindTransform(func(v any) (any, error) { return v, nil }),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, field.ErrDefinition)
}
