package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldmap/field"
)

func TestFallbackPrimaryWins(t *testing.T) {
	f := field.NewFallback(
		&field.Field{Name: "contact", Source: "email"},
		&field.Field{Source: "phone"},
	)

	value, err := f.Extract(map[string]any{"email": "a@b.c", "phone": "123"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", value)
}

func TestFallbackOnPrimaryNil(t *testing.T) {
	f := field.NewFallback(
		&field.Field{Name: "contact", Source: "email"},
		&field.Field{Source: "phone"},
	)

	value, err := f.Extract(map[string]any{"phone": "123"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "123", value)
}

func TestFallbackOnPrimaryError(t *testing.T) {
	f := field.NewFallback(
		&field.Field{Name: "contact", Source: "email", Required: true},
		&field.Field{Source: "phone"},
	)

	value, err := f.Extract(map[string]any{"phone": "123"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "123", value)
}

func TestFallbackBothFail(t *testing.T) {
	f := field.NewFallback(
		&field.Field{Name: "contact", Source: "email", Required: true},
		&field.Field{Source: "phone", Required: true},
	)

	_, err := f.Extract(map[string]any{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, field.ErrRequiredValue)
}

func TestFallbackBothNilYieldsFallbackDefault(t *testing.T) {
	f := field.NewFallback(
		&field.Field{Name: "contact", Source: "email"},
		&field.Field{Source: "phone", Default: "n/a"},
	)

	value, err := f.Extract(map[string]any{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "n/a", value)
}

func TestFallbackNameAndDefault(t *testing.T) {
	f := field.NewFallback(
		&field.Field{Name: "contact", Source: "email"},
		&field.Field{Source: "phone", Default: "n/a"},
	)

	assert.Equal(t, "contact", f.FieldName())
	assert.Equal(t, "n/a", f.DefaultValue())
	assert.Equal(t, "named", f.WithName("named").FieldName())
}

func TestFallbackAssignUsesPrimary(t *testing.T) {
	f := field.NewFallback(
		&field.Field{Name: "contact", Source: "email", Target: "out.email"},
		&field.Field{Source: "phone", Target: "out.phone"},
	)

	target := map[string]any{}
	require.NoError(t, f.Assign(target, "a@b.c"))

	out := target["out"].(map[string]any)
	assert.Equal(t, "a@b.c", out["email"])
	assert.NotContains(t, out, "phone")
}

func TestFallbackRebind(t *testing.T) {
	f := field.NewFallback(
		&field.Field{Name: "contact", Source: "email"},
		&field.Field{Source: "phone"},
	)

	bound := f.Rebind(field.BindSource("alt"))

	value, err := bound.Extract(map[string]any{"alt": "rebound"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "rebound", value)
}
