package schema_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldmap/field"
	"fieldmap/schema"
)

func lowerTransform(value any) (any, error) {
	return strings.ToLower(strings.TrimSpace(value.(string))), nil
}

func userSchema(t *testing.T) *schema.Schema {
	t.Helper()

	s, err := schema.New(
		schema.Entry{Name: "id", Field: &field.Field{Name: "id", Source: "user_id", Required: true}},
		schema.Entry{Name: "email", Field: &field.Field{Name: "email", Source: "email_addr", Transform: lowerTransform}},
		schema.Entry{Name: "status", Field: &field.Field{Name: "status", Source: "state", Default: "active"}},
	)
	require.NoError(t, err)

	return s
}

func TestTransform(t *testing.T) {
	s := userSchema(t)

	result, err := s.Transform(map[string]any{
		"user_id":    7,
		"email_addr": "  Ana@Example.COM ",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"id":     7,
		"email":  "ana@example.com",
		"status": "active",
	}, result)
}

func TestTransformFailFast(t *testing.T) {
	s := userSchema(t)

	_, err := s.Transform(map[string]any{"email_addr": "a@b.c"})
	require.Error(t, err)
	assert.ErrorIs(t, err, field.ErrRequiredValue)
	assert.Contains(t, err.Error(), `failed on field "id"`)
}

func TestNewRejectsBadEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []schema.Entry
	}{
		{
			name:    "empty name",
			entries: []schema.Entry{{Name: "", Field: &field.Field{}}},
		},
		{
			name:    "nil field",
			entries: []schema.Entry{{Name: "x", Field: nil}},
		},
		{
			name: "intrinsic name mismatch",
			entries: []schema.Entry{
				{Name: "x", Field: &field.Field{Name: "y"}},
			},
		},
		{
			name: "duplicate",
			entries: []schema.Entry{
				{Name: "x", Field: &field.Field{Name: "x"}},
				{Name: "x", Field: &field.Field{Name: "x"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.New(tt.entries...)
			require.Error(t, err)
			assert.ErrorIs(t, err, field.ErrDefinition)
		})
	}
}

func TestNewRejectsCycle(t *testing.T) {
	_, err := schema.New(
		schema.Entry{Name: "x", Field: conditionalOn("x", "y")},
		schema.Entry{Name: "y", Field: conditionalOn("y", "x")},
	)
	require.Error(t, err)

	var cycleErr *schema.CycleError
	assert.ErrorAs(t, err, &cycleErr)
}

func TestExtend(t *testing.T) {
	base := userSchema(t)

	derived, err := schema.Extend(base,
		schema.Entry{Name: "status", Field: &field.Field{Name: "status", Source: "state", Default: "pending"}},
		schema.Entry{Name: "role", Field: &field.Field{Name: "role", Source: "role", Default: "user"}},
	)
	require.NoError(t, err)

	// Overridden field keeps its base position; new fields append.
	assert.Equal(t, []string{"id", "email", "status", "role"}, derived.FieldNames())

	result, err := derived.Transform(map[string]any{"user_id": 1})
	require.NoError(t, err)
	assert.Equal(t, "pending", result["status"])
	assert.Equal(t, "user", result["role"])

	// The base schema is untouched.
	result, err = base.Transform(map[string]any{"user_id": 1})
	require.NoError(t, err)
	assert.Equal(t, "active", result["status"])
	assert.False(t, base.HasField("role"))
}

func TestMerge(t *testing.T) {
	a, err := schema.New(
		schema.Entry{Name: "x", Field: &field.Field{Name: "x", Source: "x", Default: "from-a"}},
	)
	require.NoError(t, err)

	b, err := schema.New(
		schema.Entry{Name: "x", Field: &field.Field{Name: "x", Source: "x", Default: "from-b"}},
		schema.Entry{Name: "y", Field: &field.Field{Name: "y", Source: "y"}},
	)
	require.NoError(t, err)

	merged, err := schema.Merge(a, b)
	require.NoError(t, err)

	result, err := merged.Transform(map[string]any{"y": 2})
	require.NoError(t, err)
	assert.Equal(t, "from-b", result["x"])
	assert.Equal(t, 2, result["y"])
}

func TestTransientFields(t *testing.T) {
	s, err := schema.New(
		schema.Entry{Name: "tier", Field: &field.Field{Name: "tier", Source: "tier", TransientField: true}},
		schema.Entry{Name: "discount", Field: &field.Field{
			Name:         "discount",
			Conditional:  true,
			Dependencies: []string{"tier"},
			Conditions: map[string]field.ConditionFunc{
				"value": func(deps ...any) (any, error) {
					if deps[0] == "gold" {
						return 0.2, nil
					}

					return 0.0, nil
				},
			},
		}},
	)
	require.NoError(t, err)

	result, err := s.Transform(map[string]any{"tier": "gold"})
	require.NoError(t, err)

	assert.Equal(t, 0.2, result["discount"])
	assert.NotContains(t, result, "tier")
}

func TestConditionalOrderIndependentOfDeclaration(t *testing.T) {
	// The conditional field is declared before its dependency; resolution
	// still runs the dependency first.
	s, err := schema.New(
		schema.Entry{Name: "discount", Field: &field.Field{
			Name:         "discount",
			Conditional:  true,
			Dependencies: []string{"tier"},
			Conditions: map[string]field.ConditionFunc{
				"value": func(deps ...any) (any, error) { return deps[0], nil },
			},
		}},
		schema.Entry{Name: "tier", Field: &field.Field{Name: "tier", Source: "tier"}},
	)
	require.NoError(t, err)

	result, err := s.Transform(map[string]any{"tier": "gold"})
	require.NoError(t, err)
	assert.Equal(t, "gold", result["discount"])
}

func TestTransformAll(t *testing.T) {
	s := userSchema(t)

	results, err := s.TransformAll([]any{
		map[string]any{"user_id": 1, "email_addr": "A@b.c"},
		map[string]any{"user_id": 2},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0]["id"])
	assert.Equal(t, 2, results[1]["id"])

	_, err = s.TransformAll([]any{
		map[string]any{"user_id": 1},
		map[string]any{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 1")
}

func TestTransformInto(t *testing.T) {
	type User struct {
		ID     int
		Email  string
		Status string
	}

	s := userSchema(t)

	var u User
	require.NoError(t, s.TransformInto(map[string]any{
		"user_id":    7,
		"email_addr": "A@B.C",
	}, &u))

	assert.Equal(t, User{ID: 7, Email: "a@b.c", Status: "active"}, u)
}

func TestTransformIntoRejectsNonStruct(t *testing.T) {
	s := userSchema(t)

	var m map[string]any
	err := s.TransformInto(map[string]any{"user_id": 1}, &m)
	require.Error(t, err)
	assert.ErrorIs(t, err, field.ErrAssignTarget)
}

func TestValidate(t *testing.T) {
	s := userSchema(t)

	errs := s.Validate(map[string]any{"user_id": 1})
	assert.Empty(t, errs)

	errs = s.Validate(map[string]any{})
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs["id"], field.ErrRequiredValue)
}

func TestSubset(t *testing.T) {
	s := userSchema(t)

	sub, err := s.Subset("status", "id")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "status"}, sub.FieldNames())

	_, err = s.Subset("ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, field.ErrDefinition)
}

func TestSchemaWithComposites(t *testing.T) {
	s, err := schema.New(
		schema.Entry{Name: "contact", Field: field.NewFallback(
			&field.Field{Name: "contact", Source: "email"},
			&field.Field{Source: "phone"},
		)},
		schema.Entry{Name: "full_name", Field: &field.AccumulatedField{
			Name:      "full_name",
			Separator: " ",
			Fields: []field.Extractor{
				&field.Field{Source: "first_name"},
				&field.Field{Source: "last_name"},
			},
		}},
	)
	require.NoError(t, err)

	result, err := s.Transform(map[string]any{
		"phone":      "123",
		"first_name": "Ana",
		"last_name":  "Ruiz",
	})
	require.NoError(t, err)
	assert.Equal(t, "123", result["contact"])
	assert.Equal(t, "Ana Ruiz", result["full_name"])
}
