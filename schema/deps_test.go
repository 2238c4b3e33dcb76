package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldmap/field"
	"fieldmap/schema"
)

func noopCondition(deps ...any) (any, error) {
	return nil, nil
}

func conditionalOn(name string, deps ...string) *field.Field {
	return &field.Field{
		Name:         name,
		Conditional:  true,
		Dependencies: deps,
		Conditions:   map[string]field.ConditionFunc{"value": noopCondition},
	}
}

func registryOf(fields ...*field.Field) ([]string, map[string]field.Extractor) {
	names := make([]string, 0, len(fields))
	registry := make(map[string]field.Extractor, len(fields))

	for _, f := range fields {
		names = append(names, f.Name)
		registry[f.Name] = f
	}

	return names, registry
}

func TestResolveOrderDiamond(t *testing.T) {
	names, fields := registryOf(
		conditionalOn("d", "b", "c"),
		conditionalOn("b", "a"),
		conditionalOn("c", "a"),
		&field.Field{Name: "a", Source: "a"},
	)

	resolver, err := schema.NewDependencyResolver(names, fields)
	require.NoError(t, err)

	order, err := resolver.ResolveOrder()
	require.NoError(t, err)
	require.Len(t, order, 4)

	pos := map[string]int{}
	for i, name := range order {
		pos[name] = i
	}

	assert.Less(t, pos["a"], pos["b"])
	assert.Less(t, pos["a"], pos["c"])
	assert.Less(t, pos["b"], pos["d"])
	assert.Less(t, pos["c"], pos["d"])
}

func TestResolveOrderKeepsRegistryOrder(t *testing.T) {
	names, fields := registryOf(
		&field.Field{Name: "z", Source: "z"},
		&field.Field{Name: "m", Source: "m"},
		&field.Field{Name: "a", Source: "a"},
	)

	resolver, err := schema.NewDependencyResolver(names, fields)
	require.NoError(t, err)

	order, err := resolver.ResolveOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "m", "a"}, order)
}

func TestResolveOrderCycle(t *testing.T) {
	names, fields := registryOf(
		conditionalOn("x", "y"),
		conditionalOn("y", "x"),
	)

	resolver, err := schema.NewDependencyResolver(names, fields)
	require.NoError(t, err)

	_, err = resolver.ResolveOrder()
	require.Error(t, err)

	var cycleErr *schema.CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Contains(t, cycleErr.Path, "x")
	assert.Contains(t, cycleErr.Path, "y")
	assert.Contains(t, err.Error(), "circular dependency")
}

func TestResolveOrderSelfCycle(t *testing.T) {
	names, fields := registryOf(conditionalOn("x", "x"))

	resolver, err := schema.NewDependencyResolver(names, fields)
	require.NoError(t, err)

	_, err = resolver.ResolveOrder()
	require.Error(t, err)

	var cycleErr *schema.CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"x", "x"}, cycleErr.Path)
}

func TestResolverMissingDependency(t *testing.T) {
	names, fields := registryOf(conditionalOn("x", "ghost"))

	_, err := schema.NewDependencyResolver(names, fields)
	require.Error(t, err)
	assert.ErrorIs(t, err, field.ErrMissingDependency)
	assert.Contains(t, err.Error(), `"ghost"`)
}
