package schema

import (
	"fmt"
	"strings"

	"fieldmap/field"
)

// CycleError reports a circular dependency among conditional fields,
// carrying one concrete cycle path.
type CycleError struct {
	Path []string
}

// Error implements error.
func (e *CycleError) Error() string {
	return fmt.Sprintf("circular dependency detected: %s", strings.Join(e.Path, " -> "))
}

// DependencyResolver orders a schema's fields so that every conditional
// field runs after the fields it depends on. It holds no state beyond the
// input field mapping and is safe to discard after use.
type DependencyResolver struct {
	names  []string
	fields map[string]field.Extractor
}

// NewDependencyResolver validates that every declared dependency references
// an existing field and returns a resolver over the given registry. names
// fixes the iteration order used to break ties.
func NewDependencyResolver(names []string, fields map[string]field.Extractor) (*DependencyResolver, error) {
	for _, name := range names {
		for _, dep := range dependenciesOf(fields[name]) {
			if _, ok := fields[dep]; !ok {
				return nil, fmt.Errorf("field %q: %w: %q", name, field.ErrMissingDependency, dep)
			}
		}
	}

	return &DependencyResolver{names: names, fields: fields}, nil
}

// dependenciesOf returns a node's declared dependencies, empty for
// non-conditional fields.
func dependenciesOf(f field.Extractor) []string {
	if d, ok := f.(field.Dependent); ok {
		return d.DependsOn()
	}

	return nil
}

// ResolveOrder returns the field names in dependency-safe execution order
// using Kahn's algorithm. Ties among independent fields follow registry
// order. A cycle returns a *CycleError naming one concrete cycle path.
func (r *DependencyResolver) ResolveOrder() ([]string, error) {
	graph := make(map[string][]string, len(r.names))
	degree := make(map[string]int, len(r.names))

	for _, name := range r.names {
		degree[name] = 0
	}

	for _, name := range r.names {
		for _, dep := range dependenciesOf(r.fields[name]) {
			graph[dep] = append(graph[dep], name)
			degree[name]++
		}
	}

	var queue []string

	for _, name := range r.names {
		if degree[name] == 0 {
			queue = append(queue, name)
		}
	}

	order := make([]string, 0, len(r.names))

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		order = append(order, current)

		for _, neighbor := range graph[current] {
			degree[neighbor]--
			if degree[neighbor] == 0 {
				queue = append(queue, neighbor)
			}
		}
	}

	if len(order) != len(r.names) {
		return nil, &CycleError{Path: r.findCycle()}
	}

	return order, nil
}

// findCycle re-walks the graph depth-first with a recursion stack to extract
// one concrete cycle path for the error message.
func (r *DependencyResolver) findCycle() []string {
	visited := make(map[string]bool, len(r.names))
	onStack := make(map[string]bool, len(r.names))

	var dfs func(node string, path []string) []string

	dfs = func(node string, path []string) []string {
		if onStack[node] {
			for i, n := range path {
				if n == node {
					return append(append([]string{}, path[i:]...), node)
				}
			}

			return []string{node, node}
		}

		if visited[node] {
			return nil
		}

		visited[node] = true
		onStack[node] = true
		path = append(path, node)

		for _, dep := range dependenciesOf(r.fields[node]) {
			if cycle := dfs(dep, path); cycle != nil {
				return cycle
			}
		}

		onStack[node] = false

		return nil
	}

	for _, name := range r.names {
		if visited[name] {
			continue
		}

		if cycle := dfs(name, nil); cycle != nil {
			return cycle
		}
	}

	return []string{"unknown cycle"}
}
