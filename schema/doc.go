// Package schema aggregates fields into named, ordered registries and runs
// dependency-ordered extraction over them.
//
// A Schema is built explicitly from (name, field) entries; Extend merges a
// base schema with overrides the way class inheritance would, with derived
// entries winning on name collision while keeping the base's position.
//
// Schema.Transform evaluates every field in an order computed by the
// DependencyResolver, so conditional fields always see their dependencies'
// values. Transform is fail-fast; Validate runs the same extraction but
// collects per-field errors instead of aborting.
//
// Schema.Bind produces a BoundSchema: the same declaration re-targeted at a
// different source layout by substituting per-field source paths and
// transforms, without touching the original schema.
package schema
