// Package transforms is a library of ready-made transform functions for use
// as field transforms: text reshaping, numeric conversion, collection
// helpers, and general cleanup.
//
// Two calling conventions exist, matching how a transform is configured:
// simple transforms are plain functions usable directly (transforms.Strip),
// parameterized transforms are factories returning a function
// (transforms.Replace("-", "_")).
//
// The core engine never depends on this package; anything satisfying the
// field.TransformFunc contract works in its place. Registry exposes the
// simple transforms by name for declaration files.
package transforms
