// Package main provides the CLI entrypoint for fieldmap.
//
// fieldmap is a data mapping tool that:
//   - Loads schema declarations from YAML files
//   - Validates declarations and reports every problem at once
//   - Transforms JSON data through a schema's field pipelines
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
