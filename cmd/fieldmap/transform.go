package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"fieldmap/internal/declfile"
	"fieldmap/schema"
)

type transformOptions struct {
	schemaFile string
	schemaName string
	input      string
	output     string
	dump       bool
	validate   bool
}

func newTransformCmd() *cobra.Command {
	opts := &transformOptions{}

	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Transform JSON data through a declared schema",
		Long: `transform reads JSON data (an object or an array of objects), runs it
through the named schema from the declaration file, and writes the result
as JSON. With --validate it collects per-field failures instead of
stopping at the first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.schemaFile, "schema", "s", "", "schema declaration file (required)")
	cmd.Flags().StringVarP(&opts.schemaName, "name", "n", "", "schema name (default: first in file)")
	cmd.Flags().StringVarP(&opts.input, "input", "i", "-", "input JSON file, - for stdin")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "-", "output JSON file, - for stdout")
	cmd.Flags().BoolVar(&opts.dump, "dump", false, "dump results in debug form instead of JSON")
	cmd.Flags().BoolVar(&opts.validate, "validate", false, "collect per-field failures instead of transforming")

	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func runTransform(cmd *cobra.Command, opts *transformOptions) error {
	s, err := loadSchema(opts.schemaFile, opts.schemaName)
	if err != nil {
		return err
	}

	data, err := readInput(cmd, opts.input)
	if err != nil {
		return err
	}

	if opts.validate {
		return runValidate(cmd, s, data)
	}

	var result any

	switch d := data.(type) {
	case []any:
		result, err = s.TransformAll(d)
	default:
		result, err = s.Transform(d)
	}

	if err != nil {
		return err
	}

	if opts.dump {
		spew.Fdump(cmd.OutOrStdout(), result)
		return nil
	}

	return writeOutput(cmd, opts.output, result)
}

func runValidate(cmd *cobra.Command, s *schema.Schema, data any) error {
	items, ok := data.([]any)
	if !ok {
		items = []any{data}
	}

	failed := 0

	for i, item := range items {
		errs := s.Validate(item)
		if len(errs) == 0 {
			continue
		}

		failed++

		for _, name := range s.FieldNames() {
			if err, bad := errs[name]; bad {
				fmt.Fprintf(cmd.ErrOrStderr(), "item %d: field %q: %v\n", i, name, err)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d item(s) failed validation", failed, len(items))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d item(s) valid\n", len(items))

	return nil
}

func loadSchema(path, name string) (*schema.Schema, error) {
	f, err := declfile.LoadFile(path)
	if err != nil {
		return nil, err
	}

	schemas, err := declfile.Build(f)
	if err != nil {
		return nil, err
	}

	order := declfile.Order(f)
	if len(order) == 0 {
		return nil, fmt.Errorf("no schemas declared in %s", path)
	}

	if name == "" {
		name = order[0]
	}

	s, ok := schemas[name]
	if !ok {
		return nil, fmt.Errorf("schema %q not found in %s", name, path)
	}

	return s, nil
}

func readInput(cmd *cobra.Command, path string) (any, error) {
	var raw []byte
	var err error

	if path == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(path)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse input JSON: %w", err)
	}

	return data, nil
}

func writeOutput(cmd *cobra.Command, path string, result any) error {
	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	encoded = append(encoded, '\n')

	if path == "-" {
		_, err = cmd.OutOrStdout().Write(encoded)
		return err
	}

	if err := os.WriteFile(path, encoded, 0644); err != nil {
		return fmt.Errorf("failed to write output %s: %w", path, err)
	}

	return nil
}
