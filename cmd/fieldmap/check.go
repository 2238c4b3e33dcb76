package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"fieldmap/internal/declfile"
)

func newCheckCmd() *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "check <schema-file>",
		Short: "Validate a schema declaration file",
		Long: `check loads a YAML declaration file and reports every structural
problem found: unknown transforms, bad composite blocks, missing names,
broken extends references. A clean file also gets its schemas built, so
dependency cycles surface here too.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], dump)
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "dump the built schemas in debug form")

	return cmd
}

func runCheck(cmd *cobra.Command, path string, dump bool) error {
	f, err := declfile.LoadFile(path)
	if err != nil {
		return err
	}

	diags := declfile.Validate(f)

	for _, d := range diags.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", d.String())
	}

	for _, d := range diags.Errors {
		fmt.Fprintln(cmd.ErrOrStderr(), "error:", d.String())
	}

	if diags.HasErrors() {
		return fmt.Errorf("%d error(s) in %s", len(diags.Errors), path)
	}

	schemas, err := declfile.Build(f)
	if err != nil {
		return err
	}

	for _, name := range declfile.Order(f) {
		fmt.Fprintf(cmd.OutOrStdout(), "ok: schema %q (%d fields)\n",
			name, len(schemas[name].FieldNames()))

		if dump {
			spew.Fdump(cmd.OutOrStdout(), schemas[name].Fields())
		}
	}

	return nil
}
