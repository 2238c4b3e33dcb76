package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fieldmap",
		Short: "Transform data through declarative field mapping schemas",
		Long: `fieldmap loads schema declarations from YAML and runs data through
their field pipelines: source path resolution, transforms, type casts,
value mapping, choice checks, and required checks.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newTransformCmd())

	return cmd
}
