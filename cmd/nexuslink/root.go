package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// rootFlags mirrors the flat flag surface spec §6 requires: nexuslink is
// a thin, non-core collaborator over the config/engine packages, so a
// single command with mode flags stands in for subcommands.
type rootFlags struct {
	configPath         string
	configCheck        bool
	discoverComponents bool
	validateThreading  bool
	parseOnly          bool
	versionRequested   bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "nexuslink",
		Short:         "Inspect and validate NexusLink pipeline manifests",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.versionRequested {
				fmt.Fprintln(cmd.OutOrStdout(), version())
				return nil
			}
			return run(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "", "Path to the pipeline manifest YAML file")
	cmd.Flags().BoolVar(&flags.configCheck, "config-check", false, "Parse and validate the manifest, then exit")
	cmd.Flags().BoolVar(&flags.discoverComponents, "discover-components", false, "Attempt to open every declared component image and resolve its process symbol")
	cmd.Flags().BoolVar(&flags.validateThreading, "validate-threading", false, "Validate dependency-graph acyclicity (SPS) or SCC/reentrance structure (MPS)")
	cmd.Flags().BoolVar(&flags.parseOnly, "parse-only", false, "Parse the manifest YAML without running semantic validation")
	cmd.Flags().BoolVar(&flags.versionRequested, "version", false, "Print the nexuslink version and exit")

	return cmd
}
