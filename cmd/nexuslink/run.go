package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/obinexus/nexuslink/internal/depgraph/mps"
	"github.com/obinexus/nexuslink/internal/depgraph/sps"
	"github.com/obinexus/nexuslink/internal/imageloader"
	"github.com/obinexus/nexuslink/internal/manifest"
	"github.com/obinexus/nexuslink/pkg/nxerrors"
)

// run dispatches to the mode implied by flags, in priority order
// parse-only, config-check, validate-threading, discover-components,
// falling back to a full check (parse + validate + thread + discover)
// when no mode flag is given (spec §6 "CLI surface").
func run(cmd *cobra.Command, flags *rootFlags) error {
	if flags.configPath == "" {
		return fail(exitInvalidArgs, "missing required --config flag")
	}
	if _, err := os.Stat(flags.configPath); err != nil {
		return fail(exitConfigNotFound, "config file not found: %s", flags.configPath)
	}

	data, err := os.ReadFile(flags.configPath)
	if err != nil {
		return fail(exitConfigNotFound, "reading config file: %v", err)
	}

	if flags.parseOnly {
		var m manifest.Manifest
		if parseErr := yaml.Unmarshal(data, &m); parseErr != nil {
			return fail(exitParseFailed, "parse failed: %v", parseErr)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "parse ok: pipeline_id=%s components=%d\n", m.PipelineID, len(m.Components))
		return nil
	}

	m, err := manifest.ParseBytes(flags.configPath, data)
	if err != nil {
		var perr *nxerrors.ParseError
		if errors.As(err, &perr) {
			return fail(exitParseFailed, "parse failed: %v", err)
		}
		return fail(exitValidationFailed, "validation failed: %v", err)
	}

	if flags.configCheck {
		fmt.Fprintf(cmd.OutOrStdout(), "config ok: pipeline_id=%s mode=%s\n", m.PipelineID, modeName(m))
		return nil
	}

	if flags.validateThreading {
		if err := validateThreading(m); err != nil {
			return fail(exitThreadingInvalid, "threading invalid: %v", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "threading ok: pipeline_id=%s mode=%s\n", m.PipelineID, modeName(m))
		return nil
	}

	if flags.discoverComponents {
		discovered, err := discoverComponents(m)
		if err != nil {
			return fail(exitDiscoveryFailed, "discovery failed: %v", err)
		}
		for _, id := range discovered {
			fmt.Fprintf(cmd.OutOrStdout(), "discovered: %s\n", id)
		}
		return nil
	}

	// No mode flag: run every check in sequence.
	if err := validateThreading(m); err != nil {
		return fail(exitThreadingInvalid, "threading invalid: %v", err)
	}
	discovered, err := discoverComponents(m)
	if err != nil {
		return fail(exitDiscoveryFailed, "discovery failed: %v", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "pipeline %s ok: mode=%s components=%d\n", m.PipelineID, modeName(m), len(discovered))
	return nil
}

func modeName(m *manifest.Manifest) string {
	if m.IsMPS() {
		return "mps"
	}
	return "sps"
}

// validateThreading rebuilds the same dependency graph the pipeline
// engine would, exercising the SPS topological sort or the MPS SCC and
// reentrance validation without loading any component image.
func validateThreading(m *manifest.Manifest) error {
	if m.IsMPS() {
		infos := make([]mps.ComponentInfo, len(m.Components))
		for i, c := range m.Components {
			infos[i] = mps.ComponentInfo{ID: c.ComponentID, SupportsReentrance: c.SupportsReentrance}
		}
		g := mps.NewGraph(infos)
		for _, conn := range m.Connections {
			g.AddConnection(mps.Connection{
				Source: conn.Source, Target: conn.Target,
				Direction: parseCLIDirection(conn.Direction), Format: conn.Format,
			})
		}
		return g.ValidateReentrance()
	}

	g := sps.NewGraph(m.ComponentIDs())
	if _, err := g.ScanMissingDependencies(); err != nil {
		return err
	}
	_, err := g.TopologicalSort()
	return err
}

func parseCLIDirection(s string) mps.Direction {
	switch s {
	case "backward":
		return mps.Backward
	case "bidirectional":
		return mps.Bidirectional
	default:
		return mps.Forward
	}
}

// discoverComponents attempts to open every declared component's image
// and resolve its process symbol, using the real native loader, without
// invoking any init hook beyond nexus_component_init. It reports ids
// that resolved successfully; a failure on a non-optional component
// fails the whole scan.
func discoverComponents(m *manifest.Manifest) ([]string, error) {
	native := imageloader.NewNativeImageLoader()
	handles := imageloader.NewHandleRegistry(native)
	defer handles.Destroy()
	loader := imageloader.NewLoader(handles, native)

	var discovered []string
	for _, c := range m.Components {
		path := fmt.Sprintf("components/%s/lib%s.so", c.ComponentID, c.ComponentID)
		comp, err := loader.Load(nil, path, c.ComponentID)
		if err != nil {
			if c.Optional {
				continue
			}
			return discovered, fmt.Errorf("component %s: %w", c.ComponentID, err)
		}
		if _, ok := loader.ResolveSymbol(comp, c.ComponentID+"_process"); !ok {
			if c.Optional {
				continue
			}
			return discovered, nxerrors.NewSymbolNotFound(c.ComponentID + "_process")
		}
		discovered = append(discovered, c.ComponentID)
	}
	return discovered, nil
}
