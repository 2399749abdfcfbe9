package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunMissingConfigFlagFailsWithInvalidArgs(t *testing.T) {
	t.Parallel()

	_, err := execCLI(t)
	require.Error(t, err)
	require.Equal(t, exitInvalidArgs, err.(*cliError).code)
}

func TestRunConfigNotFoundFailsWithExitCode2(t *testing.T) {
	t.Parallel()

	_, err := execCLI(t, "--config", "/nonexistent/path.yaml")
	require.Error(t, err)
	require.Equal(t, exitConfigNotFound, err.(*cliError).code)
}

func TestRunParseOnlyAcceptsSyntacticallyValidYAMLWithMissingFields(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeManifest(t, dir, "demo.yaml", "pipeline_id: demo\n")

	out, err := execCLI(t, "--config", path, "--parse-only")
	require.NoError(t, err)
	require.Contains(t, out, "parse ok")
}

func TestRunParseOnlyFailsOnMalformedYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeManifest(t, dir, "demo.yaml", "pipeline_id: [unterminated\n")

	_, err := execCLI(t, "--config", path, "--parse-only")
	require.Error(t, err)
	require.Equal(t, exitParseFailed, err.(*cliError).code)
}

func TestRunConfigCheckFailsValidationForMissingRequiredFields(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeManifest(t, dir, "demo.yaml", "pipeline_id: demo\n")

	_, err := execCLI(t, "--config", path, "--config-check")
	require.Error(t, err)
	require.Equal(t, exitValidationFailed, err.(*cliError).code)
}

func TestRunConfigCheckSucceedsForValidSPSManifest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeManifest(t, dir, "demo.yaml", `
pipeline_id: demo
input_format: binary
output_format: binary
components:
  - component_id: A
  - component_id: B
`)

	out, err := execCLI(t, "--config", path, "--config-check")
	require.NoError(t, err)
	require.Contains(t, out, "mode=sps")
}

func TestRunValidateThreadingDetectsNonReentrantCycle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeManifest(t, dir, "demo.yaml", `
pipeline_id: demo-cycle
input_format: binary
output_format: binary
components:
  - component_id: X
  - component_id: Y
connections:
  - source: X
    target: Y
    direction: forward
  - source: Y
    target: X
    direction: backward
`)

	_, err := execCLI(t, "--config", path, "--validate-threading")
	require.Error(t, err)
	require.Equal(t, exitThreadingInvalid, err.(*cliError).code)
}

func TestRunDiscoverComponentsFailsWhenImageMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeManifest(t, dir, "demo.yaml", `
pipeline_id: demo
input_format: binary
output_format: binary
components:
  - component_id: A
`)

	_, err := execCLI(t, "--config", path, "--discover-components")
	require.Error(t, err)
	require.Equal(t, exitDiscoveryFailed, err.(*cliError).code)
}

func TestRunVersionFlagPrintsVersionAndSucceeds(t *testing.T) {
	t.Parallel()

	out, err := execCLI(t, "--version")
	require.NoError(t, err)
	require.Contains(t, out, "nexuslink")
}
