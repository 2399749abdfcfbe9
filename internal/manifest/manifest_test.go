package manifest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const validSPSYAML = `
pipeline_id: demo
input_format: binary
output_format: binary
components:
  - component_id: A
  - component_id: B
  - component_id: C
`

const validMPSYAML = `
pipeline_id: demo-cycle
input_format: binary
output_format: binary
components:
  - component_id: P
    supports_reentrance: true
  - component_id: Q
    supports_reentrance: true
connections:
  - source: P
    target: Q
    direction: forward
  - source: Q
    target: P
    direction: backward
`

func TestParseBytesValidSPSManifest(t *testing.T) {
	t.Parallel()

	m, err := ParseBytes("demo.yaml", []byte(validSPSYAML))
	require.NoError(t, err)
	require.Equal(t, "demo", m.PipelineID)
	require.False(t, m.IsMPS())
	require.Equal(t, []string{"A", "B", "C"}, m.ComponentIDs())
}

func TestParseBytesValidMPSManifestIsMPS(t *testing.T) {
	t.Parallel()

	m, err := ParseBytes("demo.yaml", []byte(validMPSYAML))
	require.NoError(t, err)
	require.True(t, m.IsMPS())
	require.Len(t, m.Connections, 2)
}

func TestParseBytesMalformedYAMLFails(t *testing.T) {
	t.Parallel()

	_, err := ParseBytes("bad.yaml", []byte("pipeline_id: [unterminated"))
	require.Error(t, err)
}

func TestValidateRejectsDuplicateComponentID(t *testing.T) {
	t.Parallel()

	_, err := ParseBytes("dup.yaml", []byte(`
pipeline_id: demo
input_format: binary
output_format: binary
components:
  - component_id: A
  - component_id: A
`))
	require.Error(t, err)
}

func TestValidateRejectsUnknownConnectionEndpoint(t *testing.T) {
	t.Parallel()

	_, err := ParseBytes("bad.yaml", []byte(`
pipeline_id: demo
input_format: binary
output_format: binary
components:
  - component_id: A
connections:
  - source: A
    target: ghost
    direction: forward
`))
	require.Error(t, err)
}

func TestValidateRejectsMissingRequiredFields(t *testing.T) {
	t.Parallel()

	_, err := ParseBytes("bad.yaml", []byte(`
components:
  - component_id: A
`))
	require.Error(t, err)
}
