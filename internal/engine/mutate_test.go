package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/obinexus/nexuslink/internal/component"
	"github.com/obinexus/nexuslink/internal/imageloader"
	"github.com/obinexus/nexuslink/internal/manifest"
)

func TestAddComponentInsertsAndInitializesWhenPipelineAlreadyInitialized(t *testing.T) {
	t.Parallel()

	m, err := manifest.ParseBytes("demo.yaml", []byte(`
pipeline_id: demo
input_format: binary
output_format: binary
components:
  - component_id: A
  - component_id: C
`))
	require.NoError(t, err)

	fake := imageloader.NewFakeImageLoader()
	registerFakeComponent(fake, "A", appendByteProcess(0xA0))
	registerFakeComponent(fake, "C", appendByteProcess(0xC0))
	handles := imageloader.NewHandleRegistry(fake)
	loader := imageloader.NewLoader(handles, fake)

	p, err := New(m, newTestContext(), loader)
	require.NoError(t, err)
	require.NoError(t, p.Initialize(nil))

	registerFakeComponent(fake, "B", appendByteProcess(0xB0))
	require.NoError(t, p.AddComponent(nil, manifest.Component{ComponentID: "B"}, "C"))

	compB, ok := p.Component("B")
	require.True(t, ok)
	require.Equal(t, component.StateInitialized, compB.State)

	order := p.execOrder
	require.Equal(t, []string{"A", "B", "C"}, order)
}

func TestAddComponentRejectsDuplicateID(t *testing.T) {
	t.Parallel()

	m, err := manifest.ParseBytes("demo.yaml", []byte(`
pipeline_id: demo
input_format: binary
output_format: binary
components:
  - component_id: A
`))
	require.NoError(t, err)

	fake := imageloader.NewFakeImageLoader()
	registerFakeComponent(fake, "A", appendByteProcess(0xA0))
	handles := imageloader.NewHandleRegistry(fake)
	loader := imageloader.NewLoader(handles, fake)

	p, err := New(m, newTestContext(), loader)
	require.NoError(t, err)

	err = p.AddComponent(nil, manifest.Component{ComponentID: "A"}, "")
	require.Error(t, err)
}

func TestRemoveComponentUnloadsAndDropsIncidentConnections(t *testing.T) {
	t.Parallel()

	m, err := manifest.ParseBytes("demo.yaml", []byte(`
pipeline_id: demo-cycle
input_format: binary
output_format: binary
components:
  - component_id: P
    supports_reentrance: true
  - component_id: Q
    supports_reentrance: true
  - component_id: R
connections:
  - source: P
    target: Q
    direction: forward
  - source: Q
    target: P
    direction: backward
  - source: Q
    target: R
    direction: forward
`))
	require.NoError(t, err)

	fake := imageloader.NewFakeImageLoader()
	noop := appendByteProcess(0x00)
	registerFakeComponent(fake, "P", noop)
	registerFakeComponent(fake, "Q", noop)
	registerFakeComponent(fake, "R", noop)
	handles := imageloader.NewHandleRegistry(fake)
	loader := imageloader.NewLoader(handles, fake)

	p, err := New(m, newTestContext(), loader)
	require.NoError(t, err)
	require.NoError(t, p.Initialize(nil))

	require.NoError(t, p.RemoveComponent(nil, "R"))

	_, ok := p.Component("R")
	require.False(t, ok)
	for _, c := range p.config.Connections {
		require.NotEqual(t, "R", c.Source)
		require.NotEqual(t, "R", c.Target)
	}
}

func TestAddConnectionRejectedWhenItBreaksReentranceValidation(t *testing.T) {
	t.Parallel()

	m, err := manifest.ParseBytes("demo.yaml", []byte(`
pipeline_id: demo-mps
input_format: binary
output_format: binary
components:
  - component_id: X
  - component_id: Y
connections:
  - source: X
    target: Y
    direction: forward
`))
	require.NoError(t, err)

	fake := imageloader.NewFakeImageLoader()
	handles := imageloader.NewHandleRegistry(fake)
	loader := imageloader.NewLoader(handles, fake)

	p, err := New(m, newTestContext(), loader)
	require.NoError(t, err)

	before := append([]manifest.Connection(nil), p.config.Connections...)

	// Y->X backward closes a cycle between two non-reentrant components,
	// which ValidateReentrance must reject.
	err = p.AddConnection("Y", "X", "backward", "binary")
	require.Error(t, err)
	require.Equal(t, before, p.config.Connections)
}
