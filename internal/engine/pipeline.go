// Package engine implements the pipeline orchestration subsystem: SPS
// and MPS creation, initialization, execution, dynamic mutation, and
// termination (spec §4.H "Pipeline engine").
package engine

import (
	"fmt"

	"github.com/obinexus/nexuslink/internal/component"
	"github.com/obinexus/nexuslink/internal/depgraph/mps"
	"github.com/obinexus/nexuslink/internal/depgraph/sps"
	"github.com/obinexus/nexuslink/internal/imageloader"
	"github.com/obinexus/nexuslink/internal/manifest"
	"github.com/obinexus/nexuslink/internal/nxcontext"
	"github.com/obinexus/nexuslink/internal/nxlog"
	"github.com/obinexus/nexuslink/pkg/nxerrors"
)

// Mode selects which dependency resolver governs a pipeline.
type Mode int

const (
	ModeSPS Mode = iota
	ModeMPS
)

// ErrorHandlerFunc is the injectable callback every runtime error is
// routed through (spec §7 "Propagation"). componentID is empty for
// pipeline-level errors not attributable to one component.
type ErrorHandlerFunc func(p *Pipeline, result nxerrors.ResultCode, componentID string, message string)

// DefaultErrorHandler logs the error via the pipeline's Context and
// returns without aborting (spec §7 "A default handler logs and
// returns; it does not abort").
func DefaultErrorHandler(p *Pipeline, result nxerrors.ResultCode, componentID string, message string) {
	if p == nil || p.ctx == nil {
		return
	}
	p.ctx.Log(nxlog.LevelError, "pipeline %s: component=%s result=%s message=%s", p.ID, componentID, result, message)
}

// pipelineState tracks the coarse lifecycle of the pipeline object
// itself, distinct from any one Component's State.
type pipelineState int

const (
	stateCreated pipelineState = iota
	stateInitialized
	stateAborted
	stateTerminated
)

// Pipeline is an ordered or cyclic composition of components through
// which data streams flow (glossary "Pipeline").
type Pipeline struct {
	ID          string
	Description string
	Mode        Mode

	config *manifest.Manifest
	ctx    *nxcontext.Context
	loader *imageloader.Loader

	components   []*component.Component
	componentIdx map[string]int

	spsGraph  *sps.Graph
	mpsGraph  *mps.Graph
	execOrder []string // SPS only
	execGroups []mps.ExecutionGroup // MPS only

	ErrorHandler            ErrorHandlerFunc
	AllowPartialProcessing  bool
	MaxIterationCount       int

	state pipelineState
	stats Stats
}

// platformImageSuffix names the dynamic-library extension used to build
// a component's image path (spec §4.H "attempt load on path
// components/<id>/lib<id>.{platform-image-suffix}"). Go's plugin
// package only supports ELF shared objects, so NexusLink fixes this to
// "so" rather than branching per-GOOS.
const platformImageSuffix = "so"

// componentImagePath builds the conventional image path for id.
func componentImagePath(searchPath []string, id string) string {
	if len(searchPath) == 0 {
		return fmt.Sprintf("components/%s/lib%s.%s", id, id, platformImageSuffix)
	}
	return fmt.Sprintf("%s/components/%s/lib%s.%s", searchPath[0], id, id, platformImageSuffix)
}

// New validates cfg, builds the dependency graph (MPS when cfg declares
// connections or sets allow_cycles, SPS otherwise), resolves the ordering, and
// allocates placeholder Component records in that order. No images are
// loaded yet (spec §4.H "Creation").
func New(cfg *manifest.Manifest, ctx *nxcontext.Context, loader *imageloader.Loader) (*Pipeline, error) {
	if cfg == nil {
		return nil, nxerrors.NewValidationError("config", "manifest is nil", nil)
	}
	if err := manifest.Validate(cfg); err != nil {
		return nil, err
	}

	p := &Pipeline{
		ID:                     cfg.PipelineID,
		Description:            cfg.Description,
		config:                 cfg,
		ctx:                    ctx,
		loader:                 loader,
		componentIdx:           make(map[string]int, len(cfg.Components)),
		ErrorHandler:           DefaultErrorHandler,
		AllowPartialProcessing: cfg.AllowPartialProcessing,
		MaxIterationCount:      cfg.MaxIterationCount,
		state:                  stateCreated,
	}
	if p.MaxIterationCount <= 0 {
		p.MaxIterationCount = 1000
	}

	if cfg.IsMPS() {
		p.Mode = ModeMPS
		if err := p.buildMPSGraph(); err != nil {
			return nil, err
		}
	} else {
		p.Mode = ModeSPS
		if err := p.buildSPSGraph(); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *Pipeline) buildSPSGraph() error {
	g := sps.NewGraph(p.config.ComponentIDs())
	if _, err := g.ScanMissingDependencies(); err != nil {
		return err
	}
	order, err := g.TopologicalSort()
	if err != nil {
		return err
	}
	p.spsGraph = g
	p.execOrder = order
	p.allocatePlaceholders(order)
	return nil
}

func (p *Pipeline) buildMPSGraph() error {
	infos := make([]mps.ComponentInfo, len(p.config.Components))
	for i, c := range p.config.Components {
		infos[i] = mps.ComponentInfo{ID: c.ComponentID, SupportsReentrance: c.SupportsReentrance}
	}
	g := mps.NewGraph(infos)
	for _, conn := range p.config.Connections {
		g.AddConnection(mps.Connection{
			Source:    conn.Source,
			Target:    conn.Target,
			Direction: parseDirection(conn.Direction),
			Format:    conn.Format,
		})
	}
	if err := g.ValidateReentrance(); err != nil {
		return err
	}

	p.mpsGraph = g
	p.execGroups = g.BuildExecutionGroups()
	p.allocatePlaceholders(p.config.ComponentIDs())
	return nil
}

func parseDirection(s string) mps.Direction {
	switch s {
	case "backward":
		return mps.Backward
	case "bidirectional":
		return mps.Bidirectional
	default:
		return mps.Forward
	}
}

func (p *Pipeline) allocatePlaceholders(order []string) {
	byID := make(map[string]manifest.Component, len(p.config.Components))
	for _, c := range p.config.Components {
		byID[c.ComponentID] = c
	}

	for _, id := range order {
		cfg := byID[id]
		comp := component.New(id, componentImagePath(p.ctx.SearchPath, id))
		comp.Optional = cfg.Optional
		comp.Reentrant = cfg.SupportsReentrance
		comp.MaxPasses = cfg.MaxPasses
		if cfg.RangeState != "" {
			comp.RangeState = component.RangeState(cfg.RangeState)
		}
		p.componentIdx[id] = len(p.components)
		p.components = append(p.components, comp)
	}
}

// Component looks up a component record by id.
func (p *Pipeline) Component(id string) (*component.Component, bool) {
	idx, ok := p.componentIdx[id]
	if !ok {
		return nil, false
	}
	return p.components[idx], true
}

// Components returns the ordered component records.
func (p *Pipeline) Components() []*component.Component {
	return append([]*component.Component(nil), p.components...)
}

func (p *Pipeline) reportError(result nxerrors.ResultCode, componentID, message string) {
	handler := p.ErrorHandler
	if handler == nil {
		handler = DefaultErrorHandler
	}
	handler(p, result, componentID, message)
}
