package engine

import (
	"github.com/obinexus/nexuslink/internal/component"
	"github.com/obinexus/nexuslink/internal/manifest"
	"github.com/obinexus/nexuslink/pkg/nxerrors"
)

// AddComponent inserts cfg immediately before beforeID (or at the end if
// beforeID is empty), then rebuilds the dependency graph and re-validates
// it before committing. If the pipeline is already initialized, the new
// placeholder is loaded and initialized immediately; a failure at either
// the validation or the load/init step leaves the pipeline unchanged
// (spec §4.H "Dynamic mutation").
func (p *Pipeline) AddComponent(ctx any, cfg manifest.Component, beforeID string) error {
	if _, exists := p.componentIdx[cfg.ComponentID]; exists {
		return nxerrors.NewAlreadyPresent(cfg.ComponentID)
	}

	snapshot := p.snapshotConfig()

	insertAt := len(p.config.Components)
	for i, c := range p.config.Components {
		if c.ComponentID == beforeID {
			insertAt = i
			break
		}
	}
	components := append([]manifest.Component(nil), p.config.Components[:insertAt]...)
	components = append(components, cfg)
	components = append(components, p.config.Components[insertAt:]...)
	p.config.Components = components

	if err := p.rebuildGraph(); err != nil {
		p.restoreConfig(snapshot)
		return err
	}

	if p.state != stateInitialized {
		return nil
	}

	comp, ok := p.Component(cfg.ComponentID)
	if !ok {
		p.restoreConfig(snapshot)
		return nxerrors.NewValidationError("component_id", "component missing after rebuild", nil)
	}
	if err := p.initializeOne(ctx, comp); err != nil {
		p.restoreConfig(snapshot)
		_ = p.rebuildGraph()
		return err
	}
	return nil
}

// RemoveComponent removes id and its incident connections from the
// manifest and rebuilds the dependency graph; once the rebuild succeeds,
// it terminates and unloads id if it was initialized. A failed rebuild
// leaves the pipeline unchanged (spec §4.H "Dynamic mutation").
func (p *Pipeline) RemoveComponent(ctx any, id string) error {
	comp, ok := p.Component(id)
	if !ok {
		return nxerrors.NewValidationError("component_id", "unknown component: "+id, nil)
	}

	snapshot := p.snapshotConfig()

	components := make([]manifest.Component, 0, len(p.config.Components)-1)
	for _, c := range p.config.Components {
		if c.ComponentID != id {
			components = append(components, c)
		}
	}
	connections := make([]manifest.Connection, 0, len(p.config.Connections))
	for _, c := range p.config.Connections {
		if c.Source != id && c.Target != id {
			connections = append(connections, c)
		}
	}
	p.config.Components = components
	p.config.Connections = connections

	if err := p.rebuildGraph(); err != nil {
		p.restoreConfig(snapshot)
		return err
	}

	if comp.State == component.StateInitialized {
		if comp.Term != nil {
			_ = comp.Term(ctx)
		}
		comp.State = component.StateUnloaded
		_ = p.loader.Unload(ctx, comp)
	}
	return nil
}

// AddConnection records a new MPS edge and re-validates SCC/reentrance
// structure before committing; failure leaves the graph unchanged
// (spec §4.H "Dynamic mutation").
func (p *Pipeline) AddConnection(src, dst, direction, format string) error {
	if p.Mode != ModeMPS {
		return nxerrors.NewValidationError("mode", "add_connection requires an MPS pipeline", nil)
	}

	snapshot := p.snapshotConfig()
	p.config.Connections = append(p.config.Connections, manifest.Connection{
		Source: src, Target: dst, Direction: direction, Format: format,
	})

	if err := p.rebuildGraph(); err != nil {
		p.restoreConfig(snapshot)
		return err
	}
	return nil
}

// RemoveConnection drops the declared edge src->dst and rebuilds the
// graph (spec §4.H "Dynamic mutation").
func (p *Pipeline) RemoveConnection(src, dst string) error {
	if p.Mode != ModeMPS {
		return nxerrors.NewValidationError("mode", "remove_connection requires an MPS pipeline", nil)
	}

	snapshot := p.snapshotConfig()
	connections := make([]manifest.Connection, 0, len(p.config.Connections))
	for _, c := range p.config.Connections {
		if !(c.Source == src && c.Target == dst) {
			connections = append(connections, c)
		}
	}
	p.config.Connections = connections

	if err := p.rebuildGraph(); err != nil {
		p.restoreConfig(snapshot)
		return err
	}
	return nil
}

// configSnapshot captures the mutable parts of the manifest so a failed
// mutation can be rolled back without re-parsing.
type configSnapshot struct {
	components  []manifest.Component
	connections []manifest.Connection
}

func (p *Pipeline) snapshotConfig() configSnapshot {
	return configSnapshot{
		components:  append([]manifest.Component(nil), p.config.Components...),
		connections: append([]manifest.Connection(nil), p.config.Connections...),
	}
}

func (p *Pipeline) restoreConfig(s configSnapshot) {
	p.config.Components = s.components
	p.config.Connections = s.connections
}

// rebuildGraph reconstructs the dependency graph and execution order or
// groups from the pipeline's current manifest state, preserving already-
// loaded Component records for ids that survive the rebuild.
func (p *Pipeline) rebuildGraph() error {
	previous := p.components
	previousIdx := p.componentIdx

	p.components = nil
	p.componentIdx = make(map[string]int, len(p.config.Components))

	var err error
	if p.config.IsMPS() {
		p.Mode = ModeMPS
		err = p.buildMPSGraph()
	} else {
		p.Mode = ModeSPS
		err = p.buildSPSGraph()
	}
	if err != nil {
		p.components = previous
		p.componentIdx = previousIdx
		return err
	}

	for _, comp := range p.components {
		if idx, existed := previousIdx[comp.ID]; existed {
			old := previous[idx]
			comp.Handle = old.Handle
			comp.State = old.State
			comp.Process = old.Process
			comp.Init = old.Init
			comp.Term = old.Term
			comp.Abort = old.Abort
			comp.LastRunTime = old.LastRunTime
		}
	}
	return nil
}
