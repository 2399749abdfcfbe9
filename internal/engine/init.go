package engine

import (
	"github.com/obinexus/nexuslink/internal/component"
	"github.com/obinexus/nexuslink/internal/nxlog"
	"github.com/obinexus/nexuslink/pkg/nxerrors"
)

// Initialize drives every placeholder Component through
// Unloaded -> Loaded -> Initialized. For each, it attempts to load the
// component's image path and resolve its process function at symbol
// "<id>_process". If load or symbol resolution fails and the component
// is marked optional, it stays Unloaded and execution skips it;
// otherwise initialization fails the whole pipeline after terminating
// already-initialized components (spec §4.H "Initialization").
func (p *Pipeline) Initialize(ctx any) error {
	for i, comp := range p.components {
		if err := p.initializeOne(ctx, comp); err != nil {
			p.terminateRange(ctx, p.components[:i])
			return err
		}
	}
	p.state = stateInitialized
	return nil
}

func (p *Pipeline) initializeOne(ctx any, comp *component.Component) error {
	loaded, err := p.loader.Load(ctx, comp.Path, comp.ID)
	if err != nil {
		if comp.Optional {
			comp.State = component.StateUnloaded
			p.ctx.Log(nxlog.LevelWarn, "optional component %s failed to load: %v", comp.ID, err)
			return nil
		}
		return err
	}
	comp.Handle = loaded.Handle
	comp.State = component.StateLoaded

	processSym := comp.ID + "_process"
	raw, ok := p.loader.ResolveSymbol(comp, processSym)
	if !ok {
		if comp.Optional {
			comp.State = component.StateUnloaded
			_ = p.loader.Unload(ctx, loaded)
			return nil
		}
		return nxerrors.NewSymbolNotFound(processSym)
	}
	processFn, ok := raw.(component.ProcessFunc)
	if !ok {
		if comp.Optional {
			comp.State = component.StateUnloaded
			_ = p.loader.Unload(ctx, loaded)
			return nil
		}
		return nxerrors.NewSymbolNotFound(processSym)
	}
	comp.Process = processFn

	if raw, ok := p.loader.ResolveSymbol(comp, comp.ID+"_init"); ok {
		if hook, ok := raw.(component.LifecycleHook); ok {
			comp.Init = hook
		}
	}
	if raw, ok := p.loader.ResolveSymbol(comp, comp.ID+"_term"); ok {
		if hook, ok := raw.(component.LifecycleHook); ok {
			comp.Term = hook
		}
	}
	if raw, ok := p.loader.ResolveSymbol(comp, comp.ID+"_abort"); ok {
		if hook, ok := raw.(component.LifecycleHook); ok {
			comp.Abort = hook
		}
	}

	if comp.Init != nil {
		if err := comp.Init(ctx); err != nil {
			if !comp.Optional {
				return nxerrors.NewComponentInitFailed(comp.Path, err)
			}
			comp.State = component.StateUnloaded
			_ = p.loader.Unload(ctx, loaded)
			return nil
		}
	}

	comp.State = component.StateInitialized
	if comp.RangeState == component.RangeLegacy {
		p.ctx.Log(nxlog.LevelWarn, "component %s uses the legacy range state", comp.ID)
	}
	return nil
}

// terminateRange calls term (or abort) hooks and unloads every already-
// initialized component in reverse order, used when initialization fails
// partway through (spec §4.H "Initialization").
func (p *Pipeline) terminateRange(ctx any, comps []*component.Component) {
	for i := len(comps) - 1; i >= 0; i-- {
		c := comps[i]
		if c.State != component.StateInitialized {
			continue
		}
		if c.Term != nil {
			_ = c.Term(ctx)
		}
		c.State = component.StateUnloaded
		_ = p.loader.Unload(ctx, c)
	}
}
