package engine

import "github.com/obinexus/nexuslink/internal/component"

// Terminate unwinds every Initialized component in reverse initialization
// order: call its term hook, transition to Unloaded, unload its image.
// Used on clean shutdown (spec §4.H "Termination").
func (p *Pipeline) Terminate(ctx any) error {
	return p.shutdown(ctx, false)
}

// Abort unwinds every Initialized component the same way Terminate does,
// but prefers each component's abort hook over its term hook, falling
// back to term if abort is absent. Used when destroying a pipeline mid-
// execution or after a fatal error (spec §4.H "Abort").
func (p *Pipeline) Abort(ctx any) error {
	err := p.shutdown(ctx, true)
	p.state = stateAborted
	return err
}

func (p *Pipeline) shutdown(ctx any, preferAbort bool) error {
	for i := len(p.components) - 1; i >= 0; i-- {
		c := p.components[i]
		if c.State != component.StateInitialized {
			continue
		}
		hook := c.Term
		if preferAbort && c.Abort != nil {
			hook = c.Abort
		}
		if hook != nil {
			_ = hook(ctx)
		}
		c.State = component.StateUnloaded
		_ = p.loader.Unload(ctx, c)
	}
	if !preferAbort {
		p.state = stateTerminated
	}
	return nil
}
