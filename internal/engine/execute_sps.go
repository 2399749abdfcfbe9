package engine

import (
	"errors"
	"time"

	"github.com/obinexus/nexuslink/internal/component"
	"github.com/obinexus/nexuslink/internal/stream"
	"github.com/obinexus/nexuslink/pkg/nxerrors"
)

var errPipelineAborted = errors.New("pipeline aborted")

// runProcess invokes comp's process function; a component without one
// copies its unread input through unchanged. Components that are not
// Initialized never reach runProcess: the executors skip them.
func runProcess(comp *component.Component, in, out *stream.Stream) error {
	if comp.Process == nil {
		_, err := out.Write(in.Bytes()[in.Position():])
		return err
	}
	return comp.Process(comp, in, out)
}

// ExecuteSPS runs every Initialized component exactly once in dependency
// order. Component 0 reads from input; component i reads from the
// stream produced by component i-1; the last component's output is
// returned. Each intermediate stream is tagged "binary" unless a
// component declares otherwise (spec §4.H "Execution (single-pass)").
func (p *Pipeline) ExecuteSPS(input *stream.Stream) (*stream.Stream, error) {
	if p.state == stateAborted {
		return nil, nxerrors.NewRuntimeError("", errPipelineAborted)
	}

	current := input
	for _, comp := range p.components {
		if comp.State != component.StateInitialized {
			continue
		}

		out := stream.New(current.Len(), "binary")
		start := time.Now()
		err := runProcess(comp, current, out)
		elapsed := time.Since(start)
		comp.LastRunTime = elapsed
		p.stats.recordComponentRun(comp.ID, elapsed)

		if err != nil {
			code := nxerrors.AsResultCode(err)
			p.reportError(code, comp.ID, err.Error())
			if p.AllowPartialProcessing {
				p.stats.PartialFailures++
				current = out
				continue
			}
			return nil, nxerrors.NewRuntimeError(comp.ID, err)
		}

		current = out
	}

	return current, nil
}
