package engine

import (
	"bytes"
	"time"

	"github.com/obinexus/nexuslink/internal/component"
	"github.com/obinexus/nexuslink/internal/depgraph/mps"
	"github.com/obinexus/nexuslink/internal/nxlog"
	"github.com/obinexus/nexuslink/internal/stream"
	"github.com/obinexus/nexuslink/pkg/nxerrors"
)

// streamKey identifies one directed stream slot between two components,
// the data-stream wiring unit a cyclic group threads between passes
// (spec §4.H "Execution (multi-pass)": "stream map keyed by
// (source_id, target_id)").
type streamKey struct {
	source string
	target string
}

// MaxIterationsExceeded is returned as a warning (not a fatal error)
// when a cyclic group never reaches quiescence before MaxIterationCount
// passes, provided at least one pass completed.
type MaxIterationsExceeded struct {
	GroupMembers []string
	Iterations   int
}

func (e *MaxIterationsExceeded) Error() string {
	return "cyclic group did not reach quiescence within the iteration cap"
}

func (p *Pipeline) connectionsInto(id string) []mps.Connection {
	var out []mps.Connection
	for _, c := range p.mpsGraph.Connections() {
		if c.Target == id {
			out = append(out, c)
		}
	}
	return out
}

func (p *Pipeline) connectionsOutOf(id string) []mps.Connection {
	var out []mps.Connection
	for _, c := range p.mpsGraph.Connections() {
		if c.Source == id {
			out = append(out, c)
		}
	}
	return out
}

func (p *Pipeline) runGroupMember(comp *component.Component, in, out *stream.Stream) error {
	start := time.Now()
	err := runProcess(comp, in, out)
	elapsed := time.Since(start)
	comp.LastRunTime = elapsed
	p.stats.recordComponentRun(comp.ID, elapsed)
	if err != nil {
		code := nxerrors.AsResultCode(err)
		p.reportError(code, comp.ID, err.Error())
		return nxerrors.NewRuntimeError(comp.ID, err)
	}
	return nil
}

// ExecuteMPS iterates execution groups in declared order. Groups without
// cycles run their single member once. Cyclic groups iterate: each pass
// runs members in group order, threading streams between them via a map
// keyed by (source_id, target_id). Iteration stops when no member's
// output stream was mutated during a pass (quiescence) or the global
// iteration cap is reached (spec §4.H "Execution (multi-pass)").
func (p *Pipeline) ExecuteMPS(initial *stream.Stream) error {
	if p.state == stateAborted {
		return nxerrors.NewRuntimeError("", errPipelineAborted)
	}

	streams := make(map[streamKey]*stream.Stream)

	for _, group := range p.execGroups {
		if !group.HasCycles {
			if err := p.runForwardOnlyGroup(group, streams, initial); err != nil && !p.AllowPartialProcessing {
				return err
			}
			continue
		}
		if err := p.runCyclicGroup(group, streams, initial); err != nil {
			if _, isWarning := err.(*MaxIterationsExceeded); isWarning {
				p.ctx.Log(nxlog.LevelWarn, "group %v hit iteration cap", group.Members)
				continue
			}
			if !p.AllowPartialProcessing {
				return err
			}
		}
	}

	return nil
}

func (p *Pipeline) runForwardOnlyGroup(group mps.ExecutionGroup, streams map[streamKey]*stream.Stream, initial *stream.Stream) error {
	id := group.Members[0]
	comp, ok := p.Component(id)
	if !ok || comp.State != component.StateInitialized {
		return nil
	}

	in := gatherInbound(p.connectionsInto(id), streams, initial)
	out := stream.New(in.Len(), "binary")
	if err := p.runGroupMember(comp, in, out); err != nil {
		return err
	}
	for _, conn := range p.connectionsOutOf(id) {
		streams[streamKey{source: id, target: conn.Target}] = out
	}
	return nil
}

// gatherInbound concatenates every inbound stream's bytes, falling back
// to initial when a member has no declared inbound connection yet
// (first pass of a cyclic group, or a forward-only entry point).
func gatherInbound(conns []mps.Connection, streams map[streamKey]*stream.Stream, initial *stream.Stream) *stream.Stream {
	var sources []*stream.Stream
	for _, c := range conns {
		if s, ok := streams[streamKey{source: c.Source, target: c.Target}]; ok {
			sources = append(sources, s)
		}
	}
	if len(sources) == 0 {
		return initial
	}
	merged := stream.New(0, "binary")
	for _, s := range sources {
		_, _ = merged.Write(s.Bytes())
	}
	for k, v := range mergeMetadata(sources) {
		merged.SetMetadata(k, v, nil)
	}
	return merged
}

// mergeMetadata folds metadata bags from multiple inbound streams,
// last-writer-wins, so a cyclic group's shared counters (e.g. the seed
// scenario's "n") survive the stream-to-stream handoff.
func mergeMetadata(sources []*stream.Stream) map[string]any {
	out := make(map[string]any)
	for _, s := range sources {
		for _, k := range s.MetadataKeys() {
			v, _ := s.GetMetadata(k)
			out[k] = v
		}
	}
	return out
}

func (p *Pipeline) runCyclicGroup(group mps.ExecutionGroup, streams map[streamKey]*stream.Stream, initial *stream.Stream) error {
	iterations := 0
	for iterations < p.MaxIterationCount {
		mutated := false

		maxGroupSize := len(group.Members)
		if maxGroupSize > p.stats.MaxGroupSize {
			p.stats.MaxGroupSize = maxGroupSize
		}

		for _, id := range group.Members {
			comp, ok := p.Component(id)
			if !ok || comp.State != component.StateInitialized {
				continue
			}
			in := gatherInbound(p.connectionsInto(id), streams, initial)
			out := stream.New(in.Len(), "binary")
			if err := p.runGroupMember(comp, in, out); err != nil {
				return err
			}
			for _, conn := range p.connectionsOutOf(id) {
				key := streamKey{source: id, target: conn.Target}
				prev, existed := streams[key]
				if !existed || streamChanged(prev, out) {
					mutated = true
				}
				streams[key] = out
			}
		}

		if !mutated {
			// This pass reproduced every member's prior output exactly:
			// the group already reached quiescence at the end of the
			// previous pass, so this confirming pass isn't counted as an
			// additional iteration (spec §8.3's two-node-cycle scenario
			// converges in 3 iterations, not 4).
			return nil
		}

		iterations++
		p.stats.TotalIterations++
	}

	return &MaxIterationsExceeded{GroupMembers: group.Members, Iterations: iterations}
}

func streamChanged(prev, next *stream.Stream) bool {
	if !bytes.Equal(prev.Bytes(), next.Bytes()) {
		return true
	}
	for _, k := range next.MetadataKeys() {
		nv, _ := next.GetMetadata(k)
		pv, ok := prev.GetMetadata(k)
		if !ok || nv != pv {
			return true
		}
	}
	return false
}
