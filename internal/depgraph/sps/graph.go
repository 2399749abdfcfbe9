// Package sps implements the single-pass (acyclic) dependency resolver:
// graph construction, topological sort, and missing-dependency scanning
// for SPS pipelines (spec §4.E).
package sps

import (
	"fmt"

	"github.com/obinexus/nexuslink/pkg/nxerrors"
)

// Edge names a declared dependency from Consumer on Dependency, with an
// optional version constraint string and whether the dependency is
// optional.
type Edge struct {
	Consumer           string
	Dependency         string
	VersionConstraint  string
	Optional           bool
}

// Graph is an acyclic dependency graph over component ids.
type Graph struct {
	nodes []string
	index map[string]int
	edges map[string][]Edge // consumer -> outgoing edges
}

// NewGraph builds a graph from an ordered component-id list. The
// reference construction is positional: the i-th component depends on
// the (i-1)-th (spec §4.E). Richer schemes may call AddEdge directly
// instead of, or in addition to, this convenience constructor.
func NewGraph(componentIDs []string) *Graph {
	g := &Graph{
		index: make(map[string]int, len(componentIDs)),
		edges: make(map[string][]Edge),
	}
	for i, id := range componentIDs {
		g.nodes = append(g.nodes, id)
		g.index[id] = i
		if i > 0 {
			g.edges[id] = append(g.edges[id], Edge{Consumer: id, Dependency: componentIDs[i-1]})
		}
	}
	return g
}

// AddEdge records an explicit dependency edge, for callers building the
// graph from component metadata rather than positional inference.
func (g *Graph) AddEdge(e Edge) {
	if _, ok := g.index[e.Consumer]; !ok {
		g.index[e.Consumer] = len(g.nodes)
		g.nodes = append(g.nodes, e.Consumer)
	}
	g.edges[e.Consumer] = append(g.edges[e.Consumer], e)
}

// Nodes returns the component ids in discovery order.
func (g *Graph) Nodes() []string {
	return append([]string(nil), g.nodes...)
}

// EdgesFrom returns the declared dependency edges for consumer.
func (g *Graph) EdgesFrom(consumer string) []Edge {
	return g.edges[consumer]
}

type color int

const (
	white color = iota // unvisited
	gray               // in-progress
	black              // done
)

// TopologicalSort performs a DFS with three-color marking, detecting a
// cycle iff an in-progress node is re-entered, and returns the DFS
// postorder as the load/execution sequence on success. Edges point from
// consumer to dependency, so the postorder lists every dependency before
// its consumers (spec §4.E "Topological sort").
func (g *Graph) TopologicalSort() ([]string, error) {
	colors := make(map[string]color, len(g.nodes))
	for _, n := range g.nodes {
		colors[n] = white
	}

	var postorder []string
	var visit func(node string) error
	visit = func(node string) error {
		colors[node] = gray
		for _, e := range g.edges[node] {
			dep := e.Dependency
			if _, known := g.index[dep]; !known {
				continue // missing dependencies are reported separately
			}
			switch colors[dep] {
			case white:
				if err := visit(dep); err != nil {
					return err
				}
			case gray:
				return nxerrors.NewDependencyCycle(fmt.Sprintf("%s->%s", node, dep))
			case black:
				// already resolved
			}
		}
		colors[node] = black
		postorder = append(postorder, node)
		return nil
	}

	for _, n := range g.nodes {
		if colors[n] == white {
			if err := visit(n); err != nil {
				return nil, err
			}
		}
	}

	return postorder, nil
}

// MissingDependency describes one declared edge whose target is absent
// from the graph (spec §4.E "Missing-dependency scan").
type MissingDependency struct {
	ConsumerID        string
	MissingID         string
	VersionConstraint string
	Optional          bool
}

// ScanMissingDependencies enumerates every edge and reports those whose
// target is not present in the graph. The scan succeeds even when
// missing dependencies exist, provided every one is optional; otherwise
// it fails with MissingRequiredDependency (spec §4.E).
func (g *Graph) ScanMissingDependencies() ([]MissingDependency, error) {
	var missing []MissingDependency
	for _, consumer := range g.nodes {
		for _, e := range g.edges[consumer] {
			if _, known := g.index[e.Dependency]; known {
				continue
			}
			missing = append(missing, MissingDependency{
				ConsumerID:        e.Consumer,
				MissingID:         e.Dependency,
				VersionConstraint: e.VersionConstraint,
				Optional:          e.Optional,
			})
			if !e.Optional {
				return missing, nxerrors.NewMissingRequiredDependency(e.Consumer, e.Dependency)
			}
		}
	}
	return missing, nil
}
