// Package mps implements the multi-pass dependency resolver: a
// bidirectional graph, Tarjan SCC, and execution-group formation for
// MPS pipelines (spec §4.F).
package mps

import (
	"sort"

	"github.com/obinexus/nexuslink/pkg/nxerrors"
)

// Direction classifies a declared connection between two components.
type Direction int

const (
	Forward Direction = iota
	Backward
	Bidirectional
)

// Connection is one edge of the MPS dependency graph, carrying a
// direction and a data-format tag (spec §4.F).
type Connection struct {
	Source    string
	Target    string
	Direction Direction
	Format    string
}

// ComponentInfo carries the reentrance capability needed by validation.
type ComponentInfo struct {
	ID                 string
	SupportsReentrance bool
}

// Graph is a bidirectional dependency graph over component ids.
type Graph struct {
	nodes       []string
	index       map[string]int
	components  map[string]ComponentInfo
	connections []Connection
	adjacency   map[string][]Connection
}

// NewGraph builds an empty graph seeded with the given components.
func NewGraph(components []ComponentInfo) *Graph {
	g := &Graph{
		index:      make(map[string]int, len(components)),
		components: make(map[string]ComponentInfo, len(components)),
		adjacency:  make(map[string][]Connection),
	}
	for i, c := range components {
		g.nodes = append(g.nodes, c.ID)
		g.index[c.ID] = i
		g.components[c.ID] = c
	}
	return g
}

// AddConnection records src->dst with the given direction and format tag.
// A Bidirectional connection implies an edge in both directions for
// graph-traversal purposes.
func (g *Graph) AddConnection(conn Connection) {
	g.connections = append(g.connections, conn)
	g.adjacency[conn.Source] = append(g.adjacency[conn.Source], conn)
	if conn.Direction == Bidirectional {
		g.adjacency[conn.Target] = append(g.adjacency[conn.Target], Connection{
			Source: conn.Target, Target: conn.Source, Direction: Bidirectional, Format: conn.Format,
		})
	}
}

// Nodes returns the component ids in discovery order.
func (g *Graph) Nodes() []string { return append([]string(nil), g.nodes...) }

// Connections returns every declared connection.
func (g *Graph) Connections() []Connection { return append([]Connection(nil), g.connections...) }

// successorsFollowingDeclaredDirection returns the traversal edges used
// for SCC discovery. Every connection is walked source->target
// regardless of its Direction tag — Direction classifies the edge for
// validation purposes (spec §4.F "Validation"), it does not change which
// way the graph is traversed. A Bidirectional connection additionally
// walks target->source.
func (g *Graph) successorsFollowingDeclaredDirection() map[string][]string {
	out := make(map[string][]string, len(g.nodes))
	for _, conn := range g.connections {
		out[conn.Source] = append(out[conn.Source], conn.Target)
		if conn.Direction == Bidirectional {
			out[conn.Target] = append(out[conn.Target], conn.Source)
		}
	}
	return out
}

// SCC runs Tarjan's algorithm and returns one []string per strongly
// connected component, in discovery order. Singletons without self-loops
// are trivial SCCs (spec §4.F "SCC").
func (g *Graph) SCC() [][]string {
	successors := g.successorsFollowingDeclaredDirection()

	indexCounter := 0
	stack := make([]string, 0, len(g.nodes))
	onStack := make(map[string]bool, len(g.nodes))
	indices := make(map[string]int, len(g.nodes))
	lowlink := make(map[string]int, len(g.nodes))
	var result [][]string

	var strongconnect func(v string)
	strongconnect = func(v string) {
		indices[v] = indexCounter
		lowlink[v] = indexCounter
		indexCounter++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range successors[v] {
			if _, visited := indices[w]; !visited {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if indices[w] < lowlink[v] {
					lowlink[v] = indices[w]
				}
			}
		}

		if lowlink[v] == indices[v] {
			var component []string
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				onStack[w] = false
				component = append(component, w)
				if w == v {
					break
				}
			}
			sort.Strings(component)
			result = append(result, component)
		}
	}

	for _, n := range g.nodes {
		if _, visited := indices[n]; !visited {
			strongconnect(n)
		}
	}

	return result
}

func (g *Graph) hasSelfLoop(id string) bool {
	for _, c := range g.adjacency[id] {
		if c.Target == id {
			return true
		}
	}
	return false
}

func (g *Graph) allIncidentEdgesForwardOnly(id string) bool {
	for _, conn := range g.connections {
		if conn.Source == id || conn.Target == id {
			if conn.Direction != Forward {
				return false
			}
		}
	}
	return true
}

// ValidateReentrance rejects graphs where a component participating in a
// non-trivial cycle is not flagged reentrance-capable, and rejects
// bidirectional edges between two components if either forbids
// reentrance (spec §4.F "Validation").
func (g *Graph) ValidateReentrance() error {
	for _, scc := range g.SCC() {
		nonTrivial := len(scc) > 1
		if len(scc) == 1 && g.hasSelfLoop(scc[0]) {
			nonTrivial = true
		}
		if !nonTrivial {
			continue
		}
		for _, id := range scc {
			if info, ok := g.components[id]; !ok || !info.SupportsReentrance {
				return nxerrors.NewNonReentrantCycle(id)
			}
		}
	}

	for _, conn := range g.connections {
		if conn.Direction != Bidirectional {
			continue
		}
		src, srcOK := g.components[conn.Source]
		dst, dstOK := g.components[conn.Target]
		if !srcOK || !dstOK || !src.SupportsReentrance || !dst.SupportsReentrance {
			return nxerrors.NewNonReentrantCycle(conn.Source)
		}
	}

	return nil
}
