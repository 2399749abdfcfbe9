package mps

import "sort"

// ExecutionGroup is one scheduling unit formed from a strongly connected
// component: a cyclic group (non-trivial SCC) or a singleton, flagged
// forward-only when all its incident edges are forward (spec §4.F
// "Execution groups").
type ExecutionGroup struct {
	Members       []string
	HasCycles     bool
	IsForwardOnly bool
}

// BuildExecutionGroups forms one ExecutionGroup per SCC: non-trivial SCCs
// get HasCycles, trivial singletons whose incident edges are all forward
// get IsForwardOnly, and a trivial singleton with a backward or
// bidirectional incident edge still gets a group with both flags false.
// The groups are ordered by the topological order of the SCC condensation
// (spec §4.F "Execution groups").
func (g *Graph) BuildExecutionGroups() []ExecutionGroup {
	sccs := g.SCC()

	memberOf := make(map[string]int, len(g.nodes))
	groups := make([]ExecutionGroup, 0, len(sccs))
	for i, scc := range sccs {
		nonTrivial := len(scc) > 1 || (len(scc) == 1 && g.hasSelfLoop(scc[0]))
		eg := ExecutionGroup{
			Members:       append([]string(nil), scc...),
			HasCycles:     nonTrivial,
			IsForwardOnly: !nonTrivial && g.allIncidentEdgesForwardOnly(scc[0]),
		}
		groups = append(groups, eg)
		for _, id := range scc {
			memberOf[id] = i
		}
	}

	condensationOrder := topoSortCondensation(groups, memberOf, g.connections)

	ordered := make([]ExecutionGroup, len(groups))
	for pos, groupIdx := range condensationOrder {
		ordered[pos] = groups[groupIdx]
	}
	return ordered
}

// topoSortCondensation topologically sorts the SCC condensation using
// Kahn's algorithm over inter-group forward/backward edges, breaking
// ties by original group discovery order for determinism.
func topoSortCondensation(groups []ExecutionGroup, memberOf map[string]int, connections []Connection) []int {
	n := len(groups)
	indegree := make([]int, n)
	adj := make(map[int]map[int]bool, n)

	for _, conn := range connections {
		from := memberOf[conn.Source]
		to := memberOf[conn.Target]
		if from == to {
			continue
		}
		src, dst := from, to
		if adj[src] == nil {
			adj[src] = make(map[int]bool)
		}
		if !adj[src][dst] {
			adj[src][dst] = true
			indegree[dst]++
		}
	}

	var queue []int
	for i := 0; i < n; i++ {
		if indegree[i] == 0 {
			queue = append(queue, i)
		}
	}
	sort.Ints(queue)

	var order []int
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		order = append(order, cur)

		var newlyReady []int
		targets := make([]int, 0, len(adj[cur]))
		for t := range adj[cur] {
			targets = append(targets, t)
		}
		sort.Ints(targets)
		for _, t := range targets {
			indegree[t]--
			if indegree[t] == 0 {
				newlyReady = append(newlyReady, t)
			}
		}
		sort.Ints(newlyReady)
		queue = append(queue, newlyReady...)
		sort.Ints(queue)
	}

	if len(order) < n {
		for i := 0; i < n; i++ {
			found := false
			for _, o := range order {
				if o == i {
					found = true
					break
				}
			}
			if !found {
				order = append(order, i)
			}
		}
	}

	return order
}
