package sps

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTopologicalSortLinearPipelineOrdersDependenciesFirst(t *testing.T) {
	t.Parallel()

	g := NewGraph([]string{"A", "B", "C"})
	order, err := g.TopologicalSort()
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C"}, order)
}

func TestTopologicalSortRespectsDependencyBeforeConsumerInvariant(t *testing.T) {
	t.Parallel()

	g := NewGraph([]string{"A", "B", "C"})
	order, err := g.TopologicalSort()
	require.NoError(t, err)

	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	for _, id := range g.Nodes() {
		for _, e := range g.EdgesFrom(id) {
			require.Less(t, pos[e.Dependency], pos[id], "%s must be scheduled before %s", e.Dependency, id)
		}
	}
}

func TestTopologicalSortDetectsCycle(t *testing.T) {
	t.Parallel()

	g := &Graph{index: map[string]int{}, edges: map[string][]Edge{}}
	g.AddEdge(Edge{Consumer: "X", Dependency: "Y"})
	g.AddEdge(Edge{Consumer: "Y", Dependency: "Z"})
	g.AddEdge(Edge{Consumer: "Z", Dependency: "X"})

	_, err := g.TopologicalSort()
	require.Error(t, err)
}

func TestScanMissingDependenciesAllowsOptional(t *testing.T) {
	t.Parallel()

	g := &Graph{index: map[string]int{}, edges: map[string][]Edge{}}
	g.AddEdge(Edge{Consumer: "A", Dependency: "ghost", Optional: true})

	missing, err := g.ScanMissingDependencies()
	require.NoError(t, err)
	require.Len(t, missing, 1)
	require.Equal(t, "ghost", missing[0].MissingID)
}

func TestScanMissingDependenciesFailsWhenRequired(t *testing.T) {
	t.Parallel()

	g := &Graph{index: map[string]int{}, edges: map[string][]Edge{}}
	g.AddEdge(Edge{Consumer: "A", Dependency: "ghost", Optional: false})

	_, err := g.ScanMissingDependencies()
	require.Error(t, err)
}
