package mps

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSCCTwoNodeCycleFormsOneNonTrivialComponent(t *testing.T) {
	t.Parallel()

	g := NewGraph([]ComponentInfo{
		{ID: "P", SupportsReentrance: true},
		{ID: "Q", SupportsReentrance: true},
	})
	g.AddConnection(Connection{Source: "P", Target: "Q", Direction: Forward, Format: "binary"})
	g.AddConnection(Connection{Source: "Q", Target: "P", Direction: Backward, Format: "binary"})

	sccs := g.SCC()
	require.Len(t, sccs, 1)
	require.ElementsMatch(t, []string{"P", "Q"}, sccs[0])
}

func TestSCCTrivialSingletonsAreSeparate(t *testing.T) {
	t.Parallel()

	g := NewGraph([]ComponentInfo{{ID: "A"}, {ID: "B"}, {ID: "C"}})
	g.AddConnection(Connection{Source: "A", Target: "B", Direction: Forward})
	g.AddConnection(Connection{Source: "B", Target: "C", Direction: Forward})

	sccs := g.SCC()
	require.Len(t, sccs, 3)
}

func TestEveryCycleContainedInExactlyOneExecutionGroup(t *testing.T) {
	t.Parallel()

	g := NewGraph([]ComponentInfo{
		{ID: "A"},
		{ID: "P", SupportsReentrance: true},
		{ID: "Q", SupportsReentrance: true},
		{ID: "C"},
	})
	g.AddConnection(Connection{Source: "A", Target: "P", Direction: Forward})
	g.AddConnection(Connection{Source: "P", Target: "Q", Direction: Forward})
	g.AddConnection(Connection{Source: "Q", Target: "P", Direction: Backward})
	g.AddConnection(Connection{Source: "Q", Target: "C", Direction: Forward})

	groups := g.BuildExecutionGroups()

	seen := map[string]int{}
	for gi, grp := range groups {
		for _, m := range grp.Members {
			seen[m] = gi
		}
	}
	require.Equal(t, seen["P"], seen["Q"], "P and Q must land in the same execution group")

	for _, grp := range groups {
		if grp.HasCycles {
			require.ElementsMatch(t, []string{"P", "Q"}, grp.Members)
		}
	}
}

func TestValidateReentranceRejectsNonReentrantCycleMember(t *testing.T) {
	t.Parallel()

	g := NewGraph([]ComponentInfo{
		{ID: "P", SupportsReentrance: true},
		{ID: "Q", SupportsReentrance: false},
	})
	g.AddConnection(Connection{Source: "P", Target: "Q", Direction: Forward})
	g.AddConnection(Connection{Source: "Q", Target: "P", Direction: Backward})

	err := g.ValidateReentrance()
	require.Error(t, err)
}

func TestValidateReentranceRejectsBidirectionalWhenEitherForbids(t *testing.T) {
	t.Parallel()

	g := NewGraph([]ComponentInfo{
		{ID: "P", SupportsReentrance: true},
		{ID: "Q", SupportsReentrance: false},
	})
	g.AddConnection(Connection{Source: "P", Target: "Q", Direction: Bidirectional})

	err := g.ValidateReentrance()
	require.Error(t, err)
}

func TestValidateReentranceAllowsForwardOnlyAcyclicGraph(t *testing.T) {
	t.Parallel()

	g := NewGraph([]ComponentInfo{{ID: "A"}, {ID: "B"}})
	g.AddConnection(Connection{Source: "A", Target: "B", Direction: Forward})

	require.NoError(t, g.ValidateReentrance())
}

func TestBuildExecutionGroupsOrdersByCondensationTopology(t *testing.T) {
	t.Parallel()

	g := NewGraph([]ComponentInfo{{ID: "A"}, {ID: "B"}, {ID: "C"}})
	g.AddConnection(Connection{Source: "A", Target: "B", Direction: Forward})
	g.AddConnection(Connection{Source: "B", Target: "C", Direction: Forward})

	groups := g.BuildExecutionGroups()
	require.Len(t, groups, 3)
	require.Equal(t, []string{"A"}, groups[0].Members)
	require.Equal(t, []string{"B"}, groups[1].Members)
	require.Equal(t, []string{"C"}, groups[2].Members)
	for _, grp := range groups {
		require.True(t, grp.IsForwardOnly)
		require.False(t, grp.HasCycles)
	}
}
