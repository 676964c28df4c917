// SPDX-License-Identifier: MIT

package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/friendrank/core"
)

// TestAdjacency_Snapshot verifies that Adjacency() is sorted, complete, and detached.
func TestAdjacency_Snapshot(t *testing.T) {
	g := core.NewGraph()
	_, _ = g.Connect(NodeC, NodeA)
	_, _ = g.Connect(NodeB, NodeA)
	g.AddNode(NodeX)

	adj := g.Adjacency()
	require.Equal(t, core.Adjacency{
		NodeA: {NodeB, NodeC},
		NodeB: {NodeA},
		NodeC: {NodeA},
		NodeX: {},
	}, adj)
	require.NoError(t, adj.Validate())
	require.Equal(t, 2, adj.EdgeCount())

	// Mutating the graph after the snapshot must not leak into it.
	_, _ = g.Connect(NodeX, NodeA)
	require.Empty(t, adj[NodeX])
	require.Len(t, adj[NodeA], 2)
}

// TestAdjacency_Validate covers each structural violation.
func TestAdjacency_Validate(t *testing.T) {
	cases := []struct {
		name string
		adj  core.Adjacency
		want error
	}{
		{"unknown neighbor", core.Adjacency{1: {2}}, core.ErrNodeNotFound},
		{"self loop", core.Adjacency{1: {1}}, core.ErrLoopNotAllowed},
		{"duplicate", core.Adjacency{1: {2, 2}, 2: {1}}, core.ErrDuplicateNeighbor},
		{"asymmetric", core.Adjacency{1: {2}, 2: {}}, core.ErrAsymmetric},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.adj.Validate(), tc.want)
		})
	}

	require.NoError(t, core.Adjacency{}.Validate(), "empty adjacency is valid")
	require.NoError(t, core.Adjacency{1: {2}, 2: {}}.CheckReferences(),
		"CheckReferences does not enforce symmetry")
}

// TestFromAdjacency_RoundTrip rebuilds a graph and compares snapshots.
func TestFromAdjacency_RoundTrip(t *testing.T) {
	in := core.Adjacency{
		1: {2, 3},
		2: {1, 3},
		3: {1, 2},
		9: {},
	}
	g, err := core.FromAdjacency(in)
	require.NoError(t, err)
	require.Equal(t, 4, g.NodeCount())
	require.Equal(t, 3, g.EdgeCount())
	require.Equal(t, in, g.Adjacency())

	_, err = core.FromAdjacency(core.Adjacency{1: {2}})
	require.ErrorIs(t, err, core.ErrNodeNotFound)
}

// TestAdjacency_CloneAndHelpers covers Clone, IsAdjacent and Degree.
func TestAdjacency_CloneAndHelpers(t *testing.T) {
	adj := core.Adjacency{1: {2}, 2: {1}}
	c := adj.Clone()
	c[1][0] = 7

	require.Equal(t, core.NodeID(2), adj[1][0], "clone must not share backing arrays")
	require.True(t, adj.IsAdjacent(2, 1))
	require.False(t, adj.IsAdjacent(1, 1))
	require.Equal(t, 1, adj.Degree(1))
	require.Zero(t, adj.Degree(99))
}
