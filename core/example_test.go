// SPDX-License-Identifier: MIT

package core_test

import (
	"fmt"

	"github.com/katalvlaran/friendrank/core"
)

// ExampleGraph demonstrates basic creation, mutation, and snapshots.
func ExampleGraph() {
	// 1) Create an empty friendship graph:
	g := core.NewGraph()

	// 2) Connect people (auto-adds nodes 1, 2, 3):
	_, _ = g.Connect(1, 2)
	_, _ = g.Connect(2, 3)
	_, _ = g.Connect(3, 1)

	// 3) Connecting the same pair twice is rejected:
	_, err := g.Connect(2, 1)
	fmt.Println("duplicate:", err)

	// 4) Take an immutable snapshot for ranking:
	adj := g.Adjacency()
	fmt.Println("nodes:", adj.Nodes(), "edges:", adj.EdgeCount())
	fmt.Println("friends of 2:", adj[2])

	// Output:
	// duplicate: core: nodes already connected
	// nodes: [1 2 3] edges: 3
	// friends of 2: [1 3]
}
