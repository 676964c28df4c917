// SPDX-License-Identifier: MIT

package dfs

import (
	"sort"

	"github.com/katalvlaran/friendrank/core"
)

// Components returns the connected components of adj. Each component is
// sorted ascending and components are ordered by their smallest member;
// isolated nodes appear as singletons.
//
// A forest traversal emits every tree contiguously in post-order with its
// root last, and roots are started in ascending order, so splitting Order at
// the roots yields the components already ordered.
func Components(adj core.Adjacency) ([][]core.NodeID, error) {
	res, err := DFS(adj, 0, WithFullTraversal())
	if err != nil {
		return nil, err
	}

	comps := make([][]core.NodeID, 0, len(res.Roots))
	start, next := 0, 0
	for i, id := range res.Order {
		if id != res.Roots[next] {
			continue
		}
		comp := append([]core.NodeID(nil), res.Order[start:i+1]...)
		sort.Slice(comp, func(a, b int) bool { return comp[a] < comp[b] })
		comps = append(comps, comp)
		start, next = i+1, next+1
	}

	return comps, nil
}
