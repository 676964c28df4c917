// SPDX-License-Identifier: MIT

package pagerank

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/friendrank/core"
)

// ScoreMap maps a node to its PageRank score.
type ScoreMap map[core.NodeID]float64

// Ranked pairs a node with its score.
type Ranked struct {
	Node  core.NodeID
	Score float64
}

// Sorted returns all entries ordered by descending score, ties by ascending NodeID.
// Complexity: O(V log V).
func (m ScoreMap) Sorted() []Ranked {
	out := make([]Ranked, 0, len(m))
	for id, s := range m {
		out = append(out, Ranked{Node: id, Score: s})
	}
	sort.Slice(out, func(i, j int) bool { return Less(out[i], out[j]) })

	return out
}

// Less is the canonical ranking order: higher score first, then lower NodeID.
func Less(a, b Ranked) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}

	return a.Node < b.Node
}

// Sum returns Σ scores, accumulated in ascending NodeID order so the result
// is reproducible.
func (m ScoreMap) Sum() float64 {
	ids := make([]core.NodeID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	vals := make([]float64, len(ids))
	for i, id := range ids {
		vals[i] = m[id]
	}

	return floats.Sum(vals)
}

// Clone returns an independent copy of m.
func (m ScoreMap) Clone() ScoreMap {
	out := make(ScoreMap, len(m))
	for id, s := range m {
		out[id] = s
	}

	return out
}
