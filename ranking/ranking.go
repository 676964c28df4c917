// SPDX-License-Identifier: MIT

// Package ranking turns a ScoreMap into a table of rows that can be ordered
// by any column and rendered with four-decimal scores.
//
// Each requested ordering is materialized once into a tidwall/btree index and
// reused; a Table is immutable after NewTable and safe for concurrent reads.
package ranking

import (
	"cmp"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tidwall/btree"

	"github.com/katalvlaran/friendrank/core"
	"github.com/katalvlaran/friendrank/pagerank"
)

// ErrUnknownSortKey is returned by ParseSortKey for an unrecognized column.
var ErrUnknownSortKey = errors.New("ranking: unknown sort key")

// SortKey names a table column.
type SortKey int

const (
	// SortByRank orders by rank (1 = highest score).
	SortByRank SortKey = iota
	// SortByNode orders by node identifier.
	SortByNode
	// SortByScore orders by score.
	SortByScore
	// SortByDegree orders by number of friends.
	SortByDegree
)

var sortKeyNames = [...]string{"rank", "node", "score", "degree"}

// String implements fmt.Stringer.
func (k SortKey) String() string {
	if k < 0 || int(k) >= len(sortKeyNames) {
		return fmt.Sprintf("SortKey(%d)", int(k))
	}

	return sortKeyNames[k]
}

// ParseSortKey maps a column name (case-insensitive) to its SortKey. The
// empty string selects SortByRank.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortByRank, nil
	}
	for i, name := range sortKeyNames {
		if strings.EqualFold(s, name) {
			return SortKey(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
}

// Row is one line of the table.
type Row struct {
	Rank   int         `json:"rank"`
	Node   core.NodeID `json:"node"`
	Score  float64     `json:"score"`
	Degree int         `json:"degree"`
}

// FormatScore renders a score with four decimal places.
func FormatScore(s float64) string {
	return fmt.Sprintf("%.4f", s)
}

type order struct {
	key        SortKey
	descending bool
}

// Table is a ranked view of one score computation.
type Table struct {
	byRank []Row
	byNode map[core.NodeID]int

	mu      sync.Mutex
	indexes map[order]*btree.BTreeG[Row]
}

// NewTable builds the table for every node of adj. Nodes missing from scores
// get score 0. Ranks are 1-based and follow pagerank.Less.
func NewTable(adj core.Adjacency, scores pagerank.ScoreMap) *Table {
	ranked := make(pagerank.ScoreMap, len(adj))
	for id := range adj {
		ranked[id] = scores[id]
	}

	sorted := ranked.Sorted()
	t := &Table{
		byRank:  make([]Row, len(sorted)),
		byNode:  make(map[core.NodeID]int, len(sorted)),
		indexes: make(map[order]*btree.BTreeG[Row]),
	}
	for i, r := range sorted {
		t.byRank[i] = Row{
			Rank:   i + 1,
			Node:   r.Node,
			Score:  r.Score,
			Degree: len(adj[r.Node]),
		}
		t.byNode[r.Node] = i
	}

	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.byRank)
}

// Row returns the row of node id.
func (t *Table) Row(id core.NodeID) (Row, bool) {
	i, ok := t.byNode[id]
	if !ok {
		return Row{}, false
	}

	return t.byRank[i], true
}

// Top returns the first n rows by rank (all rows when n <= 0 or n > Len).
func (t *Table) Top(n int) []Row {
	if n <= 0 || n > len(t.byRank) {
		n = len(t.byRank)
	}
	out := make([]Row, n)
	copy(out, t.byRank[:n])

	return out
}

// Sorted returns all rows ordered by key. Equal keys fall back to ascending
// rank, so every ordering is total and stable across calls.
func (t *Table) Sorted(key SortKey, descending bool) []Row {
	idx := t.index(order{key: key, descending: descending})

	out := make([]Row, 0, idx.Len())
	idx.Scan(func(r Row) bool {
		out = append(out, r)
		return true
	})

	return out
}

// index returns the btree for o, building it on first use.
func (t *Table) index(o order) *btree.BTreeG[Row] {
	t.mu.Lock()
	defer t.mu.Unlock()

	if idx, ok := t.indexes[o]; ok {
		return idx
	}
	idx := btree.NewBTreeG(lessFor(o))
	for _, r := range t.byRank {
		idx.Set(r)
	}
	t.indexes[o] = idx

	return idx
}

// lessFor compares by the chosen column, then by rank ascending.
func lessFor(o order) func(a, b Row) bool {
	column := func(a, b Row) int {
		switch o.key {
		case SortByNode:
			return cmp.Compare(a.Node, b.Node)
		case SortByScore:
			return cmp.Compare(a.Score, b.Score)
		case SortByDegree:
			return cmp.Compare(a.Degree, b.Degree)
		default:
			return cmp.Compare(a.Rank, b.Rank)
		}
	}

	return func(a, b Row) bool {
		c := column(a, b)
		if o.descending {
			c = -c
		}
		if c != 0 {
			return c < 0
		}

		return a.Rank < b.Rank
	}
}
