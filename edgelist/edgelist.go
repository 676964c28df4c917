// SPDX-License-Identifier: MIT

// Package edgelist reads and writes friendship graphs as plain text, one
// "source,target" pair of integer node identifiers per line.
//
// Parsing is tolerant: blank lines, lines that are not exactly two integers
// (a header row included), self-loops and repeated friendships are skipped
// and counted in the Report instead of failing the load. Only an I/O error
// from the reader aborts.
package edgelist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/friendrank/core"
)

// ErrRead wraps I/O failures of the underlying reader or file.
var ErrRead = errors.New("edgelist: read failed")

// readBufferBytes sizes the line reader buffer.
const readBufferBytes = 64 * 1024

// Report summarizes one Parse call.
type Report struct {
	Lines      int `json:"lines"`
	Edges      int `json:"edges"`
	Blank      int `json:"blank"`
	Malformed  int `json:"malformed"`
	SelfLoops  int `json:"self_loops"`
	Duplicates int `json:"duplicates"`
}

// Skipped returns the number of non-blank lines that did not add an edge.
func (r Report) Skipped() int {
	return r.Malformed + r.SelfLoops + r.Duplicates
}

// Parse reads r to EOF and returns the graph described by its valid lines.
func Parse(r io.Reader) (*core.Graph, Report, error) {
	g := core.NewGraph()
	var rep Report

	br := bufio.NewReaderSize(r, readBufferBytes)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			rep.Lines++
			apply(g, line, &rep)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, rep, fmt.Errorf("%w: line %d: %w", ErrRead, rep.Lines+1, err)
		}
	}

	return g, rep, nil
}

// ParseFile opens path and parses it.
func ParseFile(path string) (*core.Graph, Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Report{}, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer f.Close()

	return Parse(f)
}

// apply classifies one raw line and connects its endpoints when valid.
func apply(g *core.Graph, line string, rep *Report) {
	line = strings.TrimSpace(line)
	if line == "" {
		rep.Blank++
		return
	}
	a, b, ok := parsePair(line)
	if !ok {
		rep.Malformed++
		return
	}
	_, err := g.Connect(a, b)
	switch {
	case err == nil:
		rep.Edges++
	case errors.Is(err, core.ErrLoopNotAllowed):
		rep.SelfLoops++
	case errors.Is(err, core.ErrMultiEdgeNotAllowed):
		rep.Duplicates++
	default:
		rep.Malformed++
	}
}

// parsePair splits "a,b" into two integers, tolerating surrounding spaces.
func parsePair(line string) (core.NodeID, core.NodeID, bool) {
	left, right, found := strings.Cut(line, ",")
	if !found || strings.Contains(right, ",") {
		return 0, 0, false
	}
	a, err := strconv.ParseInt(strings.TrimSpace(left), 10, 64)
	if err != nil {
		return 0, 0, false
	}
	b, err := strconv.ParseInt(strings.TrimSpace(right), 10, 64)
	if err != nil {
		return 0, 0, false
	}

	return core.NodeID(a), core.NodeID(b), true
}

// Write emits every friendship of g as "from,to" with from < to, sorted by
// (from, to). Nodes without friends cannot be expressed and are omitted.
func Write(w io.Writer, g *core.Graph) error {
	bw := bufio.NewWriter(w)
	for _, e := range g.Edges() {
		if _, err := fmt.Fprintf(bw, "%d,%d\n", e.From, e.To); err != nil {
			return err
		}
	}

	return bw.Flush()
}
