// SPDX-License-Identifier: MIT

package cli

import (
	"io"

	"github.com/katalvlaran/friendrank/core"
)

// RankArgs are the options of "rank".
type RankArgs struct {
	Edges  string
	Top    int
	Verify bool
}

// ParseRank parses "rank -edges FILE [-top N] [-verify]".
func ParseRank(args []string, output io.Writer) (*RankArgs, bool, error) {
	fs := newFlagSet("rank", "-edges FILE [-top N] [-verify]", output)
	var a RankArgs
	fs.StringVar(&a.Edges, "edges", "", "Edge list file, one \"source,target\" pair per line (required).")
	fs.IntVar(&a.Top, "top", 0, "Print only the N best ranked nodes; 0 prints all.")
	fs.BoolVar(&a.Verify, "verify", false, "Cross-check the scores against the gonum reference implementation.")

	if exit, err := parseFlags(fs, args); exit || err != nil {
		return nil, exit, err
	}
	if a.Edges == "" {
		return nil, false, usageError("rank: -edges is required")
	}
	if a.Top < 0 {
		return nil, false, usageError("rank: -top must not be negative")
	}

	return &a, false, nil
}

// RecommendArgs are the options of "recommend". K and Hops are only applied
// when the matching Set flag is true; otherwise configuration defaults win.
type RecommendArgs struct {
	Edges   string
	Node    core.NodeID
	K       int
	KSet    bool
	Hops    int
	HopsSet bool
}

// ParseRecommend parses "recommend -edges FILE -node ID [-k K] [-hops H]".
func ParseRecommend(args []string, output io.Writer) (*RecommendArgs, bool, error) {
	fs := newFlagSet("recommend", "-edges FILE -node ID [-k K] [-hops H]", output)
	var (
		a    RecommendArgs
		node int64
	)
	fs.StringVar(&a.Edges, "edges", "", "Edge list file (required).")
	fs.Int64Var(&node, "node", 0, "Node to suggest friends for (required).")
	fs.IntVar(&a.K, "k", 0, "Number of suggestions.")
	fs.IntVar(&a.Hops, "hops", 0, "Only suggest nodes within this many hops (0 means any distance).")

	if exit, err := parseFlags(fs, args); exit || err != nil {
		return nil, exit, err
	}
	set := setFlags(fs)
	if a.Edges == "" {
		return nil, false, usageError("recommend: -edges is required")
	}
	if !set["node"] {
		return nil, false, usageError("recommend: -node is required")
	}
	a.Node = core.NodeID(node)
	a.KSet, a.HopsSet = set["k"], set["hops"]

	return &a, false, nil
}

// ConnectArgs are the options of "connect".
type ConnectArgs struct {
	DB    string
	Edges string
	A, B  core.NodeID
	Top   int
}

// ParseConnect parses "connect [-db FILE] [-edges FILE] -a ID -b ID".
// DB may be left empty when the configuration file names a store.
func ParseConnect(args []string, output io.Writer) (*ConnectArgs, bool, error) {
	fs := newFlagSet("connect", "[-db FILE] [-edges FILE] -a ID -b ID [-top N]", output)
	var (
		a    ConnectArgs
		x, y int64
	)
	fs.StringVar(&a.DB, "db", "", "Graph database file (defaults to store.path from the config file).")
	fs.StringVar(&a.Edges, "edges", "", "Edge list used to seed an empty database.")
	fs.Int64Var(&x, "a", 0, "First node of the new friendship (required).")
	fs.Int64Var(&y, "b", 0, "Second node of the new friendship (required).")
	fs.IntVar(&a.Top, "top", 10, "Rows of the updated table to print; 0 prints all.")

	if exit, err := parseFlags(fs, args); exit || err != nil {
		return nil, exit, err
	}
	set := setFlags(fs)
	if !set["a"] || !set["b"] {
		return nil, false, usageError("connect: -a and -b are required")
	}
	if x == y {
		return nil, false, usageError("connect: a node cannot befriend itself")
	}
	if a.Top < 0 {
		return nil, false, usageError("connect: -top must not be negative")
	}
	a.A, a.B = core.NodeID(x), core.NodeID(y)

	return &a, false, nil
}

// GenerateArgs are the options of "generate".
type GenerateArgs struct {
	Topology string
	N        int
	P        float64
	Seed     int64
	Offset   int64
	Out      string
}

// ParseGenerate parses "generate -topology NAME -n N [-p P] [-seed S]".
func ParseGenerate(args []string, output io.Writer) (*GenerateArgs, bool, error) {
	fs := newFlagSet("generate", "-topology star|cycle|path|complete|random -n N [-p P] [-seed S] [-offset ID] [-out FILE]", output)
	var a GenerateArgs
	fs.StringVar(&a.Topology, "topology", "", "Shape: star, cycle, path, complete or random (required).")
	fs.IntVar(&a.N, "n", 0, "Number of nodes (required).")
	fs.Float64Var(&a.P, "p", 0.1, "Edge probability for the random topology.")
	fs.Int64Var(&a.Seed, "seed", 1, "Random seed for the random topology.")
	fs.Int64Var(&a.Offset, "offset", 1, "Identifier of the first node.")
	fs.StringVar(&a.Out, "out", "", "Write to this file instead of standard output.")

	if exit, err := parseFlags(fs, args); exit || err != nil {
		return nil, exit, err
	}
	if a.Topology == "" {
		return nil, false, usageError("generate: -topology is required")
	}
	if a.N <= 0 {
		return nil, false, usageError("generate: -n must be positive")
	}
	if a.P < 0 || a.P > 1 {
		return nil, false, usageError("generate: -p must be in [0,1]")
	}

	return &a, false, nil
}

// ServeArgs are the options of "serve".
type ServeArgs struct {
	Edges string
	DB    string
	Addr  string
}

// ParseServe parses "serve [-edges FILE] [-db FILE] [-addr ADDR]". At least
// one graph source must be available once the configuration is applied, so
// that check is left to the caller.
func ParseServe(args []string, output io.Writer) (*ServeArgs, bool, error) {
	fs := newFlagSet("serve", "[-edges FILE] [-db FILE] [-addr ADDR]", output)
	var a ServeArgs
	fs.StringVar(&a.Edges, "edges", "", "Edge list to serve; replaces the stored graph when -db is also set.")
	fs.StringVar(&a.DB, "db", "", "Graph database file (defaults to store.path from the config file).")
	fs.StringVar(&a.Addr, "addr", "", "Listen address (defaults to server.addr from the config file).")

	if exit, err := parseFlags(fs, args); exit || err != nil {
		return nil, exit, err
	}

	return &a, false, nil
}
