// SPDX-License-Identifier: MIT

// Package cli parses friendrank command lines: the global options, the
// command name and each command's flags. It validates user input and maps
// usage mistakes to an ExitError with code 2; it never touches the graph.
package cli
