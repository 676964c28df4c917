// SPDX-License-Identifier: MIT

package ranking

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Write renders rows as an aligned text table with a header line.
func Write(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "RANK\tNODE\tSCORE\tDEGREE"); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%d\t%d\t%s\t%d\n", r.Rank, r.Node, FormatScore(r.Score), r.Degree); err != nil {
			return err
		}
	}

	return tw.Flush()
}
