// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package render prints a node's DAG state as plain text, grounded on the
// original implementation's curses/networkx NodeRenderer.render but
// reworked for a plain io.Writer: one flat, unindented line per
// transaction, with color pairs replaced by a leading "*" conflict mark and
// chit/confidence/preferred/accepted annotations.
package render

import (
	"fmt"
	"io"

	"github.com/bwasti/avalanche-playground/consensus/avalanche"
)

// Node writes a text summary of node's transactions, in insertion order,
// one line per transaction, annotated with its chit, confidence, and
// conflict-set standing.
func Node(w io.Writer, node *avalanche.Node) error {
	for _, tx := range node.Transactions() {
		cs := node.ConflictSet(tx.UTXO())

		conflictMark := " "
		if cs != nil && cs.Len() > 1 {
			conflictMark = "*"
		}

		preferred := ""
		if cs != nil && cs.Preferred() == tx {
			preferred = " preferred"
		}

		accepted := ""
		if node.IsAccepted(tx) {
			accepted = " accepted"
		}

		if _, err := fmt.Fprintf(w, "%s%s chit=%d confidence=%d%s%s\n",
			conflictMark, tx, node.Chit(tx), node.Confidence(tx), preferred, accepted); err != nil {
			return err
		}
	}
	return nil
}
