// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package avalanche

// Universe designates the genesis transaction shared by a group of Nodes
// that simulate the same network. The reference implementation uses a
// process-wide global for this; a shared Universe handle threaded into each
// Node at construction is behaviorally equivalent for the scenarios this
// protocol targets, without the global's cross-test interference.
type Universe struct {
	genesis *Transaction
}

// NewUniverse creates an empty Universe with no genesis designated yet.
func NewUniverse() *Universe {
	return &Universe{}
}

// designateGenesis records tx as the genesis if none has been designated
// yet. Idempotent.
func (u *Universe) designateGenesis(tx *Transaction) {
	if u.genesis == nil {
		u.genesis = tx
	}
}

// Genesis returns the designated genesis transaction, or nil if none has
// been observed yet.
func (u *Universe) Genesis() *Transaction {
	return u.genesis
}
