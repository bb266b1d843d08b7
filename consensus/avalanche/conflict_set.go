// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package avalanche

// ConflictSet is the set of known transactions competing for a single UTXO,
// plus the protocol bookkeeping Run needs: which member is currently
// preferred, which member most recently won a vote, and how many
// consecutive rounds it has won.
type ConflictSet struct {
	members   map[*Transaction]struct{}
	preferred *Transaction
	last      *Transaction
	count     int
}

// newConflictSet creates a ConflictSet seeded with tx: members = {tx},
// preferred = last = tx, count = 0.
func newConflictSet(tx *Transaction) *ConflictSet {
	return &ConflictSet{
		members:   map[*Transaction]struct{}{tx: {}},
		preferred: tx,
		last:      tx,
	}
}

// insert adds tx to the conflict set. It has no effect on preferred, last,
// or count.
func (c *ConflictSet) insert(tx *Transaction) {
	c.members[tx] = struct{}{}
}

// Contains reports whether tx is a known member of this conflict set.
func (c *ConflictSet) Contains(tx *Transaction) bool {
	_, ok := c.members[tx]
	return ok
}

// Len returns the number of transactions competing for this UTXO.
func (c *ConflictSet) Len() int { return len(c.members) }

// Preferred returns the currently preferred member.
func (c *ConflictSet) Preferred() *Transaction { return c.preferred }

// Last returns the most recent transaction to win a positive-vote round.
func (c *ConflictSet) Last() *Transaction { return c.last }

// Count returns the number of consecutive positive-vote rounds Last has won.
func (c *ConflictSet) Count() int { return c.count }
