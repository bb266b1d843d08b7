// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package avalanche implements the per-node consensus engine of an
// Avalanche-family metastable voting protocol over a DAG of transactions:
// conflict sets keyed by UTXO, recursive confidence, strong preference by
// transitive closure over ancestors, and a two-threshold acceptance rule
// driven by repeated randomized sampling of peer opinions.
package avalanche

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// UTXO identifies the resource a Transaction consumes. Any comparable value
// works; this simulator uses small integers.
type UTXO = any

var nameSeq uint64

func nextName(base string) string {
	n := atomic.AddUint64(&nameSeq, 1)
	return fmt.Sprintf("%s_%d", base, n-1)
}

// Transaction is an immutable DAG node: an identity, the UTXO it consumes,
// and the set of transactions it builds on. Two Transactions with identical
// UTXO and parents are still distinct values — identity is by pointer, not
// by content.
type Transaction struct {
	id      uuid.UUID
	name    string
	utxo    UTXO
	parents []*Transaction
}

// NewTransaction constructs a fresh, immutable transaction. A nil or empty
// parents slice marks it as a candidate genesis (see Universe).
func NewTransaction(utxo UTXO, parents []*Transaction, name string) *Transaction {
	if name == "" {
		name = nextName("tx")
	}
	return &Transaction{
		id:      uuid.New(),
		name:    name,
		utxo:    utxo,
		parents: append([]*Transaction(nil), parents...),
	}
}

// ID returns the transaction's stable identity.
func (t *Transaction) ID() uuid.UUID { return t.id }

// Name returns the display name (for logging/rendering only).
func (t *Transaction) Name() string { return t.name }

// UTXO returns the UTXO tag this transaction consumes.
func (t *Transaction) UTXO() UTXO { return t.utxo }

// Parents returns the transaction's parent set. The slice is owned by the
// Transaction and must not be mutated by callers.
func (t *Transaction) Parents() []*Transaction { return t.parents }

// IsGenesis reports whether this transaction has no parents.
func (t *Transaction) IsGenesis() bool { return len(t.parents) == 0 }

func (t *Transaction) String() string {
	return fmt.Sprintf("Tx(%s, utxo=%v)", t.name, t.utxo)
}
