// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package avalanche

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var defaultParams = Parameters{K: 10, Alpha: 0.75, Beta1: 10, Beta2: 10}

// newTestNetwork builds n Nodes sharing one Universe, all peering to the
// full set (including themselves, matching the reference implementation's
// own test harness — see SPEC_FULL.md §9).
func newTestNetwork(n int, params Parameters, seed int64) []*Node {
	universe := NewUniverse()
	nodes := make([]*Node, n)
	for i := range nodes {
		nodes[i] = NewNode("", params, universe, nil)
		nodes[i].SetSeed(seed + int64(i))
	}
	for _, node := range nodes {
		node.SetPeers(nodes)
	}
	return nodes
}

func TestReceiveIsIdempotent(t *testing.T) {
	require := require.New(t)

	node := NewNode("", defaultParams, nil, nil)
	tx := NewTransaction(0, nil, "")

	for i := 0; i < 100; i++ {
		node.Receive(tx)
	}

	require.Len(node.Transactions(), 1)
	require.Equal(1, node.ConflictSet(0).Len())
	require.Equal(0, node.Chit(tx))
}

func TestReceiveDesignatesGenesisOnce(t *testing.T) {
	require := require.New(t)

	universe := NewUniverse()
	nodeA := NewNode("a", defaultParams, universe, nil)
	nodeB := NewNode("b", defaultParams, universe, nil)

	tx0 := NewTransaction(0, nil, "")
	tx1 := NewTransaction(0, nil, "")

	nodeA.Receive(tx0)
	nodeB.Receive(tx1)

	require.Same(tx0, universe.Genesis())
}

func TestIsStronglyPreferredGenesis(t *testing.T) {
	require := require.New(t)

	universe := NewUniverse()
	node := NewNode("", defaultParams, universe, nil)
	tx0 := NewTransaction(0, nil, "")
	other := NewTransaction(1, nil, "")

	node.Receive(tx0)
	node.Receive(other)

	require.True(node.IsStronglyPreferred(tx0))
	require.False(node.IsStronglyPreferred(other), "genesis not yet designated for other")
}

func TestIsStronglyPreferredUndesignatedGenesis(t *testing.T) {
	require := require.New(t)

	node := NewNode("", defaultParams, nil, nil)
	tx := NewTransaction(0, nil, "")

	// Querying before any genesis was designated must fail closed. tx is
	// not received, since receiving a no-parent tx designates it genesis.
	require.Nil(node.universe.Genesis())
	require.False(node.IsStronglyPreferred(tx))
}

func TestIsStronglyPreferredMissingAncestor(t *testing.T) {
	require := require.New(t)

	node := NewNode("", defaultParams, nil, nil)
	tx0 := NewTransaction(0, nil, "")
	tx1 := NewTransaction(1, []*Transaction{tx0}, "")

	// tx0's UTXO was never received by this node.
	node.Receive(tx1)

	require.False(node.IsStronglyPreferred(tx1))
}

func TestIsStronglyPreferredDeterminismUnaffectedByUnrelatedTx(t *testing.T) {
	require := require.New(t)

	universe := NewUniverse()
	node := NewNode("", defaultParams, universe, nil)

	tx0 := NewTransaction(0, nil, "")
	tx1 := NewTransaction(1, []*Transaction{tx0}, "")
	node.Receive(tx0)
	node.Receive(tx1)

	before := node.IsStronglyPreferred(tx1)

	unrelated := NewTransaction(99, nil, "")
	node.Receive(unrelated)

	require.Equal(before, node.IsStronglyPreferred(tx1))
}

func TestConfidenceMonotonicOverChitFlips(t *testing.T) {
	require := require.New(t)

	node := NewNode("", defaultParams, nil, nil)
	tx0 := NewTransaction(0, nil, "")
	tx1 := NewTransaction(1, []*Transaction{tx0}, "")
	node.Receive(tx0)
	node.Receive(tx1)

	before := node.Confidence(tx0)
	node.chits[tx0] = 1
	afterTx0 := node.Confidence(tx0)
	require.GreaterOrEqual(afterTx0, before)

	node.chits[tx1] = 1
	afterTx1 := node.Confidence(tx0)
	require.GreaterOrEqual(afterTx1, afterTx0)
	require.Equal(afterTx0+1, afterTx1, "tx0's confidence gains tx1's chit once tx1 has one")
}

func TestRunNoPeersIsSafe(t *testing.T) {
	require := require.New(t)

	node := NewNode("", defaultParams, nil, nil)
	require.NotPanics(node.Run)

	require.Empty(node.Transactions())
	require.Empty(node.queried)
}

func TestRunQueriesEachTransactionAtMostOnce(t *testing.T) {
	require := require.New(t)

	nodes := newTestNetwork(51, defaultParams, 1)
	n := nodes[0]

	tx0 := NewTransaction(0, nil, "")
	for _, node := range nodes {
		node.Receive(tx0)
	}

	polls := make(map[*Transaction]int)
	n.SetQueryObserver(func(tx *Transaction, _, _, _ int) {
		polls[tx]++
	})

	for i := 0; i < 5; i++ {
		RunNodes(nodes, 1)
	}

	require.True(n.queried[tx0])
	for tx, c := range polls {
		require.LessOrEqual(c, 1, "transaction %s polled more than once", tx.Name())
	}
	for tx := range n.queried {
		_, known := n.transactions[tx]
		require.True(known, "queried must be a subset of transactions")
	}
}
