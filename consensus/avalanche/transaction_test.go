// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package avalanche

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTransactionIdentityIsFresh(t *testing.T) {
	require := require.New(t)

	tx1 := NewTransaction(0, nil, "")
	tx2 := NewTransaction(0, nil, "")

	require.NotEqual(tx1.ID(), tx2.ID())
	require.NotSame(tx1, tx2)
}

func TestNewTransactionGenesis(t *testing.T) {
	tests := map[string]struct {
		parents []*Transaction
		genesis bool
	}{
		"no parents":      {parents: nil, genesis: true},
		"explicit empty":  {parents: []*Transaction{}, genesis: true},
		"one parent":      {parents: []*Transaction{NewTransaction(0, nil, "")}, genesis: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			tx := NewTransaction(1, tt.parents, "")
			require.Equal(tt.genesis, tx.IsGenesis())
		})
	}
}

func TestNewTransactionParentsAreCopied(t *testing.T) {
	require := require.New(t)

	parent := NewTransaction(0, nil, "")
	parents := []*Transaction{parent}
	tx := NewTransaction(1, parents, "")

	parents[0] = nil
	require.Equal(parent, tx.Parents()[0])
}

func TestNewTransactionNameDefaultsAreUnique(t *testing.T) {
	require := require.New(t)

	tx1 := NewTransaction(0, nil, "")
	tx2 := NewTransaction(0, nil, "")

	require.NotEqual(tx1.Name(), tx2.Name())

	named := NewTransaction(0, nil, "genesis")
	require.Equal("genesis", named.Name())
}
