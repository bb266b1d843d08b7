// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package avalanche

// RunNodes drives m rounds of voting across nodes. Per-iteration order
// within the set is unspecified; reproducibility across runs comes from
// seeding each Node's random source (see Node.SetSeed), not from this
// function's traversal order.
func RunNodes(nodes []*Node, m int) {
	for i := 0; i < m; i++ {
		for _, node := range nodes {
			node.Run()
		}
	}
}
