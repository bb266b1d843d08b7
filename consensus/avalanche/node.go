// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package avalanche

import (
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bwasti/avalanche-playground/utils/sampler"
)

// Parameters are the protocol knobs fixed at Node construction.
type Parameters struct {
	// K is how many peers to sample per polled transaction.
	K int
	// Alpha is the portion of sampled peers that must respond positively
	// for a transaction to gain a chit this round.
	Alpha float64
	// Beta1 is the confidence threshold for early commit.
	Beta1 int
	// Beta2 is the consecutive-round threshold for counted commit.
	Beta2 int
}

// Node is a single participant's view of the shared transaction DAG: the
// transactions it has observed, their chits, the per-UTXO conflict sets,
// and the repeated-subsampling voting loop that drives them toward
// acceptance.
type Node struct {
	name     string
	id       uuid.UUID
	params   Parameters
	universe *Universe
	rng      *rand.Rand
	log      *zap.Logger

	peers []*Node

	transactions map[*Transaction]struct{}
	order        []*Transaction // insertion order, for deterministic Run traversal
	chits        map[*Transaction]int
	conflicts    map[UTXO]*ConflictSet
	queried      map[*Transaction]bool
	children     map[*Transaction][]*Transaction // forward index: parent -> children

	onQuery func(tx *Transaction, positives, threshold int, chit int) // test/metrics hook, may be nil
}

// NewNode constructs an empty Node with the given parameters. universe may
// be shared across every Node simulating the same network so that genesis
// designation agrees network-wide; logger may be nil, in which case a
// no-op logger is used.
func NewNode(name string, params Parameters, universe *Universe, logger *zap.Logger) *Node {
	if name == "" {
		name = nextName("node")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if universe == nil {
		universe = NewUniverse()
	}
	return &Node{
		name:         name,
		id:           uuid.New(),
		params:       params,
		universe:     universe,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		log:          logger.Named(name),
		transactions: make(map[*Transaction]struct{}),
		chits:        make(map[*Transaction]int),
		conflicts:    make(map[UTXO]*ConflictSet),
		queried:      make(map[*Transaction]bool),
		children:     make(map[*Transaction][]*Transaction),
	}
}

// Name returns the node's display name.
func (n *Node) Name() string { return n.name }

// ID returns the node's identity.
func (n *Node) ID() uuid.UUID { return n.id }

// SetPeers installs the peer roster this node samples from during Run. It
// must be called before the first Run.
func (n *Node) SetPeers(peers []*Node) { n.peers = peers }

// SetSeed pins the random source used for peer sampling, for reproducible
// simulations.
func (n *Node) SetSeed(seed int64) { n.rng = rand.New(rand.NewSource(seed)) }

// SetQueryObserver installs a callback invoked after every poll in Run,
// with the polled transaction, the number of positive responses, the
// threshold that was required, and the resulting chit. Used by the metrics
// package to report round-level counters; nil disables the hook. This is
// purely observational and never influences protocol state.
func (n *Node) SetQueryObserver(fn func(tx *Transaction, positives, threshold, chit int)) {
	n.onQuery = fn
}

// Transactions returns every transaction this node has ever observed, in
// the order it first received them. Callers must not mutate the slice.
func (n *Node) Transactions() []*Transaction { return n.order }

// Chit returns the chit (0 or 1) recorded for tx, or 0 if tx is unknown.
func (n *Node) Chit(tx *Transaction) int { return n.chits[tx] }

// ConflictSet returns the conflict set for the given UTXO, or nil if this
// node has never received a transaction spending it.
func (n *Node) ConflictSet(utxo UTXO) *ConflictSet { return n.conflicts[utxo] }

// Receive ingests tx into the node's state. It is idempotent: receiving an
// already-known transaction a second time is a no-op.
func (n *Node) Receive(tx *Transaction) {
	if _, known := n.transactions[tx]; known {
		return
	}

	if tx.IsGenesis() {
		n.universe.designateGenesis(tx)
	}

	if cs, exists := n.conflicts[tx.utxo]; exists {
		cs.insert(tx)
	} else {
		n.conflicts[tx.utxo] = newConflictSet(tx)
	}

	n.transactions[tx] = struct{}{}
	n.order = append(n.order, tx)
	n.chits[tx] = 0

	for _, parent := range tx.parents {
		n.children[parent] = append(n.children[parent], tx)
	}

	n.log.Debug("received transaction", zap.Stringer("tx", tx))
}

// IsStronglyPreferred reports whether every ancestor of tx — reached via
// the transitive closure of Parents — is its UTXO's current preferred
// member. A no-parent transaction is strongly preferred iff it is the
// designated genesis. An ancestor whose UTXO this node has never received
// is treated as a protocol violation and yields false.
func (n *Node) IsStronglyPreferred(tx *Transaction) bool {
	if tx.IsGenesis() {
		return tx == n.universe.Genesis()
	}

	seen := make(map[*Transaction]struct{})
	frontier := append([]*Transaction(nil), tx.parents...)

	for len(frontier) > 0 {
		next := frontier[:0:0]
		for _, parent := range frontier {
			if _, already := seen[parent]; already {
				continue
			}
			seen[parent] = struct{}{}

			cs, exists := n.conflicts[parent.utxo]
			if !exists {
				n.log.Debug("ancestor UTXO never received",
					zap.Stringer("tx", tx), zap.Stringer("ancestor", parent))
				return false
			}
			if cs.preferred != parent {
				return false
			}
			next = append(next, parent.parents...)
		}
		frontier = next
	}
	return true
}

// Confidence is the sum of chits over tx and its chit-bearing descendants.
// It memoizes within this call only (shared across the recursive descent,
// discarded on return): chits can change between successive threshold
// updates within the same Run, so a memo that outlived one call could
// return a value staler than the most recent chit flip.
func (n *Node) Confidence(tx *Transaction) int {
	memo := make(map[*Transaction]int)
	return n.confidence(tx, memo)
}

func (n *Node) confidence(tx *Transaction, memo map[*Transaction]int) int {
	if v, ok := memo[tx]; ok {
		return v
	}
	total := n.chits[tx]
	for _, child := range n.children[tx] {
		if n.chits[child] == 1 {
			total += n.confidence(child, memo)
		}
	}
	memo[tx] = total
	return total
}

// Query is the only method nodes invoke on each other: it ingests tx (if
// not already known) and returns whether tx is strongly preferred.
func (n *Node) Query(tx *Transaction) bool {
	n.Receive(tx)
	return n.IsStronglyPreferred(tx)
}

// Run executes one voting round: every not-yet-queried transaction is put
// to a fresh sample of k peers, in the order this node first received them.
func (n *Node) Run() {
	for _, tx := range n.order {
		if n.queried[tx] {
			continue
		}
		n.pollOne(tx)
		n.queried[tx] = true
	}
}

func (n *Node) pollOne(tx *Transaction) {
	k := n.params.K
	if len(n.peers) < k {
		n.log.Warn("not enough peers to sample, skipping round for transaction",
			zap.Stringer("tx", tx), zap.Int("peers", len(n.peers)), zap.Int("k", k))
		return
	}

	indices, err := sampler.UniformWithoutReplacement(n.rng, len(n.peers), k)
	if err != nil {
		n.log.Warn("sampling failed", zap.Error(err))
		return
	}

	positives := 0
	for _, idx := range indices {
		if n.peers[idx].Query(tx) {
			positives++
		}
	}

	threshold := int(math.Floor(n.params.Alpha * float64(k)))
	chit := 0
	if positives >= threshold {
		chit = 1
		n.chits[tx] = 1

		for _, parent := range tx.parents {
			cs := n.conflicts[parent.utxo]
			if n.Confidence(parent) > n.Confidence(cs.preferred) {
				cs.preferred = parent
			}
			if parent != cs.last {
				cs.last = parent
				cs.count = 0
			} else {
				cs.count++
			}
		}
	}

	if n.onQuery != nil {
		n.onQuery(tx, positives, threshold, chit)
	}
	n.log.Debug("polled transaction",
		zap.Stringer("tx", tx), zap.Int("positives", positives),
		zap.Int("threshold", threshold), zap.Int("chit", chit))
}

// IsAccepted is a pure read: tx is accepted iff it early-commits (every
// parent accepted, its UTXO never saw a live conflict, and confidence
// exceeds Beta1) or counted-commits (it is its UTXO's preferred member and
// has won more than Beta2 consecutive rounds).
func (n *Node) IsAccepted(tx *Transaction) bool {
	cs, known := n.conflicts[tx.utxo]
	if !known || !cs.Contains(tx) {
		n.log.Debug("IsAccepted called for unknown transaction", zap.Stringer("tx", tx))
		return false
	}

	earlyCommit := true
	for _, parent := range tx.parents {
		earlyCommit = earlyCommit && n.IsAccepted(parent)
	}
	earlyCommit = earlyCommit && cs.Len() == 1 && n.Confidence(tx) > n.params.Beta1
	if earlyCommit {
		return true
	}

	if cs.preferred == tx {
		return cs.count > n.params.Beta2
	}
	return false
}
