package network

import (
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/hashnet-labs/hedera-core-sdk/ids"
)

// Policy selects which healthy node an attempt is routed to.
type Policy int

const (
	RoundRobin Policy = iota
	LeastBusy
	Randomized
)

// nodeRecord is the on-disk shape of one address-book entry, loaded by
// Refresh from a designated system file.
type nodeRecord struct {
	AccountID string `yaml:"account_id"`
	Endpoint  string `yaml:"endpoint"`
}

// AddressBook is the managed network: an ordered list of candidate nodes,
// a selection policy, and shared per-node health/backoff state updated
// under a short critical section, per spec.md §4.5 and §5.
type AddressBook struct {
	mu     sync.Mutex
	nodes  []*Node
	cursor int
	policy Policy

	minBackoff time.Duration
	maxBackoff time.Duration

	clk clock.Clock
	rng *rand.Rand
}

// Option configures an AddressBook at construction.
type Option func(*AddressBook)

func WithPolicy(p Policy) Option { return func(b *AddressBook) { b.policy = p } }

func WithBackoffRange(min, max time.Duration) Option {
	return func(b *AddressBook) {
		b.minBackoff = min
		b.maxBackoff = max
	}
}

// WithClock overrides the wall clock, for deterministic backoff tests
// (Testable Properties 9-12, Scenarios S1/S3/S5).
func WithClock(clk clock.Clock) Option { return func(b *AddressBook) { b.clk = clk } }

// WithRand overrides the jitter source for reproducible backoff timing in
// tests.
func WithRand(src *rand.Rand) Option { return func(b *AddressBook) { b.rng = src } }

// NewAddressBook builds a managed network over nodes with round-robin
// selection and spec-default backoff bounds unless overridden.
func NewAddressBook(nodes []*Node, opts ...Option) *AddressBook {
	b := &AddressBook{
		nodes:      nodes,
		policy:     RoundRobin,
		minBackoff: DefaultMinBackoff,
		maxBackoff: DefaultMaxBackoff,
		clk:        clock.New(),
		rng:        rand.New(rand.NewSource(1)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ErrNoNodes is returned when the address book has no candidate nodes at
// all (as opposed to none currently healthy, which fails open).
var ErrNoNodes = fmt.Errorf("network: address book has no nodes")

// Pick selects the next node to attempt per the configured policy. If
// every node is in cooldown the engine fails open onto the node with the
// earliest backoff_until, per spec.md §4.5.
func (b *AddressBook) Pick() (*Node, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.nodes) == 0 {
		return nil, ErrNoNodes
	}

	now := b.clk.Now()
	var healthy []*Node
	for _, n := range b.nodes {
		if !n.inCooldown(now) {
			healthy = append(healthy, n)
		}
	}
	if len(healthy) == 0 {
		return b.earliestBackoff(), nil
	}

	var chosen *Node
	switch b.policy {
	case LeastBusy:
		chosen = leastBusy(healthy, now)
	case Randomized:
		chosen = healthy[b.rng.Intn(len(healthy))]
	default:
		chosen = b.nextRoundRobin(healthy)
	}
	chosen.markAttemptStart(now)
	return chosen, nil
}

func (b *AddressBook) nextRoundRobin(healthy []*Node) *Node {
	b.cursor = (b.cursor + 1) % len(b.nodes)
	for i := 0; i < len(b.nodes); i++ {
		idx := (b.cursor + i) % len(b.nodes)
		for _, h := range healthy {
			if h == b.nodes[idx] {
				b.cursor = idx
				return h
			}
		}
	}
	return healthy[0]
}

func leastBusy(healthy []*Node, now time.Time) *Node {
	best := healthy[0]
	_, _, bestInFlight, bestLastUsed := best.snapshot(now)
	for _, n := range healthy[1:] {
		_, _, inFlight, lastUsed := n.snapshot(now)
		if inFlight < bestInFlight || (inFlight == bestInFlight && lastUsed.Before(bestLastUsed)) {
			best, bestInFlight, bestLastUsed = n, inFlight, lastUsed
		}
	}
	return best
}

func (b *AddressBook) earliestBackoff() *Node {
	best := b.nodes[0]
	for _, n := range b.nodes[1:] {
		if n.BackoffUntil().Before(best.BackoffUntil()) {
			best = n
		}
	}
	logrus.WithField("node", best.AccountID.String()).Warn("network: all nodes cooling down, failing open")
	return best
}

// MarkUnhealthy routes to the node's own backoff transition, jittering
// with the address book's configured rand source.
func (b *AddressBook) MarkUnhealthy(n *Node) {
	b.mu.Lock()
	now := b.clk.Now()
	rng := b.rng
	maxBackoff := b.maxBackoff
	b.mu.Unlock()
	n.markAttemptEnd()
	n.MarkUnhealthy(now, maxBackoff, func(d time.Duration) time.Duration { return Jitter(rng, d) })
}

// MarkSuccess resets the node to healthy with its backoff back at the
// address book's configured minimum.
func (b *AddressBook) MarkSuccess(n *Node) {
	n.markAttemptEnd()
	n.MarkSuccess(b.minBackoff)
}

// Refresh reloads the address book from a YAML file of node records,
// replacing the current node list wholesale under the address book's
// lock.
func (b *AddressBook) Refresh(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("network: reading address book %s: %w", path, err)
	}
	var records []nodeRecord
	if err := yaml.Unmarshal(raw, &records); err != nil {
		return fmt.Errorf("network: parsing address book %s: %w", path, err)
	}

	nodes := make([]*Node, 0, len(records))
	for _, r := range records {
		account, err := ids.ParseAccountID(r.AccountID)
		if err != nil {
			return fmt.Errorf("network: address book entry %q: %w", r.AccountID, err)
		}
		nodes = append(nodes, NewNode(account, r.Endpoint, b.minBackoff))
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.nodes = nodes
	b.cursor = 0
	return nil
}

// Nodes returns a snapshot copy of the address book's current node list.
func (b *AddressBook) Nodes() []*Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*Node, len(b.nodes))
	copy(out, b.nodes)
	return out
}
