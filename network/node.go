// Package network implements the managed network: the address book of
// candidate nodes, per-node health and backoff bookkeeping, and the
// selection policies the execution engine draws on for each attempt.
package network

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/hashnet-labs/hedera-core-sdk/ids"
)

// Health tracks a single node's recent outcome history.
type Health int

const (
	Healthy Health = iota
	Unhealthy
	CoolingDown
)

func (h Health) String() string {
	switch h {
	case Healthy:
		return "healthy"
	case Unhealthy:
		return "unhealthy"
	case CoolingDown:
		return "cooling_down"
	default:
		return "unknown"
	}
}

// Node is one candidate network endpoint: an account id (the fee payee
// for requests routed to it) and a dial target, plus the mutable health
// and backoff state the managed network maintains.
type Node struct {
	AccountID ids.AccountID
	Endpoint  string

	mu           sync.Mutex
	health       Health
	backoffUntil time.Time
	backoff      time.Duration
	inFlight     int
	lastUsedAt   time.Time

	conn    *grpc.ClientConn
	connMu  sync.Mutex
	dialler func(endpoint string) (*grpc.ClientConn, error)
}

// NewNode returns a node in the healthy state with backoff reset to
// minBackoff.
func NewNode(account ids.AccountID, endpoint string, minBackoff time.Duration) *Node {
	return &Node{
		AccountID: account,
		Endpoint:  endpoint,
		health:    Healthy,
		backoff:   minBackoff,
	}
}

// getConn lazily dials the node on first use; per spec.md §9's open-question
// resolution, the managed network never pre-flight probes reachability.
func (n *Node) getConn(ctx context.Context) (*grpc.ClientConn, error) {
	n.connMu.Lock()
	defer n.connMu.Unlock()
	if n.conn != nil {
		return n.conn, nil
	}
	dial := n.dialler
	if dial == nil {
		dial = func(endpoint string) (*grpc.ClientConn, error) {
			return grpc.NewClient(endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
		}
	}
	conn, err := dial(n.Endpoint)
	if err != nil {
		return nil, err
	}
	n.conn = conn
	return conn, nil
}

func (n *Node) snapshot(now time.Time) (health Health, backoffUntil time.Time, inFlight int, lastUsedAt time.Time) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.health, n.backoffUntil, n.inFlight, n.lastUsedAt
}

// inCooldown reports whether now is still within the node's backoff
// window.
func (n *Node) inCooldown(now time.Time) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.health == CoolingDown && now.Before(n.backoffUntil)
}

// markAttemptStart records that a request has been dispatched to this
// node, for least-busy selection's in_flight_count tie-break.
func (n *Node) markAttemptStart(now time.Time) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.inFlight++
	n.lastUsedAt = now
}

func (n *Node) markAttemptEnd() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.inFlight > 0 {
		n.inFlight--
	}
}

// MarkSuccess resets health to Healthy and backoff to its minimum.
func (n *Node) MarkSuccess(minBackoff time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.health = Healthy
	n.backoff = minBackoff
	logrus.WithField("node", n.AccountID.String()).Debug("network: node marked healthy")
}

// MarkUnhealthy transitions the node into cooldown. The first failure
// since the node was last healthy waits minBackoff (n.backoff's current
// value); each consecutive failure after that doubles it, up to
// maxBackoff, with ±25% jitter applied, per spec.md §4.5.
func (n *Node) MarkUnhealthy(now time.Time, maxBackoff time.Duration, jitter func(time.Duration) time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	firstFailure := n.health == Healthy
	n.health = Unhealthy

	wait := n.backoff
	if !firstFailure {
		wait *= 2
	}
	if wait > maxBackoff {
		wait = maxBackoff
	}
	n.backoff = wait
	n.backoffUntil = now.Add(jitter(wait))
	n.health = CoolingDown
	logrus.WithFields(logrus.Fields{
		"node":          n.AccountID.String(),
		"backoff_until": n.backoffUntil,
	}).Warn("network: node entering cooldown")
}

func (n *Node) BackoffUntil() time.Time {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.backoffUntil
}
