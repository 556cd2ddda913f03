// Package hedera holds small value types shared across the SDK's domain
// packages that don't belong to any single component: currency amounts
// today, more may follow.
package hedera

import "fmt"

// tinybarPerHbar is the fixed-point scale: 1 Hbar == 1e8 tinybar.
const tinybarPerHbar = 100_000_000

// Hbar is an amount of the network's native currency, stored as a signed
// tinybar count to avoid floating-point drift in fee/transfer arithmetic.
type Hbar struct {
	tinybar int64
}

// NewHbar builds an amount from a whole-and-fractional Hbar count.
func NewHbar(amount float64) Hbar {
	return Hbar{tinybar: int64(amount * tinybarPerHbar)}
}

// HbarFromTinybar builds an amount directly from a tinybar count, as
// returned by a cost-answer query response.
func HbarFromTinybar(tinybar int64) Hbar {
	return Hbar{tinybar: tinybar}
}

func (h Hbar) AsTinybar() int64 { return h.tinybar }

func (h Hbar) AsHbar() float64 { return float64(h.tinybar) / tinybarPerHbar }

func (h Hbar) Negated() Hbar { return Hbar{tinybar: -h.tinybar} }

func (h Hbar) Add(o Hbar) Hbar { return Hbar{tinybar: h.tinybar + o.tinybar} }

func (h Hbar) String() string {
	return fmt.Sprintf("%.8g ħ", h.AsHbar())
}
