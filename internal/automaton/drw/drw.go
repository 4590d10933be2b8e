// Package drw implements the deterministic Rabin automaton produced by
// determinize.Run: a total transition table, an initial state, and a
// list of Rabin acceptance pairs, per spec.md §3/§4.3/§4.4.
package drw

import (
	"ecaverify/internal/bitset"
	"ecaverify/internal/errs"
)

// Pair is a Rabin acceptance pair (Fin, Inf) over DRW states.
type Pair struct {
	Fin *bitset.Set
	Inf *bitset.Set
}

// DRW is a deterministic Rabin automaton: tuple ⟨N, Σ, δ, q₀, P⟩.
type DRW struct {
	N       int
	Sigma   int
	delta   []int // delta[state*Sigma+symbol]
	initial int
	Pairs   []Pair

	Alphabet    string
	CharLabels  []string
	StateLabels []string
}

// Construct builds a DRW from a total transition table (row-major,
// state*sigma+symbol), an initial state, and a set of Rabin pairs. Pairs
// with an empty Inf are unsatisfiable (spec.md §3) and are dropped.
func Construct(n, sigma int, delta []int, initial int, pairs []Pair) *DRW {
	if len(delta) != n*sigma {
		errs.Precondition("drw: delta has %d entries, want %d", len(delta), n*sigma)
	}
	if initial < 0 || initial >= n {
		errs.Precondition("drw: initial state %d out of range [0,%d)", initial, n)
	}
	d := &DRW{N: n, Sigma: sigma, delta: append([]int(nil), delta...), initial: initial}
	for _, p := range pairs {
		if p.Inf == nil || p.Inf.IsEmpty() {
			continue
		}
		d.Pairs = append(d.Pairs, p)
	}
	return d
}

// Initial returns the initial state index.
func (d *DRW) Initial() int { return d.initial }

// Step returns δ(state, symbol).
func (d *DRW) Step(state, symbol int) int {
	if state < 0 || state >= d.N || symbol < 0 || symbol >= d.Sigma {
		errs.Precondition("drw: step(%d,%d) out of range", state, symbol)
	}
	return d.delta[state*d.Sigma+symbol]
}
