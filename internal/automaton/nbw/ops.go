package nbw

import (
	"ecaverify/internal/bitset"
	"ecaverify/internal/errs"
)

func (a *NBW) requireSameAlphabet(b *NBW) {
	if a.Sigma != b.Sigma {
		errs.Precondition("nbw: alphabet mismatch %d vs %d", a.Sigma, b.Sigma)
	}
}

// DisjointSum recognizes L(a) ∪ L(b). States are a.N + b.N; a's
// transitions are copied, b's are shifted by a.N, and initial/accepting
// sets are unioned with the same shift.
func DisjointSum(a, b *NBW) *NBW {
	a.requireSameAlphabet(b)
	n := a.N + b.N
	out := &NBW{
		N:       n,
		Sigma:   a.Sigma,
		delta:   make([]*bitset.Set, n*a.Sigma),
		initial: bitset.New(n),
		final:   bitset.New(n),
	}
	for i := range out.delta {
		out.delta[i] = bitset.New(n)
	}
	for s := 0; s < a.N; s++ {
		for sym := 0; sym < a.Sigma; sym++ {
			a.delta01(s, sym).Each(func(t int) { out.delta[s*a.Sigma+sym].Set(t) })
		}
	}
	for s := 0; s < b.N; s++ {
		for sym := 0; sym < a.Sigma; sym++ {
			b.delta01(s, sym).Each(func(t int) { out.delta[(a.N+s)*a.Sigma+sym].Set(a.N + t) })
		}
	}
	a.initial.Each(func(s int) { out.initial.Set(s) })
	b.initial.Each(func(s int) { out.initial.Set(a.N + s) })
	a.final.Each(func(s int) { out.final.Set(s) })
	b.final.Each(func(s int) { out.final.Set(a.N + s) })
	return out
}

// SynchronousProduct builds the pairwise product automaton: state (i,j)
// at index i*b.N+j, accepting iff both components are. This is sound for
// safety (finite-word) intersection but, per SPEC_FULL.md §4, NOT sound
// for general Büchi intersection -- use Intersect for that.
func SynchronousProduct(a, b *NBW) *NBW {
	a.requireSameAlphabet(b)
	n := a.N * b.N
	idx := func(i, j int) int { return i*b.N + j }

	out := &NBW{
		N:       n,
		Sigma:   a.Sigma,
		delta:   make([]*bitset.Set, n*a.Sigma),
		initial: bitset.New(n),
		final:   bitset.New(n),
	}
	for i := range out.delta {
		out.delta[i] = bitset.New(n)
	}
	for i := 0; i < a.N; i++ {
		for j := 0; j < b.N; j++ {
			for sym := 0; sym < a.Sigma; sym++ {
				ai := a.delta01(i, sym)
				bj := b.delta01(j, sym)
				dest := out.delta[idx(i, j)*a.Sigma+sym]
				ai.Each(func(ip int) {
					bj.Each(func(jp int) {
						dest.Set(idx(ip, jp))
					})
				})
			}
			if a.initial.Test(i) && b.initial.Test(j) {
				out.initial.Set(idx(i, j))
			}
			if a.final.Test(i) && b.final.Test(j) {
				out.final.Set(idx(i, j))
			}
		}
	}
	return out
}

// Intersect recognizes L(a) ∩ L(b) for general Büchi automata, using the
// standard flag-copy construction: state (i, j, f) with f ∈ {0, 1}
// tracking which component's accepting set was most recently visited.
// f flips 0→1 on visiting a's final set while f=0, and 1→0 on visiting
// b's final set while f=1; accepting states are exactly the f=0 states
// with i ∈ F_a. See SPEC_FULL.md §4.5 (grounded in spec.md §9's flagged
// gap: "the source does not currently expose a correct Büchi-intersection
// routine").
func Intersect(a, b *NBW) *NBW {
	a.requireSameAlphabet(b)
	idx := func(i, j, f int) int { return (i*b.N+j)*2 + f }
	n := a.N * b.N * 2

	out := &NBW{
		N:       n,
		Sigma:   a.Sigma,
		delta:   make([]*bitset.Set, n*a.Sigma),
		initial: bitset.New(n),
		final:   bitset.New(n),
	}
	for i := range out.delta {
		out.delta[i] = bitset.New(n)
	}

	nextFlag := func(i, j, f int) int {
		switch {
		case f == 0 && a.final.Test(i):
			return 1
		case f == 1 && b.final.Test(j):
			return 0
		default:
			return f
		}
	}

	for i := 0; i < a.N; i++ {
		for j := 0; j < b.N; j++ {
			for f := 0; f < 2; f++ {
				for sym := 0; sym < a.Sigma; sym++ {
					ai := a.delta01(i, sym)
					bj := b.delta01(j, sym)
					dest := out.delta[idx(i, j, f)*a.Sigma+sym]
					ai.Each(func(ip int) {
						bj.Each(func(jp int) {
							dest.Set(idx(ip, jp, nextFlag(i, j, f)))
						})
					})
				}
				if f == 0 && a.initial.Test(i) && b.initial.Test(j) {
					out.initial.Set(idx(i, j, 0))
				}
				if f == 0 && a.final.Test(i) {
					out.final.Set(idx(i, j, f))
				}
			}
		}
	}
	return out
}

// IsEmpty trims the automaton and reports whether its language is empty,
// which after trimming is exactly the case when no accepting state is
// left. Trim only keeps states
// that are both accessible and coaccessible, so a trimmed automaton with
// any states at all is guaranteed to have a live accepting state among
// them; an empty final set after trimming can only mean the canonical
// one-state empty automaton.
func (a *NBW) IsEmpty() bool {
	a.Trim()
	return a.final.IsEmpty()
}
