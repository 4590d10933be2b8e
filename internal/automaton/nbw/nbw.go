// Package nbw implements nondeterministic Büchi automata over a finite
// integer alphabet: set-transition, accessibility/coaccessibility, trim,
// track projection, disjoint sum, product, and the two flavors of
// intersection discussed in SPEC_FULL.md §4.5.
package nbw

import (
	"fmt"

	"ecaverify/internal/bitset"
	"ecaverify/internal/errs"
)

// DefaultCacheStateLimit is the limit EnableCache uses when given a
// non-positive one: the transition cache (state-subset × symbol →
// state-subset) is only enabled for automata with at most that many
// states; see Transition and config.Config.CacheStateLimit.
const DefaultCacheStateLimit = 10

// Transition edge triple used by Construct, 0-based on both ends.
type Edge struct {
	From, Symbol, To int
}

// NBW is a nondeterministic Büchi automaton ⟨N, Σ, δ, I, F⟩.
type NBW struct {
	N     int
	Sigma int

	delta []*bitset.Set // delta[state*Sigma+symbol]

	initial *bitset.Set
	final   *bitset.Set

	trimmed bool

	useCache   bool
	cacheLimit int
	cache      map[string]*bitset.Set // key: subsetKey(states) + "|" + symbol

	// Annotation-only fields, never consulted by any automaton operation.
	Alphabet    string
	CharLabels  []string
	StateLabels []string
}

// Construct builds δ from a list of transition triples. Out-of-range
// indices are a precondition violation, per SPEC_FULL.md §7.
func Construct(n, sigma int, edges []Edge, initial, final *bitset.Set) *NBW {
	if n < 0 || sigma < 0 {
		errs.Precondition("nbw: negative size N=%d Sigma=%d", n, sigma)
	}
	a := &NBW{
		N:       n,
		Sigma:   sigma,
		delta:   make([]*bitset.Set, n*sigma),
		initial: initial.Clone(),
		final:   final.Clone(),
		trimmed: false,
	}
	for i := range a.delta {
		a.delta[i] = bitset.New(n)
	}
	for _, e := range edges {
		if e.From < 0 || e.From >= n || e.Symbol < 0 || e.Symbol >= sigma || e.To < 0 || e.To >= n {
			errs.Precondition("nbw: edge %+v out of range for N=%d Sigma=%d", e, n, sigma)
		}
		a.delta[e.From*sigma+e.Symbol].Set(e.To)
	}
	return a
}

// Empty returns the canonical one-state, non-accepting automaton used
// throughout the engine to represent an empty language (SPEC_FULL.md §7,
// EmptyAutomaton: "not an error").
func Empty(sigma int) *NBW {
	a := &NBW{
		N:       1,
		Sigma:   sigma,
		delta:   make([]*bitset.Set, sigma),
		initial: bitset.FromSlice(1, []int{0}),
		final:   bitset.New(1),
		trimmed: true,
	}
	for i := range a.delta {
		a.delta[i] = bitset.New(1)
	}
	return a
}

// Initial returns a copy of the initial state set.
func (a *NBW) Initial() *bitset.Set { return a.initial.Clone() }

// Final returns a copy of the accepting state set.
func (a *NBW) Final() *bitset.Set { return a.final.Clone() }

// Trimmed reports whether the automaton is known to contain only
// accessible-and-coaccessible states.
func (a *NBW) Trimmed() bool { return a.trimmed }

// EnableCache turns on the dense transition cache, described in
// SPEC_FULL.md §2 item 9, when a.N <= limit. It is a no-op (and leaves
// useCache false) for larger automata, per spec.md §4.1.
func (a *NBW) EnableCache(limit int) {
	if limit <= 0 {
		limit = DefaultCacheStateLimit
	}
	a.cacheLimit = limit
	if a.N <= limit {
		a.useCache = true
		a.rebuildCache()
	} else {
		a.useCache = false
		a.cache = nil
	}
}

// DisableCache turns the cache off and frees it.
func (a *NBW) DisableCache() {
	a.useCache = false
	a.cache = nil
}

func (a *NBW) String() string {
	return fmt.Sprintf("NBW{N=%d,Sigma=%d,I=%s,F=%s,trimmed=%v}", a.N, a.Sigma, a.initial, a.final, a.trimmed)
}

// Clone returns a deep copy of a, sharing no mutable state.
func (a *NBW) Clone() *NBW {
	out := &NBW{
		N:           a.N,
		Sigma:       a.Sigma,
		delta:       make([]*bitset.Set, len(a.delta)),
		initial:     a.initial.Clone(),
		final:       a.final.Clone(),
		trimmed:     a.trimmed,
		useCache:    false,
		cacheLimit:  a.cacheLimit,
		Alphabet:    a.Alphabet,
		CharLabels:  append([]string(nil), a.CharLabels...),
		StateLabels: append([]string(nil), a.StateLabels...),
	}
	for i, s := range a.delta {
		out.delta[i] = s.Clone()
	}
	if a.useCache {
		out.EnableCache(a.cacheLimit)
	}
	return out
}

// delta01 returns the successor set of a single state on a single
// symbol, used by the uncached transition path and by cache rebuilding.
func (a *NBW) delta01(state, symbol int) *bitset.Set {
	return a.delta[state*a.Sigma+symbol]
}
