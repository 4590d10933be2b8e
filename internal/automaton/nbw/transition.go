package nbw

import (
	"strconv"

	"ecaverify/internal/bitset"
	"ecaverify/internal/errs"
)

// Transition returns ⋃_{s∈states} δ(s, symbol). Deterministic, no side
// effects on a (other than lazily populating the cache). Served from the
// cache when enabled and a.N fits the configured limit.
func (a *NBW) Transition(states *bitset.Set, symbol int) *bitset.Set {
	if states.Len() != a.N {
		errs.Precondition("nbw: state set width %d does not match automaton size %d", states.Len(), a.N)
	}
	if symbol < 0 || symbol >= a.Sigma {
		errs.Precondition("nbw: symbol %d out of range for alphabet size %d", symbol, a.Sigma)
	}
	if a.useCache {
		return a.cachedTransition(states, symbol)
	}
	return a.rawTransition(states, symbol)
}

func (a *NBW) rawTransition(states *bitset.Set, symbol int) *bitset.Set {
	out := bitset.New(a.N)
	states.Each(func(s int) {
		out.Union(a.delta01(s, symbol))
	})
	return out
}

func (a *NBW) cacheKey(states *bitset.Set, symbol int) string {
	return states.Key() + "|" + strconv.Itoa(symbol)
}

func (a *NBW) cachedTransition(states *bitset.Set, symbol int) *bitset.Set {
	if a.cache == nil {
		a.rebuildCache()
	}
	k := a.cacheKey(states, symbol)
	if v, ok := a.cache[k]; ok {
		return v.Clone()
	}
	v := a.rawTransition(states, symbol)
	a.cache[k] = v
	return v.Clone()
}

// rebuildCache discards any cached entries. The cache is a pure function
// of delta and must be rebuilt (not patched) whenever delta is mutated by
// Project or Trim; see SPEC_FULL.md §9 "Caching policy".
func (a *NBW) rebuildCache() {
	a.cache = make(map[string]*bitset.Set)
}
