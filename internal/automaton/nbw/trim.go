package nbw

import "ecaverify/internal/bitset"

// Trim restricts the automaton to Accessible ∩ Coaccessible, renumbering
// states densely and rebuilding delta, I, F, and the cache. If the
// result is empty it collapses to the canonical one-state empty
// automaton. Idempotent; returns the number of states removed.
func (a *NBW) Trim() int {
	keep := bitset.And(a.Accessible(), a.Coaccessible())
	oldN := a.N
	kept := keep.Slice()

	if len(kept) == 0 {
		removed := oldN - 1
		*a = *Empty(a.Sigma)
		a.trimmed = true
		return removed
	}

	oldToNew := make(map[int]int, len(kept))
	for newID, old := range kept {
		oldToNew[old] = newID
	}
	newN := len(kept)

	newDelta := make([]*bitset.Set, newN*a.Sigma)
	for i := range newDelta {
		newDelta[i] = bitset.New(newN)
	}
	for newFrom, old := range kept {
		for sym := 0; sym < a.Sigma; sym++ {
			a.delta01(old, sym).Each(func(oldTo int) {
				if newTo, ok := oldToNew[oldTo]; ok {
					newDelta[newFrom*a.Sigma+sym].Set(newTo)
				}
			})
		}
	}

	newInitial := bitset.New(newN)
	a.initial.Each(func(old int) {
		if newID, ok := oldToNew[old]; ok {
			newInitial.Set(newID)
		}
	})
	newFinal := bitset.New(newN)
	a.final.Each(func(old int) {
		if newID, ok := oldToNew[old]; ok {
			newFinal.Set(newID)
		}
	})

	a.N = newN
	a.delta = newDelta
	a.initial = newInitial
	a.final = newFinal
	a.trimmed = true
	a.StateLabels = nil // indices no longer correspond
	if a.useCache {
		a.EnableCache(a.cacheLimit)
	}
	return oldN - newN
}
