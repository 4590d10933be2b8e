package determinize

import (
	"ecaverify/internal/automaton/drw"
	"ecaverify/internal/automaton/safra"
	"ecaverify/internal/bitset"
)

// buildDRW assembles the final DRW from the discovered transition rows
// and the Rabin acceptance extraction of spec.md §4.3.
func buildDRW(sigma int, trees []*safra.Tree, rows [][]int) *drw.DRW {
	n := len(trees)
	delta := make([]int, n*sigma)
	for s, row := range rows {
		for sym, next := range row {
			delta[s*sigma+sym] = next
		}
	}

	return drw.Construct(n, sigma, delta, 0, extractRabinPairs(trees))
}

// extractRabinPairs implements spec.md §4.3's "Rabin acceptance
// extraction" exactly: for every candidate name k in [1, 2N], Inf_k is
// the set of DRW states whose tree marked k on the transition that
// produced it, and Fin_k is the set of DRW states whose tree does not
// currently hold k as a live name. Pairs with an empty Inf_k are
// unsatisfiable and dropped by drw.Construct.
func extractRabinPairs(trees []*safra.Tree) []drw.Pair {
	if len(trees) == 0 {
		return nil
	}
	width := 2 * trees[0].NBWSize()
	n := len(trees)

	pairs := make([]drw.Pair, width)
	for k := 0; k < width; k++ {
		pairs[k] = drw.Pair{Fin: bitset.New(n), Inf: bitset.New(n)}
	}

	for s, tree := range trees {
		used := tree.UsedNames()
		marked := tree.MarkedNames()
		for k := 0; k < width; k++ {
			if marked.Test(k) {
				pairs[k].Inf.Set(s)
			}
			if !used.Test(k) {
				pairs[k].Fin.Set(s)
			}
		}
	}
	return pairs
}
