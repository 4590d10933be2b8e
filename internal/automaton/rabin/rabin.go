// Package rabin implements Rabin-to-Büchi complementation: given a DRW,
// produce an NBW recognizing the complement language, per spec.md §4.4.
//
// Grounded on _examples/original_source/ and on the subset-construction
// bookkeeping style of _examples/CyberCzar01-LABS_4/LAB_2/regexlib/dfa.go
// (canonical-map over explicit composite keys, explicit worklist).
package rabin

import (
	"ecaverify/internal/automaton/drw"
	"ecaverify/internal/automaton/nbw"
	"ecaverify/internal/bitset"
)

// state is one NBW state of the complement construction: either the
// initial part (tracking == false) carrying only the DRW state, or the
// tracking part carrying the DRW state plus the two bookkeeping bitsets
// over Rabin pairs, per spec.md §4.4.
type state struct {
	tracking bool
	drwState int
	s1, s2   *bitset.Set // nil when !tracking
}

func (st state) key() string {
	if !st.tracking {
		return "I" + itoa(st.drwState)
	}
	return "T" + itoa(st.drwState) + "|" + st.s1.Key() + "|" + st.s2.Key()
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Complement builds the NBW of spec.md §4.4's complement construction: a
// nondeterministic choice, on every symbol from every initial-part
// state, to either stay in the initial part or enter the tracking part;
// tracking states carry forward the per-pair "finite hit extinguishes
// infinite hit" bookkeeping rule, and accept when s2 is empty.
func Complement(d *drw.DRW) *nbw.NBW {
	npairs := len(d.Pairs)

	canon := map[string]int{}
	var states []state
	intern := func(st state) int {
		k := st.key()
		if idx, ok := canon[k]; ok {
			return idx
		}
		idx := len(states)
		canon[k] = idx
		states = append(states, st)
		return idx
	}

	initialState := state{tracking: false, drwState: d.Initial()}
	initIdx := intern(initialState)

	var edges []nbw.Edge
	finalSet := map[int]bool{}

	queue := []int{initIdx}
	visited := map[int]bool{initIdx: true}

	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		st := states[idx]

		for sym := 0; sym < d.Sigma; sym++ {
			q := d.Step(st.drwState, sym)

			// Stay in the initial part (only initial-part states may).
			if !st.tracking {
				stayIdx := intern(state{tracking: false, drwState: q})
				edges = append(edges, nbw.Edge{From: idx, Symbol: sym, To: stayIdx})
				if !visited[stayIdx] {
					visited[stayIdx] = true
					queue = append(queue, stayIdx)
				}
			}

			// Enter (or continue in) the tracking part.
			var s1, s2 *bitset.Set
			if st.tracking {
				s1, s2 = st.s1.Clone(), st.s2.Clone()
			} else {
				s1, s2 = bitset.New(npairs), bitset.New(npairs)
			}
			for i, pair := range d.Pairs {
				switch {
				case pair.Fin.Test(q):
					s1.Set(i)
				case pair.Inf.Test(q):
					s2.Set(i)
				}
			}
			if s2.IsSubsetOf(s1) {
				s1.Difference(s2)
				s2.ClearAll()
			}

			trackIdx := intern(state{tracking: true, drwState: q, s1: s1, s2: s2})
			edges = append(edges, nbw.Edge{From: idx, Symbol: sym, To: trackIdx})
			if !visited[trackIdx] {
				visited[trackIdx] = true
				queue = append(queue, trackIdx)
			}
			if s2.IsEmpty() {
				finalSet[trackIdx] = true
			}
		}
	}

	n := len(states)
	initial := bitset.New(n)
	initial.Set(initIdx)
	final := bitset.New(n)
	for idx := range finalSet {
		final.Set(idx)
	}

	return nbw.Construct(n, d.Sigma, edges, initial, final)
}
