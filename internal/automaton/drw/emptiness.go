package drw

import "ecaverify/internal/bitset"

// IsEmpty reports whether the DRW's language is empty: no Rabin pair is
// satisfiable. Per spec.md §4.4/§8 property 7, a pair (Fin, Inf) is
// satisfiable iff, on the subgraph induced by V∖Fin, some SCC containing
// an Inf-state is nontrivial (size >= 2) or is a single vertex with a
// self-loop. The self-loop check here is a direct δ(s,a)==s test on the
// full alphabet, never folded into the SCC comparison, to avoid the
// assignment-for-equality hazard spec.md §9 flags in the original.
func (d *DRW) IsEmpty() bool {
	for _, pair := range d.Pairs {
		if d.pairSatisfiable(pair) {
			return false
		}
	}
	return true
}

func (d *DRW) pairSatisfiable(pair Pair) bool {
	live := make([]bool, d.N)
	for s := 0; s < d.N; s++ {
		live[s] = !pair.Fin.Test(s)
	}

	// Fast path: a live Inf-state with a self-loop on any symbol.
	for s := 0; s < d.N; s++ {
		if !live[s] || !pair.Inf.Test(s) {
			continue
		}
		for sym := 0; sym < d.Sigma; sym++ {
			if d.Step(s, sym) == s {
				return true
			}
		}
	}

	compOf, compSize := d.sccsOnLiveSubgraph(live)
	for s := 0; s < d.N; s++ {
		if live[s] && pair.Inf.Test(s) && compSize[compOf[s]] >= 2 {
			return true
		}
	}
	return false
}

// sccsOnLiveSubgraph runs Tarjan's algorithm, iteratively, restricted to
// the states with live[s] true and edges via δ over all symbols.
func (d *DRW) sccsOnLiveSubgraph(live []bool) (compOf []int, compSize []int) {
	const unvisited = -1
	index := make([]int, d.N)
	lowlink := make([]int, d.N)
	onStack := make([]bool, d.N)
	compOf = make([]int, d.N)
	for i := range index {
		index[i] = unvisited
		compOf[i] = unvisited
	}

	var stack []int
	nextIndex := 0
	nextComp := 0

	type frame struct {
		v    int
		syms []int
		i    int
	}

	successorsOf := func(v int) []int {
		seen := bitset.New(d.N)
		var out []int
		for sym := 0; sym < d.Sigma; sym++ {
			w := d.Step(v, sym)
			if live[w] && !seen.Test(w) {
				seen.Set(w)
				out = append(out, w)
			}
		}
		return out
	}

	for start := 0; start < d.N; start++ {
		if !live[start] || index[start] != unvisited {
			continue
		}

		callStack := []*frame{{v: start, syms: successorsOf(start)}}
		index[start] = nextIndex
		lowlink[start] = nextIndex
		nextIndex++
		stack = append(stack, start)
		onStack[start] = true

		for len(callStack) > 0 {
			top := callStack[len(callStack)-1]
			if top.i < len(top.syms) {
				w := top.syms[top.i]
				top.i++
				if index[w] == unvisited {
					index[w] = nextIndex
					lowlink[w] = nextIndex
					nextIndex++
					stack = append(stack, w)
					onStack[w] = true
					callStack = append(callStack, &frame{v: w, syms: successorsOf(w)})
				} else if onStack[w] {
					if index[w] < lowlink[top.v] {
						lowlink[top.v] = index[w]
					}
				}
				continue
			}

			callStack = callStack[:len(callStack)-1]
			if len(callStack) > 0 {
				parent := callStack[len(callStack)-1]
				if lowlink[top.v] < lowlink[parent.v] {
					lowlink[parent.v] = lowlink[top.v]
				}
			}

			if lowlink[top.v] == index[top.v] {
				size := 0
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					compOf[w] = nextComp
					size++
					if w == top.v {
						break
					}
				}
				compSize = append(compSize, size)
				nextComp++
			}
		}
	}

	return compOf, compSize
}
