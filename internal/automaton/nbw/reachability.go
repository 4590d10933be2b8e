package nbw

import "ecaverify/internal/bitset"

// successors returns, for the underlying directed graph induced by delta
// (symbols erased), the set of states reachable in one step from s.
func (a *NBW) successors(s int) *bitset.Set {
	out := bitset.New(a.N)
	for sym := 0; sym < a.Sigma; sym++ {
		out.Union(a.delta01(s, sym))
	}
	return out
}

func (a *NBW) hasSelfLoop(s int) bool {
	for sym := 0; sym < a.Sigma; sym++ {
		if a.delta01(s, sym).Test(s) {
			return true
		}
	}
	return false
}

// Accessible returns the set of states reachable from I under any
// symbol.
func (a *NBW) Accessible() *bitset.Set {
	visited := a.Initial()
	queue := visited.Slice()
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		next := a.successors(s)
		var fresh []int
		next.Each(func(t int) {
			if !visited.Test(t) {
				visited.Set(t)
				fresh = append(fresh, t)
			}
		})
		queue = append(queue, fresh...)
	}
	return visited
}

// sccs computes the strongly connected components of the delta graph via
// Tarjan's algorithm. Returns a component id per state (0-based) and the
// size of each component, indexed by component id.
func (a *NBW) sccs() (compOf []int, compSize []int) {
	const unvisited = -1
	index := make([]int, a.N)
	lowlink := make([]int, a.N)
	onStack := make([]bool, a.N)
	compOf = make([]int, a.N)
	for i := range index {
		index[i] = unvisited
		compOf[i] = unvisited
	}
	var stack []int
	nextIndex := 0
	nextComp := 0

	type frame struct {
		v        int
		succIter []int
		i        int
	}
	var callStack []*frame

	for root := 0; root < a.N; root++ {
		if index[root] != unvisited {
			continue
		}
		callStack = append(callStack, &frame{v: root, succIter: a.successors(root).Slice()})
		index[root] = nextIndex
		lowlink[root] = nextIndex
		nextIndex++
		stack = append(stack, root)
		onStack[root] = true

		for len(callStack) > 0 {
			top := callStack[len(callStack)-1]
			if top.i < len(top.succIter) {
				w := top.succIter[top.i]
				top.i++
				if index[w] == unvisited {
					index[w] = nextIndex
					lowlink[w] = nextIndex
					nextIndex++
					stack = append(stack, w)
					onStack[w] = true
					callStack = append(callStack, &frame{v: w, succIter: a.successors(w).Slice()})
				} else if onStack[w] {
					if index[w] < lowlink[top.v] {
						lowlink[top.v] = index[w]
					}
				}
				continue
			}
			// done with top.v
			callStack = callStack[:len(callStack)-1]
			if len(callStack) > 0 {
				parent := callStack[len(callStack)-1]
				if lowlink[top.v] < lowlink[parent.v] {
					lowlink[parent.v] = lowlink[top.v]
				}
			}
			if lowlink[top.v] == index[top.v] {
				var size int
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

// Coaccessible returns the set of states that lie on some infinite path
// visiting the accepting set infinitely often: final states whose SCC is
// nontrivial (size >= 2, or size 1 with a self-loop), union the states
// that can reach one of those along delta.
func (a *NBW) Coaccessible() *bitset.Set {
	compOf, compSize := a.sccs()

	alive := bitset.New(a.N)
	a.final.Each(func(f int) {
		if compSize[compOf[f]] >= 2 || a.hasSelfLoop(f) {
			alive.Set(f)
		}
	})

	// Reverse BFS along delta from the alive set.
	predecessors := make([][]int, a.N)
	for s := 0; s < a.N; s++ {
		a.successors(s).Each(func(t int) {
			predecessors[t] = append(predecessors[t], s)
		})
	}

	reached := alive.Clone()
	queue := reached.Slice()
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		for _, s := range predecessors[t] {
			if !reached.Test(s) {
				reached.Set(s)
				queue = append(queue, s)
			}
		}
	}
	return reached
}
