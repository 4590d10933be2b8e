// Package determinize converts an NBW into a DRW via Safra's
// construction: BFS over Safra trees, the same worklist/canonical-map
// shape as _examples/CyberCzar01-LABS_4/LAB_2/regexlib/dfa.go's
// nfaToDFAcore and _examples/other_examples/jacoelho-xsd__determinize.go's
// determinize (state-set canonicalization by key, a queue of pending
// indices, an explicit state cap surfaced as a soft failure).
package determinize

import (
	"fmt"

	"ecaverify/internal/automaton/drw"
	"ecaverify/internal/automaton/nbw"
	"ecaverify/internal/automaton/safra"
	"ecaverify/internal/errs"
)

// ErrStateLimitExceeded is returned, wrapping errs.ResourceExhaustion,
// when the number of distinct Safra trees discovered exceeds
// Options.MaxStates. See SPEC_FULL.md §4 "progress callback and state
// cap".
var ErrStateLimitExceeded = fmt.Errorf("determinize: state limit exceeded: %w", errs.ResourceExhaustion)

// Options configures a single determinization run. The zero value runs
// with no cap, no progress reporting, and retains no trees.
type Options struct {
	// MaxStates caps the number of DRW states that may be discovered; 0
	// means unbounded.
	MaxStates int

	// OnStateDiscovered, if non-nil, is called once per newly discovered
	// DRW state, in discovery order.
	OnStateDiscovered func(index int, tree *safra.Tree)

	// SaveTrees retains every discovered Safra tree on the returned
	// Context, mirroring the save_tree_data flag of spec.md §6.
	SaveTrees bool
}

// Context is the per-run record returned by Run: when Options.SaveTrees
// is set it holds the retained-tree list. The canonical-tree map and the
// tree list used during the search are local variables of Run, and node
// names are tracked inside each tree, so no state outlives a call. A
// fresh Context is built for every Run call and never shared across
// calls.
type Context struct {
	Trees []*safra.Tree // populated only when Options.SaveTrees is true
}

// Run performs Safra's construction on a and returns the resulting DRW.
// a need not be trimmed first; the result mirrors exactly the automaton
// handed in.
func Run(a *nbw.NBW, opts Options) (*drw.DRW, *Context, error) {
	ctx := &Context{}

	initial := safra.BuildInitial(a)
	initial.Index = 0
	canon := map[string]int{initial.Key(): 0}
	trees := []*safra.Tree{initial}
	var rows [][]int // rows[i][sym] = destination DRW-state index
	queue := []int{0}

	if opts.SaveTrees {
		ctx.Trees = append(ctx.Trees, initial)
	}
	if opts.OnStateDiscovered != nil {
		opts.OnStateDiscovered(0, initial)
	}

	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		cur := trees[idx]

		row := make([]int, a.Sigma)
		for sym := 0; sym < a.Sigma; sym++ {
			next := safra.Transition(cur, a, sym)
			key := next.Key()
			nextIdx, ok := canon[key]
			if !ok {
				if opts.MaxStates > 0 && len(trees) >= opts.MaxStates {
					return nil, ctx, ErrStateLimitExceeded
				}
				nextIdx = len(trees)
				next.Index = nextIdx
				canon[key] = nextIdx
				trees = append(trees, next)
				queue = append(queue, nextIdx)
				if opts.SaveTrees {
					ctx.Trees = append(ctx.Trees, next)
				}
				if opts.OnStateDiscovered != nil {
					opts.OnStateDiscovered(nextIdx, next)
				}
			}
			row[sym] = nextIdx
		}
		growRows(&rows, idx)
		rows[idx] = row
	}

	return buildDRW(a.Sigma, trees, rows), ctx, nil
}

func growRows(rows *[][]int, idx int) {
	for len(*rows) <= idx {
		*rows = append(*rows, nil)
	}
}
