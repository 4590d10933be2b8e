package logic

import (
	"fmt"

	"ecaverify/internal/automaton/complement"
	"ecaverify/internal/automaton/determinize"
	"ecaverify/internal/automaton/nbw"
	"ecaverify/internal/bitset"
	"ecaverify/internal/errs"
)

// Compile implements spec.md §4.5 exactly: a per-conjunct base
// automaton over alphabet 2^k, a sink on any illegal next-slice, a
// permanently-satisfied bit per negative literal, the quantifier prefix
// applied innermost to outermost via project/complement, and an outer
// disjunction via repeated disjoint sum.
func Compile(f *Formula) (*nbw.NBW, error) {
	if f.Boundary == ZETA {
		for _, q := range f.Prefix {
			if q.Negated {
				return nil, fmt.Errorf("logic: ZETA boundary with a negated quantifier: %w", errs.Unsupported)
			}
		}
	}

	varIndex := map[string]int{}
	for i, q := range f.Prefix {
		varIndex[q.Var] = i
	}
	k := len(f.Prefix)

	var disjuncts []*nbw.NBW
	for _, c := range f.Conjuncts {
		a, err := compileConjunction(c, k, varIndex, f.Boundary)
		if err != nil {
			return nil, err
		}
		disjuncts = append(disjuncts, a)
	}

	body := disjuncts[0]
	for _, d := range disjuncts[1:] {
		body = nbw.DisjointSum(body, d)
	}
	body.Trim()

	for i := len(f.Prefix) - 1; i >= 0; i-- {
		q := f.Prefix[i]
		var err error
		body, err = applyQuantifier(body, q, varIndex[q.Var])
		if err != nil {
			return nil, err
		}
		body.Trim()
	}

	if f.OuterNegated {
		out, err := complement.Complement(body, determinize.Options{})
		if err != nil {
			return nil, err
		}
		body = out
		body.Trim()
	}

	return body, nil
}

// applyQuantifier eliminates q's variable, applying a leading negation
// as an outer complement on the *dual* quantifier's construction:
// ¬∃x φ = complement(project(φ, x)), and ¬∀x φ = project(complement(φ), x)
// (spec.md §4.5; _examples/original_source/buchi_gen.cpp:269-296 compiles
// ~Ex as project-then-negate and ~Ax as negate-then-project).
func applyQuantifier(body *nbw.NBW, q *Quantifier, track int) (*nbw.NBW, error) {
	switch {
	case q.Negated && !q.Universal():
		projected := body.Clone()
		projected.Project(track)
		return complement.Complement(projected, determinize.Options{})
	case q.Negated && q.Universal():
		negated, err := complement.Complement(body, determinize.Options{})
		if err != nil {
			return nil, err
		}
		negated.Project(track)
		return negated, nil
	case !q.Universal():
		body = body.Clone()
		body.Project(track)
		return body, nil
	default:
		negated, err := complement.Complement(body, determinize.Options{})
		if err != nil {
			return nil, err
		}
		negated.Project(track)
		return complement.Complement(negated, determinize.Options{})
	}
}

// conjunctionState encodes the per-conjunct automaton's state: the
// previous slice x, the current slice y (each a k-bit tuple, one bit per
// track), and satBits, a bit per negative literal that is set once that
// literal's body has become permanently satisfied.
type conjunctionState struct {
	x, y, sat int
}

func compileConjunction(c *Conjunction, k int, varIndex map[string]int, boundary Boundary) (*nbw.NBW, error) {
	type check struct {
		from, to int
		rule     Rule
		negated  bool
		negIdx   int // index into satBits, valid only when negated
	}

	var checks []check
	numNeg := 0
	for _, lit := range c.Literals {
		var from, to string
		var rule Rule
		switch {
		case lit.Transition != nil:
			from, to, rule = lit.Transition.From, lit.Transition.To, Rule(lit.Transition.Rule)
		case lit.Equality != nil:
			from, to, rule = lit.Equality.Left, lit.Equality.Right, EqualityRule
		default:
			return nil, fmt.Errorf("logic: empty literal: %w", errs.InputFormat)
		}
		fi, ok := varIndex[from]
		if !ok {
			return nil, fmt.Errorf("logic: unbound variable %q: %w", from, errs.InputFormat)
		}
		ti, ok := varIndex[to]
		if !ok {
			return nil, fmt.Errorf("logic: unbound variable %q: %w", to, errs.InputFormat)
		}
		ch := check{from: fi, to: ti, rule: rule, negated: lit.Negated}
		if lit.Negated {
			ch.negIdx = numNeg
			numNeg++
		}
		checks = append(checks, ch)
	}

	width := 1 << uint(k)
	satWidth := 1 << uint(numNeg)
	fullSat := satWidth - 1
	n := width*width*satWidth + 2 // +1 for the sink, +1 for the OMEGA start state
	sigma := width
	sinkIdx := n - 1
	startIdx := n - 2

	idx := func(s conjunctionState) int {
		return (s.x*width+s.y)*satWidth + s.sat
	}

	var edges []nbw.Edge
	initial := bitset.New(n)
	final := bitset.New(n)

	for x := 0; x < width; x++ {
		for y := 0; y < width; y++ {
			for sat := 0; sat < satWidth; sat++ {
				from := conjunctionState{x, y, sat}
				for z := 0; z < width; z++ {
					legal := true
					newSat := sat
					for _, ch := range checks {
						xi := (x >> uint(ch.from)) & 1
						yi := (y >> uint(ch.from)) & 1
						zi := (z >> uint(ch.from)) & 1
						yj := (y >> uint(ch.to)) & 1
						holds := ch.rule.Bit(4*xi+2*yi+zi) == (yj == 1)
						if ch.negated {
							if !holds {
								newSat |= 1 << uint(ch.negIdx)
							}
						} else if !holds {
							legal = false
						}
					}
					to := conjunctionState{y, z, newSat}
					dest := idx(to)
					if !legal {
						dest = sinkIdx
					}
					edges = append(edges, nbw.Edge{From: idx(from), Symbol: z, To: dest})
				}
			}
		}
	}
	for z := 0; z < sigma; z++ {
		edges = append(edges, nbw.Edge{From: sinkIdx, Symbol: z, To: sinkIdx})
	}

	switch boundary {
	case OMEGA:
		// The start state reads the first slice into y, with x = 0.
		initial.Set(startIdx)
		for y := 0; y < width; y++ {
			edges = append(edges, nbw.Edge{From: startIdx, Symbol: y, To: idx(conjunctionState{0, y, 0})})
		}
	case ZETA:
		for x := 0; x < width; x++ {
			for y := 0; y < width; y++ {
				initial.Set(idx(conjunctionState{x, y, 0}))
			}
		}
	}

	for x := 0; x < width; x++ {
		for y := 0; y < width; y++ {
			final.Set(idx(conjunctionState{x, y, fullSat}))
		}
	}

	return nbw.Construct(n, sigma, edges, initial, final), nil
}
