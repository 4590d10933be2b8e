package ioformat

import (
	"bufio"
	"fmt"
	"io"

	"ecaverify/internal/automaton/nbw"
	"ecaverify/internal/bitset"
	"ecaverify/internal/errs"
)

// ParseGASt reads the alternate NBW format of spec.md §6: a state
// count, an alphabet string (one character per symbol), a single
// accepting state, then "<from> <char> <to>" transitions until EOF. The
// initial state defaults to 1.
func ParseGASt(r io.Reader) (*nbw.NBW, error) {
	fs := newFieldScanner(r)

	n, err := readIntLine(fs)
	if err != nil {
		return nil, err
	}

	alphaLine, err := fs.requireLine()
	if err != nil {
		return nil, err
	}
	alphaTok, _, err := fs.requireToken(alphaLine)
	if err != nil {
		return nil, err
	}
	charToSymbol := map[byte]int{}
	for i := 0; i < len(alphaTok); i++ {
		charToSymbol[alphaTok[i]] = i
	}
	sigma := len(alphaTok)

	acceptLine, err := fs.requireLine()
	if err != nil {
		return nil, err
	}
	acceptTok, _, err := fs.requireToken(acceptLine)
	if err != nil {
		return nil, err
	}
	acceptState, err := parseInt(acceptTok)
	if err != nil {
		return nil, err
	}
	if acceptState < 1 || acceptState > n {
		return nil, fmt.Errorf("ioformat: accepting state %d out of range [1,%d]: %w", acceptState, n, errs.InputFormat)
	}

	var edges []nbw.Edge
	for {
		line, ok := fs.nextLine()
		if !ok {
			break
		}
		if len(line) != 3 {
			return nil, fmt.Errorf("ioformat: expected \"<from> <char> <to>\", got %d fields: %w", len(line), errs.InputFormat)
		}
		from, err := parseInt(line[0])
		if err != nil {
			return nil, err
		}
		to, err := parseInt(line[2])
		if err != nil {
			return nil, err
		}
		if len(line[1]) != 1 {
			return nil, fmt.Errorf("ioformat: expected a single alphabet character, got %q: %w", line[1], errs.InputFormat)
		}
		sym, ok := charToSymbol[line[1][0]]
		if !ok {
			return nil, fmt.Errorf("ioformat: character %q is not in the declared alphabet %q: %w", line[1], alphaTok, errs.InputFormat)
		}
		if from < 1 || from > n || to < 1 || to > n {
			return nil, fmt.Errorf("ioformat: transition state out of range [1,%d]: %w", n, errs.InputFormat)
		}
		edges = append(edges, nbw.Edge{From: from - 1, Symbol: sym, To: to - 1})
	}

	initial := bitset.FromSlice(n, []int{0})
	final := bitset.FromSlice(n, []int{acceptState - 1})

	a := nbw.Construct(n, sigma, edges, initial, final)
	a.Alphabet = alphaTok
	return a, nil
}

// WriteGASt writes a in GASt format to w. a must have exactly one
// accepting state and an Alphabet string of length a.Sigma; callers
// without a natural alphabet string should use WriteBuechi instead.
func WriteGASt(w io.Writer, a *nbw.NBW) error {
	final := a.Final()
	if final.PopCount() != 1 {
		return fmt.Errorf("ioformat: GASt requires exactly one accepting state, got %d: %w", final.PopCount(), errs.Unsupported)
	}
	if len(a.Alphabet) != a.Sigma {
		return fmt.Errorf("ioformat: GASt requires an alphabet string of length %d, got %q: %w", a.Sigma, a.Alphabet, errs.Unsupported)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, a.N)
	fmt.Fprintln(bw, a.Alphabet)
	var acceptState int
	final.Each(func(i int) { acceptState = i })
	fmt.Fprintln(bw, acceptState+1)
	for s := 0; s < a.N; s++ {
		for sym := 0; sym < a.Sigma; sym++ {
			a.Transition(bitset.FromSlice(a.N, []int{s}), sym).Each(func(t int) {
				fmt.Fprintf(bw, "%d %c %d\n", s+1, a.Alphabet[sym], t+1)
			})
		}
	}
	return bw.Flush()
}
