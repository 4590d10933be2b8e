// Package ioformat implements the text serialization formats of
// spec.md §6: BUECHI/BUCHI (NBW), RABIN (DRW), and the alternate GASt
// NBW format. Grounded on _examples/original_source/NBW.cpp's
// parse/to_string pair and, for line-oriented reading, on
// _examples/CyberCzar01-LABS_4/cmd/labyrinth/main.go's script-file
// loading; uses plain bufio/strconv, per SPEC_FULL.md §2 item 13 (no
// third-party parser library in the retrieved corpus targets this kind
// of fixed positional text format).
package ioformat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ecaverify/internal/automaton/nbw"
	"ecaverify/internal/bitset"
	"ecaverify/internal/errs"
)

// fieldScanner reads whitespace-delimited fields from r line by line,
// skipping lines whose first non-blank character is '#'; blank lines are
// returned as zero-field lines.
type fieldScanner struct {
	sc     *bufio.Scanner
	fields []string
	pos    int
}

func newFieldScanner(r io.Reader) *fieldScanner {
	return &fieldScanner{sc: bufio.NewScanner(r)}
}

// nextLine returns the fields of the next non-comment line. A blank
// line is a valid zero-field line (e.g. an empty initial- or
// accepting-state set), not a separator to be skipped; only '#'-prefixed
// comment lines, per spec.md §6, are skipped.
func (f *fieldScanner) nextLine() ([]string, bool) {
	for f.sc.Scan() {
		line := strings.TrimSpace(f.sc.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		return strings.Fields(line), true
	}
	return nil, false
}

func (f *fieldScanner) requireLine() ([]string, error) {
	fields, ok := f.nextLine()
	if !ok {
		return nil, fmt.Errorf("ioformat: unexpected end of input: %w", errs.InputFormat)
	}
	return fields, nil
}

func (f *fieldScanner) requireToken(line []string) (string, []string, error) {
	if len(line) == 0 {
		return "", nil, fmt.Errorf("ioformat: expected a token, found end of line: %w", errs.InputFormat)
	}
	return line[0], line[1:], nil
}

func parseInt(tok string) (int, error) {
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("ioformat: %q is not an integer: %w", tok, errs.InputFormat)
	}
	return v, nil
}

// ParseBuechi reads a BUECHI/BUCHI-format NBW from r.
func ParseBuechi(r io.Reader) (*nbw.NBW, error) {
	fs := newFieldScanner(r)

	header, err := fs.requireLine()
	if err != nil {
		return nil, err
	}
	tag, _, err := fs.requireToken(header)
	if err != nil {
		return nil, err
	}
	if tag != "BUECHI" && tag != "BUCHI" {
		return nil, fmt.Errorf("ioformat: expected BUECHI/BUCHI header, got %q: %w", tag, errs.InputFormat)
	}

	n, err := readIntLine(fs)
	if err != nil {
		return nil, err
	}
	sigma, err := readIntLine(fs)
	if err != nil {
		return nil, err
	}
	m, err := readIntLine(fs)
	if err != nil {
		return nil, err
	}

	var edges []nbw.Edge
	for i := 0; i < m; i++ {
		line, err := fs.requireLine()
		if err != nil {
			return nil, err
		}
		from, symbol, to, err := parseTriple(line)
		if err != nil {
			return nil, err
		}
		edges = append(edges, nbw.Edge{From: from - 1, Symbol: symbol - 1, To: to - 1})
	}

	initLine, err := fs.requireLine()
	if err != nil {
		return nil, err
	}
	initial, err := oneBasedSet(n, initLine)
	if err != nil {
		return nil, err
	}

	finalLine, err := fs.requireLine()
	if err != nil {
		return nil, err
	}
	final, err := oneBasedSet(n, finalLine)
	if err != nil {
		return nil, err
	}

	return nbw.Construct(n, sigma, edges, initial, final), nil
}

// parseTriple parses a "<from> > <symbol> > <to>" line, tolerating the
// literal '>' separators appearing as their own whitespace-delimited
// fields.
func parseTriple(fields []string) (from, symbol, to int, err error) {
	var nums []int
	for _, tok := range fields {
		if tok == ">" {
			continue
		}
		v, err := parseInt(tok)
		if err != nil {
			return 0, 0, 0, err
		}
		nums = append(nums, v)
	}
	if len(nums) != 3 {
		return 0, 0, 0, fmt.Errorf("ioformat: expected a 3-field transition, got %d fields: %w", len(nums), errs.InputFormat)
	}
	return nums[0], nums[1], nums[2], nil
}

func readIntLine(fs *fieldScanner) (int, error) {
	line, err := fs.requireLine()
	if err != nil {
		return 0, err
	}
	tok, _, err := fs.requireToken(line)
	if err != nil {
		return 0, err
	}
	return parseInt(tok)
}

func oneBasedSet(n int, fields []string) (*bitset.Set, error) {
	s := bitset.New(n)
	for _, tok := range fields {
		v, err := parseInt(tok)
		if err != nil {
			return nil, err
		}
		if v < 1 || v > n {
			return nil, fmt.Errorf("ioformat: state index %d out of range [1,%d]: %w", v, n, errs.InputFormat)
		}
		s.Set(v - 1)
	}
	return s, nil
}

// WriteBuechi writes a in BUECHI format to w.
func WriteBuechi(w io.Writer, a *nbw.NBW) error {
	var edges []nbw.Edge
	for s := 0; s < a.N; s++ {
		for sym := 0; sym < a.Sigma; sym++ {
			a.Transition(bitset.FromSlice(a.N, []int{s}), sym).Each(func(t int) {
				edges = append(edges, nbw.Edge{From: s, Symbol: sym, To: t})
			})
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "BUECHI")
	fmt.Fprintln(bw, a.N)
	fmt.Fprintln(bw, a.Sigma)
	fmt.Fprintln(bw, len(edges))
	for _, e := range edges {
		fmt.Fprintf(bw, "%d > %d > %d\n", e.From+1, e.Symbol+1, e.To+1)
	}
	writeOneBasedSet(bw, a.Initial())
	writeOneBasedSet(bw, a.Final())
	return bw.Flush()
}

func writeOneBasedSet(w *bufio.Writer, s *bitset.Set) {
	first := true
	s.Each(func(i int) {
		if !first {
			fmt.Fprint(w, " ")
		}
		fmt.Fprint(w, i+1)
		first = false
	})
	fmt.Fprintln(w)
}
