package ioformat

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"ecaverify/internal/automaton/drw"
	"ecaverify/internal/bitset"
	"ecaverify/internal/errs"
)

// ParseRabin reads a RABIN-format DRW from r.
func ParseRabin(r io.Reader) (*drw.DRW, error) {
	fs := newFieldScanner(r)

	header, err := fs.requireLine()
	if err != nil {
		return nil, err
	}
	tag, _, err := fs.requireToken(header)
	if err != nil {
		return nil, err
	}
	if tag != "RABIN" {
		return nil, fmt.Errorf("ioformat: expected RABIN header, got %q: %w", tag, errs.InputFormat)
	}

	n, err := readIntLine(fs)
	if err != nil {
		return nil, err
	}
	sigma, err := readIntLine(fs)
	if err != nil {
		return nil, err
	}

	delta := make([]int, n*sigma)
	for i := 0; i < n*sigma; i++ {
		line, err := fs.requireLine()
		if err != nil {
			return nil, err
		}
		from, symbol, to, err := parseTriple(line)
		if err != nil {
			return nil, err
		}
		if from < 1 || from > n || symbol < 1 || symbol > sigma || to < 1 || to > n {
			return nil, fmt.Errorf("ioformat: transition %d>%d>%d out of range: %w", from, symbol, to, errs.InputFormat)
		}
		delta[(from-1)*sigma+(symbol-1)] = to - 1
	}

	initLine, err := fs.requireLine()
	if err != nil {
		return nil, err
	}
	tok, _, err := fs.requireToken(initLine)
	if err != nil {
		return nil, err
	}
	q0, err := parseInt(tok)
	if err != nil {
		return nil, err
	}
	if q0 < 1 || q0 > n {
		return nil, fmt.Errorf("ioformat: initial state %d out of range [1,%d]: %w", q0, n, errs.InputFormat)
	}

	var pairs []drw.Pair
	for {
		line, ok := fs.nextLine()
		if !ok {
			break
		}
		fin, inf, err := splitPairLine(n, line)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, drw.Pair{Fin: fin, Inf: inf})
	}

	return drw.Construct(n, sigma, delta, q0-1, pairs), nil
}

func splitPairLine(n int, fields []string) (fin, inf *bitset.Set, err error) {
	sep := -1
	for i, tok := range fields {
		if tok == "|" {
			sep = i
			break
		}
	}
	if sep < 0 {
		return nil, nil, fmt.Errorf("ioformat: Rabin pair line missing '|' separator: %w", errs.InputFormat)
	}
	fin, err = oneBasedSet(n, fields[:sep])
	if err != nil {
		return nil, nil, err
	}
	inf, err = oneBasedSet(n, fields[sep+1:])
	if err != nil {
		return nil, nil, err
	}
	return fin, inf, nil
}

// WriteRabin writes d in RABIN format to w.
func WriteRabin(w io.Writer, d *drw.DRW) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "RABIN")
	fmt.Fprintln(bw, d.N)
	fmt.Fprintln(bw, d.Sigma)
	for s := 0; s < d.N; s++ {
		for sym := 0; sym < d.Sigma; sym++ {
			fmt.Fprintf(bw, "%d > %d > %d\n", s+1, sym+1, d.Step(s, sym)+1)
		}
	}
	fmt.Fprintln(bw, d.Initial()+1)
	for _, p := range d.Pairs {
		fmt.Fprintln(bw, oneBasedList(p.Fin)+" | "+oneBasedList(p.Inf))
	}
	return bw.Flush()
}

func oneBasedList(s *bitset.Set) string {
	var parts []string
	s.Each(func(i int) { parts = append(parts, fmt.Sprint(i+1)) })
	return strings.Join(parts, " ")
}
