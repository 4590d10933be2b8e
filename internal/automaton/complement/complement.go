// Package complement provides the one NBW-to-NBW operation that must sit
// above both nbw and determinize: Complement = trim, determinize, Rabin
// complement, trim. It exists as its own package, rather than a method
// on *nbw.NBW, because nbw cannot import determinize (which itself
// imports nbw and safra) without a cycle.
package complement

import (
	"ecaverify/internal/automaton/determinize"
	"ecaverify/internal/automaton/nbw"
	"ecaverify/internal/automaton/rabin"
)

// Complement returns an NBW recognizing the complement of a's language,
// via NBW →(trim)→ DRW →(complement)→ NBW, per spec.md §2 item 6 and
// §9's data-flow note ("Complement internally goes NBW →(trim)→ DRW
// →(complement)→ NBW").
func Complement(a *nbw.NBW, opts determinize.Options) (*nbw.NBW, error) {
	trimmed := a.Clone()
	trimmed.Trim()

	d, _, err := determinize.Run(trimmed, opts)
	if err != nil {
		return nil, err
	}

	out := rabin.Complement(d)
	out.Trim()
	return out, nil
}
