// Package logic is the formula front end: parsing a quantified ECA
// formula and compiling it to an NBW, per spec.md §4.5.
//
// The distilled spec treats this front end as an external collaborator
// and excludes its design weight from scope; SPEC_FULL.md §4.6 reinstates
// it as a concrete package modeled directly on
// _examples/CyberCzar01-LABS_4/internal/interpreter/parser.go's
// struct-tag participle grammar.
package logic

// Boundary selects the orbit shape a formula is evaluated over.
type Boundary int

const (
	// OMEGA is the one-way-infinite orbit: the first slice is read into
	// y with x = 0.
	OMEGA Boundary = iota
	// ZETA is the two-way-infinite orbit: every (x, y) pair is initial.
	ZETA
)

// Rule is an 8-bit elementary-cellular-automaton rule number: bit
// 4*x+2*y+z gives the next value of a cell whose neighborhood triple is
// (x, y, z).
type Rule uint8

// Bit reports the output of the rule for neighborhood index idx (0..7).
func (r Rule) Bit(idx int) bool { return (r>>uint(idx))&1 == 1 }

// EqualityRule is the rule number equality literals compile to; rule 204
// is the identity rule (next = current), matching spec.md §4.5's "(vᵢ =
// vⱼ), treated identically with r = 204".
const EqualityRule Rule = 204

// Transition is a literal vᵢ →_r vⱼ: track i's current triple drives
// track j's next value under rule r.
type Transition struct {
	From string `parser:"@Ident '-' '>' '['"`
	Rule int    `parser:"@Int ']'"`
	To   string `parser:"@Ident"`
}

// Equality is a literal vᵢ = vⱼ, compiled as Transition{Rule:
// EqualityRule}.
type Equality struct {
	Left  string `parser:"@Ident '='"`
	Right string `parser:"@Ident"`
}

// Literal is one conjunct member: a transition or an equality, optionally
// negated.
type Literal struct {
	Negated    bool        `parser:"@'!'?"`
	Transition *Transition `parser:"( @@"`
	Equality   *Equality   `parser:"| @@ )"`
}

// Conjunction is a '&'-separated list of literals.
type Conjunction struct {
	Literals []*Literal `parser:"@@ ('&' @@)*"`
}

// Quantifier is one element of a formula's quantifier prefix. Negated
// negates the quantified subformula at this point in the prefix, i.e.
// "exists !x (...)" denotes ¬∃x.(...) applied before any enclosing
// quantifiers.
type Quantifier struct {
	Kind    string `parser:"@('forall'|'exists')"`
	Negated bool   `parser:"@'!'?"`
	Var     string `parser:"@Ident"`
}

// Universal reports whether this is a forall quantifier.
func (q *Quantifier) Universal() bool { return q.Kind == "forall" }

// Formula is a quantifier prefix over a disjunction of conjunctions
// (spec.md §4.5), with an optional outer negation.
type Formula struct {
	OuterNegated bool           `parser:"@'!'?"`
	Prefix       []*Quantifier  `parser:"@@*"`
	Conjuncts    []*Conjunction `parser:"'(' @@ ('|' @@)* ')'"`

	// Boundary is not part of the grammar; callers set it explicitly
	// (SPEC_FULL.md §6: a CLI --boundary flag), since a formula's text
	// says nothing about which orbit shape it is checked against.
	Boundary Boundary
}
