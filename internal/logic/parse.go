package logic

import (
	"github.com/alecthomas/participle/v2"
)

var parser = participle.MustBuild[Formula]()

// Parse parses a formula of the shape
//
//	forall a exists b ( a -> [0] b & b -> [0] b )
//
// The Boundary field of the result is always OMEGA; callers that need
// ZETA must set it explicitly after parsing, per Formula's doc comment.
func Parse(src string) (*Formula, error) {
	return parser.ParseString("formula", src)
}
