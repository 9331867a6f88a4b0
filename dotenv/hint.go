package dotenv

import (
	"slices"
	"strings"
)

// HintKind is the variant of a [Hint].
type HintKind int

const (
	HintString  HintKind = iota // string
	HintNumber                  // number
	HintBoolean                 // boolean
	HintUnion                   // union
)

// Hint is the parsed form of a type annotation: one of the primitive types
// or a union of string literals.
//
// The zero value is the string hint. Hints are immutable; a union hint
// always holds at least one literal.
type Hint struct {
	kind     HintKind
	literals []string
}

// StringHint returns the string primitive hint.
func StringHint() Hint { return Hint{kind: HintString} }

// NumberHint returns the number primitive hint.
func NumberHint() Hint { return Hint{kind: HintNumber} }

// BooleanHint returns the boolean primitive hint.
func BooleanHint() Hint { return Hint{kind: HintBoolean} }

// UnionHint returns a union of the given literals. Duplicate literals are
// dropped, keeping the first occurrence, so the result preserves first-seen
// order. It returns [ErrEmptyUnion] if no literals are given.
func UnionHint(literals ...string) (Hint, error) {
	if len(literals) == 0 {
		return Hint{}, ErrEmptyUnion
	}

	uniq := make([]string, 0, len(literals))
	for _, lit := range literals {
		if !slices.Contains(uniq, lit) {
			uniq = append(uniq, lit)
		}
	}

	return Hint{kind: HintUnion, literals: uniq}, nil
}

// Kind returns the variant of h.
func (h Hint) Kind() HintKind { return h.kind }

// Literals returns a copy of the literals of a union hint, or nil for
// primitive hints.
func (h Hint) Literals() []string { return slices.Clone(h.literals) }

// Equal reports whether h and o are the same variant and, for unions, hold
// the same literals in the same order.
func (h Hint) Equal(o Hint) bool {
	return h.kind == o.kind && slices.Equal(h.literals, o.literals)
}

// String formats h the way it is written in an annotation, without the
// leading "@type" keyword.
func (h Hint) String() string {
	if h.kind != HintUnion {
		return h.kind.String()
	}

	quoted := make([]string, len(h.literals))
	for i, lit := range h.literals {
		quoted[i] = "'" + lit + "'"
	}

	return strings.Join(quoted, " | ")
}

// Annotation is a type hint together with the zero-based index of the
// comment line it was parsed from.
type Annotation struct {
	Hint Hint
	Line int
}
