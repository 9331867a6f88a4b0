package dotenv

import (
	"iter"
	"strings"
)

// PublicPrefix is the key prefix of variables exposed to client code.
const PublicPrefix = "NEXT_PUBLIC_"

// Variable is a declaration found in a dotenv document.
type Variable struct {
	// Key is the text before the first '=', trimmed. It is never empty.
	Key string
	// Annotation is the parsed type hint of the comment immediately preceding
	// the declaration, or nil if there was none or it failed to parse.
	Annotation *Annotation
	// Line is the zero-based index of the declaration line.
	Line int
}

// IsPublic reports whether v is visible to client code, i.e. its key starts
// with [PublicPrefix].
func (v Variable) IsPublic() bool {
	return strings.HasPrefix(v.Key, PublicPrefix)
}

// lineKind distinguishes the two line shapes that matter to [Extract].
type lineKind int

const (
	lineComment lineKind = iota
	lineDeclaration
)

// line is a comment or declaration line of a document. Every other line is
// dropped before pairing.
type line struct {
	kind  lineKind
	text  string // comment text, or the declared key
	index int
}

// Extract returns the variables declared in a dotenv document, in source
// order.
//
// A variable takes its type hint from the nearest comment line preceding it,
// provided no other declaration comes between them. Lines that are neither
// comments nor declarations (blank or malformed lines) are ignored and do not
// separate a comment from its declaration. Values are never interpreted.
func Extract(text string) []Variable {
	var (
		vars    []Variable
		pending *line // nearest comment not yet paired
	)

	for ln := range scanLines(text) {
		switch ln.kind {
		case lineComment:
			pending = &ln

		case lineDeclaration:
			v := Variable{Key: ln.text, Line: ln.index}

			if pending != nil {
				if hint, ok := HintOf(pending.text); ok {
					v.Annotation = &Annotation{Hint: hint, Line: pending.index}
				}

				pending = nil
			}

			vars = append(vars, v)
		}
	}

	return vars
}

// scanLines yields the comment and declaration lines of text.
func scanLines(text string) iter.Seq[line] {
	return func(yield func(line) bool) {
		index := 0

		for raw := range strings.Lines(text) {
			raw = strings.TrimRight(raw, "\r\n")

			ln, ok := parseLine(raw, index)
			index++

			if ok && !yield(ln) {
				return
			}
		}
	}
}

func parseLine(raw string, index int) (line, bool) {
	if strings.HasPrefix(raw, "#") {
		return line{kind: lineComment, text: raw, index: index}, true
	}

	key, _, found := strings.Cut(raw, "=")
	if !found {
		return line{}, false
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return line{}, false
	}

	return line{kind: lineDeclaration, text: key, index: index}, true
}
