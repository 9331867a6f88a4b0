package browse

import (
	"github.com/ardnew/ntro/dotenv"
)

// Row is one registry entry as listed by the browser.
type Row struct {
	Key        string
	Hint       string // empty when no document annotated the key
	HintSource string
	Declared   string
	Conflict   string // empty unless the key has conflicting annotations
	Public     bool
}

// Rows lists the entries of reg in key order. Keys named by conflicts carry
// the conflict message; c classifies public keys (nil means the default
// prefix classifier).
func Rows(reg *dotenv.Registry, conflicts dotenv.Conflicts, c dotenv.Classifier) []Row {
	if c == nil {
		c = dotenv.DefaultClassifier
	}

	byKey := make(map[string]string, len(conflicts))
	for _, e := range conflicts {
		if _, ok := byKey[e.Key]; !ok {
			byKey[e.Key] = e.Error()
		}
	}

	rows := make([]Row, 0, reg.Len())

	for e := range reg.All() {
		r := Row{
			Key:      e.Key,
			Declared: e.Declared.String(),
			Conflict: byKey[e.Key],
			Public:   c.IsPublic(e.Key),
		}

		if e.Hint != nil {
			r.Hint = e.Hint.String()
			r.HintSource = e.HintSource.String()
		}

		rows = append(rows, r)
	}

	return rows
}

// source adapts a row list to [fuzzy.Source] over the keys.
type source []Row

func (s source) String(i int) string { return s[i].Key }

func (s source) Len() int { return len(s) }
