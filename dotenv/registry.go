package dotenv

import (
	"fmt"
	"iter"
	"log/slog"
	"maps"
	"slices"
)

// Provenance locates a declaration or annotation in its source document.
type Provenance struct {
	Path string
	Line int // zero-based line index
}

// String formats p as "path:line" with a one-based line number.
func (p Provenance) String() string {
	return fmt.Sprintf("%s:%d", p.Path, p.Line+1)
}

// LogValue implements slog.LogValuer.
func (p Provenance) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", p.Path),
		slog.Int("line", p.Line+1),
	)
}

// Document is the list of variables extracted from one source.
type Document struct {
	Path      string
	Variables []Variable
}

// ParseDocument extracts the variables of text and records path as their
// provenance.
func ParseDocument(path, text string) Document {
	return Document{Path: path, Variables: Extract(text)}
}

// Entry is the resolved record of one key in a [Registry].
type Entry struct {
	Key string
	// Hint is the agreed type hint, or nil if no document annotated the key.
	Hint *Hint
	// HintSource locates the annotation that first supplied Hint.
	HintSource Provenance
	// Declared locates the declaration of the last document declaring Key.
	Declared Provenance
}

// IsPublic reports whether the entry key starts with [PublicPrefix].
func (e Entry) IsPublic() bool {
	return Variable{Key: e.Key}.IsPublic()
}

// Registry is the deduplicated, conflict-checked set of variables of all
// merged documents. Iteration is always in ascending key order.
type Registry struct {
	entries map[string]Entry
}

// Len returns the number of keys in r.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}

	return len(r.entries)
}

// Get returns the entry stored for key.
func (r *Registry) Get(key string) (Entry, bool) {
	if r == nil {
		return Entry{}, false
	}

	e, ok := r.entries[key]

	return e, ok
}

// Keys returns all keys in ascending order.
func (r *Registry) Keys() []string {
	if r == nil {
		return nil
	}

	return slices.Sorted(maps.Keys(r.entries))
}

// All returns an iterator over all entries in ascending key order.
func (r *Registry) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, key := range r.Keys() {
			if !yield(r.entries[key]) {
				return
			}
		}
	}
}

// Public returns the entries c classifies as public, in ascending key order.
func (r *Registry) Public(c Classifier) []Entry {
	return r.filter(func(e Entry) bool { return c.IsPublic(e.Key) })
}

// Private returns the entries c does not classify as public, in ascending
// key order.
func (r *Registry) Private(c Classifier) []Entry {
	return r.filter(func(e Entry) bool { return !c.IsPublic(e.Key) })
}

func (r *Registry) filter(keep func(Entry) bool) []Entry {
	var out []Entry

	for e := range r.All() {
		if keep(e) {
			out = append(out, e)
		}
	}

	return out
}

// MergeOption configures [Merge].
type MergeOption func(mergeConfig) mergeConfig

type mergeConfig struct {
	allConflicts bool
	ignoreHints  bool
}

// WithAllConflicts makes [Merge] keep going after the first conflict and
// report every conflict it finds as [Conflicts].
func WithAllConflicts() MergeOption {
	return func(c mergeConfig) mergeConfig {
		c.allConflicts = true

		return c
	}
}

// WithoutHints makes [Merge] discard all type hints, so it cannot fail.
func WithoutHints() MergeOption {
	return func(c mergeConfig) mergeConfig {
		c.ignoreHints = true

		return c
	}
}

// Merge folds the variables of docs, in order, into one [Registry].
//
// When a key is declared again, the later declaration replaces the stored
// one. If only one of the two declarations is annotated, its hint is kept.
// If both are annotated with hints that are not [Hint.Equal], Merge stops
// with a [*ConflictError] citing both annotations, earlier document first.
// No registry is returned on conflict.
func Merge(docs []Document, opts ...MergeOption) (*Registry, error) {
	var cfg mergeConfig
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	reg := &Registry{entries: make(map[string]Entry)}

	var conflicts Conflicts

	for _, doc := range docs {
		for _, v := range doc.Variables {
			incoming := Entry{
				Key:      v.Key,
				Declared: Provenance{Path: doc.Path, Line: v.Line},
			}

			if v.Annotation != nil && !cfg.ignoreHints {
				hint := v.Annotation.Hint
				incoming.Hint = &hint
				incoming.HintSource = Provenance{
					Path: doc.Path,
					Line: v.Annotation.Line,
				}
			}

			stored, exists := reg.entries[v.Key]

			switch {
			case !exists:
				reg.entries[v.Key] = incoming

			case stored.Hint == nil || incoming.Hint == nil:
				if incoming.Hint == nil {
					incoming.Hint = stored.Hint
					incoming.HintSource = stored.HintSource
				}

				reg.entries[v.Key] = incoming

			case !stored.Hint.Equal(*incoming.Hint):
				conflict := &ConflictError{
					Key:        v.Key,
					First:      stored.HintSource,
					Second:     incoming.HintSource,
					FirstHint:  *stored.Hint,
					SecondHint: *incoming.Hint,
				}

				if !cfg.allConflicts {
					return nil, conflict
				}

				conflicts = append(conflicts, conflict)

			default:
				stored.Declared = incoming.Declared
				reg.entries[v.Key] = stored
			}
		}
	}

	if len(conflicts) > 0 {
		return nil, conflicts
	}

	return reg, nil
}

// MergeKeys merges docs ignoring all type hints. The result lists every
// declared key and is what the hint-agnostic declaration output is built
// from, so it is available even when [Merge] reports a conflict.
func MergeKeys(docs []Document) *Registry {
	reg, _ := Merge(docs, WithoutHints())

	return reg
}
