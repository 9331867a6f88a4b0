package dotenv

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// ConflictError reports a key annotated with two different type hints.
// It matches [ErrConflict] with errors.Is.
type ConflictError struct {
	Key        string
	First      Provenance // annotation stored first
	Second     Provenance // annotation that disagreed with it
	FirstHint  Hint
	SecondHint Hint
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s is %s at %s but %s at %s",
		ErrConflict.msg, e.Key,
		e.FirstHint, e.First,
		e.SecondHint, e.Second,
	)
}

// Is makes every ConflictError match [ErrConflict].
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// LogValue implements slog.LogValuer.
func (e *ConflictError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrConflict.msg),
		slog.String("key", e.Key),
		slog.String("first", e.First.String()),
		slog.String("first_type", e.FirstHint.String()),
		slog.String("second", e.Second.String()),
		slog.String("second_type", e.SecondHint.String()),
	)
}

// Report renders the conflict as a unified diff between the two annotated
// declarations, headed by their locations.
func (e *ConflictError) Report() string {
	decl := func(h Hint) []string {
		return difflib.SplitLines("# @type " + h.String() + "\n" + e.Key + "=\n")
	}

	diff := difflib.UnifiedDiff{
		A:        decl(e.FirstHint),
		B:        decl(e.SecondHint),
		FromFile: e.First.String(),
		ToFile:   e.Second.String(),
		Context:  1,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return e.Error()
	}

	return text
}

// Conflicts is the list of conflicts found by [Merge] with
// [WithAllConflicts].
type Conflicts []*ConflictError

// Error implements the error interface.
func (c Conflicts) Error() string {
	msgs := make([]string, len(c))
	for i, e := range c {
		msgs[i] = e.Error()
	}

	return strings.Join(msgs, "\n")
}

// Unwrap returns the individual conflicts for errors.Is/As.
func (c Conflicts) Unwrap() []error {
	errs := make([]error, len(c))
	for i, e := range c {
		errs[i] = e
	}

	return errs
}

// Report concatenates the reports of all conflicts.
func (c Conflicts) Report() string {
	var sb strings.Builder

	for _, e := range c {
		sb.WriteString(e.Report())
	}

	return sb.String()
}
