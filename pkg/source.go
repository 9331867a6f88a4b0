package pkg

import (
	"os"
	"slices"
	"strings"

	"github.com/ardnew/mung"
)

// SourcesEnv names the environment variable holding a PATH-like list of
// default sources.
const SourcesEnv = "NTRO_SOURCES"

// SourceList combines the explicit sources args with the PATH-like list
// env. Explicit sources come first; empty and repeated items are dropped.
func SourceList(env string, args ...string) []string {
	delim := string(os.PathListSeparator)

	// Each prefix item is inserted at the front, so args are given last
	// to first to keep their order.
	prefix := slices.Clone(args)
	slices.Reverse(prefix)

	joined := mung.Make(
		mung.WithSubjectItems(env),
		mung.WithDelim(delim),
		mung.WithPrefixItems(prefix...),
	).String()

	var list []string

	for item := range strings.SplitSeq(joined, delim) {
		if item = strings.TrimSpace(item); item != "" && !slices.Contains(list, item) {
			list = append(list, item)
		}
	}

	return list
}
