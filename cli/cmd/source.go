package cmd

import (
	"context"
	"log/slog"
	"os"
	"slices"

	"github.com/ardnew/ntro/dotenv"
	"github.com/ardnew/ntro/log"
	"github.com/ardnew/ntro/pkg"
)

// DefaultSource is read when neither the arguments nor [pkg.SourcesEnv]
// name a source.
const DefaultSource = ".env"

// sourcePaths returns the sources named by args followed by those listed in
// [pkg.SourcesEnv], or [DefaultSource] if there are none.
func sourcePaths(args []string) []string {
	paths := pkg.SourceList(os.Getenv(pkg.SourcesEnv), args...)
	if len(paths) == 0 {
		return []string{DefaultSource}
	}

	return paths
}

// readDocuments parses each source of paths in order. Sources that cannot
// be read are logged with [dotenv.ErrMissingSource] and skipped, as are
// repeated names of a file already read.
func readDocuments(ctx context.Context, paths []string) ([]dotenv.Document, error) {
	docs := make([]dotenv.Document, 0, len(paths))
	seen := make([]os.FileInfo, 0, len(paths))

	for _, path := range paths {
		info, err := os.Stat(path)
		if err == nil && slices.ContainsFunc(seen, func(fi os.FileInfo) bool {
			return os.SameFile(fi, info)
		}) {
			log.DebugContext(ctx, "skipping repeated source", slog.String("path", path))

			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			log.WarnContext(ctx, "skipping source",
				slog.Any("error", dotenv.ErrMissingSource.Wrap(err).
					With(slog.String("path", path))))

			continue
		}

		seen = append(seen, info)
		doc := dotenv.ParseDocument(path, string(data))
		docs = append(docs, doc)

		log.TraceContext(ctx, "read source",
			slog.String("path", path),
			slog.Int("variables", len(doc.Variables)))
	}

	if len(docs) == 0 {
		return nil, pkg.ErrNoSources.Wrapf("%q", paths)
	}

	return docs, nil
}
