package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/ntro/dotenv"
	"github.com/ardnew/ntro/log"
	"github.com/ardnew/ntro/node"
	"github.com/ardnew/ntro/watch"
)

// EnvAlias is the import alias mapped to the schema module in tsconfig.json.
const EnvAlias = "$env"

// Env generates the ambient declarations and the zod schema module from
// dotenv sources.
type Env struct {
	Sources      []string `arg:"" help:"Dotenv source files, read before those listed in $NTRO_SOURCES (.env if neither is given)" name:"source" optional:"" predictor:"file"`
	OutDir       string   `default:"."               help:"Output directory"                                           short:"o" type:"path" predictor:"dir"`
	Project      string   `default:"."               help:"Node.js project directory (package.json, tsconfig.json)"             type:"path" predictor:"dir"`
	Types        string   `default:"env.d.ts"        help:"Declaration file name"`
	Schema       string   `default:"env.ts"          help:"Schema module file name"`
	PublicPrefix string   `default:"${publicPrefix}" help:"Prefix of keys exposed to client code"`
	PublicExpr   string   `                          help:"Expression over key selecting client keys; overrides --public-prefix"`
	Format       bool     `default:"true"            help:"Format output with prettier"                                             negatable:""`
	Install      bool     `default:"true"            help:"Install zod if package.json lacks it"                                    negatable:""`
	TSConfig     bool     `default:"true"            help:"Map the $env import alias in tsconfig.json"           name:"tsconfig"     negatable:""`
	AllConflicts bool     `                          help:"Report every conflict instead of only the first"`
	Watch        bool     `                          help:"Regenerate whenever a source changes"                            short:"w"`
}

// Run executes the env command.
func (e *Env) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	c, err := classifier(e.PublicPrefix, e.PublicExpr)
	if err != nil {
		return err
	}

	paths := sourcePaths(e.Sources)

	log.DebugContext(ctx, "env start",
		slog.Any("sources", paths),
		slog.String("out_dir", e.OutDir),
		slog.Bool("watch", e.Watch))

	if !e.Watch {
		if err := e.generate(ctx, paths, c); err != nil {
			return err
		}

		e.setup(ctx)

		return nil
	}

	first := true

	return watch.Run(ctx, paths, func(ctx context.Context) error {
		err := e.generate(ctx, paths, c)
		if first {
			first = false
			e.setup(ctx)
		}

		return err
	})
}

// classifier returns the public key classifier selected by the flags: the
// expression if given, otherwise the prefix.
func classifier(prefix, expr string) (dotenv.Classifier, error) {
	if strings.TrimSpace(expr) != "" {
		return dotenv.ExprClassifier(expr)
	}

	if prefix == "" {
		return dotenv.DefaultClassifier, nil
	}

	return dotenv.PrefixClassifier(prefix), nil
}

// generate writes the declaration file, then the schema module. The
// declarations do not depend on type hints and are written even if the
// annotations conflict.
func (e *Env) generate(ctx context.Context, paths []string, c dotenv.Classifier) error {
	docs, err := readDocuments(ctx, paths)
	if err != nil {
		return err
	}

	var buf bytes.Buffer

	keys := dotenv.MergeKeys(docs)
	if err := dotenv.RenderDeclarations(&buf, keys); err != nil {
		return ErrRender.Wrap(err).With(slog.String("file", e.Types))
	}

	if err := e.write(ctx, e.Types, buf.Bytes()); err != nil {
		return err
	}

	var opts []dotenv.MergeOption
	if e.AllConflicts {
		opts = append(opts, dotenv.WithAllConflicts())
	}

	reg, err := dotenv.Merge(docs, opts...)
	if err != nil {
		report(stderr(ctx), err)

		return err
	}

	buf.Reset()

	if err := dotenv.RenderSchemaModule(&buf, reg, c); err != nil {
		return ErrRender.Wrap(err).With(slog.String("file", e.Schema))
	}

	if err := e.write(ctx, e.Schema, buf.Bytes()); err != nil {
		return err
	}

	log.InfoContext(ctx, "generated environment types",
		slog.Int("variables", reg.Len()),
		slog.Int("public", len(reg.Public(c))),
		slog.Int("sources", len(docs)))

	return nil
}

func (e *Env) write(ctx context.Context, name string, data []byte) error {
	return writeOutput(ctx, filepath.Join(e.OutDir, name), data, e.Project, e.Format)
}

// writeOutput writes data to path, creating its directory. If format is
// set, data is first formatted with prettier in the project directory; a
// formatter failure is logged and the unformatted text kept.
func writeOutput(ctx context.Context, path string, data []byte, project string, format bool) error {
	if format {
		formatted, err := node.Prettify(ctx, project, data, filepath.Base(path))
		if err == nil {
			data = formatted
		} else {
			log.WarnContext(ctx, "writing unformatted output",
				slog.String("path", path),
				slog.Any("error", err))
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("path", path))
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("path", path))
	}

	log.DebugContext(ctx, "wrote file",
		slog.String("path", path),
		slog.Int("bytes", len(data)))

	return nil
}

// setup prepares the Node.js project for the schema module: it installs
// the schema dependencies and maps [EnvAlias] in tsconfig.json. Failures
// are logged; a missing package.json or tsconfig.json skips the step.
func (e *Env) setup(ctx context.Context) {
	if e.Install {
		installed, err := node.Install(ctx, e.Project, dotenv.SchemaDependencies...)

		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.DebugContext(ctx, "no package.json, skipping install",
				slog.String("project", e.Project))

		case err != nil:
			log.WarnContext(ctx, "install failed", slog.Any("error", err))

		case len(installed) > 0:
			log.InfoContext(ctx, "installed dependencies", slog.Any("packages", installed))
		}
	}

	if e.TSConfig {
		target, err := e.schemaImport()
		if err == nil {
			err = node.AddPath(e.Project, EnvAlias, target)
		}

		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.DebugContext(ctx, "no tsconfig.json, skipping path alias",
				slog.String("project", e.Project))

		case err != nil:
			log.WarnContext(ctx, "tsconfig update failed", slog.Any("error", err))

		default:
			log.DebugContext(ctx, "mapped import alias",
				slog.String("alias", EnvAlias),
				slog.String("target", target))
		}
	}
}

// schemaImport returns the path of the schema module relative to the
// project, in the "./dir/file" form tsconfig.json expects.
func (e *Env) schemaImport() (string, error) {
	project, err := filepath.Abs(e.Project)
	if err != nil {
		return "", err
	}

	schema, err := filepath.Abs(filepath.Join(e.OutDir, e.Schema))
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(project, schema)
	if err != nil {
		return "", err
	}

	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, "../") {
		rel = "./" + rel
	}

	return rel, nil
}

// report writes the diff report of a conflict error to w, colorized when w
// is a terminal. Other errors are ignored.
func report(w io.Writer, err error) {
	var (
		text      string
		conflicts dotenv.Conflicts
		conflict  *dotenv.ConflictError
	)

	switch {
	case errors.As(err, &conflicts):
		text = conflicts.Report()
	case errors.As(err, &conflict):
		text = conflict.Report()
	default:
		return
	}

	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	removed := r.NewStyle().Foreground(lipgloss.Color("1"))
	added := r.NewStyle().Foreground(lipgloss.Color("2"))

	var b strings.Builder

	for line := range strings.Lines(text) {
		line = strings.TrimSuffix(line, "\n")

		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"),
			strings.HasPrefix(line, "@@"):
			line = header.Render(line)
		case strings.HasPrefix(line, "-"):
			line = removed.Render(line)
		case strings.HasPrefix(line, "+"):
			line = added.Render(line)
		}

		b.WriteString(line)
		b.WriteByte('\n')
	}

	_, _ = io.WriteString(w, b.String())
}
