package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/ntro/log"
	"github.com/ardnew/ntro/pkg"
	"github.com/ardnew/ntro/yamltype"
)

// YAML generates an ambient TypeScript declaration describing the exact
// structure of a YAML file.
type YAML struct {
	Source  string `arg:""     help:"YAML source file"                           type:"existingfile" predictor:"file"`
	OutDir  string `default:"." help:"Output directory"                 short:"o" type:"path" predictor:"dir"`
	Project string `default:"." help:"Node.js project directory used to run prettier" type:"path" predictor:"dir"`
	Name    string `            help:"Declared type name (default: derived from the file name)"`
	Format  bool   `default:"true" help:"Format output with prettier" negatable:""`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) error {
	f, err := os.Open(y.Source)
	if err != nil {
		return pkg.ErrReadInput.Wrap(err)
	}
	defer f.Close()

	name := y.Name
	if name == "" {
		name = yamltype.TypeName(y.Source)
	}

	var buf bytes.Buffer

	if err := yamltype.Generate(ctx, &buf, name, f); err != nil {
		return ErrRender.Wrap(err).With(slog.String("source", y.Source))
	}

	path := filepath.Join(y.OutDir, declarationFile(y.Source))

	if err := writeOutput(ctx, path, buf.Bytes(), y.Project, y.Format); err != nil {
		return err
	}

	log.InfoContext(ctx, "generated YAML declaration",
		slog.String("type", name),
		slog.String("path", path))

	return nil
}

// declarationFile returns the declaration file name of a YAML source: its
// name with the final extension replaced by ".d.ts".
func declarationFile(source string) string {
	base := filepath.Base(source)

	return strings.TrimSuffix(base, filepath.Ext(base)) + ".d.ts"
}
