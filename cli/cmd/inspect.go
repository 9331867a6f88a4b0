package cmd

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/ntro/cli/cmd/browse"
	"github.com/ardnew/ntro/dotenv"
	"github.com/ardnew/ntro/log"
)

// Inspect browses the merged variables of dotenv sources interactively.
type Inspect struct {
	Sources      []string `arg:"" help:"Dotenv source files, read before those listed in $NTRO_SOURCES (.env if neither is given)" name:"source" optional:"" predictor:"file"`
	PublicPrefix string   `default:"${publicPrefix}" help:"Prefix of keys exposed to client code"`
	PublicExpr   string   `help:"Expression over key selecting client keys; overrides --public-prefix"`
}

// Run executes the inspect command.
func (i *Inspect) Run(ctx context.Context) error {
	c, err := classifier(i.PublicPrefix, i.PublicExpr)
	if err != nil {
		return err
	}

	docs, err := readDocuments(ctx, sourcePaths(i.Sources))
	if err != nil {
		return err
	}

	rows, conflicts, err := inspectRows(docs, c)
	if err != nil {
		return err
	}

	return browse.Run(ctx, rows, conflicts,
		log.Default().With(slog.String("command", "inspect")),
		tea.WithOutput(stdout(ctx)))
}

// inspectRows merges docs reporting every conflict. On conflict the rows
// come from the hint-agnostic merge and conflicting keys are marked.
func inspectRows(docs []dotenv.Document, c dotenv.Classifier) ([]browse.Row, []string, error) {
	reg, err := dotenv.Merge(docs, dotenv.WithAllConflicts())
	if err == nil {
		return browse.Rows(reg, nil, c), nil, nil
	}

	var conflicts dotenv.Conflicts
	if !errors.As(err, &conflicts) {
		return nil, nil, err
	}

	msgs := make([]string, len(conflicts))
	for n, e := range conflicts {
		msgs[n] = e.Error()
	}

	return browse.Rows(dotenv.MergeKeys(docs), conflicts, c), msgs, nil
}
