package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/posener/complete"
	"github.com/willabides/kongplete"

	"github.com/ardnew/ntro/log"
	"github.com/ardnew/ntro/pkg"
)

// Completion prints a script registering shell completion for the
// application. Completions themselves are answered by [Complete].
type Completion struct {
	Shell string `arg:"" enum:"bash,zsh,fish" help:"Target shell: bash, zsh or fish"`
}

// Run executes the completion command.
func (c *Completion) Run(ctx context.Context) error {
	bin, err := os.Executable()
	if err != nil {
		bin = os.Args[0]
	}

	script, err := completionScript(c.Shell, pkg.Name, bin)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(stdout(ctx), script); err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("shell", c.Shell))
	}

	log.DebugContext(ctx, "printed completion script",
		slog.String("shell", c.Shell),
		slog.String("bin", bin))

	return nil
}

// Complete answers a shell completion request for parser and exits, if the
// process was started by a completion script. Otherwise it returns without
// effect.
func Complete(parser *kong.Kong) {
	kongplete.Complete(parser,
		kongplete.WithPredictor("file", complete.PredictFiles("*")),
		kongplete.WithPredictor("dir", complete.PredictDirs("*")),
	)
}

// completionScript returns the shell code that makes shell ask bin for the
// completions of command name.
func completionScript(shell, name, bin string) (string, error) {
	switch shell {
	case "bash":
		return fmt.Sprintf("complete -C %s %s\n", shellQuote(bin), name), nil

	case "zsh":
		return fmt.Sprintf("autoload -U +X bashcompinit && bashcompinit\n"+
			"complete -o nospace -C %s %s\n", shellQuote(bin), name), nil

	case "fish":
		return fmt.Sprintf(`function __complete_%[1]s
    set -lx COMP_LINE (commandline -cp)
    test -z (commandline -ct)
    and set COMP_LINE "$COMP_LINE "
    %[2]s
end
complete -f -c %[1]s -a "(__complete_%[1]s)"
`, name, fishQuote(bin)), nil

	default:
		return "", ErrCompletion.With(slog.String("shell", shell))
	}
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func fishQuote(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s) + "'"
}
