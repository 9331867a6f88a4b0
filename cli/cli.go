package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ntro/cli/cmd"
	"github.com/ardnew/ntro/dotenv"
	"github.com/ardnew/ntro/pkg"
)

// CLI is the top-level command-line interface for ntro.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`

	Env     cmd.Env     `cmd:"" default:"withargs" help:"Generate env.d.ts and env.ts from dotenv files"`
	YAML    cmd.YAML    `cmd:""                    help:"Generate a TypeScript declaration from a YAML file" name:"yaml"`
	Inspect cmd.Inspect `cmd:""                    help:"Browse merged dotenv variables"`
	Init    cmd.Init    `cmd:""                    help:"Initialize configuration file"`

	Completion cmd.Completion `cmd:"" help:"Print a shell completion script"`
}

// Run executes the ntro CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirConfig()
	if err != nil {
		return err
	}

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFile(".yaml"),
		cmd.CacheIdentifier:  cacheDir(),
		"version":            pkg.Name + " " + pkg.Version,
		"publicPrefix":       dotenv.PublicPrefix,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(append([]kong.Group{cli.Log.group()}, cli.Pprof.groups()...)),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFile(".json")),
		kong.Configuration(loadYAML, configFile(".yaml")),
		vars,
	)
	if err != nil {
		return err
	}

	cmd.Complete(parser)

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run()
}
