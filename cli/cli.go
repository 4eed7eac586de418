package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/binconf/cli/cmd"
	"github.com/ardnew/binconf/pkg"
)

// CLI is the top-level command-line interface for binconf.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Translate cmd.Translate `cmd:"" default:"withargs" help:"Translate a configuration source to JSON or YAML"`
	Fmt       cmd.Fmt       `cmd:""                    help:"Reformat a configuration source to canonical syntax"`
	Repl      cmd.Repl      `cmd:""                    help:"Interactive translation session"`
	Version   cmd.Version   `cmd:""                    help:"Print version information"`
}

// Run executes the binconf CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Scan the raw arguments for logger flags before kong parses them, so
	// messages emitted during parsing already honor --log-level and friends.
	// TextUnmarshaler covers the enum flags; the scan also picks up boolean
	// flags like --log-pretty.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
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
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(ctx), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	// Apply the fully parsed logger configuration, including values such as
	// TimeLayout and Caller that the early scan does not cover.
	cli.Log.start(ctx)

	// Profiling is a no-op unless built with tag pprof and a mode is set.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
