package cli

import (
	"context"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/callcheck/cli/cmd"
	"github.com/ardnew/callcheck/lang"
	"github.com/ardnew/callcheck/log"
	"github.com/ardnew/callcheck/pkg"
)

// CLI is the top-level command-line interface for callcheck.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`
	Lib     []string         `help:"Signature library directory, searched before ${pathEnv} (repeatable)" name:"lib" placeholder:"DIR" short:"L"`

	Check cmd.Check `cmd:"" default:"withargs" help:"Check call documents against function signatures"`
	Funcs cmd.Funcs `cmd:""                    help:"List registered function signatures"`
	Init  cmd.Init  `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the callcheck CLI with the given context and arguments.
// The exit function is called with the appropriate exit code when parsing
// requests it (for example --help).
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

	configFilePath := configPath(baseConfig + ".yaml")
	loader := &configLoader{path: configFilePath}

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
		"version":            pkg.Version,
		"pathEnv":            lang.PathEnv,
		"diagFormatEnum":     strings.Join(lang.Formats(), ","),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags so that messages emitted while parsing
	// already follow them, regardless of flag position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		// The provider is called when a command runs, after ctx has been
		// extended below.
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
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(loader.load, configFilePath),
		vars,
	)
	if err != nil {
		return loader.failure(err)
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values, including those
	// read from the configuration file.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	reg, err := lang.LoadLibraries(ctx, cli.Lib, lang.WithLogger(log.Default()))
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "signatures loaded",
		slog.Int("functions", reg.Len()),
		slog.String("names", strings.Join(reg.Names(), ",")),
	)

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithRegistry(ctx, reg)

	return ktx.Run()
}
