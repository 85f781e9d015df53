package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"cssnest/check"
	"cssnest/common"
	"cssnest/config"
	"cssnest/misc"
	"cssnest/state"
)

const checkHelp = `%s
SOURCE:
    stylesheet(s) to check, following forms are supported:
        path to a file: "[path_to_file]file.css" - checked whatever extension it has
        path to a directory: "[path_to_directory]directory" - recursively check all stylesheets under directory (symbolic links are not followed)
        path to archive: "[path_to_archive]book.epub" - check all stylesheets in archive (zip or epub)
        path to archive with path inside: "[path_to_archive]book.epub[path_in_archive]" - check stylesheets under archive path

	Stylesheets are recognized by configured extensions, dialect (css, scss, less)
	is selected by extension. Archives inside archives are not looked into.

Program exits with non zero code when any problem with error severity is found
or some source could not be checked.
`

const dumpHelp = `%s

DESTINATION:
    file name to write to, if absent - STDOUT

By default writes effective configuration: embedded defaults with values from
configuration file on top. With --default writes embedded configuration as is.
With --rules writes options rules are going to receive, every ignore list value
marked as literal or pattern after it was compiled.
`

// openEnv is called after command line has been parsed and before any
// command runs.
func openEnv(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.NArg() == 0 {
		// help or version only
		return ctx, nil
	}
	return ctx, state.EnvFromContext(ctx).Open(cmd.String("config"), cmd.Bool("debug"))
}

func closeEnv(ctx context.Context, _ *cli.Command) error {
	return state.EnvFromContext(ctx).Close()
}

// Set when error was already logged, it is printed to stderr otherwise.
var errLogged bool

// logError runs before environment is closed, so error still goes to the log
// and debug report.
func logError(ctx context.Context, _ *cli.Command, err error) {
	if env := state.EnvFromContext(ctx); env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errLogged = true
	}
}

func usageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func unknownCommand(ctx context.Context, _ *cli.Command, name string) {
	if env := state.EnvFromContext(ctx); env.Log != nil {
		env.Log.Warn("Unknown command, nothing to do", zap.String("command", name))
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "checks nesting depth of CSS, SCSS and Less stylesheets",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          openEnv,
		After:           closeEnv,
		OnUsageError:    usageError,
		ExitErrHandler:  logError,
		CommandNotFound: unknownCommand,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log everything and produce report archive with logs, configuration and parsed stylesheets"},
		},
		Commands: []*cli.Command{
			{
				Name:         "check",
				Usage:        "Checks stylesheet(s) and reports problems",
				OnUsageError: usageError,
				Before:       check.Before,
				Action:       check.Run,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: common.OutputFmtText.String(),
						Usage: "report `TYPE` (supported types: " + strings.Join(common.OutputFmtNames(), ", ") + ")"},
					&cli.IntFlag{Name: "max-depth", Aliases: []string{"m"}, Usage: "override configured maximum nesting `DEPTH`"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write report to `FILE` instead of STDOUT"},
				},
				ArgsUsage:          "SOURCE [SOURCE...]",
				CustomHelpTemplate: fmt.Sprintf(checkHelp, cli.CommandHelpTemplate),
			},
			{
				Name:  "dumpconfig",
				Usage: "Writes configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "write embedded default configuration"},
					&cli.BoolFlag{Name: "rules", Usage: "write compiled rule options"},
				},
				OnUsageError:       usageError,
				Action:             dumpConfiguration,
				ArgsUsage:          "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(dumpHelp, cli.CommandHelpTemplate),
			},
		},
	}
}

func main() {
	// checking runs in parallel, let it stop on interrupt
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)
	err := newApp().Run(ctx, os.Args)
	stop()

	if err == nil {
		return
	}
	// log is either not set yet (argument parsing) or already closed
	if !errLogged {
		fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
	}
	os.Exit(1)
}

func dumpConfiguration(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	var (
		data []byte
		what string
	)
	switch {
	case cmd.Bool("default") && cmd.Bool("rules"):
		return errors.New("--default and --rules could not be used together")
	case cmd.Bool("default"):
		what = "default"
		data, err = config.Prepare()
	case cmd.Bool("rules"):
		what = "rules"
		data, err = config.DumpRules(&env.Cfg.Rules)
	default:
		what = "effective"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get %s configuration: %w", what, err)
	}

	var out io.Writer = os.Stdout
	dest := cmd.Args().Get(0)
	if len(dest) > 0 {
		f, err := os.Create(dest)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", dest, err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		out = f
	} else {
		dest = "STDOUT"
	}
	env.Log.Info("Writing configuration", zap.String("state", what), zap.String("file", dest))

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
