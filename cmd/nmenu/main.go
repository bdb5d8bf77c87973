package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/ashwch/nmenu/internal/config"
	"github.com/ashwch/nmenu/internal/engine"
	"github.com/ashwch/nmenu/internal/generate"
	"github.com/ashwch/nmenu/internal/logging"
	"github.com/ashwch/nmenu/internal/runtime"
	"github.com/ashwch/nmenu/internal/ui"
)

var version = "dev"

type options struct {
	Rules   string
	UI      string
	Mode    string
	Query   string
	Verbose bool
}

// app carries what every subcommand needs once flags and config are resolved.
type app struct {
	opts    options
	cfg     config.Config
	cfgPath string
	logger  *zap.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// usageError marks bad invocations; they exit with status 2.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, logger: zap.NewNop()}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	_ = a.logger.Sync()
	if err == nil {
		return 0
	}
	fmt.Fprintf(stderr, "nmenu: %v\n", err)
	var uerr usageError
	if errors.As(err, &uerr) {
		return 2
	}
	return 1
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "nmenu",
		Short: "Rule-driven command chooser",
		Long: `nmenu builds a suggestion tree from a rules file and lets you pick a
command interactively. Each keystroke narrows the suggestions; choosing one
resolves its command template and runs, prints or copies the result.`,
		Args:              noArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChooser()
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.Rules, "rules", "", "rules file (default <config dir>/rules.lisp)")
	flags.StringVar(&a.opts.UI, "ui", "", "ui backend: auto|bubbletea|huh|tview|plain")
	flags.StringVar(&a.opts.Mode, "mode", "", "exec mode: "+strings.Join(runtime.Modes(), "|"))
	flags.BoolVarP(&a.opts.Verbose, "verbose", "v", false, "log at debug level")
	root.Flags().StringVarP(&a.opts.Query, "query", "q", "", "initial input text")

	root.AddCommand(
		newSuggestCmd(a),
		newDumpCmd(a),
		newInitCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads the config file, applies environment and flag overrides and
// opens the log.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, cfgPath, err := config.LoadOrCreate()
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	overrides := map[string]string{
		"rules":      a.opts.Rules,
		"ui.backend": a.opts.UI,
		"exec.mode":  a.opts.Mode,
	}
	for key, value := range overrides {
		if strings.TrimSpace(value) == "" {
			continue
		}
		if err := cfg.Set(key, value); err != nil {
			return usageError{err}
		}
	}
	a.cfg, a.cfgPath = cfg, cfgPath

	logPath, err := cfg.LogPath()
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Path: logPath, Verbose: a.opts.Verbose})
	if err != nil {
		return err
	}
	a.logger = logger.With(zap.String("subcommand", cmd.Name()))
	return nil
}

func (a *app) newEngine() (*engine.Engine, error) {
	rulesPath, err := a.cfg.RulesPath()
	if err != nil {
		return nil, err
	}
	gens := generate.NewRegistry(a.logger)
	gens.CacheEnabled = a.cfg.Generators.Cache
	return engine.New(engine.Options{
		RulesPath:  rulesPath,
		Generators: gens,
		Logger:     a.logger,
	}), nil
}

// runChooser builds the suggestion tree before any UI is shown, so rule errors
// never leave a half-drawn terminal behind.
func (a *app) runChooser() error {
	eng, err := a.newEngine()
	if err != nil {
		return err
	}
	if err := eng.Build(); err != nil {
		return err
	}

	opts := ui.Options{
		Backend: a.cfg.UI.Backend,
		Lines:   a.cfg.UI.Lines,
		Query:   a.opts.Query,
		In:      a.stdin,
		Out:     a.stderr,
	}
	if ui.IsInteractiveBackend(opts.Backend) && (!isTerminal(a.stdin) || !isTerminal(a.stdout)) {
		a.logger.Debug("no terminal, falling back to plain chooser", zap.String("backend", opts.Backend))
		opts.Backend = ui.BackendPlain
	}
	a.logger.Debug("opening chooser", zap.String("backend", opts.Backend))

	line, err := ui.Choose(eng, opts)
	if err != nil {
		return err
	}
	return runtime.Execute(a.cfg.Exec.Mode, line, a.stdout)
}

func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	if !ok || f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageError{fmt.Errorf("unexpected argument %q for %s", args[0], cmd.CommandPath())}
	}
	return nil
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageError{fmt.Errorf("%s accepts %d arg(s), received %d", cmd.CommandPath(), n, len(args))}
		}
		return nil
	}
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  noArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.stdout, version)
			return nil
		},
	}
}
