package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ntt-parser/config"
	"ntt-parser/parser"
	"ntt-parser/store"
)

// errDiagnostics makes the process exit non-zero without printing anything
// beyond the diagnostics already written.
var errDiagnostics = errors.New("source has syntax errors")

type rootOptions struct {
	cfgFile string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "ntt",
		Short: "ntt - recovering parser for a small C-like language",
		Long: `ntt tokenizes and parses C-like source text into a syntax tree.
Malformed input never aborts a parse: every problem is attached to the
node where it was found and reported as a diagnostic.

Commands:
  parse    print the syntax tree
  tokens   print the token stream
  check    print diagnostics with code frames
  serve    run the HTTP and websocket API
  repl     interactive parser
  history  list recorded parse runs`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (.toml or .yaml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newParseCmd(opts),
		newTokensCmd(opts),
		newCheckCmd(opts),
		newServeCmd(opts),
		newReplCmd(opts),
		newHistoryCmd(opts),
		newVersionCmd(),
	)
	return root
}

func Execute() error {
	err := newRootCmd().Execute()
	if err != nil && !errors.Is(err, errDiagnostics) {
		printError(err)
	}
	return err
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// env is what every subcommand needs after flags are parsed.
type env struct {
	cfg    *config.Config
	log    *logrus.Logger
	parser *parser.Parser
}

func (o *rootOptions) load(cmd *cobra.Command) (*env, error) {
	cfg := config.Default()
	if o.cfgFile != "" {
		var err error
		if cfg, err = config.Load(o.cfgFile); err != nil {
			return nil, err
		}
	}

	log, err := cfg.Log.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	if o.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	return &env{cfg: cfg, log: log, parser: parser.New(parser.WithLogger(log))}, nil
}

// openStore returns nil when persistence is disabled.
func (e *env) openStore() (store.Store, error) {
	if !e.cfg.Store.Enabled {
		return nil, nil
	}
	st, err := store.NewSQLiteStore(e.cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// record saves a CLI run when persistence is enabled. Failures only log.
func (e *env) record(cmd *cobra.Command, result *parser.Result) {
	st, err := e.openStore()
	if err != nil {
		e.log.WithError(err).Warn("run not recorded")
		return
	}
	if st == nil {
		return
	}
	defer st.Close()

	if err := st.Save(cmd.Context(), store.NewRun("cli", result)); err != nil {
		e.log.WithError(err).Warn("run not recorded")
	}
}

// readSource reads the file named by args[0], or stdin for "-" or no args.
func readSource(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(data), nil
}
