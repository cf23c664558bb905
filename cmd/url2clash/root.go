package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"url2clash/internal/config"
	"url2clash/internal/logger"
	"url2clash/internal/render"
)

// exitError carries the process exit status out of cobra.
// msg, if set, is printed to stderr by Execute.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return fmt.Sprintf("exit status %d", e.code)
}

type options struct {
	cfgFile  string
	verbose  bool
	logFile  string
	input    string
	format   string
	output   string
	dedupe   bool
	extended bool
	workers  int
	progress bool
	stats    bool

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "url2clash <link> [<link> ...]",
		Short: "Convert proxy share links into a Clash proxies document",
		Long: `Parses vless://, vmess://, ss://, trojan://, hysteria:// (hy://),
hysteria2:// (hy2://) and tuic:// links and prints a "proxies:" YAML document.

Links are taken from the arguments and, with --input, from a file or stdin.
The first link that fails to parse aborts the run with exit status 2.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.load(cmd); err != nil {
				return &exitError{code: 1, msg: err.Error()}
			}
			logger.Init(opts.cfg.Log.Verbose, opts.cfg.Log.File)
			return nil
		},
		PostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is ./"+config.DefaultPath+" if present)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&opts.logFile, "log-file", "", "Write logs to file instead of stderr (overwrites file)")
	flags.StringVarP(&opts.input, "input", "i", "", "Read links from a file ('-' for stdin)")
	flags.StringVarP(&opts.format, "format", "f", "", fmt.Sprintf("Output format %v (default clash)", render.Names()))
	flags.StringVarP(&opts.output, "output", "o", "", "Write the document to a file instead of stdout")
	flags.BoolVar(&opts.dedupe, "dedupe", false, "Drop proxies that point at an endpoint already emitted")
	flags.BoolVar(&opts.extended, "extended", false, "Emit optional keys (skip-cert-verify, hysteria2 sni/obfs, auth_str)")
	flags.IntVar(&opts.workers, "workers", 0, "Parse links with N workers")
	flags.BoolVar(&opts.progress, "progress", false, "Show a progress bar on stderr")
	flags.BoolVar(&opts.stats, "stats", false, "Print a conversion report on stderr")

	return cmd
}

// load reads the config file and lets explicitly set flags override it.
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Log.Verbose = o.verbose
	}
	if flags.Changed("log-file") {
		cfg.Log.File = o.logFile
	}
	if flags.Changed("format") {
		cfg.Output.Format = o.format
	}
	if flags.Changed("output") {
		cfg.Output.Path = o.output
	}
	if flags.Changed("dedupe") {
		cfg.Convert.Dedupe = o.dedupe
	}
	if flags.Changed("extended") {
		cfg.Convert.Extended = o.extended
	}
	if flags.Changed("workers") && o.workers > 0 {
		cfg.Convert.Workers = o.workers
	}

	o.cfg = cfg
	return nil
}

func Execute() {
	if code := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); code != 0 {
		os.Exit(code)
	}
}

// run executes the root command and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.msg != "" {
			fmt.Fprintln(stderr, ee.msg)
		}
		return ee.code
	}
	fmt.Fprintln(stderr, err)
	return 1
}
