package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"mamlgen/internal/config"
	"mamlgen/internal/generator"
	"mamlgen/internal/logger"
)

const rootLongDesc = `
mamlgen generates a MAML help file (<module>.dll-help.xml) for a Go command
module. Exported struct types that carry a cmdlet marker tag and implement
the capability method (ProcessRecord by default) become commands; their
tagged fields become parameters. Prose comes from the XML documentation file
next to the module (see "mamlgen xmldoc").

Additional references can be published alongside the help file with
--format json,html,xlsx,docx.
`

// app carries state shared by the commands of one invocation
type app struct {
	stdout     io.Writer
	stderr     io.Writer
	v          *viper.Viper
	configPath string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, v: config.New()}

	cmd := &cobra.Command{
		Use:           "mamlgen [module]",
		Short:         "Generate MAML help for a Go command module",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.CompletionOptions.DisableDefaultCmd = true

	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "path to configuration file (default ./mamlgen.yaml when present)")
	pf.BoolP("verbose", "v", false, "enable verbose logging (DEBUG level)")
	pf.String("log-file", "", "also write a debug log to this file")
	pf.Bool("no-progress", false, "disable progress bars")

	addGenerateFlags(cmd.Flags())
	cmd.Flags().Bool("show-config", false, "print the resolved configuration and exit")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := a.loadConfig(cmd, args)
		if err != nil {
			return err
		}
		defer logger.Close()
		if show, _ := cmd.Flags().GetBool("show-config"); show {
			cfg.Print(a.stdout)
			return nil
		}
		return a.generate(cmd.Context(), cfg)
	}

	cmd.AddCommand(
		newXMLDocCmd(a),
		newWatchCmd(a),
		newVersionCmd(a),
		newCompletionCmd(cmd),
		newDocsCmd(cmd),
	)
	return cmd
}

// addGenerateFlags registers the flags shared by the root and watch commands
func addGenerateFlags(flags *pflag.FlagSet) {
	flags.String("doc", "", "documentation file (default: module path with .xml extension)")
	flags.StringP("output", "o", "", "output file (default: module path with .dll-help.xml extension)")
	flags.StringSlice("format", nil, "extra formats to publish: json, html, xlsx, docx")
	flags.Bool("extended", false, "emit parameters, inputTypes and returnValues sections")
	flags.String("capability-method", "", "method a command type must implement")
	flags.StringSlice("exclude", nil, "command name patterns to skip (doublestar syntax)")
}

var flagKeys = map[string]string{
	"doc":               config.KeyDoc,
	"output":            config.KeyOutput,
	"format":            config.KeyFormats,
	"extended":          config.KeyExtended,
	"capability-method": config.KeyCapabilityMethod,
	"exclude":           config.KeyExclude,
	"verbose":           config.KeyLogVerbose,
	"log-file":          config.KeyLogFile,
}

// loadConfig binds the flags of cmd, reads the configuration, resolves the
// default paths, validates and starts the logger
func (a *app) loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := a.v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}
	if noProgress, _ := cmd.Flags().GetBool("no-progress"); noProgress {
		a.v.Set(config.KeyProgress, false)
	}
	if len(args) > 0 {
		a.v.Set(config.KeyModule, args[0])
	}

	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return nil, err
	}
	cfg.Resolve()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := logger.Init(a.stderr, cfg.Log.File, cfg.Log.Verbose); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Debug("Configuration loaded", "module", cfg.Module, "doc", cfg.Doc, "output", cfg.Output,
		"formats", cfg.Formats, "extended", cfg.Extended)
	return cfg, nil
}

func (a *app) newGenerator(cfg *config.Config) *generator.Generator {
	var opts []generator.Option
	if cfg.Progress && !logger.IsVerbose() && isTerminal(a.stderr) {
		opts = append(opts, generator.WithProgress(a.stderr))
	}
	return generator.New(cfg, opts...)
}

func (a *app) generate(ctx context.Context, cfg *config.Config) error {
	result, err := a.newGenerator(cfg).Run(ctx)
	if err != nil {
		return err
	}
	printSummary(a.stdout, result)
	if path := logger.GetLogFilePath(); path != "" {
		fmt.Fprintf(a.stdout, "Log written to %s\n", path)
	}
	return nil
}

func printSummary(w io.Writer, result *generator.Result) {
	fmt.Fprintf(w, "Generated help for %d command(s)", result.Commands)
	if n := len(result.Undocumented); n > 0 {
		fmt.Fprintf(w, ", %d without documentation", n)
	}
	fmt.Fprintln(w)
	for _, path := range result.Outputs {
		fmt.Fprintf(w, "  %s\n", path)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
