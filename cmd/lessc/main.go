// Command lessc is a thin CLI front-end over the lessgo-core Compile
// entry point, in the style of the teacher's own cmd/lessgo: cobra
// subcommands, pflag flags, a TOML project config, and colorized error
// output.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	lessgo "github.com/titpetric/lessgo-core"
	"github.com/titpetric/lessgo-core/importer"
	"github.com/titpetric/lessgo-core/tree"
)

// fileConfig mirrors Config's tunables as read from an optional
// .lessrc.toml in the working directory; flags explicitly set on the
// command line override it.
type fileConfig struct {
	Compress     bool `toml:"compress"`
	StrictMath   bool `toml:"strict_math"`
	Optimization int  `toml:"optimization"`
	KeepComments bool `toml:"keep_comments"`
}

func loadFileConfig(path string) (fileConfig, error) {
	cfg := fileConfig{Optimization: 1, KeepComments: true}
	if _, err := os.Stat(path); err != nil {
		return cfg, nil
	}
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}

func main() {
	logger := logrus.New()

	var (
		compress     bool
		strictMath   bool
		optimization int
		keepComments bool
		configPath   string
	)

	root := &cobra.Command{
		Use:           "lessc",
		Short:         "Compile LESS stylesheets to CSS",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&compress, "compress", false, "collapse whitespace in the emitted CSS")
	root.PersistentFlags().BoolVar(&strictMath, "strict-math", false, "only reduce arithmetic inside parentheses")
	root.PersistentFlags().IntVar(&optimization, "optimization", 1, "chunker optimization level (0 disables pre-chunking)")
	root.PersistentFlags().BoolVar(&keepComments, "keep-comments", true, "preserve non-// comments in the output")
	root.PersistentFlags().StringVar(&configPath, "config", ".lessrc.toml", "project config file, overridden by explicit flags")

	buildConfig := func(cmd *cobra.Command, currentFile string) (lessgo.Config, error) {
		fc, err := loadFileConfig(configPath)
		if err != nil {
			return lessgo.Config{}, fmt.Errorf("reading %s: %w", configPath, err)
		}
		cfg := lessgo.Config{
			Compress:     fc.Compress,
			StrictMath:   fc.StrictMath,
			Optimization: fc.Optimization,
			KeepComments: fc.KeepComments,
		}
		var flags *pflag.FlagSet = cmd.Flags()
		if flags.Changed("compress") {
			cfg.Compress = compress
		}
		if flags.Changed("strict-math") {
			cfg.StrictMath = strictMath
		}
		if flags.Changed("optimization") {
			cfg.Optimization = optimization
		}
		if flags.Changed("keep-comments") {
			cfg.KeepComments = keepComments
		}
		cfg.Importer = importer.New(os.DirFS(".")).WithLogger(logger)
		cfg.Logger = logrusAdapter{logger}
		return cfg, nil
	}

	compileCmd := &cobra.Command{
		Use:   "compile <file>",
		Short: "Compile a LESS file to CSS and print it to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, args[0])
			if err != nil {
				return err
			}
			return runCompile(args[0], cfg, logger, cmd.OutOrStdout())
		},
	}

	// fmt runs the same pipeline with comments kept and compression off,
	// giving a normalized CSS rendering of a stylesheet; it does not
	// reformat the LESS source itself (byte-exact LESS formatting is out
	// of scope for this core).
	fmtCmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Print a normalized (uncompressed) CSS rendering of a LESS file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, args[0])
			if err != nil {
				return err
			}
			cfg.Compress = false
			cfg.KeepComments = true
			return runCompile(args[0], cfg, logger, cmd.OutOrStdout())
		},
	}

	root.AddCommand(compileCmd, fmtCmd)

	if err := root.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func runCompile(path string, cfg lessgo.Config, logger *logrus.Logger, out io.Writer) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	start := time.Now()
	css, err := lessgo.Compile(string(source), path, cfg)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"file":     path,
		"duration": time.Since(start),
	}).Debug("compiled")

	_, err = fmt.Fprint(out, css)
	return err
}

// printError writes a colorized "error: " prefix, then the message; a
// ParsingError's message is followed by its (file:index) location.
func printError(err error) {
	if pe, ok := err.(*tree.ParsingError); ok {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "error: ")
		fmt.Fprintf(os.Stderr, "%s (%s:%d)\n", pe.Message, pe.File, pe.Index)
		return
	}
	color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "error: ")
	fmt.Fprintf(os.Stderr, "%v\n", err)
}

// logrusAdapter satisfies tree.Logger, routing core warnings through the
// CLI's configured logrus instance.
type logrusAdapter struct{ l *logrus.Logger }

func (a logrusAdapter) Warnf(format string, args ...any) { a.l.Warnf(format, args...) }
