package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/mcncl/vjp/internal/analyzer"
	"github.com/mcncl/vjp/internal/config"
	"github.com/mcncl/vjp/internal/errors"
	"github.com/mcncl/vjp/internal/formatter"
	"github.com/mcncl/vjp/internal/logging"
	"github.com/mcncl/vjp/internal/parser"
)

// CLI defines the command-line interface. Flags that override the config
// file have no defaults so an explicit value can be told apart from none.
var CLI struct {
	Input            string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output           string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Pretty           bool   `help:"Indent output by four spaces per level." short:"p"`
	MaxDepth         int    `help:"Maximum nesting of objects and arrays (default 1024)." short:"m" name:"max-depth"`
	Config           string `help:"Path to config file. By default .vjp.yml is searched for upward from the working directory." short:"c" type:"path"`
	StrictNumbers    bool   `help:"Reject numbers with leading zeros such as 012." name:"strict-numbers"`
	CanonicalEscapes bool   `help:"Write control characters in strings as \\n or \\u00XX escapes." name:"canonical-escapes"`
	Color            string `help:"Colour output: auto, always or never." placeholder:"MODE"`
	Check            bool   `help:"Exit with status 1 and print a diff when the input is not already formatted."`
	Debug            bool   `help:"Enable debug logging." short:"d"`
	Version          bool   `help:"Show version information." short:"v"`
	Interactive      bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Config *config.Config
	Logger *logrus.Logger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Terminal reports whether Stdout is a terminal
	Terminal bool

	// text is the raw input, kept to locate syntax errors
	text string
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	app := kong.Must(&CLI,
		kong.Name("vjp"),
		kong.Description("Validate and reformat JSON documents"),
		kong.UsageOnError(),
	)

	kctx, err := app.Parse(os.Args[1:])
	// kong.UsageOnError prints the usage before exiting
	app.FatalIfErrorf(err)

	if CLI.Version {
		fmt.Printf("vjp version %s\n", Version)
		return
	}

	configPath := CLI.Config
	if configPath == "" {
		if wd, err := os.Getwd(); err == nil {
			configPath = config.FindConfigFile(wd)
		}
	}

	cfg, err := config.LoadConfigWithCLI(configPath, os.LookupEnv, overrides(kctx))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(errors.NewConfigError(err.Error(), err)))
		os.Exit(1)
	}

	ctx := &Context{
		Config:   cfg,
		Logger:   logging.New(logging.Options{Format: cfg.Dev.LogFormat, Debug: cfg.Dev.Debug}),
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Terminal: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
	if configPath != "" {
		ctx.Logger.WithField("path", configPath).Debug("loaded config file")
	}

	if err := run(ctx); err != nil {
		report(ctx, err)
		os.Exit(1)
	}
}

// overrides collects the flags given explicitly on the command line
func overrides(kctx *kong.Context) config.Overrides {
	var o config.Overrides
	for _, flag := range kctx.Flags() {
		if !flag.Set {
			continue
		}
		switch flag.Name {
		case "max-depth":
			o.MaxDepth = &CLI.MaxDepth
		case "pretty":
			o.Pretty = &CLI.Pretty
		case "strict-numbers":
			o.StrictNumbers = &CLI.StrictNumbers
		case "canonical-escapes":
			o.CanonicalEscapes = &CLI.CanonicalEscapes
		case "color":
			o.Color = &CLI.Color
		case "debug":
			o.Debug = &CLI.Debug
		}
	}
	return o
}

// report writes err for the user. Syntax errors are shown as
// "<Kind>: <line>:<column>" against the input text.
func report(ctx *Context, err error) {
	var synErr *errors.SyntaxError
	if stderrors.As(err, &synErr) {
		fmt.Fprintln(ctx.Stderr, synErr.Report(ctx.text))
		return
	}
	fmt.Fprintf(ctx.Stderr, "%s\n", errors.UserFriendlyError(err))
	if !stderrors.Is(err, errors.ErrNotFormatted) {
		fmt.Fprintf(ctx.Stderr, "\nFor help, run: vjp --help\n")
	}
}

// run executes the main program logic
func run(ctx *Context) error {
	log := ctx.Logger

	// 1. Read the input
	text, err := readInput(ctx)
	if err != nil {
		return err
	}
	ctx.text = text
	log.WithFields(logrus.Fields{"bytes": len(text), "source": inputName()}).Debug("read input")

	f := formatter.NewFormatterWithConfig(ctx.Config)
	f.Color = useColor(ctx)

	// 2. Parse it
	start := time.Now()
	value, err := f.Parse(text)
	if err != nil {
		return err
	}
	log.WithField("duration", time.Since(start)).
		WithFields(analyzer.NewAnalyzer().Analyze(value).Fields()).
		Debug("parsed document")

	// 3. Render it, or compare it with the input in check mode
	out := f.Render(value)
	if CLI.Check {
		diff, err := f.Compare(text, out)
		if diff != "" {
			if _, werr := io.WriteString(ctx.Stdout, diff); werr != nil {
				return errors.NewOutputError("failed to write diff", werr)
			}
		}
		if err == nil {
			log.Debug("input is formatted")
		}
		return err
	}

	out, err = f.Colorize(out)
	if err != nil {
		return err
	}

	// 4. Write the result
	return writeOutput(ctx, out)
}

// useColor decides whether output gets ANSI colours. Files never do unless
// colour is forced.
func useColor(ctx *Context) bool {
	switch ctx.Config.Output.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	return CLI.Output == "" && ctx.Terminal
}

func inputName() string {
	if CLI.Input != "" {
		return CLI.Input
	}
	return "stdin"
}

// readInput reads JSON text from file or stdin
func readInput(ctx *Context) (string, error) {
	if CLI.Input != "" {
		return parser.ReadFile(CLI.Input)
	}

	if stdin, ok := ctx.Stdin.(*os.File); ok {
		stdinInfo, err := stdin.Stat()
		if err != nil {
			return "", errors.NewInputError("failed to access stdin", err)
		}
		if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
			// Terminal is interactive (not piped)
			if CLI.Interactive {
				return readInteractiveInput(ctx)
			}
			return "", errors.NewInputError("no input provided", errors.ErrNoInput)
		}
	}

	text, err := parser.ReadAll(ctx.Stdin)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return text, nil
}

// writeOutput writes text to the output file or stdout, followed by a newline
func writeOutput(ctx *Context, text string) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(text+"\n"), 0o644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		ctx.Logger.WithField("path", CLI.Output).Debug("wrote output")
		return nil
	}

	if _, err := fmt.Fprintln(ctx.Stdout, text); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput lets users paste JSON and signal completion with
// Ctrl+D (EOF)
func readInteractiveInput(ctx *Context) (string, error) {
	fmt.Fprintln(ctx.Stderr, "vjp interactive mode")
	fmt.Fprintln(ctx.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	text, err := parser.ReadAll(ctx.Stdin)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(ctx.Stderr, "\nProcessing JSON...")
	return text, nil
}
