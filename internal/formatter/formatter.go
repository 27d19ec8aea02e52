package formatter

import (
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/mcncl/vjp/internal/config"
	"github.com/mcncl/vjp/internal/errors"
	"github.com/mcncl/vjp/internal/generator"
	"github.com/mcncl/vjp/internal/lexer"
	"github.com/mcncl/vjp/internal/models"
	"github.com/mcncl/vjp/internal/parser"
)

// Formatter reformats JSON documents and renders them for a terminal
type Formatter struct {
	MaxDepth         int
	Pretty           bool
	CanonicalEscapes bool
	StrictNumbers    bool

	// Color enables ANSI colouring in Colorize and Diff
	Color  bool
	Colors *Colors
}

// NewFormatter creates a new Formatter instance with default settings
func NewFormatter() *Formatter {
	return NewFormatterWithConfig(config.NewConfig())
}

// NewFormatterWithConfig creates a new Formatter from cfg. Colour stays off;
// whether the output is a terminal is decided by the caller.
func NewFormatterWithConfig(cfg *config.Config) *Formatter {
	return &Formatter{
		MaxDepth:         cfg.MaxDepth,
		Pretty:           cfg.Output.Pretty,
		CanonicalEscapes: cfg.Output.CanonicalEscapes,
		StrictNumbers:    cfg.Parsing.StrictNumbers,
		Colors:           NewColors(),
	}
}

// Parse parses text with the formatter's depth limit and number rules
func (f *Formatter) Parse(text string) (models.Value, error) {
	return parser.ParseString(text, f.MaxDepth, parser.StrictNumbers(f.StrictNumbers))
}

// Render generates text for v without colour
func (f *Formatter) Render(v models.Value) string {
	g := generator.NewGenerator(
		generator.Pretty(f.Pretty),
		generator.CanonicalEscapes(f.CanonicalEscapes),
	)
	return g.Generate(v)
}

// Format parses text and renders it again. Syntax errors come back wrapped
// in a parsing AppError; use errors.As to reach the *errors.SyntaxError and
// locate it in text.
func (f *Formatter) Format(text string) (string, error) {
	v, err := f.Parse(text)
	if err != nil {
		return "", err
	}
	return f.Render(v), nil
}

// Check formats text and compares the result with text, ignoring a single
// trailing newline. When they differ it returns the diff and an error
// wrapping errors.ErrNotFormatted.
func (f *Formatter) Check(text string) (string, error) {
	formatted, err := f.Format(text)
	if err != nil {
		return "", err
	}
	return f.Compare(text, formatted)
}

// Compare reports how text differs from its formatted rendering, ignoring
// a single trailing newline on text
func (f *Formatter) Compare(text, formatted string) (string, error) {
	current := strings.TrimSuffix(text, "\n")
	if current == formatted {
		return "", nil
	}
	return f.Diff(current, formatted), errors.NewFormatError("input differs from formatted output", errors.ErrNotFormatted)
}

// Colorize highlights generated JSON text by token kind. Whitespace between
// tokens is kept as is. Text that does not lex is a format error.
func (f *Formatter) Colorize(text string) (string, error) {
	if !f.Color {
		return text, nil
	}
	tokens, err := lexer.Tokenize(text)
	if err != nil {
		return "", errors.NewFormatError("failed to tokenize output", err)
	}

	var b strings.Builder
	b.Grow(len(text) * 2)
	last := 0
	for i, tok := range tokens {
		if tok.Kind == lexer.EOF {
			break
		}
		b.WriteString(text[last:tok.Start])
		paint := f.Colors.forToken(tok.Kind, isKey(tokens, i))
		b.WriteString(paint(tok.Text(text)))
		last = tok.End()
	}
	b.WriteString(text[last:])
	return b.String(), nil
}

// isKey reports whether tokens[i] is a string used as an object key
func isKey(tokens []lexer.Token, i int) bool {
	return tokens[i].Kind == lexer.String && i+1 < len(tokens) && tokens[i+1].Kind == lexer.NameSep
}

// Diff renders a line diff from before to after. Lines are prefixed with
// "-", "+" or a space; the result is empty when the inputs are equal.
func (f *Formatter) Diff(before, after string) string {
	if before == after {
		return ""
	}
	dmp := diffpatch.New()
	beforeChars, afterChars, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(beforeChars, afterChars, false), lines)

	var b strings.Builder
	for _, d := range diffs {
		prefix, paint := " ", f.Colors.plain
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix, paint = "-", f.Colors.removed
		case diffpatch.DiffInsert:
			prefix, paint = "+", f.Colors.added
		}
		if !f.Color {
			paint = f.Colors.plain
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			b.WriteString(paint(prefix + strings.TrimSuffix(line, "\n")))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Colors holds the colour used for each kind of output
type Colors struct {
	Key         *color.Color
	String      *color.Color
	Number      *color.Color
	Literal     *color.Color
	Punctuation *color.Color
	Added       *color.Color
	Removed     *color.Color
}

// NewColors returns the default palette. Colours are forced on; the
// Formatter decides whether to use them at all.
func NewColors() *Colors {
	c := &Colors{
		Key:         color.New(color.FgBlue, color.Bold),
		String:      color.New(color.FgGreen),
		Number:      color.New(color.FgCyan),
		Literal:     color.New(color.FgMagenta),
		Punctuation: color.New(color.Faint),
		Added:       color.New(color.FgGreen),
		Removed:     color.New(color.FgRed),
	}
	for _, col := range []*color.Color{c.Key, c.String, c.Number, c.Literal, c.Punctuation, c.Added, c.Removed} {
		col.EnableColor()
	}
	return c
}

func (c *Colors) forToken(kind lexer.Kind, key bool) func(string) string {
	var col *color.Color
	switch kind {
	case lexer.String:
		if key {
			col = c.Key
		} else {
			col = c.String
		}
	case lexer.Number:
		col = c.Number
	case lexer.True, lexer.False, lexer.Null:
		col = c.Literal
	default:
		col = c.Punctuation
	}
	return sprint(col)
}

func (c *Colors) plain(s string) string   { return s }
func (c *Colors) added(s string) string   { return sprint(c.Added)(s) }
func (c *Colors) removed(s string) string { return sprint(c.Removed)(s) }

func sprint(col *color.Color) func(string) string {
	return func(s string) string { return col.Sprint(s) }
}
