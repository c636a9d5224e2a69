// Package console prints the human-facing lines of a plain (non-interactive)
// run: a banner, warnings as they happen, errors with suggestions, and a
// closing summary.
package console

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gedex/inflector"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joe/ltfs2efu/internal/config"
	"github.com/joe/ltfs2efu/internal/convert"
	"github.com/joe/ltfs2efu/internal/ltfs"
	errs "github.com/joe/ltfs2efu/pkg/errors"
)

// Options controls console output.
type Options struct {
	// Quiet suppresses the banner and summary. Warnings and errors still print.
	Quiet bool
	// NoColor disables ANSI colors regardless of the terminal.
	NoColor bool
	// Verbose prints a DIRECTORY line for each directory walked. Quiet wins.
	Verbose bool
}

// Console writes status lines to stdout and problems to stderr.
type Console struct {
	out      io.Writer
	errOut   io.Writer
	quiet    bool
	verbose  bool
	printer  *message.Printer
	enricher errs.Enricher

	title *color.Color
	warn  *color.Color
	fail  *color.Color
	good  *color.Color
	faint *color.Color
}

// New creates a Console.
func New(stdout, stderr io.Writer, opts Options) *Console {
	c := &Console{
		out:      stdout,
		errOut:   stderr,
		quiet:    opts.Quiet,
		verbose:  opts.Verbose && !opts.Quiet,
		printer:  message.NewPrinter(language.English),
		enricher: errs.NewEnricher(),
		title:    color.New(color.Bold),
		warn:     color.New(color.FgYellow),
		fail:     color.New(color.FgRed, color.Bold),
		good:     color.New(color.FgGreen),
		faint:    color.New(color.Faint),
	}

	if opts.NoColor {
		for _, col := range []*color.Color{c.title, c.warn, c.fail, c.good, c.faint} {
			col.DisableColor()
		}
	}

	return c
}

// Banner announces the conversion.
func (c *Console) Banner(input, output string) {
	if c.quiet {
		return
	}

	_, _ = c.title.Fprintf(c.out, "%s %s\n", config.ProgramName, config.Version)
	_, _ = c.faint.Fprintf(c.out, "  %s -> %s\n", input, output)
}

// Warning reports a non-fatal index problem.
func (c *Console) Warning(w ltfs.Warning) {
	_, _ = c.warn.Fprintf(c.errOut, "warning: %s\n", w.String())
}

// Error reports a failure with suggestions for fixing it. path names the
// file the failure most likely concerns and may be empty.
func (c *Console) Error(err error, path string) {
	enriched := c.enricher.Enrich(err, path)

	_, _ = c.fail.Fprintf(c.errOut, "error: %s\n", enriched.Error())

	if suggestions := errs.FormatSuggestions(enriched); suggestions != "" {
		_, _ = fmt.Fprintln(c.errOut, "\nSuggestions:")
		_, _ = fmt.Fprintln(c.errOut, suggestions)
	}
}

// Summary prints the counts of a finished conversion.
func (c *Console) Summary(result *convert.Result) {
	if c.quiet || result == nil {
		return
	}

	line := "Listed " + c.Count(result.Written, "record") +
		" (" + c.Count(result.Files, "file") + ", " + c.Count(result.Directories, "directory") + ")"

	var extras []string
	if result.Skipped > 0 {
		extras = append(extras, c.printer.Sprintf("%d skipped", result.Skipped))
	}

	if len(result.Warnings) > 0 {
		extras = append(extras, c.Count(len(result.Warnings), "warning"))
	}

	if len(extras) > 0 {
		line += ", " + strings.Join(extras, ", ")
	}

	_, _ = c.good.Fprintln(c.out, line)
	_, _ = c.faint.Fprintln(c.out, c.printer.Sprintf("  %d bytes in, %d bytes out, %s",
		result.InputBytes, result.OutputBytes, result.Elapsed.Round(time.Millisecond)))

	if result.Truncated {
		_, _ = c.warn.Fprintln(c.out, "  index ended early; the listing may be incomplete")
	}
}

// Count formats n with digit grouping and the noun pluralized to match.
func (c *Console) Count(n int, noun string) string {
	if n != 1 {
		noun = inflector.Pluralize(noun)
	}

	return c.printer.Sprintf("%d %s", n, noun)
}

// Emit prints warnings as the conversion reports them, so Console can be
// used directly as a convert.EventEmitter.
func (c *Console) Emit(event convert.Event) {
	switch ev := event.(type) {
	case convert.DirectoryEntered:
		if c.verbose {
			_, _ = fmt.Fprintf(c.out, "DIRECTORY %s\n", ev.Path)
		}
	case convert.WarningRaised:
		c.Warning(ev.Warning)
	case convert.LoadComplete:
		if !c.quiet && ev.Stats != nil && ev.Stats.Compressed {
			_, _ = c.faint.Fprintln(c.out, c.printer.Sprintf("  decompressed %d bytes to %d bytes",
				ev.Stats.InputBytes, ev.Stats.Bytes))
		}
	}
}
