// Package config handles application configuration and command-line argument parsing.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/alexflint/go-arg"

	"github.com/joe/ltfs2efu/internal/ltfs"
	"github.com/joe/ltfs2efu/pkg/filesystem"
)

// ProgramName is the name shown in usage and version output.
const ProgramName = "ltfs2efu"

// Version is the release version. Overridden at build time with -ldflags.
//
//nolint:gochecknoglobals // Set by the linker
var Version = "1.0.0"

// Defaults applied when neither a flag nor the settings file sets a value.
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Exported variables.
var (
	// ErrExitClean is returned after --help or --version has been printed.
	ErrExitClean = errors.New("exit requested")

	ErrInvalidLogLevel  = errors.New("invalid log level")
	ErrInvalidLogFormat = errors.New("invalid log format")
	ErrInvalidMaxDepth  = errors.New("max depth must be positive")
	ErrSamePath         = errors.New("input and output are the same file")
)

// UsageError is a command line the program cannot run with.
type UsageError struct {
	Err   error
	Usage string
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// Config holds the application configuration
type Config struct {
	Input      string   `arg:"positional,required" placeholder:"INDEX" help:"LTFS index to read (.xml or .xml.gz); local path or sftp://user@host[:port]/path"`
	Output     string   `arg:"positional,required" placeholder:"LISTING" help:"EFU listing to write; local path or sftp:// URL"`
	ConfigFile string   `arg:"-c,--config" placeholder:"FILE" help:"HCL settings file; flags override its values"`
	Include    []string `arg:"-i,--include,separate" placeholder:"GLOB" help:"only list paths matching GLOB (repeatable)"`
	Exclude    []string `arg:"-x,--exclude,separate" placeholder:"GLOB" help:"leave out paths matching GLOB (repeatable)"`
	Separator  string   `arg:"--separator" placeholder:"STR" help:"path separator in the listing [default: \\]"`
	MaxDepth   int      `arg:"--max-depth" placeholder:"N" help:"deepest directory nesting accepted [default: 1024]"`
	LogLevel   string   `arg:"--log-level" placeholder:"LEVEL" help:"debug|info|warn|error [default: warn]"`
	LogFormat  string   `arg:"--log-format" placeholder:"FORMAT" help:"text|json [default: text]"`
	LogFile    string   `arg:"--log-file" placeholder:"FILE" help:"append logs to FILE instead of stderr"`
	Progress   bool     `arg:"-p,--progress" help:"show a progress screen when stdout is a terminal"`
	Quiet      bool     `arg:"-q,--quiet" help:"suppress the banner and summary"`
	Verbose    bool     `arg:"-v,--verbose" help:"print a DIRECTORY line for every directory walked"`
}

// Description returns the program description for go-arg
func (Config) Description() string {
	return "Converts an LTFS tape index into an EFU file listing for Everything"
}

// Version returns the version string for go-arg
func (Config) Version() string {
	return ProgramName + " " + Version
}

// Parse parses args (without the program name). Help and version text go
// to stdout and return ErrExitClean. Any other problem is a *UsageError.
func Parse(args []string, stdout io.Writer) (*Config, error) {
	cfg := &Config{}

	parser, err := arg.NewParser(arg.Config{Program: ProgramName}, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build argument parser: %w", err)
	}

	err = parser.Parse(args)

	switch {
	case errors.Is(err, arg.ErrHelp):
		parser.WriteHelp(stdout)
		return nil, ErrExitClean
	case errors.Is(err, arg.ErrVersion):
		_, _ = fmt.Fprintln(stdout, cfg.Version())
		return nil, ErrExitClean
	case err != nil:
		return nil, &UsageError{Err: err, Usage: usage(parser)}
	}

	cfg, err = PostProcessConfig(cfg)
	if err != nil {
		return nil, &UsageError{Err: err, Usage: usage(parser)}
	}

	return cfg, nil
}

// PostProcessConfig merges the settings file into cfg, fills defaults and
// validates the result.
func PostProcessConfig(cfg *Config) (*Config, error) {
	if cfg.ConfigFile != "" {
		settings, err := LoadSettings(cfg.ConfigFile)
		if err != nil {
			return nil, err
		}

		settings.ApplyTo(cfg)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that go-arg cannot check by itself.
func (cfg *Config) Validate() error {
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q (valid: debug, info, warn, error)", ErrInvalidLogLevel, cfg.LogLevel)
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q (valid: text, json)", ErrInvalidLogFormat, cfg.LogFormat)
	}

	if cfg.MaxDepth <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxDepth, cfg.MaxDepth)
	}

	return cfg.ValidatePaths()
}

// ValidatePaths checks that input and output are usable local paths or
// well-formed SFTP URLs, and that they do not name the same file.
func (cfg *Config) ValidatePaths() error {
	in, err := filesystem.ParsePath(cfg.Input)
	if err != nil {
		return fmt.Errorf("invalid input path: %w", err)
	}

	out, err := filesystem.ParsePath(cfg.Output)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	sameLocal := !in.IsRemote && !out.IsRemote && filepath.Clean(in.LocalPath) == filepath.Clean(out.LocalPath)
	sameRemote := in.SameServer(out) && path.Clean(in.Path) == path.Clean(out.Path)

	if sameLocal || sameRemote {
		return fmt.Errorf("%w: %s", ErrSamePath, cfg.Input)
	}

	return nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Separator == "" {
		cfg.Separator = ltfs.DefaultSeparator
	}

	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = ltfs.DefaultMaxDepth
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
}

func usage(parser *arg.Parser) string {
	var buf bytes.Buffer

	parser.WriteUsage(&buf)

	return buf.String()
}
