//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package console_test

import (
	"bytes"
	"fmt"
	"os"
	"testing"
	"time"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/ltfs2efu/internal/config"
	"github.com/joe/ltfs2efu/internal/console"
	"github.com/joe/ltfs2efu/internal/convert"
	"github.com/joe/ltfs2efu/internal/ltfs"
	"github.com/joe/ltfs2efu/pkg/fileops"
)

func newConsole(quiet bool) (*console.Console, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer

	return console.New(&out, &errOut, console.Options{Quiet: quiet, NoColor: true}), &out, &errOut
}

func TestBanner(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	c, out, _ := newConsole(false)
	c.Banner("TAPE01.xml", "TAPE01.efu")

	g.Expect(out.String()).To(Equal("ltfs2efu " + config.Version + "\n  TAPE01.xml -> TAPE01.efu\n"))
}

func TestQuietSuppressesBannerAndSummary(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	c, out, errOut := newConsole(true)
	c.Banner("TAPE01.xml", "TAPE01.efu")
	c.Summary(&convert.Result{Written: 3})
	c.Warning(ltfs.Warning{Message: "missing </file>", Path: "d"})

	g.Expect(out.String()).To(BeEmpty())
	g.Expect(errOut.String()).To(Equal("warning: missing </file> in d\n"))
}

func TestCount(t *testing.T) {
	t.Parallel()

	c, _, _ := newConsole(false)

	tests := []struct {
		n    int
		noun string
		want string
	}{
		{0, "file", "0 files"},
		{1, "file", "1 file"},
		{2, "directory", "2 directories"},
		{1, "directory", "1 directory"},
		{1234567, "record", "1,234,567 records"},
	}

	for _, tt := range tests {
		if got := c.Count(tt.n, tt.noun); got != tt.want {
			t.Errorf("Count(%d, %q) = %q, want %q", tt.n, tt.noun, got, tt.want)
		}
	}
}

func TestSummary(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	c, out, _ := newConsole(false)
	c.Summary(&convert.Result{
		Files:       1500,
		Directories: 1,
		Written:     1200,
		Skipped:     301,
		Warnings:    []ltfs.Warning{{Message: "missing </file>"}},
		Truncated:   true,
		InputBytes:  2048,
		OutputBytes: 1024,
		Elapsed:     1500 * time.Millisecond,
	})

	g.Expect(out.String()).To(Equal(
		"Listed 1,200 records (1,500 files, 1 directory), 301 skipped, 1 warning\n" +
			"  2,048 bytes in, 1,024 bytes out, 1.5s\n" +
			"  index ended early; the listing may be incomplete\n"))
}

func TestError_PrintsSuggestions(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	c, _, errOut := newConsole(false)
	err := fmt.Errorf("%w TAPE01.xml: %w", fileops.ErrOpenInput, os.ErrNotExist)

	c.Error(err, "TAPE01.xml")

	g.Expect(errOut.String()).To(HavePrefix("error: cannot open input TAPE01.xml: file does not exist\n"))
	g.Expect(errOut.String()).To(ContainSubstring("Suggestions:"))
	g.Expect(errOut.String()).To(ContainSubstring("  • "))
}

func TestEmit(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	c, out, errOut := newConsole(false)

	c.Emit(convert.WarningRaised{Warning: ltfs.Warning{Message: "<contents> before <name>", Path: "TAPE01"}})
	c.Emit(convert.LoadComplete{Stats: &fileops.LoadStats{Compressed: true, InputBytes: 1000, Bytes: 25000}})
	c.Emit(convert.LoadComplete{Stats: &fileops.LoadStats{Bytes: 25000}})
	c.Emit(convert.DirectoryEntered{Path: "TAPE01"})

	g.Expect(errOut.String()).To(Equal("warning: <contents> before <name> in TAPE01\n"))
	g.Expect(out.String()).To(Equal("  decompressed 1,000 bytes to 25,000 bytes\n"))
}

func TestEmit_VerboseListsDirectories(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var out, errOut bytes.Buffer

	c := console.New(&out, &errOut, console.Options{Verbose: true, NoColor: true})
	c.Emit(convert.DirectoryEntered{Path: "TAPE01", Depth: 1})
	c.Emit(convert.DirectoryEntered{Path: `TAPE01\clips`, Depth: 2})
	g.Expect(out.String()).To(Equal("DIRECTORY TAPE01\nDIRECTORY TAPE01\\clips\n"))

	out.Reset()

	quiet := console.New(&out, &errOut, console.Options{Verbose: true, Quiet: true, NoColor: true})
	quiet.Emit(convert.DirectoryEntered{Path: "TAPE01"})
	g.Expect(out.String()).To(BeEmpty())
}
