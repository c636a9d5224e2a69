//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package fileops_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/pgzip"
	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/ltfs2efu/pkg/fileops"
	"github.com/joe/ltfs2efu/pkg/filesystem"
)

const sampleIndex = `<?xml version="1.0" encoding="UTF-8"?><ltfsindex><directory><name>T</name><contents/></directory></ltfsindex>`

func gzipped(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer

	zw := pgzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("compress: %v", err)
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("compress close: %v", err)
	}

	return buf.Bytes()
}

func TestLoadDocument_Plain(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("TAPE01.xml", []byte(sampleIndex))

	var lastRead, lastTotal int64
	progress := func(read, total int64) {
		lastRead, lastTotal = read, total
	}

	doc, stats, err := fileops.NewFileOps(fs).LoadDocument(context.Background(), "TAPE01.xml", progress)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(doc)).To(Equal(sampleIndex))
	g.Expect(stats.Bytes).To(Equal(int64(len(sampleIndex))))
	g.Expect(stats.InputBytes).To(Equal(int64(len(sampleIndex))))
	g.Expect(stats.Compressed).To(BeFalse())
	g.Expect(lastRead).To(Equal(lastTotal))
	g.Expect(lastTotal).To(Equal(int64(len(sampleIndex))))
}

func TestLoadDocument_Compressed(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	compressed := gzipped(t, []byte(sampleIndex))

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("TAPE01.xml.GZ", compressed)

	doc, stats, err := fileops.NewFileOps(fs).LoadDocument(context.Background(), "TAPE01.xml.GZ", nil)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(doc)).To(Equal(sampleIndex))
	g.Expect(stats.Compressed).To(BeTrue())
	g.Expect(stats.Bytes).To(Equal(int64(len(sampleIndex))))
	g.Expect(stats.InputBytes).To(Equal(int64(len(compressed))))
}

func TestLoadDocument_LocalDisk(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := t.TempDir() + "/TAPE01.xml"
	g.Expect(os.WriteFile(path, []byte(sampleIndex), 0o600)).To(Succeed())

	doc, _, err := fileops.NewRealFileOps().LoadDocument(context.Background(), path, nil)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(doc)).To(Equal(sampleIndex))
}

func TestLoadDocument_EmptyFile(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("empty.xml", nil)

	doc, _, err := fileops.NewFileOps(fs).LoadDocument(context.Background(), "empty.xml", nil)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(doc).To(BeEmpty())
}

func TestLoadDocument_TooLarge(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("big.xml", []byte(strings.Repeat("x", 200)))
	fs.AddFile("bomb.xml.gz", gzipped(t, []byte(strings.Repeat("a", 5000))))

	ops := fileops.NewFileOps(fs)
	ops.MemoryLimit = 100

	_, _, err := ops.LoadDocument(context.Background(), "big.xml", nil)
	g.Expect(errors.Is(err, fileops.ErrInputTooLarge)).To(BeTrue())

	_, _, err = ops.LoadDocument(context.Background(), "bomb.xml.gz", nil)
	g.Expect(errors.Is(err, fileops.ErrInputTooLarge)).To(BeTrue())
}

func TestLoadDocument_Missing(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, _, err := fileops.NewFileOps(filesystem.NewMockFileSystem()).LoadDocument(context.Background(), "nope.xml", nil)
	g.Expect(errors.Is(err, fileops.ErrOpenInput)).To(BeTrue())
	g.Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
}

func TestLoadDocument_ShortRead(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := &shrinkingFS{data: []byte(sampleIndex), reportedSize: int64(len(sampleIndex) + 50)}

	_, _, err := fileops.NewFileOps(fs).LoadDocument(context.Background(), "TAPE01.xml", nil)
	g.Expect(errors.Is(err, fileops.ErrShortRead)).To(BeTrue())
	g.Expect(err.Error()).To(ContainSubstring("of 159 bytes"))
}

func TestLoadDocument_BadGzip(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("plain.xml.gz", []byte(sampleIndex))

	_, _, err := fileops.NewFileOps(fs).LoadDocument(context.Background(), "plain.xml.gz", nil)
	g.Expect(errors.Is(err, fileops.ErrReadInput)).To(BeTrue())
}

func TestLoadDocument_TruncatedGzip(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	compressed := gzipped(t, []byte(strings.Repeat(sampleIndex, 100)))

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("cut.xml.gz", compressed[:len(compressed)/2])

	_, _, err := fileops.NewFileOps(fs).LoadDocument(context.Background(), "cut.xml.gz", nil)
	g.Expect(err).Should(HaveOccurred())
	g.Expect(errors.Is(err, fileops.ErrShortRead) || errors.Is(err, fileops.ErrReadInput)).To(BeTrue())
}

func TestLoadDocument_Cancelled(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("TAPE01.xml", []byte(sampleIndex))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := fileops.NewFileOps(fs).LoadDocument(ctx, "TAPE01.xml", nil)
	g.Expect(errors.Is(err, context.Canceled)).To(BeTrue())
}

func TestCreateOutput(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewMockFileSystem()
	fs.FailCreate("locked.efu", os.ErrPermission)

	ops := fileops.NewDualFileOps(filesystem.NewMockFileSystem(), fs)

	_, err := ops.CreateOutput("locked.efu")
	g.Expect(errors.Is(err, fileops.ErrCreateOutput)).To(BeTrue())
	g.Expect(errors.Is(err, os.ErrPermission)).To(BeTrue())

	out, err := ops.CreateOutput("ok.efu")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(out.Close()).To(Succeed())
	g.Expect(fs.GetFile("ok.efu")).To(BeEmpty())
}

func TestCountingWriter(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var buf bytes.Buffer
	w := fileops.NewCountingWriter(&buf)

	_, err := io.WriteString(w, "Filename")
	g.Expect(err).ShouldNot(HaveOccurred())
	_, err = io.WriteString(w, ",Size")
	g.Expect(err).ShouldNot(HaveOccurred())

	g.Expect(w.Count()).To(Equal(int64(13)))
	g.Expect(buf.String()).To(Equal("Filename,Size"))
}

func TestCountingWriter_ShortWrite(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	w := fileops.NewCountingWriter(halfWriter{})

	n, err := w.Write([]byte("abcd"))
	g.Expect(n).To(Equal(2))
	g.Expect(err).To(MatchError(io.ErrShortWrite))
	g.Expect(w.Count()).To(Equal(int64(2)))
}

func TestCountingWriter_WrapsErrors(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	errFull := errors.New("no space left on device")
	w := fileops.NewCountingWriter(errWriter{err: errFull})

	_, err := w.Write([]byte("abcd"))
	g.Expect(errors.Is(err, fileops.ErrWriteOutput)).To(BeTrue())
	g.Expect(errors.Is(err, errFull)).To(BeTrue())
}

func TestIsCompressed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"index.xml", false},
		{"index.xml.gz", true},
		{"INDEX.XML.GZ", true},
		{"sftp://joe@host/index.gz", true},
		{"gz", false},
		{"index.gzip", false},
	}

	for _, tt := range tests {
		if got := fileops.IsCompressed(tt.path); got != tt.want {
			t.Errorf("IsCompressed(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

type halfWriter struct{}

func (halfWriter) Write(p []byte) (int, error) {
	return len(p) / 2, nil
}

type errWriter struct {
	err error
}

func (w errWriter) Write([]byte) (int, error) {
	return 0, w.err
}

// shrinkingFS serves one file whose reported size is larger than its content,
// like an index that was truncated while being read.
type shrinkingFS struct {
	data         []byte
	reportedSize int64
}

func (fs *shrinkingFS) Open(string) (filesystem.File, error) {
	return &shrinkingFile{Reader: bytes.NewReader(fs.data), size: fs.reportedSize}, nil
}

func (fs *shrinkingFS) Create(string) (filesystem.File, error) {
	return nil, os.ErrPermission
}

func (fs *shrinkingFS) Stat(string) (os.FileInfo, error) {
	return sizeInfo(fs.reportedSize), nil
}

type shrinkingFile struct {
	*bytes.Reader
	size int64
}

func (f *shrinkingFile) Write([]byte) (int, error) { return 0, os.ErrPermission }
func (f *shrinkingFile) Close() error              { return nil }
func (f *shrinkingFile) Stat() (os.FileInfo, error) {
	return sizeInfo(f.size), nil
}

type sizeInfo int64

func (s sizeInfo) Name() string       { return "TAPE01.xml" }
func (s sizeInfo) Size() int64        { return int64(s) }
func (s sizeInfo) Mode() os.FileMode  { return 0o644 }
func (s sizeInfo) ModTime() time.Time { return time.Time{} }
func (s sizeInfo) IsDir() bool        { return false }
func (s sizeInfo) Sys() any           { return nil }
