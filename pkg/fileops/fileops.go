// Package fileops loads index documents into memory and counts what is
// written to listings.
package fileops

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/klauspost/cpuid"
	"github.com/klauspost/pgzip"
)

// Exported constants.
const (
	// BufferSize is the read chunk and output buffer size (64KB)
	BufferSize = 64 * 1024
	// CompressedSuffix marks gzip-compressed input
	CompressedSuffix = ".gz"
)

// Exported variables.
var (
	ErrOpenInput     = errors.New("cannot open input")
	ErrReadInput     = errors.New("cannot read input")
	ErrShortRead     = errors.New("short read")
	ErrInputTooLarge = errors.New("input too large")
	ErrCreateOutput  = errors.New("cannot create output")
	ErrWriteOutput   = errors.New("cannot write output")
)

// decompression block sizing
const (
	decompressBlockSize = 1 << 20
	minDecompressBlocks = 4
	maxDecompressBlocks = 16
)

// LoadStats describes one LoadDocument call.
type LoadStats struct {
	// Bytes is the size of the loaded document (after decompression)
	Bytes int64
	// InputBytes is the size read from the input file
	InputBytes int64
	Compressed bool
	ReadTime   time.Duration
}

// ProgressCallback is called while the input is read.
// Parameters: bytesRead, totalBytes (the input file size)
type ProgressCallback func(bytesRead int64, totalBytes int64)

// CountingWriter counts bytes written through it and reports a write that
// accepts fewer bytes than given as io.ErrShortWrite.
type CountingWriter struct {
	w io.Writer
	n int64
}

// NewCountingWriter wraps w.
func NewCountingWriter(w io.Writer) *CountingWriter {
	return &CountingWriter{w: w}
}

// Count returns the number of bytes written so far.
func (c *CountingWriter) Count() int64 {
	return c.n
}

// Write implements io.Writer.
func (c *CountingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)

	if err != nil {
		return n, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	if n < len(p) {
		return n, io.ErrShortWrite
	}

	return n, nil
}

// IsCompressed reports whether path names gzip-compressed input.
func IsCompressed(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), CompressedSuffix)
}

// decompressBlocks sizes the parallel decompressor to the physical cores.
func decompressBlocks() int {
	cores := runtime.NumCPU()
	if cpuid.CPU.ThreadsPerCore > 1 {
		cores /= cpuid.CPU.ThreadsPerCore
	}

	return min(max(cores, minDecompressBlocks), maxDecompressBlocks)
}

// progressReader reports progress and stops on context cancellation.
type progressReader struct {
	ctx      context.Context //nolint:containedctx // Scoped to a single load
	r        io.Reader
	read     int64
	total    int64
	progress ProgressCallback
}

func (p *progressReader) Read(buf []byte) (int, error) {
	if err := p.ctx.Err(); err != nil {
		return 0, err //nolint:wrapcheck // Cancellation passes through unwrapped
	}

	n, err := p.r.Read(buf)
	p.read += int64(n)

	if p.progress != nil && n > 0 {
		p.progress(p.read, p.total)
	}

	return n, err //nolint:wrapcheck // io.EOF must pass through unwrapped
}

// readExact reads exactly size bytes.
func readExact(r io.Reader, size int64) ([]byte, error) {
	doc := make([]byte, size)

	n, err := io.ReadFull(r, doc)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: got %d of %d bytes", ErrShortRead, n, size)
		}

		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	return doc, nil
}

// readCompressed decompresses r, refusing output larger than limit (0 for no limit).
func readCompressed(r io.Reader, limit uint64) ([]byte, error) {
	zr, err := pgzip.NewReaderN(bufio.NewReaderSize(r, BufferSize), decompressBlockSize, decompressBlocks())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	defer func() {
		_ = zr.Close()
	}()

	src := io.Reader(zr)
	if limit > 0 {
		src = io.LimitReader(zr, int64(limit)+1) //nolint:gosec // limit is physical memory size
	}

	var out bytes.Buffer

	_, err = out.ReadFrom(src)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: %w", ErrShortRead, err)
		}

		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	if limit > 0 && uint64(out.Len()) > limit {
		return nil, fmt.Errorf("%w: decompressed index exceeds available memory (%d bytes)", ErrInputTooLarge, limit)
	}

	return out.Bytes(), nil
}
