// Package efu writes file listings in the EFU format read by the Everything
// search tool: a CSV header followed by one quoted-path record per entry,
// every line ending in CRLF.
package efu

import (
	"io"
	"strconv"
)

// Attribute bits, using the Windows file attribute values the listing
// consumer expects.
const (
	AttrReadOnly  uint32 = 0x01
	AttrDirectory uint32 = 0x10
)

// Header is the first line of every listing.
const Header = "Filename,Size,Date Modified,Date Created,Attributes\r\n"

// Record is one listed file or directory. Size, Modified and Created are
// written exactly as read from the index.
type Record struct {
	Path       string
	Size       string
	Modified   string
	Created    string
	Attributes uint32
}

// IsDir reports whether the directory attribute bit is set.
func (r Record) IsDir() bool {
	return r.Attributes&AttrDirectory != 0
}

// AppendRecord appends the formatted line for r to buf. The path is quoted
// but embedded quotes are not escaped; the consumer does not expect them.
func AppendRecord(buf []byte, r Record) []byte {
	buf = append(buf, '"')
	buf = append(buf, r.Path...)
	buf = append(buf, '"', ',')
	buf = append(buf, r.Size...)
	buf = append(buf, ',')
	buf = append(buf, r.Modified...)
	buf = append(buf, ',')
	buf = append(buf, r.Created...)
	buf = append(buf, ',')
	buf = strconv.AppendUint(buf, uint64(r.Attributes), 10)
	buf = append(buf, '\r', '\n')

	return buf
}

// Writer formats records onto an output sink.
type Writer struct {
	out     io.Writer
	buf     []byte
	records int
}

// NewWriter creates a Writer on out. Nothing is written until WriteHeader
// or WriteRecord is called.
func NewWriter(out io.Writer) *Writer {
	return &Writer{
		out: out,
		buf: make([]byte, 0, 256), //nolint:mnd // Typical line length
	}
}

// Records returns how many records have been written.
func (w *Writer) Records() int {
	return w.records
}

// WriteHeader writes the column header line.
func (w *Writer) WriteHeader() error {
	return w.write([]byte(Header))
}

// WriteRecord writes one record line. Each call completes its write before
// returning.
func (w *Writer) WriteRecord(r Record) error {
	w.buf = AppendRecord(w.buf[:0], r)

	err := w.write(w.buf)
	if err != nil {
		return err
	}

	w.records++

	return nil
}

func (w *Writer) write(p []byte) error {
	n, err := w.out.Write(p)
	if err != nil {
		return err //nolint:wrapcheck // Callers classify sink errors themselves
	}

	if n != len(p) {
		return io.ErrShortWrite
	}

	return nil
}
