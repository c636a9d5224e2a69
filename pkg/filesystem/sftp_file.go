package filesystem

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/sftp"
)

// SFTPFile wraps sftp.File to implement the filesystem.File interface.
type SFTPFile struct {
	file *sftp.File
	path string
}

func newSFTPFile(file *sftp.File, path string) *SFTPFile {
	return &SFTPFile{
		file: file,
		path: path,
	}
}

// Close closes the SFTP file.
func (f *SFTPFile) Close() error {
	err := f.file.Close()
	if err != nil {
		return fmt.Errorf("failed to close remote file %s: %w", f.path, err)
	}

	return nil
}

// Read reads from the SFTP file.
func (f *SFTPFile) Read(p []byte) (int, error) {
	return f.file.Read(p) //nolint:wrapcheck // io.EOF must pass through unwrapped
}

// Stat returns file information for the SFTP file.
func (f *SFTPFile) Stat() (os.FileInfo, error) {
	return f.file.Stat() //nolint:wrapcheck // Thin passthrough
}

// Write writes to the SFTP file.
func (f *SFTPFile) Write(p []byte) (int, error) {
	return f.file.Write(p) //nolint:wrapcheck // Thin passthrough
}

// WriteTo lets io.Copy use the client's pipelined reads.
func (f *SFTPFile) WriteTo(w io.Writer) (int64, error) {
	return f.file.WriteTo(w) //nolint:wrapcheck // Thin passthrough
}
