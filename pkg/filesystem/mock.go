package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"sync"
	"time"
)

// MockFileSystem is an in-memory filesystem implementation for testing.
// Failures can be injected per path with FailOpen, FailCreate and FailWrite.
type MockFileSystem struct {
	mu        sync.RWMutex
	files     map[string][]byte
	openErr   map[string]error
	createErr map[string]error
	writeErr  map[string]error
}

// NewMockFileSystem creates a new in-memory filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:     make(map[string][]byte),
		openErr:   make(map[string]error),
		createErr: make(map[string]error),
		writeErr:  make(map[string]error),
	}
}

// AddFile stores content at path, replacing any previous file.
func (fs *MockFileSystem) AddFile(path string, content []byte) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.files[path] = append([]byte(nil), content...)
}

// GetFile returns the content stored at path.
func (fs *MockFileSystem) GetFile(path string) ([]byte, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	data, exists := fs.files[path]
	if !exists {
		return nil, fmt.Errorf("get %s: %w", path, os.ErrNotExist)
	}

	return append([]byte(nil), data...), nil
}

// FailOpen makes Open(path) return err.
func (fs *MockFileSystem) FailOpen(path string, err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.openErr[path] = err
}

// FailCreate makes Create(path) return err.
func (fs *MockFileSystem) FailCreate(path string, err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.createErr[path] = err
}

// FailWrite makes every write to a file created at path return err.
func (fs *MockFileSystem) FailWrite(path string, err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.writeErr[path] = err
}

// Create creates or truncates a file for writing. Content becomes visible on Close.
func (fs *MockFileSystem) Create(name string) (File, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.createErr[name]; err != nil {
		return nil, err
	}

	fs.files[name] = []byte{}

	return &mockFileHandle{
		fs:       fs,
		path:     name,
		writer:   &bytes.Buffer{},
		writeErr: fs.writeErr[name],
	}, nil
}

// Open opens a file for reading.
func (fs *MockFileSystem) Open(name string) (File, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	if err := fs.openErr[name]; err != nil {
		return nil, err
	}

	data, exists := fs.files[name]
	if !exists {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
	}

	return &mockFileHandle{
		fs:     fs,
		path:   name,
		reader: bytes.NewReader(data),
	}, nil
}

// Stat returns file information.
func (fs *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	data, exists := fs.files[name]
	if !exists {
		return nil, &os.PathError{Op: "stat", Path: name, Err: os.ErrNotExist}
	}

	return &mockFileInfo{name: path.Base(name), size: int64(len(data))}, nil
}

type mockFileInfo struct {
	name string
	size int64
}

func (fi *mockFileInfo) Name() string       { return fi.name }
func (fi *mockFileInfo) Size() int64        { return fi.size }
func (fi *mockFileInfo) Mode() os.FileMode  { return 0o644 } //nolint:mnd // rw-r--r--
func (fi *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (fi *mockFileInfo) IsDir() bool        { return false }
func (fi *mockFileInfo) Sys() any           { return nil }

type mockFileHandle struct {
	fs       *MockFileSystem
	path     string
	reader   *bytes.Reader
	writer   *bytes.Buffer
	writeErr error
	closed   bool
}

func (f *mockFileHandle) Read(p []byte) (int, error) {
	if f.closed {
		return 0, os.ErrClosed
	}
	if f.reader == nil {
		return 0, io.EOF
	}
	return f.reader.Read(p) //nolint:wrapcheck // io.EOF must pass through unwrapped
}

func (f *mockFileHandle) Write(p []byte) (int, error) {
	if f.closed {
		return 0, os.ErrClosed
	}
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	if f.writer == nil {
		return 0, &os.PathError{Op: "write", Path: f.path, Err: os.ErrPermission}
	}
	return f.writer.Write(p) //nolint:wrapcheck // bytes.Buffer never fails
}

func (f *mockFileHandle) Close() error {
	if f.closed {
		return os.ErrClosed
	}
	f.closed = true

	if f.writer != nil {
		f.fs.mu.Lock()
		defer f.fs.mu.Unlock()

		f.fs.files[f.path] = f.writer.Bytes()
	}

	return nil
}

func (f *mockFileHandle) Stat() (os.FileInfo, error) {
	if f.closed {
		return nil, os.ErrClosed
	}

	return f.fs.Stat(f.path)
}
