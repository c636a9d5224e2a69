package fileops

import (
	"context"
	"fmt"
	"time"

	"github.com/pbnjay/memory"

	"github.com/joe/ltfs2efu/pkg/filesystem"
)

// FileOps provides file operations with dependency injection for filesystem access.
// Input and output may live on different filesystems (e.g., SFTP to local).
type FileOps struct {
	InputFS  filesystem.FileSystem
	OutputFS filesystem.FileSystem

	// MemoryLimit caps the loaded document size. Zero means physical memory.
	MemoryLimit uint64
}

// NewFileOps creates a new FileOps instance reading and writing through fs.
func NewFileOps(fs filesystem.FileSystem) *FileOps {
	return &FileOps{InputFS: fs, OutputFS: fs}
}

// NewDualFileOps creates a new FileOps instance with separate input and output filesystems.
func NewDualFileOps(inputFS, outputFS filesystem.FileSystem) *FileOps {
	return &FileOps{InputFS: inputFS, OutputFS: outputFS}
}

// NewRealFileOps creates a new FileOps instance using the local disk.
func NewRealFileOps() *FileOps {
	return NewFileOps(filesystem.NewRealFileSystem())
}

// CreateOutput creates or truncates the listing at path.
func (fo *FileOps) CreateOutput(path string) (filesystem.File, error) {
	file, err := fo.OutputFS.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrCreateOutput, path, err)
	}

	return file, nil
}

// LoadDocument reads the whole index at path into memory. Input ending in
// .gz is decompressed. An input larger than the memory limit is refused
// before any of it is read, and a file that ends before its reported size
// fails with ErrShortRead.
func (fo *FileOps) LoadDocument(ctx context.Context, path string, progress ProgressCallback) ([]byte, *LoadStats, error) {
	start := time.Now()
	stats := &LoadStats{Compressed: IsCompressed(path)}

	file, err := fo.InputFS.Open(path)
	if err != nil {
		return nil, stats, fmt.Errorf("%w %s: %w", ErrOpenInput, path, err)
	}

	defer func() {
		_ = file.Close()
	}()

	info, err := file.Stat()
	if err != nil {
		return nil, stats, fmt.Errorf("%w %s: %w", ErrReadInput, path, err)
	}

	size := info.Size()
	limit := fo.memoryLimit()

	if limit > 0 && uint64(size) > limit { //nolint:gosec // File sizes are non-negative
		return nil, stats, fmt.Errorf("%w: %s is %d bytes, available memory is %d bytes",
			ErrInputTooLarge, path, size, limit)
	}

	src := &progressReader{ctx: ctx, r: file, total: size, progress: progress}

	var doc []byte
	if stats.Compressed {
		doc, err = readCompressed(src, limit)
	} else {
		doc, err = readExact(src, size)
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, stats, fmt.Errorf("load %s: %w", path, ctxErr)
	}

	if err != nil {
		return nil, stats, fmt.Errorf("failed to read %s: %w", path, err)
	}

	stats.Bytes = int64(len(doc))
	stats.InputBytes = src.read
	stats.ReadTime = time.Since(start)

	return doc, stats, nil
}

func (fo *FileOps) memoryLimit() uint64 {
	if fo.MemoryLimit > 0 {
		return fo.MemoryLimit
	}

	return memory.TotalMemory()
}
