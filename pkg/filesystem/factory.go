package filesystem

import (
	"errors"
	"fmt"
)

// ErrConnect marks a failure to reach an SFTP server.
var ErrConnect = errors.New("remote connection failed")

// CreateFileSystem creates a FileSystem for the given path.
// Returns (filesystem, basePath, closer, error).
// - filesystem: The FileSystem to use for operations
// - basePath: The actual path to use with the filesystem (stripped of URL prefix)
// - closer: A function to call when done (closes SFTP connections), or nil for local
func CreateFileSystem(pathStr string) (FileSystem, string, func(), error) {
	parsed, err := ParsePath(pathStr)
	if err != nil {
		return nil, "", nil, err
	}

	if !parsed.IsRemote {
		return NewRealFileSystem(), parsed.LocalPath, nil, nil
	}

	conn, err := Connect(parsed.Host, parsed.Port, parsed.User)
	if err != nil {
		return nil, "", nil, fmt.Errorf("%w: %s@%s:%d: %w",
			ErrConnect, parsed.User, parsed.Host, parsed.Port, err)
	}

	closer := func() {
		_ = conn.Close()
	}

	return NewSFTPFileSystem(conn.Client()), parsed.Path, closer, nil
}

// Endpoints resolves the input and output paths of one conversion. When both
// name the same SFTP account and server, a single connection is shared.
// The returned closer is never nil.
func Endpoints(inputPath, outputPath string) (
	inputFS FileSystem,
	outputFS FileSystem,
	inPath string,
	outPath string,
	closer func(),
	err error,
) {
	in, err := ParsePath(inputPath)
	if err != nil {
		return nil, nil, "", "", nil, fmt.Errorf("invalid input path: %w", err)
	}

	out, err := ParsePath(outputPath)
	if err != nil {
		return nil, nil, "", "", nil, fmt.Errorf("invalid output path: %w", err)
	}

	var inCloser, outCloser func()

	inputFS, inPath, inCloser, err = CreateFileSystem(inputPath)
	if err != nil {
		return nil, nil, "", "", nil, fmt.Errorf("failed to open input filesystem: %w", err)
	}

	if in.IsRemote && out.IsRemote && in.SameServer(out) {
		outputFS, outPath = inputFS, out.Path
	} else {
		outputFS, outPath, outCloser, err = CreateFileSystem(outputPath)
		if err != nil {
			if inCloser != nil {
				inCloser()
			}

			return nil, nil, "", "", nil, fmt.Errorf("failed to open output filesystem: %w", err)
		}
	}

	closer = func() {
		if outCloser != nil {
			outCloser()
		}
		if inCloser != nil {
			inCloser()
		}
	}

	return inputFS, outputFS, inPath, outPath, closer, nil
}
