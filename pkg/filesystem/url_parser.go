package filesystem

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Exported variables.
var (
	ErrNotSFTP           = errors.New("expected sftp:// scheme")
	ErrMissingUser       = errors.New("SFTP URL must include username (sftp://user@host/path)")
	ErrMissingHost       = errors.New("SFTP URL must include host")
	ErrInvalidPort       = errors.New("invalid port number")
	ErrMissingRemotePath = errors.New("SFTP URL must name a file (sftp://user@host/path/to/index.xml)")
)

const (
	sftpScheme      = "sftp://"
	defaultSFTPPort = 22
)

// ParsedPath represents either a local path or an SFTP URL.
type ParsedPath struct {
	IsRemote bool

	// For local paths
	LocalPath string

	// For SFTP paths
	Host string
	Port int
	User string
	Path string // Remote path
}

// SameServer reports whether p and other reach the same account on the same server.
func (p *ParsedPath) SameServer(other *ParsedPath) bool {
	return p.IsRemote && other.IsRemote &&
		p.Host == other.Host && p.Port == other.Port && p.User == other.User
}

// ParsePath parses a path string, detecting whether it's a local path or SFTP URL.
// SFTP URLs have the format: sftp://user@host:port/path/to/index.xml
// Port is optional (defaults to 22).
// Examples:
//   - sftp://joe@archive.example.com/tapes/TAPE01.xml  (relative to home)
//   - sftp://joe@archive.example.com:2222//srv/lists/TAPE01.efu  (absolute)
//   - /local/path/TAPE01.xml (local path)
func ParsePath(path string) (*ParsedPath, error) {
	if strings.HasPrefix(path, sftpScheme) {
		return parseSFTPURL(path)
	}

	return &ParsedPath{
		IsRemote:  false,
		LocalPath: path,
	}, nil
}

func parseSFTPURL(sftpURL string) (*ParsedPath, error) {
	u, err := url.Parse(sftpURL) //nolint:varnamelen // u is idiomatic for URL
	if err != nil {
		return nil, fmt.Errorf("invalid SFTP URL: %w", err)
	}

	if u.Scheme != "sftp" {
		return nil, fmt.Errorf("%w, got %s://", ErrNotSFTP, u.Scheme)
	}

	if u.User == nil || u.User.Username() == "" {
		return nil, ErrMissingUser
	}

	host := u.Hostname()
	if host == "" {
		return nil, ErrMissingHost
	}

	port := defaultSFTPPort
	if portStr := u.Port(); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil || p <= 0 || p > 65535 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPort, portStr)
		}
		port = p
	}

	// sftp://user@host/path  → relative to home directory
	// sftp://user@host//path → absolute path /path
	remotePath := u.Path
	switch {
	case remotePath == "" || remotePath == "/":
		return nil, ErrMissingRemotePath
	case strings.HasPrefix(remotePath, "//"):
		remotePath = remotePath[1:]
	default:
		remotePath = strings.TrimPrefix(remotePath, "/")
	}

	return &ParsedPath{
		IsRemote: true,
		Host:     host,
		Port:     port,
		User:     u.User.Username(),
		Path:     remotePath,
	}, nil
}
