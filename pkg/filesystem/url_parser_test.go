//nolint:varnamelen // Test files use idiomatic short variable names (t, etc.)
package filesystem_test

import (
	"errors"
	"testing"

	"github.com/joe/ltfs2efu/pkg/filesystem"
)

// TestParsePath_Local tests ParsePath with local filesystem paths.
func TestParsePath_Local(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"/tapes/TAPE01.xml", "TAPE01.xml", `C:\tapes\TAPE01.xml`, "sftp.xml"} {
		result, err := filesystem.ParsePath(input)
		if err != nil {
			t.Fatalf("Unexpected error for %q: %v", input, err)
		}

		if result.IsRemote {
			t.Errorf("IsRemote should be false for %q", input)
		}
		if result.LocalPath != input {
			t.Errorf("LocalPath = %q, want %q", result.LocalPath, input)
		}
	}
}

// TestParsePath_SFTP tests ParsePath with SFTP URLs.
//
//nolint:funlen // Comprehensive table-driven test with many SFTP URL parsing cases
func TestParsePath_SFTP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantErr  error
		wantUser string
		wantHost string
		wantPort int
		wantPath string
	}{
		{
			name:     "relative to home",
			input:    "sftp://user@host/tapes/TAPE01.xml",
			wantUser: "user",
			wantHost: "host",
			wantPort: 22,
			wantPath: "tapes/TAPE01.xml",
		},
		{
			name:     "custom port and absolute path",
			input:    "sftp://admin@server.com:2222//srv/lists/TAPE01.efu",
			wantUser: "admin",
			wantHost: "server.com",
			wantPort: 2222,
			wantPath: "/srv/lists/TAPE01.efu",
		},
		{
			name:    "missing username",
			input:   "sftp://host/TAPE01.xml",
			wantErr: filesystem.ErrMissingUser,
		},
		{
			name:    "missing host",
			input:   "sftp://user@/TAPE01.xml",
			wantErr: filesystem.ErrMissingHost,
		},
		{
			name:    "missing file",
			input:   "sftp://user@host/",
			wantErr: filesystem.ErrMissingRemotePath,
		},
		{
			name:    "port out of range",
			input:   "sftp://user@host:70000/TAPE01.xml",
			wantErr: filesystem.ErrInvalidPort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := filesystem.ParsePath(tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if !result.IsRemote {
				t.Error("IsRemote should be true")
			}
			if result.User != tt.wantUser {
				t.Errorf("User = %q, want %q", result.User, tt.wantUser)
			}
			if result.Host != tt.wantHost {
				t.Errorf("Host = %q, want %q", result.Host, tt.wantHost)
			}
			if result.Port != tt.wantPort {
				t.Errorf("Port = %d, want %d", result.Port, tt.wantPort)
			}
			if result.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", result.Path, tt.wantPath)
			}
		})
	}
}

func TestParsedPath_SameServer(t *testing.T) {
	t.Parallel()

	parse := func(s string) *filesystem.ParsedPath {
		p, err := filesystem.ParsePath(s)
		if err != nil {
			t.Fatalf("ParsePath(%q): %v", s, err)
		}
		return p
	}

	a := parse("sftp://joe@archive/in.xml")

	if !a.SameServer(parse("sftp://joe@archive:22/out.efu")) {
		t.Error("same user, host and port should share a server")
	}
	if a.SameServer(parse("sftp://ann@archive/out.efu")) {
		t.Error("different user should not share a server")
	}
	if a.SameServer(parse("sftp://joe@archive:2222/out.efu")) {
		t.Error("different port should not share a server")
	}
	if a.SameServer(parse("/local/out.efu")) {
		t.Error("local path should not share a server")
	}
}
