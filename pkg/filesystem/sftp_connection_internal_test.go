package filesystem

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/ssh"
)

type fakeCloser struct {
	err    error
	closed int
}

func (c *fakeCloser) Close() error {
	c.closed++
	return c.err
}

func TestSFTPConnection_Close_NilClients(t *testing.T) {
	t.Parallel()

	conn := &SFTPConnection{}

	if err := conn.Close(); err != nil {
		t.Errorf("Close() with no clients should succeed, got %v", err)
	}

	if conn.Client() != nil {
		t.Error("Client() should be nil when no session was opened")
	}
}

func TestSFTPConnection_Close_SSHClientFails(t *testing.T) {
	t.Parallel()

	errClose := errors.New("ssh close failed")
	sshClient := &fakeCloser{err: errClose}
	conn := &SFTPConnection{sshClient: sshClient}

	if err := conn.Close(); !errors.Is(err, errClose) {
		t.Errorf("Close() = %v, want %v", err, errClose)
	}

	if sshClient.closed != 1 {
		t.Errorf("ssh client closed %d times, want 1", sshClient.closed)
	}
}

func TestSFTPConnection_String(t *testing.T) {
	t.Parallel()

	conn := &SFTPConnection{host: "archive", port: 2222, user: "joe"}

	if got := conn.String(); got != "joe@archive:2222" {
		t.Errorf("String() = %q", got)
	}
}

func TestLoadKeyFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if got := loadKeyFiles(dir); len(got) != 0 {
		t.Fatalf("expected no keys in empty dir, got %d", len(got))
	}

	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	block, err := ssh.MarshalPrivateKey(key, "")
	if err != nil {
		t.Fatalf("MarshalPrivateKey: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "id_ed25519"), pem.EncodeToMemory(block), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	// Garbage under another default name is skipped.
	if err := os.WriteFile(filepath.Join(dir, "id_rsa"), []byte("not a key"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if got := loadKeyFiles(dir); len(got) != 1 {
		t.Errorf("expected 1 key, got %d", len(got))
	}
}

func TestHostKeyCallbackFrom(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	callback, err := hostKeyCallbackFrom(filepath.Join(dir, "known_hosts"))
	if err != nil || callback == nil {
		t.Fatalf("missing known_hosts should fall back to accepting keys, got %v", err)
	}

	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		t.Fatalf("NewPublicKey: %v", err)
	}

	line := "archive.example.com " + string(ssh.MarshalAuthorizedKey(sshPub))
	knownHosts := filepath.Join(dir, "known_hosts")
	if err := os.WriteFile(knownHosts, []byte(line), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	callback, err = hostKeyCallbackFrom(knownHosts)
	if err != nil {
		t.Fatalf("hostKeyCallbackFrom: %v", err)
	}

	addr := &net.TCPAddr{IP: net.ParseIP("192.0.2.10"), Port: 22}
	if err := callback("archive.example.com:22", addr, sshPub); err != nil {
		t.Errorf("known key should be accepted, got %v", err)
	}

	otherPub, _, _ := ed25519.GenerateKey(rand.Reader)
	otherKey, _ := ssh.NewPublicKey(otherPub)
	if err := callback("archive.example.com:22", addr, otherKey); err == nil {
		t.Error("changed key should be rejected")
	}
}
