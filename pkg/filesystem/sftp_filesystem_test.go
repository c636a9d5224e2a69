//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package filesystem_test

import (
	"errors"
	"io"
	"net"
	"os"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers
	"github.com/pkg/sftp"

	"github.com/joe/ltfs2efu/pkg/filesystem"
)

// newInMemorySFTP serves an in-memory SFTP tree over a pipe and returns a client for it.
func newInMemorySFTP(t *testing.T) *sftp.Client {
	t.Helper()

	serverConn, clientConn := net.Pipe()

	server := sftp.NewRequestServer(serverConn, sftp.InMemHandler())
	go func() { _ = server.Serve() }()

	client, err := sftp.NewClientPipe(clientConn, clientConn)
	if err != nil {
		t.Fatalf("failed to start SFTP client: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Close()
		_ = server.Close()
	})

	return client
}

func TestSFTPFileSystem_CreateOpenStat(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewSFTPFileSystem(newInMemorySFTP(t))

	out, err := fs.Create("/TAPE01.efu")
	g.Expect(err).ShouldNot(HaveOccurred())
	_, err = out.Write([]byte("Filename,Size\r\n"))
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(out.Close()).To(Succeed())

	info, err := fs.Stat("/TAPE01.efu")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(info.Size()).To(Equal(int64(15)))

	in, err := fs.Open("/TAPE01.efu")
	g.Expect(err).ShouldNot(HaveOccurred())
	defer func() { _ = in.Close() }()

	data, err := io.ReadAll(in)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(data)).To(Equal("Filename,Size\r\n"))
}

func TestSFTPFileSystem_OpenMissing(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewSFTPFileSystem(newInMemorySFTP(t))

	_, err := fs.Open("/missing.xml")
	g.Expect(err).Should(HaveOccurred())
	g.Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
	g.Expect(err.Error()).To(ContainSubstring("/missing.xml"))
}

func TestSFTPFile_WriteToCopiesWholeFile(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewSFTPFileSystem(newInMemorySFTP(t))

	payload := make([]byte, 200*1024)
	for i := range payload {
		payload[i] = byte(i % 251)
	}

	out, err := fs.Create("/big.xml")
	g.Expect(err).ShouldNot(HaveOccurred())
	_, err = out.Write(payload)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(out.Close()).To(Succeed())

	in, err := fs.Open("/big.xml")
	g.Expect(err).ShouldNot(HaveOccurred())
	defer func() { _ = in.Close() }()

	wt, ok := in.(io.WriterTo)
	g.Expect(ok).To(BeTrue())

	var got bytesSink
	n, err := wt.WriteTo(&got)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(n).To(Equal(int64(len(payload))))
	g.Expect(got.data).To(Equal(payload))
}

type bytesSink struct {
	data []byte
}

func (s *bytesSink) Write(p []byte) (int, error) {
	s.data = append(s.data, p...)
	return len(p), nil
}
