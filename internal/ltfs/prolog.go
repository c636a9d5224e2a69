package ltfs

import "bytes"

//nolint:gochecknoglobals // Literal byte sequences
var (
	byteOrderMark     = []byte{0xEF, 0xBB, 0xBF}
	declarationStart  = []byte("<?xml")
	encodingAssertion = []byte(` encoding="UTF-8"`)
)

// ScanProlog checks the XML declaration at the start of doc and returns the
// offset just past it. A leading UTF-8 byte order mark is skipped. The
// declaration must carry encoding="UTF-8"; no other encoding is supported.
func ScanProlog(doc []byte) (int, error) {
	pos := 0
	if bytes.HasPrefix(doc, byteOrderMark) {
		pos = len(byteOrderMark)
	}

	if !bytes.HasPrefix(doc[pos:], declarationStart) {
		return 0, newParseError(KindUnexpected, string(declarationStart), doc, pos)
	}

	pos += len(declarationStart)

	end := bytes.IndexByte(doc[pos:], '>')
	if end < 0 {
		return 0, newParseError(KindNotFound, `">"`, doc, pos)
	}

	if !bytes.Contains(doc[pos:pos+end], encodingAssertion) {
		return 0, newParseError(KindNotFound, string(encodingAssertion), doc, pos)
	}

	return pos + end + 1, nil
}
