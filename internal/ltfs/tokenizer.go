package ltfs

import "bytes"

// Recognized tag names. Closing tags carry the leading slash.
const (
	tagContents     = "contents"
	tagCreationTime = "creationtime"
	tagDirectory    = "directory"
	tagFile         = "file"
	tagLength       = "length"
	tagModifyTime   = "modifytime"
	tagName         = "name"
	tagReadOnly     = "readonly"

	closeDirectory = "/directory"
	closeFile      = "/file"
)

// valueTrue is the only readonly value that sets the read-only bit.
const valueTrue = "true"

// tag is the text between '<' and '>'. It aliases the document buffer.
type tag struct {
	text []byte
	// empty is set for self-closing elements such as <contents/>.
	empty bool
}

// findTagStart returns the offset of the next '<' at or after pos, or -1.
func findTagStart(doc []byte, pos int) int {
	if pos >= len(doc) {
		return -1
	}

	idx := bytes.IndexByte(doc[pos:], '<')
	if idx < 0 {
		return -1
	}

	return pos + idx
}

// splitTag reads the tag whose text starts at pos (just past '<') and returns
// it along with the offset just past its '>'.
func splitTag(doc []byte, pos int) (tag, int, error) {
	end := bytes.IndexByte(doc[pos:], '>')
	if end < 0 {
		return tag{}, 0, newParseError(KindNotFound, `">"`, doc, pos)
	}

	text := doc[pos : pos+end]
	t := tag{text: text}
	if len(text) > 0 && text[len(text)-1] == '/' {
		t.text = text[:len(text)-1]
		t.empty = true
	}

	return t, pos + end + 1, nil
}

// matchTag reports whether t names the given element: either the whole tag
// text is name, or name is followed by a space (attributes are not parsed).
// This keeps "name" from matching "namefoo". A self-closing tag still
// matches; walkers check t.empty where an empty element means nothing.
func matchTag(t tag, name string) bool {
	if !bytes.HasPrefix(t.text, []byte(name)) {
		return false
	}

	rest := t.text[len(name):]

	return len(rest) == 0 || rest[0] == ' '
}

// captureValue reads the text following a value tag up to the next '<' and
// returns it decoded. The '<' is consumed too, so the value's own closing tag
// is skipped over as plain text by the next tag search.
func captureValue(doc []byte, t tag, pos int) (string, int, error) {
	if t.empty {
		return "", pos, nil
	}

	end := findTagStart(doc, pos)
	if end < 0 {
		return "", 0, newParseError(KindNotFound, `"<"`, doc, pos)
	}

	return DecodeEntities(doc[pos:end]), end + 1, nil
}
