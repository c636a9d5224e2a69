package ltfs

import "bytes"

// entities are the only escapes an index writer produces.
//
//nolint:gochecknoglobals // Fixed lookup table
var entities = []struct {
	escaped []byte
	char    byte
}{
	{[]byte("&lt;"), '<'},
	{[]byte("&gt;"), '>'},
	{[]byte("&amp;"), '&'},
}

// DecodeEntities replaces &lt;, &gt; and &amp; in text in a single pass.
// Decoding is not recursive: "&amp;lt;" becomes "&lt;". Anything else,
// including an incomplete escape such as "&l", is copied as-is.
func DecodeEntities(text []byte) string {
	first := bytes.IndexByte(text, '&')
	if first < 0 {
		return string(text)
	}

	out := make([]byte, 0, len(text))
	out = append(out, text[:first]...)

	for i := first; i < len(text); {
		if text[i] == '&' {
			if char, n := matchEntity(text[i:]); n > 0 {
				out = append(out, char)
				i += n

				continue
			}
		}

		out = append(out, text[i])
		i++
	}

	return string(out)
}

func matchEntity(text []byte) (byte, int) {
	for _, e := range entities {
		if bytes.HasPrefix(text, e.escaped) {
			return e.char, len(e.escaped)
		}
	}

	return 0, 0
}
