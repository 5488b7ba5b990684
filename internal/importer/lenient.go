package importer

import (
	"bytes"
	"fmt"

	"github.com/tidwall/gjson"
)

// quoteBareWords turns unquoted keys and values into JSON strings so that
// input like {type: text} parses. Words that are already valid JSON
// literals (true, false, null, numbers) are left alone, as are strings and
// comments.
func quoteBareWords(src []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(src) + len(src)/8)

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '"':
			end := stringEnd(src, i)
			out.Write(src[i:end])
			i = end
		case c == '/' && i+1 < len(src) && (src[i+1] == '/' || src[i+1] == '*'):
			end := commentEnd(src, i)
			out.Write(src[i:end])
			i = end
		case isDelimiter(c):
			out.WriteByte(c)
			i++
		default:
			end := i
			for end < len(src) && !isDelimiter(src[end]) && src[end] != '"' {
				end++
			}
			writeWord(&out, src[i:end])
			i = end
		}
	}
	return out.Bytes()
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '{', '}', '[', ']', ',', ':':
		return true
	}
	return false
}

// stringEnd returns the index just past the string starting at i. An
// unterminated string runs to the end of the input.
func stringEnd(src []byte, i int) int {
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case '"':
			return j + 1
		}
	}
	return len(src)
}

func commentEnd(src []byte, i int) int {
	if src[i+1] == '/' {
		if n := bytes.IndexByte(src[i:], '\n'); n >= 0 {
			return i + n
		}
		return len(src)
	}
	if n := bytes.Index(src[i+2:], []byte("*/")); n >= 0 {
		return i + 2 + n + 2
	}
	return len(src)
}

func writeWord(out *bytes.Buffer, word []byte) {
	if gjson.Valid(string(word)) {
		out.Write(word)
		return
	}
	out.WriteByte('"')
	for _, b := range word {
		switch {
		case b == '\\' || b == '"':
			out.WriteByte('\\')
			out.WriteByte(b)
		case b < 0x20:
			fmt.Fprintf(out, `\u%04x`, b)
		default:
			out.WriteByte(b)
		}
	}
	out.WriteByte('"')
}
