package json

import (
	"bytes"
	"encoding/base64"
	"unicode/utf8"
)

const hex = "0123456789abcdef"

// escapeString writes v to w as a double-quoted JSON string, escaping
// control characters, the quote character, and the backslash.
func escapeString(w *bytes.Buffer, v string) {
	w.WriteByte('"')

	start := 0
	for i := 0; i < len(v); {
		if b := v[i]; b < utf8.RuneSelf {
			if b >= 0x20 && b != '"' && b != '\\' {
				i++
				continue
			}

			w.WriteString(v[start:i])
			switch b {
			case '\\', '"':
				w.WriteByte('\\')
				w.WriteByte(b)
			case '\n':
				w.WriteString(`\n`)
			case '\r':
				w.WriteString(`\r`)
			case '\t':
				w.WriteString(`\t`)
			default:
				w.WriteString(`\u00`)
				w.WriteByte(hex[b>>4])
				w.WriteByte(hex[b&0xF])
			}

			i++
			start = i
			continue
		}

		r, size := utf8.DecodeRuneInString(v[i:])
		if r == utf8.RuneError && size == 1 {
			w.WriteString(v[start:i])
			w.WriteString(`�`)
			i += size
			start = i
			continue
		}
		i += size
	}

	w.WriteString(v[start:])
	w.WriteByte('"')
}

// encodeByteSlice writes v as a base64-encoded, double-quoted JSON string.
func encodeByteSlice(w *bytes.Buffer, v []byte) {
	w.WriteByte('"')
	if len(v) > 0 {
		enc := base64.NewEncoder(base64.StdEncoding, w)
		enc.Write(v)
		enc.Close()
	}
	w.WriteByte('"')
}
