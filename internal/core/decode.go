package core

// decode.go prepares uploaded bytes for the CSV reader.
//
// Spreadsheet exports from Windows often start with a UTF-8 BOM, and files
// saved as Latin-1 contain bytes that are not valid UTF-8. Neither should
// fail an import: the BOM is dropped and invalid bytes become U+FFFD.

import (
	"bytes"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText returns data as valid UTF-8 without a leading BOM.
// The input slice is never modified.
func decodeText(data []byte) []byte {
	data = bytes.TrimPrefix(data, utf8BOM)
	return sanitizeUTF8(data)
}

func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune(utf8.RuneError)
		} else {
			buf.Write(data[:size])
		}
		data = data[size:]
	}

	return buf.Bytes()
}
