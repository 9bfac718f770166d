package dialect

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode converts file bytes to a string. Valid UTF-8 passes through;
// anything else falls back to Windows-1252 and then Latin-1, so a file
// in a legacy encoding yields garbled letters rather than a hard
// failure. The byte-order mark is stripped for every textual format.
func Decode(data []byte) string {
	data = stripBOM(data)

	if utf8.Valid(data) {
		return string(data)
	}

	if decoded, err := charmap.Windows1252.NewDecoder().Bytes(data); err == nil {
		return string(decoded)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// Latin-1 maps every byte; this path is unreachable in
		// practice, but garbled text still beats a dropped file.
		return string(data)
	}
	return string(decoded)
}

func stripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}
