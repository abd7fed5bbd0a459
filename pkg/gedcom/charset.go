package gedcom

import (
	"bytes"
	"fmt"
	"regexp"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ansiHeader matches the "1 CHAR ANSI" header declaration.
var ansiHeader = regexp.MustCompile(`(?m)^\s*1\s+CHAR\s+ANSI\s*$`)

// DecodeText converts raw file bytes to a string.
//
// Files that declare "CHAR ANSI" in their header, or whose bytes are not
// valid UTF-8, are decoded as Windows-1252. Everything else is taken as UTF-8
// with an optional byte order mark.
func DecodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) && !ansiHeader.Match(data) {
		return string(data), nil
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode ansi: %w", err)
	}
	return string(out), nil
}
