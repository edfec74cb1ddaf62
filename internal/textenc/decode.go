package textenc

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// fallbackEncodings is the ordered list of encodings tried when decoding an
// input file. The order matches the original extraction tooling: strict
// encodings first, then the permissive 8-bit codepages. ISO 8859-1 accepts
// any byte sequence, so a readable file always decodes; the chain exists to
// prefer the correct interpretation when the bytes allow one.
var fallbackEncodings = []struct {
	name   string
	decode func([]byte) (string, bool)
}{
	{"utf-8", decodeUTF8},
	{"us-ascii", decodeASCII},
	{"iso-8859-1", decodeCharmap(charmap.ISO8859_1)},
	{"windows-1252", decodeCharmap(charmap.Windows1252)},
}

// decodeUTF8 decodes data as UTF-8, failing on any invalid sequence.
func decodeUTF8(data []byte) (string, bool) {
	if !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

// decodeASCII decodes data as 7-bit ASCII, failing on any high byte.
func decodeASCII(data []byte) (string, bool) {
	for _, b := range data {
		if b > 0x7F {
			return "", false
		}
	}
	return string(data), true
}

// decodeCharmap adapts an x/text charmap decoder to the fallback chain.
func decodeCharmap(cm *charmap.Charmap) func([]byte) (string, bool) {
	return func(data []byte) (string, bool) {
		decoded, err := cm.NewDecoder().Bytes(data)
		if err != nil {
			return "", false
		}
		return string(decoded), true
	}
}

// Decode decodes raw file bytes using the fallback encoding chain.
// It returns the decoded text and the name of the encoding that succeeded.
func Decode(data []byte) (string, string, error) {
	for _, enc := range fallbackEncodings {
		if text, ok := enc.decode(data); ok {
			return text, enc.name, nil
		}
	}
	return "", "", fmt.Errorf("unable to decode input with any supported encoding (tried utf-8, us-ascii, iso-8859-1, windows-1252)")
}

// DecodeFile reads and decodes the file at path.
// A read failure or an exhausted encoding chain is returned as an error;
// there is no partial result.
func DecodeFile(path string) (string, string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return "", "", fmt.Errorf("failed to read input file: %w", err)
	}
	return Decode(data)
}
