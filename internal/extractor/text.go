package extractor

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodeText turns plain-text bytes into UTF-8. A byte order mark wins, then a
// declared non-UTF-8 charset, then valid UTF-8 as-is, then detection. It never fails.
func decodeText(data []byte, charsetLabel string) string {
	if hasBOM(data) {
		decoded, _, err := transform.Bytes(unicode.BOMOverride(encoding.Nop.NewDecoder()), data)
		if err == nil {
			return string(decoded)
		}
	}

	if enc, name := charset.Lookup(charsetLabel); enc != nil && name != "utf-8" {
		if decoded, err := enc.NewDecoder().Bytes(data); err == nil {
			return string(decoded)
		}
	}

	if utf8.Valid(data) {
		return string(data)
	}

	if detected, err := chardet.NewTextDetector().DetectBest(data); err == nil {
		if enc, _ := charset.Lookup(detected.Charset); enc != nil {
			if decoded, decodeErr := enc.NewDecoder().Bytes(data); decodeErr == nil {
				return string(decoded)
			}
		}
	}

	return strings.ToValidUTF8(string(data), "\uFFFD")
}

func hasBOM(data []byte) bool {
	return bytes.HasPrefix(data, bomUTF8) ||
		bytes.HasPrefix(data, bomUTF16LE) ||
		bytes.HasPrefix(data, bomUTF16BE)
}
