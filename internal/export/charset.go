package export

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ToUTF8 returns s unchanged when it is valid UTF-8 and otherwise decodes it
// as ISO-8859-1. Decoded values are raw bytes and every output format
// requires UTF-8.
func ToUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	out, err := charmap.ISO8859_1.NewDecoder().String(s)
	if err != nil {
		// ISO-8859-1 maps every byte, so this only guards a broken decoder.
		return string(latin1Runes(s))
	}
	return out
}

func latin1Runes(s string) []rune {
	runes := make([]rune, len(s))
	for i := 0; i < len(s); i++ {
		runes[i] = rune(s[i])
	}
	return runes
}
