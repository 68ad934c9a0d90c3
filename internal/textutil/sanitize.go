package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// unsafeFileNameChars are rejected by at least one mainstream filesystem.
const unsafeFileNameChars = `/\:*?"<>|`

// SanitizeFileName makes a catalog title safe to use as a filename. The
// title is NFC-normalized, every filesystem-unsafe or control character is
// replaced with an underscore, and surrounding whitespace is trimmed.
// Interior periods survive untouched, including a trailing one, so titles
// like "Super Mario Bros." keep their punctuation.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(norm.NFC.String(name))
	if name == "" {
		return ""
	}
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 || strings.ContainsRune(unsafeFileNameChars, r) {
			return '_'
		}
		return r
	}, name)
	return strings.TrimSpace(cleaned)
}
