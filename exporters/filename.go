package exporters

import (
	"strings"
	"unicode"
)

const fallbackFileName = "quiz"

func invalidFileNameRune(r rune) bool {
	if r < 0x20 {
		return true
	}
	switch r {
	case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
		return true
	}
	return false
}

// SanitizeFileName turns a quiz name into a safe file base name.
// The result never contains spaces, invalid characters, or runs of underscores,
// and never starts or ends with '_', '.' or ' '. Empty results become "quiz".
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Map(func(r rune) rune {
		if r == ' ' || invalidFileNameRune(r) {
			return '_'
		}
		return r
	}, name)

	for strings.Contains(name, "__") {
		name = strings.ReplaceAll(name, "__", "_")
	}
	name = strings.TrimFunc(name, func(r rune) bool {
		return r == '_' || r == '.' || unicode.IsSpace(r)
	})

	if name == "" {
		return fallbackFileName
	}
	return name
}
