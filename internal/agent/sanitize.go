package agent

import (
	"strings"
	"unicode"
)

// Sanitize drops invalid UTF-8 and control characters other than newlines
// and tabs, and normalises line endings
func Sanitize(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = strings.ReplaceAll(s, "\r\n", "\n")

	s = strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r == unicode.ReplacementChar:
			return -1
		case unicode.IsControl(r):
			return -1
		case unicode.Is(unicode.Cf, r) && r != '\u200d':
			return -1
		}
		return r
	}, s)

	return strings.TrimSpace(s)
}

// StripEmoji removes pictographs and their joiners and variation selectors
func StripEmoji(s string) string {
	if strings.IndexFunc(s, isEmoji) < 0 {
		return s
	}
	s = strings.Map(func(r rune) rune {
		if isEmoji(r) {
			return -1
		}
		return r
	}, s)

	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(collapseSpaces(l), " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func isEmoji(r rune) bool {
	switch {
	case r == '\u200d', r == '\u20e3':
		return true
	case r >= 0xFE00 && r <= 0xFE0F:
		return true
	case r >= 0x1F000 && r <= 0x1FAFF:
		return true
	case r >= 0x2600 && r <= 0x27BF:
		return true
	case r >= 0x1F1E6 && r <= 0x1F1FF:
		return true
	}
	return false
}

func collapseSpaces(s string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range s {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
