package normalize

import "unicode/utf8"

// Clip returns at most max bytes of s, cut on a rune boundary. max <= 0 means no limit
func Clip(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	i := max
	// back up over continuation bytes, at most UTFMax-1 of them
	for j := 0; i > 0 && j < utf8.UTFMax-1 && !utf8.RuneStart(s[i]); j++ {
		i--
	}
	if !utf8.RuneStart(s[i]) {
		// not valid UTF-8 around the cut, fall back to the byte limit
		return s[:max]
	}
	return s[:i]
}
