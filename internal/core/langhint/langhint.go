// Package langhint guesses the writing script of the prose inside a code snippet
// (comments, string literals). Source code itself is almost always Latin, so any other
// script with a handful of letters wins over it
package langhint

import (
	"unicode"
)

// MinLetters is how many letters a non-Latin script needs before it is reported
const MinLetters = 4

type script struct {
	name  string
	table *unicode.RangeTable
}

// order matters: Japanese kana before Han so mixed text is reported by its kana
var scripts = []script{
	{"Hiragana", unicode.Hiragana},
	{"Katakana", unicode.Katakana},
	{"Hangul", unicode.Hangul},
	{"Han", unicode.Han},
	{"Arabic", unicode.Arabic},
	{"Hebrew", unicode.Hebrew},
	{"Thai", unicode.Thai},
	{"Greek", unicode.Greek},
	{"Cyrillic", unicode.Cyrillic},
	{"Georgian", unicode.Georgian},
	{"Armenian", unicode.Armenian},
	{"Devanagari", unicode.Devanagari},
}

// DetectScript returns the dominant script name, "Latin" for plain code, or "" if s has no letters
func DetectScript(s string) string {
	counts := make([]int, len(scripts))
	latin := 0

	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		if r < unicode.MaxASCII || unicode.In(r, unicode.Latin) {
			latin++
			continue
		}
		for i, sc := range scripts {
			if unicode.In(r, sc.table) {
				counts[i]++
				break
			}
		}
	}

	best := -1
	for i, c := range counts {
		if c >= MinLetters && (best < 0 || c > counts[best]) {
			best = i
		}
	}
	switch {
	case best >= 0:
		return scripts[best].name
	case latin > 0:
		return "Latin"
	}
	// a few non-Latin letters but below the bar
	for i, c := range counts {
		if c > 0 {
			return scripts[i].name
		}
	}
	return ""
}
