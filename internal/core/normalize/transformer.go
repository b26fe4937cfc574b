package normalize

import (
	"unicode/utf8"

	"golang.org/x/text/transform"

	"tglang/internal/core/symbols"
)

// lineMarker carries the predecessor state across Transform calls so chunked input
// normalizes exactly like a single string
type lineMarker struct {
	filter *symbols.Set
	seen   bool // at least one valid scalar consumed
	prevNL bool // last valid scalar was '\n'
}

var _ transform.Transformer = (*lineMarker)(nil)

func newLineMarker(filter *symbols.Set) *lineMarker {
	return &lineMarker{filter: filter}
}

// Reset implements transform.Transformer
func (t *lineMarker) Reset() {
	t.seen = false
	t.prevNL = false
}

// Transform implements transform.Transformer
// state is only committed once the output for a scalar fits in dst
func (t *lineMarker) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]

		if c == '\n' {
			if t.seen && !t.prevNL {
				if nDst+len(Marker) > len(dst) {
					return nDst, nSrc, transform.ErrShortDst
				}
				nDst += copy(dst[nDst:], Marker)
			} else {
				if nDst+1 > len(dst) {
					return nDst, nSrc, transform.ErrShortDst
				}
				dst[nDst] = '\n'
				nDst++
			}
			t.seen, t.prevNL = true, true
			nSrc++
			continue
		}

		r, size := rune(c), 1
		if c >= utf8.RuneSelf {
			if !atEOF && !utf8.FullRune(src[nSrc:]) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			r, size = utf8.DecodeRune(src[nSrc:])
			if r == utf8.RuneError && size == 1 {
				// invalid byte, dropped without touching predecessor state
				nSrc++
				continue
			}
		}

		if !t.filter.Contains(r) {
			if nDst+size > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += copy(dst[nDst:], src[nSrc:nSrc+size])
		}
		t.seen, t.prevNL = true, false
		nSrc += size
	}
	return nDst, nSrc, nil
}
