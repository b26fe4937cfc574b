// Package normalize rewrites raw snippets into the surface form the classifier was trained on
// Rules, applied in one left to right pass over the decoded scalars
// 1 invalid UTF-8 bytes are dropped before anything else sees them
// 2 a newline that ends a non-blank line becomes the marker "!$"
// 3 members of the symbol filter set are dropped
// 4 everything else passes through unchanged
// A newline at position 0 or right after another newline is kept literally
package normalize

import (
	"io"
	"sync"

	"golang.org/x/text/transform"

	"tglang/internal/core/symbols"
)

// Marker replaces the newline that terminates a non-blank line
const Marker = "!$"

// Normalizer is safe for concurrent use; transformers are pooled per instance
type Normalizer struct {
	filter *symbols.Set
	pool   sync.Pool
}

// New constructs a Normalizer over filter. A nil filter drops nothing
func New(filter *symbols.Set) *Normalizer {
	n := &Normalizer{filter: filter}
	n.pool.New = func() any { return newLineMarker(filter) }
	return n
}

// Filter returns the symbol set the normalizer strips
func (n *Normalizer) Filter() *symbols.Set { return n.filter }

// Normalize returns the normalized form of s
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}
	tr := n.pool.Get().(*lineMarker)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	n.pool.Put(tr)
	if err != nil {
		// lineMarker never fails on complete input
		return ""
	}
	return out
}

// NormalizeBytes is Normalize for byte slices. The result never aliases b
func (n *Normalizer) NormalizeBytes(b []byte) []byte {
	if len(b) == 0 {
		return []byte{}
	}
	tr := n.pool.Get().(*lineMarker)
	out, _, err := transform.Bytes(tr, b)
	tr.Reset()
	n.pool.Put(tr)
	if err != nil {
		return []byte{}
	}
	return out
}

// Reader streams the normalized form of r
func (n *Normalizer) Reader(r io.Reader) io.Reader {
	return transform.NewReader(r, n.Transformer())
}

// Transformer returns a fresh stateful transformer for use with x/text pipelines
func (n *Normalizer) Transformer() transform.Transformer {
	return newLineMarker(n.filter)
}
