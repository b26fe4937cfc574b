// Package fasttexttest writes small fastText .bin models for tests
package fasttexttest

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"sort"
)

// format constants, duplicated so this package stays import free of the reader
const (
	Magic      int32 = 793712314
	MaxVersion int32 = 12

	LossHS      = 1
	LossNS      = 2
	LossSoftmax = 3
	LossOVA     = 4

	KindCBOW       = 1
	KindSupervised = 3
)

// Entry is a dictionary row. Words must come before labels
type Entry struct {
	Word  string
	Count int64
	Label bool
}

// Spec describes a model to serialise
type Spec struct {
	Version int32 // 0 means MaxVersion

	Dim, WS, Epoch, MinCount, Neg, WordNgrams int
	Loss, Kind                                int // 0 means softmax / supervised
	Bucket, Minn, Maxn, LRUpdateRate          int
	T                                         float64

	Words    []Entry
	PruneIdx [][2]int32 // written when non nil or Pruned
	Pruned   bool

	Input  [][]float32
	Output [][]float32

	Quantized bool
}

// Bytes serialises s in the trainer's little endian layout
func (s Spec) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	var werr error
	w := func(v any) {
		if werr == nil {
			werr = binary.Write(&buf, binary.LittleEndian, v)
		}
	}

	version := s.Version
	if version == 0 {
		version = MaxVersion
	}
	loss, kind := s.Loss, s.Kind
	if loss == 0 {
		loss = LossSoftmax
	}
	if kind == 0 {
		kind = KindSupervised
	}

	w(Magic)
	w(version)
	for _, v := range []int{s.Dim, s.WS, s.Epoch, s.MinCount, s.Neg, s.WordNgrams, loss, kind, s.Bucket, s.Minn, s.Maxn, s.LRUpdateRate} {
		w(int32(v))
	}
	w(s.T)

	var nwords, nlabels int32
	for _, e := range s.Words {
		if e.Label {
			nlabels++
		} else {
			nwords++
		}
	}
	w(nwords + nlabels)
	w(nwords)
	w(nlabels)
	w(int64(100))
	if s.PruneIdx != nil || s.Pruned {
		w(int64(len(s.PruneIdx)))
	} else {
		w(int64(-1))
	}
	for _, e := range s.Words {
		buf.WriteString(e.Word)
		buf.WriteByte(0)
		w(e.Count)
		if e.Label {
			w(int8(1))
		} else {
			w(int8(0))
		}
	}
	for _, p := range s.PruneIdx {
		w(p[0])
		w(p[1])
	}

	matrix := func(rows [][]float32) {
		w(int64(len(rows)))
		w(int64(s.Dim))
		for _, r := range rows {
			if len(r) != s.Dim && werr == nil {
				werr = fmt.Errorf("fasttexttest: row width %d != dim %d", len(r), s.Dim)
			}
			w(r)
		}
	}
	w(s.Quantized)
	matrix(s.Input)
	w(false)
	matrix(s.Output)

	if werr != nil {
		return nil, werr
	}
	return buf.Bytes(), nil
}

// WriteFile writes s to path
func WriteFile(path string, s Spec) error {
	b, err := s.Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// Keywords builds a softmax model in which each keyword votes for one label code with
// weight 10, so a snippet whose only known word is "def" is labelled with the code of "def"
// with probability close to 1. Unknown words contribute nothing
func Keywords(words map[string]int) Spec {
	codes := map[int]bool{}
	for _, c := range words {
		codes[c] = true
	}
	labels := make([]int, 0, len(codes))
	for c := range codes {
		labels = append(labels, c)
	}
	sort.Ints(labels)
	col := map[int]int{}
	for i, c := range labels {
		col[c] = i
	}

	keys := make([]string, 0, len(words))
	for w := range words {
		keys = append(keys, w)
	}
	sort.Strings(keys)

	dim := len(labels)
	s := Spec{Dim: dim, WS: 5, Epoch: 5, MinCount: 1, Neg: 5, WordNgrams: 1, LRUpdateRate: 100, T: 1e-4}
	s.Words = append(s.Words, Entry{Word: "</s>", Count: 100})
	s.Input = append(s.Input, make([]float32, dim))
	for _, w := range keys {
		s.Words = append(s.Words, Entry{Word: w, Count: 10})
		row := make([]float32, dim)
		row[col[words[w]]] = 1
		s.Input = append(s.Input, row)
	}
	for _, c := range labels {
		s.Words = append(s.Words, Entry{Word: fmt.Sprintf("__label__%d", c), Count: 10, Label: true})
		row := make([]float32, dim)
		row[col[c]] = 10
		s.Output = append(s.Output, row)
	}
	return s
}
