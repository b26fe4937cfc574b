package fasttext

import (
	"bytes"
	"testing"

	"tglang/internal/core/fasttext/fasttexttest"
)

func specBytes(t *testing.T, s fasttexttest.Spec) []byte {
	t.Helper()
	b, err := s.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	return b
}

func load(t *testing.T, s fasttexttest.Spec) *Model {
	t.Helper()
	m, err := Read(bytes.NewReader(specBytes(t, s)))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return m
}

// twoLabel is a word-only model: "print" leans to label 73, "func" to label 39
func twoLabel(loss Loss) fasttexttest.Spec {
	out := [][]float32{{5, 0}, {0, 5}}
	if loss == LossHS {
		// internal node row: positive pushes towards the right child, label 0
		out = [][]float32{{5, -5}, {0, 0}}
	}
	return fasttexttest.Spec{
		Dim: 2, WS: 5, Epoch: 5, MinCount: 1, Neg: 5, WordNgrams: 1,
		Loss: int(loss), Kind: int(KindSupervised), LRUpdateRate: 100, T: 1e-4,
		Words: []fasttexttest.Entry{
			{Word: EOS, Count: 10},
			{Word: "print", Count: 5},
			{Word: "func", Count: 3},
			{Word: "__label__73", Count: 10, Label: true},
			{Word: "__label__39", Count: 5, Label: true},
		},
		Input:  [][]float32{{0, 0}, {1, 0}, {0, 1}},
		Output: out,
	}
}
