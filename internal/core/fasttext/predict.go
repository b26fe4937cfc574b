package fasttext

import (
	"container/heap"
	"fmt"
	"math"
	"sort"
)

// Prediction is a label with the probability the model reports for it
type Prediction struct {
	Label       string
	Probability float64
}

const (
	sigmoidTableSize = 512
	maxSigmoid       = 8
)

var sigmoidTable = func() []float32 {
	t := make([]float32, sigmoidTableSize+1)
	for i := range t {
		x := float32(i*2*maxSigmoid)/sigmoidTableSize - maxSigmoid
		t[i] = float32(1 / (1 + math.Exp(-float64(x))))
	}
	return t
}()

// tableSigmoid is the lookup sigmoid used by one-vs-all and negative sampling outputs
func tableSigmoid(x float32) float32 {
	switch {
	case x < -maxSigmoid:
		return 0
	case x > maxSigmoid:
		return 1
	}
	return sigmoidTable[int64((x+maxSigmoid)*sigmoidTableSize/maxSigmoid/2)]
}

func stdLog(x float32) float32 {
	return float32(math.Log(float64(x) + 1e-5))
}

// Predict returns up to k labels whose probability is at least threshold, best first
// Only the first line of text is considered
func (m *Model) Predict(text string, k int, threshold float64) ([]Prediction, error) {
	if k < 1 {
		return nil, ErrK
	}
	ids := m.dict.line(text)
	if len(ids) == 0 {
		return nil, nil
	}

	hidden := make([]float32, m.args.Dim)
	for _, id := range ids {
		if id < 0 || int(id) >= m.input.rows {
			return nil, fmt.Errorf("fasttext: input row %d out of range", id)
		}
		for j, x := range m.input.row(int(id)) {
			hidden[j] += x
		}
	}
	inv := 1 / float32(len(ids))
	for j := range hidden {
		hidden[j] *= inv
	}

	th := float32(threshold)
	best := make(scored, 0, k+1)
	switch m.args.Loss {
	case LossHS:
		m.dfs(k, th, len(m.tree)-1, 0, &best, hidden)
	case LossSoftmax:
		best.findKBest(k, th, m.softmax(hidden))
	default:
		best.findKBest(k, th, m.sigmoids(hidden))
	}

	sort.SliceStable(best, func(i, j int) bool { return best[i].score > best[j].score })
	out := make([]Prediction, len(best))
	for i, s := range best {
		out[i] = Prediction{
			Label:       m.dict.label(s.idx),
			Probability: math.Exp(float64(s.score)),
		}
	}
	return out, nil
}

func (m *Model) softmax(hidden []float32) []float32 {
	out := make([]float32, m.output.rows)
	for i := range out {
		out[i] = m.output.dotRow(hidden, i)
	}
	maxv := out[0]
	for _, v := range out {
		if v > maxv {
			maxv = v
		}
	}
	var z float32
	for i, v := range out {
		out[i] = float32(math.Exp(float64(v - maxv)))
		z += out[i]
	}
	for i := range out {
		out[i] /= z
	}
	return out
}

func (m *Model) sigmoids(hidden []float32) []float32 {
	out := make([]float32, m.output.rows)
	for i := range out {
		out[i] = tableSigmoid(m.output.dotRow(hidden, i))
	}
	return out
}

// scored is a min heap on log probability holding the current top k
type scored []candidate

type candidate struct {
	score float32
	idx   int
}

func (s scored) Len() int           { return len(s) }
func (s scored) Less(i, j int) bool { return s[i].score < s[j].score }
func (s scored) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s *scored) Push(x any)        { *s = append(*s, x.(candidate)) }
func (s *scored) Pop() any {
	old := *s
	c := old[len(old)-1]
	*s = old[:len(old)-1]
	return c
}

func (s *scored) offer(k int, c candidate) {
	heap.Push(s, c)
	if s.Len() > k {
		heap.Pop(s)
	}
}

func (s *scored) full(k int) bool { return s.Len() == k }

func (s *scored) min() float32 { return (*s)[0].score }

func (s *scored) findKBest(k int, threshold float32, probs []float32) {
	for i, p := range probs {
		if p < threshold {
			continue
		}
		sc := stdLog(p)
		if s.full(k) && sc < s.min() {
			continue
		}
		s.offer(k, candidate{score: sc, idx: i})
	}
}
