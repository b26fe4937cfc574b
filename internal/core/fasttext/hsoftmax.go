package fasttext

import "math"

// node of the Huffman tree over labels; leaves are 0..osz-1
type node struct {
	parent int
	left   int
	right  int
	count  int64
	binary bool
}

// buildTree builds the coding tree from label counts, which the dictionary keeps sorted
// in decreasing order
func buildTree(counts []int64) []node {
	osz := len(counts)
	tree := make([]node, 2*osz-1)
	for i := range tree {
		tree[i] = node{parent: -1, left: -1, right: -1, count: 1e15}
	}
	for i, c := range counts {
		tree[i].count = c
	}
	leaf, next := osz-1, osz
	for i := osz; i < 2*osz-1; i++ {
		var mini [2]int
		for j := range mini {
			if leaf >= 0 && tree[leaf].count < tree[next].count {
				mini[j] = leaf
				leaf--
			} else {
				mini[j] = next
				next++
			}
		}
		tree[i].left = mini[0]
		tree[i].right = mini[1]
		tree[i].count = tree[mini[0]].count + tree[mini[1]].count
		tree[mini[0]].parent = i
		tree[mini[1]].parent = i
		tree[mini[1]].binary = true
	}
	return tree
}

// dfs walks the tree from n accumulating log probabilities, pruning branches that cannot
// beat the threshold or the current k best
func (m *Model) dfs(k int, threshold float32, n int, score float32, best *scored, hidden []float32) {
	if score < stdLog(threshold) {
		return
	}
	if best.full(k) && score < best.min() {
		return
	}
	t := m.tree[n]
	if t.left == -1 && t.right == -1 {
		best.offer(k, candidate{score: score, idx: n})
		return
	}
	osz := len(m.tree)/2 + 1
	f := m.output.dotRow(hidden, n-osz)
	f = float32(1 / (1 + math.Exp(-float64(f))))
	m.dfs(k, threshold, t.left, score+stdLog(1-f), best, hidden)
	m.dfs(k, threshold, t.right, score+stdLog(f), best, hidden)
}
