package fasttext

import (
	"fmt"
	"math"

	"fortio.org/safecast"
)

// maxElems bounds a dense matrix read from disk
const maxElems = math.MaxInt32

// matrix is a row major dense float32 matrix
type matrix struct {
	rows, cols int
	data       []float32
}

func (m *matrix) row(i int) []float32 {
	return m.data[i*m.cols : (i+1)*m.cols]
}

// dotRow is the float32 dot product of row i with v
func (m *matrix) dotRow(v []float32, i int) float32 {
	var d float32
	for j, x := range m.row(i) {
		d += x * v[j]
	}
	return d
}

func readMatrix(d *decoder, name string) (*matrix, error) {
	d.section = name + " matrix"
	m64, n64 := d.i64(), d.i64()
	if d.err != nil {
		return nil, d.err
	}
	rows, err := safecast.Conv[int](m64)
	if err != nil {
		return nil, fmt.Errorf("fasttext: %s matrix rows: %w", name, err)
	}
	cols, err := safecast.Conv[int](n64)
	if err != nil {
		return nil, fmt.Errorf("fasttext: %s matrix cols: %w", name, err)
	}
	if rows < 0 || cols < 0 || (cols > 0 && rows > maxElems/cols) {
		return nil, fmt.Errorf("fasttext: %s matrix %dx%d out of bounds", name, rows, cols)
	}

	data := d.f32n(rows * cols)
	if d.err != nil {
		return nil, d.err
	}
	return &matrix{rows: rows, cols: cols, data: data}, nil
}
