// Package fasttext reads supervised fastText .bin models and runs inference on them
// Only dense (non quantized) models are supported. A loaded Model is read only and
// safe for concurrent use
package fasttext

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

// on disk format markers
const (
	Magic      int32 = 793712314
	MaxVersion int32 = 12
)

var (
	// ErrMagic means the stream is not a fastText model
	ErrMagic = errors.New("fasttext: bad magic")
	// ErrVersion means the model was written by a newer trainer
	ErrVersion = errors.New("fasttext: unsupported version")
	// ErrQuantized means the model is a .ftz product-quantized model
	ErrQuantized = errors.New("fasttext: quantized models are not supported")
	// ErrK is returned for k < 1
	ErrK = errors.New("fasttext: k needs to be 1 or higher")
)

// Model is a loaded supervised classifier
type Model struct {
	version int32
	args    Args
	dict    *dictionary
	input   *matrix
	output  *matrix
	tree    []node // hierarchical softmax only

	checksum string // sha256 of the bytes read by Load, "" for Read
}

// Info summarises a loaded model
type Info struct {
	Version    int    `json:"version"`
	Dim        int    `json:"dim"`
	Loss       string `json:"loss"`
	Words      int    `json:"words"`
	Labels     int    `json:"labels"`
	Tokens     int64  `json:"tokens"`
	Bucket     int    `json:"bucket"`
	Minn       int    `json:"minn"`
	Maxn       int    `json:"maxn"`
	WordNgrams int    `json:"word_ngrams"`
	Pruned     bool   `json:"pruned"`
	SHA256     string `json:"sha256,omitempty"`
}

// Load reads a model from path
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fasttext: open model: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	m, err := Read(io.TeeReader(f, h))
	if err != nil {
		return nil, err
	}
	m.checksum = hex.EncodeToString(h.Sum(nil))
	return m, nil
}

// Read parses a model from r
func Read(r io.Reader) (*Model, error) {
	d := newDecoder(r)

	d.section = "header"
	magic, version := d.i32(), d.i32()
	if d.err != nil {
		return nil, d.err
	}
	if magic != Magic {
		return nil, ErrMagic
	}
	if version > MaxVersion {
		return nil, fmt.Errorf("%w: %d > %d", ErrVersion, version, MaxVersion)
	}

	args, err := readArgs(d, version)
	if err != nil {
		return nil, err
	}
	dict, err := readDictionary(d, &args)
	if err != nil {
		return nil, err
	}

	d.section = "input flags"
	if d.flag() {
		return nil, ErrQuantized
	}
	if d.err != nil {
		return nil, d.err
	}
	input, err := readMatrix(d, "input")
	if err != nil {
		return nil, err
	}

	d.section = "output flags"
	if d.flag() {
		return nil, ErrQuantized
	}
	if d.err != nil {
		return nil, d.err
	}
	output, err := readMatrix(d, "output")
	if err != nil {
		return nil, err
	}

	m := &Model{version: version, args: args, dict: dict, input: input, output: output}
	if err := m.check(); err != nil {
		return nil, err
	}
	if args.Loss == LossHS {
		m.tree = buildTree(dict.labelCounts())
	}
	return m, nil
}

func (m *Model) check() error {
	dim := m.args.Dim
	if m.input.cols != dim || m.output.cols != dim {
		return fmt.Errorf("fasttext: matrix width %d/%d does not match dim %d", m.input.cols, m.output.cols, dim)
	}
	if m.output.rows != int(m.dict.nlabels) {
		return fmt.Errorf("fasttext: output matrix has %d rows for %d labels", m.output.rows, m.dict.nlabels)
	}
	rows := int(m.dict.nwords)
	switch {
	case m.dict.pruneidxSize < 0:
		rows += m.args.Bucket
	case m.dict.pruneidxSize > 0:
		rows += int(m.dict.pruneidxSize)
	}
	if m.input.rows < rows {
		return fmt.Errorf("fasttext: input matrix has %d rows, need %d", m.input.rows, rows)
	}
	return nil
}

// Args returns the training hyperparameters
func (m *Model) Args() Args { return m.args }

// Labels returns label strings in model order
func (m *Model) Labels() []string {
	out := make([]string, m.dict.nlabels)
	for i := range out {
		out[i] = m.dict.label(i)
	}
	return out
}

// Info describes the model
func (m *Model) Info() Info {
	return Info{
		Version:    int(m.version),
		Dim:        m.args.Dim,
		Loss:       m.args.Loss.String(),
		Words:      int(m.dict.nwords),
		Labels:     int(m.dict.nlabels),
		Tokens:     m.dict.ntokens,
		Bucket:     m.args.Bucket,
		Minn:       m.args.Minn,
		Maxn:       m.args.Maxn,
		WordNgrams: m.args.WordNgrams,
		Pruned:     m.dict.pruneidxSize >= 0,
		SHA256:     m.checksum,
	}
}
