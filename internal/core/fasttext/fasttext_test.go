package fasttext

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-4 }

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

func TestPredict_Softmax(t *testing.T) {
	m := load(t, twoLabel(LossSoftmax))

	tests := []struct {
		name   string
		text   string
		k      int
		th     float64
		labels []string
		probs  []float64
	}{
		{"single word", "print", 1, 0.3, []string{"__label__73"}, []float64{sigmoid(5)}},
		{"other word", "func", 1, 0.3, []string{"__label__39"}, []float64{sigmoid(5)}},
		{"mean of rows, k=2", "print print func", 2, 0, []string{"__label__73", "__label__39"}, []float64{sigmoid(5.0 / 3), sigmoid(-5.0 / 3)}},
		{"threshold drops weak label", "print print func", 2, 0.3, []string{"__label__73"}, []float64{sigmoid(5.0 / 3)}},
		{"threshold drops everything", "print print func", 1, 0.9, nil, nil},
		{"only first line, EOS counts", "print\nfunc", 1, 0, []string{"__label__73"}, []float64{sigmoid(2.5)}},
		{"other separators", "func\tprint\rprint", 1, 0, []string{"__label__73"}, []float64{sigmoid(5.0 / 3)}},
		{"labels in text are ignored", "__label__39 print", 1, 0, []string{"__label__73"}, []float64{sigmoid(5)}},
		{"unknown words give nothing", "fmt.Println", 1, 0, nil, nil},
		{"empty", "", 1, 0, nil, nil},
		{"blank", "  \t ", 1, 0, nil, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := m.Predict(tc.text, tc.k, tc.th)
			if err != nil {
				t.Fatalf("Predict: %v", err)
			}
			if len(got) != len(tc.labels) {
				t.Fatalf("got %d predictions %+v, want %d", len(got), got, len(tc.labels))
			}
			for i, p := range got {
				if p.Label != tc.labels[i] || !near(p.Probability, tc.probs[i]) {
					t.Fatalf("prediction %d = %+v, want %s %.5f", i, p, tc.labels[i], tc.probs[i])
				}
			}
		})
	}
}

func TestPredict_OneVsAll(t *testing.T) {
	m := load(t, twoLabel(LossOVA))

	got, err := m.Predict("print", 2, 0)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if len(got) != 2 || got[0].Label != "__label__73" || got[1].Label != "__label__39" {
		t.Fatalf("got %+v", got)
	}
	if !near(got[0].Probability, sigmoid(5)) || !near(got[1].Probability, 0.5) {
		t.Fatalf("got %+v", got)
	}

	got, err = m.Predict("print", 2, 0.6)
	if err != nil || len(got) != 1 || got[0].Label != "__label__73" {
		t.Fatalf("got %+v %v", got, err)
	}
}

func TestPredict_HierarchicalSoftmax(t *testing.T) {
	m := load(t, twoLabel(LossHS))

	got, err := m.Predict("print", 1, 0.3)
	if err != nil || len(got) != 1 || got[0].Label != "__label__73" || !near(got[0].Probability, sigmoid(5)) {
		t.Fatalf("print: %+v %v", got, err)
	}
	got, err = m.Predict("func", 1, 0.3)
	if err != nil || len(got) != 1 || got[0].Label != "__label__39" || !near(got[0].Probability, sigmoid(5)) {
		t.Fatalf("func: %+v %v", got, err)
	}
	got, err = m.Predict("print", 2, 0)
	if err != nil || len(got) != 2 || got[1].Label != "__label__39" {
		t.Fatalf("k=2: %+v %v", got, err)
	}
}

func TestPredict_BadK(t *testing.T) {
	m := load(t, twoLabel(LossSoftmax))
	if _, err := m.Predict("print", 0, 0.3); !errors.Is(err, ErrK) {
		t.Fatalf("err = %v, want ErrK", err)
	}
}

func TestInfoAndLabels(t *testing.T) {
	m := load(t, twoLabel(LossSoftmax))
	if !reflect.DeepEqual(m.Labels(), []string{"__label__73", "__label__39"}) {
		t.Fatalf("Labels() = %v", m.Labels())
	}
	info := m.Info()
	if info.Dim != 2 || info.Words != 3 || info.Labels != 2 || info.Loss != "softmax" || info.Pruned {
		t.Fatalf("Info() = %+v", info)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.bin")
	raw := specBytes(t, twoLabel(LossSoftmax))
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Args().Loss != LossSoftmax {
		t.Fatalf("loss = %v", m.Args().Loss)
	}
	sum := sha256.Sum256(raw)
	if got := m.Info().SHA256; got != hex.EncodeToString(sum[:]) {
		t.Fatalf("sha256 = %q", got)
	}
	if load(t, twoLabel(LossSoftmax)).Info().SHA256 != "" {
		t.Fatalf("Read has no file to fingerprint")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.bin")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestRead_Errors(t *testing.T) {
	good := twoLabel(LossSoftmax)

	badMagic := specBytes(t, good)
	badMagic[0] ^= 0xff
	if _, err := Read(bytes.NewReader(badMagic)); !errors.Is(err, ErrMagic) {
		t.Fatalf("magic: %v", err)
	}

	newer := good
	newer.Version = MaxVersion + 1
	if _, err := Read(bytes.NewReader(specBytes(t, newer))); !errors.Is(err, ErrVersion) {
		t.Fatalf("version: %v", err)
	}

	quant := good
	quant.Quantized = true
	if _, err := Read(bytes.NewReader(specBytes(t, quant))); !errors.Is(err, ErrQuantized) {
		t.Fatalf("quantized: %v", err)
	}

	full := specBytes(t, good)
	if _, err := Read(bytes.NewReader(full[:len(full)-3])); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("truncated: %v", err)
	}
	if _, err := Read(bytes.NewReader(nil)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("empty: %v", err)
	}

	cbow := good
	cbow.Kind = int(KindCBOW)
	if _, err := Read(bytes.NewReader(specBytes(t, cbow))); err == nil {
		t.Fatalf("expected error for cbow model")
	}

	short := good
	short.Output = short.Output[:1]
	if _, err := Read(bytes.NewReader(specBytes(t, short))); err == nil {
		t.Fatalf("expected error for output rows mismatch")
	}

	noLabels := good
	noLabels.Words = good.Words[:3]
	noLabels.Output = nil
	if _, err := Read(bytes.NewReader(specBytes(t, noLabels))); err == nil {
		t.Fatalf("expected error for model without labels")
	}
}

func TestRead_HugeDeclaredSizes(t *testing.T) {
	le := binary.LittleEndian

	// magic, version and args of a valid model, then a dictionary claiming 2e9 entries
	hdr := specBytes(t, twoLabel(LossSoftmax))[:64]
	hdr = le.AppendUint32(hdr, 2_000_000_000)
	hdr = le.AppendUint32(hdr, 2_000_000_000-1)
	hdr = le.AppendUint32(hdr, 1)
	hdr = le.AppendUint64(hdr, 0)
	hdr = le.AppendUint64(hdr, math.MaxUint64) // prune index size -1
	if _, err := Read(bytes.NewReader(hdr)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("dictionary: %v", err)
	}

	// a matrix header just under the element bound with no data behind it
	mat := le.AppendUint64(nil, 1<<20)
	mat = le.AppendUint64(mat, 2047)
	if _, err := readMatrix(newDecoder(bytes.NewReader(mat)), "input"); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("matrix: %v", err)
	}
}

func TestRead_Version11DropsCharNgrams(t *testing.T) {
	tm := twoLabel(LossSoftmax)
	tm.Version = 11
	tm.Minn, tm.Maxn = 2, 4
	if m := load(t, tm); m.Args().Maxn != 0 {
		t.Fatalf("maxn = %d, want 0", m.Args().Maxn)
	}
}

func TestHash(t *testing.T) {
	if hash("") != 2166136261 {
		t.Fatalf("empty hash = %d", hash(""))
	}
	if hash("a") != 0xe40c292c {
		t.Fatalf("hash(a) = %#x", hash("a"))
	}
	// bytes >= 0x80 are sign extended before the xor
	want := uint32(2166136261)
	want ^= 0xffffffc3
	want *= 16777619
	if hash("\xc3") != want {
		t.Fatalf("hash(0xc3) = %#x, want %#x", hash("\xc3"), want)
	}
}

func TestComputeSubwords(t *testing.T) {
	const bucket = 1000003
	dict := &dictionary{args: &Args{Minn: 1, Maxn: 2, Bucket: bucket}, nwords: 10, pruneidxSize: -1}

	rows := func(grams ...string) []int32 {
		var out []int32
		for _, g := range grams {
			out = append(out, 10+int32(hash(g)%bucket))
		}
		return out
	}

	if got, want := dict.computeSubwords("<ab>", nil), rows("<a", "a", "ab", "b", "b>"); !reflect.DeepEqual(got, want) {
		t.Fatalf("ascii: got %v want %v", got, want)
	}
	// grams are counted in runes, continuation bytes never start one
	if got, want := dict.computeSubwords("<é>", nil), rows("<é", "é", "é>"); !reflect.DeepEqual(got, want) {
		t.Fatalf("utf8: got %v want %v", got, want)
	}

	dict.args.Minn = 2
	if got, want := dict.computeSubwords("<ab>", nil), rows("<a", "ab", "b>"); !reflect.DeepEqual(got, want) {
		t.Fatalf("minn=2: got %v want %v", got, want)
	}

	dict.pruneidxSize = 0
	if got := dict.computeSubwords("<ab>", nil); len(got) != 0 {
		t.Fatalf("fully pruned: got %v", got)
	}

	dict.pruneidxSize = 1
	dict.pruneidx = map[int32]int32{int32(hash("ab") % bucket): 0}
	if got := dict.computeSubwords("<ab>", nil); !reflect.DeepEqual(got, []int32{10}) {
		t.Fatalf("pruned: got %v", got)
	}
}

func TestLine_WordNgrams(t *testing.T) {
	const bucket = 1000
	dict := &dictionary{
		args:         &Args{WordNgrams: 2, Bucket: bucket},
		words:        []entry{{word: EOS}, {word: "print"}, {word: "func"}, {word: "__label__1", typ: entryLabel}},
		index:        map[string]int32{EOS: 0, "print": 1, "func": 2, "__label__1": 3},
		nwords:       3,
		nlabels:      1,
		pruneidxSize: -1,
	}
	h := uint64(int64(int32(hash("print"))))*116049371 + uint64(int64(int32(hash("func"))))
	want := []int32{1, 2, 3 + int32(h%bucket)}
	if got := dict.line("print func"); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	// unknown words still take part in word n-grams through their hash
	h = uint64(int64(int32(hash("print"))))*116049371 + uint64(int64(int32(hash("zzz"))))
	want = []int32{1, 3 + int32(h%bucket)}
	if got := dict.line("print zzz"); !reflect.DeepEqual(got, want) {
		t.Fatalf("unknown word: got %v want %v", got, want)
	}
}

func TestTokenizer(t *testing.T) {
	tok := tokenizer{s: "a  b\tc\n d\x00e\v\f"}
	var got []string
	for {
		w, ok := tok.next()
		if !ok {
			break
		}
		got = append(got, w)
	}
	want := []string{"a", "b", "c", EOS, "d", "e"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q want %q", got, want)
	}

	lead := tokenizer{s: "\nx"}
	if w, _ := lead.next(); w != EOS {
		t.Fatalf("leading newline = %q", w)
	}
}

func TestBuildTree(t *testing.T) {
	tree := buildTree([]int64{10, 5, 1})
	if len(tree) != 5 {
		t.Fatalf("len = %d", len(tree))
	}
	if tree[3].left != 2 || tree[3].right != 1 || tree[3].count != 6 {
		t.Fatalf("node 3 = %+v", tree[3])
	}
	if tree[4].left != 3 || tree[4].right != 0 || tree[4].count != 16 {
		t.Fatalf("node 4 = %+v", tree[4])
	}
	if tree[0].parent != 4 || !tree[0].binary || tree[2].binary {
		t.Fatalf("leaves = %+v", tree[:3])
	}
}

func TestTableSigmoid(t *testing.T) {
	if tableSigmoid(-9) != 0 || tableSigmoid(9) != 1 {
		t.Fatalf("saturation broken")
	}
	if !near(float64(tableSigmoid(0)), 0.5) || !near(float64(tableSigmoid(5)), sigmoid(5)) {
		t.Fatalf("table values off")
	}
}
