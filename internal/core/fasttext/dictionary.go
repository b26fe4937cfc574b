package fasttext

import (
	"fmt"
	"strings"
)

// special tokens
const (
	EOS         = "</s>"
	BOW         = "<"
	EOW         = ">"
	LabelPrefix = "__label__"
)

type entryType int8

const (
	entryWord  entryType = 0
	entryLabel entryType = 1
)

type entry struct {
	word     string
	count    int64
	typ      entryType
	subwords []int32 // own id followed by char n-gram rows, words only
}

type dictionary struct {
	args         *Args
	words        []entry
	index        map[string]int32
	nwords       int32
	nlabels      int32
	ntokens      int64
	pruneidxSize int64
	pruneidx     map[int32]int32
}

func readDictionary(d *decoder, args *Args) (*dictionary, error) {
	d.section = "dictionary"
	dict := &dictionary{args: args}
	size := d.i32()
	dict.nwords = d.i32()
	dict.nlabels = d.i32()
	dict.ntokens = d.i64()
	dict.pruneidxSize = d.i64()
	if d.err != nil {
		return nil, d.err
	}
	if size < 0 || dict.nwords < 0 || dict.nlabels < 0 || dict.nwords+dict.nlabels != size {
		return nil, fmt.Errorf("fasttext: dictionary: inconsistent sizes %d words + %d labels != %d",
			dict.nwords, dict.nlabels, size)
	}
	if dict.nlabels == 0 {
		return nil, fmt.Errorf("fasttext: dictionary: no labels")
	}

	dict.words = make([]entry, 0, min(int(size), initialCap))
	dict.index = make(map[string]int32, min(int(size), initialCap))
	for i := int32(0); i < size; i++ {
		e := entry{word: d.cstring(), count: d.i64(), typ: entryType(d.i8())}
		if d.err != nil {
			return nil, d.err
		}
		want := entryWord
		if i >= dict.nwords {
			want = entryLabel
		}
		if e.typ != want {
			return nil, fmt.Errorf("fasttext: dictionary: entry %d %q has type %d, want %d", i, e.word, e.typ, want)
		}
		dict.index[e.word] = i
		dict.words = append(dict.words, e)
	}

	if dict.pruneidxSize > 0 {
		if dict.pruneidxSize > int64(args.Bucket) {
			return nil, fmt.Errorf("fasttext: dictionary: prune index of %d exceeds %d buckets", dict.pruneidxSize, args.Bucket)
		}
		dict.pruneidx = make(map[int32]int32, min(dict.pruneidxSize, initialCap))
		for i := int64(0); i < dict.pruneidxSize; i++ {
			k, v := d.i32(), d.i32()
			dict.pruneidx[k] = v
		}
		if d.err != nil {
			return nil, d.err
		}
	}

	if args.Maxn > 0 {
		for i := int32(0); i < dict.nwords; i++ {
			e := &dict.words[i]
			e.subwords = []int32{i}
			if e.word != EOS {
				e.subwords = dict.computeSubwords(BOW+e.word+EOW, e.subwords)
			}
		}
	}
	return dict, nil
}

// hash is FNV-1a over bytes sign extended the way the reference trainer does it
func hash(s string) uint32 {
	h := uint32(2166136261)
	for i := 0; i < len(s); i++ {
		h ^= uint32(int8(s[i]))
		h *= 16777619
	}
	return h
}

func (dict *dictionary) id(w string) int32 {
	if i, ok := dict.index[w]; ok {
		return i
	}
	return -1
}

func (dict *dictionary) label(lid int) string {
	return dict.words[int(dict.nwords)+lid].word
}

func (dict *dictionary) labelCounts() []int64 {
	out := make([]int64, dict.nlabels)
	for i := range out {
		out[i] = dict.words[int(dict.nwords)+i].count
	}
	return out
}

func (dict *dictionary) pushHash(out []int32, id int32) []int32 {
	if dict.pruneidxSize == 0 || id < 0 {
		return out
	}
	if dict.pruneidxSize > 0 {
		mapped, ok := dict.pruneidx[id]
		if !ok {
			return out
		}
		id = mapped
	}
	return append(out, dict.nwords+id)
}

// computeSubwords appends the bucket rows of every char n-gram of word with length minn..maxn
// counted in runes; single rune grams touching a boundary marker are skipped
func (dict *dictionary) computeSubwords(word string, out []int32) []int32 {
	if dict.args.Bucket == 0 {
		return out
	}
	bucket := uint32(dict.args.Bucket)
	for i := 0; i < len(word); i++ {
		if word[i]&0xC0 == 0x80 {
			continue
		}
		j := i
		for n := 1; j < len(word) && n <= dict.args.Maxn; n++ {
			j++
			for j < len(word) && word[j]&0xC0 == 0x80 {
				j++
			}
			if n >= dict.args.Minn && !(n == 1 && (i == 0 || j == len(word))) {
				out = dict.pushHash(out, int32(hash(word[i:j])%bucket))
			}
		}
	}
	return out
}

func (dict *dictionary) addSubwords(out []int32, token string, wid int32) []int32 {
	if wid < 0 {
		if token != EOS {
			out = dict.computeSubwords(BOW+token+EOW, out)
		}
		return out
	}
	if dict.args.Maxn <= 0 {
		return append(out, wid)
	}
	return append(out, dict.words[wid].subwords...)
}

func (dict *dictionary) addWordNgrams(out []int32, hashes []int32, n int) []int32 {
	if dict.args.Bucket == 0 {
		return out
	}
	bucket := uint64(dict.args.Bucket)
	for i := range hashes {
		h := uint64(int64(hashes[i]))
		for j := i + 1; j < len(hashes) && j < i+n; j++ {
			h = h*116049371 + uint64(int64(hashes[j]))
			out = dict.pushHash(out, int32(h%bucket))
		}
	}
	return out
}

// line converts the first line of text into input rows. Labels in the text are ignored
func (dict *dictionary) line(text string) []int32 {
	var (
		ids    []int32
		hashes []int32
	)
	tok := tokenizer{s: text}
	for {
		w, ok := tok.next()
		if !ok {
			break
		}
		wid := dict.id(w)
		typ := entryWord
		if wid >= 0 {
			typ = dict.words[wid].typ
		} else if strings.HasPrefix(w, LabelPrefix) {
			typ = entryLabel
		}
		if typ == entryWord {
			ids = dict.addSubwords(ids, w, wid)
			hashes = append(hashes, int32(hash(w)))
		}
		if w == EOS {
			break
		}
	}
	return dict.addWordNgrams(ids, hashes, dict.args.WordNgrams)
}

// tokenizer splits on the trainer's whitespace set; a newline yields EOS
type tokenizer struct {
	s   string
	pos int
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\n', '\r', '\t', '\v', '\f', 0:
		return true
	}
	return false
}

func (t *tokenizer) next() (string, bool) {
	start := -1
	for t.pos < len(t.s) {
		c := t.s[t.pos]
		if !isSpace(c) {
			if start < 0 {
				start = t.pos
			}
			t.pos++
			continue
		}
		if start < 0 {
			t.pos++
			if c == '\n' {
				return EOS, true
			}
			continue
		}
		w := t.s[start:t.pos]
		// a newline after a word is left for the next call
		if c != '\n' {
			t.pos++
		}
		return w, true
	}
	if start >= 0 {
		return t.s[start:], true
	}
	return "", false
}
