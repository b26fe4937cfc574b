package fasttext

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// decoder reads the little endian fastText layout with a sticky error
type decoder struct {
	r       *bufio.Reader
	section string
	err     error
	buf     [8]byte
}

func newDecoder(r io.Reader) *decoder {
	return &decoder{r: bufio.NewReaderSize(r, 1<<16)}
}

func (d *decoder) fail(err error) {
	if d.err == nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		d.err = fmt.Errorf("fasttext: read %s: %w", d.section, err)
	}
}

func (d *decoder) read(n int) []byte {
	if d.err != nil {
		return d.buf[:n]
	}
	if _, err := io.ReadFull(d.r, d.buf[:n]); err != nil {
		d.fail(err)
	}
	return d.buf[:n]
}

func (d *decoder) i8() int8   { return int8(d.read(1)[0]) }
func (d *decoder) flag() bool { return d.read(1)[0] != 0 }
func (d *decoder) i32() int32 { return int32(binary.LittleEndian.Uint32(d.read(4))) }
func (d *decoder) i64() int64 { return int64(binary.LittleEndian.Uint64(d.read(8))) }
func (d *decoder) f64() float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(d.read(8)))
}

// cstring reads a NUL terminated string
func (d *decoder) cstring() string {
	if d.err != nil {
		return ""
	}
	b, err := d.r.ReadBytes(0)
	if err != nil {
		d.fail(err)
		return ""
	}
	return string(b[:len(b)-1])
}

// initialCap bounds up front allocations sized by untrusted header fields
const initialCap = 1 << 16

// f32n reads n floats, growing the result as data arrives so a corrupt count fails on EOF
func (d *decoder) f32n(n int) []float32 {
	if d.err != nil {
		return nil
	}
	out := make([]float32, 0, min(n, initialCap))
	var chunk [4096]byte
	for len(out) < n {
		k := min(n-len(out), len(chunk)/4)
		if _, err := io.ReadFull(d.r, chunk[:k*4]); err != nil {
			d.fail(err)
			return nil
		}
		for j := 0; j < k; j++ {
			out = append(out, math.Float32frombits(binary.LittleEndian.Uint32(chunk[j*4:])))
		}
	}
	return out
}
