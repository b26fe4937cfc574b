package fasttext

import (
	"fmt"

	"fortio.org/safecast"
)

// Loss is the output layer the model was trained with
type Loss int32

// loss ids as stored on disk
const (
	LossHS      Loss = 1
	LossNS      Loss = 2
	LossSoftmax Loss = 3
	LossOVA     Loss = 4
)

func (l Loss) String() string {
	switch l {
	case LossHS:
		return "hs"
	case LossNS:
		return "ns"
	case LossSoftmax:
		return "softmax"
	case LossOVA:
		return "one-vs-all"
	}
	return fmt.Sprintf("loss(%d)", int32(l))
}

// Kind is the training mode
type Kind int32

// model kinds as stored on disk
const (
	KindCBOW       Kind = 1
	KindSkipgram   Kind = 2
	KindSupervised Kind = 3
)

func (k Kind) String() string {
	switch k {
	case KindCBOW:
		return "cbow"
	case KindSkipgram:
		return "skipgram"
	case KindSupervised:
		return "supervised"
	}
	return fmt.Sprintf("kind(%d)", int32(k))
}

// Args are the training hyperparameters persisted in the model header
type Args struct {
	Dim          int
	WS           int
	Epoch        int
	MinCount     int
	Neg          int
	WordNgrams   int
	Loss         Loss
	Kind         Kind
	Bucket       int
	Minn         int
	Maxn         int
	LRUpdateRate int
	T            float64
}

func readArgs(d *decoder, version int32) (Args, error) {
	d.section = "args"
	var raw [12]int32
	for i := range raw {
		raw[i] = d.i32()
	}
	t := d.f64()
	if d.err != nil {
		return Args{}, d.err
	}

	a := Args{
		Dim:          int(raw[0]),
		WS:           int(raw[1]),
		Epoch:        int(raw[2]),
		MinCount:     int(raw[3]),
		Neg:          int(raw[4]),
		WordNgrams:   int(raw[5]),
		Loss:         Loss(raw[6]),
		Kind:         Kind(raw[7]),
		Bucket:       int(raw[8]),
		Minn:         int(raw[9]),
		Maxn:         int(raw[10]),
		LRUpdateRate: int(raw[11]),
		T:            t,
	}
	// version 11 supervised models were trained without char n-grams
	if version == 11 && a.Kind == KindSupervised {
		a.Maxn = 0
	}

	if a.Dim <= 0 {
		return Args{}, fmt.Errorf("fasttext: args: dim %d", a.Dim)
	}
	if a.Bucket < 0 || a.Minn < 0 || a.Maxn < 0 {
		return Args{}, fmt.Errorf("fasttext: args: negative bucket/minn/maxn")
	}
	if a.Loss < LossHS || a.Loss > LossOVA {
		return Args{}, fmt.Errorf("fasttext: args: unknown %s", a.Loss)
	}
	if a.Kind != KindSupervised {
		return Args{}, fmt.Errorf("fasttext: args: %s models cannot classify", a.Kind)
	}
	if _, err := safecast.Conv[uint32](a.Bucket); err != nil {
		return Args{}, fmt.Errorf("fasttext: args: bucket: %w", err)
	}
	return a, nil
}
