// Package classifier turns model output into a language.Language
// Pipeline per call
// 1 optional input cap on a rune boundary
// 2 normalize
// 3 ask the model for its single best label with probability >= Threshold
// 4 decode "__label__<int>" and range check against the language enumeration
// Every failure resolves to language.Other; Classify never returns an error
package classifier

import (
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"tglang/internal/core/language"
	"tglang/internal/core/normalize"
	perr "tglang/internal/platform/errors"
	"tglang/internal/platform/logger"
)

// model query parameters
const (
	TopK        = 1
	Threshold   = 0.3
	LabelPrefix = "__label__"
)

// Prediction is one labelled candidate from a model
type Prediction struct {
	Label       string
	Probability float64
}

// Model is the probability model capability: the best k candidates whose probability is at
// least threshold, best first. Fewer than k (including none) is a valid answer
type Model interface {
	Predict(text string, k int, threshold float64) ([]Prediction, error)
}

// Normalizer rewrites raw text into the form the model was trained on
type Normalizer interface {
	Normalize(s string) string
}

// Outcome says which branch of the decision produced a Result
type Outcome string

// outcomes
const (
	OutcomeAccepted       Outcome = "accepted"
	OutcomeNoCandidates   Outcome = "no_candidates"
	OutcomeBelowThreshold Outcome = "below_threshold"
	OutcomeModelError     Outcome = "model_error"
	OutcomeMalformedLabel Outcome = "malformed_label"
	OutcomeOutOfRange     Outcome = "out_of_range"
)

// Outcomes lists every outcome, for metrics label sets
func Outcomes() []Outcome {
	return []Outcome{
		OutcomeAccepted, OutcomeNoCandidates, OutcomeBelowThreshold,
		OutcomeModelError, OutcomeMalformedLabel, OutcomeOutOfRange,
	}
}

// Result is a classification with diagnostics
type Result struct {
	Language        language.Language
	Probability     float64 // best candidate, 0 when there was none
	Label           string  // raw model label, "" when there was none
	Outcome         Outcome
	Err             error // model failure or decode error, nil when accepted
	InputBytes      int
	NormalizedBytes int
	Elapsed         time.Duration
}

// Options tune a Classifier
type Options struct {
	// Strict panics on malformed or out of range labels instead of degrading to Other
	Strict bool
	// Serialize guards a model that is not safe for concurrent use
	Serialize bool
	// MaxInputBytes caps the raw input before normalization, 0 means unbounded
	MaxInputBytes int
	// Logger defaults to logger.Named("classifier")
	Logger *logger.Logger
}

// Classifier is safe for concurrent use when its Model is, or when Options.Serialize is set
type Classifier struct {
	model Model
	norm  Normalizer
	opt   Options
	log   *logger.Logger
	mu    sync.Mutex
}

// New builds a Classifier
func New(model Model, norm Normalizer, opt Options) *Classifier {
	l := opt.Logger
	if l == nil {
		l = logger.Named("classifier")
	}
	return &Classifier{model: model, norm: norm, opt: opt, log: l}
}

// Classify returns the detected language or language.Other
func (c *Classifier) Classify(text string) language.Language {
	return c.Detect(text).Language
}

// Detect classifies text and reports how the decision was reached
func (c *Classifier) Detect(text string) (res Result) {
	start := time.Now()
	res = Result{Language: language.Other, InputBytes: len(text)}
	defer func() { res.Elapsed = time.Since(start) }()

	normalized := c.norm.Normalize(normalize.Clip(text, c.opt.MaxInputBytes))
	res.NormalizedBytes = len(normalized)
	if normalized == "" {
		res.Outcome = OutcomeNoCandidates
		return res
	}

	preds, err := c.predict(normalized)
	if err != nil {
		res.Outcome = OutcomeModelError
		res.Err = err
		c.log.Error().Err(err).Int("bytes", len(normalized)).Msg("model prediction failed")
		return res
	}
	if len(preds) == 0 {
		res.Outcome = OutcomeNoCandidates
		return res
	}

	best := preds[0]
	res.Label, res.Probability = best.Label, best.Probability
	if math.IsNaN(best.Probability) || best.Probability < Threshold {
		res.Outcome = OutcomeBelowThreshold
		return res
	}

	code, err := ParseLabel(best.Label)
	if err != nil {
		res.Outcome = OutcomeMalformedLabel
		res.Err = err
		c.violation(res)
		return res
	}
	if code < 0 || code > int(language.Max) {
		res.Outcome = OutcomeOutOfRange
		res.Err = perr.Newf(perr.ErrorCodeInvalidArgument, "classifier: label %q decodes to %d outside 0..%d", best.Label, code, int(language.Max))
		c.violation(res)
		return res
	}

	res.Language = language.Language(code)
	res.Outcome = OutcomeAccepted
	c.log.Debug().
		Str("class", best.Label).
		Int("converted", code).
		Float64("prob", best.Probability).
		Msg("classified")
	return res
}

func (c *Classifier) predict(text string) (preds []Prediction, err error) {
	defer func() {
		if r := recover(); r != nil {
			preds, err = nil, perr.PanicErrf("classifier: model panicked: %v", r)
		}
	}()
	if c.opt.Serialize {
		c.mu.Lock()
		defer c.mu.Unlock()
	}
	preds, err = c.model.Predict(text, TopK, Threshold)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "classifier: model prediction")
	}
	return preds, nil
}

// violation reports a model emitting a label outside the contract
func (c *Classifier) violation(res Result) {
	err := perr.WithOp(res.Err, "classifier.decode")
	if c.opt.Strict {
		panic(err)
	}
	c.log.Warn().
		Err(err).
		Str("class", res.Label).
		Float64("prob", res.Probability).
		Str("outcome", string(res.Outcome)).
		Msg("model label rejected, falling back to OTHER")
}

// ParseLabel strips LabelPrefix and parses the remainder as a base 10 integer
func ParseLabel(label string) (int, error) {
	rest, ok := strings.CutPrefix(label, LabelPrefix)
	if !ok {
		return 0, perr.Newf(perr.ErrorCodeInvalidArgument, "classifier: label %q lacks prefix %q", label, LabelPrefix)
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "classifier: label %q is not numeric", label)
	}
	return n, nil
}
