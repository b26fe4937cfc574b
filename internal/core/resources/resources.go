// Package resources owns the process lifetime state the classifier needs: the symbol filter
// set, the normalizer and the loaded model. Construct it once with Load (or Init for the
// process wide handle) before serving any detection; it is read only afterwards
package resources

import (
	"sync"
	"sync/atomic"
	"time"

	"tglang/internal/core/classifier"
	"tglang/internal/core/fasttext"
	"tglang/internal/core/language"
	"tglang/internal/core/normalize"
	"tglang/internal/core/symbols"
	"tglang/internal/platform/config"
	perr "tglang/internal/platform/errors"
	"tglang/internal/platform/logger"
)

// DefaultModelPath is where the model artifact lives relative to the working directory
const DefaultModelPath = "./resources/fasttext-model.bin"

// Config selects the model artifact and classifier behaviour
type Config struct {
	ModelPath     string
	MaxInputBytes int
	Strict        bool
	Serialize     bool
}

// ConfigFromEnv reads CORE_TGLANG_* settings
func ConfigFromEnv() Config {
	c := config.New().Prefix("CORE_TGLANG_")
	return Config{
		ModelPath:     c.MayString("MODEL_PATH", DefaultModelPath),
		MaxInputBytes: c.MayInt("MAX_INPUT_BYTES", 0),
		Strict:        c.MayBool("STRICT", false),
		Serialize:     c.MayBool("SERIALIZE", false),
	}
}

// Resources bundles everything a detection call reads
type Resources struct {
	Symbols    *symbols.Set
	Normalizer *normalize.Normalizer
	Model      *fasttext.Model
	Classifier *classifier.Classifier
	ModelPath  string
	LoadedAt   time.Time
}

// seams for tests
var (
	loadSymbols = symbols.Load
	loadModel   = fasttext.Load
)

// Load builds Resources from cfg. A missing or corrupt model is an error; callers must not
// serve detections without one
func Load(cfg Config) (*Resources, error) {
	if cfg.ModelPath == "" {
		cfg.ModelPath = DefaultModelPath
	}
	log := logger.Named("resources")
	start := time.Now()

	set, err := loadSymbols()
	if err != nil {
		return nil, perr.WithOp(perr.Wrap(err, perr.ErrorCodeUnavailable, "load symbol filter set"), "resources.load")
	}

	model, err := loadModel(cfg.ModelPath)
	if err != nil {
		return nil, perr.WithOp(perr.Wrapf(err, perr.ErrorCodeUnavailable, "load model %s", cfg.ModelPath), "resources.load")
	}

	norm := normalize.New(set)
	r := &Resources{
		Symbols:    set,
		Normalizer: norm,
		Model:      model,
		Classifier: classifier.New(Adapt(model), norm, classifier.Options{
			Strict:        cfg.Strict,
			Serialize:     cfg.Serialize,
			MaxInputBytes: cfg.MaxInputBytes,
		}),
		ModelPath: cfg.ModelPath,
		LoadedAt:  time.Now(),
	}

	info := model.Info()
	log.Info().
		Str("path", cfg.ModelPath).
		Int("labels", info.Labels).
		Int("words", info.Words).
		Int("dim", info.Dim).
		Str("loss", info.Loss).
		Int("symbols", set.Len()).
		Dur("took", time.Since(start)).
		Msg("classifier resources loaded")
	return r, nil
}

// DetectLanguage is the inbound detect_language operation
func (r *Resources) DetectLanguage(text string) language.Language {
	return r.Classifier.Classify(text)
}

// Detect is DetectLanguage with diagnostics
func (r *Resources) Detect(text string) classifier.Result {
	return r.Classifier.Detect(text)
}

// Process wide handle, initialised explicitly and exactly once

type initResult struct {
	r   *Resources
	err error
}

var (
	once  sync.Once
	state atomic.Pointer[initResult]
)

// Init loads the process wide Resources. Only the first call does any work; later calls
// return its result
func Init(cfg Config) error {
	once.Do(func() {
		r, err := Load(cfg)
		state.Store(&initResult{r: r, err: err})
	})
	return state.Load().err
}

// Get returns the process wide Resources, or an error when Init was never called or failed
func Get() (*Resources, error) {
	s := state.Load()
	if s == nil {
		return nil, perr.WithOp(perr.New(perr.ErrorCodeUnavailable, "classifier resources not initialised"), "resources.get")
	}
	return s.r, s.err
}

// DetectLanguage classifies with the process wide Resources and returns Other if they are
// not available. It never loads lazily
func DetectLanguage(text string) language.Language {
	r, err := Get()
	if err != nil {
		return language.Other
	}
	return r.DetectLanguage(text)
}

// Adapt exposes a fastText model as a classifier.Model
func Adapt(m *fasttext.Model) classifier.Model { return fastTextModel{m} }

type fastTextModel struct{ m *fasttext.Model }

func (f fastTextModel) Predict(text string, k int, threshold float64) ([]classifier.Prediction, error) {
	preds, err := f.m.Predict(text, k, threshold)
	if err != nil {
		return nil, err
	}
	out := make([]classifier.Prediction, len(preds))
	for i, p := range preds {
		out[i] = classifier.Prediction{Label: p.Label, Probability: p.Probability}
	}
	return out, nil
}
