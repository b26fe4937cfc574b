// Package service runs detections for the API: size checks, cache, metrics and journal
package service

import (
	"context"
	"runtime"
	"strconv"
	"time"

	"tglang/internal/core/classifier"
	"tglang/internal/core/langhint"
	"tglang/internal/core/language"
	perr "tglang/internal/platform/errors"
	"tglang/internal/platform/logger"
	"tglang/internal/platform/metrics"
	"tglang/internal/services/api/detect/domain"
	"tglang/internal/services/detectcache"
	journal "tglang/internal/services/journal/domain"

	"golang.org/x/sync/errgroup"
)

// Detector is satisfied by *resources.Resources
type Detector interface {
	Detect(text string) classifier.Result
}

// Config bounds the API surface
type Config struct {
	// MaxInputBytes rejects longer snippets with 413; 0 means unbounded
	MaxInputBytes int
	// BatchWorkers caps concurrent classifications per batch; 0 means GOMAXPROCS
	BatchWorkers int
}

// Service classifies snippets
type Service struct {
	det     Detector
	journal journal.RecorderPort
	cache   *detectcache.Cache
	metrics *metrics.Metrics
	cfg     Config
	now     func() time.Time
}

// New wires a service; det is required, the rest may be nil
func New(det Detector, rec journal.RecorderPort, cache *detectcache.Cache, m *metrics.Metrics, cfg Config) *Service {
	if det == nil {
		panic("detect service: nil detector")
	}
	if rec == nil {
		rec = journal.Nop{}
	}
	if cfg.BatchWorkers <= 0 {
		cfg.BatchWorkers = runtime.GOMAXPROCS(0)
	}
	return &Service{det: det, journal: rec, cache: cache, metrics: m, cfg: cfg, now: time.Now}
}

// Detect classifies one snippet
func (s *Service) Detect(ctx context.Context, text string) (domain.Detection, error) {
	if s.cfg.MaxInputBytes > 0 && len(text) > s.cfg.MaxInputBytes {
		err := perr.TooLargef("text is %d bytes, limit %d", len(text), s.cfg.MaxInputBytes)
		return domain.Detection{}, perr.WithField(err, "text")
	}

	var d domain.Detection
	if s.cache.Get(ctx, text, &d) {
		s.metrics.CachedDetection(d.Language.String(), outcomeLabel(d.Language, false))
		return d, nil
	}

	res := s.det.Detect(text)
	d = toDetection(res, langhint.DetectScript(text))

	s.metrics.Detection(d.Language.String(), outcomeLabel(res.Language, res.Outcome == classifier.OutcomeModelError), res.Elapsed)
	s.journal.Record(journal.Event{
		TS:              s.now().UTC(),
		RequestID:       logger.RequestID(ctx),
		Language:        res.Language,
		Probability:     res.Probability,
		Outcome:         string(res.Outcome),
		Script:          d.Script,
		InputBytes:      res.InputBytes,
		NormalizedBytes: res.NormalizedBytes,
		Elapsed:         res.Elapsed,
	})

	// a model failure is transient, never memoize it
	if res.Outcome != classifier.OutcomeModelError {
		s.cache.Put(ctx, text, d)
	}
	return d, nil
}

// DetectBatch classifies texts concurrently and keeps input order
func (s *Service) DetectBatch(ctx context.Context, texts []string) ([]domain.Detection, error) {
	out := make([]domain.Detection, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.BatchWorkers)
	for i, t := range texts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return perr.Wrap(err, perr.ErrorCodeUnavailable, "batch cancelled")
			}
			d, err := s.Detect(gctx, t)
			if err != nil {
				return perr.WithField(err, "texts["+strconv.Itoa(i)+"]")
			}
			out[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Languages lists the enumeration
func (s *Service) Languages() domain.LanguagesResult {
	all := language.All()
	out := domain.LanguagesResult{SetVersion: language.SetVersion, Languages: make([]domain.LanguageInfo, 0, len(all))}
	for _, l := range all {
		out.Languages = append(out.Languages, domain.LanguageInfo{Code: l.Code(), Name: l.String(), DisplayName: l.DisplayName()})
	}
	return out
}

func toDetection(res classifier.Result, script string) domain.Detection {
	return domain.Detection{
		Language:    res.Language,
		Code:        res.Language.Code(),
		DisplayName: res.Language.DisplayName(),
		Probability: res.Probability,
		Outcome:     string(res.Outcome),
		Script:      script,
	}
}

func outcomeLabel(l language.Language, failed bool) string {
	switch {
	case failed:
		return metrics.OutcomeError
	case l == language.Other:
		return metrics.OutcomeOther
	}
	return metrics.OutcomeDetected
}
