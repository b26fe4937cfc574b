// Package service buffers journal events and writes them to storage in batches
package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"tglang/internal/platform/logger"
	"tglang/internal/services/journal/domain"
	"tglang/internal/services/journal/repo"
)

// Config tunes batching
type Config struct {
	BatchSize     int
	FlushInterval time.Duration
	Buffer        int
	FlushTimeout  time.Duration
	// OnDrop is told how many events were lost, either to a full buffer or a failed flush
	OnDrop func(n int)
}

func (c Config) withDefaults() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = 500
	}
	if c.FlushInterval <= 0 {
		c.FlushInterval = 2 * time.Second
	}
	if c.Buffer <= 0 {
		c.Buffer = 10000
	}
	if c.FlushTimeout <= 0 {
		c.FlushTimeout = 10 * time.Second
	}
	if c.OnDrop == nil {
		c.OnDrop = func(int) {}
	}
	return c
}

// Service implements domain.RecorderPort and domain.QueryPort
type Service struct {
	storage repo.Storage
	cfg     Config
	log     *logger.Logger

	in   chan domain.Event
	quit chan struct{}
	done chan struct{}
	once sync.Once

	// mu orders Record sends before Close so run's final drain sees every accepted event
	mu     sync.RWMutex
	closed bool

	dropped atomic.Uint64
	written atomic.Uint64
}

// New starts the flush loop; call Close to drain it
func New(storage repo.Storage, cfg Config) *Service {
	if storage == nil {
		panic("journal service: nil storage")
	}
	cfg = cfg.withDefaults()
	s := &Service{
		storage: storage,
		cfg:     cfg,
		log:     logger.Named("journal"),
		in:      make(chan domain.Event, cfg.Buffer),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go s.run()
	return s
}

// Record enqueues e, dropping it when the buffer is full or the journal is closed
func (s *Service) Record(e domain.Event) {
	if e.TS.IsZero() {
		e.TS = time.Now()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.drop(1)
		return
	}
	select {
	case s.in <- e:
	default:
		s.drop(1)
	}
}

// CountByLanguage implements domain.QueryPort
func (s *Service) CountByLanguage(ctx context.Context, w domain.Window) ([]domain.LanguageCount, error) {
	return s.storage.CountByLanguage(ctx, w)
}

// Stats reports written and dropped totals
func (s *Service) Stats() (written, dropped uint64) {
	return s.written.Load(), s.dropped.Load()
}

// Close stops accepting events and flushes what is buffered, bounded by ctx
func (s *Service) Close(ctx context.Context) error {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		close(s.quit)
	})
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) run() {
	defer close(s.done)
	ticker := time.NewTicker(s.cfg.FlushInterval)
	defer ticker.Stop()

	batch := make([]domain.Event, 0, s.cfg.BatchSize)
	add := func(e domain.Event) {
		batch = append(batch, e)
		if len(batch) >= s.cfg.BatchSize {
			batch = s.flush(batch)
		}
	}

	for {
		select {
		case e := <-s.in:
			add(e)
		case <-ticker.C:
			batch = s.flush(batch)
		case <-s.quit:
			for {
				select {
				case e := <-s.in:
					add(e)
				default:
					s.flush(batch)
					return
				}
			}
		}
	}
}

// flush writes batch and returns it emptied for reuse
func (s *Service) flush(batch []domain.Event) []domain.Event {
	if len(batch) == 0 {
		return batch
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.FlushTimeout)
	defer cancel()

	if err := s.storage.Insert(ctx, batch); err != nil {
		s.log.Error().Err(err).Int("events", len(batch)).Msg("journal flush failed")
		s.drop(len(batch))
	} else {
		s.written.Add(uint64(len(batch)))
		s.log.Debug().Int("events", len(batch)).Msg("journal flushed")
	}
	return batch[:0]
}

func (s *Service) drop(n int) {
	s.dropped.Add(uint64(n))
	s.cfg.OnDrop(n)
}
