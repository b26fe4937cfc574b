package http

import (
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"sync"
	"time"

	"tglang/internal/platform/config"
	"tglang/internal/platform/logger"
)

// ServerConfig holds listener and timeout settings
type ServerConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// ServerConfigFrom reads API_* keys from cfg, usually config.New().Prefix("CORE_")
func ServerConfigFrom(cfg config.Conf) ServerConfig {
	return ServerConfig{
		Addr:              cfg.MayString("API_PORT", ":4000"),
		ReadHeaderTimeout: cfg.MayDuration("API_READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      cfg.MayDuration("API_WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:       cfg.MayDuration("API_IDLE_TIMEOUT", 120*time.Second),
		ShutdownTimeout:   cfg.MayDuration("API_SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}

// Server wraps http.Server with context driven graceful shutdown
type Server struct {
	cfg ServerConfig
	srv *stdhttp.Server

	mu   sync.Mutex
	addr string
}

// NewServer serves h with cfg
func NewServer(cfg ServerConfig, h stdhttp.Handler) *Server {
	return &Server{
		cfg:  cfg,
		addr: cfg.Addr,
		srv: &stdhttp.Server{
			Addr:              cfg.Addr,
			Handler:           h,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
	}
}

// Addr returns the bound address once Run is listening, the configured one before
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Run listens and blocks until ctx is done, then drains in flight requests
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	s.addr = ln.Addr().String()
	s.mu.Unlock()

	log := logger.Named("http")
	log.Info().Str("addr", s.Addr()).Msg("http listening")

	errc := make(chan error, 1)
	go func() { errc <- s.srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	log.Info().Dur("timeout", timeout).Msg("http draining")
	if err := s.srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}
