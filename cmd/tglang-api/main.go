package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tglang/internal/core/resources"
	"tglang/internal/modkit/repokit"
	"tglang/internal/platform/config"
	"tglang/internal/platform/logger"
	"tglang/internal/platform/metrics"
	phttp "tglang/internal/platform/net/http"
	"tglang/internal/platform/store"

	"tglang/internal/services/api"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := logger.FromEnv()
	if opts.Service == "" {
		opts.Service = "tglang-api"
	}
	logger.Init(opts)
	l := logger.Get()

	root := config.New()

	// the model must load before anything is served
	if err := resources.Init(resources.ConfigFromEnv()); err != nil {
		l.Error().Err(err).Msg("classifier resources failed to load")
		os.Exit(1)
	}
	res, _ := resources.Get()

	st, err := store.Open(ctx, store.ConfigFromEnv("tglang-api"), store.WithLogger(*l))
	if err != nil {
		l.Error().Err(err).Msg("store.Open failed")
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	opt := api.OptionsFrom(root)
	opt.Store = st
	opt.Resources = res
	opt.Metrics = metrics.New()
	opt.Logger = l

	router := phttp.NewRouter()
	shutdown, err := api.Mount(ctx, router, opt)
	if err != nil {
		l.Error().Err(err).Msg("api mount failed")
		os.Exit(1)
	}

	srv := phttp.NewServer(phttp.ServerConfigFrom(root.Prefix("CORE_")), router.Mux())
	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}

	// drain journaled detections after the last request finished
	dctx, dcancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer dcancel()
	if err := shutdown(dctx); err != nil {
		l.Warn().Err(err).Msg("journal drain incomplete")
	}
}
