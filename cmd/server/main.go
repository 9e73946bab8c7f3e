package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"idcheck/internal/choices"
	choicehandler "idcheck/internal/choices/handler"
	"idcheck/internal/idnumber"
	idhandler "idcheck/internal/idnumber/handler"
	idmetrics "idcheck/internal/idnumber/metrics"
	"idcheck/internal/idnumber/service"
	"idcheck/internal/platform/config"
	"idcheck/internal/platform/httpserver"
	"idcheck/internal/platform/logger"
	"idcheck/internal/platform/metrics"
	httptransport "idcheck/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Validation logic lives in internal/idnumber.
func main() {
	cfg := config.FromEnv()
	log, flush, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer flush()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc := service.New(idnumber.Default,
		service.WithLogger(log),
		service.WithMetrics(idmetrics.New(reg)),
		service.WithStrictDefault(cfg.StrictDefault),
		service.WithBatchLimit(cfg.BatchLimit),
		service.WithConcurrency(cfg.BatchConcurrency),
	)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:   log,
		Metrics:  metrics.New(reg),
		Gatherer: reg,
		Handlers: []httptransport.Registrar{
			idhandler.New(svc, log),
			choicehandler.New(choices.Default(), log),
		},
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting idcheck",
		"addr", cfg.Addr,
		"types", len(svc.Types()),
		"strict_default", cfg.StrictDefault,
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	log.Info("idcheck stopped")
}
