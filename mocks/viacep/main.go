package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"cadastro/internal/platform/config"
	"cadastro/internal/platform/logger"
	"cadastro/internal/postal/viacep/fake"
)

// main serves the fake ViaCEP service with the sample addresses. Point
// POSTAL_LOOKUP_BASE_URL at it to run the form without the public service.
func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New(logger.ParseLevel(cfg.LogLevel))

	svc := fake.New(log)
	for _, a := range fake.SampleAddresses() {
		svc.Add(a)
	}

	srv := &http.Server{
		Addr:              cfg.FakeViaCEPAddr,
		Handler:           svc.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("fake viacep listening", "addr", cfg.FakeViaCEPAddr, "records", len(fake.SampleAddresses()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down fake viacep")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("fake viacep stopped", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
