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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"cadastro/internal/form"
	"cadastro/internal/form/metrics"
	"cadastro/internal/form/page"
	"cadastro/internal/platform/config"
	"cadastro/internal/platform/logger"
	"cadastro/internal/platform/tracer"
	"cadastro/internal/postal/viacep"
)

// main wires the registration form to an in-memory page and drives it from stdin, standing
// in for the browser. Pending postal lookups are drained before exit.
func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	// stdout belongs to the console.
	log := logger.NewWithWriter(os.Stderr, logger.ParseLevel(cfg.LogLevel))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	out := newConsole(os.Stdout)
	p := page.NewRegistrationForm()

	opts := []form.Option{
		form.WithTracer(tracer.NewOTel()),
		form.WithMetrics(metrics.New(reg)),
		form.WithResultHook(out.printResult),
	}
	if cfg.LookupOnKeystroke {
		opts = append(opts, form.WithLookupOnKeystroke())
	}

	f, err := form.Init(form.Collaborators{
		Fields: p,
		Events: p,
		Lookup: viacep.New(cfg.PostalLookupBaseURL, viacep.WithTimeout(cfg.PostalLookupTimeout)),
		Logger: log,
	}, opts...)
	if err != nil {
		log.Error("form init failed", "error", err)
		os.Exit(1)
	}

	log.Info("form ready",
		"postal_lookup", cfg.PostalLookupBaseURL,
		"lookup_on_keystroke", cfg.LookupOnKeystroke,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	loopCtx, quit := context.WithCancel(gctx)

	g.Go(func() error {
		defer quit()
		return runCommands(loopCtx, os.Stdin, out, p, f)
	})

	if cfg.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			log.Info("serving metrics", "addr", cfg.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-loopCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("formsim stopped", "error", err)
	}
	stop()

	log.Info("waiting for pending lookups", "grace", drainGrace)
	if !drainLookups(f.Wait, drainGrace, interrupts()) {
		log.Warn("exiting with postal lookups still pending")
	}
}

// drainGrace bounds the wait for lookups at exit; lookups themselves have no timeout.
const drainGrace = 10 * time.Second

// interrupts delivers the next SIGINT or SIGTERM.
func interrupts() <-chan os.Signal {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	return sig
}

// drainLookups runs wait until it returns, grace elapses or a signal arrives. It reports
// whether wait finished.
func drainLookups(wait func(), grace time.Duration, sig <-chan os.Signal) bool {
	done := make(chan struct{})
	go func() {
		wait()
		close(done)
	}()

	timer := time.NewTimer(grace)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	case <-sig:
		return false
	}
}
