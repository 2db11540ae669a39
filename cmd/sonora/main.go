// Command sonora runs the realtime mixing engine and its non-realtime
// control surface in one process: a software audio clock drives the
// processor while echo serves track/plugin-instance operations over
// HTTP, the way the teacher's own cmd entrypoint wires engine and
// session together.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shaban/sonora/bootstrap"
	"github.com/shaban/sonora/controller"
	"github.com/shaban/sonora/httpapi"
	"github.com/shaban/sonora/internal/config"
	"github.com/shaban/sonora/internal/logging"
	"github.com/shaban/sonora/internal/metrics"
	"github.com/shaban/sonora/ioadapter"
)

func main() {
	v := viper.New()

	root := &cobra.Command{
		Use:   "sonora",
		Short: "Realtime audio mixing engine and control surface",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(config.Load(v))
		},
	}

	if err := config.RegisterFlags(root, v); err != nil {
		fmt.Fprintln(os.Stderr, "registering flags:", err)
		os.Exit(1)
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	base := logging.New(cfg.LogHuman, level)
	log := logging.Component(base, "main")

	factory, err := bootstrap.NewFactory(cfg.SampleRate)
	if err != nil {
		return fmt.Errorf("bootstrap factory: %w", err)
	}

	ctrl, proc := controller.New(factory)
	ctrl.SetBufferSize(cfg.BufferSize)

	if _, err := metrics.New(prometheus.DefaultRegisterer, ctrl); err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	backend := ioadapter.NewDummyBackend(cfg.BufferSize, cfg.SampleRate, time.Second/time.Duration(cfg.SampleRate/cfg.BufferSize))

	engineErr := make(chan error, 1)
	go func() {
		engineErr <- backend.RunProcessLoop(ctx, proc)
	}()

	e := httpapi.New(factory, ctrl, logging.Component(base, "httpapi"))
	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("starting http server")
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	engineDone := false
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("http server failed")
		}
		cancel()
	case err := <-engineErr:
		engineDone = true
		if err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("audio engine loop exited")
		}
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}

	if !engineDone {
		<-engineErr
	}
	return nil
}
