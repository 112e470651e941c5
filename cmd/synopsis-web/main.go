// Command synopsis-web serves the upload UI for interactive outline
// extraction.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/skagseth/synopsis/config"
	"github.com/skagseth/synopsis/history"
	"github.com/skagseth/synopsis/web"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var (
		configPath  string
		addr        string
		historyPath string
		maxUploadMB int64
		verbose     bool
	)
	flag.StringVar(&configPath, "config", "synopsis.yaml", "Path to the YAML config file")
	flag.StringVar(&addr, "addr", "", "Listen address, e.g. :8080")
	flag.StringVar(&historyPath, "history", "", "Path to the sqlite run-history database")
	flag.Int64Var(&maxUploadMB, "max-upload-mb", 0, "Upload size limit in MiB")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Error().Err(err).Msg("load config")
		os.Exit(1)
	}
	cfg = config.FromEnv(cfg)
	if addr != "" {
		cfg.Web.Addr = addr
	}
	if historyPath != "" {
		cfg.History.Path = historyPath
	}
	if maxUploadMB > 0 {
		cfg.Web.MaxUploadMB = maxUploadMB
	}
	if verbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var store *history.Store
	if cfg.History.Path != "" {
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			log.Error().Err(err).Msg("open history")
			os.Exit(1)
		}
		defer store.Close()
	}

	srv := web.NewServer(web.Options{
		Log:            log.Logger,
		History:        store,
		MaxUploadBytes: cfg.Web.MaxUploadMB << 20,
	})

	httpServer := &http.Server{
		Addr:              cfg.Web.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("addr", cfg.Web.Addr).Msg("server starting")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server error")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
