// Command synopsis extracts document outlines from PDFs. It processes
// a whole directory by default; -file switches to single-document mode
// and -inspect prints preflight info without extracting.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/skagseth/synopsis"
	"github.com/skagseth/synopsis/batch"
	"github.com/skagseth/synopsis/config"
	"github.com/skagseth/synopsis/export"
	"github.com/skagseth/synopsis/history"
	"github.com/skagseth/synopsis/inspect"
	"github.com/skagseth/synopsis/model"
)

const version = "1.0.0"

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var (
		configPath  string
		inDir       string
		outDir      string
		file        string
		outFile     string
		method      string
		lang        string
		scale       float64
		pageTimeout time.Duration
		workers     int
		historyPath string
		inspectOnly bool
		verbose     bool
		showVersion bool
	)
	flag.StringVar(&configPath, "config", "synopsis.yaml", "Path to the YAML config file")
	flag.StringVar(&inDir, "in", "", "Input directory for batch mode")
	flag.StringVar(&outDir, "out", "", "Output directory for batch mode")
	flag.StringVar(&file, "file", "", "Extract a single PDF instead of a directory")
	flag.StringVar(&outFile, "o", "", "Output path for single-file mode (default stdout)")
	flag.StringVar(&method, "method", "", "Extraction method: auto, layout or ocr")
	flag.StringVar(&lang, "lang", "", "OCR language, e.g. eng or eng+deu")
	flag.Float64Var(&scale, "scale", 0, "Render scale for the OCR pipeline")
	flag.DurationVar(&pageTimeout, "page-timeout", 0, "Per-page OCR timeout, e.g. 30s (0 disables)")
	flag.IntVar(&workers, "workers", 0, "Concurrent extractions in batch mode")
	flag.StringVar(&historyPath, "history", "", "Path to the sqlite run-history database")
	flag.BoolVar(&inspectOnly, "inspect", false, "Print preflight document info and exit (requires -file)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println("synopsis " + version)
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Error().Err(err).Msg("load config")
		os.Exit(1)
	}
	cfg = config.FromEnv(cfg)

	// Flags win over environment and file.
	if inDir != "" {
		cfg.Input = inDir
	}
	if outDir != "" {
		cfg.Output = outDir
	}
	if method != "" {
		cfg.Method = method
	}
	if lang != "" {
		cfg.OCR.Language = lang
	}
	if scale > 0 {
		cfg.OCR.Scale = scale
	}
	if pageTimeout > 0 {
		cfg.OCR.PageTimeout = pageTimeout
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if historyPath != "" {
		cfg.History.Path = historyPath
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
	m := synopsis.Must(synopsis.ParseMethod(cfg.Method))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case inspectOnly:
		if file == "" {
			log.Error().Msg("-inspect requires -file")
			os.Exit(1)
		}
		if err := runInspect(file); err != nil {
			log.Error().Err(err).Str("file", file).Msg("inspection failed")
			os.Exit(1)
		}
	case file != "":
		if err := runFile(ctx, cfg, m, file, outFile); err != nil {
			log.Error().Err(err).Str("file", file).Msg("extraction failed")
			os.Exit(1)
		}
	default:
		ok, err := runBatch(ctx, cfg, m)
		if err != nil {
			log.Error().Err(err).Msg("batch failed")
			os.Exit(1)
		}
		if !ok {
			os.Exit(1)
		}
	}
}

func runInspect(path string) error {
	info, err := inspect.File(path)
	if err != nil {
		return err
	}
	fmt.Printf("file:      %s\n", path)
	fmt.Printf("pages:     %d\n", info.PageCount)
	fmt.Printf("page size: %.0f x %.0f pt\n", info.PageWidth, info.PageHeight)
	fmt.Printf("version:   %s\n", info.Version)
	fmt.Printf("size:      %d bytes\n", info.FileSize)
	fmt.Printf("encrypted: %t\n", info.Encrypted)
	fmt.Printf("images:    %t\n", info.HasImages)
	return nil
}

func runFile(ctx context.Context, cfg config.Config, m synopsis.Method, path, outPath string) error {
	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	start := time.Now()
	ext := synopsis.Open(path).
		WithContext(ctx).
		WithMethod(m).
		WithOCRLanguage(cfg.OCR.Language).
		WithRenderScale(cfg.OCR.Scale)
	if cfg.OCR.PageTimeout > 0 {
		ext = ext.WithPageTimeout(cfg.OCR.PageTimeout)
	}
	outline, warnings, err := ext.Outline()
	duration := time.Since(start)

	record(ctx, store, path, outline, m, err, duration)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Warn().Str("code", w.Code).Int("page", w.Page).Msg(w.Message)
	}

	if outPath == "" {
		return export.WriteJSON(os.Stdout, outline)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := export.WriteJSON(f, outline); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info().
		Str("out", outPath).
		Str("title", outline.Title).
		Int("headings", outline.Len()).
		Dur("duration", duration).
		Msg("outline written")
	return nil
}

// runBatch reports ok=false when every file in the batch failed.
func runBatch(ctx context.Context, cfg config.Config, m synopsis.Method) (bool, error) {
	store, err := openHistory(cfg)
	if err != nil {
		return false, err
	}
	if store != nil {
		defer store.Close()
	}

	runner := &batch.Runner{
		In:          cfg.Input,
		Out:         cfg.Output,
		Method:      m,
		OCRLanguage: cfg.OCR.Language,
		RenderScale: cfg.OCR.Scale,
		PageTimeout: cfg.OCR.PageTimeout,
		Workers:     cfg.Workers,
		Log:         log.Logger,
		History:     store,
	}
	summary, err := runner.Run(ctx)
	if err != nil {
		return false, err
	}
	log.Info().
		Int("processed", summary.Processed).
		Int("failed", summary.Failed).
		Msg("batch complete")
	return summary.Failed == 0 || summary.Processed > 0, nil
}

func openHistory(cfg config.Config) (*history.Store, error) {
	if cfg.History.Path == "" {
		return nil, nil
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return store, nil
}

func record(ctx context.Context, store *history.Store, path string, o model.Outline, m synopsis.Method, runErr error, d time.Duration) {
	if store == nil {
		return
	}
	run := history.Run{
		Filename: filepath.Base(path),
		Title:    o.Title,
		Headings: o.Len(),
		Method:   m.String(),
		Duration: d,
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if err := store.Record(ctx, run); err != nil {
		log.Warn().Err(err).Msg("history record failed")
	}
}
