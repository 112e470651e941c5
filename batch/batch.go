// Package batch extracts outlines for every PDF in a directory,
// writing one JSON file per document. A failing document never stops
// the rest of the batch.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/skagseth/synopsis"
	"github.com/skagseth/synopsis/export"
	"github.com/skagseth/synopsis/history"
	"github.com/skagseth/synopsis/inspect"
	"github.com/skagseth/synopsis/model"
)

// Runner drives outline extraction over a directory of PDFs.
type Runner struct {
	// In is the directory scanned for *.pdf files (case-insensitive).
	In string

	// Out receives one <stem>_outline.json per document. It is
	// created if absent.
	Out string

	// Method, OCRLanguage, RenderScale and PageTimeout configure each
	// extraction. Zero values use the extractor defaults.
	Method      synopsis.Method
	OCRLanguage string
	RenderScale float64
	PageTimeout time.Duration

	// Workers bounds the number of concurrent extractions. Values
	// below one run a single worker.
	Workers int

	// Log receives per-file outcomes. The zero Logger discards them.
	Log zerolog.Logger

	// History records each file outcome when non-nil.
	History *history.Store
}

// Summary reports the outcome of a batch run.
type Summary struct {
	Processed int // documents with an outline written
	Failed    int // documents that produced an error
}

// Run extracts an outline for every PDF in the input directory and
// writes the results to the output directory. It returns an error
// only for driver-level problems such as an unreadable input
// directory or a cancelled context; per-file failures are counted in
// the Summary and logged.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	files, err := r.listInputs()
	if err != nil {
		return Summary{}, err
	}
	if err := os.MkdirAll(r.Out, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create output dir: %w", err)
	}
	if len(files) == 0 {
		r.Log.Info().Str("dir", r.In).Msg("no PDF files found")
		return Summary{}, nil
	}

	workers := r.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	jobs := make(chan string)
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		summary Summary
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				ok := r.processFile(ctx, path)
				mu.Lock()
				if ok {
					summary.Processed++
				} else {
					summary.Failed++
				}
				mu.Unlock()
			}
		}()
	}

feed:
	for _, path := range files {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- path:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// errEncrypted is reported for password-protected documents, which the
// extraction pipelines cannot read.
var errEncrypted = errors.New("document is encrypted")

// processFile extracts one document and writes its outline. It
// reports whether the file succeeded.
func (r *Runner) processFile(ctx context.Context, path string) bool {
	start := time.Now()
	log := r.Log.With().Str("file", filepath.Base(path)).Logger()

	// Encrypted documents would only fail deep inside a parser, so
	// preflight them for a clear message. When inspection itself
	// errors, extraction proceeds and its failure is authoritative.
	if info, err := inspect.File(path); err == nil && info.Encrypted {
		log.Error().Err(errEncrypted).Msg("skipping document")
		r.record(ctx, path, model.Outline{}, errEncrypted, time.Since(start))
		return false
	}

	ext := synopsis.Open(path).
		WithContext(ctx).
		WithMethod(r.Method)
	if r.OCRLanguage != "" {
		ext = ext.WithOCRLanguage(r.OCRLanguage)
	}
	if r.RenderScale > 0 {
		ext = ext.WithRenderScale(r.RenderScale)
	}
	if r.PageTimeout > 0 {
		ext = ext.WithPageTimeout(r.PageTimeout)
	}

	outline, warnings, err := ext.Outline()
	duration := time.Since(start)
	if err != nil {
		log.Error().Err(err).Dur("duration", duration).Msg("extraction failed")
		r.record(ctx, path, outline, err, duration)
		return false
	}
	for _, w := range warnings {
		log.Warn().Str("code", w.Code).Int("page", w.Page).Msg(w.Message)
	}

	outPath := filepath.Join(r.Out, export.JSONFilename(path))
	if err := writeOutlineFile(outPath, outline); err != nil {
		log.Error().Err(err).Dur("duration", duration).Msg("write outline failed")
		r.record(ctx, path, outline, err, duration)
		return false
	}

	log.Info().
		Str("title", outline.Title).
		Int("headings", outline.Len()).
		Dur("duration", duration).
		Str("out", filepath.Base(outPath)).
		Msg("outline written")
	r.record(ctx, path, outline, nil, duration)
	return true
}

// record stores the file outcome in the history store when one is
// configured. Recording problems are logged, not propagated; the
// outline on disk is the product, history is bookkeeping.
func (r *Runner) record(ctx context.Context, path string, o model.Outline, runErr error, d time.Duration) {
	if r.History == nil {
		return
	}
	run := history.Run{
		Filename: filepath.Base(path),
		Title:    o.Title,
		Headings: o.Len(),
		Method:   r.Method.String(),
		Duration: d,
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if err := r.History.Record(ctx, run); err != nil {
		r.Log.Warn().Err(err).Str("file", run.Filename).Msg("history record failed")
	}
}

// listInputs returns the PDF files in the input directory in
// lexicographic order.
func (r *Runner) listInputs() ([]string, error) {
	entries, err := os.ReadDir(r.In)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			files = append(files, filepath.Join(r.In, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func writeOutlineFile(path string, o model.Outline) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteJSON(f, o); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
