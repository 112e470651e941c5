// Package web serves a small upload UI for interactive outline
// extraction, plus a JSON API over the run history.
package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/skagseth/synopsis"
	"github.com/skagseth/synopsis/export"
	"github.com/skagseth/synopsis/format"
	"github.com/skagseth/synopsis/history"
	"github.com/skagseth/synopsis/inspect"
	"github.com/skagseth/synopsis/model"
)

//go:embed templates
var templatesFS embed.FS

// DefaultMaxUploadBytes caps uploaded documents at 64 MiB.
const DefaultMaxUploadBytes = 64 << 20

// Options configures a Server.
type Options struct {
	// Log receives request and extraction events. The zero Logger
	// discards them.
	Log zerolog.Logger

	// History records uploads and backs GET /api/history when non-nil.
	History *history.Store

	// MaxUploadBytes caps the uploaded document size. Zero or negative
	// means DefaultMaxUploadBytes.
	MaxUploadBytes int64
}

// Server is the HTTP server for the upload UI.
type Server struct {
	router    chi.Router
	log       zerolog.Logger
	history   *history.Store
	maxUpload int64
	tmpl      *template.Template
}

// NewServer creates and configures the HTTP server.
func NewServer(opts Options) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	s := &Server{
		log:       opts.Log,
		history:   opts.History,
		maxUpload: opts.MaxUploadBytes,
		tmpl:      template.Must(template.ParseFS(templatesFS, "templates/*.html")),
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))

	r.Get("/", s.handleIndex)
	r.Post("/extract", s.handleExtract)
	r.Get("/healthz", s.handleHealth)
	r.Get("/api/history", s.handleHistory)

	s.router = r
}

// requestLogger logs one line per request.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(sw, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", sw.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

type indexData struct {
	Runs []history.Run
}

type resultData struct {
	Filename     string
	Method       string
	Duration     time.Duration
	HasInfo      bool
	Info         inspect.Info
	Warnings     []synopsis.Warning
	TOC          template.HTML
	JSON         string
	DownloadName string
	DownloadURL  template.URL
	HasStats     bool
	Stats        history.Stats
}

type errorData struct {
	Status  int
	Message string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var runs []history.Run
	if s.history != nil {
		var err error
		runs, err = s.history.Recent(r.Context(), 10)
		if err != nil {
			s.log.Warn().Err(err).Msg("load recent runs")
		}
	}
	s.render(w, http.StatusOK, "index.html", indexData{Runs: runs})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	// Limit total request size, with headroom for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload+1<<20)

	wantJSON := false
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.fail(w, wantJSON, http.StatusRequestEntityTooLarge,
				fmt.Errorf("upload exceeds the %d byte limit", s.maxUpload))
			return
		}
		s.fail(w, wantJSON, http.StatusBadRequest, fmt.Errorf("invalid multipart form: %w", err))
		return
	}
	defer r.MultipartForm.RemoveAll()
	wantJSON = r.FormValue("format") == "json"

	method, err := synopsis.ParseMethod(r.FormValue("method"))
	if err != nil {
		s.fail(w, wantJSON, http.StatusBadRequest, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.fail(w, wantJSON, http.StatusBadRequest, fmt.Errorf("file is required: %w", err))
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		s.fail(w, wantJSON, http.StatusBadRequest,
			fmt.Errorf("unsupported file type %q, want .pdf", filepath.Ext(filename)))
		return
	}

	// Extensions are not trusted: sniff the content so a mislabeled
	// upload gets a useful rejection instead of a parser error.
	kind, err := format.Detect(file, header.Size)
	if err != nil {
		s.fail(w, wantJSON, http.StatusBadRequest, fmt.Errorf("read upload: %w", err))
		return
	}
	switch kind {
	case format.PDF:
	case format.Unknown:
		s.fail(w, wantJSON, http.StatusBadRequest, fmt.Errorf("%s is not a PDF", filename))
		return
	default:
		s.fail(w, wantJSON, http.StatusBadRequest,
			fmt.Errorf("%s is not a PDF (detected %s)", filename, kind))
		return
	}

	// The extraction pipelines want a file on disk; MuPDF in
	// particular opens by path.
	tmp, err := os.CreateTemp("", "synopsis-upload-*.pdf")
	if err != nil {
		s.fail(w, wantJSON, http.StatusInternalServerError, fmt.Errorf("create temp file: %w", err))
		return
	}
	defer os.Remove(tmp.Name())

	size, err := io.Copy(tmp, io.LimitReader(file, s.maxUpload+1))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		s.fail(w, wantJSON, http.StatusInternalServerError, fmt.Errorf("store upload: %w", err))
		return
	}
	if size > s.maxUpload {
		s.fail(w, wantJSON, http.StatusRequestEntityTooLarge,
			fmt.Errorf("file exceeds the %d byte upload limit", s.maxUpload))
		return
	}

	info, infoErr := inspect.File(tmp.Name())
	if infoErr != nil {
		s.log.Warn().Err(infoErr).Str("file", filename).Msg("preflight inspection failed")
	}

	start := time.Now()
	ext := synopsis.Open(tmp.Name()).
		WithContext(r.Context()).
		WithMethod(method)
	if lang := r.FormValue("lang"); lang != "" {
		ext = ext.WithOCRLanguage(lang)
	}
	outline, warnings, err := ext.Outline()
	duration := time.Since(start)

	s.record(r.Context(), filename, outline, method, err, duration)
	if err != nil {
		s.log.Error().Err(err).Str("file", filename).Msg("extraction failed")
		s.fail(w, wantJSON, http.StatusUnprocessableEntity, fmt.Errorf("extraction failed: %w", err))
		return
	}
	s.log.Info().
		Str("file", filename).
		Str("method", method.String()).
		Int64("bytes", size).
		Int("headings", outline.Len()).
		Dur("duration", duration).
		Msg("outline extracted")

	if wantJSON {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", export.JSONFilename(filename)))
		if err := export.WriteJSON(w, outline); err != nil {
			s.log.Error().Err(err).Msg("write json response")
		}
		return
	}

	toc, err := export.HTML(outline)
	if err != nil {
		s.fail(w, wantJSON, http.StatusInternalServerError, fmt.Errorf("render outline: %w", err))
		return
	}
	var jsonBuf bytes.Buffer
	if err := export.WriteJSON(&jsonBuf, outline); err != nil {
		s.fail(w, wantJSON, http.StatusInternalServerError, fmt.Errorf("render outline: %w", err))
		return
	}

	data := resultData{
		Filename:     filename,
		Method:       method.String(),
		Duration:     duration.Round(time.Millisecond),
		HasInfo:      infoErr == nil,
		Info:         info,
		Warnings:     warnings,
		TOC:          toc,
		JSON:         jsonBuf.String(),
		DownloadName: export.JSONFilename(filename),
		// A base64 data URI keeps the download bytes identical to the
		// serialized outline.
		DownloadURL: template.URL("data:application/json;base64," +
			base64.StdEncoding.EncodeToString(jsonBuf.Bytes())),
	}
	if s.history != nil {
		if stats, err := s.history.Stats(r.Context()); err == nil {
			data.HasStats = true
			data.Stats = stats
		}
	}
	s.render(w, http.StatusOK, "result.html", data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "history not configured"})
		return
	}

	runs, err := s.history.Recent(r.Context(), queryInt(r, "limit", 20))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	stats, err := s.history.Stats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	items := make([]map[string]any, 0, len(runs))
	for _, run := range runs {
		item := map[string]any{
			"id":          run.ID,
			"filename":    run.Filename,
			"title":       run.Title,
			"headings":    run.Headings,
			"method":      run.Method,
			"duration_ms": run.Duration.Milliseconds(),
			"created_at":  run.Created.UTC().Format(time.RFC3339),
		}
		if run.Error != "" {
			item["error"] = run.Error
		}
		items = append(items, item)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total":  stats.Total,
		"failed": stats.Failed,
		"runs":   items,
	})
}

// record stores the upload outcome when a history store is configured.
func (s *Server) record(ctx context.Context, filename string, o model.Outline, method synopsis.Method, runErr error, d time.Duration) {
	if s.history == nil {
		return
	}
	run := history.Run{
		Filename: filename,
		Title:    o.Title,
		Headings: o.Len(),
		Method:   method.String(),
		Duration: d,
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if err := s.history.Record(ctx, run); err != nil {
		s.log.Warn().Err(err).Str("file", filename).Msg("history record failed")
	}
}

// render executes a template into a buffer first so a rendering error
// can still produce a clean 500.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		s.log.Error().Err(err).Str("template", name).Msg("render failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// fail reports an error as JSON or as the error page, matching the
// response format the client asked for.
func (s *Server) fail(w http.ResponseWriter, wantJSON bool, status int, err error) {
	if wantJSON {
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	s.render(w, status, "error.html", errorData{Status: status, Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func queryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// sanitizeFilename strips path components from an uploaded filename.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed.pdf"
	}
	return name
}
