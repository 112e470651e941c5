package synopsis

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/skagseth/synopsis/layout"
	"github.com/skagseth/synopsis/model"
	"github.com/skagseth/synopsis/ocr"
	"github.com/skagseth/synopsis/reader"
	"github.com/skagseth/synopsis/render"
	"github.com/skagseth/synopsis/scan"
)

// Extractor provides a fluent interface for extracting outlines from
// PDF files. Each configuration method returns a new Extractor
// instance, making it safe for concurrent use and allowing method
// chaining.
type Extractor struct {
	// Source
	filename   string
	source     io.ReaderAt
	sourceSize int64

	// Layout reader lifecycle
	reader       *reader.Reader
	ownsReader   bool // true if we opened the reader and should close it
	readerOpened bool // true if reader has been opened

	// Context for the terminal operation; nil means Background.
	ctx context.Context

	// Configuration
	options extractOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a copy of the Extractor. This ensures immutability:
// each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:     e.filename,
		source:       e.source,
		sourceSize:   e.sourceSize,
		reader:       e.reader,
		ownsReader:   e.ownsReader,
		readerOpened: e.readerOpened,
		ctx:          e.ctx,
		options:      e.options,
		err:          e.err,
		warnings:     append([]Warning(nil), e.warnings...),
	}
}

// ensureReader opens the layout reader if not already open.
func (e *Extractor) ensureReader() error {
	if e.readerOpened {
		return nil
	}

	switch {
	case e.filename != "":
		r, err := reader.Open(e.filename)
		if err != nil {
			return err
		}
		e.reader = r
	case e.source != nil:
		r, err := reader.NewReader(e.source, e.sourceSize)
		if err != nil {
			return err
		}
		e.reader = r
	default:
		return fmt.Errorf("no input specified")
	}

	e.ownsReader = true
	e.readerOpened = true
	return nil
}

// Close releases resources associated with the Extractor. It is safe
// to call Close multiple times; a later terminal operation reopens the
// input.
func (e *Extractor) Close() error {
	if e.ownsReader && e.reader != nil {
		err := e.reader.Close()
		e.reader = nil
		e.ownsReader = false
		e.readerOpened = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// WithMethod selects the extraction pipeline. The default is
// MethodAuto.
//
// Example:
//
//	outline, _, err := synopsis.Open("scan.pdf").WithMethod(synopsis.MethodOCR).Outline()
func (e *Extractor) WithMethod(m Method) *Extractor {
	newExt := e.clone()
	newExt.options.method = m
	return newExt
}

// WithOCRLanguage sets the Tesseract language packs for the OCR
// pipeline. Multiple packs join with "+". The default is "eng".
//
// Example:
//
//	outline, _, err := synopsis.Open("bericht.pdf").WithOCRLanguage("deu").Outline()
func (e *Extractor) WithOCRLanguage(lang string) *Extractor {
	newExt := e.clone()
	newExt.options.ocrLanguage = lang
	return newExt
}

// WithRenderScale sets the rasterization scale for the OCR pipeline.
// Pages render at 72*scale DPI; the default scale is 2.
func (e *Extractor) WithRenderScale(scale float64) *Extractor {
	newExt := e.clone()
	if scale <= 0 {
		newExt.err = fmt.Errorf("render scale must be positive, got %g", scale)
		return newExt
	}
	newExt.options.renderScale = scale
	return newExt
}

// WithPageTimeout bounds the render+recognize step for each page of
// the OCR pipeline. A page that exceeds the bound is skipped with a
// warning. Zero, the default, means no bound.
func (e *Extractor) WithPageTimeout(d time.Duration) *Extractor {
	newExt := e.clone()
	if d < 0 {
		newExt.err = fmt.Errorf("page timeout must not be negative, got %v", d)
		return newExt
	}
	newExt.options.pageTimeout = d
	return newExt
}

// WithContext sets the context observed by the OCR pipeline between
// pages. The layout pipeline runs too quickly to be worth
// interrupting.
func (e *Extractor) WithContext(ctx context.Context) *Extractor {
	newExt := e.clone()
	newExt.ctx = ctx
	return newExt
}

// WithRenderer replaces the MuPDF page renderer used by the OCR
// pipeline. The caller keeps ownership and closes the renderer itself.
//
// Example:
//
//	doc, err := render.Open("scan.pdf", 2)
//	if err != nil {
//	    // handle error
//	}
//	defer doc.Close()
//	outline, _, err := synopsis.Open("scan.pdf").WithRenderer(doc).Outline()
func (e *Extractor) WithRenderer(r scan.PageRenderer) *Extractor {
	newExt := e.clone()
	newExt.options.renderer = r
	return newExt
}

// WithRecognizer replaces the Tesseract recognizer used by the OCR
// pipeline. The caller keeps ownership and closes the recognizer
// itself.
func (e *Extractor) WithRecognizer(rec scan.Recognizer) *Extractor {
	newExt := e.clone()
	newExt.options.recognizer = rec
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Outline extracts the document outline. It returns the outline, any
// warnings describing non-fatal problems, and an error if extraction
// failed entirely.
//
// Under MethodAuto a layout failure is not fatal: the OCR pipeline
// runs from scratch and the layout error comes back as a layout-failed
// warning. When both pipelines fail, the OCR error is returned and the
// layout failure stays visible in the warnings.
//
// Example:
//
//	outline, warnings, err := synopsis.Open("document.pdf").Outline()
//	if len(warnings) > 0 {
//	    log.Println(synopsis.FormatWarnings(warnings))
//	}
func (e *Extractor) Outline() (model.Outline, []Warning, error) {
	if e.err != nil {
		return model.Outline{}, nil, e.err
	}

	switch e.options.method {
	case MethodLayout:
		return e.layoutOutline()
	case MethodOCR:
		return e.scanOutline(nil)
	default:
		outline, warnings, err := e.layoutOutline()
		if err == nil {
			return outline, warnings, nil
		}
		// Partial layout results are discarded; OCR starts from
		// scratch and the layout failure rides along as a warning.
		fallback := Warning{Code: WarnLayoutFailed, Message: err.Error()}
		return e.scanOutline([]Warning{fallback})
	}
}

// PageCount reports the number of pages in the document. It opens the
// input if needed and closes it before returning.
//
// Example:
//
//	count, err := synopsis.Open("document.pdf").PageCount()
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureReader(); err != nil {
		return 0, err
	}
	defer e.Close()

	return e.reader.PageCount(), nil
}

// layoutOutline runs the layout pipeline.
func (e *Extractor) layoutOutline() (model.Outline, []Warning, error) {
	warnings := append([]Warning(nil), e.warnings...)

	if err := e.ensureReader(); err != nil {
		return model.Outline{}, warnings, err
	}
	defer e.Close()

	outline, err := layout.Extract(e.reader)
	if err != nil {
		return model.Outline{}, warnings, err
	}
	return outline, warnings, nil
}

// scanOutline runs the OCR pipeline. Extra warnings from the caller
// (the layout failure under MethodAuto) are carried into the result.
func (e *Extractor) scanOutline(extra []Warning) (model.Outline, []Warning, error) {
	warnings := append(append([]Warning(nil), e.warnings...), extra...)

	ctx := e.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	renderer := e.options.renderer
	if renderer == nil {
		if e.filename == "" {
			return model.Outline{}, warnings, ErrNeedsFile
		}
		doc, err := render.Open(e.filename, e.options.renderScale)
		if err != nil {
			return model.Outline{}, warnings, err
		}
		defer doc.Close()
		renderer = doc
	}

	recognizer := e.options.recognizer
	if recognizer == nil {
		client, err := ocr.New(ocr.Config{Language: e.options.ocrLanguage})
		if err != nil {
			return model.Outline{}, warnings, err
		}
		defer client.Close()
		recognizer = client
	}

	outline, pageErrs, err := scan.Extract(ctx, renderer, recognizer, scan.Options{
		PageTimeout: e.options.pageTimeout,
	})
	for _, pe := range pageErrs {
		warnings = append(warnings, Warning{Code: WarnPageSkipped, Message: pe.Err.Error(), Page: pe.Page})
	}
	if err != nil {
		return model.Outline{}, warnings, err
	}

	if outline.Len() == 0 {
		warnings = append(warnings, Warning{
			Code:    WarnOCREmpty,
			Message: fmt.Sprintf("%s recognized no headings", recognizer.Name()),
		})
	}
	return outline, warnings, nil
}
