package reader

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/skagseth/synopsis/model"
)

// US Letter, used when a page carries no usable MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// forceBoldFlag is bit 19 of the font descriptor Flags entry.
const forceBoldFlag = 1 << 18

// Spacing thresholds relative to font size: a gap wider than spaceGapRatio
// becomes a space, one wider than breakGapRatio starts a new span.
const (
	spaceGapRatio = 0.25
	breakGapRatio = 1.5
)

// Reader provides span-level access to a PDF's text layout.
type Reader struct {
	file *os.File // set when the Reader owns the file handle
	pdf  *pdf.Reader
}

// Page holds one page's dimensions (in points) and its text spans.
type Page struct {
	Number int // 1-based
	Width  float64
	Height float64
	Spans  []model.Span
}

// Open opens a PDF file and returns a Reader.
func Open(filename string) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	reader, err := NewReader(file, info.Size())
	if err != nil {
		file.Close()
		return nil, err
	}
	reader.file = file

	return reader, nil
}

// NewReader creates a Reader over in-memory or already-open PDF data.
func NewReader(ra io.ReaderAt, size int64) (r *Reader, err error) {
	// The underlying parser panics on malformed files; surface that as an
	// ordinary error so callers can fall back to other strategies.
	defer catch(&err, "parse pdf")

	p, err := pdf.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}
	return &Reader{pdf: p}, nil
}

// Close closes the underlying file when the Reader owns one.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// PageCount returns the number of pages in the document.
func (r *Reader) PageCount() (n int) {
	defer func() {
		if recover() != nil {
			n = 0
		}
	}()
	return r.pdf.NumPage()
}

// Page extracts the spans of the given 1-based page. Adjacent text cells
// sharing a font, size and baseline merge into single spans so heading
// lines arrive whole.
func (r *Reader) Page(number int) (page *Page, err error) {
	defer catch(&err, fmt.Sprintf("page %d", number))

	if number < 1 || number > r.pdf.NumPage() {
		return nil, fmt.Errorf("page %d out of range (document has %d)", number, r.pdf.NumPage())
	}

	p := r.pdf.Page(number)
	if p.V.IsNull() {
		return nil, fmt.Errorf("page %d: missing page object", number)
	}

	width, height := pageSize(p)
	spans := buildSpans(p.Content().Text, boldDescriptorFonts(p), number)

	return &Page{Number: number, Width: width, Height: height, Spans: spans}, nil
}

// catch is deferred around parser calls to convert panics into errors.
func catch(err *error, what string) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s: malformed pdf: %v", what, r)
	}
}

// pageSize reads the page MediaBox, falling back to US Letter when the
// entry is absent or degenerate.
func pageSize(p pdf.Page) (width, height float64) {
	width, height = defaultPageWidth, defaultPageHeight

	box := inherited(p.V, "MediaBox")
	if box.Kind() != pdf.Array || box.Len() != 4 {
		return width, height
	}

	coords := make([]float64, 4)
	for i := range coords {
		v := box.Index(i)
		switch v.Kind() {
		case pdf.Integer:
			coords[i] = float64(v.Int64())
		case pdf.Real:
			coords[i] = v.Float64()
		default:
			return width, height
		}
	}

	w := coords[2] - coords[0]
	h := coords[3] - coords[1]
	if w <= 0 || h <= 0 {
		return width, height
	}
	return w, h
}

// inherited resolves a page attribute, walking Parent links the way the
// page tree defines inheritance. The walk is capped to guard against
// parent cycles in malformed files.
func inherited(v pdf.Value, key string) pdf.Value {
	for depth := 0; v.Kind() == pdf.Dict && depth < 32; depth++ {
		if r := v.Key(key); !r.IsNull() {
			return r
		}
		v = v.Key("Parent")
	}
	return pdf.Value{}
}

// boldDescriptorFonts collects base font names whose descriptor sets the
// ForceBold flag. Catches bold faces whose names carry no weight hint.
func boldDescriptorFonts(p pdf.Page) map[string]bool {
	bold := make(map[string]bool)

	for _, name := range p.Fonts() {
		font := p.Font(name)
		base := font.BaseFont()
		if base == "" {
			continue
		}
		flags := font.V.Key("FontDescriptor").Key("Flags")
		if flags.Kind() == pdf.Integer && flags.Int64()&forceBoldFlag != 0 {
			bold[stripSubsetPrefix(base)] = true
		}
	}
	return bold
}

// stripSubsetPrefix removes the "ABCDEF+" subset tag so names match the
// font names reported on text cells.
func stripSubsetPrefix(name string) string {
	if i := strings.Index(name, "+"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// spanBuilder accumulates adjacent text cells that share a style and
// baseline into a single span.
type spanBuilder struct {
	text strings.Builder
	font string
	size float64
	bold bool
	page int
	box  model.BBox
	endX float64
}

func startSpan(cell pdf.Text, boldFonts map[string]bool, pageNum int) *spanBuilder {
	b := &spanBuilder{
		font: cell.Font,
		size: cell.FontSize,
		bold: model.BoldFontName(cell.Font) || boldFonts[stripSubsetPrefix(cell.Font)],
		page: pageNum,
		box:  cellBox(cell),
		endX: cell.X + cell.W,
	}
	b.text.WriteString(cell.S)
	return b
}

// accepts reports whether the cell continues this span: same font and
// size, same baseline, and no jump backwards or far ahead on the line.
func (b *spanBuilder) accepts(cell pdf.Text) bool {
	if cell.Font != b.font || cell.FontSize != b.size {
		return false
	}
	baselineTol := 0.2 * b.size
	if baselineTol < 1 {
		baselineTol = 1
	}
	dy := cell.Y - b.box.Bottom()
	if dy < -baselineTol || dy > baselineTol {
		return false
	}
	gap := cell.X - b.endX
	return gap > -2 && gap <= breakGapRatio*b.size
}

func (b *spanBuilder) add(cell pdf.Text) {
	if gap := cell.X - b.endX; gap > spaceGapRatio*b.size {
		b.text.WriteByte(' ')
	}
	b.text.WriteString(cell.S)
	b.box = b.box.Union(cellBox(cell))
	b.endX = cell.X + cell.W
}

func (b *spanBuilder) span() model.Span {
	return model.Span{
		Text:     strings.TrimSpace(b.text.String()),
		FontName: b.font,
		FontSize: b.size,
		Bold:     b.bold,
		Page:     b.page,
		BBox:     b.box,
	}
}

// cellBox approximates a text cell's box from its baseline origin, advance
// width and font size.
func cellBox(cell pdf.Text) model.BBox {
	return model.NewBBox(cell.X, cell.Y, cell.W, cell.FontSize)
}

// buildSpans merges a page's raw text cells into style-uniform spans,
// dropping whitespace-only runs.
func buildSpans(cells []pdf.Text, boldFonts map[string]bool, pageNum int) []model.Span {
	var spans []model.Span
	var cur *spanBuilder

	flush := func() {
		if cur == nil {
			return
		}
		if s := cur.span(); s.Text != "" {
			spans = append(spans, s)
		}
		cur = nil
	}

	for _, cell := range cells {
		if cell.S == "" {
			continue
		}
		if cur != nil && cur.accepts(cell) {
			cur.add(cell)
			continue
		}
		flush()
		cur = startSpan(cell, boldFonts, pageNum)
	}
	flush()

	return spans
}
