// Package format identifies document types by content. File extensions lie,
// especially on uploads, so the sniffer reads magic bytes and lets callers
// report what a rejected file actually was.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
)

// Kind is a document type recognized by the sniffer.
type Kind int

const (
	// Unknown means the content matched no known signature.
	Unknown Kind = iota
	// PDF is a PDF document.
	PDF
	// Word is a Microsoft Word (.docx) document.
	Word
	// Excel is a Microsoft Excel (.xlsx) workbook.
	Excel
	// PowerPoint is a Microsoft PowerPoint (.pptx) presentation.
	PowerPoint
	// OpenDocument is an OpenDocument text (.odt) file.
	OpenDocument
	// HTML is an HTML page.
	HTML
	// Archive is a ZIP file that is not one of the document containers.
	Archive
)

// String returns a human-readable name suitable for error messages.
func (k Kind) String() string {
	switch k {
	case PDF:
		return "PDF"
	case Word:
		return "Word document"
	case Excel:
		return "Excel workbook"
	case PowerPoint:
		return "PowerPoint presentation"
	case OpenDocument:
		return "OpenDocument text"
	case HTML:
		return "HTML"
	case Archive:
		return "ZIP archive"
	default:
		return "unknown"
	}
}

var (
	pdfMagic = []byte("%PDF-")
	zipMagic = []byte("PK\x03\x04")
)

// headerWindow is how far into the file the PDF signature may sit. A
// well-formed file puts %PDF- at byte zero, but files with junk prepended
// are common enough that parsers accept a header in the first kilobyte.
const headerWindow = 1024

// Detect sniffs the content of r and reports what it looks like. It reads at
// most the first kilobyte, except for ZIP containers, which are opened to
// tell Office and OpenDocument files apart. An unreadable ZIP still reports
// Archive.
func Detect(r io.ReaderAt, size int64) (Kind, error) {
	head := make([]byte, headerWindow)
	n, err := r.ReadAt(head, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	head = head[:n]

	switch {
	case bytes.HasPrefix(head, pdfMagic):
		return PDF, nil
	case bytes.HasPrefix(head, zipMagic):
		return detectZip(r, size), nil
	case looksLikeHTML(head):
		return HTML, nil
	case bytes.Contains(head, pdfMagic):
		return PDF, nil
	}
	return Unknown, nil
}

// looksLikeHTML reports whether head starts like an HTML or XHTML page.
func looksLikeHTML(head []byte) bool {
	head = bytes.TrimLeft(head, " \t\r\n")
	if len(head) == 0 {
		return false
	}
	upper := strings.ToUpper(string(head))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") || strings.HasPrefix(upper, "<HTML") {
		return true
	}
	// XHTML served with an XML declaration.
	return strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML")
}

// detectZip tells the ZIP-based document containers apart. OpenDocument
// files carry a mimetype entry; Office Open XML containers are recognized
// by their top-level part directories.
func detectZip(r io.ReaderAt, size int64) Kind {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Archive
	}
	for _, f := range zr.File {
		if f.Name != "mimetype" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			continue
		}
		mt, _ := io.ReadAll(io.LimitReader(rc, 256))
		rc.Close()
		if bytes.Contains(mt, []byte("application/vnd.oasis.opendocument.text")) {
			return OpenDocument
		}
	}
	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "word/"):
			return Word
		case strings.HasPrefix(f.Name, "xl/"):
			return Excel
		case strings.HasPrefix(f.Name, "ppt/"):
			return PowerPoint
		}
	}
	return Archive
}
