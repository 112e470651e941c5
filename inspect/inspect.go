// Package inspect reports document facts (page count, dimensions,
// encryption, embedded images) without running extraction. The web UI
// shows them as file details; the batch driver and CLI use them to
// explain documents they cannot process.
package inspect

import (
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Info describes a PDF document at a glance.
type Info struct {
	PageCount  int
	PageWidth  float64 // first page, PDF points
	PageHeight float64
	Encrypted  bool
	HasImages  bool
	FileSize   int64 // bytes; zero when inspected from a stream
	Version    string
}

// File inspects the PDF at path.
func File(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return Info{}, err
	}

	info, err := Reader(f)
	if err != nil {
		return Info{}, err
	}
	info.FileSize = fi.Size()
	return info, nil
}

// Reader inspects a PDF from an in-memory or already-open stream.
// FileSize is left zero; callers that know the size fill it in.
func Reader(rs io.ReadSeeker) (Info, error) {
	ctx, err := api.ReadValidateAndOptimize(rs, model.NewDefaultConfiguration())
	if err != nil {
		return Info{}, fmt.Errorf("pdfcpu read: %w", err)
	}

	info := Info{
		PageCount: ctx.PageCount,
		Encrypted: ctx.Encrypt != nil,
		HasImages: hasImageStreams(ctx),
		Version:   ctx.VersionString(),
	}

	// First-page dimensions stand in for the whole document; mixed page
	// sizes are rare enough not to enumerate here.
	if dims, err := ctx.PageDims(); err == nil && len(dims) > 0 {
		info.PageWidth = dims[0].Width
		info.PageHeight = dims[0].Height
	}

	return info, nil
}

// hasImageStreams checks whether the document carries image XObjects.
func hasImageStreams(ctx *model.Context) bool {
	if ctx.Optimize != nil {
		for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
			if len(pdfcpu.ImageObjNrs(ctx, pageNr)) > 0 {
				return true
			}
		}
	}
	// Fallback: scan the xref for image subtype stream objects.
	for _, entry := range ctx.Table {
		if entry == nil || entry.Free || entry.Compressed {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		if subtype, found := sd.Find("Subtype"); found {
			if name, isName := subtype.(types.Name); isName && name == "Image" {
				return true
			}
		}
	}
	return false
}
