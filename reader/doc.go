// Package reader provides span-level access to PDF text for layout
// analysis.
//
// It wraps a low-level PDF parser and normalizes its per-character text
// cells into [model.Span] values: maximal runs with uniform font name,
// size and weight, positioned on the page. Spans are the input unit for
// the layout extraction strategy.
//
// # Opening PDF Files
//
// Use [Open] to read from a file on disk:
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
// Or [NewReader] over any io.ReaderAt, such as an uploaded file held in
// memory.
//
// # Page Access
//
// Pages are addressed by 1-based number:
//
//	page, err := r.Page(1)
//
// Each [Page] reports its MediaBox dimensions in points alongside its
// spans, so centering tests can use the true page width rather than an
// assumed one.
//
// # Bold Detection
//
// A span is marked bold when its font name contains "bold" in any case,
// or when the font's descriptor sets the ForceBold flag. Subset prefixes
// ("ABCDEF+") are stripped before matching descriptor names.
//
// # Malformed Files
//
// The underlying parser panics on some malformed input. The Reader
// converts those panics into ordinary errors so callers can fall back to
// another extraction strategy.
package reader
