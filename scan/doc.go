// Package scan extracts outlines from documents with no usable text
// layer, such as scanned books and image-only PDFs.
//
// The pipeline renders each page to an image through a [PageRenderer],
// hands it to a [Recognizer] for text recognition, and applies line
// heuristics to the result: [ExtractTitle] picks the first plausible
// page-one line, [LooksLikeHeading] filters recognized lines down to
// heading shapes (ALL CAPS, "3. Numbered", Title Case), and
// [ClassifyLine] maps each to a level.
//
// Both interfaces are satisfied by the render and ocr packages when the
// module is built with the ocr tag, but any implementation works, which
// keeps the pipeline testable without a rasterizer or a trained OCR
// model on the machine.
//
// Unlike layout extraction, a page that fails here is skipped rather
// than fatal. Scanned documents routinely mix clean and damaged pages,
// so [Extract] reports per-page failures alongside whatever it could
// recognize. Headings keep recognition encounter order, not the layout
// strategy's page-and-level order: with per-page recognition there is no
// reliable styling signal to re-rank by.
package scan
