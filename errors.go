package synopsis

import "errors"

// ErrNeedsFile is returned when the OCR pipeline is requested on an
// Extractor built with FromReader and no renderer was injected.
// Rasterization opens its own file handle, so OCR needs a path on disk.
var ErrNeedsFile = errors.New("OCR extraction requires a file path; use Open instead of FromReader")
