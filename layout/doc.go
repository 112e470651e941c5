// Package layout infers a document outline from font metrics.
//
// The strategy assumes digitally authored PDFs encode their structure in
// styling: titles are large, bold and centered on the first page, and
// headings stand out from body text by size or weight. Extraction runs in
// three stages:
//
//  1. [ExtractTitle] picks the first page's largest bold centered span.
//  2. [FilterCandidates] keeps spans big or styled enough to be headings.
//  3. [Classify] maps each candidate's font size onto H1/H2/H3 by where
//     it falls in the observed size range.
//
// The convenience entry point [Extract] runs all three over an open
// [reader.Reader] and orders the result by page, then by heading level.
// Documents whose text layer is missing or unparseable should go through
// the scan package instead.
package layout
