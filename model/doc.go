// Package model provides the intermediate representation (IR) for extracted
// document outlines.
//
// This package defines the user-facing data structures that both extraction
// strategies produce, making them the primary API for consuming results.
//
// # Outline Structure
//
// The [Outline] type is the final result: a document title plus an ordered
// list of [Heading] entries. Each heading carries a [Level] (H1, H2 or H3),
// its text, and the 1-based page it was found on. An outline always
// serializes its heading list as a JSON array, never null.
//
// # Layout Inputs
//
// The layout strategy works over [Span] values: runs of page text with
// uniform font name, size and weight, positioned by a [BBox]. Spans that
// pass candidate filtering become [Candidate] values for classification.
//
// # Geometry
//
// [BBox] and [Point] are minimal geometric primitives in PDF coordinate
// space (origin bottom-left, sizes in points).
package model
