// Package extractors provides the Extractor registry and, in sub-packages,
// implementations of the Extractor interface for each supported format.
// Each extractor knows how to pull plain text out of one media kind.
//
// Extractors are registered with the Registry at startup. Selection is by
// MIME type first, then by media kind, with the highest priority winning.
package extractors
