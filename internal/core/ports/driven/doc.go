// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - KeyValueStore: Persists the library snapshot (memory, file, SQLite, bbolt)
//   - Extractor: Turns one kind of RawFile into plain text
//   - ExtractorRegistry: Selects the appropriate extractor
//   - ArchiveExpander: Expands archives into their entries
//   - PostProcessor: Cleans and tags extracted documents
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - OCREngine: Optical character recognition (Tesseract). Without it, images
//     and scanned PDFs produce empty documents.
//   - PageRasterizer: Renders PDF pages to images (MuPDF). Without it, the
//     PDF OCR fallback is skipped.
//   - SpeechEngine: Platform text-to-speech. Without it, speech is a no-op.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
