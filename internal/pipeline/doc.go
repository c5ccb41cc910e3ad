// Package pipeline implements the Markdown-to-MarkdownV2 conversion pipeline.
//
// This package handles every stage between raw model output and
// transport-ready messages:
//   - Preprocessing (line endings, Unicode normalization, size guard)
//   - Span scanning over byte offsets for source and dialect markup
//   - Escaping of reserved characters outside recognized spans
//   - Transpiling GitHub-flavored constructs into Telegram MarkdownV2
//   - Balance checking of delimiter parity
//   - Splitting converted text into size-bounded, balanced chunks
//   - Plain-text rendering via Goldmark for markup-free fallback delivery
//
// Every stage is a pure function of its input. Values constructed here hold
// no mutable state after construction and are safe for concurrent use.
package pipeline
