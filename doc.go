// Package md2tg converts GitHub-flavored Markdown into Telegram MarkdownV2
// and splits the result into messages Telegram accepts.
//
// # Quick Start
//
// Convert and split with the package-level helpers:
//
//	text := md2tg.Convert("# Hello\n\n**World**")
//	chunks, err := md2tg.Split(text, 4096)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Every chunk is at most the given length and leaves no markup open, so it
// can be sent as one message with parse_mode MarkdownV2.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Preprocessing (input size guard, line endings, Unicode NFC)
//  2. Block constructs: fenced code, headings, display math, tables,
//     quotes, task list items, rules
//  3. Inline constructs: code, images, links, math, spoiler,
//     strikethrough, bold, italic
//  4. Escaping of every reserved character left in plain text
//  5. Splitting into balanced chunks (Converter.Render, Split)
//
// Malformed input never fails: unterminated markup is escaped as plain text
// and a chunk that cannot be proven balanced is degraded to escaped plain
// text.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := md2tg.NewConverter(
//	    md2tg.WithMaxLength(4000),
//	    md2tg.WithLengthUnit(md2tg.LengthUTF16),
//	    md2tg.WithStyle(md2tg.Style{H1Marker: "▶ "}),
//	)
//
// # Delivery
//
// Converter.Deliver sends the chunks of a document in order through any
// Transport, waiting on an optional Throttle between requests. A chunk the
// transport rejects with ErrParseRejected is re-sent as plain text.
//
// # Thread Safety
//
// A Converter is immutable after construction and safe for concurrent use.
// A Throttle may be shared by several converters.
package md2tg
