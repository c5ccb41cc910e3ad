package pipeline

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// TableExtractor parses pipe tables with goldmark's GFM table parser and
// returns their cells as plain text.
type TableExtractor struct {
	md goldmark.Markdown
}

// NewTableExtractor creates a TableExtractor.
func NewTableExtractor() *TableExtractor {
	return &TableExtractor{md: goldmark.New(goldmark.WithExtensions(extension.Table))}
}

// Rows returns the trimmed cell texts of the table in block, header row
// first. Inline markup is stripped and escaped pipes are honored.
// ok is false when goldmark does not recognize block as a table, for
// instance when the separator row has a different column count.
func (e *TableExtractor) Rows(block string) (rows [][]string, ok bool) {
	source := []byte(block)
	doc := e.md.Parser().Parse(text.NewReader(source))

	var table *extast.Table
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if t, isTable := n.(*extast.Table); isTable {
			if table != nil {
				return nil, false
			}
			table = t
			continue
		}
		return nil, false
	}
	if table == nil {
		return nil, false
	}

	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			if _, isCell := cell.(*extast.TableCell); isCell {
				cells = append(cells, strings.TrimSpace(inlineText(cell, source)))
			}
		}
		rows = append(rows, cells)
	}
	return rows, len(rows) >= 2
}

// inlineText concatenates the text content of the inline nodes below n.
func inlineText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.CodeSpan:
			for c := v.FirstChild(); c != nil; c = c.NextSibling() {
				if t, isText := c.(*ast.Text); isText {
					buf.Write(bytes.ReplaceAll(t.Segment.Value(source), []byte(`\|`), []byte("|")))
				}
			}
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			buf.Write(util.UnescapePunctuations(v.Segment.Value(source)))
			if v.SoftLineBreak() || v.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(v.Value)
		case *ast.AutoLink:
			buf.Write(v.Label(source))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			for i := 0; i < v.Segments.Len(); i++ {
				seg := v.Segments.At(i)
				buf.Write(seg.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
