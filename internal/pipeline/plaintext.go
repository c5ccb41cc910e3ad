package pipeline

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// PlainRenderer renders Markdown as text without any markup, for messages
// sent with no parse mode.
type PlainRenderer struct {
	md    goldmark.Markdown
	style Style
}

// NewPlainRenderer creates a PlainRenderer with GFM extensions.
func NewPlainRenderer(style Style) *PlainRenderer {
	return &PlainRenderer{
		md:    goldmark.New(goldmark.WithExtensions(extension.GFM)),
		style: style,
	}
}

// Render returns markdown as plain text. Blocks are separated by a blank
// line, list items get a bullet, links become "text (url)" and images their
// alt text.
func (r *PlainRenderer) Render(markdown string) string {
	source := []byte(markdown)
	doc := r.md.Parser().Parse(text.NewReader(source))
	return r.blocks(doc, source, "\n\n")
}

func (r *PlainRenderer) blocks(parent ast.Node, source []byte, sep string) string {
	var parts []string
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if s := r.block(n, source); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}

func (r *PlainRenderer) block(n ast.Node, source []byte) string {
	switch v := n.(type) {
	case *ast.Heading, *ast.Paragraph, *ast.TextBlock:
		return r.inline(n, source)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return strings.TrimSuffix(linesText(n, source), "\n")
	case *ast.HTMLBlock:
		return HTMLText(htmlBlockText(v, source))
	case *ast.ThematicBreak:
		return r.style.Rule
	case *ast.Blockquote:
		return indent(r.blocks(v, source, "\n"), "│ ")
	case *ast.List:
		return r.list(v, source)
	case *extast.Table:
		var rows []string
		for row := v.FirstChild(); row != nil; row = row.NextSibling() {
			var cells []string
			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				cells = append(cells, strings.TrimSpace(inlineText(cell, source)))
			}
			rows = append(rows, strings.Join(cells, " | "))
		}
		return strings.Join(rows, "\n")
	default:
		return r.blocks(n, source, "\n")
	}
}

func (r *PlainRenderer) list(l *ast.List, source []byte) string {
	var items []string
	num := l.Start
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if l.IsOrdered() {
			marker = strconv.Itoa(num) + ". "
			num++
		}
		if hasTaskCheckBox(item) {
			marker = ""
		}
		var parts []string
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			s := r.block(c, source)
			if _, nested := c.(*ast.List); nested {
				s = indent(s, "  ")
			}
			if s != "" {
				parts = append(parts, s)
			}
		}
		items = append(items, marker+strings.Join(parts, "\n"))
	}
	return strings.Join(items, "\n")
}

func (r *PlainRenderer) inline(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	afterGlyph := false
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *extast.TaskCheckBox:
			glyph := r.style.Unchecked
			if v.IsChecked {
				glyph = r.style.Checked
			}
			buf.WriteString(glyph)
			afterGlyph = true
		case *ast.Link:
			label := inlineText(v, source)
			buf.WriteString(label)
			if dest := string(v.Destination); dest != "" && dest != label {
				buf.WriteString(" (" + dest + ")")
			}
			return ast.WalkSkipChildren, nil
		case *ast.Image:
			buf.WriteString(inlineText(v, source))
			return ast.WalkSkipChildren, nil
		case *ast.CodeSpan:
			for c := v.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					buf.Write(t.Segment.Value(source))
				}
			}
			return ast.WalkSkipChildren, nil
		case *ast.AutoLink:
			buf.Write(v.URL(source))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			value := util.UnescapePunctuations(v.Segment.Value(source))
			if afterGlyph {
				value = bytes.TrimLeft(value, " \t")
				afterGlyph = false
			}
			buf.Write(value)
			if v.SoftLineBreak() || v.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}

func htmlBlockText(n *ast.HTMLBlock, source []byte) string {
	raw := linesText(n, source)
	if n.HasClosure() {
		raw += string(n.ClosureLine.Value(source))
	}
	return raw
}

func hasTaskCheckBox(item ast.Node) bool {
	first := item.FirstChild()
	if first == nil {
		return false
	}
	_, ok := first.FirstChild().(*extast.TaskCheckBox)
	return ok
}

// linesText returns the raw lines of a block node.
func linesText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

func indent(s, prefix string) string {
	if s == "" {
		return s
	}
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}
