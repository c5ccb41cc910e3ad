package pipeline

import "sort"

// SpanKind identifies the markup construct a span covers.
type SpanKind int

// Span kinds recognized by the scanners.
const (
	SpanBold SpanKind = iota + 1
	SpanItalic
	SpanStrikethrough
	SpanSpoiler
	SpanInlineCode
	SpanFencedCode
	SpanLink
	SpanImage
	SpanHeading
	SpanQuote
	SpanChecklist
	SpanRule
	SpanTable
	SpanMath
	SpanSealed // placeholder standing for an already rendered fragment
	SpanMerged // union of overlapping spans of different kinds
)

var spanKindNames = map[SpanKind]string{
	SpanBold:          "bold",
	SpanItalic:        "italic",
	SpanStrikethrough: "strikethrough",
	SpanSpoiler:       "spoiler",
	SpanInlineCode:    "inline-code",
	SpanFencedCode:    "fenced-code",
	SpanLink:          "link",
	SpanImage:         "image",
	SpanHeading:       "heading",
	SpanQuote:         "quote",
	SpanChecklist:     "checklist-item",
	SpanRule:          "rule",
	SpanTable:         "table",
	SpanMath:          "math",
	SpanSealed:        "sealed",
	SpanMerged:        "merged",
}

func (k SpanKind) String() string {
	if name, ok := spanKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Span is a half-open byte range [Start, End) tagged with its construct.
type Span struct {
	Kind  SpanKind
	Start int
	End   int
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// MergeSpans sorts spans by start offset and unions every overlapping pair.
// The result is sorted and pairwise disjoint. Spans of different kinds that
// overlap become a single SpanMerged region. Adjacent spans stay separate.
func MergeSpans(spans []Span) []Span {
	if len(spans) == 0 {
		return nil
	}

	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End > sorted[j].End
	})

	merged := []Span{sorted[0]}
	for _, s := range sorted[1:] {
		last := &merged[len(merged)-1]
		if s.Start >= last.End {
			merged = append(merged, s)
			continue
		}
		if s.End > last.End {
			last.End = s.End
		}
		if s.Kind != last.Kind {
			last.Kind = SpanMerged
		}
	}
	return merged
}

// spanAt returns the span containing offset i, if any.
// spans must be sorted and disjoint.
func spanAt(spans []Span, i int) (Span, bool) {
	k := sort.Search(len(spans), func(k int) bool { return spans[k].End > i })
	if k < len(spans) && spans[k].Start <= i {
		return spans[k], true
	}
	return Span{}, false
}
