package analysis

import (
	"fmt"

	"github.com/codetalcott/hyperfixi/internal/interchange"
)

// Position is a 1-based line, 0-based column query point, matching Span's
// coordinate convention (spec.md §3).
type Position struct {
	Line   int
	Column int
}

// Hover is the info shown for the node found at a query position.
type Hover struct {
	Text string
	Span interchange.Span
}

// HoverAt finds the smallest-span node overlapping position and describes
// it, per spec.md §6's "position lookup prefers the smallest-span node
// overlapping the query." Returns nil when no node overlaps.
func HoverAt(nodes []interchange.Node, pos Position) *Hover {
	var best interchange.Node
	for _, n := range nodes {
		if found := smallestOverlapping(n, pos); found != nil {
			if best == nil || spanSize(found.Span()) < spanSize(best.Span()) {
				best = found
			}
		}
	}
	if best == nil {
		return nil
	}
	return &Hover{Text: describe(best), Span: best.Span()}
}

func smallestOverlapping(n interchange.Node, pos Position) interchange.Node {
	if n == nil {
		return nil
	}
	var best interchange.Node
	if overlaps(n.Span(), pos) {
		best = n
	}
	for _, c := range n.Children() {
		if found := smallestOverlapping(c, pos); found != nil {
			if best == nil || spanSize(found.Span()) < spanSize(best.Span()) {
				best = found
			}
		}
	}
	return best
}

func overlaps(s interchange.Span, pos Position) bool {
	if !s.Present {
		return false
	}
	if s.Line != pos.Line {
		return false
	}
	width := s.End - s.Start
	if width < 0 {
		width = 0
	}
	return pos.Column >= s.Column && pos.Column <= s.Column+width
}

func spanSize(s interchange.Span) int {
	if !s.Present {
		return int(^uint(0) >> 1)
	}
	size := s.End - s.Start
	if size < 0 {
		return 0
	}
	return size
}

func describe(n interchange.Node) string {
	switch t := n.(type) {
	case *interchange.Command:
		return fmt.Sprintf("command %q (%d args)", t.Name, len(t.Args))
	case *interchange.Variable:
		return fmt.Sprintf("%s variable %q", t.Scope, t.Name)
	case *interchange.Event:
		return fmt.Sprintf("handler for event %q", t.Event)
	case *interchange.Selector:
		return fmt.Sprintf("selector %q", t.Value)
	case *interchange.Possessive:
		return fmt.Sprintf("possessive property %q", t.PropertyName())
	case *interchange.Literal:
		return fmt.Sprintf("literal %v", t.Value)
	case *interchange.Identifier:
		return fmt.Sprintf("identifier %q", t.Name)
	default:
		return n.String()
	}
}
