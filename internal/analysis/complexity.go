package analysis

import "github.com/codetalcott/hyperfixi/internal/interchange"

// CalculateCyclomatic implements spec.md §8's cyclomatic-complexity
// invariant: 1 plus the count of decision points (if, while, foreach) in
// the subtree rooted at node, counting the root itself.
func CalculateCyclomatic(node interchange.Node) int {
	count := 1
	walk(node, func(n interchange.Node) {
		switch n.(type) {
		case *interchange.If, *interchange.While, *interchange.ForEach:
			count++
		}
	})
	return count
}

// CalculateCognitive implements spec.md §8's cognitive-complexity measure:
// each decision point contributes 1 plus its nesting depth, where If,
// Repeat, ForEach, While, and Event all increment nesting for their
// descendants.
func CalculateCognitive(node interchange.Node) int {
	return cognitiveAt(node, 0)
}

func cognitiveAt(node interchange.Node, depth int) int {
	if node == nil {
		return 0
	}
	total := 0
	nextDepth := depth
	switch node.(type) {
	case *interchange.If, *interchange.While, *interchange.ForEach:
		total += 1 + depth
		nextDepth = depth + 1
	case *interchange.Repeat, *interchange.Event:
		nextDepth = depth + 1
	}
	for _, c := range node.Children() {
		total += cognitiveAt(c, nextDepth)
	}
	return total
}

// walk visits node and every descendant in pre-order, depth-first.
func walk(node interchange.Node, visit func(interchange.Node)) {
	if node == nil {
		return
	}
	visit(node)
	for _, c := range node.Children() {
		walk(c, visit)
	}
}
