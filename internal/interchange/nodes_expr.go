package interchange

import "fmt"

// Literal is a leaf node wrapping a string, number, bool, or nil value.
type Literal struct {
	Value     any
	NodeSpan  Span
}

func (n *Literal) Kind() Kind        { return KindLiteral }
func (n *Literal) Span() Span        { return n.NodeSpan }
func (n *Literal) Children() []Node  { return nil }
func (n *Literal) String() string    { return fmt.Sprintf("literal(%#v)", n.Value) }
func (n *Literal) Equal(o Node) bool {
	other, ok := o.(*Literal)
	if !ok {
		return false
	}
	return n.Value == other.Value
}

// Identifier is a bare name; Name, when set, is the canonical spelling.
type Identifier struct {
	Value    string
	Name     string
	NodeSpan Span
}

func (n *Identifier) Kind() Kind       { return KindIdentifier }
func (n *Identifier) Span() Span       { return n.NodeSpan }
func (n *Identifier) Children() []Node { return nil }
func (n *Identifier) String() string   { return fmt.Sprintf("identifier(%s)", n.canonical()) }
func (n *Identifier) canonical() string {
	if n.Name != "" {
		return n.Name
	}
	return n.Value
}
func (n *Identifier) Equal(o Node) bool {
	other, ok := o.(*Identifier)
	if !ok {
		return false
	}
	return n.canonical() == other.canonical()
}

// Selector wraps raw CSS/HTML selector text.
type Selector struct {
	Value    string
	NodeSpan Span
}

func (n *Selector) Kind() Kind        { return KindSelector }
func (n *Selector) Span() Span        { return n.NodeSpan }
func (n *Selector) Children() []Node  { return nil }
func (n *Selector) String() string    { return fmt.Sprintf("selector(%s)", n.Value) }
func (n *Selector) Equal(o Node) bool {
	other, ok := o.(*Selector)
	return ok && n.Value == other.Value
}

// Variable is a scoped, named storage location.
type Variable struct {
	Name     string
	Scope    VarScope
	NodeSpan Span
}

func (n *Variable) Kind() Kind       { return KindVariable }
func (n *Variable) Span() Span       { return n.NodeSpan }
func (n *Variable) Children() []Node { return nil }
func (n *Variable) String() string {
	return fmt.Sprintf("variable(%s, %s)", n.Name, n.Scope)
}
func (n *Variable) Equal(o Node) bool {
	other, ok := o.(*Variable)
	return ok && n.Name == other.Name && n.Scope == other.Scope
}

// Binary is a two-operand expression.
type Binary struct {
	Operator string
	Left     Node
	Right    Node
	NodeSpan Span
}

func (n *Binary) Kind() Kind       { return KindBinary }
func (n *Binary) Span() Span       { return n.NodeSpan }
func (n *Binary) Children() []Node { return childList(n.Left, n.Right) }
func (n *Binary) String() string {
	return fmt.Sprintf("binary(%s, %s, %s)", n.Operator, n.Left, n.Right)
}
func (n *Binary) Equal(o Node) bool {
	other, ok := o.(*Binary)
	if !ok {
		return false
	}
	return n.Operator == other.Operator && nodeEqual(n.Left, other.Left) && nodeEqual(n.Right, other.Right)
}

// Unary is a single-operand expression.
type Unary struct {
	Operator string
	Operand  Node
	NodeSpan Span
}

func (n *Unary) Kind() Kind       { return KindUnary }
func (n *Unary) Span() Span       { return n.NodeSpan }
func (n *Unary) Children() []Node { return childList(n.Operand) }
func (n *Unary) String() string   { return fmt.Sprintf("unary(%s, %s)", n.Operator, n.Operand) }
func (n *Unary) Equal(o Node) bool {
	other, ok := o.(*Unary)
	if !ok {
		return false
	}
	return n.Operator == other.Operator && nodeEqual(n.Operand, other.Operand)
}

// Member is property access: object.property or object[expr].
type Member struct {
	Object       Node
	Property     Node // identifier-valued when Computed is false
	Computed     bool
	NodeSpan     Span
}

func (n *Member) Kind() Kind       { return KindMember }
func (n *Member) Span() Span       { return n.NodeSpan }
func (n *Member) Children() []Node { return childList(n.Object, n.Property) }
func (n *Member) String() string {
	return fmt.Sprintf("member(%s, %s, computed=%t)", n.Object, n.Property, n.Computed)
}
func (n *Member) Equal(o Node) bool {
	other, ok := o.(*Member)
	if !ok {
		return false
	}
	return n.Computed == other.Computed && nodeEqual(n.Object, other.Object) && nodeEqual(n.Property, other.Property)
}

// PropertyName returns the literal property name when Property is a
// non-computed identifier, else ("", false).
func (n *Member) PropertyName() (string, bool) {
	if n.Computed {
		return "", false
	}
	if id, ok := n.Property.(*Identifier); ok {
		return id.canonical(), true
	}
	return "", false
}

// Possessive is x's prop, with sigils distinguishing style (*) and
// attribute (@) forms from plain field access.
type Possessive struct {
	Object   Node
	Property string
	NodeSpan Span
}

func (n *Possessive) Kind() Kind       { return KindPossessive }
func (n *Possessive) Span() Span       { return n.NodeSpan }
func (n *Possessive) Children() []Node { return childList(n.Object) }
func (n *Possessive) String() string {
	return fmt.Sprintf("possessive(%s, %s)", n.Object, n.Property)
}
func (n *Possessive) Equal(o Node) bool {
	other, ok := o.(*Possessive)
	if !ok {
		return false
	}
	return n.Property == other.Property && nodeEqual(n.Object, other.Object)
}

// IsStyle reports whether the property carries the style sigil (*).
func (n *Possessive) IsStyle() bool { return len(n.Property) > 0 && n.Property[0] == '*' }

// IsAttribute reports whether the property carries the attribute sigil (@).
func (n *Possessive) IsAttribute() bool { return len(n.Property) > 0 && n.Property[0] == '@' }

// PropertyName strips any sigil from Property.
func (n *Possessive) PropertyName() string {
	if n.IsStyle() || n.IsAttribute() {
		return n.Property[1:]
	}
	return n.Property
}

// Call is a function invocation.
type Call struct {
	Callee   Node
	Args     []Node
	NodeSpan Span
}

func (n *Call) Kind() Kind       { return KindCall }
func (n *Call) Span() Span       { return n.NodeSpan }
func (n *Call) Children() []Node { return childListFrom(childList(n.Callee), n.Args) }
func (n *Call) String() string   { return fmt.Sprintf("call(%s, %v)", n.Callee, n.Args) }
func (n *Call) Equal(o Node) bool {
	other, ok := o.(*Call)
	if !ok {
		return false
	}
	return nodeEqual(n.Callee, other.Callee) && nodeListEqual(n.Args, other.Args)
}

// Positional references an element by relative position, e.g. "the first
// <li/>" or "the next <input/> from me".
type Positional struct {
	Position string
	Target   Node
	NodeSpan Span
}

func (n *Positional) Kind() Kind       { return KindPositional }
func (n *Positional) Span() Span       { return n.NodeSpan }
func (n *Positional) Children() []Node { return childList(n.Target) }
func (n *Positional) String() string   { return fmt.Sprintf("positional(%s, %s)", n.Position, n.Target) }
func (n *Positional) Equal(o Node) bool {
	other, ok := o.(*Positional)
	if !ok {
		return false
	}
	return n.Position == other.Position && nodeEqual(n.Target, other.Target)
}
