package hscript

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/codetalcott/hyperfixi/internal/lex"
)

// SyntaxError is raised when the parser hits a token it cannot make sense
// of, per spec.md §7's "lex/parse errors" taxonomy. Parsers are the only
// stage in the pipeline allowed to return an error.
type SyntaxError struct {
	Message  string
	Position lex.Position
}

func (e *SyntaxError) Error() string {
	if !e.Position.Valid {
		return fmt.Sprintf("syntax error: %s", e.Message)
	}
	return fmt.Sprintf("syntax error at line %d: %s", e.Position.Line, e.Message)
}

var commandAliases = map[string]string{
	"flip":    "toggle",
	"switch":  "toggle",
	"display": "show",
	"reveal":  "show",
}

var modifierPrepositions = map[string]bool{
	"to": true, "into": true, "before": true, "after": true, "from": true,
	"on": true, "with": true, "as": true, "by": true, "over": true,
	"when": true, "where": true,
}

type parser struct {
	toks []lex.Token
	pos  int
}

// Parse runs front-end A over a token stream, producing a sequence of
// top-level statements (event handlers or bare command sequences).
func Parse(toks []lex.Token) ([]*Node, error) {
	p := &parser{toks: toks}
	var stmts []*Node
	for !p.atEOF() {
		p.skipSeparators()
		if p.atEOF() {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *parser) atEOF() bool { return p.peek().Kind == lex.KindEOF }

func (p *parser) peek() lex.Token {
	if p.pos >= len(p.toks) {
		return lex.Token{Kind: lex.KindEOF}
	}
	return p.toks[p.pos]
}

func (p *parser) peekAt(ahead int) lex.Token {
	idx := p.pos + ahead
	if idx >= len(p.toks) {
		return lex.Token{Kind: lex.KindEOF}
	}
	return p.toks[idx]
}

func (p *parser) advance() lex.Token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) isKeyword(word string) bool {
	t := p.peek()
	return t.Kind == lex.KindKeyword && strings.EqualFold(t.Value, word)
}

func (p *parser) isSymbol(sym string) bool {
	t := p.peek()
	return (t.Kind == lex.KindSymbol || t.Kind == lex.KindOperator) && t.Value == sym
}

func (p *parser) expectKeyword(word string) (lex.Token, error) {
	if !p.isKeyword(word) {
		return lex.Token{}, &SyntaxError{
			Message:  fmt.Sprintf("expected %q, got %s", word, p.peek()),
			Position: p.peek().Position,
		}
	}
	return p.advance(), nil
}

func (p *parser) skipSeparators() {
	for p.isKeyword("then") || p.isKeyword("and") || p.isSymbol("\n") {
		p.advance()
	}
}

// parseStatement parses one top-level statement: an event handler, an
// "init" handler, an "every" interval handler, or a bare command sequence.
func (p *parser) parseStatement() (*Node, error) {
	switch {
	case p.isKeyword("on"):
		return p.parseEventHandler()
	case p.isKeyword("init"):
		p.advance()
		body, err := p.parseCommandSequence()
		if err != nil {
			return nil, err
		}
		return &Node{Kind: KindEventHandler, EventName: "init", Commands: body}, nil
	case p.isKeyword("every"):
		p.advance()
		durTok := p.advance()
		body, err := p.parseCommandSequence()
		if err != nil {
			return nil, err
		}
		return &Node{
			Kind:      KindEventHandler,
			EventName: "interval:" + durTok.Value,
			Commands:  body,
		}, nil
	default:
		body, err := p.parseCommandSequence()
		if err != nil {
			return nil, err
		}
		if len(body) == 1 {
			return body[0], nil
		}
		return &Node{Kind: KindCommandSequence, Children: body}, nil
	}
}

func (p *parser) parseEventHandler() (*Node, error) {
	if _, err := p.expectKeyword("on"); err != nil {
		return nil, err
	}
	nameTok := p.advance()

	node := &Node{Kind: KindEventHandler, EventName: nameTok.Value, ModifierFlags: map[string]bool{}, ModifierInts: map[string]int{}}

	for p.isSymbol(".") {
		p.advance()
		modTok := p.advance()
		mod := strings.ToLower(modTok.Value)
		switch mod {
		case "once":
			node.ModifierFlags["once"] = true
		case "prevent":
			node.ModifierFlags["prevent"] = true
		case "stop":
			node.ModifierFlags["stop"] = true
		case "debounce":
			n, err := p.parseParenInt()
			if err != nil {
				return nil, err
			}
			node.ModifierInts["debounce"] = n
		case "throttle":
			n, err := p.parseParenInt()
			if err != nil {
				return nil, err
			}
			node.ModifierInts["throttle"] = n
		}
	}

	if p.isKeyword("from") {
		p.advance()
		target, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		node.From = target
	}

	body, err := p.parseCommandSequence()
	if err != nil {
		return nil, err
	}
	node.Commands = body
	return node, nil
}

func (p *parser) parseParenInt() (int, error) {
	if p.isSymbol("(") {
		p.advance()
		numTok := p.advance()
		p.skipIfSymbol(")")
		n, _ := strconv.Atoi(strings.TrimRight(numTok.Value, "msspx"))
		return n, nil
	}
	return 0, nil
}

func (p *parser) skipIfSymbol(sym string) {
	if p.isSymbol(sym) {
		p.advance()
	}
}

// parseCommandSequence parses statements separated by "then"/"and" until
// "end" or end-of-input.
func (p *parser) parseCommandSequence() ([]*Node, error) {
	var out []*Node
	p.skipSeparators()
	for !p.atEOF() && !p.isKeyword("end") && !p.isKeyword("else") {
		cmd, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		if cmd != nil {
			out = append(out, cmd)
		}
		p.skipSeparators()
	}
	return out, nil
}

// parseBlockBody parses a command sequence and then consumes the closing
// "end" keyword.
func (p *parser) parseBlockBody() ([]*Node, error) {
	body, err := p.parseCommandSequence()
	if err != nil {
		return nil, err
	}
	if p.isKeyword("end") {
		p.advance()
	}
	return body, nil
}

func (p *parser) parseCommand() (*Node, error) {
	switch {
	case p.isKeyword("if"), p.isKeyword("unless"):
		return p.parseIf()
	case p.isKeyword("repeat"):
		return p.parseRepeat()
	case p.isKeyword("for"):
		return p.parseFor()
	case p.isKeyword("while"):
		return p.parseWhile()
	case p.isKeyword("fetch"):
		return p.parseFetch()
	}

	nameTok := p.advance()
	if nameTok.Kind == lex.KindEOF {
		return nil, nil
	}
	name := strings.ToLower(nameTok.Value)
	if canon, ok := commandAliases[name]; ok {
		name = canon
	}
	return p.parseGenericCommand(name)
}

// parseGenericCommand consumes positional operands followed by trailing
// prepositional modifiers, per spec.md §4.2's command-parsing contract.
func (p *parser) parseGenericCommand(name string) (*Node, error) {
	node := &Node{Kind: KindCommand, CommandName: name, Modifiers: map[string]*Node{}}

	for {
		t := p.peek()
		if t.Kind == lex.KindEOF || p.isKeyword("then") || p.isKeyword("and") ||
			p.isKeyword("end") || p.isKeyword("else") {
			break
		}
		if t.Kind == lex.KindKeyword && modifierPrepositions[strings.ToLower(t.Value)] {
			prep := strings.ToLower(p.advance().Value)
			val, err := p.parseExpression(0)
			if err != nil {
				return nil, err
			}
			node.Modifiers[prep] = val
			continue
		}
		arg, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		node.Args = append(node.Args, arg)
	}

	return node, nil
}

func (p *parser) parseIf() (*Node, error) {
	negate := p.isKeyword("unless")
	p.advance()

	cond, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if negate {
		cond = &Node{Kind: KindUnaryExpression, Operator: "not", Operand: cond}
	}

	node := &Node{Kind: KindCommand, CommandName: "if", IsBlocking: true, Condition: cond, Modifiers: map[string]*Node{}}

	then, err := p.parseCommandSequence()
	if err != nil {
		return nil, err
	}
	node.ThenBranch = then

	for p.isKeyword("else") {
		p.advance()
		if p.isKeyword("if") {
			p.advance()
			elifCond, err := p.parseExpression(0)
			if err != nil {
				return nil, err
			}
			elifBody, err := p.parseCommandSequence()
			if err != nil {
				return nil, err
			}
			node.ElseIfBranches = append(node.ElseIfBranches, ElseIf{Condition: elifCond, Body: elifBody})
			continue
		}
		elseBody, err := p.parseCommandSequence()
		if err != nil {
			return nil, err
		}
		node.ElseBranch = elseBody
		break
	}

	if p.isKeyword("end") {
		p.advance()
	}
	return node, nil
}

func (p *parser) parseRepeat() (*Node, error) {
	p.advance() // "repeat"

	node := &Node{Kind: KindCommand, CommandName: "repeat", Modifiers: map[string]*Node{}}

	switch {
	case p.isKeyword("forever"):
		p.advance()
	case p.isKeyword("while"):
		p.advance()
		node.LoopVariant = "while"
		cond, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		node.WhileCondition = cond
	default:
		count, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		if p.isKeyword("times") {
			p.advance()
		}
		node.LoopVariant = "times"
		node.Count = count
	}

	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	node.ThenBranch = body
	return node, nil
}

func (p *parser) parseFor() (*Node, error) {
	p.advance() // "for"
	if p.isKeyword("each") {
		p.advance()
	}
	itemTok := p.advance()
	node := &Node{Kind: KindCommand, CommandName: "repeat", LoopVariant: "for", ItemName: strings.TrimPrefix(itemTok.Value, ":"), Modifiers: map[string]*Node{}}

	if p.isKeyword("in") {
		p.advance()
	}
	coll, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	node.Collection = coll

	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	node.ThenBranch = body
	return node, nil
}

func (p *parser) parseWhile() (*Node, error) {
	p.advance() // "while"
	node := &Node{Kind: KindCommand, CommandName: "repeat", LoopVariant: "while", Modifiers: map[string]*Node{}}
	cond, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	node.WhileCondition = cond

	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	node.ThenBranch = body
	return node, nil
}

func (p *parser) parseFetch() (*Node, error) {
	p.advance() // "fetch"
	node := &Node{Kind: KindCommand, CommandName: "fetch", Modifiers: map[string]*Node{}}

	url, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	node.Args = append(node.Args, url)

	if p.isKeyword("as") {
		p.advance()
		fmtTok := p.advance()
		node.Modifiers["as"] = &Node{Kind: KindLiteral, Value: fmtTok.Value}
	}

	if p.isKeyword("then") {
		p.advance()
		body, err := p.parseBlockBody()
		if err != nil {
			return nil, err
		}
		node.ThenBranch = body
	}
	return node, nil
}

// Operator precedence levels, per spec.md §4.2: logical-or > logical-and >
// equality > comparison > additive > multiplicative > unary > postfix >
// primary.
var precedence = map[string]int{
	"or": 1, "||": 1,
	"and": 2, "&&": 2,
	"==": 3, "!=": 3, "is": 3, "is not": 3, "matches": 3, "contains": 3, "includes": 3, "has": 3,
	"<": 4, ">": 4, "<=": 4, ">=": 4,
	"+": 5, "-": 5,
	"*": 6, "/": 6, "%": 6,
}

func (p *parser) binaryOpAt() (string, int, bool) {
	t := p.peek()
	switch t.Kind {
	case lex.KindOperator:
		switch t.Value {
		case "==", "!=", "<", ">", "<=", ">=", "+", "-", "*", "/", "%", "&&", "||":
			return opCanonical(t.Value), precedence[opCanonical(t.Value)], true
		}
	case lex.KindKeyword:
		low := strings.ToLower(t.Value)
		if low == "is" && strings.EqualFold(p.peekAt(1).Value, "not") {
			return "is not", precedence["is not"], true
		}
		switch low {
		case "and", "or", "is", "matches", "contains", "includes", "has":
			return low, precedence[low], true
		}
	}
	return "", 0, false
}

func opCanonical(sym string) string {
	switch sym {
	case "&&":
		return "and"
	case "||":
		return "or"
	default:
		return sym
	}
}

func (p *parser) parseExpression(minBP int) (*Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		op, bp, ok := p.binaryOpAt()
		if !ok || bp < minBP {
			break
		}
		p.advance()
		if op == "is not" {
			p.advance() // consume "not"
		}
		right, err := p.parseExpression(bp + 1)
		if err != nil {
			return nil, err
		}
		left = &Node{Kind: KindBinaryExpression, Operator: op, Left: left, Right: right}
	}

	return left, nil
}

func (p *parser) parseUnary() (*Node, error) {
	t := p.peek()
	if (t.Kind == lex.KindOperator && t.Value == "!") || (t.Kind == lex.KindKeyword && strings.EqualFold(t.Value, "not")) {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Node{Kind: KindUnaryExpression, Operator: "not", Operand: operand}, nil
	}
	if t.Kind == lex.KindOperator && t.Value == "-" {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Node{Kind: KindUnaryExpression, Operator: "-", Operand: operand}, nil
	}
	return p.parsePostfix()
}

// parsePostfix applies, in left-to-right order: 's property, bare
// styleProperty, .ident member access, call (args...), and computed
// index [expr] unless the receiver is itself a selector node, per
// spec.md §4.2.
func (p *parser) parsePostfix() (*Node, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.isSymbol("'s"):
			p.advance()
			propTok := p.advance()
			node = &Node{Kind: KindPossessiveExpression, Object: node, PropertyName: propTok.Value}
		case p.peek().Kind == lex.KindStyleProperty:
			propTok := p.advance()
			node = &Node{Kind: KindPossessiveExpression, Object: node, PropertyName: propTok.Value}
		case p.isSymbol(".") && p.peekAt(1).Kind == lex.KindIdentifier:
			p.advance()
			propTok := p.advance()
			node = &Node{Kind: KindMemberExpression, Object: node, Property: &Node{Kind: KindIdentifier, Name: propTok.Value}, Computed: false}
		case p.peek().Kind == lex.KindSelector && len(p.peek().Value) > 0 && p.peek().Value[0] == '.':
			selTok := p.advance()
			node = &Node{Kind: KindMemberExpression, Object: node, Property: &Node{Kind: KindIdentifier, Name: strings.TrimPrefix(selTok.Value, ".")}, Computed: false}
		case p.isSymbol("("):
			p.advance()
			var args []*Node
			for !p.isSymbol(")") && !p.atEOF() {
				arg, err := p.parseExpression(0)
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.isSymbol(",") {
					p.advance()
				}
			}
			p.skipIfSymbol(")")
			node = &Node{Kind: KindCallExpression, Callee: node, Args: args}
		case p.isSymbol("[") && node.Kind != KindSelector:
			p.advance()
			idx, err := p.parseExpression(0)
			if err != nil {
				return nil, err
			}
			p.skipIfSymbol("]")
			node = &Node{Kind: KindMemberExpression, Object: node, Property: idx, Computed: true}
		default:
			return node, nil
		}
	}
}

func (p *parser) parsePrimary() (*Node, error) {
	t := p.peek()
	switch t.Kind {
	case lex.KindNumber:
		p.advance()
		return &Node{Kind: KindLiteral, Value: parseNumber(t.Value)}, nil
	case lex.KindString:
		p.advance()
		return &Node{Kind: KindLiteral, Value: unquote(t.Value)}, nil
	case lex.KindLocalVar:
		p.advance()
		return &Node{Kind: KindVariable, Name: strings.TrimPrefix(t.Value, ":"), Scope: "local"}, nil
	case lex.KindGlobalVar:
		p.advance()
		return &Node{Kind: KindVariable, Name: strings.TrimPrefix(t.Value, "$"), Scope: "global"}, nil
	case lex.KindSelector:
		p.advance()
		return &Node{Kind: KindSelector, Selector: t.Value}, nil
	case lex.KindSymbol:
		if t.Value == "(" {
			p.advance()
			expr, err := p.parseExpression(0)
			if err != nil {
				return nil, err
			}
			p.skipIfSymbol(")")
			return expr, nil
		}
		if t.Value == "[" {
			p.advance()
			var items []*Node
			for !p.isSymbol("]") && !p.atEOF() {
				item, err := p.parseExpression(0)
				if err != nil {
					return nil, err
				}
				items = append(items, item)
				if p.isSymbol(",") {
					p.advance()
				}
			}
			p.skipIfSymbol("]")
			return &Node{Kind: KindCallExpression, CalleeName: "array", Args: items}, nil
		}
	case lex.KindKeyword:
		low := strings.ToLower(t.Value)
		switch low {
		case "me", "it", "you":
			p.advance()
			return &Node{Kind: KindIdentifier, Name: low}, nil
		case "my":
			p.advance()
			propTok := p.advance()
			return &Node{Kind: KindPossessiveExpression, Object: &Node{Kind: KindIdentifier, Name: "me"}, PropertyName: propTok.Value}, nil
		case "its":
			p.advance()
			propTok := p.advance()
			return &Node{Kind: KindPossessiveExpression, Object: &Node{Kind: KindIdentifier, Name: "it"}, PropertyName: propTok.Value}, nil
		}
	case lex.KindStyleProperty:
		p.advance()
		return &Node{Kind: KindPossessiveExpression, Object: &Node{Kind: KindIdentifier, Name: "me"}, PropertyName: t.Value}, nil
	}
	p.advance()
	return &Node{Kind: KindIdentifier, Name: t.Value}, nil
}

func parseNumber(s string) any {
	trimmed := strings.TrimRight(s, "mspx")
	for _, unit := range []string{"ms", "px", "s"} {
		if strings.HasSuffix(s, unit) {
			trimmed = strings.TrimSuffix(s, unit)
			break
		}
	}
	if strings.Contains(trimmed, ".") {
		f, err := strconv.ParseFloat(trimmed, 64)
		if err == nil {
			return f
		}
	}
	n, err := strconv.Atoi(trimmed)
	if err == nil {
		return n
	}
	return s
}

func unquote(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}
