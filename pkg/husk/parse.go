package husk

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// The grammar is an ordered choice, and the order is load-bearing:
//
//	expr  <- "#f" / integer / identifier / "(" form ")"
//	form  <- "\" "(" identifier* ")" expr*   (function literal)
//	       / "=" identifier expr             (definition)
//	       / expr expr*                      (call)
//
// Whitespace is skippable around every token. The three parenthesized
// forms share a "(" prefix and are told apart by the rune that follows
// it, so a single rune of lookahead stands in for full backtracking.

// ParseExpr parses one expression from src and returns it together with
// the unconsumed remainder. Whitespace around the expression is consumed.
func ParseExpr(src string) (Node, string, error) {
	p := &parser{src: src}
	node, err := p.expr()
	if err != nil {
		return nil, src, err
	}
	p.skipSpace()
	return node, p.src[p.pos:], nil
}

// Parse parses a maximal sequence of top-level expressions from src.
// Anything left over that is not whitespace is a syntax error.
func Parse(filename, src string) ([]Node, error) {
	p := &parser{filename: filename, src: src}
	var nodes []Node
	p.skipSpace()
	for !p.eof() {
		node, err := p.expr()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
		p.skipSpace()
	}
	return nodes, nil
}

type parser struct {
	filename string
	src      string
	pos      int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() (rune, bool) {
	if p.eof() {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return r, true
}

func (p *parser) consume(b byte) bool {
	if !p.eof() && p.src[p.pos] == b {
		p.pos++
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for {
		r, ok := p.peek()
		if !ok || !unicode.IsSpace(r) {
			return
		}
		p.pos += utf8.RuneLen(r)
	}
}

func (p *parser) expr() (Node, error) {
	p.skipSpace()
	r, ok := p.peek()
	if !ok {
		return nil, p.expected("expression")
	}
	switch {
	case r == '#':
		return p.falseLit()
	case r >= '0' && r <= '9':
		return p.integer()
	case unicode.IsLetter(r):
		id, err := p.identifier()
		if err != nil {
			return nil, err
		}
		return Variable{Name: id}, nil
	case r == '(':
		return p.parenForm()
	default:
		return nil, p.expected("expression")
	}
}

func (p *parser) falseLit() (Node, error) {
	if strings.HasPrefix(p.src[p.pos:], "#f") {
		p.pos += 2
		return Literal{Val: FalseValue{}}, nil
	}
	return nil, p.expected(`"#f"`)
}

func (p *parser) integer() (Node, error) {
	start := p.pos
	for !p.eof() && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	text := p.src[start:p.pos]
	n, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		line, col := position(p.src, start)
		return nil, &SyntaxError{
			Filename: p.filename,
			Offset:   start,
			Line:     line,
			Column:   col,
			Expected: "integer within u64 range",
			Found:    strconv.Quote(text),
		}
	}
	return Literal{Val: IntValue{Val: n}}, nil
}

// identifier consumes a maximal run of alphabetic characters.
func (p *parser) identifier() (Ident, error) {
	p.skipSpace()
	start := p.pos
	for {
		r, ok := p.peek()
		if !ok || !unicode.IsLetter(r) {
			break
		}
		p.pos += utf8.RuneLen(r)
	}
	if p.pos == start {
		return 0, p.expected("identifier")
	}
	return Intern(p.src[start:p.pos]), nil
}

func (p *parser) parenForm() (Node, error) {
	p.pos++ // '('
	p.skipSpace()
	r, ok := p.peek()
	if !ok {
		return nil, p.expected(`")"`)
	}
	switch r {
	case '\\':
		return p.function()
	case '=':
		return p.define()
	default:
		return p.call()
	}
}

func (p *parser) function() (Node, error) {
	p.pos++ // '\'
	p.skipSpace()
	if !p.consume('(') {
		return nil, p.expected(`"("`)
	}
	var params []Ident
	for {
		p.skipSpace()
		if p.consume(')') {
			break
		}
		r, ok := p.peek()
		if !ok || !unicode.IsLetter(r) {
			return nil, p.expected(`parameter or ")"`)
		}
		id, err := p.identifier()
		if err != nil {
			return nil, err
		}
		params = append(params, id)
	}
	body, err := p.exprsUntilClose()
	if err != nil {
		return nil, err
	}
	return Literal{Val: FuncValue{Params: params, Body: body}}, nil
}

func (p *parser) define() (Node, error) {
	p.pos++ // '='
	id, err := p.identifier()
	if err != nil {
		return nil, err
	}
	val, err := p.expr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.consume(')') {
		return nil, p.expected(`")"`)
	}
	return Define{Name: id, Val: val}, nil
}

func (p *parser) call() (Node, error) {
	fn, err := p.expr()
	if err != nil {
		return nil, err
	}
	args, err := p.exprsUntilClose()
	if err != nil {
		return nil, err
	}
	return Call{Fn: fn, Args: args}, nil
}

// exprsUntilClose parses zero or more expressions up to the closing ')'.
func (p *parser) exprsUntilClose() ([]Node, error) {
	var nodes []Node
	for {
		p.skipSpace()
		if p.consume(')') {
			return nodes, nil
		}
		if p.eof() {
			return nil, p.expected(`")"`)
		}
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
}

func (p *parser) expected(what string) *SyntaxError {
	found := "end of input"
	if r, ok := p.peek(); ok {
		found = fmt.Sprintf("%q", r)
	}
	line, col := position(p.src, p.pos)
	return &SyntaxError{
		Filename: p.filename,
		Offset:   p.pos,
		Line:     line,
		Column:   col,
		Expected: what,
		Found:    found,
	}
}
