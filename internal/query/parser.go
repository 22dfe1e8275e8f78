// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package query

import "strings"

// Compile parses a filter expression with the capabilities of this build.
func Compile(input string, opts Options) (*Query, error) {
	return CompileWith(input, opts, DefaultCapabilities())
}

// CompileWith parses a filter expression into a Query. It returns either a
// Query or a single *Error; a malformed fragment anywhere fails the whole
// compile. Blank input compiles to a Query that matches every record.
//
// Grammar, lowest precedence first:
//
//	expression := term (("and" | "or")? term)*
//	term       := "!"? factor
//	factor     := "(" expression? ")" | attribute
//	attribute  := (prefix (":" | op))? operand
func CompileWith(input string, opts Options, caps Capabilities) (*Query, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens, opts: opts, caps: caps}
	if p.peek().Type == tokEOF {
		return &Query{root: &attribute{kind: Empty}, text: input, options: opts}, nil
	}

	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if t := p.peek(); t.Type != tokEOF {
		if t.Type == tokRParen {
			return nil, newError(LexError, t.Literal, "unbalanced parenthesis")
		}
		return nil, newError(LexError, t.Literal, "unexpected %s", t.Type)
	}

	return &Query{root: root, text: input, options: opts}, nil
}

type parser struct {
	tokens []token
	pos    int
	opts   Options
	caps   Capabilities
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.Type != tokEOF {
		p.pos++
	}
	return t
}

// startsTerm reports whether t can begin a term, which is what allows two
// adjacent terms to be joined by an implicit and.
func startsTerm(t token) bool {
	switch t.Type {
	case tokWord, tokString, tokNot, tokLParen:
		return true
	}
	return false
}

func (p *parser) parseOr() (expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.peek().Type == tokOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orExpr{left: left, right: right}
	}

	return left, nil
}

func (p *parser) parseAnd() (expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	for {
		switch t := p.peek(); {
		case t.Type == tokAnd:
			p.next()
		case startsTerm(t):
		default:
			return left, nil
		}

		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = andExpr{left: left, right: right}
	}
}

func (p *parser) parseNot() (expr, error) {
	if p.peek().Type != tokNot {
		return p.parseFactor()
	}

	bang := p.next()
	if p.peek().Type == tokEOF {
		return nil, newError(LexError, bang.Literal, "dangling negation")
	}

	operand, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	return notExpr{operand: operand}, nil
}

func (p *parser) parseFactor() (expr, error) {
	t := p.peek()

	switch t.Type {
	case tokLParen:
		p.next()
		if p.peek().Type == tokRParen {
			p.next()
			return groupExpr{inner: &attribute{kind: Empty}}, nil
		}

		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.peek().Type != tokRParen {
			return nil, newError(LexError, t.Literal, "unterminated parenthesis")
		}
		p.next()
		return groupExpr{inner: inner}, nil

	case tokWord:
		return p.parseAttribute()

	case tokString:
		p.next()
		if t.Literal == "" {
			return nil, newError(LexError, "", "empty operand")
		}
		return newStringAttribute(Name, t.Literal, p.opts)

	case tokEOF:
		return nil, newError(LexError, "", "unexpected end of input")
	}

	return nil, newError(LexError, t.Literal, "unexpected %s", t.Type)
}

// parseAttribute reads one leaf. The current token is a word.
func (p *parser) parseAttribute() (expr, error) {
	word := p.next()

	sep := p.peek()
	if sep.Type != tokColon && sep.Type != tokCompare {
		return newStringAttribute(Name, word.Literal, p.opts)
	}

	prefix, ok := resolvePrefix(word.Literal, p.caps)
	if !ok {
		return nil, newError(UnknownPrefix, word.Literal, "unknown prefix")
	}
	p.next()

	cat := prefix.category()
	if cat == categoryString {
		return p.parseStringOperand(prefix, sep)
	}

	op := OpEqual
	if sep.Type == tokCompare {
		op = compareOps[sep.Literal]
	} else if t := p.peek(); t.Type == tokCompare {
		// "cpu: >50" reads the same as "cpu > 50".
		op = compareOps[t.Literal]
		p.next()
	}

	operand := p.peek()
	switch operand.Type {
	case tokWord:
	case tokString:
		return nil, newError(UnsupportedAttribute, operand.Literal,
			"%s needs a numeric value", prefix)
	default:
		return nil, newError(InvalidNumberOrUnit, word.Literal+" "+sep.Literal,
			"missing value")
	}
	p.next()

	text := operand.Literal
	if t := p.peek(); t.Type == tokWord && isUnit(cat, t.Literal) {
		text += " " + p.next().Literal
	}

	if cat == categoryDuration {
		d, err := parseDuration(text)
		if err != nil {
			return nil, err
		}
		return newTimeAttribute(prefix, TimeQuery{Op: op, Value: d})
	}

	v, err := parseNumber(cat, text)
	if err != nil {
		return nil, err
	}
	return newNumericalAttribute(prefix, NumericalQuery{Op: op, Value: v})
}

func (p *parser) parseStringOperand(prefix PrefixType, sep token) (expr, error) {
	if sep.Type == tokCompare && sep.Literal != "=" {
		return nil, newError(UnsupportedAttribute, sep.Literal,
			"%s does not support comparison", prefix)
	}

	operand := p.peek()
	if operand.Type != tokWord && operand.Type != tokString {
		if sep.Type == tokCompare {
			return nil, newError(InvalidNumberOrUnit, prefix.String()+sep.Literal, "missing value")
		}
		return nil, newError(LexError, prefix.String()+sep.Literal, "missing value")
	}
	p.next()

	if strings.TrimSpace(operand.Literal) == "" {
		return nil, newError(LexError, "", "empty operand")
	}
	return newStringAttribute(prefix, operand.Literal, p.opts)
}
