// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// tokenType identifies the lexical class of a token.
type tokenType int

const (
	tokEOF tokenType = iota
	tokWord
	tokString
	tokCompare
	tokColon
	tokAnd
	tokOr
	tokNot
	tokLParen
	tokRParen
)

var tokenTypeNames = [...]string{
	tokEOF:     "end of input",
	tokWord:    "word",
	tokString:  "quoted string",
	tokCompare: "comparison",
	tokColon:   "':'",
	tokAnd:     "'and'",
	tokOr:      "'or'",
	tokNot:     "'!'",
	tokLParen:  "'('",
	tokRParen:  "')'",
}

func (t tokenType) String() string {
	return tokenTypeNames[t]
}

// token is one lexeme. For tokString, Literal is the unquoted, unescaped
// content. Pos is the byte offset of the token in the input.
type token struct {
	Type    tokenType
	Literal string
	Pos     int
}

// isDelimiter reports whether r ends a bare word.
func isDelimiter(r rune) bool {
	switch r {
	case '(', ')', '<', '>', '=', ':':
		return true
	}
	return unicode.IsSpace(r)
}

// tokenize splits input into tokens, always terminated by a tokEOF.
func tokenize(input string) ([]token, error) {
	var tokens []token

	pos := 0
	for pos < len(input) {
		r, size := utf8.DecodeRuneInString(input[pos:])

		if unicode.IsSpace(r) {
			pos += size
			continue
		}

		start := pos
		switch r {
		case '(':
			tokens = append(tokens, token{Type: tokLParen, Literal: "(", Pos: start})
			pos += size
		case ')':
			tokens = append(tokens, token{Type: tokRParen, Literal: ")", Pos: start})
			pos += size
		case ':':
			tokens = append(tokens, token{Type: tokColon, Literal: ":", Pos: start})
			pos += size
		case '!':
			tokens = append(tokens, token{Type: tokNot, Literal: "!", Pos: start})
			pos += size
		case '<', '>':
			op := string(r)
			pos += size
			if pos < len(input) && input[pos] == '=' {
				op += "="
				pos++
			}
			tokens = append(tokens, token{Type: tokCompare, Literal: op, Pos: start})
		case '=':
			pos += size
			// "==" is accepted as a synonym for "=".
			if pos < len(input) && input[pos] == '=' {
				pos++
			}
			tokens = append(tokens, token{Type: tokCompare, Literal: "=", Pos: start})
		case '"', '\'':
			lit, next, err := readQuoted(input, pos, r)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{Type: tokString, Literal: lit, Pos: start})
			pos = next
		default:
			for pos < len(input) {
				r, size = utf8.DecodeRuneInString(input[pos:])
				if isDelimiter(r) {
					break
				}
				pos += size
			}
			word := input[start:pos]
			tokens = append(tokens, token{Type: classifyWord(word), Literal: word, Pos: start})
		}
	}

	tokens = append(tokens, token{Type: tokEOF, Pos: len(input)})
	return tokens, nil
}

// classifyWord promotes boolean keywords out of plain words.
func classifyWord(word string) tokenType {
	switch strings.ToLower(word) {
	case "and", "&&":
		return tokAnd
	case "or", "||":
		return tokOr
	}
	return tokWord
}

// readQuoted consumes a quoted literal starting at input[start], which holds
// the quote rune. A backslash before the quote rune or another backslash
// yields that rune; any other backslash is kept so regex escapes survive.
// It returns the content and the offset just past the closing quote.
func readQuoted(input string, start int, quote rune) (string, int, error) {
	var b strings.Builder

	pos := start + utf8.RuneLen(quote)
	for pos < len(input) {
		r, size := utf8.DecodeRuneInString(input[pos:])
		pos += size

		switch {
		case r == '\\' && pos < len(input):
			esc, escSize := utf8.DecodeRuneInString(input[pos:])
			pos += escSize
			if esc != quote && esc != '\\' {
				b.WriteRune('\\')
			}
			b.WriteRune(esc)
		case r == quote:
			return b.String(), pos, nil
		default:
			b.WriteRune(r)
		}
	}

	return "", 0, newError(LexError, input[start:], "unterminated quote")
}
