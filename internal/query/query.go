// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package query

import "fmt"

// expr is a node of a compiled expression tree. The set of implementations
// is closed: andExpr, orExpr, notExpr, groupExpr and *attribute.
type expr interface {
	isExpr()
	String() string
}

type andExpr struct{ left, right expr }

type orExpr struct{ left, right expr }

type notExpr struct{ operand expr }

// groupExpr records explicit parentheses. It does not change evaluation.
type groupExpr struct{ inner expr }

func (andExpr) isExpr()   {}
func (orExpr) isExpr()    {}
func (notExpr) isExpr()   {}
func (groupExpr) isExpr() {}

func (e andExpr) String() string   { return fmt.Sprintf("and(%s, %s)", e.left, e.right) }
func (e orExpr) String() string    { return fmt.Sprintf("or(%s, %s)", e.left, e.right) }
func (e notExpr) String() string   { return fmt.Sprintf("not(%s)", e.operand) }
func (e groupExpr) String() string { return fmt.Sprintf("(%s)", e.inner) }

// Query is a compiled filter. It is immutable and safe to share between
// goroutines; a new edit produces a new Query.
type Query struct {
	root    expr
	text    string
	options Options
}

// Text returns the filter text the Query was compiled from.
func (q *Query) Text() string { return q.text }

// Options returns the options captured at compile time.
func (q *Query) Options() Options { return q.options }

// String renders the tree in a canonical form. Byte-identical input with
// identical options always renders the same.
func (q *Query) String() string {
	if q == nil || q.root == nil {
		return "empty"
	}
	return q.root.String()
}

// MatchAll is a Query that accepts every record.
var MatchAll = &Query{root: &attribute{kind: Empty}}
