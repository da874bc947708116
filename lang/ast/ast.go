// Package ast defines the syntax tree produced by the parser.
//
// Every node renders a canonical source form through String, with operator
// grouping made explicit by parentheses. The formatting commands build on
// these forms.
package ast

import (
	"iter"
	"strconv"
	"strings"
)

// Node is implemented by every syntax tree node.
type Node interface {
	// String returns the canonical source form of the node.
	String() string
}

// Statement is implemented by all statement nodes.
type Statement interface {
	Node
	statementNode()
}

// Expression is implemented by all expression nodes.
type Expression interface {
	Node
	expressionNode()
}

// Program is an ordered sequence of top-level statements.
type Program struct {
	Statements []Statement
}

// All returns an iterator over the program's statements.
func (p *Program) All() iter.Seq[Statement] {
	return func(yield func(Statement) bool) {
		for _, stmt := range p.Statements {
			if !yield(stmt) {
				return
			}
		}
	}
}

func (p *Program) String() string {
	fragment := make([]string, 0, len(p.Statements))
	for _, stmt := range p.Statements {
		fragment = append(fragment, stmt.String())
	}

	return strings.Join(fragment, "\n")
}

// LetStatement binds the value of an expression to a name.
type LetStatement struct {
	Name  *Identifier
	Value Expression
}

func (s *LetStatement) statementNode() {}

func (s *LetStatement) String() string {
	return "let " + s.Name.String() + " = " + s.Value.String() + ";"
}

// ReturnStatement terminates the enclosing function or program with the
// value of its expression.
type ReturnStatement struct {
	Value Expression
}

func (s *ReturnStatement) statementNode() {}

func (s *ReturnStatement) String() string {
	return "return " + s.Value.String() + ";"
}

// ExpressionStatement is a bare expression in statement position.
type ExpressionStatement struct {
	Expression Expression
}

func (s *ExpressionStatement) statementNode() {}

func (s *ExpressionStatement) String() string {
	return s.Expression.String()
}

// BlockStatement is a brace-delimited statement sequence.
type BlockStatement struct {
	Statements []Statement
}

func (s *BlockStatement) statementNode() {}

func (s *BlockStatement) String() string {
	fragment := make([]string, 0, len(s.Statements))
	for _, stmt := range s.Statements {
		fragment = append(fragment, stmt.String())
	}

	return strings.Join(fragment, " ")
}

// Identifier is a reference to a named binding.
type Identifier struct {
	Name string
}

func (e *Identifier) expressionNode() {}

func (e *Identifier) String() string { return e.Name }

// IntegerLiteral is a 64-bit integer literal.
type IntegerLiteral struct {
	Value int64
}

func (e *IntegerLiteral) expressionNode() {}

func (e *IntegerLiteral) String() string {
	return strconv.FormatInt(e.Value, 10)
}

// BooleanLiteral is a true or false literal.
type BooleanLiteral struct {
	Value bool
}

func (e *BooleanLiteral) expressionNode() {}

func (e *BooleanLiteral) String() string {
	return strconv.FormatBool(e.Value)
}

// PrefixExpression applies a unary operator to its operand.
type PrefixExpression struct {
	Right Expression
	Op    Prefix
}

func (e *PrefixExpression) expressionNode() {}

func (e *PrefixExpression) String() string {
	return "(" + e.Op.String() + e.Right.String() + ")"
}

// InfixExpression applies a binary operator to two operands.
type InfixExpression struct {
	Left  Expression
	Right Expression
	Op    Infix
}

func (e *InfixExpression) expressionNode() {}

func (e *InfixExpression) String() string {
	return "(" + e.Left.String() + " " + e.Op.String() + " " + e.Right.String() + ")"
}

// IfExpression evaluates one of two blocks depending on its condition.
// Alternative is nil when no else block was written.
type IfExpression struct {
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement
}

func (e *IfExpression) expressionNode() {}

func (e *IfExpression) String() string {
	var b strings.Builder

	b.WriteString("if (")
	b.WriteString(e.Condition.String())
	b.WriteString(") { ")
	b.WriteString(e.Consequence.String())
	b.WriteString(" }")

	if e.Alternative != nil {
		b.WriteString(" else { ")
		b.WriteString(e.Alternative.String())
		b.WriteString(" }")
	}

	return b.String()
}

// FunctionLiteral is an anonymous function expression.
type FunctionLiteral struct {
	Body       *BlockStatement
	Parameters []*Identifier
}

func (e *FunctionLiteral) expressionNode() {}

func (e *FunctionLiteral) String() string {
	param := make([]string, 0, len(e.Parameters))
	for _, p := range e.Parameters {
		param = append(param, p.String())
	}

	return "fn(" + strings.Join(param, ", ") + ") { " + e.Body.String() + " }"
}

// CallExpression invokes the value of the callee expression with an ordered
// argument list.
type CallExpression struct {
	Callee    Expression
	Arguments []Expression
}

func (e *CallExpression) expressionNode() {}

func (e *CallExpression) String() string {
	arg := make([]string, 0, len(e.Arguments))
	for _, a := range e.Arguments {
		arg = append(arg, a.String())
	}

	return e.Callee.String() + "(" + strings.Join(arg, ", ") + ")"
}
