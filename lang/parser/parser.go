// Package parser builds syntax trees from token streams using Pratt
// (precedence-climbing) expression parsing.
//
// The parser is permissive: a malformed construct aborts only itself,
// recording a diagnostic and resuming at the next token, so one bad
// statement never halts the whole parse. Callers decide whether any
// accumulated diagnostics are fatal.
package parser

import (
	"log/slog"
	"slices"

	"github.com/ardnew/monkey/lang/ast"
	"github.com/ardnew/monkey/lang/lexer"
	"github.com/ardnew/monkey/lang/token"
	"github.com/ardnew/monkey/log"
)

// Precedence orders operator binding strength. It is used only as a
// comparison threshold while parsing and is never stored in the tree.
type Precedence int

const (
	// Lowest is the entry precedence for statements and grouped
	// subexpressions.
	Lowest Precedence = iota

	// Equals binds == and !=.
	Equals

	// LessGreater binds <, <=, >, and >=.
	LessGreater

	// Sum binds + and -.
	Sum

	// Product binds * and /.
	Product

	// Prefix binds unary ! and -.
	Prefix

	// Call binds the ( of a call expression.
	Call
)

// precedenceOf returns the infix binding strength of a token kind. Kinds
// that never appear in infix position bind at Lowest.
func precedenceOf(kind token.Kind) Precedence {
	switch kind {
	case token.Equal, token.NotEqual:
		return Equals

	case token.LessThan, token.LessThanEqual,
		token.GreaterThan, token.GreaterThanEqual:
		return LessGreater

	case token.Plus, token.Minus:
		return Sum

	case token.Asterisk, token.Slash:
		return Product

	case token.Lparen:
		return Call

	default:
		return Lowest
	}
}

// DefaultMaxDepth is the default bound on expression nesting.
// Users may modify this before constructing a Parser to change the default.
var DefaultMaxDepth = 100

// Parser consumes tokens from a lexer through one token of lookahead and
// accumulates diagnostics as it goes.
type Parser struct {
	lexer    *lexer.Lexer
	errors   []*Error
	logger   log.Logger
	cur      token.Token
	peek     token.Token
	depth    int
	maxDepth int
}

// Option configures parser behavior.
type Option func(*Parser)

// WithMaxDepth bounds expression nesting. Exceeding the bound records a
// NestingTooDeep diagnostic instead of exhausting the call stack.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// New creates a Parser over the given lexer and primes its two-token
// lookahead window.
func New(l *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{
		lexer:    l,
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(p)
	}

	p.advance()
	p.advance()

	return p
}

// Errors returns the diagnostics accumulated so far.
func (p *Parser) Errors() []*Error {
	return slices.Clone(p.errors)
}

// advance shifts peek into cur and pulls the next token from the lexer.
func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lexer.Next()
}

// expectPeek advances when peek has the required kind. Otherwise it records
// an UnexpectedToken diagnostic and leaves the window unchanged.
func (p *Parser) expectPeek(kind token.Kind) bool {
	if p.peek.Kind == kind {
		p.advance()

		return true
	}

	p.errors = append(p.errors, &Error{
		Kind:     UnexpectedToken,
		Pos:      p.peek.Pos,
		Expected: kind,
		Got:      p.peek,
	})

	return false
}

// ParseProgram parses statements until end of input and returns them as a
// Program. A failed statement parse produces no node; parsing resumes at
// the next token. Inspect Errors afterward for diagnostics.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for p.cur.Kind != token.Eof {
		if stmt := p.parseStatement(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}

		p.advance()
	}

	p.logger.Trace(
		"program parsed",
		slog.Int("statement_count", len(program.Statements)),
		slog.Int("error_count", len(p.errors)),
	)

	return program
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Kind {
	case token.Let:
		return p.parseLetStatement()

	case token.Return:
		return p.parseReturnStatement()

	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() ast.Statement {
	// A let not followed by an identifier is dropped without a diagnostic;
	// the token after let is reinterpreted as the start of a new statement.
	if p.peek.Kind != token.Ident {
		return nil
	}

	p.advance()

	name := &ast.Identifier{Name: p.cur.Literal}

	if !p.expectPeek(token.Assign) {
		return nil
	}

	p.advance()

	value := p.parseExpression(Lowest)
	if value == nil {
		return nil
	}

	if p.cur.Kind == token.Semicolon {
		p.advance()
	}

	return &ast.LetStatement{Name: name, Value: value}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	p.advance()

	value := p.parseExpression(Lowest)
	if value == nil {
		return nil
	}

	if p.cur.Kind == token.Semicolon {
		p.advance()
	}

	return &ast.ReturnStatement{Value: value}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	expr := p.parseExpression(Lowest)
	if expr == nil {
		return nil
	}

	if p.peek.Kind == token.Semicolon {
		p.advance()
	}

	return &ast.ExpressionStatement{Expression: expr}
}

// parseBlockStatement parses statements until } or end of input. An
// unterminated block at end of input is accepted silently.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	p.advance()

	block := &ast.BlockStatement{}

	for p.cur.Kind != token.Rbrace && p.cur.Kind != token.Eof {
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}

		p.advance()
	}

	return block
}

// parseExpression is the Pratt core: a prefix step selects behavior by
// cur's kind, then the infix loop folds operators into the left operand
// while peek binds more strongly than min. Binary parselets recurse at
// their own precedence, which together with the strict comparison makes
// every binary operator left-associative.
func (p *Parser) parseExpression(min Precedence) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > p.maxDepth {
		p.errors = append(p.errors, &Error{
			Kind:  NestingTooDeep,
			Pos:   p.cur.Pos,
			Depth: p.maxDepth,
		})

		return nil
	}

	var left ast.Expression

	switch p.cur.Kind {
	case token.Ident:
		left = &ast.Identifier{Name: p.cur.Literal}

	case token.Int:
		left = &ast.IntegerLiteral{Value: p.cur.Int}

	case token.Bool:
		left = &ast.BooleanLiteral{Value: p.cur.Bool}

	case token.Bang, token.Minus:
		left = p.parsePrefixExpression()

	case token.Lparen:
		left = p.parseGroupedExpression()

	case token.If:
		left = p.parseIfExpression()

	case token.Function:
		left = p.parseFunctionLiteral()

	default:
		// No prefix parselet for this token: produce nothing, silently.
		return nil
	}

	for p.peek.Kind != token.Semicolon && min < precedenceOf(p.peek.Kind) {
		if left == nil {
			return nil
		}

		switch p.peek.Kind {
		case token.Plus, token.Minus, token.Asterisk, token.Slash,
			token.Equal, token.NotEqual,
			token.LessThan, token.LessThanEqual,
			token.GreaterThan, token.GreaterThanEqual:
			p.advance()
			left = p.parseInfixExpression(left)

		case token.Lparen:
			p.advance()
			left = p.parseCallExpression(left)

		default:
			return left
		}
	}

	return left
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	var op ast.Prefix

	switch p.cur.Kind {
	case token.Bang:
		op = ast.Not

	case token.Minus:
		op = ast.Negative

	default:
		return nil
	}

	p.advance()

	right := p.parseExpression(Prefix)
	if right == nil {
		return nil
	}

	return &ast.PrefixExpression{Op: op, Right: right}
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	var op ast.Infix

	switch p.cur.Kind {
	case token.Plus:
		op = ast.Add

	case token.Minus:
		op = ast.Subtract

	case token.Asterisk:
		op = ast.Multiply

	case token.Slash:
		op = ast.Divide

	case token.Equal:
		op = ast.Equal

	case token.NotEqual:
		op = ast.NotEqual

	case token.LessThan:
		op = ast.LessThan

	case token.LessThanEqual:
		op = ast.LessThanEqual

	case token.GreaterThan:
		op = ast.GreaterThan

	case token.GreaterThanEqual:
		op = ast.GreaterThanEqual

	default:
		return nil
	}

	prec := precedenceOf(p.cur.Kind)

	p.advance()

	right := p.parseExpression(prec)
	if right == nil {
		return nil
	}

	return &ast.InfixExpression{Op: op, Left: left, Right: right}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.advance()

	expr := p.parseExpression(Lowest)

	if !p.expectPeek(token.Rparen) {
		return nil
	}

	return expr
}

func (p *Parser) parseIfExpression() ast.Expression {
	if !p.expectPeek(token.Lparen) {
		return nil
	}

	p.advance()

	condition := p.parseExpression(Lowest)
	if condition == nil {
		return nil
	}

	if !p.expectPeek(token.Rparen) || !p.expectPeek(token.Lbrace) {
		return nil
	}

	consequence := p.parseBlockStatement()

	var alternative *ast.BlockStatement

	if p.peek.Kind == token.Else {
		p.advance()

		if !p.expectPeek(token.Lbrace) {
			return nil
		}

		alternative = p.parseBlockStatement()
	}

	return &ast.IfExpression{
		Condition:   condition,
		Consequence: consequence,
		Alternative: alternative,
	}
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	if !p.expectPeek(token.Lparen) {
		return nil
	}

	params, ok := p.parseFunctionParameters()
	if !ok {
		return nil
	}

	if !p.expectPeek(token.Lbrace) {
		return nil
	}

	return &ast.FunctionLiteral{
		Parameters: params,
		Body:       p.parseBlockStatement(),
	}
}

func (p *Parser) parseFunctionParameters() ([]*ast.Identifier, bool) {
	params := []*ast.Identifier{}

	if p.peek.Kind == token.Rparen {
		p.advance()

		return params, true
	}

	p.advance()

	if p.cur.Kind != token.Ident {
		return nil, false
	}

	params = append(params, &ast.Identifier{Name: p.cur.Literal})

	for p.peek.Kind == token.Comma {
		p.advance()
		p.advance()

		if p.cur.Kind != token.Ident {
			return nil, false
		}

		params = append(params, &ast.Identifier{Name: p.cur.Literal})
	}

	if !p.expectPeek(token.Rparen) {
		return nil, false
	}

	return params, true
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	args, ok := p.parseExpressionList(token.Rparen)
	if !ok {
		return nil
	}

	return &ast.CallExpression{Callee: callee, Arguments: args}
}

// parseExpressionList parses a comma-separated expression list terminated
// by end. A terminator immediately after the opening delimiter yields an
// empty list.
func (p *Parser) parseExpressionList(end token.Kind) ([]ast.Expression, bool) {
	list := []ast.Expression{}

	if p.peek.Kind == end {
		p.advance()

		return list, true
	}

	p.advance()

	expr := p.parseExpression(Lowest)
	if expr == nil {
		return nil, false
	}

	list = append(list, expr)

	for p.peek.Kind == token.Comma {
		p.advance()
		p.advance()

		expr := p.parseExpression(Lowest)
		if expr == nil {
			return nil, false
		}

		list = append(list, expr)
	}

	if !p.expectPeek(end) {
		return nil, false
	}

	return list, true
}
