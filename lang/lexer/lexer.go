// Package lexer converts monkey source text into a stream of tokens.
//
// A Lexer produces tokens lazily, one per call to Next, and is not
// restartable: construct a new Lexer to scan the same input again. Once the
// input is exhausted every subsequent call returns an Eof token.
package lexer

import (
	"iter"
	"strconv"

	"github.com/ardnew/monkey/lang/token"
)

// Lexer scans an immutable source buffer.
type Lexer struct {
	input  string
	pos    int  // index of ch
	next   int  // index after ch
	line   int  // 1-based line of ch
	column int  // 1-based column of ch
	ch     byte // byte under examination, 0 at end of input
}

// New creates a Lexer over the given source text.
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.read()

	return l
}

// Next scans and returns the next token. After the input is exhausted it
// returns Eof indefinitely.
func (l *Lexer) Next() token.Token {
	l.skipWhitespace()

	pos := token.Position{Offset: l.pos, Line: l.line, Column: l.column}

	switch l.ch {
	case 0:
		return token.Token{Kind: token.Eof, Pos: pos}

	case '=':
		if l.peek() == '=' {
			return l.two(token.Equal, pos)
		}

		return l.one(token.Assign, pos)

	case '!':
		if l.peek() == '=' {
			return l.two(token.NotEqual, pos)
		}

		return l.one(token.Bang, pos)

	case '<':
		if l.peek() == '=' {
			return l.two(token.LessThanEqual, pos)
		}

		return l.one(token.LessThan, pos)

	case '>':
		if l.peek() == '=' {
			return l.two(token.GreaterThanEqual, pos)
		}

		return l.one(token.GreaterThan, pos)

	case '+':
		return l.one(token.Plus, pos)

	case '-':
		return l.one(token.Minus, pos)

	case '*':
		return l.one(token.Asterisk, pos)

	case '/':
		return l.one(token.Slash, pos)

	case ',':
		return l.one(token.Comma, pos)

	case ';':
		return l.one(token.Semicolon, pos)

	case '(':
		return l.one(token.Lparen, pos)

	case ')':
		return l.one(token.Rparen, pos)

	case '{':
		return l.one(token.Lbrace, pos)

	case '}':
		return l.one(token.Rbrace, pos)
	}

	switch {
	case isLetter(l.ch):
		word := l.readWord()
		tok := token.Token{Kind: token.Lookup(word), Literal: word, Pos: pos}

		if tok.Kind == token.Bool {
			tok.Bool = word == "true"
		}

		return tok

	case isDigit(l.ch):
		digits := l.readDigits()
		// Overflow saturates at the int64 limits per strconv.ParseInt.
		value, _ := strconv.ParseInt(digits, 10, 64)

		return token.Token{
			Kind:    token.Int,
			Literal: digits,
			Int:     value,
			Pos:     pos,
		}

	default:
		return l.one(token.Illegal, pos)
	}
}

// All returns an iterator over the remaining tokens. The final Eof token is
// yielded before the sequence ends.
func (l *Lexer) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			tok := l.Next()
			if !yield(tok) || tok.Kind == token.Eof {
				return
			}
		}
	}
}

// one emits a single-character token and advances past it.
func (l *Lexer) one(kind token.Kind, pos token.Position) token.Token {
	lit := string(l.ch)
	l.read()

	return token.Token{Kind: kind, Literal: lit, Pos: pos}
}

// two emits a two-character token and advances past both characters.
func (l *Lexer) two(kind token.Kind, pos token.Position) token.Token {
	lit := string(l.ch)
	l.read()
	lit += string(l.ch)
	l.read()

	return token.Token{Kind: kind, Literal: lit, Pos: pos}
}

// read advances to the next input byte, updating line and column counters.
func (l *Lexer) read() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	l.pos = l.next

	if l.next >= len(l.input) {
		l.ch = 0
		l.column++

		return
	}

	l.ch = l.input[l.next]
	l.next++
	l.column++
}

// peek returns the byte after ch without advancing.
func (l *Lexer) peek() byte {
	if l.next >= len(l.input) {
		return 0
	}

	return l.input[l.next]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.read()
	}
}

// readWord consumes a maximal run of identifier characters.
func (l *Lexer) readWord() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.read()
	}

	return l.input[start:l.pos]
}

// readDigits consumes a maximal run of decimal digits.
func (l *Lexer) readDigits() string {
	start := l.pos
	for isDigit(l.ch) {
		l.read()
	}

	return l.input[start:l.pos]
}

func isLetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
