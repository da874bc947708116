// Package token defines the lexical tokens of the monkey language and the
// source positions attached to them by the lexer.
package token

import "strconv"

// Kind identifies the lexical class of a token.
type Kind int

// All token kinds produced by the lexer.
const (
	// Illegal represents a character the lexer does not recognize.
	Illegal Kind = iota

	// Eof marks the end of input. The lexer returns it indefinitely once
	// the input is exhausted.
	Eof

	// Ident is an identifier: a letter or underscore followed by any run of
	// letters, digits, and underscores.
	Ident

	// Int is an integer literal.
	Int

	// Bool is a boolean literal, one of the keywords true or false.
	Bool

	// Assign is the = operator.
	Assign

	// Plus is the + operator.
	Plus

	// Minus is the - operator.
	Minus

	// Bang is the ! operator.
	Bang

	// Asterisk is the * operator.
	Asterisk

	// Slash is the / operator.
	Slash

	// Equal is the == operator.
	Equal

	// NotEqual is the != operator.
	NotEqual

	// LessThan is the < operator.
	LessThan

	// LessThanEqual is the <= operator.
	LessThanEqual

	// GreaterThan is the > operator.
	GreaterThan

	// GreaterThanEqual is the >= operator.
	GreaterThanEqual

	// Comma is the , delimiter.
	Comma

	// Semicolon is the ; delimiter.
	Semicolon

	// Lparen is the ( delimiter.
	Lparen

	// Rparen is the ) delimiter.
	Rparen

	// Lbrace is the { delimiter.
	Lbrace

	// Rbrace is the } delimiter.
	Rbrace

	// Function is the fn keyword.
	Function

	// Let is the let keyword.
	Let

	// If is the if keyword.
	If

	// Else is the else keyword.
	Else

	// Return is the return keyword.
	Return
)

// kindNames lists the display name of each Kind, indexed by its value.
var kindNames = [...]string{
	Illegal:          "Illegal",
	Eof:              "Eof",
	Ident:            "Ident",
	Int:              "Int",
	Bool:             "Bool",
	Assign:           "Assign",
	Plus:             "Plus",
	Minus:            "Minus",
	Bang:             "Bang",
	Asterisk:         "Asterisk",
	Slash:            "Slash",
	Equal:            "Equal",
	NotEqual:         "NotEqual",
	LessThan:         "LessThan",
	LessThanEqual:    "LessThanEqual",
	GreaterThan:      "GreaterThan",
	GreaterThanEqual: "GreaterThanEqual",
	Comma:            "Comma",
	Semicolon:        "Semicolon",
	Lparen:           "Lparen",
	Rparen:           "Rparen",
	Lbrace:           "Lbrace",
	Rbrace:           "Rbrace",
	Function:         "Function",
	Let:              "Let",
	If:               "If",
	Else:             "Else",
	Return:           "Return",
}

// String returns the display name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}

	return kindNames[k]
}

// Position locates a token within its source input.
// Offset is a 0-based byte offset; Line and Column are 1-based.
type Position struct {
	Offset int
	Line   int
	Column int
}

// Token is a single lexical token with its source position and, for literal
// kinds, the decoded payload.
type Token struct {
	Pos     Position
	Literal string // exact source text of the token
	Int     int64  // decoded value when Kind is Int
	Kind    Kind
	Bool    bool // decoded value when Kind is Bool
}

// String renders the token for diagnostics. Literal kinds include their
// payload, as in Ident("x"), Int(5), and Bool(true); every other kind
// renders as its bare name.
func (t Token) String() string {
	switch t.Kind {
	case Ident:
		return "Ident(" + strconv.Quote(t.Literal) + ")"

	case Int:
		return "Int(" + strconv.FormatInt(t.Int, 10) + ")"

	case Bool:
		return "Bool(" + strconv.FormatBool(t.Bool) + ")"

	default:
		return t.Kind.String()
	}
}

// keywords maps reserved words to their token kinds. Identifiers that do
// not appear here lex as Ident.
var keywords = map[string]Kind{
	"fn":     Function,
	"let":    Let,
	"if":     If,
	"else":   Else,
	"return": Return,
	"true":   Bool,
	"false":  Bool,
}

// Lookup returns the token kind of a word: the keyword kind when the word
// is reserved, and Ident otherwise.
func Lookup(word string) Kind {
	if kind, ok := keywords[word]; ok {
		return kind
	}

	return Ident
}
