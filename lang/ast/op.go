package ast

// Prefix identifies a unary operator.
type Prefix int

const (
	// Not is logical negation (!).
	Not Prefix = iota

	// Negative is arithmetic negation (-).
	Negative
)

// String returns the operator's source form.
func (p Prefix) String() string {
	switch p {
	case Not:
		return "!"

	case Negative:
		return "-"

	default:
		return "?"
	}
}

// Infix identifies a binary operator.
type Infix int

const (
	// Add is the + operator.
	Add Infix = iota

	// Subtract is the - operator.
	Subtract

	// Multiply is the * operator.
	Multiply

	// Divide is the / operator.
	Divide

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
)

// String returns the operator's source form.
func (i Infix) String() string {
	switch i {
	case Add:
		return "+"

	case Subtract:
		return "-"

	case Multiply:
		return "*"

	case Divide:
		return "/"

	case Equal:
		return "=="

	case NotEqual:
		return "!="

	case LessThan:
		return "<"

	case LessThanEqual:
		return "<="

	case GreaterThan:
		return ">"

	case GreaterThanEqual:
		return ">="

	default:
		return "?"
	}
}
