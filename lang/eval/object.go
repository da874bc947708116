package eval

import (
	"strconv"
	"strings"

	"github.com/ardnew/monkey/lang/ast"
)

// Object is a runtime value produced by the evaluator.
//
// ReturnValue and Error are control-flow carriers rather than ordinary
// values: they exist only to ride the recursive evaluation results upward,
// and user programs cannot store or inspect them.
type Object interface {
	// String returns the value's display form.
	String() string

	object()
}

// Shared instances for values with no per-instance state. Evaluation
// produces Boolean and Null results exclusively through these, so comparing
// an Object against them by identity is reliable.
var (
	// True is the boolean true value.
	True = &Boolean{Value: true}

	// False is the boolean false value.
	False = &Boolean{Value: false}

	// Nil is the null value.
	Nil = &Null{}
)

// boolean maps a native bool onto the shared Boolean instances.
func boolean(value bool) *Boolean {
	if value {
		return True
	}

	return False
}

// Integer is a 64-bit integer value.
type Integer struct {
	Value int64
}

func (o *Integer) object() {}

func (o *Integer) String() string {
	return strconv.FormatInt(o.Value, 10)
}

// Boolean is a true or false value.
type Boolean struct {
	Value bool
}

func (o *Boolean) object() {}

func (o *Boolean) String() string {
	return strconv.FormatBool(o.Value)
}

// Null is the absence of a value.
type Null struct{}

func (o *Null) object() {}

func (o *Null) String() string { return "null" }

// Function is a function value: parameters, a body, and the environment
// captured by reference at the point of definition. The captured
// environment is what makes closures work; it may be shared with other
// Function values and live call frames.
type Function struct {
	Env        *Environment
	Body       *ast.BlockStatement
	Parameters []*ast.Identifier
}

func (o *Function) object() {}

func (o *Function) String() string {
	param := make([]string, 0, len(o.Parameters))
	for _, p := range o.Parameters {
		param = append(param, p.Name)
	}

	return "fn(" + strings.Join(param, ", ") + ") { ... }"
}

// ReturnValue wraps the value of a return statement while it propagates
// out of nested blocks. Only program-level evaluation unwraps it.
type ReturnValue struct {
	Value Object
}

func (o *ReturnValue) object() {}

func (o *ReturnValue) String() string {
	return o.Value.String()
}

// Error is a runtime error value. Errors propagate by the same
// short-circuiting block walk as ReturnValue and become the final result
// of evaluation; the evaluator has no recovery mechanism.
type Error struct {
	Message string
}

func (o *Error) object() {}

func (o *Error) String() string { return o.Message }

// isError reports whether the object is a runtime error value.
func isError(obj Object) bool {
	_, ok := obj.(*Error)

	return ok
}
