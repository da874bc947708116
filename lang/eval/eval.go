// Package eval walks syntax trees against chained environments, producing
// runtime values.
//
// Early return and runtime errors are not Go control flow: they are
// ordinary Object values (ReturnValue, Error) that short-circuit the
// statement walk at each block boundary and ride the recursive results
// upward. Only program-level evaluation unwraps a ReturnValue to its inner
// value; nested blocks pass it through wrapped, which is what lets a return
// buried in nested ifs terminate the whole enclosing function.
package eval

import (
	"log/slog"
	"strconv"

	"github.com/ardnew/monkey/lang/ast"
	"github.com/ardnew/monkey/log"
)

// DefaultMaxDepth is the default bound on function call nesting.
// Users may modify this before constructing an Evaluator to change the
// default.
var DefaultMaxDepth = 1000

// Evaluator evaluates syntax trees against an active Environment. The
// active environment is swapped out for the duration of each function call
// and unconditionally restored afterward; everything else is a pure
// recursive function of the node and that environment.
type Evaluator struct {
	env      *Environment
	logger   log.Logger
	depth    int
	maxDepth int
}

// Option configures evaluator behavior.
type Option func(*Evaluator)

// WithMaxDepth bounds function call nesting. Exceeding the bound yields a
// runtime error value instead of exhausting the call stack.
func WithMaxDepth(depth int) Option {
	return func(ev *Evaluator) {
		ev.maxDepth = depth
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(ev *Evaluator) {
		ev.logger = logger
	}
}

// New creates an Evaluator whose active environment is env.
func New(env *Environment, opts ...Option) *Evaluator {
	ev := &Evaluator{
		env:      env,
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(ev)
	}

	return ev
}

// Environment returns the evaluator's active environment.
func (ev *Evaluator) Environment() *Environment {
	return ev.env
}

// Eval evaluates a program and returns its final value, or nil when the
// program produces no value. A ReturnValue reaching this level is unwrapped
// to its inner value; an Error becomes the final result as is.
func (ev *Evaluator) Eval(program *ast.Program) Object {
	var result Object

	for _, stmt := range program.Statements {
		obj := ev.evalStatement(stmt)

		switch obj := obj.(type) {
		case *ReturnValue:
			return obj.Value

		case *Error:
			return obj

		default:
			result = obj
		}
	}

	ev.logger.Trace(
		"program evaluated",
		slog.Int("statement_count", len(program.Statements)),
		slog.Bool("has_value", result != nil),
	)

	return result
}

// evalBlockStatement walks statements in order, tracking the last produced
// value. A ReturnValue or Error stops the walk immediately and propagates
// unchanged: unlike Eval, a ReturnValue stays wrapped here.
func (ev *Evaluator) evalBlockStatement(block *ast.BlockStatement) Object {
	var result Object

	for _, stmt := range block.Statements {
		obj := ev.evalStatement(stmt)

		switch obj.(type) {
		case *ReturnValue, *Error:
			return obj

		default:
			result = obj
		}
	}

	return result
}

func (ev *Evaluator) evalStatement(statement ast.Statement) Object {
	switch stmt := statement.(type) {
	case *ast.LetStatement:
		value := ev.evalExpression(stmt.Value)
		if value == nil {
			return nil
		}

		if isError(value) {
			return value
		}

		ev.env.Set(stmt.Name.Name, value)

		return nil

	case *ast.ReturnStatement:
		value := ev.evalExpression(stmt.Value)
		if value == nil {
			return nil
		}

		if isError(value) {
			return value
		}

		return &ReturnValue{Value: value}

	case *ast.ExpressionStatement:
		return ev.evalExpression(stmt.Expression)

	default:
		return nil
	}
}

func (ev *Evaluator) evalExpression(expression ast.Expression) Object {
	switch expr := expression.(type) {
	case *ast.Identifier:
		return ev.evalIdentifier(expr)

	case *ast.IntegerLiteral:
		return &Integer{Value: expr.Value}

	case *ast.BooleanLiteral:
		return boolean(expr.Value)

	case *ast.PrefixExpression:
		right := ev.evalExpression(expr.Right)
		if right == nil {
			return nil
		}

		return evalPrefixExpression(expr.Op, right)

	case *ast.InfixExpression:
		left := ev.evalExpression(expr.Left)
		right := ev.evalExpression(expr.Right)

		if left == nil || right == nil {
			return nil
		}

		return evalInfixExpression(expr.Op, left, right)

	case *ast.IfExpression:
		return ev.evalIfExpression(expr)

	case *ast.FunctionLiteral:
		// The active environment is captured by reference, not copied.
		return &Function{
			Parameters: expr.Parameters,
			Body:       expr.Body,
			Env:        ev.env,
		}

	case *ast.CallExpression:
		return ev.evalCallExpression(expr)

	default:
		return nil
	}
}

func (ev *Evaluator) evalIdentifier(ident *ast.Identifier) Object {
	if value, ok := ev.env.Get(ident.Name); ok {
		return value
	}

	return &Error{Message: "identifier not found: " + ident.Name}
}

// isTruthy reports the language's truthiness rule: Null and false are
// falsy, every other value (including 0) is truthy.
func isTruthy(obj Object) bool {
	switch obj {
	case Nil, False:
		return false

	default:
		return true
	}
}

func evalPrefixExpression(op ast.Prefix, right Object) Object {
	switch op {
	case ast.Not:
		return evalNotOperator(right)

	case ast.Negative:
		return evalNegativeOperator(right)

	default:
		return &Error{Message: "unknown operator: " + op.String() + right.String()}
	}
}

// evalNotOperator negates truthiness and always yields a Boolean.
func evalNotOperator(right Object) Object {
	switch right {
	case True:
		return False

	case False:
		return True

	case Nil:
		return True

	default:
		return False
	}
}

func evalNegativeOperator(right Object) Object {
	if value, ok := right.(*Integer); ok {
		return &Integer{Value: -value.Value}
	}

	return &Error{Message: "unknown operator: -" + right.String()}
}

// evalInfixExpression dispatches on the left operand's runtime type.
// Integer pairs support the full operator set, boolean pairs only equality
// comparison, and every other left type is an unknown-operator error.
// Mismatched pairs with an integer or boolean on the left are type
// mismatches.
func evalInfixExpression(op ast.Infix, left, right Object) Object {
	switch l := left.(type) {
	case *Integer:
		if r, ok := right.(*Integer); ok {
			return evalIntegerInfix(op, l.Value, r.Value)
		}

		return &Error{
			Message: "type mismatch: " +
				left.String() + " " + op.String() + " " + right.String(),
		}

	case *Boolean:
		if r, ok := right.(*Boolean); ok {
			return evalBooleanInfix(op, l.Value, r.Value)
		}

		return &Error{
			Message: "type mismatch: " +
				left.String() + " " + op.String() + " " + right.String(),
		}

	default:
		return &Error{
			Message: "unknown operator: " +
				left.String() + " " + op.String() + " " + right.String(),
		}
	}
}

func evalIntegerInfix(op ast.Infix, left, right int64) Object {
	switch op {
	case ast.Add:
		return &Integer{Value: left + right}

	case ast.Subtract:
		return &Integer{Value: left - right}

	case ast.Multiply:
		return &Integer{Value: left * right}

	case ast.Divide:
		if right == 0 {
			return &Error{
				Message: "division by zero: " +
					strconv.FormatInt(left, 10) + " / " +
					strconv.FormatInt(right, 10),
			}
		}

		return &Integer{Value: left / right}

	case ast.Equal:
		return boolean(left == right)

	case ast.NotEqual:
		return boolean(left != right)

	case ast.LessThan:
		return boolean(left < right)

	case ast.LessThanEqual:
		return boolean(left <= right)

	case ast.GreaterThan:
		return boolean(left > right)

	case ast.GreaterThanEqual:
		return boolean(left >= right)

	default:
		return &Error{
			Message: "unknown operator: " +
				strconv.FormatInt(left, 10) + " " + op.String() + " " +
				strconv.FormatInt(right, 10),
		}
	}
}

func evalBooleanInfix(op ast.Infix, left, right bool) Object {
	switch op {
	case ast.Equal:
		return boolean(left == right)

	case ast.NotEqual:
		return boolean(left != right)

	default:
		return &Error{
			Message: "unknown operator: " +
				strconv.FormatBool(left) + " " + op.String() + " " +
				strconv.FormatBool(right),
		}
	}
}

// evalIfExpression produces the consequence block's value when the
// condition is truthy, the alternative's when one exists, and nothing at
// all otherwise.
func (ev *Evaluator) evalIfExpression(expr *ast.IfExpression) Object {
	condition := ev.evalExpression(expr.Condition)
	if condition == nil {
		return nil
	}

	switch {
	case isTruthy(condition):
		return ev.evalBlockStatement(expr.Consequence)

	case expr.Alternative != nil:
		return ev.evalBlockStatement(expr.Alternative)

	default:
		return nil
	}
}

// evalCallExpression evaluates the arguments against the caller's
// environment first, in order, then the callee. The call frame is a child
// of the function's captured environment, not of the caller's, which is
// what makes lexical scoping correct.
func (ev *Evaluator) evalCallExpression(call *ast.CallExpression) Object {
	args := make([]Object, 0, len(call.Arguments))

	for _, argument := range call.Arguments {
		arg := ev.evalExpression(argument)
		if arg == nil {
			arg = Nil
		}

		args = append(args, arg)
	}

	callee := ev.evalExpression(call.Callee)
	if callee == nil {
		return Nil
	}

	fn, ok := callee.(*Function)
	if !ok {
		return &Error{Message: callee.String() + " is not valid function"}
	}

	if len(fn.Parameters) != len(args) {
		return &Error{
			Message: "wrong number of arguments: " +
				strconv.Itoa(len(fn.Parameters)) + " expected but " +
				strconv.Itoa(len(args)) + " given",
		}
	}

	if ev.depth >= ev.maxDepth {
		return &Error{
			Message: "call depth exceeds " + strconv.Itoa(ev.maxDepth),
		}
	}

	scoped := NewEnclosedEnvironment(fn.Env)
	for i, param := range fn.Parameters {
		scoped.Set(param.Name, args[i])
	}

	saved := ev.env
	ev.env = scoped
	ev.depth++

	// Restore on every exit path.
	defer func() {
		ev.depth--
		ev.env = saved
	}()

	result := ev.evalBlockStatement(fn.Body)
	if result == nil {
		return Nil
	}

	return result
}
