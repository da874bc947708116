package lang

import (
	"encoding/json"

	"github.com/ardnew/monkey/lang/ast"
)

// MarshalJSON returns the program encoded as JSON.
func MarshalJSON(program *ast.Program) ([]byte, error) {
	return json.Marshal(ProgramToMap(program))
}

// ProgramToMap converts the program to a native Go map structure. Every
// node becomes a map carrying a "kind" discriminator, except bare
// expression statements, which flatten to their expression.
func ProgramToMap(program *ast.Program) map[string]any {
	statements := make([]any, 0, len(program.Statements))
	for _, stmt := range program.Statements {
		statements = append(statements, NodeToMap(stmt))
	}

	return map[string]any{
		"statements": statements,
	}
}

// NodeToMap converts a single syntax node to a native Go value.
func NodeToMap(node ast.Node) any {
	switch n := node.(type) {
	case *ast.LetStatement:
		return map[string]any{
			"kind":  "let",
			"name":  n.Name.Name,
			"value": NodeToMap(n.Value),
		}

	case *ast.ReturnStatement:
		return map[string]any{
			"kind":  "return",
			"value": NodeToMap(n.Value),
		}

	case *ast.ExpressionStatement:
		// Flatten: a bare expression statement is its expression
		return NodeToMap(n.Expression)

	case *ast.BlockStatement:
		statements := make([]any, 0, len(n.Statements))
		for _, stmt := range n.Statements {
			statements = append(statements, NodeToMap(stmt))
		}

		return map[string]any{
			"kind":       "block",
			"statements": statements,
		}

	case *ast.Identifier:
		return map[string]any{
			"kind": "ident",
			"name": n.Name,
		}

	case *ast.IntegerLiteral:
		return map[string]any{
			"kind":  "int",
			"value": n.Value,
		}

	case *ast.BooleanLiteral:
		return map[string]any{
			"kind":  "bool",
			"value": n.Value,
		}

	case *ast.PrefixExpression:
		return map[string]any{
			"kind":  "prefix",
			"op":    n.Op.String(),
			"right": NodeToMap(n.Right),
		}

	case *ast.InfixExpression:
		return map[string]any{
			"kind":  "infix",
			"op":    n.Op.String(),
			"left":  NodeToMap(n.Left),
			"right": NodeToMap(n.Right),
		}

	case *ast.IfExpression:
		result := map[string]any{
			"kind":        "if",
			"condition":   NodeToMap(n.Condition),
			"consequence": NodeToMap(n.Consequence),
		}

		if n.Alternative != nil {
			result["alternative"] = NodeToMap(n.Alternative)
		}

		return result

	case *ast.FunctionLiteral:
		parameters := make([]any, 0, len(n.Parameters))
		for _, p := range n.Parameters {
			parameters = append(parameters, p.Name)
		}

		return map[string]any{
			"kind":       "fn",
			"parameters": parameters,
			"body":       NodeToMap(n.Body),
		}

	case *ast.CallExpression:
		arguments := make([]any, 0, len(n.Arguments))
		for _, arg := range n.Arguments {
			arguments = append(arguments, NodeToMap(arg))
		}

		return map[string]any{
			"kind":      "call",
			"callee":    NodeToMap(n.Callee),
			"arguments": arguments,
		}

	default:
		return nil
	}
}
