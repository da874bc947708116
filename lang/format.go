package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/monkey/lang/ast"
	"github.com/ardnew/monkey/lang/lexer"
)

// FormatSource writes the program in canonical source syntax to the writer,
// one top-level statement per line, with operator grouping made explicit by
// parentheses.
func FormatSource(_ context.Context, w io.Writer, program *ast.Program) error {
	for _, stmt := range program.Statements {
		if _, err := fmt.Fprintln(w, stmt.String()); err != nil {
			return err
		}
	}

	return nil
}

// FormatTokens writes the token stream of source to the writer, one token
// per line with its position.
func FormatTokens(_ context.Context, w io.Writer, source string) error {
	for tok := range lexer.New(source).All() {
		_, err := fmt.Fprintf(w, "%d:%d\t%s\n", tok.Pos.Line, tok.Pos.Column, tok)
		if err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes the program as JSON to the writer.
func FormatJSON(
	_ context.Context,
	w io.Writer,
	program *ast.Program,
	indent int,
) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(
			ProgramToMap(program), "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(ProgramToMap(program))
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the program as YAML to the writer.
func FormatYAML(
	ctx context.Context,
	w io.Writer,
	program *ast.Program,
	indent int,
) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	// Marshal to YAML
	yamlData, err := yaml.MarshalContext(
		ctx,
		ProgramToMap(program),
		opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// PrintTree writes an indented structural view of the program to the
// writer, one labeled node per line.
func PrintTree(w io.Writer, program *ast.Program) {
	for _, stmt := range program.Statements {
		printNode(w, stmt, 0)
	}
}

func writer(w io.Writer) func(eol string, item ...string) {
	return func(eol string, item ...string) {
		_, err := io.WriteString(w, strings.Join(item, ": ")+eol)
		if err != nil {
			panic(err)
		}
	}
}

// printNode writes one node and its children at the given indent level.
func printNode(w io.Writer, node ast.Node, indent int) {
	prefix := strings.Repeat("  ", indent)
	put := writer(w)

	switch n := node.(type) {
	case *ast.LetStatement:
		put("\n", prefix+"Let", n.Name.Name)
		printNode(w, n.Value, indent+1)

	case *ast.ReturnStatement:
		put("\n", prefix+"Return")
		printNode(w, n.Value, indent+1)

	case *ast.ExpressionStatement:
		// A bare expression prints as the expression itself
		printNode(w, n.Expression, indent)

	case *ast.BlockStatement:
		if len(n.Statements) == 0 {
			put("\n", prefix+"(empty)")

			return
		}

		for _, stmt := range n.Statements {
			printNode(w, stmt, indent)
		}

	case *ast.Identifier:
		put("\n", prefix+"Ident", n.Name)

	case *ast.IntegerLiteral:
		put("\n", prefix+"Int", strconv.FormatInt(n.Value, 10))

	case *ast.BooleanLiteral:
		put("\n", prefix+"Bool", strconv.FormatBool(n.Value))

	case *ast.PrefixExpression:
		put("\n", prefix+"Prefix", n.Op.String())
		printNode(w, n.Right, indent+1)

	case *ast.InfixExpression:
		put("\n", prefix+"Infix", n.Op.String())
		printNode(w, n.Left, indent+1)
		printNode(w, n.Right, indent+1)

	case *ast.IfExpression:
		put("\n", prefix+"If")
		put(":\n", prefix+"  Condition")
		printNode(w, n.Condition, indent+2)
		put(":\n", prefix+"  Consequence")
		printNode(w, n.Consequence, indent+2)

		if n.Alternative != nil {
			put(":\n", prefix+"  Alternative")
			printNode(w, n.Alternative, indent+2)
		}

	case *ast.FunctionLiteral:
		if len(n.Parameters) > 0 {
			param := make([]string, 0, len(n.Parameters))
			for _, p := range n.Parameters {
				param = append(param, p.Name)
			}

			put("\n", prefix+"Fn", strings.Join(param, ", "))
		} else {
			put("\n", prefix+"Fn")
		}

		put(":\n", prefix+"  Body")
		printNode(w, n.Body, indent+2)

	case *ast.CallExpression:
		put("\n", prefix+"Call")
		put(":\n", prefix+"  Callee")
		printNode(w, n.Callee, indent+2)

		if len(n.Arguments) > 0 {
			put(":\n", prefix+"  Arguments")

			for _, arg := range n.Arguments {
				printNode(w, arg, indent+2)
			}
		}

	default:
		put("\n", prefix+"(unknown)")
	}
}
