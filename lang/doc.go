// Package lang is the umbrella API for the Monkey interpreter. It wires the
// stage packages (token, lexer, ast, parser, eval) into single-call entry
// points for parsing, evaluation, formatting, and interactive sessions.
//
// # Pipeline
//
// Source text flows through three stages. The lexer turns bytes into
// position-tagged tokens. The parser climbs operator precedence (Pratt
// parsing) to build a syntax tree, accumulating diagnostics instead of
// stopping at the first problem. The evaluator walks the tree against a
// chain of environments, where each function call extends the chain with a
// frame over the environment the function was defined in, giving closures
// for free.
//
// # Grammar
//
// Informal EBNF:
//
//	Program     → Statement* EOF
//	Statement   → 'let' identifier '=' Expression ';'?
//	            | 'return' Expression ';'?
//	            | Expression ';'?
//	Expression  → prefix and infix operator applications, climbing
//	              ==  !=  <  <=  >  >=  +  -  *  /  !x  -x  f(x)
//	            | '(' Expression ')'
//	            | 'if' '(' Expression ')' Block ('else' Block)?
//	            | 'fn' '(' identifier,* ')' Block
//	Block       → '{' Statement* '}'
//
// # Example
//
//	let makeAdder = fn(x) {
//	  fn(y) { x + y }
//	};
//
//	let addTwo = makeAdder(2);
//	addTwo(40)
//
// Everything is an expression: if produces the value of its chosen block,
// function bodies produce their last value, and a bare expression at
// program level is the program's result.
//
// # Values and errors
//
// Runtime errors are values, not Go errors. A type mismatch or unknown
// identifier produces an error value that short-circuits the rest of its
// program, and callers inspect the result to distinguish it from ordinary
// integers and booleans. Only malformed source reports through Go errors,
// as a *ParseError carrying every diagnostic the parser recorded.
//
// # Sessions
//
// A Session keeps one environment alive across inputs, so bindings persist
// between evaluations. The interactive REPL is a thin loop over
// Session.Eval.
package lang
