// Package calc is a small arithmetic language parsed from a token stream.
//
//	let rate = 1.5;
//	let base = 40;
//	base * rate - (base % 7);
//
// Statements end with ';' (optional after the last one). Expressions support
// + - * / %, unary minus and parentheses over integer and float literals.
// Evaluation happens after parsing; it reports division by zero, integer
// overflow and undefined names.
package calc
