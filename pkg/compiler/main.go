// Package compiler provides the klurigt lexer, parser, and code generator
// that translate klurigt programs into Rust source.
//
// Pipeline: klurigt source → Lex → Parse → Generate → Rust source text
package compiler
