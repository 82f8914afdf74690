package main

import (
	"fmt"
	"os"

	"klurigt/pkg/compiler"
)

const demoSource = `make a: number be 0 STOP
make b: number be 1 STOP
make depth: number be 5 STOP
make count: number be 0 STOP
make fib: number be 0 STOP
keeponswimming(count tinyerthan depth){
    fib be a+b STOP
    a be b STOP
    b be fib STOP
    count be count +1 STOP
} STOPSWIMMING
SCREAM(fib)QUIET
`

func main() {
	src := demoSource
	if len(os.Args) > 1 {
		data, err := os.ReadFile(os.Args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "read error:", err)
			os.Exit(1)
		}
		src = string(data)
	}

	fmt.Printf("Source:\n%s\n", src)

	// Lex
	lx := compiler.NewLexer(src)
	var tokens []compiler.Token
	for tok := range lx.All() {
		tokens = append(tokens, tok)
	}

	fmt.Printf("Tokens (%d)\n", len(tokens))
	for _, tok := range tokens {
		fmt.Println(" ", tok)
	}
	for _, sk := range lx.Skipped() {
		fmt.Printf("  skipped %q at %d:%d\n", sk.Char, sk.Line, sk.Col)
	}
	fmt.Println()

	// Parse
	prog, err := compiler.Parse(tokens, src)
	if err != nil {
		fmt.Fprintln(os.Stderr, compiler.FormatError(err, src))
		os.Exit(1)
	}

	fmt.Println("AST", prog)
	for _, s := range prog.Stmts {
		fmt.Println(" ", s)
	}
	fmt.Println()

	// code generation
	fmt.Println("Generated Rust")
	fmt.Print(compiler.Generate(prog))
}
