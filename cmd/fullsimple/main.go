// Command fullsimple is the interpreter's CLI driver: it reads a term from
// a file, stdin, or an inline flag, parses and type-checks it, evaluates it,
// and prints the rendered result alongside its static type. It is the only
// package in this module that does I/O or calls os.Exit.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mistlang/fullsimple/interp"
	"github.com/mistlang/fullsimple/parser"
	"github.com/sanity-io/litter"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fullsimple", flag.ContinueOnError)
	fs.SetOutput(stderr)
	expr := fs.String("e", "", "evaluate the given term instead of reading a file/stdin")
	debug := fs.Bool("debug", false, "dump the parsed term before type-checking and evaluating")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: fullsimple [-e term] [-debug] [file]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	source, exitCode := readSource(*expr, fs.Args(), stdin, stderr)
	if exitCode != 0 {
		return exitCode
	}

	if *debug {
		term, err := parser.Parse(source)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprintln(stderr, litter.Sdump(term))
	}

	rendered, typ, err := interp.Interpret(source)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	fmt.Fprintf(stdout, "%s : %s\n", rendered, typ)
	return 0
}

func readSource(expr string, fileArgs []string, stdin io.Reader, stderr io.Writer) (string, int) {
	if expr != "" {
		return expr, 0
	}
	if len(fileArgs) > 0 {
		data, err := os.ReadFile(fileArgs[0])
		if err != nil {
			fmt.Fprintf(stderr, "cannot read %s: %s\n", fileArgs[0], err)
			return "", 1
		}
		return string(data), 0
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		fmt.Fprintf(stderr, "cannot read stdin: %s\n", err)
		return "", 1
	}
	if len(data) == 0 {
		fmt.Fprintln(stderr, "usage: fullsimple [-e term] [-debug] [file]")
		return "", 2
	}
	return string(data), 0
}
