package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wrenbot/wren/backend/internal/engine"
)

func main() {
	debug := flag.Bool("debug", false, "print tokens, postfix form, and reduction steps")
	flag.Parse()

	// Expressions given as arguments are evaluated once; otherwise read
	// lines from stdin.
	if args := flag.Args(); len(args) > 0 {
		evaluate(strings.Join(args, " "), *debug)
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
		case "exit", "quit":
			return
		default:
			evaluate(line, *debug)
		}
		fmt.Print("> ")
	}
}

func evaluate(source string, debug bool) {
	seq, tokens, err := engine.Parse(source)
	if debug && tokens != nil {
		parts := make([]string, len(tokens))
		for i, tok := range tokens {
			parts[i] = tok.String()
		}
		fmt.Println("tokens: ", strings.Join(parts, " "))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return
	}
	if debug {
		fmt.Println("postfix:", seq.String())
	}

	var trace strings.Builder
	var out io.Writer
	if debug {
		out = &trace
	}
	result, ok, err := seq.Evaluate(out)
	if debug && trace.Len() > 0 {
		for _, line := range strings.Split(strings.TrimRight(trace.String(), "\n"), "\n") {
			fmt.Println("step:   ", line)
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return
	}
	if !ok {
		return
	}
	fmt.Println(result.String())
}
