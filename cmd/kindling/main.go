// Command kindling is the REPL collaborator described in spec.md §6: it
// reads one top-level form per prompt line, prints the result or error, and
// exits 0 on normal exit or 1 on an unrecoverable startup failure. It is an
// external caller of the kindling package, not part of the core.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/kindling-lang/kindling"
)

func main() {
	loadFile := flag.String("load", "", "evaluate this source file before starting")
	evalExpr := flag.String("e", "", "evaluate this expression and exit instead of starting the REPL")
	flag.Parse()

	interp := kindling.New()
	if err := interp.StartupError(); err != nil {
		fmt.Fprintf(os.Stderr, "kindling: bootstrap library failed to load: %v\n", err)
		os.Exit(1)
	}

	if *loadFile != "" {
		contents, err := os.ReadFile(*loadFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "kindling: could not read %s: %v\n", *loadFile, err)
			os.Exit(1)
		}
		out := interp.Evaluate(string(contents))
		if err := out.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "kindling: %s: %v\n", *loadFile, err)
			os.Exit(1)
		}
	}

	if *evalExpr != "" {
		out := interp.Evaluate(*evalExpr)
		if err := out.Err(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(interp.Print(out.Value))
		return
	}

	repl(interp)
}

// repl wires github.com/peterh/liner for line editing and history
// (grounded in other_examples/michaelmacinnis-oh__task.go's Liner wrapper),
// giving the teacher's own unresolved `"readline"` import a real home.
func repl(interp *kindling.Interpreter) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		input, err := line.Prompt("kindling> ")
		if err != nil {
			break
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)

		out := interp.Evaluate(input)
		if err := out.Err(); err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(interp.Print(out.Value))
	}
}
