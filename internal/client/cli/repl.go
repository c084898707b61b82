package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

const helpText = "Available commands: (l)ist [prefix], show <id>, add, edit <id>, done <id>, undo <id>, (rm|delete) <id>, exit"

// execIface is the command surface the REPL dispatches to. App satisfies it.
type execIface interface {
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	SetComplete(ctx context.Context, args []string, complete bool) error
	Delete(ctx context.Context, args []string) error
}

// runREPL reads commands from reader until EOF, "exit" or "quit". Command
// errors are printed and the loop goes on. A nil prompt prints none.
func runREPL(ctx context.Context, a execIface, prompt func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		if prompt != nil {
			printlnFn(prompt())
		}

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText)
		case "l", "list":
			cmdErr = a.List(ctx, args)
		case "show":
			cmdErr = a.Show(ctx, args)
		case "add":
			cmdErr = a.Add(ctx)
		case "edit":
			cmdErr = a.Edit(ctx, args)
		case "done":
			cmdErr = a.SetComplete(ctx, args, true)
		case "undo":
			cmdErr = a.SetComplete(ctx, args, false)
		case "rm", "delete":
			cmdErr = a.Delete(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(renderError(cmdErr))
		}
	}
}
