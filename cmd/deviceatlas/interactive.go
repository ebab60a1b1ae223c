package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/chzyer/readline"
)

// runInteractive reads User-Agents from a readline prompt until EOF,
// "exit" or ctx is cancelled.
func runInteractive(ctx context.Context, r *resolver, format string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "ua> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	enc, err := newEncoder(format, rl.Stdout())
	if err != nil {
		return err
	}
	r.enc = enc

	for ctx.Err() == nil {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			return nil
		}

		input := strings.TrimSpace(line)
		switch input {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		if err := r.resolve(input); err != nil {
			fmt.Fprintf(rl.Stderr(), "error: %v\n", err)
		}
	}
	return nil
}
