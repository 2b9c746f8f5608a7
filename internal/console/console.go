// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/matt-FFFFFF/switchboard/internal/command"
	"github.com/matt-FFFFFF/switchboard/internal/ctxlog"
	"github.com/matt-FFFFFF/switchboard/internal/output"
	"github.com/peterh/liner"
)

// Prompt is shown before every line.
const Prompt = "switchboard> "

// Dispatcher processes and completes raw command input. The command manager implements it.
type Dispatcher interface {
	Process(ctx context.Context, subject command.Subject, channel command.Channel, raw string) (command.Result, error)
	Suggest(ctx context.Context, subject command.Subject, channel command.Channel, raw string) ([]string, error)
}

// Console reads commands from the terminal and dispatches them.
type Console struct {
	d       Dispatcher
	out     io.Writer
	subject command.Subject
}

// New creates a console writing command output to out.
func New(d Dispatcher, out io.Writer) *Console {
	return &Console{d: d, out: out, subject: command.SystemSubject{}}
}

// Run prompts until quit, exit, Ctrl+C, end of input or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	line := liner.NewLiner()
	defer func() {
		_ = line.Close()
	}()

	line.SetCtrlCAborts(true)
	line.SetCompleter(c.Completer(ctx))

	fmt.Fprintln(c.out, "Type a command, `quit` or `exit` or Ctrl+C to quit.") //nolint:errcheck

	for ctx.Err() == nil {
		input, err := line.Prompt(Prompt)

		switch {
		case err == nil:
		case errors.Is(err, liner.ErrPromptAborted), errors.Is(err, io.EOF):
			fmt.Fprintln(c.out, "Bye") //nolint:errcheck
			return nil
		default:
			return fmt.Errorf("reading line: %w", err)
		}

		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}

		if !c.Eval(ctx, input) {
			return nil
		}
	}

	return ctx.Err()
}

// Eval processes a single line. It returns false when the console should stop.
func (c *Console) Eval(ctx context.Context, input string) bool {
	trimmed := strings.TrimSpace(input)

	switch trimmed {
	case "":
		return true
	case "quit", "exit":
		return false
	}

	res, err := c.d.Process(ctx, c.subject, command.NewWriterChannel(c.out), trimmed)
	if err != nil {
		ctxlog.Debug(ctx, "command failed", "input", trimmed, "error", err)
	}

	output.WriteResult(c.out, res, err)

	return true
}

// Completer returns a liner completer backed by the dispatcher's suggestions.
// Suggestions replace the token being typed.
func (c *Console) Completer(ctx context.Context) liner.Completer {
	return func(line string) []string {
		suggestions, err := c.d.Suggest(ctx, c.subject, nil, line)
		if err != nil {
			ctxlog.Debug(ctx, "suggest failed", "input", line, "error", err)
			return nil
		}

		head := ""
		if i := strings.LastIndexFunc(line, unicode.IsSpace); i >= 0 {
			head = line[:i+1]
		}

		out := make([]string, 0, len(suggestions))
		for _, s := range suggestions {
			out = append(out, head+s)
		}

		return out
	}
}
