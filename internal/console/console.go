package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"nexora/internal/app"
)

// Console is the interactive chat loop: every line is a query except
// exit/quit. Errors are reported and the prompt returns; only EOF,
// cancellation, or an explicit exit end the session.
type Console struct {
	chat *app.ChatService
	in   io.Reader
	out  io.Writer
}

func New(chat *app.ChatService, in io.Reader, out io.Writer) *Console {
	return &Console{
		chat: chat,
		in:   in,
		out:  out,
	}
}

func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "----------------------------------------------------------------")
	fmt.Fprintln(c.out, "Welcome to Nexora")
	fmt.Fprintln(c.out, "Type 'exit' to quit.")
	fmt.Fprintln(c.out, "----------------------------------------------------------------")

	scanner := bufio.NewScanner(c.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(c.out, "\nUser: ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input failed: %w", err)
			}
			return nil
		}

		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if isExit(query) {
			fmt.Fprintln(c.out, "Nexora: Goodbye!")
			return nil
		}

		result, err := c.chat.Ask(ctx, query)
		if err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
			continue
		}

		fmt.Fprintf(c.out, "Nexora: %s\n", result.Answer)
		if len(result.Sources) > 0 {
			fmt.Fprintf(c.out, "\n[Sources: %s]\n", strings.Join(result.Sources, ", "))
		} else {
			fmt.Fprintln(c.out, "\n[Source: General Knowledge]")
		}
	}
}

func isExit(query string) bool {
	switch strings.ToLower(query) {
	case "exit", "quit":
		return true
	}
	return false
}
