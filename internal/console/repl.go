package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/telnet2/cmdtree/internal/logging"
	"github.com/telnet2/cmdtree/pkg/chat"
	"github.com/telnet2/cmdtree/pkg/command"
)

// suggestDistance is the largest edit distance offered as "did you mean".
const suggestDistance = 2

// REPL reads command lines and dispatches them for one sender.
type REPL struct {
	registry *command.Registry
	sender   command.Sender
	in       io.Reader
	out      io.Writer
	prompt   string
	logger   zerolog.Logger
}

// NewREPL creates a REPL reading from in and writing prompts to out.
func NewREPL(registry *command.Registry, sender command.Sender, in io.Reader, out io.Writer) *REPL {
	return &REPL{
		registry: registry,
		sender:   sender,
		in:       in,
		out:      out,
		prompt:   "> ",
		logger:   logging.Component("repl"),
	}
}

// SetPrompt changes the prompt. An empty prompt disables it.
func (r *REPL) SetPrompt(prompt string) { r.prompt = prompt }

// Run reads lines until EOF, "exit" or "quit", or ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(r.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.prompt != "" {
			fmt.Fprint(r.out, r.prompt)
		}
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		if err := r.Exec(ctx, line); err != nil {
			r.logger.Debug().Err(err).Str("line", line).Msg("line not dispatched")
		}
	}
}

// Exec tokenizes and dispatches one command line. A leading '/' is
// optional. Lines that cannot be dispatched are replied to the sender and
// the reason is returned.
func (r *REPL) Exec(ctx context.Context, line string) error {
	return Exec(ctx, r.registry, r.sender, line)
}

// Exec tokenizes line and dispatches it to registry for sender.
func Exec(ctx context.Context, registry *command.Registry, sender command.Sender, line string) error {
	tokens, err := Tokenize(line)
	if err != nil {
		sender.SendMessage(chat.ErrorLine(chat.Format("Could not read command: &c{0}", err)))
		return err
	}
	return Dispatch(ctx, registry, sender, tokens)
}

// Dispatch runs the command named by tokens[0], without an optional
// leading '/', with the remaining tokens as arguments. Unknown commands are
// answered with the closest visible name.
func Dispatch(ctx context.Context, registry *command.Registry, sender command.Sender, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	label := strings.TrimPrefix(tokens[0], "/")
	if label == "" {
		return nil
	}

	err := registry.Dispatch(ctx, sender, label, tokens[1:])
	if errors.Is(err, command.ErrUnknownCommand) {
		if suggestion, ok := registry.Suggest(sender, label, suggestDistance); ok {
			sender.SendMessage(chat.ErrorLine(chat.Format("Unknown command &c{0}&4. Did you mean &c/{1}&4?", label, suggestion)))
		} else {
			sender.SendMessage(chat.ErrorLine(chat.Format("Unknown command &c{0}&4. Try &c/help&4.", label)))
		}
	}
	return err
}
