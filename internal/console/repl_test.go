package console_test

import (
	"bytes"
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"

	"github.com/telnet2/cmdtree/internal/console"
	"github.com/telnet2/cmdtree/pkg/command"
)

var _ = Describe("REPL", func() {
	var (
		ctx      context.Context
		out      *bytes.Buffer
		registry *command.Registry
		player   *console.Sender
	)

	BeforeEach(func() {
		ctx = context.Background()
		out = &bytes.Buffer{}
		renderer := console.NewRenderer(out, console.NoColor(true))
		player = console.NewPlayer("alice", false, renderer)

		d := command.NewDispatcher(command.WithLogger(zerolog.Nop()))
		registry = command.NewRegistry(d)
		registry.MustRegister(
			command.New("say", func(c *command.Call) error {
				c.Reply(c.FinalArg(0))
				return nil
			}, command.WithSyntax(command.NewSyntax().Required("message"))),
			command.New("secret", func(c *command.Call) error { return nil },
				command.WithVisibility(command.VisibilityOps)),
		)
	})

	lines := func() []string {
		return strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	}

	Describe("Exec", func() {
		It("dispatches quoted arguments", func() {
			Expect(console.Exec(ctx, registry, player, `say "hello   there" &afriend`)).To(Succeed())
			Expect(lines()).To(Equal([]string{"hello   there friend"}))
		})

		It("accepts a leading slash", func() {
			Expect(console.Exec(ctx, registry, player, "/SAY hi")).To(Succeed())
			Expect(lines()).To(Equal([]string{"hi"}))
		})

		It("suggests a close visible command", func() {
			err := console.Exec(ctx, registry, player, "sya hi")
			Expect(err).To(MatchError(command.ErrUnknownCommand))
			Expect(lines()).To(Equal([]string{"Error: Unknown command sya. Did you mean /say?"}))
		})

		It("does not suggest commands the sender cannot see", func() {
			err := console.Exec(ctx, registry, player, "secrat")
			Expect(err).To(MatchError(command.ErrUnknownCommand))
			Expect(lines()).To(Equal([]string{"Error: Unknown command secrat. Try /help."}))
		})

		It("reports unreadable lines", func() {
			Expect(console.Exec(ctx, registry, player, `say "open`)).NotTo(Succeed())
			Expect(out.String()).To(HavePrefix("Error: Could not read command: "))
		})

		It("replies usage errors without returning them", func() {
			Expect(console.Exec(ctx, registry, player, "say")).To(Succeed())
			Expect(lines()[0]).To(Equal("Error: Invalid arguments! Try: /say <message>"))
		})
	})

	Describe("Dispatch", func() {
		It("runs pre-split tokens verbatim", func() {
			Expect(console.Dispatch(ctx, registry, player, []string{"/say", `"quoted"`, "$HOME"})).To(Succeed())
			Expect(lines()).To(Equal([]string{`"quoted" $HOME`}))
		})

		It("ignores empty input", func() {
			Expect(console.Dispatch(ctx, registry, player, nil)).To(Succeed())
			Expect(console.Dispatch(ctx, registry, player, []string{"/"})).To(Succeed())
			Expect(out.String()).To(BeEmpty())
		})
	})

	Describe("Run", func() {
		It("stops at exit and skips blank lines", func() {
			in := strings.NewReader("say one\n\nsay two\nexit\nsay three\n")
			repl := console.NewREPL(registry, player, in, out)
			repl.SetPrompt("")

			Expect(repl.Run(ctx)).To(Succeed())
			Expect(lines()).To(Equal([]string{"one", "two"}))
		})

		It("stops at end of input", func() {
			repl := console.NewREPL(registry, player, strings.NewReader("say last"), out)
			repl.SetPrompt("")

			Expect(repl.Run(ctx)).To(Succeed())
			Expect(lines()).To(Equal([]string{"last"}))
		})

		It("writes the prompt", func() {
			prompts := &bytes.Buffer{}
			repl := console.NewREPL(registry, player, strings.NewReader("quit\n"), prompts)

			Expect(repl.Run(ctx)).To(Succeed())
			Expect(prompts.String()).To(Equal("> "))
		})

		It("honours a cancelled context", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			repl := console.NewREPL(registry, player, strings.NewReader("say never\n"), out)

			Expect(repl.Run(cancelled)).To(MatchError(context.Canceled))
			Expect(out.String()).To(BeEmpty())
		})
	})
})
