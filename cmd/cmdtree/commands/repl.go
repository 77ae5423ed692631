package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/telnet2/cmdtree/internal/console"
	"github.com/telnet2/cmdtree/internal/logging"
)

var replAs string

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive command console",
	Long: `Start an interactive console reading one command per line.

Commands may be typed with or without a leading '/'. Type 'exit' or
'quit' to leave. With --as the console acts as the named player, whose
permissions come from the permission file.`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	replCmd.Flags().StringVar(&replAs, "as", "", "Act as the named player instead of the console")
}

func runREPL(cmd *cobra.Command, args []string) error {
	h, err := newHost(cmd.OutOrStdout(), eventsWriter(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	defer h.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sender := h.sender(replAs)
	logging.Info().Str("sender", sender.Name()).Msg("repl started")

	repl := console.NewREPL(h.registry, sender, cmd.InOrStdin(), cmd.OutOrStdout())
	if err := repl.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
