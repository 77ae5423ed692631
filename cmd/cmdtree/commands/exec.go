package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/telnet2/cmdtree/internal/console"
	"github.com/telnet2/cmdtree/pkg/command"
)

var execAs string

var execCmd = &cobra.Command{
	Use:   "exec <command> [args...]",
	Short: "Run a single command",
	Long: `Run a single command and exit.

Arguments are passed as given by the shell. The command runs as a script
sender unless --as names a player. The exit status is non-zero when the
command does not exist.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	execCmd.Flags().StringVar(&execAs, "as", "", "Run as the named player")
	// Everything after the command name belongs to it.
	execCmd.Flags().SetInterspersed(false)
}

func runExec(cmd *cobra.Command, args []string) error {
	h, err := newHost(cmd.OutOrStdout(), eventsWriter(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	defer h.Close()

	var sender command.Sender = console.NewScript("exec", h.renderer)
	if execAs != "" {
		sender = h.sender(execAs)
	}
	return console.Dispatch(context.Background(), h.registry, sender, args)
}
