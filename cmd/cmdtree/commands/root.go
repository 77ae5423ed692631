// Package commands provides the CLI commands for cmdtree.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information set at build time
	Version   = "0.1.0"
	BuildTime = "dev"
)

// Global flags
var (
	printLogs bool
	logLevel  string
	configDir string
	noColor   bool
	events    bool
)

var rootCmd = &cobra.Command{
	Use:   "cmdtree",
	Short: "cmdtree - hierarchical command console",
	Long: `cmdtree hosts a tree of chat-style commands with sub-commands,
argument syntaxes and permission gates.

Run 'cmdtree repl' to start an interactive console, or
'cmdtree exec <command> [args...]' to run a single command.`,
	Version:      Version,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().BoolVar(&printLogs, "print-logs", false, "Print logs to stderr")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG|INFO|WARN|ERROR)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Project directory holding cmdtree.json and .env")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&events, "events", false, "Stream dispatch and permission events to stderr as JSON lines")

	// Version template
	rootCmd.SetVersionTemplate(fmt.Sprintf("cmdtree %s (%s)\n", Version, BuildTime))

	// Add subcommands
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(commandsCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// GetWorkDir returns the working directory from flag or current directory.
func GetWorkDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	return os.Getwd()
}
