// Package main provides the entry point for the cmdtree CLI.
package main

import (
	"fmt"
	"os"

	"github.com/telnet2/cmdtree/cmd/cmdtree/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
