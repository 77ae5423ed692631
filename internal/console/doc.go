// Package console hosts the command tree on a terminal.
//
// It provides Sender implementations for the console, named players and
// scripts, a Renderer turning &-markup into ANSI colour, a shell-style
// tokenizer and a line-oriented REPL that dispatches through a
// command.Registry.
package console
