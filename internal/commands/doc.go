// Package commands provides the built-in command tree of the cmdtree host:
// help, version, whoami, say, roll, the perm group and user-defined macros.
package commands
