// Package config provides configuration loading and path management.
//
// Configuration is layered, later sources overriding earlier ones:
//
//  1. Built-in defaults
//  2. Global config ($XDG_CONFIG_HOME/cmdtree/cmdtree.json or .jsonc)
//  3. Project config (<dir>/cmdtree.json[c], then <dir>/.cmdtree/cmdtree.json[c])
//  4. CMDTREE_CONFIG file override
//  5. CMDTREE_* environment variables, including those from <dir>/.env
//
// Config files are JSONC: comments and trailing commas are allowed. Files
// are read through an afero.Fs so tests can run against memory.
package config
