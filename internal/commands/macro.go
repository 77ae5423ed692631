package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"github.com/telnet2/cmdtree/internal/config"
	"github.com/telnet2/cmdtree/internal/console"
	"github.com/telnet2/cmdtree/pkg/chat"
	"github.com/telnet2/cmdtree/pkg/command"
	"gopkg.in/yaml.v3"
)

// maxMacroDepth bounds macros expanding to other macros.
const maxMacroDepth = 8

// Macro is a user-defined command whose template expands to one or more
// command lines.
//
// Templates reference arguments as $1, $2, ..., by declared name as
// ${name}, and all arguments as $input.
type Macro struct {
	Name        string   `yaml:"-"`
	Description string   `yaml:"description"`
	Template    string   `yaml:"-"`
	Permission  string   `yaml:"permission"`
	Args        []string `yaml:"args"`
	Source      string   `yaml:"-"` // "config" or the file path
}

type macroDepthKey struct{}

// MacrosFromConfig converts configured macros, sorted by name.
func MacrosFromConfig(macros map[string]config.MacroConfig) []Macro {
	out := make([]Macro, 0, len(macros))
	for name, m := range macros {
		out = append(out, Macro{
			Name:        name,
			Description: m.Description,
			Template:    m.Template,
			Permission:  m.Permission,
			Args:        m.Args,
			Source:      "config",
		})
	}
	slices.SortFunc(out, func(a, b Macro) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// LoadMacros loads every *.md file under dir as a macro. The file name
// without extension names the macro; nested directories join with ':'.
// A missing directory yields no macros.
func LoadMacros(fsys afero.Fs, dir string) ([]Macro, error) {
	if _, err := fsys.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var macros []Macro
	err := afero.Walk(fsys, dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		m, err := parseMacroFile(data)
		if err != nil {
			return fmt.Errorf("macro %s: %w", path, err)
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		m.Name = strings.ReplaceAll(strings.TrimSuffix(rel, ".md"), string(filepath.Separator), ":")
		m.Source = path
		macros = append(macros, m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return macros, nil
}

// parseMacroFile reads an optional YAML frontmatter block followed by the
// template.
func parseMacroFile(data []byte) (Macro, error) {
	var m Macro
	content := string(bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n")))

	if rest, ok := strings.CutPrefix(content, "---\n"); ok {
		front, body, found := strings.Cut(rest, "\n---")
		if !found {
			return m, errors.New("unterminated frontmatter")
		}
		if err := yaml.Unmarshal([]byte(front), &m); err != nil {
			return m, fmt.Errorf("parse frontmatter: %w", err)
		}
		content = body
	}

	m.Template = strings.TrimSpace(content)
	if m.Template == "" {
		return m, errors.New("empty template")
	}
	return m, nil
}

var macroVar = regexp.MustCompile(`\$(?:\{(\w+)\}|(\d+|input))`)

// Expand substitutes argument references in the template. Unknown
// references are left untouched; positions past the supplied arguments
// expand to "".
func (m Macro) Expand(args []string) string {
	return macroVar.ReplaceAllStringFunc(m.Template, func(match string) string {
		sub := macroVar.FindStringSubmatch(match)
		key := sub[1] + sub[2]
		if key == "input" {
			return strings.Join(args, " ")
		}
		if i, err := strconv.Atoi(key); err == nil {
			if i >= 1 && i <= len(args) {
				return args[i-1]
			}
			return ""
		}
		if i := slices.Index(m.Args, key); i >= 0 {
			if i < len(args) {
				return args[i]
			}
			return ""
		}
		return match
	})
}

// Node builds the command node of m, dispatching through reg.
func (m Macro) Node(reg *command.Registry) *command.Node {
	syntax := command.NewSyntax()
	for _, a := range m.Args {
		syntax.Required(a)
	}

	description := m.Description
	if lines := chat.Lines(m.Template); description == "" && len(lines) > 0 {
		description = "Runs " + lines[0]
	}

	opts := []command.Option{
		command.WithDescription(description),
		command.WithSyntax(syntax),
	}
	if m.Permission != "" {
		opts = append(opts, command.WithPermission(m.Permission))
	}
	return command.New(m.Name, m.handler(reg), opts...)
}

func (m Macro) handler(reg *command.Registry) command.Handler {
	return func(c *command.Call) error {
		depth, _ := c.Context().Value(macroDepthKey{}).(int)
		if depth >= maxMacroDepth {
			return fmt.Errorf("macro %s nests deeper than %d levels", m.Name, maxMacroDepth)
		}
		ctx := context.WithValue(c.Context(), macroDepthKey{}, depth+1)

		for _, line := range chat.Lines(m.Expand(c.Args)) {
			tokens, err := console.Tokenize(line)
			if err != nil {
				return err
			}
			if len(tokens) == 0 {
				continue
			}
			label := strings.TrimPrefix(tokens[0], "/")
			if err := reg.Dispatch(ctx, c.Sender, label, tokens[1:]); err != nil {
				return err
			}
		}
		return nil
	}
}
