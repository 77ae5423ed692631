package console

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/telnet2/cmdtree/pkg/chat"
)

// codeAttrs maps markup codes to terminal attributes.
var codeAttrs = map[byte]color.Attribute{
	'0': color.FgBlack,
	'1': color.FgBlue,
	'2': color.FgGreen,
	'3': color.FgCyan,
	'4': color.FgRed,
	'5': color.FgMagenta,
	'6': color.FgYellow,
	'7': color.FgWhite,
	'8': color.FgHiBlack,
	'9': color.FgHiBlue,
	'a': color.FgHiGreen,
	'b': color.FgHiCyan,
	'c': color.FgHiRed,
	'd': color.FgHiMagenta,
	'e': color.FgHiYellow,
	'f': color.FgHiWhite,
	'k': color.BlinkRapid,
	'l': color.Bold,
	'm': color.CrossedOut,
	'n': color.Underline,
	'o': color.Italic,
}

// Renderer writes replies to a terminal.
type Renderer struct {
	mu   sync.Mutex
	out  io.Writer
	opts rendererOptions
}

type rendererOptions struct {
	NoColor bool
	JSON    bool
	Verbose bool
}

// RendererOption configures a Renderer.
type RendererOption func(*rendererOptions)

// NoColor strips markup instead of colouring it.
func NoColor(v bool) RendererOption {
	return func(o *rendererOptions) { o.NoColor = v }
}

// JSON writes one JSON object per reply.
func JSON(v bool) RendererOption {
	return func(o *rendererOptions) { o.JSON = v }
}

// Verbose includes hover text of structured messages.
func Verbose(v bool) RendererOption {
	return func(o *rendererOptions) { o.Verbose = v }
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer, opts ...RendererOption) *Renderer {
	r := &Renderer{out: out}
	for _, opt := range opts {
		opt(&r.opts)
	}
	return r
}

// Colorize converts markup in text to ANSI sequences, or strips it when
// colour is disabled. A colour code resets active formatting.
func (r *Renderer) Colorize(text string) string {
	if r.opts.NoColor {
		return chat.Strip(text)
	}

	var (
		sb    strings.Builder
		seg   strings.Builder
		attrs []color.Attribute
	)
	flush := func() {
		if seg.Len() == 0 {
			return
		}
		if len(attrs) == 0 {
			sb.WriteString(seg.String())
		} else {
			c := color.New(attrs...)
			c.EnableColor()
			sb.WriteString(c.Sprint(seg.String()))
		}
		seg.Reset()
	}

	for i := 0; i < len(text); i++ {
		if text[i] != '&' || i+1 >= len(text) || !chat.IsCode(text[i+1]) {
			seg.WriteByte(text[i])
			continue
		}
		flush()
		code := text[i+1] | 0x20 // lower-case
		i++
		switch attr, ok := codeAttrs[code]; {
		case code == 'r':
			attrs = nil
		case code <= 'f': // 0-9 and a-f are colours
			attrs = []color.Attribute{attr}
		case ok:
			attrs = append(attrs, attr)
		}
	}
	flush()
	return sb.String()
}

// Line writes one reply.
func (r *Renderer) Line(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.opts.JSON {
		r.writeJSON(map[string]string{"type": "message", "text": chat.Strip(text)})
		return
	}
	fmt.Fprintln(r.out, r.Colorize(text))
}

// Message writes a structured reply: the text of every component, then its
// click suggestion dimmed.
func (r *Renderer) Message(msg chat.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.opts.JSON {
		r.writeJSON(map[string]any{"type": "structured", "components": msg})
		return
	}

	var sb strings.Builder
	var hints []string
	for _, comp := range msg {
		sb.WriteString(r.Colorize(comp.Text))
		if comp.Click != nil {
			hints = append(hints, comp.Click.Value)
		}
		if r.opts.Verbose && comp.Hover != "" {
			hints = append(hints, chat.Strip(strings.ReplaceAll(comp.Hover, "\n", " ")))
		}
	}
	for _, h := range hints {
		sb.WriteString("  ")
		sb.WriteString(r.dim(h))
	}
	fmt.Fprintln(r.out, sb.String())
}

func (r *Renderer) dim(s string) string {
	if r.opts.NoColor {
		return s
	}
	c := color.New(color.FgHiBlack)
	c.EnableColor()
	return c.Sprint(s)
}

func (r *Renderer) writeJSON(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintln(r.out, err.Error())
		return
	}
	fmt.Fprintln(r.out, string(b))
}
