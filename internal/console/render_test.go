package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/telnet2/cmdtree/pkg/chat"
	"github.com/telnet2/cmdtree/pkg/command"
)

func TestColorizeNoColor(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, NoColor(true))
	assert.Equal(t, "Error: boom", r.Colorize("&cError: &4boom"))
	assert.Equal(t, "a & b", r.Colorize("a & b"))
}

func TestColorize(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{})

	out := r.Colorize("plain &ehi")
	assert.True(t, strings.HasPrefix(out, "plain "))
	assert.Contains(t, out, "\x1b[93mhi")

	out = r.Colorize("&c&lbold red&r tail")
	assert.Contains(t, out, "\x1b[91;1mbold red")
	assert.True(t, strings.HasSuffix(out, " tail"), "reset drops attributes")

	out = r.Colorize("&lbold&agreen")
	assert.Contains(t, out, "\x1b[92mgreen", "colour resets formatting")

	assert.Equal(t, "no &z code", r.Colorize("no &z code"))
}

func TestRendererLine(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, NoColor(true))
	r.Line("&ehello")
	r.Line("two\nlines")
	assert.Equal(t, "hello\ntwo\nlines\n", buf.String())
}

func TestRendererJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, JSON(true))
	r.Line("&ehello")
	assert.JSONEq(t, `{"type":"message","text":"hello"}`, buf.String())
}

func TestRendererMessage(t *testing.T) {
	msg := chat.NewBuilder("&b/say &3<message>").
		ShowText("&eSay something").
		OnClick(chat.SuggestCommand, "/say <message>").
		Create()

	var buf bytes.Buffer
	NewRenderer(&buf, NoColor(true)).Message(msg)
	assert.Equal(t, "/say <message>  /say <message>\n", buf.String())

	buf.Reset()
	NewRenderer(&buf, NoColor(true), Verbose(true)).Message(msg)
	assert.Equal(t, "/say <message>  /say <message>  Say something\n", buf.String())
}

func TestSenders(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, NoColor(true))

	console := NewConsole(r)
	assert.Equal(t, command.KindConsole, console.Kind())
	assert.True(t, console.IsOperator())
	assert.Equal(t, "Console", command.DisplayName(console))

	player := NewPlayer("alice", false, r)
	assert.Equal(t, command.KindPlayer, player.Kind())
	assert.False(t, player.IsOperator())
	assert.Equal(t, "alice", command.DisplayName(player))

	script := NewScript("boot.txt", r)
	assert.Equal(t, command.KindScripted, script.Kind())
	assert.Equal(t, "Script (boot.txt)", command.DisplayName(script))

	player.SendMessage("&ehi")
	assert.Equal(t, "hi\n", buf.String())
}
