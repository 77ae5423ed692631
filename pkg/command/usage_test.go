package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telnet2/cmdtree/pkg/chat"
)

func TestRendererLine(t *testing.T) {
	interleaved := New("x", ok, WithSyntax(NewSyntax().Required("a").Optional("b").Required("c")))
	described := New("kick", ok,
		WithDescription("Kicks a player\nLonger help"),
		WithSyntax(NewSyntax().Required("player").Or().Required("player").Required("reason")),
	)
	child := New("add", ok)
	New("perm", nil, UsesPrefix(), WithChildren(child))
	plainChild := New("list", ok)
	New("group", nil, WithChildren(plainChild))

	tests := []struct {
		name     string
		renderer Renderer
		node     *Node
		want     []string
	}{
		{"interleaved", Renderer{}, interleaved, []string{"/x <a> [b] <c>"}},
		{"first line only", Renderer{}, described, []string{
			"/kick <player> Kicks a player",
			"/kick <player> <reason>",
		}},
		{"prefix", Renderer{CommandPrefix: "ct"}, child, []string{"/ct perm add"}},
		{"prefix unset on root", Renderer{CommandPrefix: "ct"}, plainChild, []string{"/group list"}},
		{"no global prefix", Renderer{}, child, []string{"/perm add"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := tt.renderer.Lines(tt.node, true)
			got := make([]string, len(lines))
			for i, l := range lines {
				got[i] = chat.Strip(l)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRendererLineMarkup(t *testing.T) {
	n := New("kick", ok, WithDescription("Kicks"), WithSyntax(NewSyntax().Required("player")))
	r := Renderer{}
	assert.Equal(t, "&b/kick &3<player> &eKicks", r.Line(n, n.Syntaxes()[0], true))
	assert.Equal(t, "&b/kick &3<player>", r.Line(n, n.Syntaxes()[0], false))
}

func TestRendererHelp(t *testing.T) {
	n := New("kick", ok,
		WithDescription("Kicks a player\nLonger help"),
		WithPermission("kick"),
		WithSyntax(NewSyntax().Required("player", "Who to kick").Optional("reason")),
	)
	r := Renderer{Policy: fakePolicy{}}

	helps := r.Help(n)
	require.Len(t, helps, 1)
	assert.Equal(t, "/kick <player> [reason]", helps[0].Suggest)
	assert.Equal(t,
		"/kick <player> [reason]:\n<player>: Who to kick\nKicks a player\nLonger help\n\nPermission:\ntest.kick",
		chat.Strip(helps[0].Hover))

	bare := New("ping", ok)
	helps = (&Renderer{}).Help(bare)
	require.Len(t, helps, 1)
	assert.Equal(t, "&b/ping:", helps[0].Hover)
}

func TestRendererFancy(t *testing.T) {
	n := New("kick", ok, WithPermission("kick"), WithSyntax(NewSyntax().Required("player").Or()))
	r := Renderer{}

	msgs := r.Fancy(n, true)
	require.Len(t, msgs, 2)
	require.Len(t, msgs[0], 1)
	assert.Equal(t, "- /kick <player>", chat.Strip(msgs[0].Plain()))
	assert.Equal(t, "- /kick", chat.Strip(msgs[1].Plain()))
	require.NotNil(t, msgs[0][0].Click)
	assert.Equal(t, chat.SuggestCommand, msgs[0][0].Click.Action)
	assert.Equal(t, "/kick <player>", msgs[0][0].Click.Value)
	assert.Contains(t, msgs[0][0].Hover, "kick", "raw token without policy")

	msgs = r.Fancy(n, false)
	assert.Equal(t, "/kick <player>", chat.Strip(msgs[0].Plain()))
}

func TestDispatcherRenderer(t *testing.T) {
	d, _ := newTestDispatcher(WithCommandPrefix("ct"), WithPolicy(fakePolicy{}))
	r := d.Renderer()
	assert.Equal(t, "ct", r.CommandPrefix)
	assert.NotNil(t, r.Policy)
}
