package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	n := New("kick", nil)
	assert.Equal(t, "kick", n.Name())
	require.Len(t, n.Syntaxes(), 1)
	assert.Equal(t, 0, n.Syntaxes()[0].Size())
	assert.True(t, n.IsRoot())
	assert.Equal(t, VisibilityAll, n.Gate().Visibility)
	assert.False(t, n.IsPlayerOnly())
	assert.Empty(t, n.Children())
}

func TestNodeOptions(t *testing.T) {
	n := New("kick", nil,
		WithAliases("k", "boot"),
		WithDescription("Kicks a player\nSecond line"),
		WithPermission("kick"),
		PlayerOnly(),
		UsesPrefix(),
		WithSyntax(NewSyntax().Required("player").Or().Required("player").Required("reason")),
	)

	assert.Equal(t, []string{"k", "boot"}, n.Aliases())
	assert.Equal(t, "Kicks a player\nSecond line", n.Description())
	assert.Equal(t, Gate{Visibility: VisibilityPermission, Permission: "kick"}, n.Gate())
	assert.True(t, n.IsPlayerOnly())
	assert.True(t, n.usesPrefix)
	assert.Len(t, n.Syntaxes(), 2)

	// Visibility keeps the token.
	n = New("kick", nil, WithPermission("kick"), WithVisibility(VisibilityOps))
	assert.Equal(t, Gate{Visibility: VisibilityOps, Permission: "kick"}, n.Gate())
}

func TestNodeTree(t *testing.T) {
	add := New("add", nil, WithAliases("ADD2"))
	user := New("user", nil, WithChildren(add))
	perm := New("perm", nil, WithChildren(user))

	assert.Equal(t, perm, add.Root())
	assert.Equal(t, user, add.Parent())
	assert.False(t, add.IsRoot())
	assert.Equal(t, []string{"perm", "user", "add"}, add.Path())
	assert.Equal(t, "perm user add", add.Label())

	assert.Equal(t, add, user.Child("add"))
	assert.Equal(t, add, user.Child("Add"))
	assert.Equal(t, add, user.Child("add2"))
	assert.Nil(t, user.Child("remove"))
	assert.True(t, add.Matches("aDd2"))
}

func TestAddChildErrors(t *testing.T) {
	parent := New("perm", nil, WithChildren(New("add", nil, WithAliases("plus"))))

	assert.Error(t, parent.AddChild(New("ADD", nil)))
	assert.Error(t, parent.AddChild(New("grant", nil, WithAliases("Plus"))))

	owned := New("remove", nil)
	require.NoError(t, New("other", nil).AddChild(owned))
	assert.Error(t, parent.AddChild(owned))

	assert.Len(t, parent.Children(), 1)
	assert.Panics(t, func() {
		New("perm", nil, WithChildren(New("add", nil), New("add", nil)))
	})
}
