package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		args     []any
		expected string
	}{
		{"no args", "hello {0}", nil, "hello {0}"},
		{"single", "hello {0}", []any{"world"}, "hello world"},
		{"reordered", "{1} then {0}", []any{"a", "b"}, "b then a"},
		{"repeated", "{0}{0}", []any{7}, "77"},
		{"missing index", "{0} {3}", []any{"x"}, "x {3}"},
		{"markup kept", "&cError: &4{0}", []any{"boom"}, "&cError: &4boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.template, tt.args...))
		})
	}
}

func TestStrip(t *testing.T) {
	assert.Equal(t, "/kick <player> [reason]", Strip("&b/kick &3<player> &3[reason]"))
	assert.Equal(t, "plain", Strip("plain"))
	assert.Equal(t, "A&zB", Strip("&LA&zB&R"))
}

func TestIsCode(t *testing.T) {
	for _, c := range []byte("0123456789abcdefklmnorABCDEFKLMNOR") {
		assert.True(t, IsCode(c), string(c))
	}
	for _, c := range []byte("ghijpqz& ") {
		assert.False(t, IsCode(c), string(c))
	}
}

func TestLines(t *testing.T) {
	assert.Nil(t, Lines(""))
	assert.Equal(t, []string{"one", "two"}, Lines("one\ntwo\n"))
}

func TestBuilder(t *testing.T) {
	msg := NewBuilder("&b/help").
		ShowText("shows help").
		OnClick(SuggestCommand, "/help").
		Append(" more").
		Create()

	require.Len(t, msg, 2)
	assert.Equal(t, "shows help", msg[0].Hover)
	require.NotNil(t, msg[0].Click)
	assert.Equal(t, SuggestCommand, msg[0].Click.Action)
	assert.Equal(t, "/help", msg[0].Click.Value)
	assert.Nil(t, msg[1].Click)
	assert.Equal(t, "&b/help more", msg.Plain())
}

func TestErrorLine(t *testing.T) {
	assert.Equal(t, "&cError: &4boom", ErrorLine("boom"))
	assert.Equal(t, "Error: boom", Strip(ErrorLine("boom")))
}
