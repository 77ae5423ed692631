package event

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telnet2/cmdtree/pkg/command"
)

func TestBus_Subscribe(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var received []Event
	unsub := bus.Subscribe(CommandExecuted, func(e Event) {
		received = append(received, e)
	})
	defer unsub()

	bus.PublishSync(Event{Type: CommandExecuted, Data: "help"})
	bus.PublishSync(Event{Type: CommandFailed, Data: "boom"})

	require.Len(t, received, 1)
	assert.Equal(t, CommandExecuted, received[0].Type)
	assert.Equal(t, "help", received[0].Data)
}

func TestBus_SubscribeAll(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var count int32
	unsub := bus.SubscribeAll(func(e Event) {
		atomic.AddInt32(&count, 1)
	})
	defer unsub()

	bus.PublishSync(Event{Type: CommandExecuted})
	bus.PublishSync(Event{Type: CommandRejected})
	bus.PublishSync(Event{Type: PermissionChanged})

	assert.Equal(t, int32(3), atomic.LoadInt32(&count))
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var count int32
	unsub := bus.Subscribe(CommandFailed, func(e Event) {
		atomic.AddInt32(&count, 1)
	})

	bus.PublishSync(Event{Type: CommandFailed})
	unsub()
	bus.PublishSync(Event{Type: CommandFailed})

	assert.Equal(t, int32(1), atomic.LoadInt32(&count))
}

func TestBus_Closed(t *testing.T) {
	bus := NewBus()
	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close())

	called := false
	unsub := bus.Subscribe(CommandExecuted, func(Event) { called = true })
	unsub()
	bus.PublishSync(Event{Type: CommandExecuted})
	assert.False(t, called)
}

func TestBus_Messages(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msgs, err := bus.Messages(ctx, CommandFailed)
	require.NoError(t, err)

	go bus.PublishSync(Event{Type: CommandFailed, Data: CommandData{Command: "kick", Error: "boom"}})

	select {
	case msg := <-msgs:
		msg.Ack()
		assert.Equal(t, string(CommandFailed), msg.Metadata.Get("type"))
		var decoded struct {
			Type string      `json:"type"`
			Data CommandData `json:"data"`
		}
		require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
		assert.Equal(t, "kick", decoded.Data.Command)
		assert.Equal(t, "boom", decoded.Data.Error)
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for watermill message")
	}
}

func TestStream(t *testing.T) {
	bus := NewBus()

	var buf lockedBuffer
	wait, err := Stream(context.Background(), bus, &buf, CommandExecuted, CommandFailed)
	require.NoError(t, err)

	bus.PublishSync(Event{Type: CommandExecuted, Data: CommandData{CallID: "1", Command: "help"}})
	bus.PublishSync(Event{Type: PermissionChanged, Data: PermissionChangedData{Node: "say"}})
	bus.PublishSync(Event{Type: CommandFailed, Data: CommandData{CallID: "2", Command: "boom"}})

	lines := buf.lines()
	require.Len(t, lines, 2, "publishing waits for the stream to write")
	assert.JSONEq(t, `{"type":"command.executed","data":{"callID":"1","command":"help","sender":"","durationMs":0}}`, lines[0])
	assert.Contains(t, lines[1], `"command.failed"`)

	require.NoError(t, bus.Close())
	wait()
}

func TestStream_AllTypes(t *testing.T) {
	bus := NewBus()
	ctx, cancel := context.WithCancel(context.Background())

	var buf lockedBuffer
	wait, err := Stream(ctx, bus, &buf)
	require.NoError(t, err)

	for _, typ := range Types {
		bus.PublishSync(Event{Type: typ})
	}
	assert.Len(t, buf.lines(), len(Types))

	cancel()
	wait()
	require.NoError(t, bus.Close())
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := strings.TrimSpace(b.buf.String())
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestObserver(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var got []Event
	bus.SubscribeAll(func(e Event) { got = append(got, e) })

	obs := NewObserver(bus)
	obs.Observe(command.Outcome{CallID: "1", Command: "help"})
	obs.Observe(command.Outcome{CallID: "2", Command: "kick", Err: &command.SenderKindError{Node: command.New("kick", nil)}})
	obs.Observe(command.Outcome{CallID: "3", Command: "boom", Err: &command.ExecutionFault{Node: command.New("boom", nil), Err: errors.New("boom")}})

	require.Len(t, got, 3)
	assert.Equal(t, CommandExecuted, got[0].Type)
	assert.Equal(t, CommandRejected, got[1].Type)
	assert.Equal(t, CommandFailed, got[2].Type)

	data, ok := got[2].Data.(CommandData)
	require.True(t, ok)
	assert.Equal(t, "3", data.CallID)
	assert.Contains(t, data.Error, "boom")
}
