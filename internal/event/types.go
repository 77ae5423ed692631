package event

import (
	"github.com/telnet2/cmdtree/pkg/command"
)

// CommandData is the data for command.* events.
type CommandData struct {
	CallID     string   `json:"callID"`
	Command    string   `json:"command"`
	Sender     string   `json:"sender"`
	Args       []string `json:"args,omitempty"`
	Error      string   `json:"error,omitempty"`
	DurationMs int64    `json:"durationMs"`
}

// PermissionChangedData is the data for permission.changed events.
type PermissionChangedData struct {
	User    string `json:"user,omitempty"`
	Group   string `json:"group,omitempty"`
	Node    string `json:"node"`
	Granted bool   `json:"granted"`
}

// PermissionReloadedData is the data for permission.reloaded events.
type PermissionReloadedData struct {
	Path  string `json:"path"`
	Error string `json:"error,omitempty"`
}

// Observer publishes one command event per dispatch outcome.
type Observer struct {
	bus *Bus
}

// NewObserver returns an Observer publishing to bus.
func NewObserver(bus *Bus) *Observer {
	return &Observer{bus: bus}
}

// Observe implements command.Observer. Delivery is synchronous so events
// are seen in dispatch order.
func (o *Observer) Observe(out command.Outcome) {
	data := CommandData{
		CallID:     out.CallID,
		Command:    out.Command,
		Sender:     out.Sender,
		Args:       out.Args,
		DurationMs: out.Duration.Milliseconds(),
	}

	typ := CommandExecuted
	if out.Err != nil {
		data.Error = out.Err.Error()
		typ = CommandRejected
		if command.IsFault(out.Err) {
			typ = CommandFailed
		}
	}
	o.bus.PublishSync(Event{Type: typ, Data: data})
}
