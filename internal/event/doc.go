/*
Package event provides the pub/sub event system used to observe command
dispatch.

The bus keeps direct in-process subscribers for type-preserving delivery and
mirrors every event as a JSON watermill message on a gochannel topic named
after the event type, so consumers that prefer watermill's message API can
subscribe through Messages.

# Event Types

Command Events:
  - command.executed: a handler completed without error
  - command.rejected: usage, permission or sender-kind rejection
  - command.failed: a handler returned an error or panicked

Permission Events:
  - permission.changed: a grant, revoke or group update was applied
  - permission.reloaded: the permission file was reloaded from disk

# Usage

	bus := event.NewBus()
	unsub := bus.Subscribe(event.CommandFailed, func(e event.Event) {
		data := e.Data.(event.CommandData)
		fmt.Println(data.Command, data.Error)
	})
	defer unsub()

Observer adapts a bus to command.Observer so a Dispatcher publishes one
event per execution. Audit logs events; Stream copies the watermill topics
to a writer as JSON lines.
*/
package event
