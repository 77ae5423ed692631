package event

import (
	"github.com/rs/zerolog"
)

// Audit logs events on bus to logger at INFO, failed reloads at WARN. It
// skips command.failed: the dispatcher already logs every fault once. It
// returns the unsubscribe function.
func Audit(bus *Bus, logger zerolog.Logger) func() {
	return bus.SubscribeAll(func(e Event) {
		if e.Type == CommandFailed {
			return
		}
		ev := logger.Info()
		switch d := e.Data.(type) {
		case CommandData:
			ev = ev.Str("call", d.CallID).
				Str("command", d.Command).
				Str("sender", d.Sender).
				Strs("args", d.Args).
				Int64("durationMs", d.DurationMs)
			if d.Error != "" {
				ev = ev.Str("error", d.Error)
			}
		case PermissionChangedData:
			ev = ev.Str("user", d.User).
				Str("group", d.Group).
				Str("node", d.Node).
				Bool("granted", d.Granted)
		case PermissionReloadedData:
			if d.Error != "" {
				ev = logger.Warn().Str("error", d.Error)
			}
			ev = ev.Str("path", d.Path)
		}
		ev.Msg(string(e.Type))
	})
}
