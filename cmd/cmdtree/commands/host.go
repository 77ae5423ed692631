package commands

import (
	"context"
	"io"

	"github.com/spf13/afero"
	builtin "github.com/telnet2/cmdtree/internal/commands"
	"github.com/telnet2/cmdtree/internal/config"
	"github.com/telnet2/cmdtree/internal/console"
	"github.com/telnet2/cmdtree/internal/event"
	"github.com/telnet2/cmdtree/internal/logging"
	"github.com/telnet2/cmdtree/internal/permission"
	"github.com/telnet2/cmdtree/pkg/command"
)

// host is the assembled command tree with its collaborators.
type host struct {
	cfg      *config.Config
	bus      *event.Bus
	store    *permission.Store
	watcher  *permission.Watcher
	registry *command.Registry
	renderer *console.Renderer
	closers  []func()
	drain    func()
}

// newHost loads configuration and wires logging, events, permissions and
// the built-in commands. Replies are written to out; with a non-nil
// eventsOut every event is streamed there as JSON.
func newHost(out, eventsOut io.Writer) (*host, error) {
	workDir, err := GetWorkDir(configDir)
	if err != nil {
		return nil, err
	}

	fsys := afero.NewOsFs()
	cfg, err := config.Load(fsys, workDir)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if noColor {
		cfg.NoColor = true
	}

	paths := config.GetPaths()
	if err := paths.EnsurePaths(); err != nil {
		return nil, err
	}
	initLogging(cfg, paths)

	h := &host{
		cfg:      cfg,
		bus:      event.NewBus(),
		renderer: console.NewRenderer(out, console.NoColor(cfg.NoColor)),
	}
	h.closers = append(h.closers, event.Audit(h.bus, logging.Component("audit")))
	if eventsOut != nil {
		drain, err := event.Stream(context.Background(), h.bus, eventsOut)
		if err != nil {
			h.Close()
			return nil, err
		}
		h.drain = drain
	}

	h.store = permission.NewStore(
		permission.WithFile(fsys, cfg.PermissionsFile),
		permission.WithBus(h.bus),
	)
	if err := h.store.Load(); err != nil {
		h.Close()
		return nil, err
	}
	h.store.SetDefaultNamespace(cfg.PermissionNamespace)
	h.store.AddOperators(cfg.Operators...)

	if cfg.WatchPermissions {
		w, err := permission.NewWatcher(h.store, h.bus)
		if err != nil {
			logging.Warn().Err(err).Str("path", cfg.PermissionsFile).Msg("permission watcher disabled")
		} else {
			w.Start()
			h.watcher = w
		}
	}

	d := command.NewDispatcher(
		command.WithPolicy(h.store),
		command.WithLogger(logging.Component("dispatch")),
		command.WithObserver(event.NewObserver(h.bus)),
		command.WithReplyPrefix(cfg.Prefix),
		command.WithCommandPrefix(cfg.CommandPrefix),
	)
	h.registry = command.NewRegistry(d)

	macros := builtin.MacrosFromConfig(cfg.Macros)
	for _, dir := range paths.MacroDirs(workDir) {
		loaded, err := builtin.LoadMacros(fsys, dir)
		if err != nil {
			h.Close()
			return nil, err
		}
		macros = append(macros, loaded...)
	}

	err = builtin.Register(h.registry, builtin.Options{
		Version:  Version,
		PageSize: cfg.HelpPageSize,
		Store:    h.store,
		Macros:   macros,
	})
	if err != nil {
		h.Close()
		return nil, err
	}

	logging.Info().
		Str("workDir", workDir).
		Str("permissions", cfg.PermissionsFile).
		Int("commands", len(h.registry.Commands())).
		Msg("cmdtree host ready")
	return h, nil
}

// eventsWriter returns where --events streams to, or nil.
func eventsWriter(w io.Writer) io.Writer {
	if !events {
		return nil
	}
	return w
}

func initLogging(cfg *config.Config, paths *config.Paths) {
	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(cfg.LogLevel)
	lc.LogDir = paths.LogDir()
	if printLogs {
		lc.Pretty = true
	} else {
		lc.Output = io.Discard
		lc.LogToFile = true
	}
	logging.Init(lc)
}

// sender returns the console, or the player named name.
func (h *host) sender(name string) command.Sender {
	if name == "" {
		return console.NewConsole(h.renderer)
	}
	return console.NewPlayer(name, h.store.IsOperator(name), h.renderer)
}

// Close stops the watcher and the event bus, then waits for the event
// stream to drain.
func (h *host) Close() {
	if h.watcher != nil {
		if err := h.watcher.Stop(); err != nil {
			logging.Warn().Err(err).Msg("stopping permission watcher")
		}
	}
	for _, c := range h.closers {
		c()
	}
	if err := h.bus.Close(); err != nil {
		logging.Warn().Err(err).Msg("closing event bus")
	}
	if h.drain != nil {
		h.drain()
	}
	logging.Close()
}
