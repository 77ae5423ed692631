package permission

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telnet2/cmdtree/internal/event"
)

func TestWatcher_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "perms.yaml")
	require.NoError(t, os.WriteFile(path, []byte("groups:\n  default: [help]\n"), 0644))

	store := NewStore(WithFile(afero.NewOsFs(), path))
	require.NoError(t, store.Load())
	assert.False(t, store.Check("anyone", "say"))

	bus := event.NewBus()
	defer bus.Close()
	reloaded := make(chan event.PermissionReloadedData, 4)
	bus.Subscribe(event.PermissionReloaded, func(e event.Event) {
		select {
		case reloaded <- e.Data.(event.PermissionReloadedData):
		default:
		}
	})

	w, err := NewWatcher(store, bus)
	require.NoError(t, err)
	w.Start()
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("groups:\n  default: [help, say]\n"), 0644))

	select {
	case data := <-reloaded:
		assert.Empty(t, data.Error)
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for reload")
	}
	assert.Eventually(t, func() bool { return store.Check("anyone", "say") }, 2*time.Second, 20*time.Millisecond)
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(WithFile(afero.NewOsFs(), filepath.Join(dir, "perms.yaml")))

	w, err := NewWatcher(store, nil)
	require.NoError(t, err)
	assert.NoError(t, w.Stop())
}
