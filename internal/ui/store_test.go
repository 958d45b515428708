package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentdesk/internal/storage"
)

// recordingApplier captures applied themes.
type recordingApplier struct {
	applied []Theme
}

func (a *recordingApplier) Apply(theme Theme) { a.applied = append(a.applied, theme) }

func TestDefaults(t *testing.T) {
	store := NewStore(storage.NewMemory(), nil)

	state := store.Snapshot()
	assert.True(t, state.SidebarOpen)
	assert.False(t, state.SidebarCollapsed)
	assert.Equal(t, ThemeDark, state.Theme)
	assert.Empty(t, state.Notifications)
}

func TestNotificationAutoExpiry(t *testing.T) {
	store := NewStore(storage.NewMemory(), nil)

	id := store.AddNotification(NotificationSuccess, "saved", 20*time.Millisecond)
	require.Len(t, store.Snapshot().Notifications, 1)
	assert.Equal(t, id, store.Snapshot().Notifications[0].ID)

	assert.Eventually(t, func() bool {
		return len(store.Snapshot().Notifications) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestStickyNotificationDoesNotExpire(t *testing.T) {
	store := NewStore(storage.NewMemory(), nil)

	store.AddNotification(NotificationError, "connection lost", DurationSticky)
	time.Sleep(30 * time.Millisecond)

	assert.Len(t, store.Snapshot().Notifications, 1)
}

func TestRemoveNotificationIsIdempotent(t *testing.T) {
	store := NewStore(storage.NewMemory(), nil)
	id := store.AddNotification(NotificationInfo, "hello", DurationSticky)

	store.RemoveNotification(id)
	store.RemoveNotification(id)

	assert.Empty(t, store.Snapshot().Notifications)
}

func TestClearNotifications(t *testing.T) {
	store := NewStore(storage.NewMemory(), nil)
	store.AddNotification(NotificationInfo, "one", DurationSticky)
	store.AddNotification(NotificationInfo, "two", DurationSticky)

	store.ClearNotifications()

	assert.Empty(t, store.Snapshot().Notifications)
}

func TestSidebarToggles(t *testing.T) {
	store := NewStore(storage.NewMemory(), nil)

	store.ToggleSidebar()
	assert.False(t, store.Snapshot().SidebarOpen)

	store.ToggleSidebarCollapse()
	assert.True(t, store.Snapshot().SidebarCollapsed)

	store.SetSidebarOpen(true)
	store.SetSidebarCollapsed(false)
	state := store.Snapshot()
	assert.True(t, state.SidebarOpen)
	assert.False(t, state.SidebarCollapsed)
}

func TestThemeToggleNotifiesApplier(t *testing.T) {
	applier := &recordingApplier{}
	store := NewStore(storage.NewMemory(), applier)
	// Construction applies the restored theme.
	require.Equal(t, []Theme{ThemeDark}, applier.applied)

	store.ToggleTheme()
	assert.Equal(t, ThemeLight, store.Snapshot().Theme)

	store.SetTheme(ThemeDark)
	assert.Equal(t, []Theme{ThemeDark, ThemeLight, ThemeDark}, applier.applied)
}

func TestMobileBreakpoint(t *testing.T) {
	store := NewStore(storage.NewMemory(), nil)

	store.SetWindowWidth(MobileBreakpoint - 1)
	assert.True(t, store.Snapshot().Mobile)

	store.SetWindowWidth(MobileBreakpoint)
	assert.False(t, store.Snapshot().Mobile)
}

func TestPersistedPreferencesRestore(t *testing.T) {
	kv := storage.NewMemory()
	store := NewStore(kv, nil)
	store.SetTheme(ThemeLight)
	store.SetSidebarCollapsed(true)
	// Ephemeral state is not persisted.
	store.AddNotification(NotificationInfo, "bye", DurationSticky)

	restored := NewStore(kv, nil)

	state := restored.Snapshot()
	assert.Equal(t, ThemeLight, state.Theme)
	assert.True(t, state.SidebarCollapsed)
	assert.Empty(t, state.Notifications)
}
