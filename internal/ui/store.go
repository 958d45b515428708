// Package ui holds ephemeral and persisted UI preferences: sidebar state,
// theme, viewport class and the toast notification queue.
package ui

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"contentdesk/internal/debug"
	"contentdesk/internal/storage"
)

const persistenceKey = "ui"

// MobileBreakpoint is the width threshold below which the viewport is
// classified as mobile.
const MobileBreakpoint = 768

// DefaultNotificationDuration applies when AddNotification is called with a
// zero duration.
const DefaultNotificationDuration = 5 * time.Second

// DurationSticky disables auto-expiry for a notification.
const DurationSticky = time.Duration(-1)

// Theme selects the color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// NotificationKind tags the severity of a notification.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
	NotificationInfo    NotificationKind = "info"
	NotificationWarning NotificationKind = "warning"
)

// Notification is one toast in the queue.
type Notification struct {
	ID       string
	Kind     NotificationKind
	Message  string
	Duration time.Duration
}

// State is a snapshot of the UI preference store.
type State struct {
	Notifications    []Notification
	SidebarOpen      bool
	SidebarCollapsed bool
	Theme            Theme
	Mobile           bool
}

// ThemeApplier reflects a theme change onto the rendering surface (the
// terminal profile here, the document root in a browser).
type ThemeApplier interface {
	Apply(theme Theme)
}

// NoopThemeApplier ignores theme changes.
type NoopThemeApplier struct{}

// Apply implements ThemeApplier.
func (NoopThemeApplier) Apply(Theme) {}

// persistedState is the subset of store state written to durable storage.
type persistedState struct {
	SidebarCollapsed bool  `json:"sidebar_collapsed"`
	Theme            Theme `json:"theme"`
}

var log = debug.GetLogger()

// Store is the UI preference state container.
type Store struct {
	mu      sync.Mutex
	state   State
	kv      storage.KV
	applier ThemeApplier

	// Pending expiry timers by notification id.
	timers map[string]*time.Timer
}

// NewStore builds a UI store, restoring the persisted preferences and
// applying the restored theme.
func NewStore(kv storage.KV, applier ThemeApplier) *Store {
	if applier == nil {
		applier = NoopThemeApplier{}
	}
	s := &Store{
		state: State{
			SidebarOpen: true,
			Theme:       ThemeDark,
		},
		kv:      kv,
		applier: applier,
		timers:  map[string]*time.Timer{},
	}
	s.restore()
	s.applier.Apply(s.state.Theme)
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.state
	state.Notifications = append([]Notification(nil), s.state.Notifications...)
	return state
}

// AddNotification queues a notification and schedules its removal after
// duration (DefaultNotificationDuration when zero, never for
// DurationSticky). Returns the assigned id.
func (s *Store) AddNotification(kind NotificationKind, message string, duration time.Duration) string {
	if duration == 0 {
		duration = DefaultNotificationDuration
	}
	notification := Notification{
		ID:       uuid.New().String(),
		Kind:     kind,
		Message:  message,
		Duration: duration,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Notifications = append(s.state.Notifications, notification)
	if duration != DurationSticky {
		s.timers[notification.ID] = time.AfterFunc(duration, func() {
			s.RemoveNotification(notification.ID)
		})
	}
	return notification.ID
}

// RemoveNotification drops a notification. Idempotent when the id is
// already gone.
func (s *Store) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeNotificationLocked(id)
}

func (s *Store) removeNotificationLocked(id string) {
	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}
	for i, notification := range s.state.Notifications {
		if notification.ID == id {
			s.state.Notifications = append(s.state.Notifications[:i], s.state.Notifications[i+1:]...)
			return
		}
	}
}

// ClearNotifications drops every queued notification and cancels their
// expiry timers.
func (s *Store) ClearNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	s.state.Notifications = nil
}

// ToggleSidebar flips the sidebar open flag.
func (s *Store) ToggleSidebar() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SidebarOpen = !s.state.SidebarOpen
}

// SetSidebarOpen sets the sidebar open flag.
func (s *Store) SetSidebarOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SidebarOpen = open
}

// ToggleSidebarCollapse flips the persisted sidebar collapse flag.
func (s *Store) ToggleSidebarCollapse() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SidebarCollapsed = !s.state.SidebarCollapsed
	s.persistLocked()
}

// SetSidebarCollapsed sets the persisted sidebar collapse flag.
func (s *Store) SetSidebarCollapsed(collapsed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SidebarCollapsed = collapsed
	s.persistLocked()
}

// ToggleTheme flips between light and dark and reflects the change onto the
// applier.
func (s *Store) ToggleTheme() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Theme == ThemeDark {
		s.state.Theme = ThemeLight
	} else {
		s.state.Theme = ThemeDark
	}
	s.applier.Apply(s.state.Theme)
	s.persistLocked()
}

// SetTheme sets the theme and reflects the change onto the applier.
func (s *Store) SetTheme(theme Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Theme = theme
	s.applier.Apply(theme)
	s.persistLocked()
}

// SetWindowWidth reclassifies the viewport from a width measurement.
func (s *Store) SetWindowWidth(width int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Mobile = width < MobileBreakpoint
}

func (s *Store) persistLocked() {
	snapshot := persistedState{
		SidebarCollapsed: s.state.SidebarCollapsed,
		Theme:            s.state.Theme,
	}
	bytes, err := json.Marshal(snapshot)
	if err != nil {
		log.Warn("marshaling ui snapshot", "error", err)
		return
	}
	if err := s.kv.Set(persistenceKey, string(bytes)); err != nil {
		log.Warn("persisting ui snapshot", "error", err)
	}
}

func (s *Store) restore() {
	value, ok, err := s.kv.Get(persistenceKey)
	if err != nil {
		log.Warn("reading persisted ui state", "error", err)
		return
	}
	if !ok {
		return
	}
	snapshot := persistedState{}
	if err := json.Unmarshal([]byte(value), &snapshot); err != nil {
		log.Warn("unmarshaling persisted ui state", "error", err)
		return
	}
	s.state.SidebarCollapsed = snapshot.SidebarCollapsed
	if snapshot.Theme == ThemeLight || snapshot.Theme == ThemeDark {
		s.state.Theme = snapshot.Theme
	}
}
