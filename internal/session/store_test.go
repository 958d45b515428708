package session

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentdesk/internal/storage"
)

// scriptedAuthenticator returns a fixed user or error.
type scriptedAuthenticator struct {
	user *User
	err  error
}

func (a *scriptedAuthenticator) Authenticate(context.Context, string, string) (*User, error) {
	return a.user, a.err
}

func TestLoginSuccess(t *testing.T) {
	kv := storage.NewMemory()
	store := NewStore(kv, &scriptedAuthenticator{
		user: &User{ID: "u-1", Email: "ada@example.com", Name: "ada"},
	})

	require.NoError(t, store.Login(context.Background(), "ada@example.com", "hunter2"))

	state := store.Snapshot()
	assert.True(t, state.Authenticated)
	assert.False(t, state.Loading)
	require.NotNil(t, state.User)
	assert.Equal(t, "ada@example.com", state.User.Email)

	// The snapshot was persisted.
	_, ok, err := kv.Get("session")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLoginFailureClearsLoadingAndReturnsError(t *testing.T) {
	store := NewStore(storage.NewMemory(), &scriptedAuthenticator{err: errors.New("boom")})

	err := store.Login(context.Background(), "ada@example.com", "hunter2")
	require.Error(t, err)

	state := store.Snapshot()
	assert.False(t, state.Authenticated)
	assert.False(t, state.Loading)
	assert.Nil(t, state.User)
}

func TestLogoutClearsStateAndPersistedRecord(t *testing.T) {
	kv := storage.NewMemory()
	store := NewStore(kv, &scriptedAuthenticator{user: &User{ID: "u-1", Email: "ada@example.com"}})
	require.NoError(t, store.Login(context.Background(), "ada@example.com", ""))

	store.Logout()

	state := store.Snapshot()
	assert.False(t, state.Authenticated)
	assert.Nil(t, state.User)
	_, ok, err := kv.Get("session")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateUserMergesPartialFields(t *testing.T) {
	store := NewStore(storage.NewMemory(), &scriptedAuthenticator{
		user: &User{ID: "u-1", Email: "ada@example.com", Name: "ada"},
	})
	require.NoError(t, store.Login(context.Background(), "ada@example.com", ""))

	store.UpdateUser(User{Name: "Ada Lovelace", AvatarURL: "https://example.com/ada.png"})

	state := store.Snapshot()
	require.NotNil(t, state.User)
	assert.Equal(t, "Ada Lovelace", state.User.Name)
	assert.Equal(t, "https://example.com/ada.png", state.User.AvatarURL)
	// Untouched fields survive the merge.
	assert.Equal(t, "ada@example.com", state.User.Email)
}

func TestUpdateUserWithoutUserIsNoop(t *testing.T) {
	store := NewStore(storage.NewMemory(), &scriptedAuthenticator{})

	store.UpdateUser(User{Name: "ghost"})

	assert.Nil(t, store.Snapshot().User)
}

func TestRestoreFromPersistedSnapshot(t *testing.T) {
	kv := storage.NewMemory()
	require.NoError(t, kv.Set("session", `{"user":{"id":"u-9","email":"g@example.com"},"authenticated":true}`))

	store := NewStore(kv, &scriptedAuthenticator{})

	state := store.Snapshot()
	assert.True(t, state.Authenticated)
	require.NotNil(t, state.User)
	assert.Equal(t, "u-9", state.User.ID)
}

func TestRestoreIgnoresCorruptSnapshot(t *testing.T) {
	kv := storage.NewMemory()
	require.NoError(t, kv.Set("session", "{corrupt"))

	store := NewStore(kv, &scriptedAuthenticator{})

	state := store.Snapshot()
	assert.False(t, state.Authenticated)
	assert.Nil(t, state.User)
}

func TestSimulatedAuthenticatorDerivesUserFromEmail(t *testing.T) {
	authenticator := &SimulatedAuthenticator{}

	user, err := authenticator.Authenticate(context.Background(), "grace@example.com", "anything")
	require.NoError(t, err)

	assert.Equal(t, "grace", user.Name)
	assert.Contains(t, user.AvatarURL, "seed=grace@example.com")
	assert.NotEmpty(t, user.ID)
}
