package session

import (
	"context"
	"encoding/json"
	"sync"

	"dario.cat/mergo"
	"github.com/pkg/errors"

	"contentdesk/internal/debug"
	"contentdesk/internal/storage"
)

const persistenceKey = "session"

var log = debug.GetLogger()

// persistedState is the subset of store state written to durable storage.
type persistedState struct {
	User          *User `json:"user"`
	Authenticated bool  `json:"authenticated"`
}

// Store is the session state container. All mutations go through its
// methods; reads are snapshot reads.
type Store struct {
	mu            sync.Mutex
	state         State
	kv            storage.KV
	authenticator Authenticator
}

// NewStore builds a session store, restoring any persisted snapshot.
func NewStore(kv storage.KV, authenticator Authenticator) *Store {
	s := &Store{kv: kv, authenticator: authenticator}
	s.restore()
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	state := s.state
	if s.state.User != nil {
		user := *s.state.User
		state.User = &user
	}
	return state
}

// Login performs the authentication round trip. On success the user is
// stored and persisted; on failure state stays unauthenticated and the
// error is returned so the caller can react. The loading flag is true
// exactly while the round trip is pending.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.mu.Lock()
	s.state.Loading = true
	s.mu.Unlock()

	user, err := s.authenticator.Authenticate(ctx, email, password)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	if err != nil {
		return errors.Wrap(err, "authenticating")
	}

	s.state.User = user
	s.state.Authenticated = true
	s.persistLocked()
	return nil
}

// Logout clears the user, the authentication flag and the persisted record.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.User = nil
	s.state.Authenticated = false
	if err := s.kv.Remove(persistenceKey); err != nil {
		log.Warn("removing persisted session", "error", err)
	}
}

// UpdateUser merges the non-zero fields of patch into the current user.
// No-op when nobody is logged in.
func (s *Store) UpdateUser(patch User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.User == nil {
		return
	}
	if err := mergo.Merge(s.state.User, patch, mergo.WithOverride); err != nil {
		log.Warn("merging user patch", "error", err)
		return
	}
	s.persistLocked()
}

func (s *Store) persistLocked() {
	snapshot := persistedState{
		User:          s.state.User,
		Authenticated: s.state.Authenticated,
	}
	bytes, err := json.Marshal(snapshot)
	if err != nil {
		log.Warn("marshaling session snapshot", "error", err)
		return
	}
	if err := s.kv.Set(persistenceKey, string(bytes)); err != nil {
		log.Warn("persisting session snapshot", "error", err)
	}
}

func (s *Store) restore() {
	value, ok, err := s.kv.Get(persistenceKey)
	if err != nil {
		log.Warn("reading persisted session", "error", err)
		return
	}
	if !ok {
		return
	}
	snapshot := persistedState{}
	if err := json.Unmarshal([]byte(value), &snapshot); err != nil {
		// Corrupt snapshot: start fresh.
		log.Warn("unmarshaling persisted session", "error", err)
		return
	}
	s.state.User = snapshot.User
	s.state.Authenticated = snapshot.Authenticated
}
