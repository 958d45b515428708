package tabular

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"

	"contentdesk/internal/debug"
	"contentdesk/internal/storage"
)

const persistenceKey = "tabular"

// User-facing error categories. Raw transport detail stays in the debug log.
const (
	errConnect      = "Failed to connect to Airtable. Please check your access token and base ID."
	errFetchTables  = "Failed to fetch tables. Please try again."
	errFetchRecords = "Failed to fetch table data. Please try again."
	errRefresh      = "Failed to refresh data. Please try again."
	errNoConfig     = "No Airtable configuration provided"
)

var log = debug.GetLogger()

// persistedState is the subset of store state written to durable storage.
type persistedState struct {
	Config          *Config `json:"config"`
	SelectedTableID string  `json:"selected_table_id,omitempty"`
}

// Store is the external-table state container.
//
// Table selection is two-phase: SelectTable moves the selection pointer
// synchronously and then loads records; a load result is applied only if the
// selection has not moved on in the meantime, so a slow response for a
// previous table cannot overwrite a newer one.
type Store struct {
	mu     sync.Mutex
	state  State
	kv     storage.KV
	client Client

	// Bumped on every selection change; stamps in-flight record loads.
	selectionGeneration uint64
}

// NewStore builds a tabular store, restoring any persisted config and
// selection.
func NewStore(kv storage.KV, client Client) *Store {
	s := &Store{kv: kv, client: client}
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
	if s.state.Config != nil {
		config := *s.state.Config
		state.Config = &config
	}
	state.Tables = append([]Table(nil), s.state.Tables...)
	state.TableData = append([]Record(nil), s.state.TableData...)
	return state
}

// SetConfig stores the connection config and fetches the table list. The
// config is retained even when the fetch fails; the error is both recorded
// in state and returned so the caller can keep its form open.
func (s *Store) SetConfig(ctx context.Context, config Config) error {
	s.mu.Lock()
	s.state.Config = &config
	s.state.Loading = true
	s.state.Error = ""
	s.persistLocked()
	s.mu.Unlock()

	tables, err := s.client.ListTables(ctx, config)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	if err != nil {
		log.Warn("connecting to airtable", "error", err)
		s.state.Error = errConnect
		return errors.Wrap(err, "listing tables")
	}

	s.state.Tables = tables
	s.state.LastSync = time.Now()
	return nil
}

// FetchTables refetches and replaces the table list. Without a config it
// only records an error.
func (s *Store) FetchTables(ctx context.Context) {
	s.mu.Lock()
	if s.state.Config == nil {
		s.state.Error = errNoConfig
		s.mu.Unlock()
		return
	}
	config := *s.state.Config
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()

	tables, err := s.client.ListTables(ctx, config)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	if err != nil {
		log.Warn("fetching tables", "error", err)
		s.state.Error = errFetchTables
		return
	}
	s.state.Tables = tables
	s.state.LastSync = time.Now()
}

// SelectTable optimistically moves the selection pointer, then loads the
// table's records. On failure the previous records are retained.
func (s *Store) SelectTable(ctx context.Context, tableID string) {
	s.mu.Lock()
	if s.state.Config == nil {
		s.state.Error = errNoConfig
		s.mu.Unlock()
		return
	}
	config := *s.state.Config
	s.state.SelectedTableID = tableID
	s.selectionGeneration++
	generation := s.selectionGeneration
	s.state.Loading = true
	s.state.Error = ""
	s.persistLocked()
	s.mu.Unlock()

	s.loadRecords(ctx, config, tableID, generation, errFetchRecords)
}

// RefreshData refetches records for the currently selected table. No-op
// without a selection.
func (s *Store) RefreshData(ctx context.Context) {
	s.mu.Lock()
	if s.state.SelectedTableID == "" || s.state.Config == nil {
		s.mu.Unlock()
		return
	}
	config := *s.state.Config
	tableID := s.state.SelectedTableID
	generation := s.selectionGeneration
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()

	s.loadRecords(ctx, config, tableID, generation, errRefresh)
}

// loadRecords performs the fetch and applies the result only if the
// selection generation still matches. Stale results are dropped without
// touching state owned by the newer request.
func (s *Store) loadRecords(ctx context.Context, config Config, tableID string, generation uint64, category string) {
	records, err := s.client.ListRecords(ctx, config, tableID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.selectionGeneration {
		log.Debug("dropping stale record load", "table", tableID)
		return
	}
	s.state.Loading = false
	if err != nil {
		log.Warn("fetching records", "table", tableID, "error", err)
		s.state.Error = category
		return
	}
	s.state.TableData = records
	s.state.LastSync = time.Now()
}

// ClearData fully disconnects: config, tables, selection, records and sync
// marker are reset. Idempotent.
func (s *Store) ClearData() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = State{}
	s.selectionGeneration++
	if err := s.kv.Remove(persistenceKey); err != nil {
		log.Warn("removing persisted tabular state", "error", err)
	}
}

func (s *Store) persistLocked() {
	snapshot := persistedState{
		Config:          s.state.Config,
		SelectedTableID: s.state.SelectedTableID,
	}
	bytes, err := json.Marshal(snapshot)
	if err != nil {
		log.Warn("marshaling tabular snapshot", "error", err)
		return
	}
	if err := s.kv.Set(persistenceKey, string(bytes)); err != nil {
		log.Warn("persisting tabular snapshot", "error", err)
	}
}

func (s *Store) restore() {
	value, ok, err := s.kv.Get(persistenceKey)
	if err != nil {
		log.Warn("reading persisted tabular state", "error", err)
		return
	}
	if !ok {
		return
	}
	snapshot := persistedState{}
	if err := json.Unmarshal([]byte(value), &snapshot); err != nil {
		log.Warn("unmarshaling persisted tabular state", "error", err)
		return
	}
	s.state.Config = snapshot.Config
	s.state.SelectedTableID = snapshot.SelectedTableID
}
