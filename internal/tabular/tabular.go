// Package tabular manages the connection to a remote tabular-data service
// (Airtable-style): connection config, fetched table schemas, and the
// records of the currently selected table.
package tabular

import (
	"sort"
	"time"

	"github.com/scylladb/go-set/strset"
)

// Config addresses the remote service: the bearer credential, the base
// (collection) identifier and an optional table name. Its presence is what
// makes the store "connected".
type Config struct {
	AccessToken string `json:"access_token"`
	BaseID      string `json:"base_id"`
	TableName   string `json:"table_name,omitempty"`
}

// Field describes one column of a remote table.
type Field struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Table is a remote table schema.
type Table struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Record is one row of the selected table. Field values are heterogeneous
// (text, number, boolean, date, array).
type Record struct {
	ID          string         `json:"id"`
	Fields      map[string]any `json:"fields"`
	CreatedTime time.Time      `json:"createdTime"`
}

// State is a snapshot of the tabular store.
type State struct {
	Config          *Config
	Tables          []Table
	SelectedTableID string
	TableData       []Record
	Loading         bool
	Error           string
	LastSync        time.Time
}

// Connected reports whether a connection config is present.
func (s State) Connected() bool { return s.Config != nil }

// statusField is the record field the derived post views compare on.
const statusField = "Status"

// AllPosts returns the records of the current table data.
func AllPosts(state State) []Record {
	return state.TableData
}

// PostsByStatus returns the records whose Status field strictly equals
// status. Exact string match: no normalization, no case folding.
func PostsByStatus(state State, status string) []Record {
	var records []Record
	for _, record := range state.TableData {
		if value, ok := record.Fields[statusField].(string); ok && value == status {
			records = append(records, record)
		}
	}
	return records
}

// Statuses returns the distinct Status values present in the current table
// data, sorted.
func Statuses(state State) []string {
	set := strset.New()
	for _, record := range state.TableData {
		if value, ok := record.Fields[statusField].(string); ok {
			set.Add(value)
		}
	}
	statuses := set.List()
	sort.Strings(statuses)
	return statuses
}
