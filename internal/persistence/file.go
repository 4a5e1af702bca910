// Package persistence is the load/save boundary between the store and
// its JSON file on disk.
package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/Beneli93/kvs-backend/internal/models"
	"github.com/Beneli93/kvs-backend/internal/store"
)

// DefaultPath is the conventional data file name.
const DefaultPath = "kunden.json"

// PersistenceError reports a data file that exists but could not be
// read or decoded. Callers treat it as "no data yet" and continue with
// the empty store returned alongside it.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("data file %s unusable: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Save writes every customer as a flat record keyed by ID, indented
// with four spaces. The file is fully overwritten; a crash mid-write
// can corrupt it (accepted limitation, Load falls back to empty).
// Write errors propagate to the caller.
func Save(st *store.Store, path string) error {
	records := make(map[string]models.Record)
	for _, c := range st.All() {
		records[c.ID] = c.ToRecord()
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Load reads the data file into a fresh store. A missing file yields
// an empty store and no error. An unreadable or malformed file yields
// an empty store and a PersistenceError so the caller can log the loss
// explicitly instead of it being swallowed here.
func Load(path string) (*store.Store, error) {
	st := store.New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return st, nil
		}
		return st, &PersistenceError{Path: path, Err: err}
	}

	var records map[string]models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return store.New(), &PersistenceError{Path: path, Err: err}
	}

	// Load in sorted-ID order so the store's listing order is stable
	// across runs; map iteration order would reshuffle it every start.
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		st.Add(models.CustomerFromRecord(records[id]))
	}
	return st, nil
}
