package service

import (
	"github.com/Beneli93/kvs-backend/internal/persistence"
	"github.com/Beneli93/kvs-backend/internal/store"
)

// Saver persists the store after a mutation. Services call it once per
// completed mutation; a failed save is surfaced, not retried.
type Saver interface {
	Save(st *store.Store) error
}

type fileSaver struct {
	path string
}

// NewFileSaver persists to the JSON data file at path.
func NewFileSaver(path string) Saver {
	return &fileSaver{path: path}
}

func (f *fileSaver) Save(st *store.Store) error {
	return persistence.Save(st, f.path)
}
