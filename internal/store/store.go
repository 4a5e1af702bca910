// Package store owns the in-memory customer collection for a session.
// It is keyed by customer ID and remembers insertion order so listings
// are deterministic across calls.
package store

import (
	"sync"

	"github.com/Beneli93/kvs-backend/internal/models"
)

// Store is the keyed in-memory collection of all customers. It carries
// no identity beyond its contents; the hosting layer creates it at
// startup (usually via persistence.Load) and persists it after every
// mutation.
type Store struct {
	mu        sync.RWMutex
	customers map[string]*models.Customer
	order     []string
}

// New creates an empty store.
func New() *Store {
	return &Store{
		customers: make(map[string]*models.Customer),
		order:     make([]string, 0),
	}
}

// Add inserts or overwrites by ID, last write wins. An overwrite keeps
// the customer's position in the listing order. The store takes
// ownership of c; callers wanting the stored state back use Get.
func (s *Store) Add(c *models.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.customers[c.ID]; !exists {
		s.order = append(s.order, c.ID)
	}
	s.customers[c.ID] = c
}

// Update applies a field change set to an existing customer. An
// unknown ID is a silent no-op; nil members leave fields untouched.
func (s *Store) Update(id string, ch models.FieldChanges) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[id]
	if !ok {
		return
	}
	ch.Apply(c)
}

// Remove deletes by ID; absent IDs are a silent no-op. A removed ID is
// never reused: new IDs come from the customer constructor, not from
// the store.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.customers[id]; !exists {
		return
	}
	delete(s.customers, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Get retrieves a customer by ID. The result is a detached copy:
// readers never share memory with store-held state, which is only
// mutated under the store's lock. Writes go through Update and the
// appointment methods.
func (s *Store) Get(id string) (*models.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customers[id]
	if !ok {
		return nil, false
	}
	return clone(c), true
}

// All returns a detached copy of every customer in insertion order.
func (s *Store) All() []*models.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Customer, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, clone(s.customers[id]))
	}
	return out
}

func clone(c *models.Customer) *models.Customer {
	cp := *c
	cp.Residences = append(make([]string, 0, len(c.Residences)), c.Residences...)
	cp.Appointments = append(make([]string, 0, len(c.Appointments)), c.Appointments...)
	return &cp
}

// Len reports the number of customers held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.customers)
}

// AppendAppointment adds a raw appointment string to a customer.
// Returns false when the ID is unknown.
func (s *Store) AppendAppointment(id, entry string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[id]
	if !ok {
		return false
	}
	c.Appointments = append(c.Appointments, entry)
	return true
}

// SetAppointment replaces the appointment at idx. The index is the
// appointment's identity within the customer. Returns false when the
// ID is unknown or idx is out of range.
func (s *Store) SetAppointment(id string, idx int, entry string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[id]
	if !ok || idx < 0 || idx >= len(c.Appointments) {
		return false
	}
	c.Appointments[idx] = entry
	return true
}

// RemoveAppointment deletes the appointment at idx, shifting later
// entries down. Returns false when the ID is unknown or idx is out of
// range.
func (s *Store) RemoveAppointment(id string, idx int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[id]
	if !ok || idx < 0 || idx >= len(c.Appointments) {
		return false
	}
	c.Appointments = append(c.Appointments[:idx], c.Appointments[idx+1:]...)
	return true
}
