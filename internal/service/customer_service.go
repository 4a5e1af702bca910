package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Beneli93/kvs-backend/internal/models"
	"github.com/Beneli93/kvs-backend/internal/query"
	"github.com/Beneli93/kvs-backend/internal/store"
)

// CustomerService handles customer business logic
type CustomerService interface {
	Create(ctx context.Context, req *CreateCustomerRequest) (*models.Customer, error)
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	Search(ctx context.Context, term string) []*models.Customer
	Update(ctx context.Context, id string, req *UpdateCustomerRequest) (*models.Customer, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, now time.Time) Stats
}

type customerService struct {
	store  *store.Store
	saver  Saver
	logger *slog.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(st *store.Store, saver Saver, logger *slog.Logger) CustomerService {
	return &customerService{
		store:  st,
		saver:  saver,
		logger: logger,
	}
}

// Create validates and stores a new customer, then persists the store.
// A validation failure rejects the whole mutation; nothing is added.
func (s *customerService) Create(ctx context.Context, req *CreateCustomerRequest) (*models.Customer, error) {
	customer := models.NewCustomer(
		req.Salutation,
		req.FirstName,
		req.LastName,
		req.Gender,
		req.Age,
		req.Email,
		[]string{req.Residence},
		req.PostalCode,
		req.Phone,
		req.Mobile,
	)

	if err := customer.Validate(); err != nil {
		return nil, err
	}

	s.store.Add(customer)
	if err := s.saver.Save(s.store); err != nil {
		s.logger.Error("failed to persist new customer",
			slog.String("customer_id", customer.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to persist customer: %w", err)
	}

	s.logger.Info("customer created",
		slog.String("customer_id", customer.ID),
		slog.String("last_name", customer.LastName),
	)

	return customer, nil
}

// GetByID retrieves a customer by ID
func (s *customerService) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	customer, ok := s.store.Get(id)
	if !ok {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("customer %s not found", id))
	}
	return customer, nil
}

// Search returns the customers matching term, all of them when term is
// empty. Read-only; never mutates the store.
func (s *customerService) Search(ctx context.Context, term string) []*models.Customer {
	return query.Search(s.store.All(), term)
}

// Update applies a partial change set to an existing customer. The
// merged result is validated before anything is written.
func (s *customerService) Update(ctx context.Context, id string, req *UpdateCustomerRequest) (*models.Customer, error) {
	merged, ok := s.store.Get(id)
	if !ok {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("customer %s not found", id))
	}

	changes := changeSet(req)

	// Get hands out a detached copy, so the merge validates the full
	// result without touching stored state; a rejection writes nothing.
	changes.Apply(merged)
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	s.store.Update(id, changes)
	if err := s.saver.Save(s.store); err != nil {
		s.logger.Error("failed to persist customer update",
			slog.String("customer_id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to persist customer: %w", err)
	}

	s.logger.Info("customer updated", slog.String("customer_id", id))

	updated, _ := s.store.Get(id)
	return updated, nil
}

// Delete removes a customer and persists the store.
func (s *customerService) Delete(ctx context.Context, id string) error {
	if _, ok := s.store.Get(id); !ok {
		return models.ErrNotFoundWithMsg(fmt.Sprintf("customer %s not found", id))
	}

	s.store.Remove(id)
	if err := s.saver.Save(s.store); err != nil {
		s.logger.Error("failed to persist customer deletion",
			slog.String("customer_id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to persist customer: %w", err)
	}

	s.logger.Info("customer deleted", slog.String("customer_id", id))
	return nil
}

// Stats summarizes the store for the dashboard. The average counts
// only customers with a positive age.
func (s *customerService) Stats(ctx context.Context, now time.Time) Stats {
	customers := s.store.All()

	var sum, counted int
	for _, c := range customers {
		if c.Age > 0 {
			sum += c.Age
			counted++
		}
	}

	stats := Stats{TotalCustomers: len(customers)}
	if counted > 0 {
		stats.AverageAge = float64(sum) / float64(counted)
	}

	if upcoming := query.Upcoming(customers, now); len(upcoming) > 0 {
		stats.NextAppointment = &upcoming[0]
	}
	return stats
}

func changeSet(req *UpdateCustomerRequest) models.FieldChanges {
	ch := models.FieldChanges{
		Salutation: req.Salutation,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Gender:     req.Gender,
		Age:        req.Age,
		Email:      req.Email,
		PostalCode: req.PostalCode,
		Phone:      req.Phone,
		Mobile:     req.Mobile,
	}
	if req.Residence != nil {
		ch.Residences = []string{*req.Residence}
	}
	return ch
}
