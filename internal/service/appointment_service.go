package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Beneli93/kvs-backend/internal/appointment"
	"github.com/Beneli93/kvs-backend/internal/models"
	"github.com/Beneli93/kvs-backend/internal/query"
	"github.com/Beneli93/kvs-backend/internal/store"
)

// AppointmentService handles appointment booking and listing
type AppointmentService interface {
	Book(ctx context.Context, customerID string, req *BookAppointmentRequest) (*models.Customer, error)
	Update(ctx context.Context, customerID string, index int, req *BookAppointmentRequest) error
	Cancel(ctx context.Context, customerID string, index int) error
	Upcoming(ctx context.Context, now time.Time) []query.AppointmentView
	Reminders(ctx context.Context, now time.Time, days int) []query.AppointmentView
	Search(ctx context.Context, term string) []query.AppointmentView
}

type appointmentService struct {
	store  *store.Store
	saver  Saver
	logger *slog.Logger
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(st *store.Store, saver Saver, logger *slog.Logger) AppointmentService {
	return &appointmentService{
		store:  st,
		saver:  saver,
		logger: logger,
	}
}

// Book appends an appointment to the customer and persists the store.
// Non-empty phone/mobile in the request also update the customer's
// contact fields, like the booking form they come from.
func (s *appointmentService) Book(ctx context.Context, customerID string, req *BookAppointmentRequest) (*models.Customer, error) {
	entry, err := composeEntry(req)
	if err != nil {
		return nil, err
	}

	if _, ok := s.store.Get(customerID); !ok {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("customer %s not found", customerID))
	}

	s.updateContact(customerID, req)
	s.store.AppendAppointment(customerID, entry)

	if err := s.saver.Save(s.store); err != nil {
		s.logger.Error("failed to persist booked appointment",
			slog.String("customer_id", customerID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to persist appointment: %w", err)
	}

	s.logger.Info("appointment booked",
		slog.String("customer_id", customerID),
		slog.String("entry", entry),
	)

	customer, _ := s.store.Get(customerID)
	return customer, nil
}

// Update replaces the appointment at index; the index within the
// customer's raw list is the appointment's identity.
func (s *appointmentService) Update(ctx context.Context, customerID string, index int, req *BookAppointmentRequest) error {
	entry, err := composeEntry(req)
	if err != nil {
		return err
	}

	// The whole submission applies or nothing does: the contact fields
	// may only change once the appointment slot is known to exist.
	if !s.store.SetAppointment(customerID, index, entry) {
		return models.ErrNotFoundWithMsg(
			fmt.Sprintf("appointment %d of customer %s not found", index, customerID),
		)
	}
	s.updateContact(customerID, req)

	if err := s.saver.Save(s.store); err != nil {
		s.logger.Error("failed to persist appointment update",
			slog.String("customer_id", customerID),
			slog.Int("index", index),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to persist appointment: %w", err)
	}

	s.logger.Info("appointment updated",
		slog.String("customer_id", customerID),
		slog.Int("index", index),
	)
	return nil
}

// Cancel removes the appointment at index.
func (s *appointmentService) Cancel(ctx context.Context, customerID string, index int) error {
	if !s.store.RemoveAppointment(customerID, index) {
		return models.ErrNotFoundWithMsg(
			fmt.Sprintf("appointment %d of customer %s not found", index, customerID),
		)
	}

	if err := s.saver.Save(s.store); err != nil {
		s.logger.Error("failed to persist appointment cancellation",
			slog.String("customer_id", customerID),
			slog.Int("index", index),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to persist appointment: %w", err)
	}

	s.logger.Info("appointment cancelled",
		slog.String("customer_id", customerID),
		slog.Int("index", index),
	)
	return nil
}

// Upcoming lists every future appointment across all customers,
// soonest first. Malformed entries are skipped, not reported.
func (s *appointmentService) Upcoming(ctx context.Context, now time.Time) []query.AppointmentView {
	return query.Upcoming(s.store.All(), now)
}

// Reminders narrows the upcoming list to the next days days.
func (s *appointmentService) Reminders(ctx context.Context, now time.Time, days int) []query.AppointmentView {
	return query.WithinWindow(query.Upcoming(s.store.All(), now), now, days)
}

// Search lists all appointments, past ones included, for customers
// matching term.
func (s *appointmentService) Search(ctx context.Context, term string) []query.AppointmentView {
	return query.SearchAppointments(s.store.All(), term)
}

// composeEntry renders the request into the raw entry format and
// rejects anything that would not parse back.
func composeEntry(req *BookAppointmentRequest) (string, error) {
	entry := req.Date + " um " + req.Time + " - " + req.Note
	if _, err := appointment.Parse(entry); err != nil {
		return "", models.ErrInvalidInput(err.Error())
	}
	return entry, nil
}

func (s *appointmentService) updateContact(customerID string, req *BookAppointmentRequest) {
	var ch models.FieldChanges
	if req.Phone != "" {
		ch.Phone = &req.Phone
	}
	if req.Mobile != "" {
		ch.Mobile = &req.Mobile
	}
	if ch.Phone != nil || ch.Mobile != nil {
		s.store.Update(customerID, ch)
	}
}
