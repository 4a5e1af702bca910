package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/Beneli93/kvs-backend/internal/models"
	"github.com/Beneli93/kvs-backend/internal/store"
)

// fakeSaver records save calls and can be told to fail.
type fakeSaver struct {
	calls int
	err   error
}

func (f *fakeSaver) Save(st *store.Store) error {
	f.calls++
	return f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func validCreateRequest() *CreateCustomerRequest {
	return &CreateCustomerRequest{
		Salutation: "Herr",
		FirstName:  "Max",
		LastName:   "Müller",
		Gender:     "Männlich",
		Age:        42,
		Email:      "max@example.com",
		Residence:  "Berlin",
		PostalCode: "10115",
		Phone:      "0301234567",
		Mobile:     "01701234567",
	}
}

func TestCreateCustomer(t *testing.T) {
	st := store.New()
	saver := &fakeSaver{}
	svc := NewCustomerService(st, saver, testLogger())

	customer, err := svc.Create(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(customer.ID) != 8 {
		t.Errorf("ID = %q, want 8 characters", customer.ID)
	}
	if got, ok := st.Get(customer.ID); !ok || got.LastName != "Müller" {
		t.Errorf("customer not in store after Create")
	}
	if customer.Residences[0] != "Berlin" {
		t.Errorf("Residences = %v, want single Berlin entry", customer.Residences)
	}
	if saver.calls != 1 {
		t.Errorf("saver called %d times, want 1", saver.calls)
	}
}

func TestCreateCustomerValidationRejectsWholeMutation(t *testing.T) {
	st := store.New()
	saver := &fakeSaver{}
	svc := NewCustomerService(st, saver, testLogger())

	req := validCreateRequest()
	req.Phone = "abc"

	_, err := svc.Create(context.Background(), req)

	var valErr *models.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	found := false
	for _, msg := range valErr.Messages {
		if msg == "Telefon darf nur Zahlen enthalten." {
			found = true
		}
	}
	if !found {
		t.Errorf("messages %v missing the phone complaint", valErr.Messages)
	}
	if st.Len() != 0 {
		t.Errorf("store has %d customers after rejected create, want 0", st.Len())
	}
	if saver.calls != 0 {
		t.Errorf("saver called %d times after rejected create, want 0", saver.calls)
	}
}

func TestCreateCustomerSaveFailureSurfaces(t *testing.T) {
	st := store.New()
	saver := &fakeSaver{err: errors.New("disk full")}
	svc := NewCustomerService(st, saver, testLogger())

	if _, err := svc.Create(context.Background(), validCreateRequest()); err == nil {
		t.Error("Create with failing saver returned no error")
	}
}

func TestUpdateCustomerPartial(t *testing.T) {
	st := store.New()
	saver := &fakeSaver{}
	svc := NewCustomerService(st, saver, testLogger())

	created, err := svc.Create(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatal(err)
	}

	newName := "Meier"
	updated, err := svc.Update(context.Background(), created.ID, &UpdateCustomerRequest{LastName: &newName})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.LastName != "Meier" {
		t.Errorf("LastName = %s, want Meier", updated.LastName)
	}
	if updated.FirstName != "Max" {
		t.Errorf("FirstName changed to %s", updated.FirstName)
	}
	if saver.calls != 2 {
		t.Errorf("saver called %d times, want 2", saver.calls)
	}
}

func TestUpdateCustomerRejectedLeavesStoreUntouched(t *testing.T) {
	st := store.New()
	saver := &fakeSaver{}
	svc := NewCustomerService(st, saver, testLogger())

	created, err := svc.Create(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatal(err)
	}
	savesBefore := saver.calls

	badPhone := "nicht-numerisch"
	_, err = svc.Update(context.Background(), created.ID, &UpdateCustomerRequest{Phone: &badPhone})

	var valErr *models.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if got, _ := st.Get(created.ID); got.Phone != "0301234567" {
		t.Errorf("Phone = %s after rejected update, want original", got.Phone)
	}
	if saver.calls != savesBefore {
		t.Errorf("saver called during rejected update")
	}
}

func TestUpdateUnknownCustomer(t *testing.T) {
	svc := NewCustomerService(store.New(), &fakeSaver{}, testLogger())

	name := "Meier"
	_, err := svc.Update(context.Background(), "nope", &UpdateCustomerRequest{LastName: &name})
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestDeleteCustomer(t *testing.T) {
	st := store.New()
	saver := &fakeSaver{}
	svc := NewCustomerService(st, saver, testLogger())

	created, err := svc.Create(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if st.Len() != 0 {
		t.Errorf("store has %d customers after delete", st.Len())
	}

	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestSearchDelegatesToQuery(t *testing.T) {
	st := store.New()
	svc := NewCustomerService(st, &fakeSaver{}, testLogger())

	if _, err := svc.Create(context.Background(), validCreateRequest()); err != nil {
		t.Fatal(err)
	}

	if got := svc.Search(context.Background(), "müller"); len(got) != 1 {
		t.Errorf("Search(müller) = %d hits, want 1", len(got))
	}
	if got := svc.Search(context.Background(), "zzz"); len(got) != 0 {
		t.Errorf("Search(zzz) = %d hits, want 0", len(got))
	}
}

func TestStats(t *testing.T) {
	st := store.New()
	svc := NewCustomerService(st, &fakeSaver{}, testLogger())

	req := validCreateRequest()
	created, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}

	second := validCreateRequest()
	second.LastName = "Schmidt"
	second.Age = 20
	if _, err := svc.Create(context.Background(), second); err != nil {
		t.Fatal(err)
	}

	st.AppendAppointment(created.ID, "01.06.2025 um 10:00 - Checkup")

	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.Local)
	stats := svc.Stats(context.Background(), now)

	if stats.TotalCustomers != 2 {
		t.Errorf("TotalCustomers = %d, want 2", stats.TotalCustomers)
	}
	if stats.AverageAge != 31.0 {
		t.Errorf("AverageAge = %v, want 31", stats.AverageAge)
	}
	if stats.NextAppointment == nil || stats.NextAppointment.Note != "Checkup" {
		t.Errorf("NextAppointment = %+v, want the checkup", stats.NextAppointment)
	}
}
