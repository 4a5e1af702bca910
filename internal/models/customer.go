package models

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Customer represents a customer in the system. Appointments holds the
// raw appointment strings in insertion order; the index within the
// slice is the identity used to edit or delete a single appointment.
type Customer struct {
	ID           string   `json:"id"`
	Salutation   string   `json:"salutation"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Gender       string   `json:"gender"`
	Age          int      `json:"age"`
	Email        string   `json:"email"`
	PostalCode   string   `json:"postal_code"`
	Phone        string   `json:"phone"`
	Mobile       string   `json:"mobile"`
	Residences   []string `json:"residences"`
	Appointments []string `json:"appointments"`
}

// NewCustomer creates a customer with a fresh ID and no appointments.
// Residences is always a slice; callers wrap a single place name
// themselves.
func NewCustomer(salutation, firstName, lastName, gender string, age int, email string, residences []string, postalCode, phone, mobile string) *Customer {
	return &Customer{
		ID:           uuid.NewString()[:8],
		Salutation:   salutation,
		FirstName:    firstName,
		LastName:     lastName,
		Gender:       gender,
		Age:          age,
		Email:        email,
		PostalCode:   postalCode,
		Phone:        phone,
		Mobile:       mobile,
		Residences:   residences,
		Appointments: []string{},
	}
}

// FieldChanges is a typed change set for Update. Nil members leave the
// corresponding field untouched; unknown fields cannot be expressed.
type FieldChanges struct {
	Salutation *string
	FirstName  *string
	LastName   *string
	Gender     *string
	Age        *int
	Email      *string
	PostalCode *string
	Phone      *string
	Mobile     *string
	Residences []string
}

// Apply writes the non-nil members onto c. The ID is not part of the
// change set; it is immutable after creation.
func (ch FieldChanges) Apply(c *Customer) {
	if ch.Salutation != nil {
		c.Salutation = *ch.Salutation
	}
	if ch.FirstName != nil {
		c.FirstName = *ch.FirstName
	}
	if ch.LastName != nil {
		c.LastName = *ch.LastName
	}
	if ch.Gender != nil {
		c.Gender = *ch.Gender
	}
	if ch.Age != nil {
		c.Age = *ch.Age
	}
	if ch.Email != nil {
		c.Email = *ch.Email
	}
	if ch.PostalCode != nil {
		c.PostalCode = *ch.PostalCode
	}
	if ch.Phone != nil {
		c.Phone = *ch.Phone
	}
	if ch.Mobile != nil {
		c.Mobile = *ch.Mobile
	}
	if ch.Residences != nil {
		c.Residences = ch.Residences
	}
}

// Validate performs the write-boundary checks on customer data. It is
// not a standing invariant: records loaded from a hand-edited file may
// violate it. All complaints are collected into one ValidationError.
func (c *Customer) Validate() error {
	var msgs []string
	if c.Salutation == "" {
		msgs = append(msgs, "Anrede fehlt.")
	}
	if c.Gender == "" {
		msgs = append(msgs, "Geschlecht fehlt.")
	}
	if c.LastName == "" {
		msgs = append(msgs, "Nachname fehlt.")
	}
	if c.FirstName == "" {
		msgs = append(msgs, "Vorname fehlt.")
	}
	if c.PostalCode == "" {
		msgs = append(msgs, "Postleitzahl fehlt.")
	}
	if len(c.Residences) == 0 || strings.Join(c.Residences, "") == "" {
		msgs = append(msgs, "Wohnort fehlt.")
	}
	if c.Phone == "" {
		msgs = append(msgs, "Telefon fehlt.")
	}
	if c.PostalCode != "" && !isDigits(c.PostalCode) {
		msgs = append(msgs, "PLZ darf nur Zahlen enthalten.")
	}
	if c.Phone != "" && !isDigits(c.Phone) {
		msgs = append(msgs, "Telefon darf nur Zahlen enthalten.")
	}
	if strings.TrimSpace(c.Mobile) != "" && !isDigits(c.Mobile) {
		msgs = append(msgs, "Mobil darf nur Zahlen enthalten.")
	}
	if strings.TrimSpace(c.Email) != "" && !strings.Contains(c.Email, "@") {
		msgs = append(msgs, "Ungültige E-Mail Adresse (@ fehlt).")
	}
	if len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
