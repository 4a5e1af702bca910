package models

import "strings"

// Joining delimiters used by the flat record shape. A residence or
// appointment string containing its own delimiter will not survive a
// round trip; known format limitation, kept for file compatibility.
const (
	residenceSep   = ", "
	appointmentSep = " | "
)

// Record is the flat on-disk shape of a Customer. The keys match the
// persisted file format exactly and must not be renamed.
type Record struct {
	ID         string `json:"ID"`
	Salutation string `json:"Anrede"`
	FirstName  string `json:"Vorname"`
	LastName   string `json:"Nachname"`
	Gender     string `json:"Geschlecht"`
	Age        int    `json:"Alter"`
	Email      string `json:"E-Mail"`
	PostalCode string `json:"PLZ"`
	Phone      string `json:"Telefon"`
	Mobile     string `json:"Mobil"`
	Residences string `json:"Wohnorte"`
	Termine    string `json:"Termine"`
}

// ToRecord flattens the customer into its serialized shape.
func (c *Customer) ToRecord() Record {
	return Record{
		ID:         c.ID,
		Salutation: c.Salutation,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Gender:     c.Gender,
		Age:        c.Age,
		Email:      c.Email,
		PostalCode: c.PostalCode,
		Phone:      c.Phone,
		Mobile:     c.Mobile,
		Residences: strings.Join(c.Residences, residenceSep),
		Termine:    strings.Join(c.Appointments, appointmentSep),
	}
}

// CustomerFromRecord is the inverse of ToRecord. A missing or empty
// joined field yields an empty slice, never a one-empty-string slice.
func CustomerFromRecord(r Record) *Customer {
	age := r.Age
	if age == 0 {
		age = 1
	}
	return &Customer{
		ID:           r.ID,
		Salutation:   r.Salutation,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Gender:       r.Gender,
		Age:          age,
		Email:        r.Email,
		PostalCode:   r.PostalCode,
		Phone:        r.Phone,
		Mobile:       r.Mobile,
		Residences:   splitJoined(r.Residences, residenceSep),
		Appointments: splitJoined(r.Termine, appointmentSep),
	}
}

func splitJoined(s, sep string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, sep)
}
