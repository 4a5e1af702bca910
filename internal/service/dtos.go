package service

import "github.com/Beneli93/kvs-backend/internal/query"

// CreateCustomerRequest carries the fields of a new customer. The
// residence is a single place name, matching the intake form; the
// service wraps it into the stored sequence.
type CreateCustomerRequest struct {
	Salutation string `json:"salutation"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Gender     string `json:"gender"`
	Age        int    `json:"age"`
	Email      string `json:"email"`
	Residence  string `json:"residence"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
	Mobile     string `json:"mobile"`
}

// UpdateCustomerRequest is a partial update; nil fields stay as they
// are. The merged result must still pass validation in full.
type UpdateCustomerRequest struct {
	Salutation *string `json:"salutation,omitempty"`
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Gender     *string `json:"gender,omitempty"`
	Age        *int    `json:"age,omitempty"`
	Email      *string `json:"email,omitempty"`
	Residence  *string `json:"residence,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Mobile     *string `json:"mobile,omitempty"`
}

// BookAppointmentRequest books one appointment. Date is DD.MM.YYYY and
// Time is HH:MM. Phone and Mobile, when non-empty, also update the
// customer's contact fields, as the booking form does.
type BookAppointmentRequest struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Note   string `json:"note"`
	Phone  string `json:"phone,omitempty"`
	Mobile string `json:"mobile,omitempty"`
}

// Stats summarizes the store for the dashboard.
type Stats struct {
	TotalCustomers int     `json:"total_customers"`
	AverageAge     float64 `json:"average_age"`
	// NextAppointment is the soonest upcoming appointment, nil when
	// there is none.
	NextAppointment *query.AppointmentView `json:"next_appointment,omitempty"`
}
