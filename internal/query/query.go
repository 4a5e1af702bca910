// Package query filters and sorts customers and their appointments
// for listing. It never mutates the store; all results are derived.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/Beneli93/kvs-backend/internal/appointment"
	"github.com/Beneli93/kvs-backend/internal/models"
)

// AppointmentView is one appointment projected together with its
// owning customer, used for chronological listing. It is derived on
// every call and never persisted.
type AppointmentView struct {
	CustomerID string `json:"customer_id"`
	Salutation string `json:"salutation"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Residences string `json:"residences"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
	Mobile     string `json:"mobile"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Note       string `json:"note"`
	// Index is the appointment's position in the customer's raw list,
	// the identity used for edit and delete.
	Index int       `json:"index"`
	When  time.Time `json:"when"`
}

// Search returns the customers whose fields contain term, case
// insensitively. An empty term returns the input unchanged. The input
// order is preserved; this is a stable filter, not a re-sort.
func Search(customers []*models.Customer, term string) []*models.Customer {
	if term == "" {
		return customers
	}
	needle := strings.ToLower(term)
	out := make([]*models.Customer, 0, len(customers))
	for _, c := range customers {
		fields := []string{
			c.FirstName,
			c.LastName,
			c.ID,
			strings.Join(c.Residences, ", "),
			c.PostalCode,
			c.Phone,
			c.Mobile,
			c.Email,
		}
		if matchesAny(fields, needle) {
			out = append(out, c)
		}
	}
	return out
}

// Upcoming returns every appointment at or after now, ascending by
// date-time. Entries that do not parse are skipped, not reported; they
// stay in the customer's raw list. Ties keep input iteration order.
func Upcoming(customers []*models.Customer, now time.Time) []AppointmentView {
	views := collect(customers)
	out := views[:0]
	for _, v := range views {
		if !v.When.Before(now) {
			out = append(out, v)
		}
	}
	sortByWhen(out)
	return out
}

// WithinWindow narrows views to those no later than now plus the given
// number of days.
func WithinWindow(views []AppointmentView, now time.Time, days int) []AppointmentView {
	limit := now.Add(time.Duration(days) * 24 * time.Hour)
	out := make([]AppointmentView, 0, len(views))
	for _, v := range views {
		if !v.When.After(limit) {
			out = append(out, v)
		}
	}
	return out
}

// SearchAppointments returns all appointments (past ones included)
// whose owning customer matches term under the same substring policy
// as Search, except e-mail is not consulted. Sorted ascending by
// date-time.
func SearchAppointments(customers []*models.Customer, term string) []AppointmentView {
	needle := strings.ToLower(term)
	views := collect(customers)
	out := views[:0]
	for _, v := range views {
		fields := []string{
			v.FirstName,
			v.LastName,
			v.CustomerID,
			v.Residences,
			v.PostalCode,
			v.Phone,
			v.Mobile,
		}
		if term == "" || matchesAny(fields, needle) {
			out = append(out, v)
		}
	}
	sortByWhen(out)
	return out
}

// collect builds the unsorted view list, skipping malformed entries.
func collect(customers []*models.Customer) []AppointmentView {
	var views []AppointmentView
	for _, c := range customers {
		for idx, raw := range c.Appointments {
			appt, err := appointment.Parse(raw)
			if err != nil {
				continue
			}
			views = append(views, AppointmentView{
				CustomerID: c.ID,
				Salutation: c.Salutation,
				FirstName:  c.FirstName,
				LastName:   c.LastName,
				Residences: strings.Join(c.Residences, ", "),
				PostalCode: c.PostalCode,
				Phone:      c.Phone,
				Mobile:     c.Mobile,
				Date:       appt.Date(),
				Time:       appt.Time(),
				Note:       appt.Note,
				Index:      idx,
				When:       appt.When,
			})
		}
	}
	return views
}

func sortByWhen(views []AppointmentView) {
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].When.Before(views[j].When)
	})
}

func matchesAny(fields []string, needle string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
