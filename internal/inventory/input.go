package inventory

import (
	"strconv"
	"strings"
	"time"

	"github.com/erazemk/inventar/internal/model"
)

// ItemInput is the raw field payload for create and update operations.
// All fields arrive as strings, whether from an HTML form or a JSON body.
type ItemInput struct {
	ItemCode          string
	Name              string
	Category          string
	Quantity          string
	Location          string
	DateOfProcurement string
	DisposalStatus    string
	Notes             string
}

// ItemFields is a validated, typed payload ready for the store.
// Optional fields are nil when the input was blank.
type ItemFields struct {
	ItemCode          string
	Name              string
	Category          *string
	Quantity          int
	Location          *string
	DateOfProcurement model.Date
	DisposalStatus    string
	Notes             *string
}

// Validate trims, coerces and checks the input, returning typed fields.
// A blank quantity defaults to 0; a blank disposal status defaults to
// "Active"; blank optional fields collapse to nil. A failure is reported
// as a *ValidationError and no partial result is returned.
func (in ItemInput) Validate(today time.Time) (ItemFields, error) {
	var f ItemFields

	f.ItemCode = strings.TrimSpace(in.ItemCode)
	if f.ItemCode == "" {
		return ItemFields{}, invalid("item_code", "is required")
	}

	f.Name = strings.TrimSpace(in.Name)
	if f.Name == "" {
		return ItemFields{}, invalid("name", "is required")
	}

	if q := strings.TrimSpace(in.Quantity); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			return ItemFields{}, invalid("quantity", "must be a whole number")
		}
		if n < 0 {
			return ItemFields{}, invalid("quantity", "must not be negative")
		}
		f.Quantity = n
	}

	dateStr := strings.TrimSpace(in.DateOfProcurement)
	if dateStr == "" {
		return ItemFields{}, invalid("date_of_procurement", "is required")
	}
	date, err := model.ParseDate(dateStr)
	if err != nil {
		return ItemFields{}, invalid("date_of_procurement", "must be a date in YYYY-MM-DD format")
	}
	if date.After(model.DateOf(today).Time) {
		return ItemFields{}, invalid("date_of_procurement", "must not be in the future")
	}
	f.DateOfProcurement = date

	f.DisposalStatus = strings.TrimSpace(in.DisposalStatus)
	if f.DisposalStatus == "" {
		f.DisposalStatus = model.DefaultDisposalStatus
	}

	f.Category = optional(in.Category)
	f.Location = optional(in.Location)
	f.Notes = optional(in.Notes)

	return f, nil
}

// optional trims s and collapses a blank value to nil.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
