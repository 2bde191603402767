package inventory

import (
	"errors"
	"testing"
	"time"
)

var testToday = time.Date(2024, 7, 15, 10, 30, 0, 0, time.UTC)

func validInput() ItemInput {
	return ItemInput{
		ItemCode:          "A-100",
		Name:              "Laptop",
		Quantity:          "5",
		DateOfProcurement: "2024-01-15",
	}
}

func TestValidateDefaults(t *testing.T) {
	in := validInput()
	in.Quantity = ""
	in.DisposalStatus = ""

	f, err := in.Validate(testToday)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if f.Quantity != 0 {
		t.Errorf("expected blank quantity to default to 0, got %d", f.Quantity)
	}
	if f.DisposalStatus != "Active" {
		t.Errorf("expected default status 'Active', got %q", f.DisposalStatus)
	}
	if f.Category != nil || f.Location != nil || f.Notes != nil {
		t.Error("expected blank optional fields to be nil")
	}
}

func TestValidateTrimsFields(t *testing.T) {
	in := validInput()
	in.ItemCode = "  A-100  "
	in.Name = " Laptop "
	in.Category = "  Electronics "

	f, err := in.Validate(testToday)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if f.ItemCode != "A-100" {
		t.Errorf("expected trimmed item code, got %q", f.ItemCode)
	}
	if f.Name != "Laptop" {
		t.Errorf("expected trimmed name, got %q", f.Name)
	}
	if f.Category == nil || *f.Category != "Electronics" {
		t.Errorf("expected trimmed category, got %v", f.Category)
	}
}

func TestValidateBlankOptionalCollapsesToNil(t *testing.T) {
	in := validInput()
	in.Location = "   "
	in.Notes = ""

	f, err := in.Validate(testToday)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if f.Location != nil {
		t.Errorf("expected whitespace location to collapse to nil, got %q", *f.Location)
	}
	if f.Notes != nil {
		t.Errorf("expected blank notes to collapse to nil, got %q", *f.Notes)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ItemInput)
		field  string
	}{
		{"missing item code", func(in *ItemInput) { in.ItemCode = " " }, "item_code"},
		{"missing name", func(in *ItemInput) { in.Name = "" }, "name"},
		{"non-numeric quantity", func(in *ItemInput) { in.Quantity = "five" }, "quantity"},
		{"fractional quantity", func(in *ItemInput) { in.Quantity = "2.5" }, "quantity"},
		{"negative quantity", func(in *ItemInput) { in.Quantity = "-1" }, "quantity"},
		{"missing date", func(in *ItemInput) { in.DateOfProcurement = "" }, "date_of_procurement"},
		{"bad date format", func(in *ItemInput) { in.DateOfProcurement = "15.01.2024" }, "date_of_procurement"},
		{"future date", func(in *ItemInput) { in.DateOfProcurement = "2024-07-16" }, "date_of_procurement"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)

			_, err := in.Validate(testToday)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, verr.Field)
			}
		})
	}
}

func TestValidateTodayIsNotFuture(t *testing.T) {
	in := validInput()
	in.DateOfProcurement = "2024-07-15"

	if _, err := in.Validate(testToday); err != nil {
		t.Errorf("expected today's date to be accepted, got %v", err)
	}
}
