package model

import "time"

// Item represents a tracked physical asset.
type Item struct {
	ID                int64     `json:"id"`
	ItemCode          string    `json:"item_code"`
	Name              string    `json:"name"`
	Category          string    `json:"category,omitempty"`
	Quantity          int       `json:"quantity"`
	Location          string    `json:"location,omitempty"`
	DateOfProcurement Date      `json:"date_of_procurement"`
	DisposalStatus    string    `json:"disposal_status"`
	Notes             string    `json:"notes,omitempty"`
	PhotoMime         string    `json:"photo_mime,omitempty"`
	AgeDays           int       `json:"age_days"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// DefaultDisposalStatus is assigned when no disposal status is supplied.
// The set of statuses is open: whatever labels have been stored are valid.
const DefaultDisposalStatus = "Active"
