package models

import "time"

// BlockedDate overrides the weekly schedule for one normalized date. At most one record
// exists per date. A full-day block hides every nominal slot; a partial block hides only
// BlockedTimeSlots. Inactive records are kept for history and ignored by availability.
type BlockedDate struct {
	ID               string    `bson:"id" json:"id"`
	Date             time.Time `bson:"date" json:"date"`
	Reason           string    `bson:"reason" json:"reason"`
	BlockedTimeSlots []string  `bson:"blockedTimeSlots" json:"blockedTimeSlots"`
	IsFullDayBlocked bool      `bson:"isFullDayBlocked" json:"isFullDayBlocked"`
	IsActive         bool      `bson:"isActive" json:"isActive"`
	Version          int       `bson:"version" json:"version"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BlockDateRequest blocks a single date, the whole day when TimeSlots is empty.
type BlockDateRequest struct {
	Date      string   `json:"date" binding:"required"`
	Reason    string   `json:"reason"`
	TimeSlots []string `json:"timeSlots"`
}

// BulkBlockRequest applies the same block to several dates.
type BulkBlockRequest struct {
	Dates     []string `json:"dates" binding:"required,min=1"`
	Reason    string   `json:"reason"`
	TimeSlots []string `json:"timeSlots"`
}

// UpdateBlockedDateRequest patches a record. When BlockedTimeSlots is present the
// full-day flag is recomputed from its length.
type UpdateBlockedDateRequest struct {
	Reason           *string   `json:"reason"`
	IsActive         *bool     `json:"isActive"`
	BlockedTimeSlots *[]string `json:"blockedTimeSlots"`
}

// BulkBlockResult partitions a bulk request by per-date outcome.
type BulkBlockResult struct {
	Blocked []BlockedDate     `json:"blocked"`
	Skipped []string          `json:"skipped"`
	Failed  []BulkBlockFailed `json:"failed"`
	Summary BulkBlockSummary  `json:"summary"`
}

type BulkBlockFailed struct {
	Date  string `json:"date"`
	Error string `json:"error"`
}

type BulkBlockSummary struct {
	Requested int `json:"requested"`
	Blocked   int `json:"blocked"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// ActiveBlockedDate is the public projection of an active block.
type ActiveBlockedDate struct {
	Date             string   `json:"date"`
	IsFullDayBlocked bool     `json:"isFullDayBlocked"`
	BlockedTimeSlots []string `json:"blockedTimeSlots"`
}

// BlockCheck answers "is this date blocked".
type BlockCheck struct {
	Date             string   `json:"date"`
	IsBlocked        bool     `json:"isBlocked"`
	IsFullDayBlocked bool     `json:"isFullDayBlocked"`
	BlockedTimeSlots []string `json:"blockedTimeSlots"`
	Reason           string   `json:"reason,omitempty"`
}
