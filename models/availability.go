package models

// DayResolution is the nominal template resolved for one date.
type DayResolution struct {
	Weekday      string   `json:"weekday"`
	IsWorkingDay bool     `json:"isWorkingDay"`
	NominalSlots []string `json:"nominalSlots"`
}

// Availability is the bookable-by-schedule view of a date. It does not account for
// existing appointments.
type Availability struct {
	Date             string   `json:"date"`
	IsWorkingDay     bool     `json:"isWorkingDay"`
	IsFullDayBlocked bool     `json:"isFullDayBlocked"`
	AvailableSlots   []string `json:"availableSlots"`
	BlockedSlots     []string `json:"blockedSlots"`
	AllDaySlots      []string `json:"allDaySlots"`
	Reason           string   `json:"reason,omitempty"`
	Message          string   `json:"message,omitempty"`
}

// BookableSlots is availability with booked slots removed.
type BookableSlots struct {
	Availability
	BookedSlots   []string `json:"bookedSlots"`
	BookableSlots []string `json:"bookableSlots"`
}
