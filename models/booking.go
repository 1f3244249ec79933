package models

import "time"

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Occupies reports whether an appointment in this status holds its slot.
func (s AppointmentStatus) Occupies() bool {
	return s != StatusCancelled
}

// Appointment is one booking request. Active mirrors Status.Occupies() and backs the
// partial unique index on (AppointmentDate, SlotKey).
type Appointment struct {
	ID                 string            `bson:"id" json:"id"`
	CustomerName       string            `bson:"customerName" json:"customerName"`
	CustomerEmail      string            `bson:"customerEmail" json:"customerEmail"`
	CustomerPhone      string            `bson:"customerPhone" json:"customerPhone"`
	ServiceID          string            `bson:"serviceId,omitempty" json:"serviceId,omitempty"`
	ServiceName        string            `bson:"serviceName,omitempty" json:"serviceName,omitempty"`
	Notes              string            `bson:"notes,omitempty" json:"notes,omitempty"`
	Language           string            `bson:"language,omitempty" json:"language,omitempty"`
	AppointmentDate    time.Time         `bson:"appointmentDate" json:"appointmentDate"`
	AppointmentTime    string            `bson:"appointmentTime" json:"appointmentTime"`
	SlotKey            Slot              `bson:"slotKey" json:"-"`
	Status             AppointmentStatus `bson:"status" json:"status"`
	Active             bool              `bson:"active" json:"-"`
	EmailReminderSent  bool              `bson:"emailReminderSent" json:"emailReminderSent"`
	SMSReminderSent    bool              `bson:"smsReminderSent" json:"smsReminderSent"`
	CancellationReason string            `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time        `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CreatedAt          time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// StartsAt is the instant the appointment starts. AppointmentDate carries the calendar
// day (stored as UTC midnight) and the slot is wall-clock time in loc; nil means UTC.
func (a *Appointment) StartsAt(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := a.AppointmentDate.Date()
	min := a.SlotKey.Minutes()
	return time.Date(y, m, d, min/60, min%60, 0, 0, loc)
}

// CreateAppointmentRequest is the public booking payload.
type CreateAppointmentRequest struct {
	CustomerName    string `json:"customerName" binding:"required"`
	CustomerEmail   string `json:"customerEmail" binding:"required,email"`
	CustomerPhone   string `json:"customerPhone" binding:"required"`
	ServiceID       string `json:"serviceId"`
	ServiceName     string `json:"serviceName"`
	Notes           string `json:"notes" binding:"max=1000"`
	Language        string `json:"language"`
	AppointmentDate string `json:"appointmentDate" binding:"required"`
	AppointmentTime string `json:"appointmentTime" binding:"required"`
}

// UpdateStatusRequest moves an appointment to a new status.
type UpdateStatusRequest struct {
	Status AppointmentStatus `json:"status" binding:"required"`
}

// CancelAppointmentRequest carries an optional reason.
type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// AppointmentFilter narrows List. Zero values mean "any".
type AppointmentFilter struct {
	Date   *time.Time
	From   *time.Time
	To     *time.Time
	Status AppointmentStatus
}

// BookedSlots lists occupied labels for a date.
type BookedSlots struct {
	Date        string   `json:"date"`
	BookedSlots []string `json:"bookedSlots"`
}
