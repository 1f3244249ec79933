package models

import "time"

// Channel names a notification transport.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// Notification records one outbound message, used for logging delivery outcomes.
type Notification struct {
	Channel   Channel   `json:"channel"`
	To        string    `json:"to"`
	Subject   string    `json:"subject,omitempty"`
	Body      string    `json:"body"`
	Sent      bool      `json:"sent"`
	CreatedAt time.Time `json:"createdAt"`
}
