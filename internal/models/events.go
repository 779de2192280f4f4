package models

import "time"

// NATS Event Types
const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
	EventBookingUpdated       = "booking.updated"
	EventUserRegistered       = "user.registered"
)

// BookingCreatedEvent represents a booking creation event
type BookingCreatedEvent struct {
	Booking   Booking   `json:"booking"`
	Timestamp time.Time `json:"timestamp"`
}

// BookingStatusChangedEvent represents an approve or reject decision
type BookingStatusChangedEvent struct {
	Booking        Booking       `json:"booking"`
	PreviousStatus BookingStatus `json:"previous_status"`
	Timestamp      time.Time     `json:"timestamp"`
}

// BookingUpdatedEvent represents an admin edit of a booking
type BookingUpdatedEvent struct {
	Booking   Booking   `json:"booking"`
	Timestamp time.Time `json:"timestamp"`
}

// UserRegisteredEvent represents a new account
type UserRegisteredEvent struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}
