package models

import (
	"time"
)

// Role определяет уровень доступа пользователя
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// BookingStatus is the lifecycle state of a booking
type BookingStatus string

const (
	StatusPending  BookingStatus = "pending"
	StatusApproved BookingStatus = "approved"
	StatusRejected BookingStatus = "rejected"
)

// IsActive reports whether a booking in this status holds its slot.
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusApproved
}

// Valid reports whether s is one of the known statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// User represents a user in the system
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	PasswordHash string `json:"-"`
}

// IsAdmin reports whether the user has the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ParkingArea represents a named parking location
type ParkingArea struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Location     string  `json:"location"`
	TotalSlots   int     `json:"totalSlots"`
	PricePerHour float64 `json:"pricePerHour"`
}

// ParkingSlot is a numbered space within an area.
// IsAvailable is informational; occupancy is derived from bookings.
type ParkingSlot struct {
	ID          string `json:"id"`
	Number      int    `json:"number"`
	AreaID      string `json:"areaId"`
	IsAvailable bool   `json:"isAvailable"`
}

// TimeSlot represents a bookable time window ("HH:MM" strings)
type TimeSlot struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Date      string `json:"date"`
}

// Booking represents a reservation of a slot for a time window on a date.
// Names, times and amount are snapshots taken at creation or admin edit.
type Booking struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	UserName      string        `json:"userName"`
	AreaID        string        `json:"areaId"`
	AreaName      string        `json:"areaName"`
	SlotID        string        `json:"slotId"`
	SlotNumber    int           `json:"slotNumber"`
	TimeSlotID    string        `json:"timeSlotId"`
	StartTime     string        `json:"startTime"`
	EndTime       string        `json:"endTime"`
	Date          string        `json:"date"`
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	TotalAmount   float64       `json:"totalAmount"`
	VehicleNumber string        `json:"vehicleNumber,omitempty"`
}

// Holds reports whether b occupies slotID for the given area, time slot and date.
func (b Booking) Holds(areaID, timeSlotID, date, slotID string) bool {
	return b.Status.IsActive() &&
		b.AreaID == areaID &&
		b.TimeSlotID == timeSlotID &&
		b.Date == date &&
		b.SlotID == slotID
}

// Actor is the authenticated identity attached to a request
type Actor struct {
	UserID    string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	SessionID string `json:"-"`
}

// IsAdmin reports whether the actor has the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Session is the persisted current-user record for one login
type Session struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
