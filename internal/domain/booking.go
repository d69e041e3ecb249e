package domain

import (
	"errors"
	"time"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

const DefaultBookingType = "economy"

// ErrNotFound is returned when a booking does not exist or is not visible
// to the caller. Owner-scoped lookups deliberately do not distinguish the two.
var ErrNotFound = errors.New("booking not found")

type Booking struct {
	ID           int64         `json:"id"`
	TripID       int64         `json:"trip_id"`
	ReturnTripID *int64        `json:"return_trip_id"`
	UserID       string        `json:"user_id"`
	Status       BookingStatus `json:"status"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	Price        float64       `json:"price"`
	PaymentMode  string        `json:"payment_mode"`
	BookingType  string        `json:"booking_type"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Passenger rows are written only as part of booking creation and are
// immutable afterwards. DOB travels as a YYYY-MM-DD string.
type Passenger struct {
	ID        int64  `json:"id"`
	BookingID int64  `json:"booking_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Gender    string `json:"gender"`
	DOB       string `json:"dob"`
}
