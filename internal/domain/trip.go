package domain

import "time"

// Trips, flights, airlines and airports are read-only reference data to this
// service. They only appear expanded inside the booking detail read model, so
// the projections carry exactly the fields that read model selects.

type Airline struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Airport struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type Flight struct {
	ID           int64   `json:"id"`
	FlightNumber string  `json:"flight_number"`
	Airline      Airline `json:"airline_id"`
}

type Trip struct {
	ID          int64     `json:"id"`
	Flight      Flight    `json:"flight_id"`
	Departure   time.Time `json:"departure"`
	Arrival     time.Time `json:"arrival"`
	Origin      Airport   `json:"origin"`
	Destination Airport   `json:"destination"`
}

// PassengerDetail is the passenger projection attached to a booking detail.
type PassengerDetail struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	DOB       string `json:"dob"`
	Gender    string `json:"gender"`
}

// BookingDetail is the join read model for a single booking. The expanded trip
// objects keep the foreign-key field names (trip_id, return_trip_id, flight_id,
// airline_id) so the payload matches what API consumers already parse.
type BookingDetail struct {
	ID          int64             `json:"id"`
	Trip        *Trip             `json:"trip_id"`
	Status      BookingStatus     `json:"status"`
	ReturnTrip  *Trip             `json:"return_trip_id"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone"`
	PaymentMode string            `json:"payment_mode"`
	Price       float64           `json:"price"`
	BookingType string            `json:"booking_type"`
	Passengers  []PassengerDetail `json:"passengers"`
}
