package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking, passengers []domain.Passenger) error
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	GetDetail(ctx context.Context, id int64) (*domain.BookingDetail, error)
	ListPassengers(ctx context.Context, bookingID int64) ([]domain.PassengerDetail, error)
	GetByIDAndUser(ctx context.Context, id int64, userID string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, userID string, status domain.BookingStatus) (*domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

// Create inserts the booking row and all passenger rows in one transaction.
// A failing passenger insert rolls the booking back too.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking, passengers []domain.Passenger) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO bookings (trip_id, return_trip_id, user_id, status, email, phone, price, payment_mode, booking_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`,
		booking.TripID, booking.ReturnTripID, booking.UserID, booking.Status, booking.Email, booking.Phone, booking.Price, booking.PaymentMode, booking.BookingType).
		Scan(&booking.ID, &booking.CreatedAt); err != nil {
		return err
	}

	for i := range passengers {
		p := &passengers[i]
		p.BookingID = booking.ID
		if err := tx.QueryRow(ctx, `INSERT INTO passengers (booking_id, first_name, last_name, email, gender, dob)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			p.BookingID, p.FirstName, p.LastName, p.Email, p.Gender, p.DOB).Scan(&p.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT id, trip_id, return_trip_id, user_id, status, email, phone, price, payment_mode, booking_type, created_at FROM bookings WHERE user_id=$1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.TripID, &b.ReturnTripID, &b.UserID, &b.Status, &b.Email, &b.Phone, &b.Price, &b.PaymentMode, &b.BookingType, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) GetDetail(ctx context.Context, id int64) (*domain.BookingDetail, error) {
	row := r.db.QueryRow(ctx, `SELECT
			b.id, b.status, b.email, b.phone, b.payment_mode, b.price, b.booking_type,
			t.id, f.id, f.flight_number, al.id, al.name, t.departure, t.arrival,
			o.id, o.name, o.code, d.id, d.name, d.code,
			rt.id, rf.id, rf.flight_number, ral.id, ral.name, rt.departure, rt.arrival,
			ro.id, ro.name, ro.code, rd.id, rd.name, rd.code
		FROM bookings b
		JOIN trips t ON t.id = b.trip_id
		JOIN flights f ON f.id = t.flight_id
		JOIN airlines al ON al.id = f.airline_id
		JOIN airports o ON o.id = t.origin
		JOIN airports d ON d.id = t.destination
		LEFT JOIN trips rt ON rt.id = b.return_trip_id
		LEFT JOIN flights rf ON rf.id = rt.flight_id
		LEFT JOIN airlines ral ON ral.id = rf.airline_id
		LEFT JOIN airports ro ON ro.id = rt.origin
		LEFT JOIN airports rd ON rd.id = rt.destination
		WHERE b.id=$1`, id)

	var (
		detail domain.BookingDetail
		trip   domain.Trip

		rtID, rfID, ralID, roID, rdID *int64
		rfNumber, ralName             *string
		roName, roCode                *string
		rdName, rdCode                *string
		rtDeparture, rtArrival        *time.Time
	)

	if err := row.Scan(
		&detail.ID, &detail.Status, &detail.Email, &detail.Phone, &detail.PaymentMode, &detail.Price, &detail.BookingType,
		&trip.ID, &trip.Flight.ID, &trip.Flight.FlightNumber, &trip.Flight.Airline.ID, &trip.Flight.Airline.Name, &trip.Departure, &trip.Arrival,
		&trip.Origin.ID, &trip.Origin.Name, &trip.Origin.Code, &trip.Destination.ID, &trip.Destination.Name, &trip.Destination.Code,
		&rtID, &rfID, &rfNumber, &ralID, &ralName, &rtDeparture, &rtArrival,
		&roID, &roName, &roCode, &rdID, &rdName, &rdCode,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	detail.Trip = &trip
	if rtID != nil {
		detail.ReturnTrip = &domain.Trip{
			ID:          *rtID,
			Flight:      domain.Flight{ID: *rfID, FlightNumber: *rfNumber, Airline: domain.Airline{ID: *ralID, Name: *ralName}},
			Departure:   *rtDeparture,
			Arrival:     *rtArrival,
			Origin:      domain.Airport{ID: *roID, Name: *roName, Code: *roCode},
			Destination: domain.Airport{ID: *rdID, Name: *rdName, Code: *rdCode},
		}
	}
	return &detail, nil
}

func (r *PGBookingRepository) ListPassengers(ctx context.Context, bookingID int64) ([]domain.PassengerDetail, error) {
	rows, err := r.db.Query(ctx, `SELECT id, first_name, last_name, dob::text, gender FROM passengers WHERE booking_id=$1`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passengers := make([]domain.PassengerDetail, 0)
	for rows.Next() {
		var p domain.PassengerDetail
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.DOB, &p.Gender); err != nil {
			return nil, err
		}
		passengers = append(passengers, p)
	}
	return passengers, rows.Err()
}

func (r *PGBookingRepository) GetByIDAndUser(ctx context.Context, id int64, userID string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT id, trip_id, return_trip_id, user_id, status, email, phone, price, payment_mode, booking_type, created_at FROM bookings WHERE id=$1 AND user_id=$2`, id, userID)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.TripID, &b.ReturnTripID, &b.UserID, &b.Status, &b.Email, &b.Phone, &b.Price, &b.PaymentMode, &b.BookingType, &b.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id int64, userID string, status domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$1 WHERE id=$2 AND user_id=$3 RETURNING id, trip_id, return_trip_id, user_id, status, email, phone, price, payment_mode, booking_type, created_at`, status, id, userID)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.TripID, &b.ReturnTripID, &b.UserID, &b.Status, &b.Email, &b.Phone, &b.Price, &b.PaymentMode, &b.BookingType, &b.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
