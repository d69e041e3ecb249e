package booking

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/queue"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/google/uuid"
)

// ErrMissingFields is returned when a required create-booking field is absent.
var ErrMissingFields = errors.New("required fields are missing")

const confirmationSubject = "Booking Confirmed"

type BookingUseCase interface {
	CreateBooking(ctx context.Context, userID string, input CreateBookingInput) (*domain.Booking, error)
	ListBookings(ctx context.Context, userID string) ([]domain.Booking, error)
	GetBookingDetail(ctx context.Context, id int64) (*domain.BookingDetail, error)
	CancelBooking(ctx context.Context, userID string, id int64) (*domain.Booking, error)
}

type Queue interface {
	Push(ctx context.Context, queueName string, job interface{}) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings      repository.BookingRepository
	queue         Queue
	producer      Producer
	bookingsQueue string
	eventsTopic   string
}

type CreateBookingInput struct {
	TripID         int64            `json:"trip_id"`
	ReturnTripID   *int64           `json:"return_trip_id"`
	Status         string           `json:"status"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	Price          float64          `json:"price"`
	PaymentMode    string           `json:"payment_mode"`
	Passengers     []PassengerInput `json:"passengers"`
	NoOfPassengers int              `json:"no_of_passengers"`
	BookingType    string           `json:"booking_type"`
}

type PassengerInput struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"dateOfBirth"`
}

type BookingServiceOption func(*BookingService)

func WithEventsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.eventsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	q Queue,
	producer Producer,
	bookingsQueue string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:      bookings,
		queue:         q,
		producer:      producer,
		bookingsQueue: bookingsQueue,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking writes the booking and its passengers atomically, then hands
// off the confirmation notification. The enqueue and the lifecycle event are
// best-effort: the booking is already committed and their failure never fails
// the request.
func (s *BookingService) CreateBooking(ctx context.Context, userID string, input CreateBookingInput) (*domain.Booking, error) {
	if input.TripID == 0 || input.Price == 0 || input.PaymentMode == "" || len(input.Passengers) == 0 || input.NoOfPassengers == 0 {
		return nil, ErrMissingFields
	}

	status := domain.BookingStatus(input.Status)
	if input.Status == "" {
		status = domain.BookingStatusConfirmed
	}
	bookingType := input.BookingType
	if bookingType == "" {
		bookingType = domain.DefaultBookingType
	}

	booking := &domain.Booking{
		TripID:       input.TripID,
		ReturnTripID: input.ReturnTripID,
		UserID:       userID,
		Status:       status,
		Email:        input.Email,
		Phone:        input.Phone,
		Price:        input.Price,
		PaymentMode:  input.PaymentMode,
		BookingType:  bookingType,
	}

	passengers := make([]domain.Passenger, 0, len(input.Passengers))
	for _, p := range input.Passengers {
		email := p.Email
		if email == "" {
			email = input.Email
		}
		passengers = append(passengers, domain.Passenger{
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Email:     email,
			Gender:    p.Gender,
			DOB:       p.DateOfBirth,
		})
	}

	if err := s.bookings.Create(ctx, booking, passengers); err != nil {
		return nil, err
	}

	if s.queue != nil && s.bookingsQueue != "" {
		job := queue.NotificationJob{Email: booking.Email, Subject: confirmationSubject, BookingID: booking.ID}
		if err := s.queue.Push(ctx, s.bookingsQueue, job); err != nil {
			log.Printf("WARN: failed to enqueue notification for booking %d: %v", booking.ID, err)
		}
	}

	s.publish(ctx, "booking_created", booking)
	return booking, nil
}

func (s *BookingService) ListBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// GetBookingDetail is not owner-scoped: any caller knowing a booking id may
// fetch it. The notification worker depends on that.
func (s *BookingService) GetBookingDetail(ctx context.Context, id int64) (*domain.BookingDetail, error) {
	detail, err := s.bookings.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	passengers, err := s.bookings.ListPassengers(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Passengers = passengers
	return detail, nil
}

// CancelBooking flips status to cancelled for a booking owned by userID.
// Cancelling an already-cancelled booking runs the same fetch and update and
// succeeds again.
func (s *BookingService) CancelBooking(ctx context.Context, userID string, id int64) (*domain.Booking, error) {
	if _, err := s.bookings.GetByIDAndUser(ctx, id, userID); err != nil {
		return nil, err
	}

	updated, err := s.bookings.UpdateStatus(ctx, id, userID, domain.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_cancelled", updated)
	return updated, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		BookingID: booking.ID,
		UserID:    booking.UserID,
		TripID:    booking.TripID,
		Email:     booking.Email,
		Status:    string(booking.Status),
		Price:     booking.Price,
		CreatedAt: time.Now(),
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, strconv.FormatInt(booking.ID, 10), event); err != nil {
		log.Printf("WARN: failed to publish %s event for booking %d: %v", eventType, booking.ID, err)
	}
}

var _ BookingUseCase = (*BookingService)(nil)
