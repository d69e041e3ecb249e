package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/flightbooking/internal/auth"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, userID string, input booking.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetBookingDetail(ctx context.Context, id int64) (*domain.BookingDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingDetail), args.Error(1)
}

func (m *MockBookingUseCase) CancelBooking(ctx context.Context, userID string, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := testContext(t)

	input := booking.CreateBookingInput{
		TripID:      1,
		Price:       250.0,
		PaymentMode: "card",
		Passengers: []booking.PassengerInput{
			{FirstName: "A", LastName: "B", Gender: "F", DateOfBirth: "1990-01-01"},
		},
		NoOfPassengers: 1,
	}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(userContextKey, &auth.User{ID: "user-1", Email: "booker@example.com"})

	created := &domain.Booking{
		ID:          42,
		TripID:      1,
		UserID:      "user-1",
		Status:      domain.BookingStatusConfirmed,
		Price:       250.0,
		PaymentMode: "card",
		BookingType: "economy",
	}

	mockService.On("CreateBooking", c.Request.Context(), "user-1", input).Return(created, nil)

	handler.create(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Message    string         `json:"message"`
		NewBooking domain.Booking `json:"newBooking"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Booking created and passengers added successfully", response.Message)
	assert.Equal(t, int64(42), response.NewBooking.ID)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_missingFields(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := testContext(t)

	input := booking.CreateBookingInput{TripID: 1, Price: 250.0}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(userContextKey, &auth.User{ID: "user-1"})

	mockService.On("CreateBooking", c.Request.Context(), "user-1", input).Return(nil, booking.ErrMissingFields)

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Required fields are missing")
}

func TestBookingHandler_create_storeError(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := testContext(t)

	input := booking.CreateBookingInput{
		TripID:         99,
		Price:          100.0,
		PaymentMode:    "card",
		Passengers:     []booking.PassengerInput{{FirstName: "A", LastName: "B"}},
		NoOfPassengers: 1,
	}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(userContextKey, &auth.User{ID: "user-1"})

	mockService.On("CreateBooking", c.Request.Context(), "user-1", input).
		Return(nil, errors.New("foreign key violation"))

	handler.create(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Error creating new booking", response["message"])
	assert.Equal(t, "foreign key violation", response["error"])
}

func TestBookingHandler_list(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := testContext(t)
	c.Request = httptest.NewRequest("GET", "/bookings", nil)
	c.Set(userContextKey, &auth.User{ID: "user-1"})

	bookings := []domain.Booking{
		{ID: 1, TripID: 1, UserID: "user-1", Status: domain.BookingStatusConfirmed},
	}
	mockService.On("ListBookings", c.Request.Context(), "user-1").Return(bookings, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Bookings []domain.Booking `json:"bookings"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Bookings, 1)
	assert.Equal(t, "user-1", response.Bookings[0].UserID)
}

func TestBookingHandler_list_empty(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := testContext(t)
	c.Request = httptest.NewRequest("GET", "/bookings", nil)
	c.Set(userContextKey, &auth.User{ID: "user-2"})

	mockService.On("ListBookings", c.Request.Context(), "user-2").Return([]domain.Booking{}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"bookings": []}`, w.Body.String())
}

func TestBookingHandler_cancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := testContext(t)
	c.Params = gin.Params{{Key: "bookingId", Value: "10"}}
	c.Request = httptest.NewRequest("PATCH", "/bookings/10/cancel", nil)
	c.Set(userContextKey, &auth.User{ID: "user-1"})

	cancelled := &domain.Booking{ID: 10, UserID: "user-1", Status: domain.BookingStatusCancelled}
	mockService.On("CancelBooking", c.Request.Context(), "user-1", int64(10)).Return(cancelled, nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Booking domain.Booking `json:"booking"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, domain.BookingStatusCancelled, response.Booking.Status)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_cancel_notOwner(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := testContext(t)
	c.Params = gin.Params{{Key: "bookingId", Value: "10"}}
	c.Request = httptest.NewRequest("PATCH", "/bookings/10/cancel", nil)
	c.Set(userContextKey, &auth.User{ID: "user-2"})

	mockService.On("CancelBooking", c.Request.Context(), "user-2", int64(10)).Return(nil, domain.ErrNotFound)

	handler.cancel(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Booking not found or does not belong to the authenticated user")
}

func TestBookingHandler_detail(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	// No user in context: detail is fetched without credentials.
	c, w := testContext(t)
	c.Params = gin.Params{{Key: "bookingId", Value: "5"}}
	c.Request = httptest.NewRequest("GET", "/bookings/5", nil)

	detail := &domain.BookingDetail{
		ID:     5,
		Status: domain.BookingStatusConfirmed,
		Trip: &domain.Trip{
			ID:          1,
			Flight:      domain.Flight{ID: 2, FlightNumber: "FB101", Airline: domain.Airline{ID: 1, Name: "AirGo"}},
			Origin:      domain.Airport{ID: 1, Name: "Springfield Intl", Code: "SPF"},
			Destination: domain.Airport{ID: 2, Name: "Shelbyville", Code: "SHV"},
		},
		Email:       "booker@example.com",
		PaymentMode: "card",
		Price:       250.0,
		BookingType: "economy",
		Passengers: []domain.PassengerDetail{
			{ID: 1, FirstName: "A", LastName: "B", DOB: "1990-01-01", Gender: "F"},
		},
	}
	mockService.On("GetBookingDetail", c.Request.Context(), int64(5)).Return(detail, nil)

	handler.detail(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Booking struct {
			ID   int64 `json:"id"`
			Trip struct {
				Flight struct {
					FlightNumber string `json:"flight_number"`
					Airline      struct {
						Name string `json:"name"`
					} `json:"airline_id"`
				} `json:"flight_id"`
				Origin struct {
					Code string `json:"code"`
				} `json:"origin"`
			} `json:"trip_id"`
			ReturnTrip *domain.Trip             `json:"return_trip_id"`
			Passengers []domain.PassengerDetail `json:"passengers"`
		} `json:"booking"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(5), response.Booking.ID)
	assert.Equal(t, "FB101", response.Booking.Trip.Flight.FlightNumber)
	assert.Equal(t, "AirGo", response.Booking.Trip.Flight.Airline.Name)
	assert.Equal(t, "SPF", response.Booking.Trip.Origin.Code)
	assert.Nil(t, response.Booking.ReturnTrip)
	assert.Len(t, response.Booking.Passengers, 1)
	assert.Equal(t, "A", response.Booking.Passengers[0].FirstName)
}

func TestBookingHandler_detail_notFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := testContext(t)
	c.Params = gin.Params{{Key: "bookingId", Value: "99"}}
	c.Request = httptest.NewRequest("GET", "/bookings/99", nil)

	mockService.On("GetBookingDetail", c.Request.Context(), int64(99)).Return(nil, domain.ErrNotFound)

	handler.detail(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Booking not found")
}
