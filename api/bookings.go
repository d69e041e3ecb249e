package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

// Register mounts the booking routes. Detail is deliberately left outside the
// auth middleware: it is fetched by booking id without credentials.
func (h *BookingHandler) Register(router *gin.RouterGroup, requireUser gin.HandlerFunc) {
	router.POST("/", requireUser, h.create)
	router.GET("/", requireUser, h.list)
	router.PATCH("/:bookingId/cancel", requireUser, h.cancel)
	router.GET("/:bookingId", h.detail)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req booking.CreateBookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Required fields are missing"})
		return
	}

	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication token missing"})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), user.ID, req)
	if err != nil {
		if errors.Is(err, booking.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Required fields are missing"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating new booking", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Booking created and passengers added successfully",
		"newBooking": created,
	})
}

func (h *BookingHandler) list(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication token missing"})
		return
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching bookings", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *BookingHandler) cancel(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication token missing"})
		return
	}

	id, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found or does not belong to the authenticated user"})
		return
	}

	updated, err := h.service.CancelBooking(c.Request.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found or does not belong to the authenticated user"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating booking status", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": updated})
}

func (h *BookingHandler) detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
		return
	}

	detail, err := h.service.GetBookingDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching booking", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": detail})
}
