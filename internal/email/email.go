package email

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/domain"
)

// Sender delivers booking confirmation emails. With no SMTP host configured it
// logs the message instead, which keeps local runs working without a mailbox.
type Sender struct {
	cfg config.SMTPConfig
}

func NewSender(cfg config.SMTPConfig) *Sender {
	return &Sender{cfg: cfg}
}

func (s *Sender) Send(ctx context.Context, to, subject string, detail *domain.BookingDetail) error {
	body := BuildBody(detail)

	if s.cfg.Host == "" {
		log.Printf("smtp not configured, skipping delivery to %s: %s", to, subject)
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", s.cfg.From, to, subject, body)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}

// BuildBody formats the confirmation email from the booking detail read model.
func BuildBody(detail *domain.BookingDetail) string {
	var b strings.Builder

	if len(detail.Passengers) > 0 {
		fmt.Fprintf(&b, "Hi %s %s,\n\n", detail.Passengers[0].FirstName, detail.Passengers[0].LastName)
	}
	b.WriteString("Your booking is confirmed. Below are your booking details:\n\n")
	fmt.Fprintf(&b, "Booking ID: %d\n", detail.ID)
	fmt.Fprintf(&b, "Price: %.2f\n", detail.Price)
	fmt.Fprintf(&b, "Booking Type: %s\n", detail.BookingType)
	fmt.Fprintf(&b, "Payment Mode: %s\n", detail.PaymentMode)
	fmt.Fprintf(&b, "Phone: %s\n\n", detail.Phone)

	writeTrip(&b, "Outbound Trip", detail.Trip)

	b.WriteString("Passengers List:\n")
	fmt.Fprintf(&b, "%-30s%-10s\n", "Name", "Gender")
	b.WriteString(strings.Repeat("-", 40) + "\n")
	for _, p := range detail.Passengers {
		gender := p.Gender
		if gender == "" {
			gender = "N/A"
		}
		fmt.Fprintf(&b, "%-30s%-10s\n", p.FirstName+" "+p.LastName, gender)
	}
	b.WriteString("\n")

	if detail.ReturnTrip != nil {
		writeTrip(&b, "Return Trip", detail.ReturnTrip)
	}

	b.WriteString("Thank you for booking with us!\n\nBest regards,\nCustomer Support")
	return b.String()
}

func writeTrip(b *strings.Builder, title string, trip *domain.Trip) {
	if trip == nil {
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	fmt.Fprintf(b, "  Flight Number: %s\n", trip.Flight.FlightNumber)
	fmt.Fprintf(b, "  Airline: %s\n", trip.Flight.Airline.Name)
	fmt.Fprintf(b, "  Departure: %s from %s\n", trip.Departure.Format("2006-01-02 15:04"), trip.Origin.Name)
	fmt.Fprintf(b, "  Arrival: %s at %s\n\n", trip.Arrival.Format("2006-01-02 15:04"), trip.Destination.Name)
}
