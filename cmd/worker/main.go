package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/email"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/queue"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/jackc/pgx/v5/pgxpool"
	kafkaGo "github.com/segmentio/kafka-go"
)

// The worker drains the flight_bookings queue: for each job it loads the
// booking detail read model and sends the confirmation email. A side loop
// consumes the kafka booking-events topic for operational logging.
func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	jobQueue := queue.NewRedisQueue(cfg.Redis)
	defer jobQueue.Close()

	bookingRepo := repository.NewBookingRepository(pool)
	bookingService := booking.NewBookingService(bookingRepo, nil, nil, "")
	emailSender := email.NewSender(cfg.SMTP)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingEventsTopic)
	defer consumer.Close()

	go func() {
		if err := consumer.Consume(ctx, func(_ context.Context, msg kafkaGo.Message) error {
			var event kafka.BookingEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Printf("decode event error: %v", err)
				return nil
			}
			log.Printf("booking event %s: booking=%d user=%s status=%s", event.Type, event.BookingID, event.UserID, event.Status)
			return nil
		}); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	for {
		data, err := jobQueue.Pop(ctx, cfg.Queue.BookingsQueue)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Println("shutting down")
				return
			}
			log.Printf("pop job error: %v", err)
			continue
		}

		var job queue.NotificationJob
		if err := json.Unmarshal(data, &job); err != nil {
			log.Printf("decode job error: %v", err)
			continue
		}

		if err := handleJob(ctx, bookingService, emailSender, job); err != nil {
			log.Printf("handle job for booking %d: %v", job.BookingID, err)
		}
	}
}

func handleJob(ctx context.Context, svc booking.BookingUseCase, sender *email.Sender, job queue.NotificationJob) error {
	detail, err := svc.GetBookingDetail(ctx, job.BookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Printf("booking %d no longer exists, dropping job", job.BookingID)
			return nil
		}
		return err
	}
	return sender.Send(ctx, job.Email, job.Subject, detail)
}
