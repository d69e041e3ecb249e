package queue

import (
	"context"
	"encoding/json"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/redis/go-redis/v9"
)

// NotificationJob is the payload pushed to the flight_bookings queue when a
// booking is created. The worker resolves the booking detail by id.
type NotificationJob struct {
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	BookingID int64  `json:"booking_id"`
}

// RedisQueue is a list-based durable queue: producers LPUSH serialized jobs,
// consumers BRPOP them. No acks, no schema versioning.
type RedisQueue struct {
	client *redis.Client
}

func NewRedisQueue(cfg config.RedisConfig) *RedisQueue {
	return &RedisQueue{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Username: cfg.Username, Password: cfg.Password, DB: cfg.DB}),
	}
}

func (q *RedisQueue) Push(ctx context.Context, queueName string, job interface{}) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, queueName, data).Err()
}

// Pop blocks until a job is available on the named queue.
func (q *RedisQueue) Pop(ctx context.Context, queueName string) ([]byte, error) {
	res, err := q.client.BRPop(ctx, 0, queueName).Result()
	if err != nil {
		return nil, err
	}
	// BRPOP returns [key, value].
	return []byte(res[1]), nil
}

func (q *RedisQueue) Close() error {
	return q.client.Close()
}
