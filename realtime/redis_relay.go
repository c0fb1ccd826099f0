package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

// envelope tags relayed payloads with the publishing instance so it can ignore its own echo.
type envelope struct {
	Origin  string          `json:"origin"`
	Payload json.RawMessage `json:"payload"`
}

// RedisRelay shares hub broadcasts between server instances over a Redis pub/sub channel.
// Like the hub itself it is best effort: messages published while an instance is
// disconnected are lost.
type RedisRelay struct {
	client   *redis.Client
	channel  string
	instance string
	hub      *Hub
}

func NewRedisRelay(client *redis.Client, channel string, hub *Hub) *RedisRelay {
	return &RedisRelay{
		client:   client,
		channel:  channel,
		instance: uuid.NewString(),
		hub:      hub,
	}
}

// NewRedisClient connects to addr and pings it. A nil client means Redis is unavailable and
// the caller should run without a relay.
func NewRedisClient(addr, password string) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		utils.ErrorLogger.Warnf("redis unavailable at %s: %v", addr, err)
		client.Close()
		return nil
	}
	return client
}

func (r *RedisRelay) Publish(payload []byte) {
	msg, err := json.Marshal(envelope{Origin: r.instance, Payload: payload})
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.client.Publish(ctx, r.channel, msg).Err(); err != nil {
		utils.ErrorLogger.Warnf("redis publish failed: %v", err)
	}
}

// Run delivers messages from other instances to local listeners until ctx is done.
func (r *RedisRelay) Run(ctx context.Context) {
	pubsub := r.client.Subscribe(ctx, r.channel)
	defer pubsub.Close()

	utils.InfoLogger.Infof("relaying realtime events over redis channel %s", r.channel)
	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			r.handle([]byte(msg.Payload))
		}
	}
}

func (r *RedisRelay) handle(raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		utils.ErrorLogger.Warnf("dropping malformed relay message: %v", err)
		return
	}
	if env.Origin == r.instance || len(env.Payload) == 0 {
		return
	}
	r.hub.Deliver(env.Payload)
}
