package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Publisher is the part of *redis.Client the mirror needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Mirror republishes relay broadcasts on a Redis channel so processes
// outside this server can follow the game. It never blocks the relay:
// payloads that do not fit in the queue are dropped.
type Mirror struct {
	rdb       Publisher
	channel   string
	queue     chan Payload
	done      chan struct{}
	closeOnce sync.Once
}

func NewMirror(rdb Publisher, channel string, queueSize int) *Mirror {
	if queueSize <= 0 {
		queueSize = 1
	}

	return &Mirror{
		rdb:     rdb,
		channel: channel,
		queue:   make(chan Payload, queueSize),
		done:    make(chan struct{}),
	}
}

func (m *Mirror) Deliver(p Payload) bool {
	select {
	case <-m.done:
		return false
	default:
	}

	select {
	case m.queue <- p:
		return true
	default:
		log.Printf("mirror: queue full, dropping %v", p.Variant)
		return false
	}
}

func (m *Mirror) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
	})
}

// Run publishes queued payloads until ctx is cancelled or Close is called.
func (m *Mirror) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.done:
			return
		case p := <-m.queue:
			data, err := json.Marshal(p)

			if err != nil {
				log.Printf("mirror: marshal %v: %v", p.Variant, err)
				continue
			}

			if err := m.rdb.Publish(ctx, m.channel, data).Err(); err != nil {
				log.Printf("mirror: publish to %v: %v", m.channel, err)
			}
		}
	}
}
