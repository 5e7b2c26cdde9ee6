package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaPublisher writes envelopes asynchronously through a buffered inbox.
// A request thread never blocks on the broker: when the inbox is full the
// event is dropped and logged.
type KafkaPublisher struct {
	w       *kafka.Writer
	logger  *zap.Logger
	inbox   chan kafka.Message
	closeCh chan struct{}
}

func NewKafkaPublisher(brokers []string, logger *zap.Logger, buf int) *KafkaPublisher {
	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		logger:  logger,
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
	}
}

// Start launches the background writer loop. On ctx cancellation the inbox is
// drained before the writer closes.
func (p *KafkaPublisher) Start(ctx context.Context) {
	go func() {
		defer close(p.closeCh)
		for {
			select {
			case <-ctx.Done():
				for {
					select {
					case m := <-p.inbox:
						p.write(m)
					default:
						_ = p.w.Close()
						return
					}
				}
			case m := <-p.inbox:
				p.write(m)
			}
		}
	}()
}

func (p *KafkaPublisher) Publish(topic, key string, envelope Envelope) {
	value, err := json.Marshal(envelope)
	if err != nil {
		p.logger.Error("marshal event", zap.String("topic", topic), zap.Error(err))
		return
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Time:  envelope.OccurredAt,
	}

	select {
	case p.inbox <- msg:
	default:
		p.logger.Warn("event inbox full, dropping event",
			zap.String("topic", topic),
			zap.String("event_type", envelope.EventType),
		)
	}
}

// WaitClosed blocks until the writer loop has drained and exited.
func (p *KafkaPublisher) WaitClosed() { <-p.closeCh }

func (p *KafkaPublisher) write(m kafka.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.w.WriteMessages(ctx, m); err != nil {
		p.logger.Error("publish event",
			zap.String("topic", m.Topic),
			zap.Error(err),
		)
	}
}
