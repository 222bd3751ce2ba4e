package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"flight-tracker/flightboard/internal/constants"
	"flight-tracker/flightboard/internal/logging"
	"flight-tracker/flightboard/internal/models/entities"

	"github.com/segmentio/kafka-go"
)

// FlightEvent is emitted after every committed flight mutation.
type FlightEvent struct {
	Type       constants.EventType `json:"type"`
	FlightID   int64               `json:"flightId"`
	Flight     entities.Flight     `json:"flight"`
	OccurredAt time.Time           `json:"occurredAt"`
}

func NewFlightEvent(eventType constants.EventType, flight entities.Flight) FlightEvent {
	return FlightEvent{
		Type:       eventType,
		FlightID:   flight.ID,
		Flight:     flight,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event FlightEvent) error
	Close() error
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, FlightEvent) error { return nil }
func (NopPublisher) Close() error                               { return nil }

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes flight events to a single topic keyed by flight id,
// so all events for one flight land on the same partition.
type KafkaPublisher struct {
	topic  string
	writer messageWriter
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}
	return &KafkaPublisher{topic: topic, writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event FlightEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.FlightID, 10)),
		Value: data,
		Time:  event.OccurredAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	logging.Debug("Published flight event", "topic", p.topic, "type", event.Type, "flight_id", event.FlightID)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
