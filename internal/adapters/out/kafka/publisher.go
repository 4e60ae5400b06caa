// Package kafka publishes assignment-recorded events for downstream
// consumers (analytics, partner notifications). The ledger in Postgres is
// the system of record; the stream is an after-the-fact notification.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"dispatch/internal/core/domain/model/assignment"

	"github.com/IBM/sarama"
	"github.com/labstack/gommon/log"
)

// assignmentRecordedEvent is the wire shape of one published entry.
type assignmentRecordedEvent struct {
	AssignmentID string    `json:"assignment_id"`
	OrderID      string    `json:"order_id"`
	PartnerID    *string   `json:"partner_id,omitempty"`
	Status       string    `json:"status"`
	Reason       string    `json:"reason,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// AssignmentPublisher sends assignment-recorded events to a Kafka topic
// using a synchronous producer. Messages are keyed by order ID so all
// attempts for one order land on the same partition, in order.
type AssignmentPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewAssignmentPublisher connects a sync producer to the given brokers.
func NewAssignmentPublisher(brokers []string, topic string) (*AssignmentPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	return &AssignmentPublisher{producer: producer, topic: topic}, nil
}

// PublishAssignmentRecorded sends one ledger entry to the topic.
func (p *AssignmentPublisher) PublishAssignmentRecorded(
	_ context.Context, entry *assignment.Assignment,
) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	event := assignmentRecordedEvent{
		AssignmentID: entry.ID().String(),
		OrderID:      entry.OrderID().String(),
		Status:       entry.Status().String(),
		Reason:       entry.Reason(),
		Timestamp:    entry.Timestamp(),
	}
	if entry.PartnerID() != nil {
		partnerID := entry.PartnerID().String()
		event.PartnerID = &partnerID
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.OrderID),
		Value: sarama.ByteEncoder(payload),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		log.Errorf("failed to publish assignment %s: %v", event.AssignmentID, err)
		return err
	}

	log.Debugf("assignment %s published to %s[%d]@%d", event.AssignmentID, p.topic, partition, offset)
	return nil
}

// Close shuts down the underlying producer.
func (p *AssignmentPublisher) Close() error {
	return p.producer.Close()
}
