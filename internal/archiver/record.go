package archiver

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/events"
)

var ErrEmptyMessageID = errors.New("message has no id")

// Notification is the part of the SNS envelope worth keeping. Present only
// when the message reached the queue through a topic without raw delivery.
type Notification struct {
	MessageID string    `json:"messageId"`
	TopicArn  string    `json:"topicArn"`
	Subject   string    `json:"subject,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Record is the JSON document stored for each message.
type Record struct {
	MessageID    string            `json:"messageId"`
	Source       string            `json:"source"`
	Body         string            `json:"body"`
	Attributes   map[string]string `json:"attributes,omitempty"`
	Notification *Notification     `json:"notification,omitempty"`
	SentAt       time.Time         `json:"sentAt"`
	ArchivedAt   time.Time         `json:"archivedAt"`
}

// NewRecord converts an SQS message, unwrapping an SNS envelope if the body
// is one.
func NewRecord(msg events.SQSMessage, archivedAt time.Time) (Record, error) {
	if msg.MessageId == "" {
		return Record{}, ErrEmptyMessageID
	}

	record := Record{
		MessageID:  msg.MessageId,
		Source:     msg.EventSourceARN,
		Body:       msg.Body,
		Attributes: msg.Attributes,
		ArchivedAt: archivedAt,
	}

	if raw, ok := msg.Attributes["SentTimestamp"]; ok {
		sentAt, err := parseEpochMillis(raw)
		if err != nil {
			return Record{}, fmt.Errorf("message %s: %w", msg.MessageId, err)
		}
		record.SentAt = sentAt
	}

	if n, ok := unwrapNotification(msg.Body); ok {
		record.Body = n.Message
		record.Notification = &Notification{
			MessageID: n.MessageID,
			TopicArn:  n.TopicArn,
			Subject:   n.Subject,
			Timestamp: n.Timestamp,
		}
	}

	return record, nil
}

func parseEpochMillis(raw string) (time.Time, error) {
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid SentTimestamp %q: %w", raw, err)
	}
	return time.UnixMilli(ms).UTC(), nil
}

// unwrapNotification reports whether body is an SNS Notification envelope.
func unwrapNotification(body string) (events.SNSEntity, bool) {
	var entity events.SNSEntity
	if err := json.Unmarshal([]byte(body), &entity); err != nil {
		return entity, false
	}
	if entity.Type != "Notification" || entity.TopicArn == "" {
		return entity, false
	}
	return entity, true
}
