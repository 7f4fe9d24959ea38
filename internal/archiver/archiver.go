package archiver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var ErrNoBucket = errors.New("archive bucket is required")

// Config is read from the Lambda environment.
type Config struct {
	Bucket string `env:"ARCHIVE_BUCKET"`
	Prefix string `env:"ARCHIVE_PREFIX" envDefault:"messages" validate:"required"`
}

// Archiver copies SQS messages into S3, one object per message.
type Archiver struct {
	client s3iface.S3API
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

// New returns an Archiver writing to cfg.Bucket. A nil logger discards logs.
func New(client s3iface.S3API, cfg Config, logger *zap.Logger) (*Archiver, error) {
	if cfg.Bucket == "" {
		return nil, ErrNoBucket
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid archiver config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Archiver{
		client: client,
		cfg:    cfg,
		logger: logger.Named("archiver").With(zap.String("bucket", cfg.Bucket)),
		now:    time.Now,
	}, nil
}

// ObjectKey is <prefix>/<yyyy>/<mm>/<dd>/<messageId>.json, dated by when the
// message was sent. Keys never start with a slash.
func ObjectKey(prefix string, messageID string, sentAt time.Time) string {
	prefix = strings.TrimLeft(prefix, "/")
	return path.Join(prefix, sentAt.UTC().Format("2006/01/02"), messageID+".json")
}

// Handle archives every record of the batch. Records that fail are returned as
// batch item failures so only they are redelivered; the error return is
// reserved for failures that affect the whole batch.
func (a *Archiver) Handle(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse

	for _, msg := range event.Records {
		if err := a.archive(ctx, msg); err != nil {
			a.logger.Error("Failed to archive message", zap.String("messageId", msg.MessageId), zap.Error(err))
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{
				ItemIdentifier: msg.MessageId,
			})
		}
	}

	a.logger.Info("Archived batch",
		zap.Int("received", len(event.Records)),
		zap.Int("failed", len(resp.BatchItemFailures)),
	)

	return resp, nil
}

func (a *Archiver) archive(ctx context.Context, msg events.SQSMessage) error {
	archivedAt := a.now().UTC()
	record, err := NewRecord(msg, archivedAt)
	if err != nil {
		return err
	}

	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	sentAt := record.SentAt
	if sentAt.IsZero() {
		sentAt = archivedAt
	}
	key := ObjectKey(a.cfg.Prefix, msg.MessageId, sentAt)

	_, err = a.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to put s3://%s/%s: %w", a.cfg.Bucket, key, err)
	}

	a.logger.Debug("Archived message", zap.String("key", key))
	return nil
}
