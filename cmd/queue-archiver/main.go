package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"

	"github.com/mycdkproject/infra/internal/archiver"
)

// Queue archiver Lambda
// - receives SQS batches from the sample queue
// - writes every message as a JSON document to the archive bucket
// - reports failed messages individually so only those are redelivered

func main() {
	logger := zap.Must(zap.NewProduction())
	defer logger.Sync() //nolint:errcheck

	var cfg archiver.Config
	if err := env.Parse(&cfg); err != nil {
		logger.Fatal("Failed to read environment", zap.Error(err))
	}

	sess := session.Must(session.NewSession())
	a, err := archiver.New(s3.New(sess), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create archiver", zap.Error(err))
	}

	lambda.Start(a.Handle)
}
