package archiver

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambdaeventsources"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssqs"
	"github.com/aws/aws-cdk-go/awscdklambdagoalpha/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/mycdkproject/infra/config"
	"github.com/mycdkproject/infra/lib/cdklogger"
	"github.com/mycdkproject/infra/lib/utils"
)

// Environment variable names read by cmd/queue-archiver.
const (
	BucketEnvVar = "ARCHIVE_BUCKET"
	PrefixEnvVar = "ARCHIVE_PREFIX"
)

// ArchiverProps holds inputs for creating an Archiver.
// Queue is required.
type ArchiverProps struct {
	Settings config.ArchiverSettings
	Queue    awssqs.IQueue
	// defaults to DESTROY
	RemovalPolicy awscdk.RemovalPolicy
	// Entry is the handler's package directory, defaults to <root>/cmd/queue-archiver
	Entry *string
	// ModuleDir is the go.mod the handler builds with, defaults to <root>/go.mod
	ModuleDir *string
}

// Archiver drains the queue into an S3 bucket through a Go Lambda.
type Archiver struct {
	constructs.Construct

	Bucket   awss3.Bucket
	Function awscdklambdagoalpha.GoFunction
}

// NewArchiver provisions the bucket, the handler and the SQS event source mapping.
func NewArchiver(scope constructs.Construct, id string, props *ArchiverProps) *Archiver {
	if props.Queue == nil {
		panic("archiver.NewArchiver: Queue is required")
	}

	node := constructs.NewConstruct(scope, jsii.String(id))
	a := &Archiver{Construct: node}
	s := props.Settings

	removalPolicy := props.RemovalPolicy
	if removalPolicy == "" {
		removalPolicy = awscdk.RemovalPolicy_DESTROY
	}

	entry := props.Entry
	if entry == nil {
		entry = jsii.String(utils.ProjectPath("cmd", "queue-archiver"))
	}
	moduleDir := props.ModuleDir
	if moduleDir == nil {
		moduleDir = jsii.String(utils.ProjectPath("go.mod"))
	}

	a.Bucket = awss3.NewBucket(node, jsii.String("Bucket"), &awss3.BucketProps{
		BlockPublicAccess: awss3.BlockPublicAccess_BLOCK_ALL(),
		Encryption:        awss3.BucketEncryption_S3_MANAGED,
		EnforceSSL:        jsii.Bool(true),
		RemovalPolicy:     removalPolicy,
	})

	a.Function = awscdklambdagoalpha.NewGoFunction(node, jsii.String("Function"), &awscdklambdagoalpha.GoFunctionProps{
		Entry:        entry,
		ModuleDir:    moduleDir,
		Runtime:      awslambda.Runtime_PROVIDED_AL2023(),
		Architecture: awslambda.Architecture_ARM_64(),
		MemorySize:   jsii.Number(float64(s.MemorySizeMB)),
		Timeout:      awscdk.Duration_Seconds(jsii.Number(float64(s.TimeoutSeconds))),
		Description:  jsii.String("Archives queue messages to S3"),
		Bundling: &awscdklambdagoalpha.BundlingOptions{
			CgoEnabled: jsii.Bool(false),
			GoBuildFlags: &[]*string{
				jsii.String("-ldflags \"-s -w\""),
			},
		},
		Environment: &map[string]*string{
			BucketEnvVar: a.Bucket.BucketName(),
			PrefixEnvVar: jsii.String(s.Prefix),
		},
	})

	a.Bucket.GrantPut(a.Function, nil)

	a.Function.AddEventSource(awslambdaeventsources.NewSqsEventSource(props.Queue, &awslambdaeventsources.SqsEventSourceProps{
		BatchSize:               jsii.Number(float64(s.BatchSize)),
		ReportBatchItemFailures: jsii.Bool(true),
	}))

	cdklogger.LogInfo(node, "", "Archiving queue messages under prefix %q in batches of %d.", s.Prefix, s.BatchSize)

	return a
}
