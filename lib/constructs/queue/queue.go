package queue

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssqs"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/mycdkproject/infra/config"
	"github.com/mycdkproject/infra/lib/cdklogger"
)

const deadLetterSuffix = "-dlq"

// QueueProps holds inputs for creating a Queue.
type QueueProps struct {
	Settings config.QueueSettings
	// Names feeds Settings.NameTemplate
	Names config.NameData
	// defaults to DESTROY
	RemovalPolicy awscdk.RemovalPolicy
}

// Queue is the sample work queue, with its optional dead-letter queue.
type Queue struct {
	constructs.Construct

	Queue awssqs.Queue
	// nil when dead_letter.max_receive_count is 0
	DeadLetterQueue awssqs.Queue
}

// NewQueue provisions an encrypted, TLS-only SQS queue.
func NewQueue(scope constructs.Construct, id string, props *QueueProps) *Queue {
	node := constructs.NewConstruct(scope, jsii.String(id))
	q := &Queue{Construct: node}
	s := props.Settings

	removalPolicy := props.RemovalPolicy
	if removalPolicy == "" {
		removalPolicy = awscdk.RemovalPolicy_DESTROY
	}

	name := config.MustRenderName(s.NameTemplate, props.Names)

	var dlq *awssqs.DeadLetterQueue
	if s.DeadLetter.MaxReceiveCount > 0 {
		var dlqName *string
		if name != nil {
			dlqName = config.MustRenderName(*name+deadLetterSuffix, props.Names)
		}
		q.DeadLetterQueue = awssqs.NewQueue(node, jsii.String("DeadLetterQueue"), &awssqs.QueueProps{
			QueueName:       dlqName,
			RetentionPeriod: awscdk.Duration_Days(jsii.Number(float64(s.DeadLetter.RetentionDays))),
			Encryption:      awssqs.QueueEncryption_SQS_MANAGED,
			EnforceSSL:      jsii.Bool(true),
			RemovalPolicy:   removalPolicy,
		})
		dlq = &awssqs.DeadLetterQueue{
			Queue:           q.DeadLetterQueue,
			MaxReceiveCount: jsii.Number(float64(s.DeadLetter.MaxReceiveCount)),
		}
		cdklogger.LogInfo(node, "", "Messages move to the dead-letter queue after %d receives.", s.DeadLetter.MaxReceiveCount)
	}

	q.Queue = awssqs.NewQueue(node, jsii.String("Queue"), &awssqs.QueueProps{
		QueueName:         name,
		VisibilityTimeout: awscdk.Duration_Seconds(jsii.Number(float64(s.VisibilityTimeoutSeconds))),
		RetentionPeriod:   awscdk.Duration_Days(jsii.Number(float64(s.RetentionDays))),
		Encryption:        awssqs.QueueEncryption_SQS_MANAGED,
		EnforceSSL:        jsii.Bool(true),
		DeadLetterQueue:   dlq,
		RemovalPolicy:     removalPolicy,
	})

	return q
}
