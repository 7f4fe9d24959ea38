package queue

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awssns"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssnssubscriptions"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssqs"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/mycdkproject/infra/config"
)

// TopicProps holds inputs for creating a Topic. Queue is required.
type TopicProps struct {
	Settings config.TopicSettings
	Names    config.NameData
	Queue    awssqs.IQueue
}

// Topic is an SNS topic delivering into the sample queue.
type Topic struct {
	constructs.Construct

	Topic awssns.Topic
}

// NewTopic provisions the topic and subscribes the queue to it. The
// subscription also grants the topic sqs:SendMessage on the queue policy.
func NewTopic(scope constructs.Construct, id string, props *TopicProps) *Topic {
	if props.Queue == nil {
		panic("queue.NewTopic: Queue is required")
	}

	node := constructs.NewConstruct(scope, jsii.String(id))
	t := &Topic{Construct: node}

	t.Topic = awssns.NewTopic(node, jsii.String("Topic"), &awssns.TopicProps{
		TopicName: config.MustRenderName(props.Settings.NameTemplate, props.Names),
	})
	t.Topic.AddSubscription(awssnssubscriptions.NewSqsSubscription(props.Queue, &awssnssubscriptions.SqsSubscriptionProps{
		RawMessageDelivery: jsii.Bool(props.Settings.RawMessageDelivery),
	}))

	return t
}
