package stacks

import (
	"slices"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/samber/lo"

	"github.com/mycdkproject/infra/config"
	"github.com/mycdkproject/infra/lib/cdklogger"
	"github.com/mycdkproject/infra/lib/constructs/archiver"
	"github.com/mycdkproject/infra/lib/constructs/queue"
)

// CfnOutput logical ids.
const (
	QueueUrlOutput        = "QueueUrl"
	DeadLetterUrlOutput   = "DeadLetterQueueUrl"
	TopicArnOutput        = "TopicArn"
	ArchiveBucketOutput   = "ArchiveBucketName"
	ArchiveFunctionOutput = "ArchiveFunctionName"
)

type MycdkprojectStackProps struct {
	awscdk.StackProps
	// Settings are resolved with config.LoadSettings when nil
	Settings *config.Settings
}

// MycdkprojectStack is the project's only stack. With every component
// disabled it is an empty container; by default it holds the sample queue.
func MycdkprojectStack(scope constructs.Construct, id string, props *MycdkprojectStackProps) awscdk.Stack {
	var sprops awscdk.StackProps
	if props != nil {
		sprops = props.StackProps
	}
	stack := awscdk.NewStack(scope, jsii.String(id), &sprops)

	var settings config.Settings
	if props != nil && props.Settings != nil {
		settings = *props.Settings
	} else {
		settings = config.LoadSettings(stack)
	}

	applyTags(stack, settings)

	removalPolicy := awscdk.RemovalPolicy_DESTROY
	if settings.Stage == config.StageProd {
		removalPolicy = awscdk.RemovalPolicy_RETAIN
	}
	names := settings.NameData()

	if !settings.Queue.Enabled {
		cdklogger.LogInfo(stack, "", "Sample queue disabled.")
		if settings.Topic.Enabled || settings.Archiver.Enabled {
			cdklogger.LogError(stack, "", "Topic and archiver need the sample queue; enable [queue] in the settings.")
		}
		return stack
	}

	q := queue.NewQueue(stack, "SampleQueue", &queue.QueueProps{
		Settings:      settings.Queue,
		Names:         names,
		RemovalPolicy: removalPolicy,
	})
	cdklogger.LogInfo(stack, "SampleQueue", "Sample queue with %ds visibility timeout.", settings.Queue.VisibilityTimeoutSeconds)
	awscdk.NewCfnOutput(stack, jsii.String(QueueUrlOutput), &awscdk.CfnOutputProps{
		Value: q.Queue.QueueUrl(),
	})

	if q.DeadLetterQueue != nil {
		awscdk.NewCfnOutput(stack, jsii.String(DeadLetterUrlOutput), &awscdk.CfnOutputProps{
			Value: q.DeadLetterQueue.QueueUrl(),
		})
	} else if settings.Stage == config.StageProd {
		cdklogger.LogWarning(stack, "SampleQueue", "No dead-letter queue in prod; poison messages will be retried until retention expires.")
	}

	if settings.Topic.Enabled {
		topic := queue.NewTopic(stack, "SampleTopic", &queue.TopicProps{
			Settings: settings.Topic,
			Names:    names,
			Queue:    q.Queue,
		})
		awscdk.NewCfnOutput(stack, jsii.String(TopicArnOutput), &awscdk.CfnOutputProps{
			Value: topic.Topic.TopicArn(),
		})
	}

	if settings.Archiver.Enabled {
		// Lambda rejects event sources whose visibility timeout is shorter than the function timeout
		if settings.Archiver.TimeoutSeconds > settings.Queue.VisibilityTimeoutSeconds {
			cdklogger.LogError(stack, "Archiver", "Function timeout %ds exceeds the queue visibility timeout %ds.",
				settings.Archiver.TimeoutSeconds, settings.Queue.VisibilityTimeoutSeconds)
		}
		a := archiver.NewArchiver(stack, "Archiver", &archiver.ArchiverProps{
			Settings:      settings.Archiver,
			Queue:         q.Queue,
			RemovalPolicy: removalPolicy,
		})
		awscdk.NewCfnOutput(stack, jsii.String(ArchiveBucketOutput), &awscdk.CfnOutputProps{
			Value: a.Bucket.BucketName(),
		})
		awscdk.NewCfnOutput(stack, jsii.String(ArchiveFunctionOutput), &awscdk.CfnOutputProps{
			Value: a.Function.FunctionName(),
		})
	}

	return stack
}

// applyTags tags every taggable resource in the stack. Keys are applied in
// sorted order so the synthesized template is stable.
func applyTags(stack awscdk.Stack, settings config.Settings) {
	tags := lo.Assign(settings.Tags, map[string]string{
		"project": settings.Project,
		"stage":   string(settings.Stage),
	})
	keys := lo.Keys(tags)
	slices.Sort(keys)
	for _, k := range keys {
		awscdk.Tags_Of(stack).Add(jsii.String(k), jsii.String(tags[k]), nil)
	}
}
