package cdklogger

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"
)

func TestFormatMessage(t *testing.T) {
	app := awscdk.NewApp(nil)
	stack := awscdk.NewStack(app, jsii.String("Stack"), nil)
	child := constructs.NewConstruct(stack, jsii.String("Queue"))

	assert.Equal(t, "built 2 queues", formatMessage(stack, "", "built %d queues", 2))
	// path "Stack/Queue" already names the construct
	assert.Equal(t, "ok", formatMessage(child, "Queue", "ok"))
	assert.Equal(t, "ok", formatMessage(stack, "Stack", "ok"))
	assert.Equal(t, "[Archiver] ok", formatMessage(stack, "Archiver", "ok"))
}

func TestAnnotations(t *testing.T) {
	app := awscdk.NewApp(nil)
	stack := awscdk.NewStack(app, jsii.String("Stack"), nil)

	LogInfo(stack, "Queue", "visibility timeout %ds", 300)
	LogWarning(stack, "", "no dead-letter queue")

	annotations := assertions.Annotations_FromStack(stack)
	annotations.HasInfo(jsii.String("/Stack"), jsii.String("[Queue] visibility timeout 300s"))
	annotations.HasWarning(jsii.String("/Stack"), jsii.String("no dead-letter queue"))
	annotations.HasNoError(jsii.String("*"), assertions.Match_AnyValue())
}
