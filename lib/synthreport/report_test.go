package synthreport

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssqs"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromTemplate(t *testing.T) {
	template := map[string]interface{}{
		"Resources": map[string]interface{}{
			"A":   map[string]interface{}{"Type": "AWS::SQS::Queue"},
			"B":   map[string]interface{}{"Type": "AWS::SQS::Queue"},
			"C":   map[string]interface{}{"Type": "AWS::SNS::Topic"},
			"Bad": "not-a-resource",
		},
		"Outputs": map[string]interface{}{
			"QueueUrl": map[string]interface{}{},
		},
	}

	r := FromTemplate("s", template)
	assert.Equal(t, map[string]int{"AWS::SQS::Queue": 2, "AWS::SNS::Topic": 1}, r.Resources)
	assert.Equal(t, 3, r.Total())
	assert.Equal(t, 1, r.Outputs)
	assert.Equal(t, []string{"AWS::SNS::Topic=1", "AWS::SQS::Queue=2"}, r.Types())
}

func TestFromTemplate_Nil(t *testing.T) {
	r := FromTemplate("empty", nil)
	assert.Equal(t, 0, r.Total())
	assert.Empty(t, r.Types())
}

func TestFromAssembly(t *testing.T) {
	app := awscdk.NewApp(nil)
	withQueue := awscdk.NewStack(app, jsii.String("WithQueue"), nil)
	awssqs.NewQueue(withQueue, jsii.String("Queue"), nil)
	awscdk.NewStack(app, jsii.String("Empty"), nil)

	reports := FromAssembly(app.Synth(nil))
	require.Len(t, reports, 2)

	byName := map[string]StackReport{}
	for _, r := range reports {
		byName[r.StackName] = r
	}
	assert.Equal(t, 1, byName["WithQueue"].Resources["AWS::SQS::Queue"])
	assert.Equal(t, 0, byName["Empty"].Total())
}

func TestLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	Log(zap.New(core), []StackReport{
		{StackName: "mycdkproject", Resources: map[string]int{"AWS::SQS::Queue": 1}},
	})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Synthesized stack", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "mycdkproject", fields["stack"])
	assert.EqualValues(t, 1, fields["resources"])
	assert.Equal(t, []interface{}{"AWS::SQS::Queue=1"}, fields["types"])
}
