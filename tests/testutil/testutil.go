package testutil

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
)

// TestEnv is a fixed account/region so lookups and ARNs are deterministic.
var TestEnv = &awscdk.Environment{
	Account: jsii.String("123456789012"),
	Region:  jsii.String("us-east-1"),
}

// NewApp returns an app that skips asset bundling, so Lambda constructs
// synthesize without Docker or a Go cross-build. Extra context is merged in.
func NewApp(t *testing.T, ctx map[string]interface{}) awscdk.App {
	t.Helper()
	merged := map[string]interface{}{
		"aws:cdk:bundling-stacks": []interface{}{},
	}
	for k, v := range ctx {
		merged[k] = v
	}
	return awscdk.NewApp(&awscdk.AppProps{Context: &merged})
}

// NewStack returns an empty stack in TestEnv under a bundling-free app.
func NewStack(t *testing.T, id string) awscdk.Stack {
	t.Helper()
	return awscdk.NewStack(NewApp(t, nil), jsii.String(id), &awscdk.StackProps{Env: TestEnv})
}
