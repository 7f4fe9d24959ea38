package cdklogger

import (
	"fmt"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// formatMessage prefixes the message with [constructID] unless the scope path
// already ends with that id (e.g. "/Stack/Construct" or "/Construct").
func formatMessage(scope constructs.Construct, constructID string, format string, args ...interface{}) string {
	message := fmt.Sprintf(format, args...)
	if constructID == "" {
		return message
	}

	cdkPath := *scope.Node().Path()
	if strings.HasSuffix(cdkPath, "/"+constructID) || cdkPath == constructID {
		return message
	}
	return fmt.Sprintf("[%s] %s", constructID, message)
}

// LogInfo adds an INFO level message to the CDK construct's metadata.
// These messages are typically output during `cdk synth`.
func LogInfo(scope constructs.Construct, constructID string, format string, args ...interface{}) {
	awscdk.Annotations_Of(scope).AddInfo(jsii.String(formatMessage(scope, constructID, format, args...)))
}

// LogWarning adds a WARNING level message to the CDK construct's metadata.
func LogWarning(scope constructs.Construct, constructID string, format string, args ...interface{}) {
	awscdk.Annotations_Of(scope).AddWarning(jsii.String(formatMessage(scope, constructID, format, args...)))
}

// LogError adds an ERROR level message to the CDK construct's metadata.
// `cdk synth` fails when any error annotation is present.
func LogError(scope constructs.Construct, constructID string, format string, args ...interface{}) {
	awscdk.Annotations_Of(scope).AddError(jsii.String(formatMessage(scope, constructID, format, args...)))
}
