package config

import (
	"errors"
	"fmt"

	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

const (
	stackNameCtxKey    = "stackName"
	stackSuffixCtxKey  = "stackSuffix"
	stageCtxKey        = "stage"
	settingsFileCtxKey = "settingsFile"

	DefaultStackName    = "mycdkproject"
	DefaultSettingsFile = "settings.toml"
)

// StageType is the deployment stage a stack is synthesized for.
type StageType string

const (
	StageDev     StageType = "dev"
	StageStaging StageType = "staging"
	StageProd    StageType = "prod"
)

var ErrInvalidStage = errors.New("invalid stage")

// ParseStage converts a raw string into a StageType.
func ParseStage(s string) (StageType, error) {
	switch StageType(s) {
	case StageDev, StageStaging, StageProd:
		return StageType(s), nil
	default:
		return "", fmt.Errorf("%w %q – allowed: dev | staging | prod", ErrInvalidStage, s)
	}
}

func lookupContextString(scope constructs.Construct, key string) (string, bool) {
	raw := scope.Node().TryGetContext(jsii.String(key))
	if raw == nil {
		return "", false
	}
	v, ok := raw.(string)
	if !ok {
		panic(fmt.Sprintf("context %q must be a string, got %T", key, raw))
	}
	return v, true
}

// contextString reads a string context value, falling back to def when absent.
func contextString(scope constructs.Construct, key string, def string) string {
	if v, ok := lookupContextString(scope, key); ok {
		return v
	}
	return def
}

// StackName is read from 'cdk.json/context/stackName'.
func StackName(scope constructs.Construct) string {
	return contextString(scope, stackNameCtxKey, DefaultStackName)
}

// StackSuffix is read from '--context stackSuffix=...'. Empty when not set.
func StackSuffix(scope constructs.Construct) string {
	return contextString(scope, stackSuffixCtxKey, "")
}

// WithStackSuffix appends the stack suffix, if any, to the given name.
func WithStackSuffix(scope constructs.Construct, name string) string {
	suffix := StackSuffix(scope)
	if suffix == "" {
		return name
	}
	return name + "-" + suffix
}

// GetStage reads "stage" from CDK context at synth time.
// • Absence → default "dev"
// • Bad value → panic with a clear message.
func GetStage(scope constructs.Construct) StageType {
	raw := contextString(scope, stageCtxKey, string(StageDev))
	stage, err := ParseStage(raw)
	if err != nil {
		panic(fmt.Errorf("context %s: %w", stageCtxKey, err))
	}
	return stage
}

// SettingsFile is read from 'cdk.json/context/settingsFile'.
func SettingsFile(scope constructs.Construct) string {
	return contextString(scope, settingsFileCtxKey, DefaultSettingsFile)
}
