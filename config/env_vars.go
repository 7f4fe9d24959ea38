package config

import (
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/caarlos0/env/v11"
)

type StackEnvironmentVariables struct {
	// overrides the stage from context when set
	Stage string `env:"MYCDK_STAGE"`
	// overrides 'cdk.json/context/settingsFile'
	SettingsFile string `env:"MYCDK_SETTINGS_FILE"`
	// EnableArchiver forces the archiver on, without editing the settings file
	EnableArchiver bool `env:"MYCDK_ENABLE_ARCHIVER" envDefault:"false"`
}

func GetEnvironmentVariables[T any](scope constructs.Construct) T {
	var envObj T

	// only run if we are synthesizing the stack
	if !IsStackInSynthesis(scope) {
		return envObj
	}

	err := env.Parse(&envObj)
	if err != nil {
		panic(err)
	}

	return envObj
}
