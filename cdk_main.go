package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"

	"github.com/mycdkproject/infra/config"
	"github.com/mycdkproject/infra/lib/synthreport"
	"github.com/mycdkproject/infra/lib/utils"
	"github.com/mycdkproject/infra/stacks"
)

type appEnvironmentVariables struct {
	// "json" for machine-readable logs in CI, anything else for console output
	LogFormat string `env:"MYCDK_LOG_FORMAT" envDefault:"console"`
}

func newLogger() *zap.Logger {
	var vars appEnvironmentVariables
	if err := env.Parse(&vars); err != nil {
		panic(err)
	}
	if vars.LogFormat == "json" {
		return zap.Must(zap.NewProduction())
	}
	return zap.Must(zap.NewDevelopment())
}

func main() {
	defer jsii.Close()

	logger := newLogger()
	defer logger.Sync() //nolint:errcheck
	zap.ReplaceGlobals(logger)

	app := awscdk.NewApp(nil)

	stackName := config.WithStackSuffix(app, config.StackName(app))
	stacks.MycdkprojectStack(app, stackName, &stacks.MycdkprojectStackProps{
		StackProps: awscdk.StackProps{
			Env:         utils.CdkEnv(),
			Description: jsii.String("mycdkproject sample stack: SQS queue with optional SNS fan-in and S3 archiver"),
		},
	})

	assembly := app.Synth(nil)
	synthreport.Log(zap.L(), synthreport.FromAssembly(assembly))
}
