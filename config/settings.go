package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/go-playground/validator/v10"
)

// DeadLetterSettings configures the redrive queue. A zero MaxReceiveCount
// disables it.
type DeadLetterSettings struct {
	MaxReceiveCount int `toml:"max_receive_count" validate:"min=0,max=1000"`
	RetentionDays   int `toml:"retention_days" validate:"min=1,max=14"`
}

// QueueSettings configures the sample SQS queue.
type QueueSettings struct {
	Enabled                  bool               `toml:"enabled"`
	NameTemplate             string             `toml:"name_template"`
	VisibilityTimeoutSeconds int                `toml:"visibility_timeout_seconds" validate:"min=0,max=43200"`
	RetentionDays            int                `toml:"retention_days" validate:"min=1,max=14"`
	DeadLetter               DeadLetterSettings `toml:"dead_letter"`
}

// TopicSettings configures the SNS topic fanning out into the queue.
type TopicSettings struct {
	Enabled      bool   `toml:"enabled"`
	NameTemplate string `toml:"name_template"`
	// RawMessageDelivery skips the SNS JSON envelope on delivery
	RawMessageDelivery bool `toml:"raw_message_delivery"`
}

// ArchiverSettings configures the Lambda that copies queue messages to S3.
type ArchiverSettings struct {
	Enabled        bool   `toml:"enabled"`
	Prefix         string `toml:"prefix" validate:"required_if=Enabled true"`
	BatchSize      int    `toml:"batch_size" validate:"min=1,max=10"`
	MemorySizeMB   int    `toml:"memory_size_mb" validate:"min=128,max=10240"`
	TimeoutSeconds int    `toml:"timeout_seconds" validate:"min=1,max=900"`
}

// Settings is everything the stack needs to decide which resources to build.
type Settings struct {
	Project  string            `toml:"project" validate:"required,resourcename"`
	Stage    StageType         `toml:"stage" validate:"oneof=dev staging prod"`
	Suffix   string            `toml:"-"`
	Tags     map[string]string `toml:"tags"`
	Queue    QueueSettings     `toml:"queue"`
	Topic    TopicSettings     `toml:"topic"`
	Archiver ArchiverSettings  `toml:"archiver"`
}

// DefaultSettings mirrors what `cdk init` generates: a single queue with a
// 300 second visibility timeout and nothing else.
func DefaultSettings() Settings {
	return Settings{
		Project: DefaultStackName,
		Stage:   StageDev,
		Queue: QueueSettings{
			Enabled:                  true,
			VisibilityTimeoutSeconds: 300,
			RetentionDays:            4,
			DeadLetter: DeadLetterSettings{
				MaxReceiveCount: 0,
				RetentionDays:   14,
			},
		},
		Archiver: ArchiverSettings{
			Prefix:         "messages",
			BatchSize:      10,
			MemorySizeMB:   128,
			TimeoutSeconds: 30,
		},
	}
}

var resourceNameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,39}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("resourcename", func(fl validator.FieldLevel) bool {
		return resourceNameRe.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks field ranges and cross-component requirements.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// LoadSettingsFile decodes a TOML settings file over DefaultSettings.
// A missing file is not an error: the defaults are returned.
func LoadSettingsFile(path string) (Settings, error) {
	settings := DefaultSettings()

	md, err := toml.DecodeFile(path, &settings)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("error reading settings file %s: %w", path, err)
	}
	// typos would otherwise silently fall back to defaults
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return settings, fmt.Errorf("unknown keys in settings file %s: %v", path, undecoded)
	}

	return settings, nil
}

// LoadSettings resolves settings for the stack owning scope. Precedence,
// lowest first: defaults, settings file, CDK context, environment.
// Panics on invalid settings so that `cdk synth` stops with the reason.
func LoadSettings(scope constructs.Construct) Settings {
	envVars := GetEnvironmentVariables[StackEnvironmentVariables](scope)

	path := SettingsFile(scope)
	if envVars.SettingsFile != "" {
		path = envVars.SettingsFile
	}

	settings, err := LoadSettingsFile(path)
	if err != nil {
		panic(err)
	}

	if _, ok := lookupContextString(scope, stageCtxKey); ok {
		settings.Stage = GetStage(scope)
	}
	if envVars.Stage != "" {
		stage, err := ParseStage(envVars.Stage)
		if err != nil {
			panic(fmt.Errorf("MYCDK_STAGE: %w", err))
		}
		settings.Stage = stage
	}
	if envVars.EnableArchiver {
		settings.Archiver.Enabled = true
	}
	settings.Suffix = StackSuffix(scope)

	if err := settings.Validate(); err != nil {
		panic(err)
	}

	return settings
}
