package config

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

var ErrInvalidName = errors.New("invalid resource name")

// SQS and SNS share the same naming rule for standard queues/topics.
var physicalNameRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,80}$`)

// NameData is what a name_template can reference.
type NameData struct {
	Project string
	Stage   string
	Suffix  string
}

// NameData returns the template data for these settings.
func (s Settings) NameData() NameData {
	return NameData{
		Project: s.Project,
		Stage:   string(s.Stage),
		Suffix:  s.Suffix,
	}
}

// RenderName renders a physical-name template with sprig functions.
// An empty template renders to nil, leaving naming to CloudFormation.
func RenderName(tmpl string, data NameData) (*string, error) {
	if strings.TrimSpace(tmpl) == "" {
		return nil, nil
	}

	t, err := template.New("name").
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse name template %q: %w", tmpl, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render name template %q: %w", tmpl, err)
	}

	name := strings.TrimSpace(buf.String())
	if !physicalNameRe.MatchString(name) {
		return nil, fmt.Errorf("%w %q rendered from %q", ErrInvalidName, name, tmpl)
	}
	return &name, nil
}

// MustRenderName is RenderName for synth-time callers.
func MustRenderName(tmpl string, data NameData) *string {
	name, err := RenderName(tmpl, data)
	if err != nil {
		panic(err)
	}
	return name
}
