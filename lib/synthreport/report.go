// Package synthreport summarizes a synthesized cloud assembly for logging.
package synthreport

import (
	"fmt"
	"slices"

	"github.com/aws/aws-cdk-go/awscdk/v2/cxapi"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// StackReport counts what a single stack template declares.
type StackReport struct {
	StackName string
	// resource type -> count
	Resources map[string]int
	Outputs   int
}

// FromAssembly builds one report per stack artifact, in assembly order.
func FromAssembly(assembly cxapi.CloudAssembly) []StackReport {
	artifacts := assembly.Stacks()
	if artifacts == nil {
		return nil
	}

	return lo.Map(*artifacts, func(stack cxapi.CloudFormationStackArtifact, _ int) StackReport {
		template, _ := stack.Template().(map[string]interface{})
		return FromTemplate(*stack.StackName(), template)
	})
}

// FromTemplate counts resources by type and outputs in a decoded
// CloudFormation template. A nil template yields an empty report.
func FromTemplate(stackName string, template map[string]interface{}) StackReport {
	report := StackReport{
		StackName: stackName,
		Resources: map[string]int{},
	}

	resources, _ := template["Resources"].(map[string]interface{})
	for _, raw := range resources {
		resource, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		if typ, ok := resource["Type"].(string); ok {
			report.Resources[typ]++
		}
	}

	outputs, _ := template["Outputs"].(map[string]interface{})
	report.Outputs = len(outputs)

	return report
}

// Total is the number of resources in the template.
func (r StackReport) Total() int {
	return lo.Sum(lo.Values(r.Resources))
}

// Types lists "Type=count" entries sorted by type.
func (r StackReport) Types() []string {
	types := lo.MapToSlice(r.Resources, func(typ string, n int) string {
		return fmt.Sprintf("%s=%d", typ, n)
	})
	slices.Sort(types)
	return types
}

// Fields renders the report as zap fields.
func (r StackReport) Fields() []zap.Field {
	return []zap.Field{
		zap.String("stack", r.StackName),
		zap.Int("resources", r.Total()),
		zap.Int("outputs", r.Outputs),
		zap.Strings("types", r.Types()),
	}
}

// Log writes one line per stack.
func Log(logger *zap.Logger, reports []StackReport) {
	for _, r := range reports {
		logger.Info("Synthesized stack", r.Fields()...)
	}
}
