package synthesis

import (
	"fmt"
	"strings"
)

// templateTier selects how much scaffolding the meta prompt carries. Rounds
// that sample few examples lean on a verbose template; rounds with many
// examples let the examples speak and keep the template short, which also
// trims token cost.
type templateTier int

const (
	tierComplex templateTier = iota
	tierMiddle
	tierSimple
)

// tierFor maps the number of sampled examples to a template tier.
func tierFor(sampled int) templateTier {
	switch {
	case sampled <= 3:
		return tierComplex
	case sampled <= 7:
		return tierMiddle
	default:
		return tierSimple
	}
}

const complexTemplate = `You are generating training data for the task described below.

## TASK
%s

## EXAMPLES
%s

## REQUIREMENTS
1. Generate exactly one new example of the task.
2. The new example must follow the input/output format the task describes and stay within the task's domain of valid inputs.
3. The new example must be different from every example shown above; vary the topic, phrasing and length.
4. Respond with a single JSON object of the form {"input": "...", "output": "..."} and nothing else.`

const middleTemplate = `Generate one new example for the task below. It must match the task's input/output format and must not repeat any example shown.

## TASK
%s

## EXAMPLES
%s

Respond with a single JSON object {"input": "...", "output": "..."} and nothing else.`

const simpleTemplate = `## TASK
%s

## EXAMPLES
%s

One new, different example as JSON {"input": "...", "output": "..."}:`

func metaPrompt(instruction, examplesBlock string, tier templateTier) string {
	if strings.TrimSpace(examplesBlock) == "" {
		examplesBlock = "N/A"
	}
	var tmpl string
	switch tier {
	case tierComplex:
		tmpl = complexTemplate
	case tierMiddle:
		tmpl = middleTemplate
	default:
		tmpl = simpleTemplate
	}
	return fmt.Sprintf(tmpl, instruction, examplesBlock)
}
