package prompt

import (
	"context"
	"strings"

	"github.com/bububa/instructor-go/pkg/instructor"
	cohere "github.com/cohere-ai/cohere-go/v2"
	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"
)

// parsedFields is the structured output schema for model-assisted parsing.
type parsedFields struct {
	// Instruction is the task description with every demonstration removed.
	Instruction string `json:"Instruction" validate:"required" jsonschema:"title=Instruction,description=The task description with all demonstrations removed"`

	// Demonstrations holds the demonstration pairs in the input="..." /
	// output="..." convention, or "N/A" when the prompt has none.
	Demonstrations string `json:"Demonstrations" jsonschema:"title=Demonstrations,description=The demonstration pairs rewritten as paired input=\"...\" and output=\"...\" lines or N/A when there are none"`
}

const llmParserSystemPrompt = `You separate a user's task prompt into its instruction and its demonstrations.

The instruction describes the task, the format of its inputs and outputs, and the range of valid inputs. Demonstrations are concrete example pairs showing the task being performed.

Rewrite every demonstration as a pair of lines using the exact convention:
input="..."
output="..."
Escape any double quote inside a value as \". If the prompt contains no demonstrations, use N/A for the Demonstrations field. Never invent demonstrations that are not present in the prompt.`

// LLMParser asks a hosted model to separate a messy prompt into instruction
// and demonstration fields. It is an alternative front end to Parse for
// prompts too unstructured for the key-value convention alone; the
// demonstration field the model returns is still read with ParseDemonstrations
// so both parsers share one schema.
type LLMParser struct {
	client      instructor.Instructor
	model       string
	temperature float32
	maxTokens   int
}

// LLMParserOption configures an LLMParser.
type LLMParserOption func(*LLMParser)

func WithModel(model string) LLMParserOption {
	return func(p *LLMParser) {
		p.model = model
	}
}

func WithTemperature(temperature float32) LLMParserOption {
	return func(p *LLMParser) {
		p.temperature = temperature
	}
}

func WithMaxTokens(maxTokens int) LLMParserOption {
	return func(p *LLMParser) {
		p.maxTokens = maxTokens
	}
}

// NewLLMParser returns a parser backed by an instructor client.
func NewLLMParser(client instructor.Instructor, opts ...LLMParserOption) *LLMParser {
	p := &LLMParser{
		client:    client,
		maxTokens: 2048,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse sends the raw prompt to the model and converts the structured reply
// into a Prompt. It fails with MalformedPromptError when the model cannot
// isolate any instruction text.
func (p *LLMParser) Parse(ctx context.Context, raw string) (*Prompt, error) {
	fields := new(parsedFields)
	if err := p.response(ctx, raw, fields); err != nil {
		return nil, err
	}
	instruction := strings.TrimSpace(fields.Instruction)
	if instruction == "" {
		return nil, &MalformedPromptError{Reason: "model returned no instruction text"}
	}
	ret := &Prompt{instruction: Instruction(instruction)}
	demoText := strings.TrimSpace(fields.Demonstrations)
	if demoText != "" && demoText != "N/A" {
		ret.demonstrations, ret.warnings = ParseDemonstrations(demoText)
	}
	return ret, nil
}

func (p *LLMParser) response(ctx context.Context, raw string, fields *parsedFields) error {
	switch clt := p.client.(type) {
	case *instructor.InstructorOpenAI:
		chatReq := openai.ChatCompletionRequest{
			Model:               p.model,
			Temperature:         p.temperature,
			MaxCompletionTokens: p.maxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: llmParserSystemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: raw},
			},
		}
		if _, err := clt.CreateChatCompletion(ctx, chatReq, fields); err != nil {
			return err
		}
	case *instructor.InstructorAnthropic:
		chatReq := anthropic.MessagesRequest{
			Model:       anthropic.Model(p.model),
			Temperature: &p.temperature,
			MaxTokens:   p.maxTokens,
			System:      llmParserSystemPrompt,
			Messages: []anthropic.Message{
				anthropic.NewUserTextMessage(raw),
			},
		}
		if _, err := clt.CreateMessages(ctx, chatReq, fields); err != nil {
			return err
		}
	case *instructor.InstructorCohere:
		temperature := float64(p.temperature)
		preamble := llmParserSystemPrompt
		chatReq := cohere.ChatRequest{
			Model:       &p.model,
			Temperature: &temperature,
			MaxTokens:   &p.maxTokens,
			Preamble:    &preamble,
			Message:     raw,
		}
		if _, err := clt.Chat(ctx, &chatReq, fields); err != nil {
			return err
		}
	}
	return nil
}
