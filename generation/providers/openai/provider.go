package openai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/viswavi/prompt-distillation/generation"
)

// Provider issues chat completions through the OpenAI API. The request's N
// maps onto the API's native multi-choice support, so one round costs one
// HTTP call.
type Provider struct {
	*openai.Client
}

var _ generation.Provider = (*Provider)(nil)

func New(client *openai.Client) *Provider {
	return &Provider{Client: client}
}

func (p *Provider) SetClient(clt *openai.Client) {
	p.Client = clt
}

func (p *Provider) Name() string {
	return "openai"
}

func (p *Provider) Complete(ctx context.Context, req *generation.Request) ([]string, error) {
	n := req.N
	if n < 1 {
		n = 1
	}
	chatReq := openai.ChatCompletionRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		N:           n,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	}
	resp, err := p.Client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		out = append(out, choice.Message.Content)
	}
	return out, nil
}
