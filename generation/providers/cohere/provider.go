package cohere

import (
	"context"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereClient "github.com/cohere-ai/cohere-go/v2/client"

	"github.com/viswavi/prompt-distillation/generation"
)

// Provider issues completions through the Cohere chat API. The API returns
// one reply per call, so a batch of N costs N sequential calls.
type Provider struct {
	*cohereClient.Client
}

var _ generation.Provider = (*Provider)(nil)

func New(client *cohereClient.Client) *Provider {
	return &Provider{Client: client}
}

func (p *Provider) SetClient(clt *cohereClient.Client) {
	p.Client = clt
}

func (p *Provider) Name() string {
	return "cohere"
}

func (p *Provider) Complete(ctx context.Context, req *generation.Request) ([]string, error) {
	n := req.N
	if n < 1 {
		n = 1
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		chatReq := cohere.ChatRequest{
			Message: req.Prompt,
		}
		if req.Model != "" {
			model := req.Model
			chatReq.Model = &model
		}
		if req.Temperature > 0 {
			temperature := float64(req.Temperature)
			chatReq.Temperature = &temperature
		}
		if req.MaxTokens > 0 {
			maxTokens := req.MaxTokens
			chatReq.MaxTokens = &maxTokens
		}
		resp, err := p.Client.Chat(ctx, &chatReq)
		if err != nil {
			return nil, err
		}
		out = append(out, resp.Text)
	}
	return out, nil
}
