package anthropic

import (
	"context"

	anthropic "github.com/liushuangls/go-anthropic/v2"

	"github.com/viswavi/prompt-distillation/generation"
)

// defaultMaxTokens applies when the request does not cap completion length;
// the messages API requires an explicit value.
const defaultMaxTokens = 1024

// Provider issues completions through the Anthropic messages API. The API
// returns one message per call, so a batch of N costs N sequential calls.
type Provider struct {
	*anthropic.Client
}

var _ generation.Provider = (*Provider)(nil)

func New(client *anthropic.Client) *Provider {
	return &Provider{Client: client}
}

func (p *Provider) SetClient(clt *anthropic.Client) {
	p.Client = clt
}

func (p *Provider) Name() string {
	return "anthropic"
}

func (p *Provider) Complete(ctx context.Context, req *generation.Request) ([]string, error) {
	n := req.N
	if n < 1 {
		n = 1
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		msgReq := anthropic.MessagesRequest{
			Model:     anthropic.Model(req.Model),
			MaxTokens: maxTokens,
			Messages: []anthropic.Message{
				anthropic.NewUserTextMessage(req.Prompt),
			},
		}
		if req.Temperature > 0 {
			temperature := req.Temperature
			msgReq.Temperature = &temperature
		}
		resp, err := p.Client.CreateMessages(ctx, msgReq)
		if err != nil {
			return nil, err
		}
		out = append(out, resp.GetFirstContentText())
	}
	return out, nil
}
