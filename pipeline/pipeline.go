// Package pipeline wires the synthesis core to its external collaborators:
// a model retriever searching for candidate small pretrained models, and a
// trainer/evaluator consuming the assembled dataset. The core hands its
// artifacts over untouched and never interprets the results.
package pipeline

import (
	"context"
	"fmt"

	"github.com/viswavi/prompt-distillation/dataset"
	"github.com/viswavi/prompt-distillation/prompt"
	"github.com/viswavi/prompt-distillation/synthesis"
)

// Parser turns raw prompt text into a parsed prompt. LocalParser applies
// the key-value convention; prompt.LLMParser is the model-assisted
// alternative.
type Parser interface {
	Parse(ctx context.Context, raw string) (*prompt.Prompt, error)
}

// LocalParser parses without any model call.
type LocalParser struct{}

var _ Parser = LocalParser{}

func (LocalParser) Parse(_ context.Context, raw string) (*prompt.Prompt, error) {
	return prompt.Parse(raw)
}

// ModelCandidate is one retrieval result, passed through as-is.
type ModelCandidate struct {
	Name   string  `json:"name"`
	Source string  `json:"source"`
	Score  float64 `json:"score"`
}

// TrainedModel points at a fine-tuned artifact produced by the trainer.
type TrainedModel struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Metrics are evaluation results keyed by metric name.
type Metrics map[string]float64

// ModelRetriever searches a model hub for small pretrained models suited to
// the instruction.
type ModelRetriever interface {
	Retrieve(ctx context.Context, instruction prompt.Instruction) ([]ModelCandidate, error)
}

// Trainer fine-tunes a candidate model on an assembled dataset.
type Trainer interface {
	Train(ctx context.Context, model ModelCandidate, ds *dataset.Dataset) (TrainedModel, error)
}

// Evaluator measures a trained model against held-out examples.
type Evaluator interface {
	Evaluate(ctx context.Context, model TrainedModel, testSet []synthesis.Example) (Metrics, error)
}

// Result carries everything a run produced. Fields past Dataset stay zero
// when the corresponding collaborator is not configured.
type Result struct {
	Prompt     *prompt.Prompt
	Dataset    *dataset.Dataset
	Candidates []ModelCandidate
	Model      TrainedModel
	Metrics    Metrics
}

// Pipeline runs parse, synthesize, assemble, and the optional collaborator
// stages for one prompt.
type Pipeline struct {
	parser       Parser
	client       synthesis.Generator
	retriever    ModelRetriever
	trainer      Trainer
	evaluator    Evaluator
	synthOpts    []synthesis.Option
	assembleOpts []dataset.Option
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

func WithParser(p Parser) PipelineOption {
	return func(pl *Pipeline) {
		pl.parser = p
	}
}

func WithRetriever(r ModelRetriever) PipelineOption {
	return func(pl *Pipeline) {
		pl.retriever = r
	}
}

func WithTrainer(t Trainer) PipelineOption {
	return func(pl *Pipeline) {
		pl.trainer = t
	}
}

func WithEvaluator(e Evaluator) PipelineOption {
	return func(pl *Pipeline) {
		pl.evaluator = e
	}
}

func WithSynthesisOptions(opts ...synthesis.Option) PipelineOption {
	return func(pl *Pipeline) {
		pl.synthOpts = opts
	}
}

func WithAssembleOptions(opts ...dataset.Option) PipelineOption {
	return func(pl *Pipeline) {
		pl.assembleOpts = opts
	}
}

// New builds a pipeline around a generation client. Retrieval, training and
// evaluation are optional; without them the pipeline stops after assembling
// the dataset.
func New(client synthesis.Generator, opts ...PipelineOption) *Pipeline {
	pl := &Pipeline{
		client: client,
		parser: LocalParser{},
	}
	for _, opt := range opts {
		opt(pl)
	}
	return pl
}

// Run executes the pipeline end to end for one raw prompt.
func (pl *Pipeline) Run(ctx context.Context, raw string) (*Result, error) {
	parsed, err := pl.parser.Parse(ctx, raw)
	if err != nil {
		return nil, err
	}
	ret := &Result{Prompt: parsed}

	syn := synthesis.NewSynthesizer(pl.client, parsed, pl.synthOpts...)
	pool, err := syn.Run(ctx)
	if err != nil {
		return ret, err
	}
	ds, err := dataset.Assemble(pool, pl.assembleOpts...)
	if err != nil {
		return ret, err
	}
	ret.Dataset = ds

	if pl.retriever == nil {
		return ret, nil
	}
	candidates, err := pl.retriever.Retrieve(ctx, parsed.Instruction())
	if err != nil {
		return ret, fmt.Errorf("model retrieval: %w", err)
	}
	ret.Candidates = candidates
	if pl.trainer == nil || len(candidates) == 0 {
		return ret, nil
	}
	model, err := pl.trainer.Train(ctx, candidates[0], ds)
	if err != nil {
		return ret, fmt.Errorf("training: %w", err)
	}
	ret.Model = model
	if pl.evaluator == nil {
		return ret, nil
	}
	metrics, err := pl.evaluator.Evaluate(ctx, model, ds.Split(dataset.TestSplit))
	if err != nil {
		return ret, fmt.Errorf("evaluation: %w", err)
	}
	ret.Metrics = metrics
	return ret, nil
}
