package agent

import (
	"context"
	"fmt"

	"github.com/vietravel-ai/travelbot/llm"
	"github.com/vietravel-ai/travelbot/log"
	"github.com/vietravel-ai/travelbot/rag"
	"github.com/vietravel-ai/travelbot/weather"
)

// WeatherProvider is the weather capability consumed by the enrichment
// stage. *weather.Client satisfies it.
type WeatherProvider interface {
	Current(ctx context.Context, place string) (*weather.Report, error)
}

// Agent drives the five-stage travel assistant pipeline:
// classify -> retrieve -> generate -> extract location -> enrich weather,
// then composes the final answer. Stages run strictly in order; every
// stage absorbs its own failures so a turn always produces an answer.
type Agent struct {
	model     llm.Model
	retriever rag.Retriever
	weather   WeatherProvider // nil disables enrichment
	logger    log.Logger
}

// Option configures the Agent
type Option func(*Agent)

// WithWeather enables weather enrichment with the given provider
func WithWeather(provider WeatherProvider) Option {
	return func(a *Agent) {
		a.weather = provider
	}
}

// WithLogger replaces the default logger
func WithLogger(logger log.Logger) Option {
	return func(a *Agent) {
		a.logger = logger
	}
}

// New creates an Agent. The model and retriever are required; their
// absence is a construction error, never a per-turn one.
func New(model llm.Model, retriever rag.Retriever, opts ...Option) (*Agent, error) {
	if model == nil {
		return nil, fmt.Errorf("agent: model is required")
	}
	if retriever == nil {
		return nil, fmt.Errorf("agent: retriever is required")
	}

	a := &Agent{
		model:     model,
		retriever: retriever,
		logger:    log.GetDefaultLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// stage is one step of the fixed pipeline
type stage struct {
	name string
	run  func(ctx context.Context, st *pipelineState)
}

// ProcessTurn runs one user turn through the pipeline. It never fails:
// stage-local errors degrade the result instead of aborting, and the
// final answer is always non-empty.
func (a *Agent) ProcessTurn(ctx context.Context, input TurnInput) TurnResult {
	st := &pipelineState{
		query:        input.Query,
		imagePayload: input.Image,
		chatHistory:  input.History,
	}

	stages := []stage{
		{"classify", a.classify},
		{"retrieve", a.retrieve},
		{"generate", a.generate},
		{"extract_location", a.extractLocation},
		{"enrich_weather", a.enrichWeather},
		{"compose", a.compose},
	}

	for _, s := range stages {
		a.logger.Debug("running stage %s", s.name)
		s.run(ctx, st)
	}

	return TurnResult{
		FinalAnswer: st.finalAnswer,
		History:     st.chatHistory,
		QueryKind:   st.queryKind,
		Location:    st.extractedLocation,
	}
}
