package pipeline

import (
	"context"
	"log/slog"

	"github.com/arpi-platform/regwatch/internal/model"
)

// Step is one pipeline stage. Steps run in sequence; each receives the
// accumulated RunResult from the previous steps.
type Step interface {
	// Do executes the stage. A returned error is pipeline-fatal and stops
	// the run; per-record attrition is recorded in the result instead.
	Do(ctx context.Context, result *model.RunResult) error

	// Name returns the stage name for logging and run accounting.
	Name() string
}

// Pipeline orchestrates the execution of the stages in order.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates an empty Pipeline. Steps are added with AddSteps.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{steps: make([]Step, 0)}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddSteps appends stages in execution order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// StepNames returns the names of all stages in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

// Execute runs all stages in sequence over the shared result. Cancellation
// is checked between stages; a stage error stops the run immediately.
func (p *Pipeline) Execute(ctx context.Context, result *model.RunResult) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled", "stage", step.Name(), "reason", ctx.Err())
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing stage", "stage", step.Name())

		if err := step.Do(ctx, result); err != nil {
			p.logger.Error("stage failed", "stage", step.Name(), "error", err)
			return err
		}

		result.PerformedStages = append(result.PerformedStages, step.Name())
	}
	return nil
}
