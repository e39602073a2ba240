// Package feature shows a scenario fixture whose state is cleared between
// scenarios by autoclean instead of hand-written teardown code.
package feature

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Step is one named action of a scenario.
type Step struct {
	Keyword string
	Name    string
	Run     func() error
}

func Given(name string, run func() error) Step { return Step{Keyword: "given", Name: name, Run: run} }
func When(name string, run func() error) Step  { return Step{Keyword: "when", Name: name, Run: run} }
func Then(name string, run func() error) Step  { return Step{Keyword: "then", Name: name, Run: run} }
func And(name string, run func() error) Step   { return Step{Keyword: "and", Name: name, Run: run} }

// StepResult records the outcome of an executed step.
type StepResult struct {
	Scenario string
	Step     string
	Err      error
	Elapsed  time.Duration
}

// Runner executes scenarios step by step and keeps their results.
type Runner struct {
	Feature string
	logger  zerolog.Logger
	results []StepResult
}

func NewRunner(feature string, logger zerolog.Logger) Runner {
	return Runner{Feature: feature, logger: logger}
}

// RunScenario executes steps in order and stops at the first failing step.
func (r *Runner) RunScenario(name string, steps ...Step) error {
	r.logger.Info().Str("feature", r.Feature).Str("scenario", name).Msg("scenario started")

	for _, step := range steps {
		label := step.Keyword + " " + step.Name
		start := time.Now()
		err := step.Run()
		r.results = append(r.results, StepResult{
			Scenario: name,
			Step:     label,
			Err:      err,
			Elapsed:  time.Since(start),
		})
		if err != nil {
			r.logger.Error().Err(err).Str("scenario", name).Str("step", label).Msg("step failed")
			return fmt.Errorf("scenario %q: %s: %w", name, label, err)
		}
		r.logger.Debug().Str("scenario", name).Str("step", label).Msg("step passed")
	}
	return nil
}

// Results returns the results of every step executed so far.
func (r *Runner) Results() []StepResult {
	return append([]StepResult(nil), r.results...)
}
