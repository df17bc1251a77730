// Package orchestrator owns session state and sequences the workflow
// collaborators: it validates step entry, commits completions, runs the
// disclosure engine, and produces call-to-action plans. It is the only
// package that mutates workflow.State.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ventuslabs/siteflow/artifacts"
	"github.com/ventuslabs/siteflow/cta"
	"github.com/ventuslabs/siteflow/disclosure"
	"github.com/ventuslabs/siteflow/logger"
	metrics "github.com/ventuslabs/siteflow/metrics/prometheus"
	"github.com/ventuslabs/siteflow/pack"
	"github.com/ventuslabs/siteflow/sessionstore"
	"github.com/ventuslabs/siteflow/validators"
	"github.com/ventuslabs/siteflow/workflow"
)

const tracerName = "github.com/ventuslabs/siteflow/orchestrator"

// ErrUnknownStep reports a step id absent from the loaded workflow graph.
var ErrUnknownStep = errors.New("unknown step id")

// Orchestrator drives progressive-disclosure sessions over one analysis pack.
// All methods are safe for concurrent use as long as the configured store is.
type Orchestrator struct {
	graph     *workflow.Graph
	validator *validators.Validator
	engine    *disclosure.Engine
	store     sessionstore.Store
	tracer    trace.Tracer
	now       func() time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithStore replaces the default in-memory session store.
func WithStore(s sessionstore.Store) Option {
	return func(o *Orchestrator) { o.store = s }
}

// WithTimeFunc overrides the clock, for deterministic tests.
func WithTimeFunc(fn func() time.Time) Option {
	return func(o *Orchestrator) { o.now = fn }
}

// WithTracerProvider sets the provider used for per-operation spans. The
// default is the global otel provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *Orchestrator) { o.tracer = tp.Tracer(tracerName) }
}

// New creates an Orchestrator for the given pack.
func New(p *pack.Pack, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		graph:     p.Graph,
		validator: validators.New(p.Graph),
		engine:    disclosure.NewEngineWith(p.Disclosure),
		store:     sessionstore.NewMemoryStore(),
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.engine = o.engine.WithTimeFunc(o.now)
	return o
}

// Validator exposes the step validator so callers can register per-step
// overrides before serving sessions.
func (o *Orchestrator) Validator() *validators.Validator { return o.validator }

// Engine exposes the disclosure engine for runtime configuration updates.
func (o *Orchestrator) Engine() *disclosure.Engine { return o.engine }

// Outcome bundles everything a caller needs after completing a step.
type Outcome struct {
	Validation validators.Result   `json:"validation"`
	Decision   disclosure.Decision `json:"decision"`
	CTA        cta.Plan            `json:"cta"`
	State      *workflow.State     `json:"state"`
}

// StartSession creates a new session positioned at the workflow's entry step.
// A nil prefs keeps the defaults (adaptive guidance on, basic level).
func (o *Orchestrator) StartSession(ctx context.Context, prefs *workflow.Preferences) (*workflow.State, error) {
	ctx, span := o.tracer.Start(ctx, "orchestrator.StartSession")
	defer span.End()

	entry := o.graph.Entry()
	if entry == nil {
		return nil, errors.New("workflow graph has no entry step")
	}

	state := workflow.NewState(uuid.NewString(), entry.ID, o.graph.Len())
	if prefs != nil {
		state.Preferences = *prefs
	}
	state.Progress.LastActiveAt = o.now()
	state.AvailableSteps = stepIDs(o.validator.AvailableNextSteps(state))

	if err := o.store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("saving new session: %w", err)
	}
	metrics.SessionStarted()
	span.SetAttributes(attribute.String("session.id", state.SessionID))
	logger.InfoContext(ctx, "session started",
		"session_id", state.SessionID,
		"entry_step", entry.ID)
	return state, nil
}

// EndSession deletes the session. Unknown ids are reported via the store's
// ErrNotFound.
func (o *Orchestrator) EndSession(ctx context.Context, sessionID string) error {
	ctx, span := o.tracer.Start(ctx, "orchestrator.EndSession",
		trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	if err := o.store.Delete(ctx, sessionID); err != nil {
		return err
	}
	metrics.SessionEnded()
	logger.InfoContext(ctx, "session ended", "session_id", sessionID)
	return nil
}

// Session returns a snapshot of the session state.
func (o *Orchestrator) Session(ctx context.Context, sessionID string) (*workflow.State, error) {
	return o.store.Load(ctx, sessionID)
}

// EnterStep validates entry into stepID and, when valid, moves the session
// there. The validation result is returned either way so callers can surface
// missing prerequisites and soft warnings.
func (o *Orchestrator) EnterStep(ctx context.Context, sessionID, stepID string) (validators.Result, error) {
	ctx, span := o.tracer.Start(ctx, "orchestrator.EnterStep",
		trace.WithAttributes(
			attribute.String("session.id", sessionID),
			attribute.String("step.id", stepID)))
	defer span.End()

	state, err := o.store.Load(ctx, sessionID)
	if err != nil {
		return validators.Result{}, err
	}
	step, ok := o.graph.Step(stepID)
	if !ok {
		return validators.Result{}, fmt.Errorf("%w: %q", ErrUnknownStep, stepID)
	}

	res := o.validator.Validate(step, state)
	metrics.RecordStepEntry(stepID, res.Valid)
	span.SetAttributes(attribute.Bool("step.accepted", res.Valid))
	if !res.Valid {
		logger.StepBlocked(sessionID, stepID, res.MissingPrerequisites)
		return res, nil
	}

	state.CurrentStepID = stepID
	state.Progress.LastActiveStep = stepID
	state.Progress.LastActiveAt = o.now()
	if err := o.store.Save(ctx, state); err != nil {
		return validators.Result{}, fmt.Errorf("saving session: %w", err)
	}
	logger.StepEntered(sessionID, stepID, "warnings", len(res.Warnings))
	return res, nil
}

// CompleteStep records the result of a finished step and runs the full
// post-completion pipeline: completion validation, progress bookkeeping,
// disclosure evaluation, and call-to-action generation. Nothing is committed
// when validation fails; the returned Outcome still carries the findings and
// a CTA plan for the uncompleted step.
func (o *Orchestrator) CompleteStep(ctx context.Context, sessionID, stepID string, result *workflow.StepResult, minutesSpent int) (*Outcome, error) {
	ctx, span := o.tracer.Start(ctx, "orchestrator.CompleteStep",
		trace.WithAttributes(
			attribute.String("session.id", sessionID),
			attribute.String("step.id", stepID)))
	defer span.End()

	state, err := o.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	step, ok := o.graph.Step(stepID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStep, stepID)
	}

	validation := o.validator.ValidateCompletion(step, state, result)
	if entry := o.validator.Validate(step, state); !entry.Valid {
		// A completion may not bypass the prerequisite ordering.
		validation.Valid = false
		validation.MissingPrerequisites = entry.MissingPrerequisites
	}
	span.SetAttributes(attribute.Bool("step.committed", validation.Valid))
	if !validation.Valid {
		logger.StepBlocked(sessionID, stepID, validation.MissingPrerequisites)
		avail := o.validator.AvailableNextSteps(state)
		return &Outcome{
			Validation: validation,
			CTA:        cta.Generate(step, state, avail),
			State:      state,
		}, nil
	}

	result.StepID = stepID
	state.MarkCompleted(stepID)
	state.StepResults[stepID] = result
	for k, v := range result.Data {
		state.SharedData[k] = v
	}
	state.Progress.TimeSpentMinutes += minutesSpent
	state.Progress.LastActiveStep = stepID
	state.Progress.LastActiveAt = o.now()

	metrics.RecordStepCompletion(stepID, string(step.Category), result.Success)
	metrics.RecordStepTime(string(step.Category), float64(minutesSpent))
	logger.StepCompleted(sessionID, stepID, result.Success,
		"completed_count", state.Progress.CompletedCount)

	decision := o.engine.Evaluate(state, state.AchievementIDs())
	o.commitDecision(state, decision)

	avail := o.validator.AvailableNextSteps(state)
	state.AvailableSteps = stepIDs(avail)
	plan := cta.Generate(step, state, avail)

	if err := o.store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	return &Outcome{
		Validation: validation,
		Decision:   decision,
		CTA:        plan,
		State:      state,
	}, nil
}

// commitDecision applies an accepted disclosure decision to the session
// state: feature reveals are unioned, a complexity upgrade is applied only
// when it targets exactly the next level, and achievements append once.
func (o *Orchestrator) commitDecision(state *workflow.State, d disclosure.Decision) {
	var revealed []string
	for _, f := range d.NewFeatures {
		if !slices.Contains(state.Progress.UnlockedFeatures, f) {
			state.Progress.UnlockedFeatures = append(state.Progress.UnlockedFeatures, f)
			metrics.RecordFeatureRevealed(f)
			revealed = append(revealed, f)
		}
	}
	if len(revealed) > 0 {
		logger.FeaturesRevealed(state.SessionID, revealed)
	}

	if d.ComplexityUpgrade != nil {
		next := *d.ComplexityUpgrade
		if next.Ordinal() == state.Progress.ComplexityLevel.Ordinal()+1 {
			from := state.Progress.ComplexityLevel
			state.Progress.ComplexityLevel = next
			cfg := o.engine.Config()
			if gate, ok := cfg.GateFor(next); ok {
				for _, f := range gate.UnlockedFeatures {
					if !slices.Contains(state.Progress.UnlockedFeatures, f) {
						state.Progress.UnlockedFeatures = append(state.Progress.UnlockedFeatures, f)
						metrics.RecordFeatureRevealed(f)
					}
				}
			}
			// The request is consumed by the upgrade; the next tier needs a
			// fresh one.
			delete(state.SharedData, disclosure.ExplicitRequestKey)
			metrics.RecordComplexityUpgrade(string(next))
			logger.ComplexityUpgraded(state.SessionID, string(from), string(next))
		}
	}

	for _, a := range d.Achievements {
		if state.HasAchievement(a.ID) {
			continue
		}
		state.Progress.Achievements = append(state.Progress.Achievements, a)
		metrics.RecordAchievement(a.ID)
		logger.AchievementUnlocked(state.SessionID, a.ID)
	}
}

// CallToAction regenerates the CTA plan for a step without mutating state,
// for UI refreshes between step transitions.
func (o *Orchestrator) CallToAction(ctx context.Context, sessionID, stepID string) (cta.Plan, error) {
	state, err := o.store.Load(ctx, sessionID)
	if err != nil {
		return cta.Plan{}, err
	}
	step, ok := o.graph.Step(stepID)
	if !ok {
		return cta.Plan{}, fmt.Errorf("%w: %q", ErrUnknownStep, stepID)
	}
	return cta.Generate(step, state, o.validator.AvailableNextSteps(state)), nil
}

// RecommendNextStep returns the best next step for the session, or nil when
// every reachable step is completed.
func (o *Orchestrator) RecommendNextStep(ctx context.Context, sessionID string) (*workflow.StepDefinition, error) {
	state, err := o.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return o.validator.RecommendedNextStep(state), nil
}

// SyncFromTranscript scans conversation messages for known artifact types and
// marks the producing steps as completed, for sessions resumed from a
// transcript rather than driven through CompleteStep. Returns the step ids
// newly marked.
func (o *Orchestrator) SyncFromTranscript(ctx context.Context, sessionID string, messages []artifacts.Message) ([]string, error) {
	ctx, span := o.tracer.Start(ctx, "orchestrator.SyncFromTranscript",
		trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	state, err := o.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var marked []string
	for _, stepID := range artifacts.DetectCompletedSteps(messages) {
		if _, ok := o.graph.Step(stepID); !ok {
			continue
		}
		if state.MarkCompleted(stepID) {
			marked = append(marked, stepID)
		}
	}
	if len(marked) == 0 {
		return nil, nil
	}

	state.Progress.LastActiveAt = o.now()
	state.AvailableSteps = stepIDs(o.validator.AvailableNextSteps(state))
	if err := o.store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	logger.InfoContext(ctx, "session synced from transcript",
		"session_id", sessionID,
		"steps", marked)
	return marked, nil
}

func stepIDs(steps []*workflow.StepDefinition) []string {
	ids := make([]string, 0, len(steps))
	for _, s := range steps {
		ids = append(ids, s.ID)
	}
	return ids
}
