// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package scenario

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vulntor/eventhub/pkg/eventhub"
)

// Trace entry kinds.
const (
	KindStep  = "step"
	KindCall  = "call"
	KindError = "error"
)

// TraceEntry is one line of a run trace.
type TraceEntry struct {
	Seq     int    `json:"seq"`
	Step    int    `json:"step"`
	Kind    string `json:"kind"`
	Op      string `json:"op,omitempty"`
	Key     string `json:"key,omitempty"`
	Handler string `json:"handler,omitempty"`
	Args    []any  `json:"args,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Result is the outcome of replaying a Document.
type Result struct {
	RunID     string           `json:"run_id"`
	Scenario  string           `json:"scenario"`
	Mode      string           `json:"mode"`
	Started   time.Time        `json:"started"`
	Duration  time.Duration    `json:"duration"`
	Entries   []TraceEntry     `json:"entries"`
	Calls     map[string]int   `json:"calls"`
	Records   map[string][]any `json:"records,omitempty"`
	Errors    int              `json:"errors"`
	Listening bool             `json:"listening"`
	Listeners int              `json:"listeners"`
	Failures  []string         `json:"failures,omitempty"`
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

// Err returns ErrExpectationFailed describing the failures, or nil.
func (r *Result) Err() error {
	if r.Passed() {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrExpectationFailed, r.Failures)
}

// Runner replays documents against fresh hubs.
type Runner struct {
	logger   zerolog.Logger
	mode     eventhub.RemovalMode
	observer eventhub.Observer
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRunnerLogger sets the logger passed to the runner and its hubs.
func WithRunnerLogger(logger zerolog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithDefaultMode sets the removal mode used when a document has none.
func WithDefaultMode(mode eventhub.RemovalMode) RunnerOption {
	return func(r *Runner) {
		r.mode = mode
	}
}

// WithHubObserver attaches observer to every hub the runner creates.
func WithHubObserver(observer eventhub.Observer) RunnerOption {
	return func(r *Runner) {
		r.observer = observer
	}
}

// NewRunner creates a Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type run struct {
	doc    *Document
	hub    *eventhub.Hub[string]
	res    *Result
	step   int
	byName map[string]*eventhub.Handler
	logger zerolog.Logger
}

// Run replays doc on a new hub. Failed steps are recorded in the result; with StopOnError the first one also ends the run and is returned.
// Unmet expectations are reported through Result.Failures, not the error.
func (r *Runner) Run(doc *Document) (*Result, error) {
	if err := Validate(doc); err != nil {
		return nil, err
	}

	mode := r.mode
	if doc.Mode != "" {
		parsed, err := eventhub.ParseRemovalMode(doc.Mode)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
		}
		mode = parsed
	}

	runID := uuid.NewString()
	logger := r.logger.With().Str("run_id", runID).Str("scenario", doc.Name).Logger()

	opts := []eventhub.Option{
		eventhub.WithLogger(logger),
		eventhub.WithRemovalMode(mode),
	}
	if r.observer != nil {
		opts = append(opts, eventhub.WithObserver(r.observer))
	}

	x := &run{
		doc: doc,
		hub: eventhub.New[string](opts...),
		res: &Result{
			RunID:    runID,
			Scenario: doc.Name,
			Mode:     mode.String(),
			Started:  time.Now(),
			Calls:    make(map[string]int, len(doc.Handlers)),
			Records:  make(map[string][]any),
		},
		byName: make(map[string]*eventhub.Handler, len(doc.Handlers)),
		logger: logger,
	}
	for _, spec := range doc.Handlers {
		x.res.Calls[spec.Name] = 0
		x.byName[spec.Name] = x.handler(spec)
	}

	logger.Info().Int("steps", len(doc.Steps)).Str("mode", mode.String()).Msg("scenario started")

	var runErr error
	for i, step := range doc.Steps {
		x.step = i
		if err := x.apply(step); err != nil {
			x.res.Errors++
			x.trace(TraceEntry{Kind: KindError, Op: step.Op, Key: step.Key, Error: err.Error()})
			logger.Warn().Err(err).Int("step", i).Str("key", step.Key).Msg("step failed")
			if doc.StopOnError {
				runErr = fmt.Errorf("step %d: %w", i, err)
				break
			}
		}
	}

	x.res.Listening = x.hub.IsListening()
	x.res.Listeners = x.hub.Len()
	x.res.Duration = time.Since(x.res.Started)
	if runErr == nil {
		x.res.Failures = x.check()
	}

	logger.Info().
		Int("errors", x.res.Errors).
		Int("failures", len(x.res.Failures)).
		Dur("duration", x.res.Duration).
		Msg("scenario finished")
	return x.res, runErr
}

func (x *run) apply(step Step) error {
	x.trace(TraceEntry{Kind: KindStep, Op: step.Op, Key: step.Key, Handler: step.Handler, Args: step.Args})

	h := x.byName[step.Handler]
	switch step.Op {
	case OpOn:
		return x.hub.On(step.Key, h)
	case OpOnAll:
		return x.hub.OnAll(h)
	case OpOnce:
		return x.hub.Once(step.Key, h)
	case OpRemove:
		x.hub.Remove(step.Key, h)
	case OpRemoveAll:
		x.hub.RemoveAll(h)
	case OpEmit:
		return x.emit(step.Key, step.Args)
	default:
		return fmt.Errorf("%w: unknown op %q", ErrInvalidScenario, step.Op)
	}
	return nil
}

func (x *run) emit(key string, args []any) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, rec)
		}
	}()
	return x.hub.Emit(key, args...)
}

func (x *run) handler(spec HandlerSpec) *eventhub.Handler {
	return eventhub.NewHandler(func(args ...any) error {
		x.res.Calls[spec.Name]++
		x.trace(TraceEntry{Kind: KindCall, Key: x.doc.Steps[x.step].Key, Handler: spec.Name, Args: args})

		switch spec.Action {
		case ActionRecord:
			x.res.Records[spec.Name] = append(x.res.Records[spec.Name], slices.Clone(args))
		case ActionFail:
			if spec.Message != "" {
				return fmt.Errorf("%w: %s: %s", ErrHandlerFailed, spec.Name, spec.Message)
			}
			return fmt.Errorf("%w: %s", ErrHandlerFailed, spec.Name)
		case ActionPanic:
			msg := spec.Message
			if msg == "" {
				msg = spec.Name
			}
			panic(msg)
		}
		return nil
	}).Named(spec.Name)
}

func (x *run) trace(e TraceEntry) {
	e.Seq = len(x.res.Entries)
	e.Step = x.step
	x.res.Entries = append(x.res.Entries, e)
}

func (x *run) check() []string {
	exp := x.doc.Expect
	if exp == nil {
		return nil
	}

	var failures []string
	names := make([]string, 0, len(exp.Calls))
	for name := range exp.Calls {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if got, want := x.res.Calls[name], exp.Calls[name]; got != want {
			failures = append(failures, fmt.Sprintf("handler %q called %d times, want %d", name, got, want))
		}
	}

	if exp.Listening != nil && *exp.Listening != x.res.Listening {
		failures = append(failures, fmt.Sprintf("listening is %t, want %t", x.res.Listening, *exp.Listening))
	}
	if exp.Errors != nil && *exp.Errors != x.res.Errors {
		failures = append(failures, fmt.Sprintf("%d emit errors, want %d", x.res.Errors, *exp.Errors))
	}
	return failures
}

// IsExpectationFailure reports whether err stems from unmet expectations.
func IsExpectationFailure(err error) bool {
	return errors.Is(err, ErrExpectationFailed)
}
