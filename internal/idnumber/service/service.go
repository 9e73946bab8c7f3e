// Package service is the application layer over the pure idnumber pipeline.
// It resolves identifier types, applies configured defaults, fans batches out
// over a bounded worker group, and records logs, metrics and spans.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"idcheck/internal/idnumber"
	"idcheck/internal/idnumber/failure"
	"idcheck/internal/idnumber/metrics"
	dErrors "idcheck/pkg/domain-errors"
	"idcheck/pkg/requestcontext"
)

const (
	defaultBatchLimit  = 100
	defaultConcurrency = 8

	tracerName = "idcheck/internal/idnumber/service"
)

// Outcome labels for accepted and blank inputs; rejections use the failure class name.
const (
	OutcomeAccepted = "accepted"
	OutcomeEmpty    = "empty"
)

// Request asks for one identifier to be validated.
type Request struct {
	Type  string
	Value string
	// Strict overrides the service default when set.
	Strict   *bool
	Required bool
}

// Outcome is the classified result of one validation. Exactly one of
// Result and Failure is meaningful.
type Outcome struct {
	Type    idnumber.Type
	Result  idnumber.Result
	Failure *failure.Error
}

// Accepted reports whether the identifier passed.
func (o Outcome) Accepted() bool {
	return o.Failure == nil
}

// Label returns the metrics/log label for the outcome.
func (o Outcome) Label() string {
	switch {
	case o.Failure != nil:
		return failure.ClassName(o.Failure.Class)
	case o.Result.Empty:
		return OutcomeEmpty
	default:
		return OutcomeAccepted
	}
}

// Service validates identifiers against a registry.
type Service struct {
	registry      *idnumber.Registry
	logger        *slog.Logger
	metrics       *metrics.Metrics
	tracer        trace.Tracer
	strictDefault bool
	batchLimit    int
	concurrency   int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets the metrics sink; nil disables metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTracer overrides the global OpenTelemetry tracer.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// WithStrictDefault sets the strictness applied when a request leaves it unset.
func WithStrictDefault(strict bool) Option {
	return func(s *Service) { s.strictDefault = strict }
}

// WithBatchLimit caps items per batch. Non-positive values are ignored.
func WithBatchLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchLimit = n
		}
	}
}

// WithConcurrency caps goroutines per batch. Non-positive values are ignored.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// New constructs a Service over registry.
func New(registry *idnumber.Registry, opts ...Option) *Service {
	s := &Service{
		registry:    registry,
		logger:      slog.Default(),
		tracer:      otel.Tracer(tracerName),
		batchLimit:  defaultBatchLimit,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Types lists every supported identifier definition.
func (s *Service) Types() []idnumber.Definition {
	return s.registry.Definitions()
}

// Validate resolves req.Type and validates req.Value. A rejected identifier is
// not an error: it is reported through Outcome.Failure. Errors are reserved
// for unknown types (CodeNotFound) and cancelled contexts.
func (s *Service) Validate(ctx context.Context, req Request) (Outcome, error) {
	def, err := s.resolve(req.Type)
	if err != nil {
		return Outcome{}, err
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, dErrors.Wrap(err, dErrors.CodeTimeout, "validation cancelled")
	}
	return s.validate(ctx, def, req), nil
}

// ValidateBatch validates reqs concurrently and returns outcomes in request order.
// Every type is resolved before any work starts.
func (s *Service) ValidateBatch(ctx context.Context, reqs []Request) ([]Outcome, error) {
	if len(reqs) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "items must not be empty")
	}
	if len(reqs) > s.batchLimit {
		return nil, dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("items must contain at most %d entries", s.batchLimit))
	}

	defs := make([]idnumber.Definition, len(reqs))
	for i, req := range reqs {
		def, err := s.resolve(req.Type)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeValidation,
				fmt.Sprintf("items[%d].type %q is not supported", i, req.Type))
		}
		defs[i] = def
	}

	ctx, span := s.tracer.Start(ctx, "idnumber.ValidateBatch",
		trace.WithAttributes(attribute.Int("idnumber.batch_size", len(reqs))))
	defer span.End()
	s.metrics.ObserveBatchSize(len(reqs))

	out := make([]Outcome, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = s.validate(gctx, defs[i], req)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "batch validation cancelled")
	}

	s.logger.DebugContext(ctx, "identifier batch validated",
		"request_id", requestcontext.RequestID(ctx),
		"items", len(reqs),
	)
	return out, nil
}

func (s *Service) resolve(raw string) (idnumber.Definition, error) {
	t, err := s.registry.ParseType(raw)
	if err != nil {
		return idnumber.Definition{}, dErrors.Wrap(err, dErrors.CodeNotFound,
			fmt.Sprintf("identifier type %q is not supported", raw))
	}
	def, err := s.registry.Lookup(t)
	if err != nil {
		return idnumber.Definition{}, dErrors.Wrap(err, dErrors.CodeInternal, "registry lookup failed")
	}
	return def, nil
}

// validate never fails: rejections are folded into the outcome.
func (s *Service) validate(ctx context.Context, def idnumber.Definition, req Request) Outcome {
	typ := def.Type().String()
	ctx, span := s.tracer.Start(ctx, "idnumber.Validate",
		trace.WithAttributes(attribute.String("idnumber.type", typ)))
	defer span.End()

	strict := s.strictDefault
	if req.Strict != nil {
		strict = *req.Strict
	}

	start := time.Now()
	res, err := def.Validate(req.Value, idnumber.Options{Strict: strict, Required: req.Required})
	elapsed := time.Since(start)

	out := Outcome{Type: def.Type(), Result: res}
	if err != nil {
		fe := s.classify(ctx, span, typ, err)
		out = Outcome{Type: def.Type(), Failure: fe}
		span.SetAttributes(attribute.String("idnumber.failure_kind", string(fe.Kind)))
	}

	label := out.Label()
	span.SetAttributes(attribute.String("idnumber.outcome", label))
	s.metrics.IncrementOutcome(typ, label)
	s.metrics.ObserveLatency(typ, elapsed)

	// Raw values are PII and are never logged.
	s.logger.DebugContext(ctx, "identifier validated",
		"request_id", requestcontext.RequestID(ctx),
		"type", typ,
		"strict", strict,
		"outcome", label,
		"duration_us", elapsed.Microseconds(),
	)
	return out
}

// classify returns err as a *failure.Error. Anything else is a defect in a
// definition: it is logged at error level, marks the span, and is reported
// to the caller as invalid_format.
func (s *Service) classify(ctx context.Context, span trace.Span, typ string, err error) *failure.Error {
	if fe, ok := failure.As(err); ok {
		return fe
	}
	s.logger.ErrorContext(ctx, "unclassified validation error",
		"request_id", requestcontext.RequestID(ctx),
		"type", typ,
		"error", err,
	)
	span.RecordError(err)
	span.SetStatus(codes.Error, "unclassified validation error")
	return failure.Shape(typ, failure.KindInvalidFormat, nil)
}
