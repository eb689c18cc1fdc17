package submission

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"formgate/internal/submission/metrics"
	"formgate/pkg/platform/audit"
	"formgate/pkg/requestcontext"
)

//go:generate mockgen -source=gate.go -destination=mocks/mocks.go -package=mocks AuditPublisher

// AuditPublisher records submission decisions.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Gate wraps Evaluate with logging, metrics, tracing and audit emission.
// The decision itself is always the one Evaluate returns.
type Gate struct {
	logger    *slog.Logger
	metrics   *metrics.Metrics
	publisher AuditPublisher
	tracer    trace.Tracer
}

type Option func(*Gate)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		g.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gate) {
		g.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(g *Gate) {
		g.publisher = publisher
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(g *Gate) {
		g.tracer = tracer
	}
}

func NewGate(opts ...Option) *Gate {
	g := &Gate{
		logger: slog.New(slog.DiscardHandler),
		tracer: otel.Tracer("formgate/submission"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Evaluate runs the rule chain. A zero in.Now is replaced by the
// request-scoped clock.
func (g *Gate) Evaluate(ctx context.Context, in Input) Decision {
	ctx, span := g.tracer.Start(ctx, "submission.Evaluate")
	defer span.End()

	if in.Now.IsZero() {
		in.Now = requestcontext.Now(ctx)
	}

	start := time.Now()
	decision := Evaluate(in)
	g.metrics.ObserveEvaluateLatency(time.Since(start))
	g.metrics.IncrementOutcome(string(decision.Status), string(decision.Reason))
	for _, kind := range decision.Kinds {
		g.metrics.IncrementFieldFailure(kind.String())
	}

	span.SetAttributes(
		attribute.String("submission.status", string(decision.Status)),
		attribute.String("submission.reason", string(decision.Reason)),
		attribute.Int("submission.field_errors", len(decision.Errors)),
	)

	g.logDecision(ctx, decision)
	g.emitAudit(ctx, decision)

	return decision
}

func (g *Gate) logDecision(ctx context.Context, d Decision) {
	args := []any{
		"status", d.Status,
		"form_id", requestcontext.FormID(ctx).String(),
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		args = append(args, "request_id", requestID)
	}
	if d.IsReady() {
		g.logger.InfoContext(ctx, "submission authorized", args...)
		return
	}
	args = append(args, "reason", d.Reason)
	if len(d.Errors) > 0 {
		args = append(args, "fields", d.FailedFields())
	}
	g.logger.InfoContext(ctx, "submission rejected", args...)
}

func (g *Gate) emitAudit(ctx context.Context, d Decision) {
	if g.publisher == nil {
		return
	}

	action := audit.EventSubmissionRejected
	if d.IsReady() {
		action = audit.EventSubmissionAuthorized
	}

	err := g.publisher.Emit(ctx, audit.Event{
		Category:      action.Category(),
		Timestamp:     requestcontext.Now(ctx),
		FormID:        requestcontext.FormID(ctx),
		ParticipantID: requestcontext.ParticipantID(ctx),
		Action:        action.String(),
		Decision:      string(d.Status),
		Reason:        string(d.Reason),
		Fields:        d.FailedFields(),
		RequestID:     requestcontext.RequestID(ctx),
	})
	if err != nil {
		g.logger.WarnContext(ctx, "failed to emit audit event", "action", action, "error", err)
	}
}
