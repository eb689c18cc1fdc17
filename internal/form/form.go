// Package form ties a record, its rules, an interaction tracker and the
// submission gate together into one form instance.
package form

import (
	"context"
	"log/slog"
	"maps"
	"sync"

	"formgate/internal/interaction"
	"formgate/internal/submission"
	"formgate/internal/validation"
	"formgate/internal/validation/models"
	id "formgate/pkg/domain"
	dErrors "formgate/pkg/domain-errors"
	"formgate/pkg/platform/audit"
	"formgate/pkg/platform/debounce"
	"formgate/pkg/platform/sentinel"
	"formgate/pkg/requestcontext"
)

// FieldValidatedFunc observes debounced field validation results.
type FieldValidatedFunc func(field string, res models.FieldResult)

type fieldTask struct {
	field string
	epoch uint64
}

// Form is one editable form instance. It is safe for concurrent use; the
// debounced validation callbacks run on timer goroutines.
type Form struct {
	id          id.FormID
	cfg         Config
	conditional models.ConditionalRuleSet
	validator   *validation.Validator
	tracker     *interaction.Tracker
	gate        *submission.Gate
	publisher   submission.AuditPublisher
	logger      *slog.Logger
	onValidated FieldValidatedFunc

	mu          sync.Mutex
	initial     models.Record
	record      models.Record
	fieldErrors map[string]string
	debouncers  map[string]*debounce.Debouncer[fieldTask]
	epoch       uint64
	disposed    bool
}

type Option func(*Form)

// WithInitialValues seeds the record. IsDirty compares against these values.
func WithInitialValues(values models.Record) Option {
	return func(f *Form) {
		f.initial = values.Clone()
	}
}

func WithConditional(fn models.ConditionalRuleSet) Option {
	return func(f *Form) {
		f.conditional = fn
	}
}

func WithGate(gate *submission.Gate) Option {
	return func(f *Form) {
		f.gate = gate
	}
}

// WithAuditPublisher records reset and dispose events. Submission decisions
// are audited by the gate.
func WithAuditPublisher(publisher submission.AuditPublisher) Option {
	return func(f *Form) {
		f.publisher = publisher
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		f.logger = logger
	}
}

func WithFieldValidated(fn FieldValidatedFunc) Option {
	return func(f *Form) {
		f.onValidated = fn
	}
}

// WithID sets the form instance ID instead of generating one.
func WithID(formID id.FormID) Option {
	return func(f *Form) {
		f.id = formID
	}
}

// New builds a form over rules. Invalid configuration or rules are returned
// as domain errors.
func New(cfg Config, rules models.Rules, opts ...Option) (*Form, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f := &Form{
		id:          id.NewFormID(),
		cfg:         cfg,
		tracker:     interaction.New(),
		logger:      slog.New(slog.DiscardHandler),
		initial:     models.Record{},
		fieldErrors: map[string]string{},
		debouncers:  map[string]*debounce.Debouncer[fieldTask]{},
	}
	for _, opt := range opts {
		opt(f)
	}

	v, err := validation.New(rules,
		validation.WithConditional(f.conditional),
		validation.WithAllowEmptyDefaults(cfg.AllowEmptyDefaults),
	)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid form rules")
	}
	f.validator = v
	if f.gate == nil {
		f.gate = submission.NewGate(submission.WithLogger(f.logger))
	}
	f.record = f.initial.Clone()

	return f, nil
}

func (f *Form) ID() id.FormID {
	return f.id
}

// Set stores value, marks the field touched and schedules its validation
// after the configured delay.
func (f *Form) Set(ctx context.Context, field string, value any) error {
	f.mu.Lock()
	if f.disposed {
		f.mu.Unlock()
		return sentinel.ErrDisposed
	}
	f.record[field] = value
	task := fieldTask{field: field, epoch: f.epoch}
	d := f.debouncerLocked(field)
	f.mu.Unlock()

	f.tracker.Touch(ctx, field)
	d.Schedule(f.validateField, task, f.cfg.ValidationDelay)
	return nil
}

// Touch marks field as interacted with without changing its value.
func (f *Form) Touch(ctx context.Context, field string) error {
	f.mu.Lock()
	disposed := f.disposed
	f.mu.Unlock()
	if disposed {
		return sentinel.ErrDisposed
	}
	f.tracker.Touch(ctx, field)
	return nil
}

func (f *Form) Value(field string) (any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.record[field]
	return v, ok
}

// Values returns a copy of the current record.
func (f *Form) Values() models.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.record.Clone()
}

// FieldErrors returns a copy of the current per-field error messages.
func (f *Form) FieldErrors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.fieldErrors)
}

// IsDirty reports whether the record differs from its initial values.
func (f *Form) IsDirty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.record.Equal(f.initial)
}

func (f *Form) IsTouched() bool {
	return f.tracker.State() == interaction.StateTouched
}

func (f *Form) Interaction() interaction.Snapshot {
	return f.tracker.Snapshot()
}

// FlushValidation runs every pending debounced validation now.
func (f *Form) FlushValidation() {
	for _, d := range f.pendingDebouncers() {
		d.Flush()
	}
}

// ValidateNow validates the whole record immediately, dropping pending
// debounced validations, and replaces the field errors with the result.
func (f *Form) ValidateNow() models.ValidationResult {
	f.cancelPending()

	f.mu.Lock()
	defer f.mu.Unlock()
	res := f.validator.Validate(f.record)
	f.fieldErrors = maps.Clone(res.Errors)
	return res
}

// Submit asks the gate whether the record may be saved. When it may, the
// sanitized record is returned alongside the decision.
func (f *Form) Submit(ctx context.Context) (submission.Decision, models.Record, error) {
	f.cancelPending()

	f.mu.Lock()
	if f.disposed {
		f.mu.Unlock()
		return submission.Decision{}, nil, sentinel.ErrDisposed
	}
	record := f.record.Clone()
	f.mu.Unlock()

	ctx = f.scoped(ctx)
	decision := f.gate.Evaluate(ctx, submission.Input{
		Record:      record,
		Validator:   f.validator,
		Interaction: f.tracker,
		Timeout:     f.cfg.InteractionTimeout,
	})

	f.mu.Lock()
	switch decision.Reason {
	case submission.ReasonValidationFailed:
		f.fieldErrors = maps.Clone(decision.Errors)
	case submission.ReasonNone:
		f.fieldErrors = map[string]string{}
	}
	f.mu.Unlock()

	if !decision.IsReady() {
		return decision, nil, nil
	}
	return decision, record.Sanitized(), nil
}

// Reset restores the initial values and clears interaction state and errors.
func (f *Form) Reset(ctx context.Context) error {
	f.cancelPending()

	f.mu.Lock()
	if f.disposed {
		f.mu.Unlock()
		return sentinel.ErrDisposed
	}
	f.epoch++
	f.record = f.initial.Clone()
	f.fieldErrors = map[string]string{}
	f.mu.Unlock()

	f.tracker.Reset()
	f.emit(f.scoped(ctx), audit.EventFormReset)
	return nil
}

// Dispose cancels pending validations. Later mutations return
// sentinel.ErrDisposed and a second Dispose is a no-op.
func (f *Form) Dispose() {
	f.mu.Lock()
	if f.disposed {
		f.mu.Unlock()
		return
	}
	f.disposed = true
	f.epoch++
	f.mu.Unlock()

	f.cancelPending()
	f.emit(f.scoped(context.Background()), audit.EventFormDisposed)
}

func (f *Form) validateField(task fieldTask) {
	f.mu.Lock()
	if f.disposed || task.epoch != f.epoch {
		f.mu.Unlock()
		return
	}
	res := f.validator.ValidateField(f.record, task.field)
	if res.OK {
		delete(f.fieldErrors, task.field)
	} else {
		f.fieldErrors[task.field] = res.Message
	}
	f.mu.Unlock()

	if f.onValidated != nil {
		f.onValidated(task.field, res)
	}
}

func (f *Form) debouncerLocked(field string) *debounce.Debouncer[fieldTask] {
	d, ok := f.debouncers[field]
	if !ok {
		d = debounce.New[fieldTask]()
		f.debouncers[field] = d
	}
	return d
}

func (f *Form) pendingDebouncers() []*debounce.Debouncer[fieldTask] {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*debounce.Debouncer[fieldTask], 0, len(f.debouncers))
	for _, d := range f.debouncers {
		if d.Pending() {
			out = append(out, d)
		}
	}
	return out
}

func (f *Form) cancelPending() {
	for _, d := range f.pendingDebouncers() {
		d.Cancel()
	}
}

func (f *Form) scoped(ctx context.Context) context.Context {
	if requestcontext.FormID(ctx).IsNil() {
		ctx = requestcontext.WithFormID(ctx, f.id)
	}
	return ctx
}

func (f *Form) emit(ctx context.Context, event audit.AuditEvent) {
	f.logger.InfoContext(ctx, event.String(), "form_id", f.id.String())
	if f.publisher == nil {
		return
	}
	err := f.publisher.Emit(ctx, audit.Event{
		Category:      event.Category(),
		Timestamp:     requestcontext.Now(ctx),
		FormID:        f.id,
		ParticipantID: requestcontext.ParticipantID(ctx),
		Action:        event.String(),
		RequestID:     requestcontext.RequestID(ctx),
	})
	if err != nil {
		f.logger.WarnContext(ctx, "failed to emit audit event", "action", event, "error", err)
	}
}
