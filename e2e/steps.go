package e2e

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"

	"formgate/e2e/steps/form"
	"formgate/e2e/steps/search"
	formpkg "formgate/internal/form"
	"formgate/internal/form/presets"
	"formgate/internal/submission"
	"formgate/internal/validation/models"
	"formgate/pkg/platform/audit/publisher"
	"formgate/pkg/platform/audit/store/memory"
	"formgate/pkg/testutil"
)

// TestContext carries one scenario's form, clock and outcomes.
type TestContext struct {
	ctx       context.Context
	now       time.Time
	form      *formpkg.Form
	publisher *publisher.Publisher

	decision  submission.Decision
	submitted models.Record
}

func NewTestContext() *TestContext {
	return &TestContext{}
}

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	form.RegisterSteps(ctx, tc)
	search.RegisterSteps(ctx)

	ctx.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		tc.close()
		return ctx, err
	})
}

func (tc *TestContext) NewForm(preset string) error {
	var (
		rules       models.Rules
		conditional models.ConditionalRuleSet
	)
	switch preset {
	case "common":
		rules = presets.CommonFields()
	case "socio":
		p := presets.SocioDemographic()
		rules, conditional = p.Rules, p.Conditional
	default:
		return fmt.Errorf("unknown preset %q", preset)
	}

	tc.close()
	tc.now = time.Date(2025, 5, 12, 9, 30, 0, 0, time.UTC)
	tc.publisher = publisher.NewPublisher(memory.NewInMemoryStore())
	ctx, formID := testutil.FormContext(tc.now)

	cfg := formpkg.DefaultConfig()
	cfg.ValidationDelay = 0
	f, err := formpkg.New(cfg, rules,
		formpkg.WithID(formID),
		formpkg.WithConditional(conditional),
		formpkg.WithAuditPublisher(tc.publisher),
		formpkg.WithGate(submission.NewGate(submission.WithAuditPublisher(tc.publisher))),
	)
	if err != nil {
		return err
	}
	tc.form = f
	tc.ctx = ctx
	return nil
}

func (tc *TestContext) Form() *formpkg.Form {
	return tc.form
}

func (tc *TestContext) Context() context.Context {
	return tc.ctx
}

func (tc *TestContext) Advance(d time.Duration) {
	tc.now = tc.now.Add(d)
	tc.ctx = testutil.At(tc.ctx, tc.now)
}

func (tc *TestContext) Submit() error {
	d, record, err := tc.form.Submit(tc.ctx)
	if err != nil {
		return err
	}
	tc.decision, tc.submitted = d, record
	return nil
}

func (tc *TestContext) Decision() submission.Decision {
	return tc.decision
}

func (tc *TestContext) Submitted() models.Record {
	return tc.submitted
}

func (tc *TestContext) AuditActions() ([]string, error) {
	events, err := tc.publisher.List(context.Background(), tc.form.ID())
	if err != nil {
		return nil, err
	}
	actions := make([]string, 0, len(events))
	for _, e := range events {
		actions = append(actions, e.Action)
	}
	return actions, nil
}

func (tc *TestContext) close() {
	if tc.form != nil {
		tc.form.Dispose()
		tc.form = nil
	}
	if tc.publisher != nil {
		tc.publisher.Close()
		tc.publisher = nil
	}
}
