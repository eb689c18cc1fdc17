package form

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/cucumber/godog"

	formpkg "formgate/internal/form"
	"formgate/internal/submission"
	"formgate/internal/validation/models"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	NewForm(preset string) error
	Form() *formpkg.Form
	Context() context.Context
	Advance(d time.Duration)
	Submit() error
	Decision() submission.Decision
	Submitted() models.Record
	AuditActions() ([]string, error)
}

// RegisterSteps registers form and submission step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &formSteps{tc: tc}

	// Form editing steps
	ctx.Step(`^a new "([^"]*)" form$`, tc.NewForm)
	ctx.Step(`^I set "([^"]*)" to "([^"]*)"$`, steps.setField)
	ctx.Step(`^I select "([^"]*)" for "([^"]*)"$`, steps.selectOptions)
	ctx.Step(`^I fill the form with:$`, steps.fillForm)
	ctx.Step(`^(\d+) minutes pass$`, steps.minutesPass)
	ctx.Step(`^I submit the form$`, tc.Submit)
	ctx.Step(`^I reset the form$`, steps.resetForm)

	// Decision assertion steps
	ctx.Step(`^the submission is ready$`, steps.submissionIsReady)
	ctx.Step(`^the submission is rejected with reason "([^"]*)"$`, steps.submissionRejectedWith)
	ctx.Step(`^field "([^"]*)" has error "([^"]*)"$`, steps.fieldHasError)
	ctx.Step(`^field "([^"]*)" has no error$`, steps.fieldHasNoError)
	ctx.Step(`^the saved record has "([^"]*)" equal to "([^"]*)"$`, steps.savedRecordHas)
	ctx.Step(`^the audit trail records "([^"]*)"$`, steps.auditTrailRecords)
}

type formSteps struct {
	tc TestContext
}

func (s *formSteps) setField(field, value string) error {
	return s.tc.Form().Set(s.tc.Context(), field, value)
}

func (s *formSteps) selectOptions(options, field string) error {
	return s.tc.Form().Set(s.tc.Context(), field, strings.Split(options, ","))
}

func (s *formSteps) fillForm(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		if len(row.Cells) != 2 {
			return fmt.Errorf("row %d: expected field and value", i)
		}
		if err := s.setField(row.Cells[0].Value, row.Cells[1].Value); err != nil {
			return err
		}
	}
	return nil
}

func (s *formSteps) minutesPass(minutes int) error {
	s.tc.Advance(time.Duration(minutes) * time.Minute)
	return nil
}

func (s *formSteps) resetForm() error {
	return s.tc.Form().Reset(s.tc.Context())
}

func (s *formSteps) submissionIsReady() error {
	d := s.tc.Decision()
	if !d.IsReady() {
		return fmt.Errorf("expected ready, got %s (%s): %v", d.Status, d.Reason, d.Errors)
	}
	return nil
}

func (s *formSteps) submissionRejectedWith(reason string) error {
	d := s.tc.Decision()
	if d.Status != submission.StatusRejected || string(d.Reason) != reason {
		return fmt.Errorf("expected rejection %q, got %s (%s)", reason, d.Status, d.Reason)
	}
	return nil
}

func (s *formSteps) fieldHasError(field, message string) error {
	got, ok := s.tc.Decision().Errors[field]
	if !ok {
		return fmt.Errorf("expected error on %q, got errors %v", field, s.tc.Decision().Errors)
	}
	if got != message {
		return fmt.Errorf("field %q: expected %q, got %q", field, message, got)
	}
	return nil
}

func (s *formSteps) fieldHasNoError(field string) error {
	if msg, ok := s.tc.Decision().Errors[field]; ok {
		return fmt.Errorf("expected no error on %q, got %q", field, msg)
	}
	return nil
}

func (s *formSteps) savedRecordHas(field, value string) error {
	record := s.tc.Submitted()
	if record == nil {
		return fmt.Errorf("no record was saved")
	}
	if got := models.StringValue(record[field]); got != value {
		return fmt.Errorf("saved %q: expected %q, got %q", field, value, got)
	}
	return nil
}

func (s *formSteps) auditTrailRecords(action string) error {
	actions, err := s.tc.AuditActions()
	if err != nil {
		return err
	}
	if !slices.Contains(actions, action) {
		return fmt.Errorf("audit trail %v does not contain %q", actions, action)
	}
	return nil
}
