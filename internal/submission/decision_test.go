package submission

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formgate/internal/interaction"
	"formgate/internal/validation"
	"formgate/internal/validation/models"
)

type staticFreshness bool

func (f staticFreshness) IsFresh(time.Time, time.Duration) bool { return bool(f) }

func newValidator(t *testing.T) *validation.Validator {
	t.Helper()
	v, err := validation.New(models.Rules{
		"name": models.MustRule(models.KindText, models.Required()),
		"age":  models.MustRule(models.KindAge, models.Required()),
	})
	require.NoError(t, err)
	return v
}

func TestEvaluate_RuleOrder(t *testing.T) {
	v := newValidator(t)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		record     models.Record
		fresh      bool
		wantStatus Status
		wantReason Reason
	}{
		{
			name:       "blank record is no data even when stale and invalid",
			record:     models.Record{"name": "  ", "age": ""},
			fresh:      false,
			wantStatus: StatusRejected,
			wantReason: ReasonNoData,
		},
		{
			name:       "empty list counts as no data",
			record:     models.Record{"tags": []string{}},
			fresh:      true,
			wantStatus: StatusRejected,
			wantReason: ReasonNoData,
		},
		{
			name:       "stale wins over invalid fields",
			record:     models.Record{"name": "Ada", "age": "500"},
			fresh:      false,
			wantStatus: StatusRejected,
			wantReason: ReasonStaleInteraction,
		},
		{
			name:       "fresh and invalid",
			record:     models.Record{"name": "Ada", "age": "500"},
			fresh:      true,
			wantStatus: StatusRejected,
			wantReason: ReasonValidationFailed,
		},
		{
			name:       "fresh and valid",
			record:     models.Record{"name": "Ada", "age": "36"},
			fresh:      true,
			wantStatus: StatusReady,
			wantReason: ReasonNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate(Input{
				Record:      tt.record,
				Validator:   v,
				Interaction: staticFreshness(tt.fresh),
				Now:         now,
			})
			assert.Equal(t, tt.wantStatus, d.Status)
			assert.Equal(t, tt.wantReason, d.Reason)
			assert.Equal(t, tt.wantStatus == StatusReady, d.IsReady())
		})
	}
}

func TestEvaluate_SurfacesEveryFieldError(t *testing.T) {
	v := newValidator(t)

	d := Evaluate(Input{
		Record:      models.Record{"name": "", "age": "0", "notes": "free text"},
		Validator:   v,
		Interaction: staticFreshness(true),
	})

	require.Equal(t, ReasonValidationFailed, d.Reason)
	assert.Equal(t, MsgValidationFailed, d.Message)
	assert.Equal(t, []string{"age", "name"}, d.FailedFields())
	assert.Equal(t, models.MsgRequired, d.Errors["name"])
	assert.Equal(t, models.ErrOutOfRange, d.Kinds["age"])
}

func TestEvaluate_NonValidationRejectionsCarryNoErrors(t *testing.T) {
	d := Evaluate(Input{Record: models.Record{}, Interaction: staticFreshness(true)})
	assert.Equal(t, MsgNoData, d.Message)
	assert.Empty(t, d.Errors)

	d = Evaluate(Input{Record: models.Record{"name": "x"}, Interaction: staticFreshness(false)})
	assert.Equal(t, MsgStaleInteraction, d.Message)
	assert.Empty(t, d.Errors)
}

func TestEvaluate_MissingInteractionIsStale(t *testing.T) {
	d := Evaluate(Input{Record: models.Record{"name": "Ada"}})
	assert.Equal(t, ReasonStaleInteraction, d.Reason)
}

func TestEvaluate_NilValidatorAcceptsAnyData(t *testing.T) {
	d := Evaluate(Input{Record: models.Record{"x": "y"}, Interaction: staticFreshness(true)})
	assert.True(t, d.IsReady())
}

func TestEvaluate_FreshnessWindow(t *testing.T) {
	touched := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	tracker := interaction.New()
	tracker.TouchAt("name", touched)
	record := models.Record{"name": "Ada"}

	t.Run("zero timeout uses default window", func(t *testing.T) {
		d := Evaluate(Input{Record: record, Interaction: tracker, Now: touched.Add(DefaultTimeout)})
		assert.True(t, d.IsReady())

		d = Evaluate(Input{Record: record, Interaction: tracker, Now: touched.Add(DefaultTimeout + time.Millisecond)})
		assert.Equal(t, ReasonStaleInteraction, d.Reason)
	})

	t.Run("custom timeout", func(t *testing.T) {
		in := Input{Record: record, Interaction: tracker, Timeout: time.Second}

		in.Now = touched.Add(time.Second)
		assert.True(t, Evaluate(in).IsReady())

		in.Now = touched.Add(2 * time.Second)
		assert.Equal(t, ReasonStaleInteraction, Evaluate(in).Reason)
	})

	t.Run("untouched tracker is never fresh", func(t *testing.T) {
		d := Evaluate(Input{Record: record, Interaction: interaction.New(), Now: touched})
		assert.Equal(t, ReasonStaleInteraction, d.Reason)
	})
}

func TestEvaluate_ReadyImpliesAllConditions(t *testing.T) {
	v := newValidator(t)
	records := []models.Record{
		{},
		{"name": ""},
		{"name": "Ada"},
		{"name": "Ada", "age": "abc"},
		{"name": "Ada", "age": "40"},
		{"age": "40", "extra": []string{"a"}},
	}

	for _, record := range records {
		for _, fresh := range []bool{true, false} {
			d := Evaluate(Input{Record: record, Validator: v, Interaction: staticFreshness(fresh)})
			if d.IsReady() {
				assert.True(t, record.HasAnyData())
				assert.True(t, fresh)
				assert.True(t, v.Validate(record).IsValid)
			}
		}
	}
}
