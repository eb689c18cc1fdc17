package presets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formgate/internal/validation"
	"formgate/internal/validation/models"
)

func validRecord() models.Record {
	return models.Record{
		FieldAge:               "34",
		FieldGender:            "Female",
		FieldMaritalStatus:     "Single",
		FieldEducation:         "Secondary",
		FieldOccupation:        "Nurse",
		FieldPracticesReligion: "No",
		FieldHouseholdSize:     "3",
		FieldChildren:          "1",
	}
}

func TestCommonFields_AreConsistent(t *testing.T) {
	require.NoError(t, CommonFields().Validate())
	require.NoError(t, SocioDemographic().Rules.Validate())
}

func TestCommonFields_FreshMapPerCall(t *testing.T) {
	a := CommonFields()
	delete(a, FieldAge)
	a[FieldEmail] = models.MustRule(models.KindText)

	b := CommonFields()
	assert.Contains(t, b, FieldAge)
	assert.Equal(t, models.KindEmail, b[FieldEmail].Kind)
}

func TestCommonFields_Bounds(t *testing.T) {
	rules := CommonFields()

	res := validation.Validate(models.Record{FieldWeight: "0.5", FieldHeight: "180"}, rules, nil)
	assert.Equal(t, "Weight must be between 1 and 500 kg", res.Errors[FieldWeight])
	assert.NotContains(t, res.Errors, FieldHeight)

	res = validation.Validate(models.Record{}, rules, nil)
	assert.True(t, res.IsValid, "all common fields are optional")
}

func TestSocioDemographic(t *testing.T) {
	preset := SocioDemographic()
	validate := func(r models.Record) models.ValidationResult {
		return validation.Validate(r, preset.Rules, preset.Conditional)
	}

	t.Run("complete record is valid", func(t *testing.T) {
		assert.True(t, validate(validRecord()).IsValid)
	})

	t.Run("religion required only when practiced", func(t *testing.T) {
		r := validRecord()
		r[FieldPracticesReligion] = ReligionPracticed
		res := validate(r)
		assert.Equal(t, "Please specify your religion", res.Errors[FieldReligion])
		assert.Equal(t, models.ErrRequired, res.Kinds[FieldReligion])

		r[FieldReligion] = "Buddhism"
		assert.True(t, validate(r).IsValid)
	})

	t.Run("occupation other needs a description", func(t *testing.T) {
		r := validRecord()
		r[FieldOccupation] = OccupationOther
		assert.Contains(t, validate(r).Errors, FieldOccupationOther)

		r[FieldOccupationOther] = "Beekeeper"
		assert.True(t, validate(r).IsValid)
	})

	t.Run("partnered status needs spouse occupation", func(t *testing.T) {
		for _, status := range PartneredStatuses {
			r := validRecord()
			r[FieldMaritalStatus] = status
			assert.Contains(t, validate(r).Errors, FieldSpouseOccupation, status)
		}
	})

	t.Run("children must fit household", func(t *testing.T) {
		r := validRecord()
		r[FieldChildren] = "3"
		res := validate(r)
		assert.Equal(t, models.ErrCustomRejected, res.Kinds[FieldChildren])
	})

	t.Run("missing required fields are all reported", func(t *testing.T) {
		res := validate(models.Record{})
		assert.ElementsMatch(t, []string{
			FieldAge, FieldGender, FieldMaritalStatus, FieldEducation,
			FieldOccupation, FieldPracticesReligion,
		}, res.Fields())
	})
}

func TestSocioDemographic_FreshPerCall(t *testing.T) {
	a := SocioDemographic()
	a.Rules[FieldGender] = models.MustRule(models.KindText)

	b := SocioDemographic()
	assert.True(t, b.Rules[FieldGender].Required)
}
