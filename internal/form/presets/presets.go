// Package presets provides ready-made rule tables for common clinical-trial
// capture forms. Every function returns fresh maps, so callers may modify
// what they get without affecting other forms.
package presets

import (
	"strconv"

	"formgate/internal/validation"
	"formgate/internal/validation/models"
)

// Field names shared by the presets.
const (
	FieldAge               = "age"
	FieldPhone             = "phone"
	FieldEmail             = "email"
	FieldDateOfBirth       = "dateOfBirth"
	FieldWeight            = "weight"
	FieldHeight            = "height"
	FieldIncome            = "monthlyIncome"
	FieldGender            = "gender"
	FieldMaritalStatus     = "maritalStatus"
	FieldSpouseOccupation  = "spouseOccupation"
	FieldEducation         = "educationLevel"
	FieldOccupation        = "occupation"
	FieldOccupationOther   = "occupationOther"
	FieldPracticesReligion = "practicesReligion"
	FieldReligion          = "religion"
	FieldHouseholdSize     = "householdSize"
	FieldChildren          = "numberOfChildren"
)

const (
	OccupationOther   = "Other"
	ReligionPracticed = "Yes"
)

// PartneredStatuses are the marital statuses that ask about a partner.
var PartneredStatuses = []string{"Married", "Cohabiting"}

// Preset bundles base rules with the conditional rules that refine them.
type Preset struct {
	Rules       models.Rules
	Conditional models.ConditionalRuleSet
}

// CommonFields returns optional rules for fields that appear on most forms.
func CommonFields() models.Rules {
	return models.Rules{
		FieldAge:         models.MustRule(models.KindAge),
		FieldPhone:       models.MustRule(models.KindPhone),
		FieldEmail:       models.MustRule(models.KindEmail),
		FieldDateOfBirth: models.MustRule(models.KindDate),
		FieldWeight: models.MustRule(models.KindDecimal,
			models.Range(1, 500),
			models.Message("Weight must be between 1 and 500 kg")),
		FieldHeight: models.MustRule(models.KindDecimal,
			models.Range(30, 300),
			models.Message("Height must be between 30 and 300 cm")),
		FieldIncome: models.MustRule(models.KindCurrency, models.Min(0)),
	}
}

// SocioDemographic returns the socio-demographic questionnaire.
//
// A religion is required when the participant practices one, a description
// is required when the occupation is "Other", and the partner's occupation is
// required for partnered statuses.
func SocioDemographic() Preset {
	common := CommonFields()
	rules := models.Rules{
		FieldAge:               models.MustRule(models.KindAge, models.Required()),
		FieldGender:            models.MustRule(models.KindText, models.Required()),
		FieldMaritalStatus:     models.MustRule(models.KindText, models.Required()),
		FieldEducation:         models.MustRule(models.KindText, models.Required()),
		FieldOccupation:        models.MustRule(models.KindText, models.Required()),
		FieldPracticesReligion: models.MustRule(models.KindText, models.Required()),
		FieldReligion:          models.MustRule(models.KindText, models.MaxLength(100)),
		FieldOccupationOther:   models.MustRule(models.KindText, models.MaxLength(100)),
		FieldSpouseOccupation:  models.MustRule(models.KindText, models.MaxLength(100)),
		FieldIncome:            common[FieldIncome],
		FieldHouseholdSize:     models.MustRule(models.KindInteger, models.Range(1, 30)),
		FieldChildren: models.MustRule(models.KindInteger,
			models.Range(0, 20),
			models.Custom(childrenFitHousehold)),
	}

	conditional := validation.Compose(
		validation.When(FieldPracticesReligion, ReligionPracticed, models.Rules{
			FieldReligion: models.MustRule(models.KindText,
				models.Required(),
				models.MaxLength(100),
				models.Message("Please specify your religion")),
		}),
		validation.When(FieldOccupation, OccupationOther, models.Rules{
			FieldOccupationOther: models.MustRule(models.KindText,
				models.Required(),
				models.MinLength(2),
				models.MaxLength(100),
				models.Message("Please describe your occupation")),
		}),
		validation.WhenAny(FieldMaritalStatus, PartneredStatuses, models.Rules{
			FieldSpouseOccupation: models.MustRule(models.KindText,
				models.Required(),
				models.MaxLength(100)),
		}),
	)

	return Preset{Rules: rules, Conditional: conditional}
}

func childrenFitHousehold(value any, record models.Record) string {
	children, err := strconv.Atoi(models.StringValue(value))
	if err != nil {
		return ""
	}
	household, err := strconv.Atoi(models.StringValue(record[FieldHouseholdSize]))
	if err != nil {
		return ""
	}
	if children >= household {
		return "Number of children must be less than the household size"
	}
	return ""
}
