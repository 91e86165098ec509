package recommender

import (
	"errors"
	"fmt"

	"stock_advisor_backend/models"

	"github.com/shopspring/decimal"
)

// ErrInvalidRiskPreference is returned when the profile carries a risk
// preference outside the three recognized values.
var ErrInvalidRiskPreference = errors.New("invalid risk preference: must be averse, neutral or seeking")

// ConditionOperator represents comparison operators for filter conditions
type ConditionOperator string

const (
	OperatorGreaterThan      ConditionOperator = "gt"      // >
	OperatorGreaterThanEqual ConditionOperator = "gte"     // >=
	OperatorLessThan         ConditionOperator = "lt"      // <
	OperatorLessThanEqual    ConditionOperator = "lte"     // <=
	OperatorBetween          ConditionOperator = "between" // between min and max, inclusive
)

// String returns the string representation of ConditionOperator
func (c ConditionOperator) String() string {
	return string(c)
}

// IndicatorField identifies which indicator column a condition reads
type IndicatorField string

const (
	FieldK   IndicatorField = "K"
	FieldD   IndicatorField = "D"
	FieldJ   IndicatorField = "J"
	FieldRSI IndicatorField = "RSI"
)

// String returns the string representation of IndicatorField
func (f IndicatorField) String() string {
	return string(f)
}

// Condition is a single threshold rule against one indicator field.
// Value2 is only used with the between operator.
type Condition struct {
	Field    IndicatorField    `json:"field"`
	Operator ConditionOperator `json:"operator"`
	Value    decimal.Decimal   `json:"value"`
	Value2   decimal.Decimal   `json:"value2,omitempty"`
}

// indicatorValue reads the condition's field from a record
func indicatorValue(rec models.StockRecord, field IndicatorField) float64 {
	switch field {
	case FieldK:
		return rec.K
	case FieldD:
		return rec.D
	case FieldJ:
		return rec.J
	case FieldRSI:
		return rec.RSI
	default:
		return 0
	}
}

// Matches evaluates the condition against a single record
func (c Condition) Matches(rec models.StockRecord) bool {
	actual := indicatorValue(rec, c.Field)
	target := c.Value.InexactFloat64()

	switch c.Operator {
	case OperatorGreaterThan:
		return actual > target
	case OperatorGreaterThanEqual:
		return actual >= target
	case OperatorLessThan:
		return actual < target
	case OperatorLessThanEqual:
		return actual <= target
	case OperatorBetween:
		return actual >= target && actual <= c.Value2.InexactFloat64()
	}
	return false
}

// Stage is one sequential filtering pass over the candidate set. All
// conditions must hold for a record to survive; a stage with no
// conditions passes every record through unchanged.
type Stage struct {
	Name       string      `json:"name"`
	Conditions []Condition `json:"conditions"`
}

// Matches reports whether a record survives the stage
func (s Stage) Matches(rec models.StockRecord) bool {
	for _, cond := range s.Conditions {
		if !cond.Matches(rec) {
			return false
		}
	}
	return true
}

// Apply filters the candidate set into a freshly allocated slice
func (s Stage) Apply(records []models.StockRecord) []models.StockRecord {
	survivors := make([]models.StockRecord, 0, len(records))
	for _, rec := range records {
		if s.Matches(rec) {
			survivors = append(survivors, rec)
		}
	}
	return survivors
}

func cond(field IndicatorField, op ConditionOperator, value float64) Condition {
	return Condition{
		Field:    field,
		Operator: op,
		Value:    decimal.NewFromFloat(value),
	}
}

func between(field IndicatorField, low, high float64) Condition {
	return Condition{
		Field:    field,
		Operator: OperatorBetween,
		Value:    decimal.NewFromFloat(low),
		Value2:   decimal.NewFromFloat(high),
	}
}

// riskPreferenceStage builds the first filter pass, which reads all four
// indicators. Averse wants everything cold, seeking wants everything hot,
// neutral keeps the middle band inclusive on both ends.
func riskPreferenceStage(pref models.RiskPreference) (Stage, error) {
	stage := Stage{Name: "risk_preference"}

	switch pref {
	case models.RiskAverse:
		stage.Conditions = []Condition{
			cond(FieldK, OperatorLessThan, 30),
			cond(FieldD, OperatorLessThan, 30),
			cond(FieldJ, OperatorLessThan, 30),
			cond(FieldRSI, OperatorLessThan, 50),
		}
	case models.RiskNeutral:
		stage.Conditions = []Condition{
			between(FieldK, 30, 70),
			between(FieldD, 30, 70),
			between(FieldJ, 30, 70),
			between(FieldRSI, 30, 70),
		}
	case models.RiskSeeking:
		stage.Conditions = []Condition{
			cond(FieldK, OperatorGreaterThan, 70),
			cond(FieldD, OperatorGreaterThan, 70),
			cond(FieldJ, OperatorGreaterThan, 70),
			cond(FieldRSI, OperatorGreaterThan, 50),
		}
	default:
		return Stage{}, fmt.Errorf("%w, got %q", ErrInvalidRiskPreference, pref.String())
	}

	return stage, nil
}

// Asset size brackets in currency units
const (
	smallAssetLimit = 100000.0
	largeAssetLimit = 1000000.0
)

// assetSizeStage maps the investor's asset bracket to an RSI rule.
// Negative and zero sizes fall through into the smallest bracket.
func assetSizeStage(assetSize float64) Stage {
	stage := Stage{Name: "asset_size"}

	switch {
	case assetSize < smallAssetLimit:
		stage.Conditions = []Condition{cond(FieldRSI, OperatorLessThan, 30)}
	case assetSize < largeAssetLimit:
		stage.Conditions = []Condition{between(FieldRSI, 30, 70)}
	default:
		stage.Conditions = []Condition{cond(FieldRSI, OperatorGreaterThan, 70)}
	}

	return stage
}

// maritalStatusStage keeps married investors below RSI 50 and single
// investors at or above it. Any other status passes through unfiltered.
func maritalStatusStage(status models.MaritalStatus) Stage {
	stage := Stage{Name: "marital_status"}

	switch status {
	case models.MaritalMarried:
		stage.Conditions = []Condition{cond(FieldRSI, OperatorLessThan, 50)}
	case models.MaritalSingle:
		stage.Conditions = []Condition{cond(FieldRSI, OperatorGreaterThanEqual, 50)}
	}

	return stage
}

// Expected annual return brackets in percent
const (
	lowReturnLimit  = 5.0
	highReturnLimit = 10.0
)

// expectedReturnStage maps the target annual return to an RSI rule
func expectedReturnStage(returnPercent float64) Stage {
	stage := Stage{Name: "expected_return"}

	switch {
	case returnPercent < lowReturnLimit:
		stage.Conditions = []Condition{cond(FieldRSI, OperatorLessThan, 30)}
	case returnPercent < highReturnLimit:
		stage.Conditions = []Condition{between(FieldRSI, 30, 70)}
	default:
		stage.Conditions = []Condition{cond(FieldRSI, OperatorGreaterThan, 70)}
	}

	return stage
}

// BuildStages materializes the ordered filter cascade for a profile.
// Only the first stage reads K, D and J; the later stages constrain RSI
// alone.
func BuildStages(profile models.UserProfile) ([]Stage, error) {
	riskStage, err := riskPreferenceStage(profile.RiskPreference)
	if err != nil {
		return nil, err
	}

	return []Stage{
		riskStage,
		assetSizeStage(profile.AssetSize),
		maritalStatusStage(profile.MaritalStatus),
		expectedReturnStage(profile.ExpectedReturnPercent),
	}, nil
}
