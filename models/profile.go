package models

// RiskPreference is the investor's attitude towards risk
type RiskPreference string

const (
	RiskAverse  RiskPreference = "averse"
	RiskNeutral RiskPreference = "neutral"
	RiskSeeking RiskPreference = "seeking"
)

// String returns the string representation of RiskPreference
func (r RiskPreference) String() string {
	return string(r)
}

// IsValid reports whether the value is one of the three recognized preferences
func (r RiskPreference) IsValid() bool {
	switch r {
	case RiskAverse, RiskNeutral, RiskSeeking:
		return true
	}
	return false
}

// MaritalStatus is the investor's marital status
type MaritalStatus string

const (
	MaritalMarried MaritalStatus = "married"
	MaritalSingle  MaritalStatus = "single"
)

// String returns the string representation of MaritalStatus
func (m MaritalStatus) String() string {
	return string(m)
}

// Default profile values used when the request omits a field
const (
	DefaultAssetSize             = 100000.0
	DefaultExpectedReturnPercent = 5.0
)

const (
	DefaultRiskPreference = RiskNeutral
	DefaultMaritalStatus  = MaritalMarried
)

// UserProfile holds the four investor attributes that drive a
// recommendation request. It is transient per-request input and
// is never persisted.
type UserProfile struct {
	RiskPreference        RiskPreference `json:"risk_preference"`
	AssetSize             float64        `json:"asset_size"`
	MaritalStatus         MaritalStatus  `json:"marital_status"`
	ExpectedReturnPercent float64        `json:"expected_return_percent"`
}

// DefaultProfile returns a profile filled with the form defaults
func DefaultProfile() UserProfile {
	return UserProfile{
		RiskPreference:        DefaultRiskPreference,
		AssetSize:             DefaultAssetSize,
		MaritalStatus:         DefaultMaritalStatus,
		ExpectedReturnPercent: DefaultExpectedReturnPercent,
	}
}
