package model

// EnforcementLevel classifies the legal force of a policy document.
// Levels are ordered from strongest to weakest; the zero value is the
// strongest tier so declaration order doubles as classification priority.
type EnforcementLevel int

const (
	// EnforcementLaw covers statutes and regulations (法律法规).
	EnforcementLaw EnforcementLevel = iota

	// EnforcementAdministrativeRule covers administrative rules and
	// implementation measures (行政规章).
	EnforcementAdministrativeRule

	// EnforcementIndustryStandard covers standards and technical
	// guidelines (行业标准).
	EnforcementIndustryStandard

	// EnforcementGuidance covers non-binding guidance documents (指导性文件).
	// This is the default when no enforcement keyword matches.
	EnforcementGuidance
)

// String returns the Chinese label used in reports and stored artifacts.
func (l EnforcementLevel) String() string {
	switch l {
	case EnforcementLaw:
		return "法律法规"
	case EnforcementAdministrativeRule:
		return "行政规章"
	case EnforcementIndustryStandard:
		return "行业标准"
	case EnforcementGuidance:
		return "指导性文件"
	default:
		return "指导性文件"
	}
}

// IsBinding reports whether the level is one of the two strictest tiers.
// Alerting treats binding levels as a standalone risk factor.
func (l EnforcementLevel) IsBinding() bool {
	return l == EnforcementLaw || l == EnforcementAdministrativeRule
}

// ParseEnforcementLevel maps a stored label back to its level.
// Unknown labels map to EnforcementGuidance, mirroring the classifier's
// default for unclassifiable documents.
func ParseEnforcementLevel(s string) EnforcementLevel {
	switch s {
	case "法律法规":
		return EnforcementLaw
	case "行政规章":
		return EnforcementAdministrativeRule
	case "行业标准":
		return EnforcementIndustryStandard
	default:
		return EnforcementGuidance
	}
}

// MarshalJSON encodes the level as its Chinese label.
func (l EnforcementLevel) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

// UnmarshalJSON decodes a Chinese label into its level.
func (l *EnforcementLevel) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	*l = ParseEnforcementLevel(s)
	return nil
}
