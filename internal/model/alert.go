package model

import "time"

// Risk factor labels attached to alerts, in the fixed order the alert
// engine evaluates them. The order is part of the output contract.
const (
	// RiskPenaltyClause flags documents containing penalty wording.
	RiskPenaltyClause = "包含处罚条款"

	// RiskDeadline flags documents that set a time limit.
	RiskDeadline = "设定时间期限"

	// RiskUrgency flags documents with urgency signals.
	RiskUrgency = "存在紧急性指标"

	// RiskHighEnforcement flags documents in a binding enforcement tier.
	RiskHighEnforcement = "强制执行级别高"
)

// AlertRecord is the read-only projection of an AnnotatedRecord handed to
// the external notification dispatcher. It is created transiently per alert
// run and never persisted by the core.
type AlertRecord struct {
	// Title is the document title.
	Title string `json:"title"`

	// URL is the document location.
	URL string `json:"url"`

	// Department is the controlled-vocabulary department name.
	Department string `json:"department"`

	// PublicationDate is the validated publication date.
	PublicationDate time.Time `json:"publication_date"`

	// RegulatoryScore is the strictness score that triggered the alert.
	// Alerts are ranked by this score, descending.
	RegulatoryScore float64 `json:"regulatory_score"`

	// AffectedDomains lists the matched topic categories.
	AffectedDomains []string `json:"affected_domains"`

	// RiskFactors explains why the record was flagged, in evaluation order.
	RiskFactors []string `json:"risk_factors"`
}
