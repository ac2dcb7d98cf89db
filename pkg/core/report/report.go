// Package report defines the canonical FinancialReport and the
// normalizer that produces it from raw agent output. The report is the
// one shape every downstream component understands; it is immutable
// once produced and replaced whole, never mutated in place.
package report

// Kind is the explicit discriminator between the two interpretations a
// normalized payload can take. Exactly one applies to any report.
type Kind string

const (
	// Structured reports carry machine-readable analysis fields.
	Structured Kind = "structured"
	// Conversational reports carry only a human-readable reply.
	Conversational Kind = "conversational"
)

// IncomeSummary is the monthly cash-flow picture of a structured report.
type IncomeSummary struct {
	NetIncome             float64 `json:"net_income"`
	TotalFixedExpenses    float64 `json:"total_fixed_expenses"`
	TotalVariableExpenses float64 `json:"total_variable_expenses"`
	TotalEMI              float64 `json:"total_emi"`
	TotalOutflow          float64 `json:"total_outflow"`
	Savings               float64 `json:"savings"`
	SavingsRate           float64 `json:"savings_rate"`
}

// CardStatus is the reported utilization of one credit card.
type CardStatus struct {
	CardName           string  `json:"card_name"`
	Limit              float64 `json:"limit"`
	Spend              float64 `json:"spend"`
	UtilizationPercent float64 `json:"utilization_percent"`
}

// CategorySpend is one row of the spending breakdown.
type CategorySpend struct {
	Category         string  `json:"category"`
	Amount           float64 `json:"amount"`
	PercentOfTotal   float64 `json:"percent_of_total"`
	TransactionCount float64 `json:"transaction_count"`
}

// RiskAlert is one warning raised by the agent.
type RiskAlert struct {
	AlertType string `json:"alert_type"`
	Message   string `json:"message"`
	Severity  string `json:"severity"`
}

// FinancialReport is the canonical model produced by Normalize.
type FinancialReport struct {
	Kind              Kind            `json:"kind"`
	ReportType        string          `json:"report_type"`
	IncomeSummary     *IncomeSummary  `json:"income_summary"`
	CreditCards       []CardStatus    `json:"credit_cards"`
	CategoryBreakdown []CategorySpend `json:"category_breakdown"`
	RiskAlerts        []RiskAlert     `json:"risk_alerts"`
	SafeToSpend       float64         `json:"safe_to_spend"`
	AnalysisPeriod    string          `json:"analysis_period"`
	Advice            string          `json:"advice"`
	FollowUpResponse  string          `json:"follow_up_response"`
}

// Placeholders used when a structured payload omits its string fields.
const (
	DefaultReportType     = "Monthly Analysis"
	DefaultAnalysisPeriod = "Current Month"
)

func emptyReport(kind Kind) *FinancialReport {
	return &FinancialReport{
		Kind:              kind,
		ReportType:        DefaultReportType,
		CreditCards:       []CardStatus{},
		CategoryBreakdown: []CategorySpend{},
		RiskAlerts:        []RiskAlert{},
		AnalysisPeriod:    DefaultAnalysisPeriod,
	}
}
