package report

import (
	"strconv"
	"strings"

	"finsight/pkg/core/gateway"
	"finsight/pkg/core/jsonx"
)

// Normalize coerces an arbitrarily-shaped agent envelope into the
// canonical report. It returns nil only when the envelope signals
// failure or carries no payload; everything else yields a usable
// report, however malformed the payload. Missing or mistyped fields
// take their typed defaults rather than failing the whole response.
func Normalize(env *gateway.Envelope) *FinancialReport {
	if !env.HasResult() {
		return nil
	}

	raw := string(env.Response.Result)
	value, err := jsonx.Decode(raw)
	if err != nil {
		// Payload that survives no parsing strategy is still a reply.
		return conversational(strings.TrimSpace(raw))
	}

	value = unwrap(value)
	if value == nil {
		// A literal null result is "no payload", not an empty report.
		return nil
	}

	if m, ok := value.(map[string]interface{}); ok && hasStructuredKey(m) {
		return structured(m)
	}

	switch v := value.(type) {
	case string:
		return conversational(v)
	case map[string]interface{}:
		if text := asString(v["text"], ""); text != "" {
			return conversational(text)
		}
		if msg := asString(v["message"], ""); msg != "" {
			return conversational(msg)
		}
		return conversational(jsonx.Compact(v))
	default:
		return conversational(jsonx.Compact(value))
	}
}

// unwrap peels up to two levels of result/response wrappers. An
// orchestrating agent may forward a sub-agent's envelope verbatim, and
// the wrapped value is sometimes a JSON-encoded string rather than an
// object. Unwrapping stops as soon as a level exposes report fields.
func unwrap(value interface{}) interface{} {
	for i := 0; i < 2; i++ {
		m, ok := value.(map[string]interface{})
		if !ok || hasStructuredKey(m) {
			break
		}
		inner, ok := m["result"]
		if !ok {
			inner, ok = m["response"]
		}
		if !ok {
			break
		}
		if s, isStr := inner.(string); isStr {
			if decoded, err := jsonx.Decode(s); err == nil {
				if _, isMap := decoded.(map[string]interface{}); isMap {
					value = decoded
					continue
				}
			}
		}
		value = inner
	}
	return value
}

func hasStructuredKey(m map[string]interface{}) bool {
	_, a := m["income_summary"]
	_, b := m["credit_cards"]
	_, c := m["category_breakdown"]
	return a || b || c
}

func structured(m map[string]interface{}) *FinancialReport {
	r := emptyReport(Structured)
	r.ReportType = asString(m["report_type"], DefaultReportType)
	r.AnalysisPeriod = asString(m["analysis_period"], DefaultAnalysisPeriod)
	r.Advice = asString(m["advice"], "")
	r.SafeToSpend = asNumber(m["safe_to_spend"])

	if summary, ok := m["income_summary"].(map[string]interface{}); ok {
		r.IncomeSummary = &IncomeSummary{
			NetIncome:             asNumber(summary["net_income"]),
			TotalFixedExpenses:    asNumber(summary["total_fixed_expenses"]),
			TotalVariableExpenses: asNumber(summary["total_variable_expenses"]),
			TotalEMI:              asNumber(summary["total_emi"]),
			TotalOutflow:          asNumber(summary["total_outflow"]),
			Savings:               asNumber(summary["savings"]),
			SavingsRate:           asNumber(summary["savings_rate"]),
		}
	}

	for _, item := range asSlice(m["credit_cards"]) {
		card, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		r.CreditCards = append(r.CreditCards, CardStatus{
			CardName:           asString(card["card_name"], ""),
			Limit:              asNumber(card["limit"]),
			Spend:              asNumber(card["spend"]),
			UtilizationPercent: asNumber(card["utilization_percent"]),
		})
	}

	for _, item := range asSlice(m["category_breakdown"]) {
		row, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		r.CategoryBreakdown = append(r.CategoryBreakdown, CategorySpend{
			Category:         asString(row["category"], ""),
			Amount:           asNumber(row["amount"]),
			PercentOfTotal:   asNumber(row["percent_of_total"]),
			TransactionCount: asNumber(row["transaction_count"]),
		})
	}

	for _, item := range asSlice(m["risk_alerts"]) {
		alert, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		r.RiskAlerts = append(r.RiskAlerts, RiskAlert{
			AlertType: asString(alert["alert_type"], ""),
			Message:   asString(alert["message"], ""),
			Severity:  asString(alert["severity"], ""),
		})
	}

	return r
}

func conversational(text string) *FinancialReport {
	r := emptyReport(Conversational)
	r.FollowUpResponse = text
	return r
}

// asNumber coerces a decoded JSON value to float64. Numeric strings are
// accepted because agents routinely quote numbers; anything else is 0.
func asNumber(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	return 0
}

func asString(v interface{}, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

func asSlice(v interface{}) []interface{} {
	if s, ok := v.([]interface{}); ok {
		return s
	}
	return nil
}
