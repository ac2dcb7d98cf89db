// Package profile holds the user-supplied financial inputs. The profile
// is the only user-editable entity in the core: it is saved wholesale on
// every edit, never patched field by field.
package profile

// CreditCard is one card the user holds, in the order the user entered it.
type CreditCard struct {
	Name  string  `json:"name"`
	Limit float64 `json:"limit"`
}

// EMI is one recurring loan installment.
type EMI struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// FixedExpenses are the recurring monthly outflows.
type FixedExpenses struct {
	Rent      float64 `json:"rent"`
	Utilities float64 `json:"utilities"`
	Insurance float64 `json:"insurance"`
}

// FinancialProfile is the user's stable financial picture.
type FinancialProfile struct {
	Salary        float64       `json:"salary"`
	Cards         []CreditCard  `json:"cards"`
	EMIs          []EMI         `json:"emis"`
	FixedExpenses FixedExpenses `json:"fixedExpenses"`
}

// Complete reports whether the profile can back an analysis request.
// Salary is the one mandatory input.
func (p *FinancialProfile) Complete() bool {
	return p != nil && p.Salary > 0
}

// TotalFixed sums the recurring fixed expenses.
func (p *FinancialProfile) TotalFixed() float64 {
	return p.FixedExpenses.Rent + p.FixedExpenses.Utilities + p.FixedExpenses.Insurance
}

// TotalEMI sums all loan installments.
func (p *FinancialProfile) TotalEMI() float64 {
	var total float64
	for _, e := range p.EMIs {
		total += e.Amount
	}
	return total
}

// Clone returns a deep copy so snapshots cannot alias live state.
func (p *FinancialProfile) Clone() *FinancialProfile {
	if p == nil {
		return nil
	}
	out := *p
	out.Cards = append([]CreditCard(nil), p.Cards...)
	out.EMIs = append([]EMI(nil), p.EMIs...)
	return &out
}
