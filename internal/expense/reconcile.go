package expense

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/heitorcapra/contas-backend/internal/core/money"
)

// ReconciliationReport cross-checks that items, installments and expense
// totals agree within the money tolerance. It is a read-only diagnostic:
// a mismatch is reported to the user, never enforced as a write gate.
type ReconciliationReport struct {
	IsValid           bool            `json:"is_valid"`
	ItemsTotal        decimal.Decimal `json:"items_total"`
	InstallmentsTotal decimal.Decimal `json:"installments_total"`
	ExpenseTotal      decimal.Decimal `json:"expense_total"`
	Differences       []string        `json:"differences"`
}

// Reconcile compares the sum of active item totals and the sum of active
// installment amounts against the expense total, each within an absolute
// tolerance of 0.01 currency units.
func Reconcile(e *Expense) ReconciliationReport {
	itemsTotal := money.Zero()
	for _, it := range e.ActiveItems() {
		itemsTotal = money.Add(itemsTotal, it.Total)
	}

	installmentsTotal := money.Zero()
	for _, inst := range e.ActiveInstallments() {
		installmentsTotal = money.Add(installmentsTotal, inst.Amount)
	}

	report := ReconciliationReport{
		ItemsTotal:        itemsTotal,
		InstallmentsTotal: installmentsTotal,
		ExpenseTotal:      e.TotalNet,
		Differences:       []string{},
	}

	if !money.WithinTolerance(itemsTotal, e.TotalNet) {
		report.Differences = append(report.Differences,
			fmt.Sprintf("items total %s does not match expense total %s",
				money.Format(itemsTotal), money.Format(e.TotalNet)))
	}

	if !money.WithinTolerance(installmentsTotal, e.TotalNet) {
		report.Differences = append(report.Differences,
			fmt.Sprintf("installments total %s does not match expense total %s",
				money.Format(installmentsTotal), money.Format(e.TotalNet)))
	}

	report.IsValid = len(report.Differences) == 0
	return report
}
