package expense_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/heitorcapra/contas-backend/internal/core/money"
	"github.com/heitorcapra/contas-backend/internal/expense"
)

func reconcilableExpense(itemTotal, installmentTotal, expenseTotal string) *expense.Expense {
	return &expense.Expense{
		ID:       1,
		Status:   expense.StatusOpen,
		TotalNet: money.MustFromString(expenseTotal),
		Items: []expense.ExpenseItem{
			{ID: 1, Name: "Item", Quantity: money.MustFromString("1"), UnitPrice: money.MustFromString(itemTotal), Total: money.MustFromString(itemTotal)},
		},
		Installments: []expense.Installment{
			{ID: 1, Number: 1, Amount: money.MustFromString(installmentTotal), Status: expense.InstallmentPending},
		},
	}
}

var _ = Describe("Reconcile", func() {
	It("should report a consistent expense as valid", func() {
		report := expense.Reconcile(reconcilableExpense("100.00", "100.00", "100.00"))

		Expect(report.IsValid).To(BeTrue())
		Expect(report.Differences).To(BeEmpty())
		Expect(money.Format(report.ItemsTotal)).To(Equal("100.00"))
		Expect(money.Format(report.InstallmentsTotal)).To(Equal("100.00"))
	})

	It("should report exactly one difference when only the installments disagree", func() {
		report := expense.Reconcile(reconcilableExpense("100.00", "90.00", "100.00"))

		Expect(report.IsValid).To(BeFalse())
		Expect(report.Differences).To(HaveLen(1))
		Expect(report.Differences[0]).To(ContainSubstring("installments total 90.00"))
	})

	It("should report both differences when items and installments disagree with the total", func() {
		report := expense.Reconcile(reconcilableExpense("80.00", "90.00", "100.00"))

		Expect(report.IsValid).To(BeFalse())
		Expect(report.Differences).To(HaveLen(2))
	})

	It("should tolerate rounding differences up to 0.01", func() {
		report := expense.Reconcile(reconcilableExpense("100.01", "99.99", "100.00"))

		Expect(report.IsValid).To(BeTrue())
	})

	It("should ignore soft-deleted items and installments", func() {
		exp := reconcilableExpense("100.00", "100.00", "100.00")
		deleted := time.Now()
		exp.Items = append(exp.Items, expense.ExpenseItem{ID: 2, Total: money.MustFromString("50.00"), DeletedAt: &deleted})
		exp.Installments = append(exp.Installments, expense.Installment{ID: 2, Amount: money.MustFromString("25.00"), DeletedAt: &deleted})

		report := expense.Reconcile(exp)
		Expect(report.IsValid).To(BeTrue())
	})
})
