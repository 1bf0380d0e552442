package expense_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/heitorcapra/contas-backend/internal"
	"github.com/heitorcapra/contas-backend/internal/core/money"
	"github.com/heitorcapra/contas-backend/internal/expense"
)

func pixPayment(id int64, amount string) expense.Payment {
	return expense.Payment{
		ID:        id,
		AccountID: 1,
		PaidAt:    time.Now(),
		Amount:    money.MustFromString(amount),
		Method:    expense.MethodPix,
	}
}

var _ = Describe("Installment", func() {
	var inst *expense.Installment

	BeforeEach(func() {
		inst = &expense.Installment{
			ID:      1,
			Number:  1,
			DueDate: time.Now().AddDate(0, 1, 0),
			Amount:  money.MustFromString("150.00"),
			Status:  expense.InstallmentPending,
		}
	})

	Describe("ApplyPayment", func() {
		It("should move to PARTIAL below the full amount", func() {
			Expect(inst.ApplyPayment(pixPayment(1, "50.00"))).To(Succeed())

			Expect(inst.Status).To(Equal(expense.InstallmentPartial))
			Expect(money.Format(inst.PaidAmount())).To(Equal("50.00"))
			Expect(money.Format(inst.Remaining())).To(Equal("100.00"))
		})

		It("should move to PAID when payments cover the amount", func() {
			Expect(inst.ApplyPayment(pixPayment(1, "50.00"))).To(Succeed())
			Expect(inst.ApplyPayment(pixPayment(2, "100.00"))).To(Succeed())

			Expect(inst.Status).To(Equal(expense.InstallmentPaid))
			Expect(money.IsZero(inst.Remaining())).To(BeTrue())
		})

		It("should reject a payment above the remaining balance and leave state unchanged", func() {
			Expect(inst.ApplyPayment(pixPayment(1, "100.00"))).To(Succeed())

			err := inst.ApplyPayment(pixPayment(2, "50.01"))
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeAmountExceedsRemaining))

			Expect(inst.Status).To(Equal(expense.InstallmentPartial))
			Expect(money.Format(inst.PaidAmount())).To(Equal("100.00"))
			Expect(inst.Payments).To(HaveLen(1))
		})

		It("should accept a payment of exactly the remaining balance", func() {
			Expect(inst.ApplyPayment(pixPayment(1, "100.00"))).To(Succeed())
			Expect(inst.ApplyPayment(pixPayment(2, "50.00"))).To(Succeed())
			Expect(inst.Status).To(Equal(expense.InstallmentPaid))
		})

		It("should reject a non-positive amount", func() {
			err := inst.ApplyPayment(pixPayment(1, "0"))
			Expect(err).To(HaveOccurred())
			Expect(inst.Payments).To(BeEmpty())
			Expect(inst.Status).To(Equal(expense.InstallmentPending))
		})

		It("should reject an unknown payment method", func() {
			p := pixPayment(1, "50.00")
			p.Method = "WIRE"
			err := inst.ApplyPayment(p)
			Expect(err).To(HaveOccurred())
			Expect(inst.Payments).To(BeEmpty())
		})

		It("should reject any payment on a cancelled installment", func() {
			inst.Status = expense.InstallmentCancelled
			err := inst.ApplyPayment(pixPayment(1, "50.00"))
			Expect(err).To(Equal(apperrors.ErrInstallmentCancelled))
			Expect(inst.Payments).To(BeEmpty())
		})
	})

	Describe("RevertPayment", func() {
		It("should roll PAID back to PARTIAL", func() {
			Expect(inst.ApplyPayment(pixPayment(1, "100.00"))).To(Succeed())
			Expect(inst.ApplyPayment(pixPayment(2, "50.00"))).To(Succeed())
			Expect(inst.Status).To(Equal(expense.InstallmentPaid))

			reverted, err := inst.RevertPayment(2)
			Expect(err).ToNot(HaveOccurred())
			Expect(reverted.Active()).To(BeFalse())
			Expect(inst.Status).To(Equal(expense.InstallmentPartial))
			Expect(money.Format(inst.Remaining())).To(Equal("50.00"))
		})

		It("should roll back to PENDING when no active payments remain", func() {
			Expect(inst.ApplyPayment(pixPayment(1, "50.00"))).To(Succeed())

			_, err := inst.RevertPayment(1)
			Expect(err).ToNot(HaveOccurred())
			Expect(inst.Status).To(Equal(expense.InstallmentPending))
			Expect(inst.HasActivePayments()).To(BeFalse())
		})

		It("should keep the reverted payment on the ledger", func() {
			Expect(inst.ApplyPayment(pixPayment(1, "50.00"))).To(Succeed())
			_, err := inst.RevertPayment(1)
			Expect(err).ToNot(HaveOccurred())
			Expect(inst.Payments).To(HaveLen(1))
		})

		It("should free the reverted amount for a new payment", func() {
			Expect(inst.ApplyPayment(pixPayment(1, "150.00"))).To(Succeed())
			_, err := inst.RevertPayment(1)
			Expect(err).ToNot(HaveOccurred())

			Expect(inst.ApplyPayment(pixPayment(2, "150.00"))).To(Succeed())
			Expect(inst.Status).To(Equal(expense.InstallmentPaid))
		})

		It("should fail for an unknown or already reverted payment", func() {
			Expect(inst.ApplyPayment(pixPayment(1, "50.00"))).To(Succeed())
			_, err := inst.RevertPayment(1)
			Expect(err).ToNot(HaveOccurred())

			_, err = inst.RevertPayment(1)
			Expect(err).To(Equal(apperrors.ErrPaymentNotFound))
			_, err = inst.RevertPayment(99)
			Expect(err).To(Equal(apperrors.ErrPaymentNotFound))
		})
	})
})
