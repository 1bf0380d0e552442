package expense

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/heitorcapra/contas-backend/internal"
	"github.com/heitorcapra/contas-backend/internal/core/money"
)

type InstallmentStatus string

const (
	InstallmentPending   InstallmentStatus = "PENDING"
	InstallmentPartial   InstallmentStatus = "PARTIAL"
	InstallmentPaid      InstallmentStatus = "PAID"
	InstallmentCancelled InstallmentStatus = "CANCELLED"
)

type PaymentMethod string

const (
	MethodPix           PaymentMethod = "PIX"
	MethodTed           PaymentMethod = "TED"
	MethodDoc           PaymentMethod = "DOC"
	MethodBoleto        PaymentMethod = "BOLETO"
	MethodCartaoCredito PaymentMethod = "CARTAO_CREDITO"
	MethodCartaoDebito  PaymentMethod = "CARTAO_DEBITO"
	MethodDinheiro      PaymentMethod = "DINHEIRO"
	MethodCheque        PaymentMethod = "CHEQUE"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodPix, MethodTed, MethodDoc, MethodBoleto,
		MethodCartaoCredito, MethodCartaoDebito, MethodDinheiro, MethodCheque:
		return true
	}
	return false
}

// Payment is a recorded transfer applied against an installment's balance.
// Reverted payments stay on the ledger with a deletion timestamp.
type Payment struct {
	ID            int64           `json:"id"`
	InstallmentID int64           `json:"installment_id"`
	AccountID     int64           `json:"account_id"`
	PaidAt        time.Time       `json:"paid_at"`
	Amount        decimal.Decimal `json:"amount"`
	Method        PaymentMethod   `json:"method"`
	Note          *string         `json:"note,omitempty"`
	DeletedAt     *time.Time      `json:"-"`
}

func (p *Payment) Active() bool {
	return p.DeletedAt == nil
}

// Installment is one scheduled partial payment of an expense's total.
// Its status is derived from the sum of its active payments versus its
// amount, never set directly by callers.
type Installment struct {
	ID        int64             `json:"id"`
	ExpenseID int64             `json:"expense_id"`
	Number    int               `json:"number"`
	DueDate   time.Time         `json:"due_date"`
	Amount    decimal.Decimal   `json:"amount"`
	Status    InstallmentStatus `json:"status"`
	Payments  []Payment         `json:"payments"`
	DeletedAt *time.Time        `json:"-"`
}

func (i *Installment) Active() bool {
	return i.DeletedAt == nil
}

// PaidAmount is the sum of the installment's active payments.
func (i *Installment) PaidAmount() decimal.Decimal {
	paid := money.Zero()
	for _, p := range i.Payments {
		if p.Active() {
			paid = money.Add(paid, p.Amount)
		}
	}
	return paid
}

// Remaining is the outstanding balance still owed on this installment.
func (i *Installment) Remaining() decimal.Decimal {
	return money.Sub(i.Amount, i.PaidAmount())
}

func (i *Installment) HasActivePayments() bool {
	for _, p := range i.Payments {
		if p.Active() {
			return true
		}
	}
	return false
}

// ApplyPayment appends a payment to the ledger and re-derives the status.
// The payment must be positive, must not exceed the remaining balance, and
// cancelled installments accept no payments at all. On rejection the
// installment is left untouched.
func (i *Installment) ApplyPayment(payment Payment) error {
	if i.Status == InstallmentCancelled {
		return apperrors.ErrInstallmentCancelled
	}
	if !payment.Method.Valid() {
		return apperrors.NewValidationFieldError("method", fmt.Sprintf("unknown payment method %q", payment.Method), apperrors.ErrCodeValidationFailed)
	}
	if !money.IsPositive(payment.Amount) {
		return apperrors.NewValidationFieldError("amount", "payment amount must be greater than zero", apperrors.ErrCodeInvalidAmount)
	}

	remaining := i.Remaining()
	if money.Compare(payment.Amount, remaining) > 0 {
		return apperrors.NewAmountExceedsRemainingError(
			fmt.Sprintf("payment of %s exceeds remaining balance of %s", money.Format(payment.Amount), money.Format(remaining)))
	}

	payment.InstallmentID = i.ID
	i.Payments = append(i.Payments, payment)

	if money.Compare(i.PaidAmount(), i.Amount) >= 0 {
		i.Status = InstallmentPaid
	} else {
		i.Status = InstallmentPartial
	}
	return nil
}

// RevertPayment soft-deletes a payment and re-derives the status from the
// remaining active payments.
func (i *Installment) RevertPayment(paymentID int64) (*Payment, error) {
	var reverted *Payment
	for idx := range i.Payments {
		if i.Payments[idx].ID == paymentID && i.Payments[idx].Active() {
			now := time.Now()
			i.Payments[idx].DeletedAt = &now
			reverted = &i.Payments[idx]
			break
		}
	}
	if reverted == nil {
		return nil, apperrors.ErrPaymentNotFound
	}

	paid := i.PaidAmount()
	switch {
	case money.Compare(paid, i.Amount) >= 0:
		i.Status = InstallmentPaid
	case money.IsPositive(paid):
		i.Status = InstallmentPartial
	default:
		i.Status = InstallmentPending
	}
	return reverted, nil
}
