package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeExpenseStatusChanged = "expense.status_changed"
	EventTypePaymentApplied       = "payment.applied"
	EventTypePaymentReverted      = "payment.reverted"
)

type ExpenseStatusChangedEvent struct {
	BaseEvent
	ExpenseID      int64  `json:"expense_id"`
	CompanyID      int64  `json:"company_id"`
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
}

func NewExpenseStatusChangedEvent(expenseID, companyID int64, previousStatus, newStatus string) *ExpenseStatusChangedEvent {
	return &ExpenseStatusChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeExpenseStatusChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"expense_id":      expenseID,
				"company_id":      companyID,
				"previous_status": previousStatus,
				"new_status":      newStatus,
			},
		},
		ExpenseID:      expenseID,
		CompanyID:      companyID,
		PreviousStatus: previousStatus,
		NewStatus:      newStatus,
	}
}

type PaymentAppliedEvent struct {
	BaseEvent
	PaymentID         int64  `json:"payment_id"`
	InstallmentID     int64  `json:"installment_id"`
	ExpenseID         int64  `json:"expense_id"`
	Amount            string `json:"amount"`
	Method            string `json:"method"`
	InstallmentStatus string `json:"installment_status"`
}

func NewPaymentAppliedEvent(paymentID, installmentID, expenseID int64, amount, method, installmentStatus string) *PaymentAppliedEvent {
	return &PaymentAppliedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePaymentApplied,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"payment_id":         paymentID,
				"installment_id":     installmentID,
				"expense_id":         expenseID,
				"amount":             amount,
				"method":             method,
				"installment_status": installmentStatus,
			},
		},
		PaymentID:         paymentID,
		InstallmentID:     installmentID,
		ExpenseID:         expenseID,
		Amount:            amount,
		Method:            method,
		InstallmentStatus: installmentStatus,
	}
}

type PaymentRevertedEvent struct {
	BaseEvent
	PaymentID         int64  `json:"payment_id"`
	InstallmentID     int64  `json:"installment_id"`
	ExpenseID         int64  `json:"expense_id"`
	Amount            string `json:"amount"`
	InstallmentStatus string `json:"installment_status"`
}

func NewPaymentRevertedEvent(paymentID, installmentID, expenseID int64, amount, installmentStatus string) *PaymentRevertedEvent {
	return &PaymentRevertedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePaymentReverted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"payment_id":         paymentID,
				"installment_id":     installmentID,
				"expense_id":         expenseID,
				"amount":             amount,
				"installment_status": installmentStatus,
			},
		},
		PaymentID:         paymentID,
		InstallmentID:     installmentID,
		ExpenseID:         expenseID,
		Amount:            amount,
		InstallmentStatus: installmentStatus,
	}
}
