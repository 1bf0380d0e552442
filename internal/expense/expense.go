package expense

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/heitorcapra/contas-backend/internal"
	"github.com/heitorcapra/contas-backend/internal/core/money"
)

type ExpenseStatus string

const (
	StatusDraft         ExpenseStatus = "DRAFT"
	StatusOpen          ExpenseStatus = "OPEN"
	StatusPartiallyPaid ExpenseStatus = "PARTIALLY_PAID"
	StatusPaid          ExpenseStatus = "PAID"
	StatusCancelled     ExpenseStatus = "CANCELLED"
)

// Expense is a payable obligation composed of line items and payment
// installments. The expense exclusively owns its items and installments;
// installments exclusively own their payments.
type Expense struct {
	ID             int64           `json:"id"`
	CompanyID      int64           `json:"company_id"`
	VendorID       int64           `json:"vendor_id"`
	CategoryID     int64           `json:"category_id"`
	Description    string          `json:"description"`
	CompetenceDate time.Time       `json:"competence_date"`
	IssueDate      *time.Time      `json:"issue_date,omitempty"`
	TotalNet       decimal.Decimal `json:"total_net"`
	Status         ExpenseStatus   `json:"status"`
	Items          []ExpenseItem   `json:"items"`
	Installments   []Installment   `json:"installments"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      *time.Time      `json:"deleted_at,omitempty"`
}

type ExpenseItem struct {
	ID        int64           `json:"id"`
	ExpenseID int64           `json:"expense_id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
	DeletedAt *time.Time      `json:"-"`
}

// NewExpenseItem derives the line total from quantity, unit price and
// discount. Client-submitted totals are never trusted.
func NewExpenseItem(name string, quantity, unitPrice, discount decimal.Decimal) ExpenseItem {
	return ExpenseItem{
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Discount:  discount,
		Total:     money.Sub(money.Mul(quantity, unitPrice), discount),
	}
}

func (it *ExpenseItem) Active() bool {
	return it.DeletedAt == nil
}

// ActiveItems returns the non-deleted line items.
func (e *Expense) ActiveItems() []ExpenseItem {
	items := make([]ExpenseItem, 0, len(e.Items))
	for _, it := range e.Items {
		if it.Active() {
			items = append(items, it)
		}
	}
	return items
}

// ActiveInstallments returns the non-deleted installments. Cancelled
// installments are still active; cancellation is a status, not a deletion.
func (e *Expense) ActiveInstallments() []Installment {
	installments := make([]Installment, 0, len(e.Installments))
	for _, inst := range e.Installments {
		if inst.Active() {
			installments = append(installments, inst)
		}
	}
	return installments
}

// DeriveStatus is a pure function of the installment status multiset:
// every installment cancelled yields CANCELLED, every one paid yields PAID,
// any paid or partial yields PARTIALLY_PAID, anything else yields OPEN.
// A mixed cancelled+pending set therefore yields OPEN.
func DeriveStatus(installments []Installment) ExpenseStatus {
	if len(installments) == 0 {
		return StatusOpen
	}

	allCancelled := true
	allPaid := true
	anyProgress := false
	for _, inst := range installments {
		if inst.Status != InstallmentCancelled {
			allCancelled = false
		}
		if inst.Status != InstallmentPaid {
			allPaid = false
		}
		if inst.Status == InstallmentPaid || inst.Status == InstallmentPartial {
			anyProgress = true
		}
	}

	switch {
	case allCancelled:
		return StatusCancelled
	case allPaid:
		return StatusPaid
	case anyProgress:
		return StatusPartiallyPaid
	default:
		return StatusOpen
	}
}

// RecomputeStatus re-derives the expense status from its active
// installments. It is idempotent and side-effect free beyond assigning the
// status field. Drafts are untouched: a draft only leaves DRAFT through
// Submit, and a manual cancel sticks until installments change again.
func (e *Expense) RecomputeStatus() ExpenseStatus {
	if e.Status == StatusDraft {
		return e.Status
	}
	e.Status = DeriveStatus(e.ActiveInstallments())
	return e.Status
}

// Submit moves a draft to OPEN and immediately re-derives the status so a
// draft carrying paid installments lands on the right state.
func (e *Expense) Submit() error {
	if e.Status != StatusDraft {
		return apperrors.ErrInvalidExpenseStatus
	}
	e.Status = StatusOpen
	e.RecomputeStatus()
	return nil
}

// Cancel marks the expense and every unpaid installment cancelled.
// Installments already paid keep their status.
func (e *Expense) Cancel() {
	for idx := range e.Installments {
		inst := &e.Installments[idx]
		if !inst.Active() {
			continue
		}
		if inst.Status == InstallmentPending || inst.Status == InstallmentPartial {
			inst.Status = InstallmentCancelled
		}
	}
	e.Status = StatusCancelled
}

// AddItem appends a line item and re-derives the expense total.
func (e *Expense) AddItem(item ExpenseItem) {
	item.ExpenseID = e.ID
	e.Items = append(e.Items, item)
	e.DeriveTotalNet()
}

// UpdateItem replaces the item with the same ID and re-derives the total.
func (e *Expense) UpdateItem(item ExpenseItem) error {
	for idx := range e.Items {
		if e.Items[idx].ID == item.ID && e.Items[idx].Active() {
			item.ExpenseID = e.ID
			item.Total = money.Sub(money.Mul(item.Quantity, item.UnitPrice), item.Discount)
			e.Items[idx] = item
			e.DeriveTotalNet()
			return nil
		}
	}
	return apperrors.NewNotFoundError("expense item not found", apperrors.ErrCodeExpenseNotFound)
}

// RemoveItem soft-deletes a line item and re-derives the total. The last
// active item cannot be removed; an expense always has at least one.
func (e *Expense) RemoveItem(itemID int64) error {
	if len(e.ActiveItems()) <= 1 {
		return apperrors.NewValidationError("expense must keep at least one item", apperrors.ErrCodeEmptyItems)
	}
	for idx := range e.Items {
		if e.Items[idx].ID == itemID && e.Items[idx].Active() {
			now := time.Now()
			e.Items[idx].DeletedAt = &now
			e.DeriveTotalNet()
			return nil
		}
	}
	return apperrors.NewNotFoundError("expense item not found", apperrors.ErrCodeExpenseNotFound)
}

// DeriveTotalNet recomputes the expense total as the sum of active item
// totals. The item list is the single source of truth for the total.
func (e *Expense) DeriveTotalNet() decimal.Decimal {
	total := money.Zero()
	for _, it := range e.ActiveItems() {
		total = money.Add(total, it.Total)
	}
	e.TotalNet = total
	return total
}

// FindInstallment returns the active installment with the given ID.
func (e *Expense) FindInstallment(installmentID int64) (*Installment, error) {
	for idx := range e.Installments {
		if e.Installments[idx].ID == installmentID && e.Installments[idx].Active() {
			return &e.Installments[idx], nil
		}
	}
	return nil, apperrors.ErrInstallmentNotFound
}

// RemoveInstallment soft-deletes an installment and renumbers the
// survivors. Removal is refused while the installment has active payments.
func (e *Expense) RemoveInstallment(installmentID int64) error {
	inst, err := e.FindInstallment(installmentID)
	if err != nil {
		return err
	}
	if inst.HasActivePayments() {
		return apperrors.ErrInstallmentHasPayments
	}
	if len(e.ActiveInstallments()) <= 1 {
		return apperrors.NewValidationError("expense must keep at least one installment", apperrors.ErrCodeEmptyInstallment)
	}

	now := time.Now()
	inst.DeletedAt = &now
	e.RenumberInstallments()
	return nil
}

// RenumberInstallments compacts active installment numbers to 1..N,
// preserving the relative order of the survivors.
func (e *Expense) RenumberInstallments() {
	next := 1
	for idx := range e.Installments {
		if !e.Installments[idx].Active() {
			continue
		}
		e.Installments[idx].Number = next
		next++
	}
}
