package expense

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/heitorcapra/contas-backend/internal"
	"github.com/heitorcapra/contas-backend/internal/core/common/validation"
	"github.com/heitorcapra/contas-backend/internal/core/money"
)

type ExpenseItemDTO struct {
	Name      string          `json:"name" validate:"required,max=255"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required"`
	Discount  decimal.Decimal `json:"discount"`
}

type InstallmentDTO struct {
	Number  int             `json:"number" validate:"required,min=1"`
	DueDate time.Time       `json:"due_date" validate:"required"`
	Amount  decimal.Decimal `json:"amount" validate:"required"`
}

type CreateExpenseDTO struct {
	VendorID       int64            `json:"vendor_id" validate:"required"`
	CategoryID     int64            `json:"category_id" validate:"required"`
	Description    string           `json:"description" validate:"required,max=500"`
	CompetenceDate time.Time        `json:"competence_date" validate:"required"`
	IssueDate      *time.Time       `json:"issue_date,omitempty"`
	Draft          bool             `json:"draft"`
	Items          []ExpenseItemDTO `json:"items" validate:"required,min=1,dive"`
	Installments   []InstallmentDTO `json:"installments" validate:"required,min=1,dive"`
}

// Validate checks structural rules via tags, then the amount rules the tags
// cannot express: no negative quantities, prices or discounts, and strictly
// positive installment amounts.
func (dto *CreateExpenseDTO) Validate() *apperrors.AppError {
	if err := validation.Struct(dto); err != nil {
		return err
	}
	for _, item := range dto.Items {
		if money.IsNegative(item.Quantity) || money.IsNegative(item.UnitPrice) || money.IsNegative(item.Discount) {
			return apperrors.NewValidationFieldError("items", "item quantity, unit price and discount must not be negative", apperrors.ErrCodeInvalidAmount)
		}
	}
	for _, inst := range dto.Installments {
		if !money.IsPositive(inst.Amount) {
			return apperrors.NewValidationFieldError("installments", "installment amount must be greater than zero", apperrors.ErrCodeInvalidAmount)
		}
	}
	return nil
}

// UpdateExpenseDTO replaces the expense header and the whole item and
// installment lists in one atomic write, mirroring how the edit screen
// submits the full form.
type UpdateExpenseDTO struct {
	VendorID       int64            `json:"vendor_id" validate:"required"`
	CategoryID     int64            `json:"category_id" validate:"required"`
	Description    string           `json:"description" validate:"required,max=500"`
	CompetenceDate time.Time        `json:"competence_date" validate:"required"`
	IssueDate      *time.Time       `json:"issue_date,omitempty"`
	Items          []ExpenseItemDTO `json:"items" validate:"required,min=1,dive"`
	Installments   []InstallmentDTO `json:"installments" validate:"required,min=1,dive"`
}

func (dto *UpdateExpenseDTO) Validate() *apperrors.AppError {
	create := CreateExpenseDTO{
		VendorID:       dto.VendorID,
		CategoryID:     dto.CategoryID,
		Description:    dto.Description,
		CompetenceDate: dto.CompetenceDate,
		IssueDate:      dto.IssueDate,
		Items:          dto.Items,
		Installments:   dto.Installments,
	}
	return create.Validate()
}

type ApplyPaymentDTO struct {
	AccountID int64           `json:"account_id" validate:"required"`
	PaidAt    time.Time       `json:"paid_at" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Method    string          `json:"method" validate:"required,oneof=PIX TED DOC BOLETO CARTAO_CREDITO CARTAO_DEBITO DINHEIRO CHEQUE"`
	Note      *string         `json:"note,omitempty"`
}

func (dto *ApplyPaymentDTO) Validate() *apperrors.AppError {
	if err := validation.Struct(dto); err != nil {
		return err
	}
	if !money.IsPositive(dto.Amount) {
		return apperrors.NewValidationFieldError("amount", "payment amount must be greater than zero", apperrors.ErrCodeInvalidAmount)
	}
	if dto.PaidAt.After(time.Now()) {
		return apperrors.NewValidationFieldError("paid_at", "payment date cannot be in the future", apperrors.ErrCodeInvalidDate)
	}
	return nil
}

func (dto *CreateExpenseDTO) toDomain(companyID int64) *Expense {
	e := &Expense{
		CompanyID:      companyID,
		VendorID:       dto.VendorID,
		CategoryID:     dto.CategoryID,
		Description:    dto.Description,
		CompetenceDate: dto.CompetenceDate,
		IssueDate:      dto.IssueDate,
		Status:         StatusOpen,
	}
	if dto.Draft {
		e.Status = StatusDraft
	}

	for _, item := range dto.Items {
		e.Items = append(e.Items, NewExpenseItem(item.Name, item.Quantity, item.UnitPrice, item.Discount))
	}
	for _, inst := range dto.Installments {
		e.Installments = append(e.Installments, Installment{
			Number:  inst.Number,
			DueDate: inst.DueDate,
			Amount:  inst.Amount,
			Status:  InstallmentPending,
		})
	}

	// submitted numbers define the order; the stored numbers are always the
	// compacted sequence 1..N
	sort.SliceStable(e.Installments, func(a, b int) bool {
		return e.Installments[a].Number < e.Installments[b].Number
	})
	e.RenumberInstallments()
	e.DeriveTotalNet()
	return e
}
