package expense

import (
	"context"
	"log/slog"

	apperrors "github.com/heitorcapra/contas-backend/internal"
	"github.com/heitorcapra/contas-backend/internal/core/events"
	"github.com/heitorcapra/contas-backend/internal/core/money"
)

// Repository defines the data access methods for expense aggregates. Every
// method that touches more than one row runs inside a single transaction:
// all sub-writes succeed or none do.
type Repository interface {
	Create(expense *Expense) error
	GetByID(companyID, id int64) (*Expense, error)
	List(companyID int64, limit, offset int) ([]*Expense, error)
	Update(expense *Expense) error
	// UpdateStatus persists the expense status and the statuses of its
	// active installments in one transaction.
	UpdateStatus(expense *Expense) error
	SoftDelete(companyID, id int64) error
	AddPayment(expense *Expense, installment *Installment, payment *Payment) error
	RevertPayment(expense *Expense, installment *Installment, payment *Payment) error
	RemoveInstallment(expense *Expense, removed *Installment) error
}

// ReferenceChecker answers whether an active record with the given id exists
// for the company. Vendors, categories and accounts all expose this.
type ReferenceChecker interface {
	Exists(companyID, id int64) (bool, error)
}

// Service handles expense business logic. Status recomputation is always
// triggered here, in the same request as the mutation that made it stale;
// the event bus only notifies observers after the fact.
type Service struct {
	repo       Repository
	vendors    ReferenceChecker
	categories ReferenceChecker
	accounts   ReferenceChecker
	bus        *events.EventBus
	logger     *slog.Logger
}

func NewService(repo Repository, vendors, categories, accounts ReferenceChecker, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		vendors:    vendors,
		categories: categories,
		accounts:   accounts,
		bus:        bus,
		logger:     logger,
	}
}

// CreateExpense validates the payload, checks vendor and category
// references, derives the total from the items and writes the whole
// aggregate atomically.
func (s *Service) CreateExpense(companyID int64, dto *CreateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("expense validation failed", "error", err, "company_id", companyID)
		return nil, err
	}

	if err := s.checkReference(s.vendors, companyID, dto.VendorID, apperrors.ErrVendorNotFound); err != nil {
		return nil, err
	}
	if err := s.checkReference(s.categories, companyID, dto.CategoryID, apperrors.ErrCategoryNotFound); err != nil {
		return nil, err
	}

	exp := dto.toDomain(companyID)

	if err := s.repo.Create(exp); err != nil {
		s.logger.Error("failed to create expense", "error", err, "company_id", companyID)
		return nil, s.persistenceError(err)
	}

	s.logger.Info("expense created",
		"expense_id", exp.ID,
		"company_id", companyID,
		"total_net", money.Format(exp.TotalNet),
		"installments", len(exp.Installments),
		"status", exp.Status)

	return exp, nil
}

func (s *Service) GetExpense(companyID, id int64) (*Expense, error) {
	exp, err := s.repo.GetByID(companyID, id)
	if err != nil {
		s.logger.Error("failed to get expense", "error", err, "expense_id", id)
		return nil, err
	}
	return exp, nil
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// NormalizePage clamps list pagination to the supported window. Out-of-range
// limits fall back to the default page size, negative offsets to zero.
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (s *Service) ListExpenses(companyID int64, limit, offset int) ([]*Expense, error) {
	limit, offset = NormalizePage(limit, offset)

	expenses, err := s.repo.List(companyID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err, "company_id", companyID)
		return nil, s.persistenceError(err)
	}
	return expenses, nil
}

// UpdateExpense replaces the header and both owned lists. The old items and
// installments are soft-deleted and the new ones inserted in one
// transaction. Expenses with recorded payments cannot be rewritten this way.
func (s *Service) UpdateExpense(companyID, id int64, dto *UpdateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("expense validation failed", "error", err, "expense_id", id)
		return nil, err
	}

	current, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	for _, inst := range current.ActiveInstallments() {
		if inst.HasActivePayments() {
			return nil, apperrors.NewConflictError("expense has payments; revert them before editing installments", apperrors.ErrCodeHasDependents)
		}
	}

	if err := s.checkReference(s.vendors, companyID, dto.VendorID, apperrors.ErrVendorNotFound); err != nil {
		return nil, err
	}
	if err := s.checkReference(s.categories, companyID, dto.CategoryID, apperrors.ErrCategoryNotFound); err != nil {
		return nil, err
	}

	create := CreateExpenseDTO{
		VendorID:       dto.VendorID,
		CategoryID:     dto.CategoryID,
		Description:    dto.Description,
		CompetenceDate: dto.CompetenceDate,
		IssueDate:      dto.IssueDate,
		Items:          dto.Items,
		Installments:   dto.Installments,
	}
	updated := create.toDomain(companyID)
	updated.ID = current.ID
	updated.Status = current.Status
	updated.RecomputeStatus()

	if err := s.repo.Update(updated); err != nil {
		s.logger.Error("failed to update expense", "error", err, "expense_id", id)
		return nil, s.persistenceError(err)
	}

	s.logger.Info("expense updated", "expense_id", id, "company_id", companyID, "total_net", money.Format(updated.TotalNet))
	return updated, nil
}

// DeleteExpense cascade soft-deletes the expense with its items,
// installments and payments.
func (s *Service) DeleteExpense(companyID, id int64) error {
	if _, err := s.repo.GetByID(companyID, id); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(companyID, id); err != nil {
		s.logger.Error("failed to delete expense", "error", err, "expense_id", id)
		return s.persistenceError(err)
	}
	s.logger.Info("expense deleted", "expense_id", id, "company_id", companyID)
	return nil
}

// SubmitExpense moves a draft to OPEN.
func (s *Service) SubmitExpense(companyID, id int64) (*Expense, error) {
	exp, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}

	previous := exp.Status
	if err := exp.Submit(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(exp); err != nil {
		s.logger.Error("failed to submit expense", "error", err, "expense_id", id)
		return nil, s.persistenceError(err)
	}

	s.publishStatusChange(exp, previous)
	return exp, nil
}

// CancelExpense cancels the expense and its unpaid installments.
func (s *Service) CancelExpense(companyID, id int64) (*Expense, error) {
	exp, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}

	previous := exp.Status
	exp.Cancel()

	if err := s.repo.UpdateStatus(exp); err != nil {
		s.logger.Error("failed to cancel expense", "error", err, "expense_id", id)
		return nil, s.persistenceError(err)
	}

	s.publishStatusChange(exp, previous)
	s.logger.Info("expense cancelled", "expense_id", id, "company_id", companyID)
	return exp, nil
}

// ApplyPayment records a payment against an installment, re-derives the
// installment status and the expense status, and persists all three writes
// in one transaction.
func (s *Service) ApplyPayment(companyID, expenseID, installmentID int64, dto *ApplyPaymentDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("payment validation failed", "error", err, "installment_id", installmentID)
		return nil, err
	}

	if err := s.checkReference(s.accounts, companyID, dto.AccountID, apperrors.ErrAccountNotFound); err != nil {
		return nil, err
	}

	exp, err := s.repo.GetByID(companyID, expenseID)
	if err != nil {
		return nil, err
	}
	if exp.Status == StatusDraft {
		return nil, apperrors.NewValidationError("cannot record payments on a draft expense", apperrors.ErrCodeInvalidExpenseStatus)
	}

	inst, err := exp.FindInstallment(installmentID)
	if err != nil {
		return nil, err
	}

	payment := Payment{
		AccountID: dto.AccountID,
		PaidAt:    dto.PaidAt,
		Amount:    dto.Amount,
		Method:    PaymentMethod(dto.Method),
		Note:      dto.Note,
	}
	if err := inst.ApplyPayment(payment); err != nil {
		s.logger.Warn("payment rejected",
			"error", err,
			"installment_id", installmentID,
			"amount", money.Format(dto.Amount))
		return nil, err
	}

	previous := exp.Status
	exp.RecomputeStatus()

	applied := &inst.Payments[len(inst.Payments)-1]
	if err := s.repo.AddPayment(exp, inst, applied); err != nil {
		s.logger.Error("failed to persist payment", "error", err, "installment_id", installmentID)
		return nil, s.persistenceError(err)
	}

	s.bus.Publish(context.Background(), events.NewPaymentAppliedEvent(
		applied.ID, inst.ID, exp.ID,
		money.Format(applied.Amount), string(applied.Method), string(inst.Status)))
	s.publishStatusChange(exp, previous)

	s.logger.Info("payment applied",
		"payment_id", applied.ID,
		"installment_id", inst.ID,
		"expense_id", exp.ID,
		"amount", money.Format(applied.Amount),
		"installment_status", inst.Status,
		"expense_status", exp.Status)

	return exp, nil
}

// RevertPayment soft-deletes a payment and rolls the installment and
// expense statuses back, all in one transaction.
func (s *Service) RevertPayment(companyID, expenseID, installmentID, paymentID int64) (*Expense, error) {
	exp, err := s.repo.GetByID(companyID, expenseID)
	if err != nil {
		return nil, err
	}

	inst, err := exp.FindInstallment(installmentID)
	if err != nil {
		return nil, err
	}

	reverted, err := inst.RevertPayment(paymentID)
	if err != nil {
		return nil, err
	}

	previous := exp.Status
	exp.RecomputeStatus()

	if err := s.repo.RevertPayment(exp, inst, reverted); err != nil {
		s.logger.Error("failed to revert payment", "error", err, "payment_id", paymentID)
		return nil, s.persistenceError(err)
	}

	s.bus.Publish(context.Background(), events.NewPaymentRevertedEvent(
		reverted.ID, inst.ID, exp.ID, money.Format(reverted.Amount), string(inst.Status)))
	s.publishStatusChange(exp, previous)

	s.logger.Info("payment reverted",
		"payment_id", paymentID,
		"installment_id", inst.ID,
		"expense_id", exp.ID,
		"installment_status", inst.Status,
		"expense_status", exp.Status)

	return exp, nil
}

// RemoveInstallment soft-deletes an installment without payments and
// renumbers the survivors to a contiguous 1..N.
func (s *Service) RemoveInstallment(companyID, expenseID, installmentID int64) (*Expense, error) {
	exp, err := s.repo.GetByID(companyID, expenseID)
	if err != nil {
		return nil, err
	}

	removedRef, err := exp.FindInstallment(installmentID)
	if err != nil {
		return nil, err
	}
	removed := *removedRef

	if err := exp.RemoveInstallment(installmentID); err != nil {
		return nil, err
	}

	previous := exp.Status
	exp.RecomputeStatus()

	if err := s.repo.RemoveInstallment(exp, &removed); err != nil {
		s.logger.Error("failed to remove installment", "error", err, "installment_id", installmentID)
		return nil, s.persistenceError(err)
	}

	s.publishStatusChange(exp, previous)
	s.logger.Info("installment removed",
		"installment_id", installmentID,
		"expense_id", exp.ID,
		"remaining_installments", len(exp.ActiveInstallments()))

	return exp, nil
}

// RecomputeStatus re-derives and persists the expense status. Safe to call
// at any time; calling it twice yields the same result.
func (s *Service) RecomputeStatus(companyID, expenseID int64) (*Expense, error) {
	exp, err := s.repo.GetByID(companyID, expenseID)
	if err != nil {
		return nil, err
	}

	previous := exp.Status
	exp.RecomputeStatus()

	if exp.Status != previous {
		if err := s.repo.UpdateStatus(exp); err != nil {
			s.logger.Error("failed to update expense status", "error", err, "expense_id", expenseID)
			return nil, s.persistenceError(err)
		}
		s.publishStatusChange(exp, previous)
	}

	return exp, nil
}

// Reconcile reports whether items, installments and expense totals agree.
// Advisory only: mismatches never block a write.
func (s *Service) Reconcile(companyID, expenseID int64) (*ReconciliationReport, error) {
	exp, err := s.repo.GetByID(companyID, expenseID)
	if err != nil {
		return nil, err
	}

	report := Reconcile(exp)
	if !report.IsValid {
		s.logger.Warn("expense reconciliation mismatch",
			"expense_id", expenseID,
			"items_total", money.Format(report.ItemsTotal),
			"installments_total", money.Format(report.InstallmentsTotal),
			"expense_total", money.Format(report.ExpenseTotal))
	}
	return &report, nil
}

func (s *Service) checkReference(checker ReferenceChecker, companyID, id int64, notFound *apperrors.AppError) error {
	exists, err := checker.Exists(companyID, id)
	if err != nil {
		s.logger.Error("reference check failed", "error", err, "id", id)
		return s.persistenceError(err)
	}
	if !exists {
		return notFound
	}
	return nil
}

func (s *Service) publishStatusChange(exp *Expense, previous ExpenseStatus) {
	if exp.Status == previous {
		return
	}
	s.bus.Publish(context.Background(), events.NewExpenseStatusChangedEvent(
		exp.ID, exp.CompanyID, string(previous), string(exp.Status)))
}

// persistenceError passes domain errors through untouched and wraps
// anything unexpected so database detail never reaches the caller.
func (s *Service) persistenceError(err error) error {
	if appErr, ok := apperrors.IsAppError(err); ok {
		return appErr
	}
	return apperrors.NewPersistenceError(err)
}
