package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/heitorcapra/contas-backend/internal"
	expenseDatamodel "github.com/heitorcapra/contas-backend/internal/core/datamodel/expense"
	"github.com/heitorcapra/contas-backend/internal/expense"
)

// ExpenseRepository implements expense.Repository using GORM. Every
// multi-entity mutation runs in one transaction so the aggregate is written
// all-or-nothing.
type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) expense.Repository {
	return &ExpenseRepository{db: db}
}

// Create inserts the expense with all its items and installments in one
// transaction and copies the generated IDs back onto the domain aggregate.
func (r *ExpenseRepository) Create(exp *expense.Expense) error {
	dm := expense.ToDataModel(exp)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(dm).Error
	})
	if err != nil {
		return err
	}

	refreshed := expense.FromDataModel(dm)
	*exp = *refreshed
	return nil
}

// GetByID loads the full aggregate: active items, active installments
// ordered by number, and every payment (reverted ones included, since the
// ledger keeps them).
func (r *ExpenseRepository) GetByID(companyID, id int64) (*expense.Expense, error) {
	var dm expenseDatamodel.Expense
	err := r.db.
		Preload("Items", "deleted_at IS NULL").
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Where("deleted_at IS NULL").Order("number ASC")
		}).
		Preload("Installments.Payments").
		Where("id = ? AND company_id = ? AND deleted_at IS NULL", id, companyID).
		First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.NewPersistenceError(err)
	}
	return expense.FromDataModel(&dm), nil
}

func (r *ExpenseRepository) List(companyID int64, limit, offset int) ([]*expense.Expense, error) {
	var dms []*expenseDatamodel.Expense
	err := r.db.
		Preload("Items", "deleted_at IS NULL").
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Where("deleted_at IS NULL").Order("number ASC")
		}).
		Preload("Installments.Payments").
		Where("company_id = ? AND deleted_at IS NULL", companyID).
		Order("competence_date DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return expense.FromDataModelSlice(dms), nil
}

// Update rewrites the aggregate: the header row is updated, the previous
// active items and installments are soft-deleted, and the replacement lists
// inserted, all in one transaction.
func (r *ExpenseRepository) Update(exp *expense.Expense) error {
	dm := expense.ToDataModel(exp)
	now := time.Now()

	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&expenseDatamodel.Expense{}).
			Where("id = ? AND company_id = ? AND deleted_at IS NULL", dm.ID, dm.CompanyID).
			Updates(map[string]interface{}{
				"vendor_id":       dm.VendorID,
				"category_id":     dm.CategoryID,
				"description":     dm.Description,
				"competence_date": dm.CompetenceDate,
				"issue_date":      dm.IssueDate,
				"total_net":       dm.TotalNet,
				"status":          dm.Status,
				"updated_at":      now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrExpenseNotFound
		}

		if err := tx.Model(&expenseDatamodel.ExpenseItem{}).
			Where("expense_id = ? AND deleted_at IS NULL", dm.ID).
			Update("deleted_at", now).Error; err != nil {
			return err
		}
		if err := tx.Model(&expenseDatamodel.Installment{}).
			Where("expense_id = ? AND deleted_at IS NULL", dm.ID).
			Update("deleted_at", now).Error; err != nil {
			return err
		}

		for idx := range dm.Items {
			dm.Items[idx].ID = 0
			dm.Items[idx].ExpenseID = dm.ID
			if err := tx.Create(&dm.Items[idx]).Error; err != nil {
				return err
			}
		}
		for idx := range dm.Installments {
			dm.Installments[idx].ID = 0
			dm.Installments[idx].ExpenseID = dm.ID
			dm.Installments[idx].Payments = nil
			if err := tx.Create(&dm.Installments[idx]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	refreshed, err := r.GetByID(exp.CompanyID, exp.ID)
	if err != nil {
		return err
	}
	*exp = *refreshed
	return nil
}

// UpdateStatus persists the expense status and the statuses of its active
// installments in one transaction.
func (r *ExpenseRepository) UpdateStatus(exp *expense.Expense) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&expenseDatamodel.Expense{}).
			Where("id = ? AND company_id = ? AND deleted_at IS NULL", exp.ID, exp.CompanyID).
			Updates(map[string]interface{}{
				"status":     string(exp.Status),
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrExpenseNotFound
		}

		for _, inst := range exp.ActiveInstallments() {
			if err := tx.Model(&expenseDatamodel.Installment{}).
				Where("id = ?", inst.ID).
				Updates(map[string]interface{}{
					"status":     string(inst.Status),
					"updated_at": time.Now(),
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SoftDelete cascade soft-deletes the expense, its items, installments and
// payments with a single deletion timestamp.
func (r *ExpenseRepository) SoftDelete(companyID, id int64) error {
	now := time.Now()
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&expenseDatamodel.Expense{}).
			Where("id = ? AND company_id = ? AND deleted_at IS NULL", id, companyID).
			Update("deleted_at", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrExpenseNotFound
		}

		if err := tx.Model(&expenseDatamodel.ExpenseItem{}).
			Where("expense_id = ? AND deleted_at IS NULL", id).
			Update("deleted_at", now).Error; err != nil {
			return err
		}

		var installmentIDs []int64
		if err := tx.Model(&expenseDatamodel.Installment{}).
			Where("expense_id = ? AND deleted_at IS NULL", id).
			Pluck("id", &installmentIDs).Error; err != nil {
			return err
		}
		if len(installmentIDs) > 0 {
			if err := tx.Model(&expenseDatamodel.Payment{}).
				Where("installment_id IN ? AND deleted_at IS NULL", installmentIDs).
				Update("deleted_at", now).Error; err != nil {
				return err
			}
			if err := tx.Model(&expenseDatamodel.Installment{}).
				Where("id IN ?", installmentIDs).
				Update("deleted_at", now).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// AddPayment inserts the payment row and persists the derived installment
// and expense statuses in one transaction.
func (r *ExpenseRepository) AddPayment(exp *expense.Expense, inst *expense.Installment, payment *expense.Payment) error {
	dmPayment := &expenseDatamodel.Payment{
		InstallmentID: inst.ID,
		AccountID:     payment.AccountID,
		PaidAt:        payment.PaidAt,
		Amount:        payment.Amount,
		Method:        string(payment.Method),
		Note:          payment.Note,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(dmPayment).Error; err != nil {
			return err
		}
		if err := tx.Model(&expenseDatamodel.Installment{}).
			Where("id = ?", inst.ID).
			Updates(map[string]interface{}{
				"status":     string(inst.Status),
				"updated_at": time.Now(),
			}).Error; err != nil {
			return err
		}
		return tx.Model(&expenseDatamodel.Expense{}).
			Where("id = ?", exp.ID).
			Updates(map[string]interface{}{
				"status":     string(exp.Status),
				"updated_at": time.Now(),
			}).Error
	})
	if err != nil {
		return err
	}

	payment.ID = dmPayment.ID
	payment.InstallmentID = inst.ID
	return nil
}

// RevertPayment stamps the payment's deletion timestamp and persists the
// re-derived statuses in one transaction.
func (r *ExpenseRepository) RevertPayment(exp *expense.Expense, inst *expense.Installment, payment *expense.Payment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&expenseDatamodel.Payment{}).
			Where("id = ? AND deleted_at IS NULL", payment.ID).
			Update("deleted_at", payment.DeletedAt)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrPaymentNotFound
		}

		if err := tx.Model(&expenseDatamodel.Installment{}).
			Where("id = ?", inst.ID).
			Updates(map[string]interface{}{
				"status":     string(inst.Status),
				"updated_at": time.Now(),
			}).Error; err != nil {
			return err
		}
		return tx.Model(&expenseDatamodel.Expense{}).
			Where("id = ?", exp.ID).
			Updates(map[string]interface{}{
				"status":     string(exp.Status),
				"updated_at": time.Now(),
			}).Error
	})
}

// RemoveInstallment soft-deletes the installment, rewrites the survivors'
// numbers and persists the expense status in one transaction.
func (r *ExpenseRepository) RemoveInstallment(exp *expense.Expense, removed *expense.Installment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&expenseDatamodel.Installment{}).
			Where("id = ? AND deleted_at IS NULL", removed.ID).
			Update("deleted_at", time.Now())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrInstallmentNotFound
		}

		for _, inst := range exp.ActiveInstallments() {
			if err := tx.Model(&expenseDatamodel.Installment{}).
				Where("id = ?", inst.ID).
				Updates(map[string]interface{}{
					"number":     inst.Number,
					"updated_at": time.Now(),
				}).Error; err != nil {
				return err
			}
		}

		return tx.Model(&expenseDatamodel.Expense{}).
			Where("id = ?", exp.ID).
			Updates(map[string]interface{}{
				"status":     string(exp.Status),
				"updated_at": time.Now(),
			}).Error
	})
}
