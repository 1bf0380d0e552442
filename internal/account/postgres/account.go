package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/heitorcapra/contas-backend/internal/account"
	accountDatamodel "github.com/heitorcapra/contas-backend/internal/core/datamodel/account"
	expenseDatamodel "github.com/heitorcapra/contas-backend/internal/core/datamodel/expense"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) account.RepositoryAPI {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetAll(companyID int64) ([]*accountDatamodel.Account, error) {
	var accounts []*accountDatamodel.Account
	err := r.db.
		Where("company_id = ? AND deleted_at IS NULL", companyID).
		Order("name ASC").
		Find(&accounts).Error
	return accounts, err
}

func (r *AccountRepository) GetByID(companyID, id int64) (*accountDatamodel.Account, error) {
	var a accountDatamodel.Account
	err := r.db.
		Where("id = ? AND company_id = ? AND deleted_at IS NULL", id, companyID).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepository) Create(a *accountDatamodel.Account) error {
	return r.db.Create(a).Error
}

func (r *AccountRepository) Update(a *accountDatamodel.Account) error {
	a.UpdatedAt = time.Now()
	return r.db.Save(a).Error
}

func (r *AccountRepository) SoftDelete(companyID, id int64) error {
	return r.db.Model(&accountDatamodel.Account{}).
		Where("id = ? AND company_id = ? AND deleted_at IS NULL", id, companyID).
		Update("deleted_at", time.Now()).Error
}

func (r *AccountRepository) CountChildren(companyID, id int64) (int64, error) {
	var count int64
	err := r.db.Model(&accountDatamodel.Account{}).
		Where("company_id = ? AND parent_id = ? AND deleted_at IS NULL", companyID, id).
		Count(&count).Error
	return count, err
}

func (r *AccountRepository) CountPayments(companyID, id int64) (int64, error) {
	var count int64
	err := r.db.Model(&expenseDatamodel.Payment{}).
		Joins("JOIN installments ON installments.id = payments.installment_id").
		Joins("JOIN expenses ON expenses.id = installments.expense_id").
		Where("expenses.company_id = ? AND payments.account_id = ? AND payments.deleted_at IS NULL", companyID, id).
		Count(&count).Error
	return count, err
}
