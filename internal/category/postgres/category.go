package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/heitorcapra/contas-backend/internal/category"
	categoryDatamodel "github.com/heitorcapra/contas-backend/internal/core/datamodel/category"
	expenseDatamodel "github.com/heitorcapra/contas-backend/internal/core/datamodel/expense"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetAll(companyID int64) ([]*categoryDatamodel.ExpenseCategory, error) {
	var categories []*categoryDatamodel.ExpenseCategory
	err := r.db.
		Where("company_id = ? AND deleted_at IS NULL", companyID).
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) GetByID(companyID, id int64) (*categoryDatamodel.ExpenseCategory, error) {
	var cat categoryDatamodel.ExpenseCategory
	err := r.db.
		Where("id = ? AND company_id = ? AND deleted_at IS NULL", id, companyID).
		First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) Create(cat *categoryDatamodel.ExpenseCategory) error {
	return r.db.Create(cat).Error
}

func (r *CategoryRepository) Update(cat *categoryDatamodel.ExpenseCategory) error {
	cat.UpdatedAt = time.Now()
	return r.db.Save(cat).Error
}

func (r *CategoryRepository) SoftDelete(companyID, id int64) error {
	return r.db.Model(&categoryDatamodel.ExpenseCategory{}).
		Where("id = ? AND company_id = ? AND deleted_at IS NULL", id, companyID).
		Update("deleted_at", time.Now()).Error
}

func (r *CategoryRepository) CountExpenses(companyID, id int64) (int64, error) {
	var count int64
	err := r.db.Model(&expenseDatamodel.Expense{}).
		Where("company_id = ? AND category_id = ? AND deleted_at IS NULL", companyID, id).
		Count(&count).Error
	return count, err
}
