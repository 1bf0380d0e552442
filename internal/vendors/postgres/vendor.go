package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	expenseDatamodel "github.com/heitorcapra/contas-backend/internal/core/datamodel/expense"
	vendorDatamodel "github.com/heitorcapra/contas-backend/internal/core/datamodel/vendor"
	"github.com/heitorcapra/contas-backend/internal/vendors"
)

type VendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) vendor.RepositoryAPI {
	return &VendorRepository{db: db}
}

func (r *VendorRepository) GetAll(companyID int64) ([]*vendorDatamodel.Vendor, error) {
	var vendors []*vendorDatamodel.Vendor
	err := r.db.
		Where("company_id = ? AND deleted_at IS NULL", companyID).
		Order("name ASC").
		Find(&vendors).Error
	return vendors, err
}

func (r *VendorRepository) GetByID(companyID, id int64) (*vendorDatamodel.Vendor, error) {
	var v vendorDatamodel.Vendor
	err := r.db.
		Where("id = ? AND company_id = ? AND deleted_at IS NULL", id, companyID).
		First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *VendorRepository) Create(v *vendorDatamodel.Vendor) error {
	return r.db.Create(v).Error
}

func (r *VendorRepository) Update(v *vendorDatamodel.Vendor) error {
	v.UpdatedAt = time.Now()
	return r.db.Save(v).Error
}

func (r *VendorRepository) SoftDelete(companyID, id int64) error {
	return r.db.Model(&vendorDatamodel.Vendor{}).
		Where("id = ? AND company_id = ? AND deleted_at IS NULL", id, companyID).
		Update("deleted_at", time.Now()).Error
}

func (r *VendorRepository) CountExpenses(companyID, id int64) (int64, error) {
	var count int64
	err := r.db.Model(&expenseDatamodel.Expense{}).
		Where("company_id = ? AND vendor_id = ? AND deleted_at IS NULL", companyID, id).
		Count(&count).Error
	return count, err
}
