package vendor

import (
	"time"

	vendorDatamodel "github.com/heitorcapra/contas-backend/internal/core/datamodel/vendor"
)

type Vendor struct {
	ID        int64      `json:"id"`
	CompanyID int64      `json:"company_id"`
	Name      string     `json:"name"`
	TaxID     string     `json:"tax_id,omitempty"`
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

func (v *Vendor) Active() bool {
	return v.DeletedAt == nil
}

func ToDataModel(v *Vendor) *vendorDatamodel.Vendor {
	return &vendorDatamodel.Vendor{
		ID:        v.ID,
		CompanyID: v.CompanyID,
		Name:      v.Name,
		TaxID:     v.TaxID,
		Email:     v.Email,
		Phone:     v.Phone,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
		DeletedAt: v.DeletedAt,
	}
}

func FromDataModel(v *vendorDatamodel.Vendor) *Vendor {
	return &Vendor{
		ID:        v.ID,
		CompanyID: v.CompanyID,
		Name:      v.Name,
		TaxID:     v.TaxID,
		Email:     v.Email,
		Phone:     v.Phone,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
		DeletedAt: v.DeletedAt,
	}
}
