package vendor

import (
	apperrors "github.com/heitorcapra/contas-backend/internal"
	"github.com/heitorcapra/contas-backend/internal/core/common/validation"
)

type VendorDTO struct {
	Name  string `json:"name" validate:"required,max=255"`
	TaxID string `json:"tax_id" validate:"max=32"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"max=32"`
}

func (dto *VendorDTO) Validate() *apperrors.AppError {
	return validation.Struct(dto)
}

type VendorsResponse struct {
	Vendors []*Vendor `json:"vendors"`
}
