package category

import (
	apperrors "github.com/heitorcapra/contas-backend/internal"
	"github.com/heitorcapra/contas-backend/internal/core/common/validation"
)

type CategoryDTO struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=500"`
}

func (dto *CategoryDTO) Validate() *apperrors.AppError {
	return validation.Struct(dto)
}

type CategoriesResponse struct {
	Categories []*Category `json:"categories"`
}
