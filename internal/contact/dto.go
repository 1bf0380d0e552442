package contact

import (
	"github.com/heitorcapra/contas-backend/internal/core/common/validation"
)

type ContactDTO struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Kind     string `json:"kind" validate:"omitempty,oneof=CUSTOMER PARTNER OTHER"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Document string `json:"document,omitempty" validate:"omitempty,max=30"`
	Notes    string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type ContactsResponse struct {
	Contacts []*Contact `json:"contacts"`
}

func (d *ContactDTO) Validate() error {
	return validation.Struct(d)
}
