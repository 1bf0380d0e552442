package account

import (
	"github.com/heitorcapra/contas-backend/internal/core/common/validation"
)

type AccountDTO struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Kind     string `json:"kind" validate:"required,oneof=BANK WALLET CASH OTHER"`
	ParentID *int64 `json:"parent_id,omitempty" validate:"omitempty,gt=0"`
}

type AccountsResponse struct {
	Accounts []*Account `json:"accounts"`
}

func (d *AccountDTO) Validate() error {
	return validation.Struct(d)
}
