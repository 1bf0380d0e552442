package account

import (
	"time"

	accountDatamodel "github.com/heitorcapra/contas-backend/internal/core/datamodel/account"
)

// AccountKind classifies a node of the company's account tree.
type AccountKind string

const (
	KindBank   AccountKind = "BANK"
	KindWallet AccountKind = "WALLET"
	KindCash   AccountKind = "CASH"
	KindOther  AccountKind = "OTHER"
)

func (k AccountKind) Valid() bool {
	switch k {
	case KindBank, KindWallet, KindCash, KindOther:
		return true
	}
	return false
}

// Account is one node of the company's account tree. Payments reference
// the account they were paid from.
type Account struct {
	ID        int64       `json:"id"`
	CompanyID int64       `json:"company_id"`
	ParentID  *int64      `json:"parent_id,omitempty"`
	Name      string      `json:"name"`
	Kind      AccountKind `json:"kind"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func ToDataModel(a *Account) *accountDatamodel.Account {
	return &accountDatamodel.Account{
		ID:        a.ID,
		CompanyID: a.CompanyID,
		ParentID:  a.ParentID,
		Name:      a.Name,
		Kind:      string(a.Kind),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func FromDataModel(dm *accountDatamodel.Account) *Account {
	return &Account{
		ID:        dm.ID,
		CompanyID: dm.CompanyID,
		ParentID:  dm.ParentID,
		Name:      dm.Name,
		Kind:      AccountKind(dm.Kind),
		CreatedAt: dm.CreatedAt,
		UpdatedAt: dm.UpdatedAt,
	}
}
