package contact

import (
	"time"

	contactDatamodel "github.com/heitorcapra/contas-backend/internal/core/datamodel/contact"
)

// ContactKind distinguishes customers from other relationship types.
type ContactKind string

const (
	KindCustomer ContactKind = "CUSTOMER"
	KindPartner  ContactKind = "PARTNER"
	KindOther    ContactKind = "OTHER"
)

type Contact struct {
	ID        int64       `json:"id"`
	CompanyID int64       `json:"company_id"`
	Name      string      `json:"name"`
	Kind      ContactKind `json:"kind"`
	Email     string      `json:"email,omitempty"`
	Phone     string      `json:"phone,omitempty"`
	Document  string      `json:"document,omitempty"`
	Notes     string      `json:"notes,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func ToDataModel(c *Contact) *contactDatamodel.Contact {
	return &contactDatamodel.Contact{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		Kind:      string(c.Kind),
		Email:     c.Email,
		Phone:     c.Phone,
		Document:  c.Document,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func FromDataModel(dm *contactDatamodel.Contact) *Contact {
	return &Contact{
		ID:        dm.ID,
		CompanyID: dm.CompanyID,
		Name:      dm.Name,
		Kind:      ContactKind(dm.Kind),
		Email:     dm.Email,
		Phone:     dm.Phone,
		Document:  dm.Document,
		Notes:     dm.Notes,
		CreatedAt: dm.CreatedAt,
		UpdatedAt: dm.UpdatedAt,
	}
}
