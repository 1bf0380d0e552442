package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/heitorcapra/contas-backend/internal/contact"
	contactDatamodel "github.com/heitorcapra/contas-backend/internal/core/datamodel/contact"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) contact.RepositoryAPI {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) GetAll(companyID int64) ([]*contactDatamodel.Contact, error) {
	var contacts []*contactDatamodel.Contact
	err := r.db.
		Where("company_id = ? AND deleted_at IS NULL", companyID).
		Order("name ASC").
		Find(&contacts).Error
	return contacts, err
}

func (r *ContactRepository) GetByID(companyID, id int64) (*contactDatamodel.Contact, error) {
	var c contactDatamodel.Contact
	err := r.db.
		Where("id = ? AND company_id = ? AND deleted_at IS NULL", id, companyID).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *ContactRepository) Create(c *contactDatamodel.Contact) error {
	return r.db.Create(c).Error
}

func (r *ContactRepository) Update(c *contactDatamodel.Contact) error {
	c.UpdatedAt = time.Now()
	return r.db.Save(c).Error
}

func (r *ContactRepository) SoftDelete(companyID, id int64) error {
	return r.db.Model(&contactDatamodel.Contact{}).
		Where("id = ? AND company_id = ? AND deleted_at IS NULL", id, companyID).
		Update("deleted_at", time.Now()).Error
}
