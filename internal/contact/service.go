package contact

import (
	"log/slog"
	"time"

	apperrors "github.com/heitorcapra/contas-backend/internal"
	contactDatamodel "github.com/heitorcapra/contas-backend/internal/core/datamodel/contact"
)

type RepositoryAPI interface {
	GetAll(companyID int64) ([]*contactDatamodel.Contact, error)
	GetByID(companyID, id int64) (*contactDatamodel.Contact, error)
	Create(c *contactDatamodel.Contact) error
	Update(c *contactDatamodel.Contact) error
	SoftDelete(companyID, id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAll(companyID int64) ([]*Contact, error) {
	dms, err := s.repo.GetAll(companyID)
	if err != nil {
		s.logger.Error("failed to get contacts", "error", err, "company_id", companyID)
		return nil, apperrors.NewPersistenceError(err)
	}

	contacts := make([]*Contact, 0, len(dms))
	for _, dm := range dms {
		contacts = append(contacts, FromDataModel(dm))
	}
	return contacts, nil
}

func (s *Service) GetByID(companyID, id int64) (*Contact, error) {
	dm, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	if dm == nil {
		return nil, apperrors.ErrContactNotFound
	}
	return FromDataModel(dm), nil
}

func (s *Service) Create(companyID int64, dto *ContactDTO) (*Contact, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	kind := dto.Kind
	if kind == "" {
		kind = string(KindCustomer)
	}

	now := time.Now()
	dm := &contactDatamodel.Contact{
		CompanyID: companyID,
		Name:      dto.Name,
		Kind:      kind,
		Email:     dto.Email,
		Phone:     dto.Phone,
		Document:  dto.Document,
		Notes:     dto.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(dm); err != nil {
		s.logger.Error("failed to create contact", "error", err, "company_id", companyID)
		return nil, apperrors.NewPersistenceError(err)
	}

	s.logger.Info("contact created", "contact_id", dm.ID, "company_id", companyID, "name", dto.Name)
	return FromDataModel(dm), nil
}

func (s *Service) Update(companyID, id int64, dto *ContactDTO) (*Contact, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dm, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	if dm == nil {
		return nil, apperrors.ErrContactNotFound
	}

	dm.Name = dto.Name
	if dto.Kind != "" {
		dm.Kind = dto.Kind
	}
	dm.Email = dto.Email
	dm.Phone = dto.Phone
	dm.Document = dto.Document
	dm.Notes = dto.Notes
	if err := s.repo.Update(dm); err != nil {
		s.logger.Error("failed to update contact", "error", err, "contact_id", id)
		return nil, apperrors.NewPersistenceError(err)
	}
	return FromDataModel(dm), nil
}

func (s *Service) Delete(companyID, id int64) error {
	dm, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return apperrors.NewPersistenceError(err)
	}
	if dm == nil {
		return apperrors.ErrContactNotFound
	}

	if err := s.repo.SoftDelete(companyID, id); err != nil {
		s.logger.Error("failed to delete contact", "error", err, "contact_id", id)
		return apperrors.NewPersistenceError(err)
	}
	s.logger.Info("contact deleted", "contact_id", id, "company_id", companyID)
	return nil
}
