package vendor

import (
	"log/slog"
	"time"

	apperrors "github.com/heitorcapra/contas-backend/internal"
	vendorDatamodel "github.com/heitorcapra/contas-backend/internal/core/datamodel/vendor"
)

type RepositoryAPI interface {
	GetAll(companyID int64) ([]*vendorDatamodel.Vendor, error)
	GetByID(companyID, id int64) (*vendorDatamodel.Vendor, error)
	Create(v *vendorDatamodel.Vendor) error
	Update(v *vendorDatamodel.Vendor) error
	SoftDelete(companyID, id int64) error
	CountExpenses(companyID, id int64) (int64, error)
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

func (s *Service) GetAll(companyID int64) ([]*Vendor, error) {
	dms, err := s.repo.GetAll(companyID)
	if err != nil {
		s.logger.Error("failed to get vendors", "error", err, "company_id", companyID)
		return nil, apperrors.NewPersistenceError(err)
	}

	vendors := make([]*Vendor, 0, len(dms))
	for _, dm := range dms {
		vendors = append(vendors, FromDataModel(dm))
	}
	return vendors, nil
}

func (s *Service) GetByID(companyID, id int64) (*Vendor, error) {
	dm, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	if dm == nil {
		return nil, apperrors.ErrVendorNotFound
	}
	return FromDataModel(dm), nil
}

func (s *Service) Create(companyID int64, dto *VendorDTO) (*Vendor, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	dm := &vendorDatamodel.Vendor{
		CompanyID: companyID,
		Name:      dto.Name,
		TaxID:     dto.TaxID,
		Email:     dto.Email,
		Phone:     dto.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(dm); err != nil {
		s.logger.Error("failed to create vendor", "error", err, "company_id", companyID)
		return nil, apperrors.NewPersistenceError(err)
	}

	s.logger.Info("vendor created", "vendor_id", dm.ID, "company_id", companyID, "name", dto.Name)
	return FromDataModel(dm), nil
}

func (s *Service) Update(companyID, id int64, dto *VendorDTO) (*Vendor, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dm, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	if dm == nil {
		return nil, apperrors.ErrVendorNotFound
	}

	dm.Name = dto.Name
	dm.TaxID = dto.TaxID
	dm.Email = dto.Email
	dm.Phone = dto.Phone
	if err := s.repo.Update(dm); err != nil {
		s.logger.Error("failed to update vendor", "error", err, "vendor_id", id)
		return nil, apperrors.NewPersistenceError(err)
	}
	return FromDataModel(dm), nil
}

// Delete soft-deletes a vendor unless active expenses still reference it.
func (s *Service) Delete(companyID, id int64) error {
	dm, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return apperrors.NewPersistenceError(err)
	}
	if dm == nil {
		return apperrors.ErrVendorNotFound
	}

	count, err := s.repo.CountExpenses(companyID, id)
	if err != nil {
		return apperrors.NewPersistenceError(err)
	}
	if count > 0 {
		return apperrors.NewConflictError("vendor is used by expenses and cannot be removed", apperrors.ErrCodeHasDependents)
	}

	if err := s.repo.SoftDelete(companyID, id); err != nil {
		s.logger.Error("failed to delete vendor", "error", err, "vendor_id", id)
		return apperrors.NewPersistenceError(err)
	}
	s.logger.Info("vendor deleted", "vendor_id", id, "company_id", companyID)
	return nil
}

// Exists reports whether an active vendor with this id exists for the
// company. Used by the expense service as its vendor reference check.
func (s *Service) Exists(companyID, id int64) (bool, error) {
	dm, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return false, err
	}
	return dm != nil, nil
}
