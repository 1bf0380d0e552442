package account

import (
	"log/slog"
	"time"

	apperrors "github.com/heitorcapra/contas-backend/internal"
	accountDatamodel "github.com/heitorcapra/contas-backend/internal/core/datamodel/account"
)

type RepositoryAPI interface {
	GetAll(companyID int64) ([]*accountDatamodel.Account, error)
	GetByID(companyID, id int64) (*accountDatamodel.Account, error)
	Create(a *accountDatamodel.Account) error
	Update(a *accountDatamodel.Account) error
	SoftDelete(companyID, id int64) error
	CountChildren(companyID, id int64) (int64, error)
	CountPayments(companyID, id int64) (int64, error)
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

func (s *Service) GetAll(companyID int64) ([]*Account, error) {
	dms, err := s.repo.GetAll(companyID)
	if err != nil {
		s.logger.Error("failed to get accounts", "error", err, "company_id", companyID)
		return nil, apperrors.NewPersistenceError(err)
	}

	accounts := make([]*Account, 0, len(dms))
	for _, dm := range dms {
		accounts = append(accounts, FromDataModel(dm))
	}
	return accounts, nil
}

func (s *Service) GetByID(companyID, id int64) (*Account, error) {
	dm, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	if dm == nil {
		return nil, apperrors.ErrAccountNotFound
	}
	return FromDataModel(dm), nil
}

func (s *Service) Create(companyID int64, dto *AccountDTO) (*Account, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkParent(companyID, dto.ParentID); err != nil {
		return nil, err
	}

	now := time.Now()
	dm := &accountDatamodel.Account{
		CompanyID: companyID,
		ParentID:  dto.ParentID,
		Name:      dto.Name,
		Kind:      dto.Kind,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(dm); err != nil {
		s.logger.Error("failed to create account", "error", err, "company_id", companyID)
		return nil, apperrors.NewPersistenceError(err)
	}

	s.logger.Info("account created", "account_id", dm.ID, "company_id", companyID, "name", dto.Name)
	return FromDataModel(dm), nil
}

func (s *Service) Update(companyID, id int64, dto *AccountDTO) (*Account, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dm, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	if dm == nil {
		return nil, apperrors.ErrAccountNotFound
	}

	if dto.ParentID != nil && *dto.ParentID == id {
		return nil, apperrors.NewValidationFieldError("parent_id", "account cannot be its own parent", apperrors.ErrCodeValidationFailed)
	}
	if err := s.checkParent(companyID, dto.ParentID); err != nil {
		return nil, err
	}

	dm.Name = dto.Name
	dm.Kind = dto.Kind
	dm.ParentID = dto.ParentID
	if err := s.repo.Update(dm); err != nil {
		s.logger.Error("failed to update account", "error", err, "account_id", id)
		return nil, apperrors.NewPersistenceError(err)
	}
	return FromDataModel(dm), nil
}

// Delete soft-deletes an account. An account with child accounts, or one
// that payments were booked against, cannot be removed.
func (s *Service) Delete(companyID, id int64) error {
	dm, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return apperrors.NewPersistenceError(err)
	}
	if dm == nil {
		return apperrors.ErrAccountNotFound
	}

	children, err := s.repo.CountChildren(companyID, id)
	if err != nil {
		return apperrors.NewPersistenceError(err)
	}
	payments, err := s.repo.CountPayments(companyID, id)
	if err != nil {
		return apperrors.NewPersistenceError(err)
	}
	if children > 0 || payments > 0 {
		return apperrors.ErrAccountHasDependents
	}

	if err := s.repo.SoftDelete(companyID, id); err != nil {
		s.logger.Error("failed to delete account", "error", err, "account_id", id)
		return apperrors.NewPersistenceError(err)
	}
	s.logger.Info("account deleted", "account_id", id, "company_id", companyID)
	return nil
}

// Exists reports whether an active account with this id exists for the
// company. Used by the expense service as its payment account check.
func (s *Service) Exists(companyID, id int64) (bool, error) {
	dm, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return false, err
	}
	return dm != nil, nil
}

func (s *Service) checkParent(companyID int64, parentID *int64) error {
	if parentID == nil {
		return nil
	}
	parent, err := s.repo.GetByID(companyID, *parentID)
	if err != nil {
		return apperrors.NewPersistenceError(err)
	}
	if parent == nil {
		return apperrors.NewValidationFieldError("parent_id", "parent account does not exist", apperrors.ErrCodeValidationFailed)
	}
	return nil
}
