package category

import (
	"log/slog"

	apperrors "github.com/heitorcapra/contas-backend/internal"
	categoryDatamodel "github.com/heitorcapra/contas-backend/internal/core/datamodel/category"
)

type RepositoryAPI interface {
	GetAll(companyID int64) ([]*categoryDatamodel.ExpenseCategory, error)
	GetByID(companyID, id int64) (*categoryDatamodel.ExpenseCategory, error)
	Create(cat *categoryDatamodel.ExpenseCategory) error
	Update(cat *categoryDatamodel.ExpenseCategory) error
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

func (s *Service) GetAll(companyID int64) ([]*Category, error) {
	dms, err := s.repo.GetAll(companyID)
	if err != nil {
		s.logger.Error("failed to get categories", "error", err, "company_id", companyID)
		return nil, apperrors.NewPersistenceError(err)
	}

	categories := make([]*Category, 0, len(dms))
	for _, dm := range dms {
		categories = append(categories, FromDataModel(dm))
	}
	return categories, nil
}

func (s *Service) GetByID(companyID, id int64) (*Category, error) {
	dm, err := s.repo.GetByID(companyID, id)
	if err != nil {
		s.logger.Error("failed to get category", "error", err, "category_id", id)
		return nil, apperrors.NewPersistenceError(err)
	}
	if dm == nil {
		return nil, apperrors.ErrCategoryNotFound
	}
	return FromDataModel(dm), nil
}

func (s *Service) Create(companyID int64, dto *CategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	cat := NewCategory(companyID, dto.Name, dto.Description)
	dm := ToDataModel(cat)
	if err := s.repo.Create(dm); err != nil {
		s.logger.Error("failed to create category", "error", err, "company_id", companyID)
		return nil, apperrors.NewPersistenceError(err)
	}

	s.logger.Info("category created", "category_id", dm.ID, "company_id", companyID, "name", dto.Name)
	return FromDataModel(dm), nil
}

func (s *Service) Update(companyID, id int64, dto *CategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dm, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	if dm == nil {
		return nil, apperrors.ErrCategoryNotFound
	}

	dm.Name = dto.Name
	dm.Description = dto.Description
	if err := s.repo.Update(dm); err != nil {
		s.logger.Error("failed to update category", "error", err, "category_id", id)
		return nil, apperrors.NewPersistenceError(err)
	}
	return FromDataModel(dm), nil
}

// Delete soft-deletes a category. A category still referenced by active
// expenses cannot be removed.
func (s *Service) Delete(companyID, id int64) error {
	dm, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return apperrors.NewPersistenceError(err)
	}
	if dm == nil {
		return apperrors.ErrCategoryNotFound
	}

	count, err := s.repo.CountExpenses(companyID, id)
	if err != nil {
		return apperrors.NewPersistenceError(err)
	}
	if count > 0 {
		return apperrors.NewConflictError("category is used by expenses and cannot be removed", apperrors.ErrCodeHasDependents)
	}

	if err := s.repo.SoftDelete(companyID, id); err != nil {
		s.logger.Error("failed to delete category", "error", err, "category_id", id)
		return apperrors.NewPersistenceError(err)
	}
	s.logger.Info("category deleted", "category_id", id, "company_id", companyID)
	return nil
}

// Exists reports whether an active category with this id exists for the
// company. Used by the expense service as its category reference check.
func (s *Service) Exists(companyID, id int64) (bool, error) {
	dm, err := s.repo.GetByID(companyID, id)
	if err != nil {
		return false, err
	}
	return dm != nil, nil
}
