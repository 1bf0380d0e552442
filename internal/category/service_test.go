package category_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/heitorcapra/contas-backend/internal"
	"github.com/heitorcapra/contas-backend/internal/category"
	categoryDatamodel "github.com/heitorcapra/contas-backend/internal/core/datamodel/category"
)

func TestCategoryService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Service Suite")
}

type mockCategoryRepository struct {
	categories   map[int64]*categoryDatamodel.ExpenseCategory
	expenseCount map[int64]int64
	nextID       int64
	getError     error
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{
		categories:   make(map[int64]*categoryDatamodel.ExpenseCategory),
		expenseCount: make(map[int64]int64),
		nextID:       1,
	}
}

func (m *mockCategoryRepository) GetAll(companyID int64) ([]*categoryDatamodel.ExpenseCategory, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	result := make([]*categoryDatamodel.ExpenseCategory, 0)
	for _, cat := range m.categories {
		if cat.CompanyID == companyID && cat.DeletedAt == nil {
			result = append(result, cat)
		}
	}
	return result, nil
}

func (m *mockCategoryRepository) GetByID(companyID, id int64) (*categoryDatamodel.ExpenseCategory, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	cat, exists := m.categories[id]
	if !exists || cat.CompanyID != companyID || cat.DeletedAt != nil {
		return nil, nil
	}
	return cat, nil
}

func (m *mockCategoryRepository) Create(cat *categoryDatamodel.ExpenseCategory) error {
	cat.ID = m.nextID
	m.nextID++
	m.categories[cat.ID] = cat
	return nil
}

func (m *mockCategoryRepository) Update(cat *categoryDatamodel.ExpenseCategory) error {
	m.categories[cat.ID] = cat
	return nil
}

func (m *mockCategoryRepository) SoftDelete(companyID, id int64) error {
	if cat, exists := m.categories[id]; exists && cat.CompanyID == companyID {
		now := time.Now()
		cat.DeletedAt = &now
	}
	return nil
}

func (m *mockCategoryRepository) CountExpenses(companyID, id int64) (int64, error) {
	return m.expenseCount[id], nil
}

var _ = Describe("CategoryService", func() {
	const companyID = int64(1)

	var (
		service  *category.Service
		mockRepo *mockCategoryRepository
	)

	BeforeEach(func() {
		mockRepo = newMockCategoryRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = category.NewService(mockRepo, logger)
	})

	Describe("Create", func() {
		It("should create a category scoped to the company", func() {
			result, err := service.Create(companyID, &category.CategoryDTO{Name: "Aluguel", Description: "Office rent"})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.ID).To(BeNumerically(">", 0))
			Expect(result.CompanyID).To(Equal(companyID))
			Expect(result.Name).To(Equal("Aluguel"))
		})

		It("should reject an empty name", func() {
			_, err := service.Create(companyID, &category.CategoryDTO{Name: ""})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetByID", func() {
		It("should return a typed error when not found", func() {
			_, err := service.GetByID(companyID, 99)
			Expect(err).To(Equal(apperrors.ErrCategoryNotFound))
		})

		It("should hide categories of other companies", func() {
			created, err := service.Create(companyID, &category.CategoryDTO{Name: "Impostos"})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.GetByID(companyID+1, created.ID)
			Expect(err).To(Equal(apperrors.ErrCategoryNotFound))
		})
	})

	Describe("Update", func() {
		It("should update name and description", func() {
			created, err := service.Create(companyID, &category.CategoryDTO{Name: "Servicos"})
			Expect(err).ToNot(HaveOccurred())

			updated, err := service.Update(companyID, created.ID, &category.CategoryDTO{Name: "Servicos Gerais", Description: "Outsourced"})
			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Name).To(Equal("Servicos Gerais"))
			Expect(updated.Description).To(Equal("Outsourced"))
		})
	})

	Describe("Delete", func() {
		It("should soft-delete an unused category", func() {
			created, err := service.Create(companyID, &category.CategoryDTO{Name: "Temporaria"})
			Expect(err).ToNot(HaveOccurred())

			Expect(service.Delete(companyID, created.ID)).To(Succeed())
			_, err = service.GetByID(companyID, created.ID)
			Expect(err).To(Equal(apperrors.ErrCategoryNotFound))
		})

		It("should refuse to delete a category still used by expenses", func() {
			created, err := service.Create(companyID, &category.CategoryDTO{Name: "Fornecedores"})
			Expect(err).ToNot(HaveOccurred())
			mockRepo.expenseCount[created.ID] = 3

			err = service.Delete(companyID, created.ID)
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeHasDependents))
		})
	})

	Describe("Exists", func() {
		It("should report active categories only", func() {
			created, err := service.Create(companyID, &category.CategoryDTO{Name: "Frete"})
			Expect(err).ToNot(HaveOccurred())

			exists, err := service.Exists(companyID, created.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(exists).To(BeTrue())

			Expect(service.Delete(companyID, created.ID)).To(Succeed())
			exists, err = service.Exists(companyID, created.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})

	Describe("repository failures", func() {
		It("should wrap database errors without leaking detail", func() {
			mockRepo.getError = errors.New("pq: connection refused")

			_, err := service.GetAll(companyID)
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodePersistenceFailure))
		})
	})
})
