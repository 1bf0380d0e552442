package category_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	apperrors "github.com/heitorcapra/contas-backend/internal"
	"github.com/heitorcapra/contas-backend/internal/category"
	categoryPostgres "github.com/heitorcapra/contas-backend/internal/category/postgres"
	categoryDatamodel "github.com/heitorcapra/contas-backend/internal/core/datamodel/category"
	expenseDatamodel "github.com/heitorcapra/contas-backend/internal/core/datamodel/expense"
	"github.com/heitorcapra/contas-backend/internal/transport"
)

var _ = Describe("Category Handler Integration", func() {
	const companyID = int64(1)

	var (
		db      *gorm.DB
		repo    category.RepositoryAPI
		service *category.Service
		handler *category.Handler
	)

	scopedRequest := func(method, target string, body string) *http.Request {
		var req *http.Request
		if body != "" {
			req = httptest.NewRequest(method, target, strings.NewReader(body))
		} else {
			req = httptest.NewRequest(method, target, nil)
		}
		ctx := apperrors.ContextWithCompanyID(req.Context(), companyID)
		return req.WithContext(ctx)
	}

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&categoryDatamodel.ExpenseCategory{}, &expenseDatamodel.Expense{})
		Expect(err).NotTo(HaveOccurred())

		repo = categoryPostgres.NewCategoryRepository(db)
		service = category.NewService(repo, slogger)
		handler = category.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		seed := []*categoryDatamodel.ExpenseCategory{
			{CompanyID: companyID, Name: "Aluguel", Description: "Office rent"},
			{CompanyID: companyID, Name: "Impostos", Description: "Taxes"},
			{CompanyID: companyID + 1, Name: "Outra Empresa", Description: "Belongs elsewhere"},
		}
		for _, cat := range seed {
			Expect(repo.Create(cat)).To(Succeed())
		}
	})

	Describe("GET /categories", func() {
		It("should list only the scoped company's categories", func() {
			w := httptest.NewRecorder()
			handler.GetCategories(w, scopedRequest(http.MethodGet, "/categories", ""))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

			var response category.CategoriesResponse
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())

			names := make([]string, len(response.Categories))
			for i, cat := range response.Categories {
				names[i] = cat.Name
			}
			Expect(names).To(ConsistOf("Aluguel", "Impostos"))
		})

		It("should reject a request without company scope", func() {
			req := httptest.NewRequest(http.MethodGet, "/categories", nil)
			w := httptest.NewRecorder()

			handler.GetCategories(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /categories", func() {
		It("should create a category and return 201", func() {
			w := httptest.NewRecorder()
			handler.CreateCategory(w, scopedRequest(http.MethodPost, "/categories", `{"name":"Servicos","description":"Outsourced"}`))

			Expect(w.Code).To(Equal(http.StatusCreated))

			var created category.Category
			Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.CompanyID).To(Equal(companyID))
		})

		It("should return 400 for a missing name", func() {
			w := httptest.NewRecorder()
			handler.CreateCategory(w, scopedRequest(http.MethodPost, "/categories", `{"description":"no name"}`))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 400 for a malformed body", func() {
			w := httptest.NewRecorder()
			handler.CreateCategory(w, scopedRequest(http.MethodPost, "/categories", `{not json`))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
