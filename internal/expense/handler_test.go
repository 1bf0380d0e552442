package expense_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/heitorcapra/contas-backend/internal"
	"github.com/heitorcapra/contas-backend/internal/expense"
)

// listOnlyService records the pagination forwarded by the handler.
type listOnlyService struct {
	expense.ServiceAPI

	gotLimit  int
	gotOffset int
}

func (s *listOnlyService) ListExpenses(companyID int64, limit, offset int) ([]*expense.Expense, error) {
	s.gotLimit = limit
	s.gotOffset = offset
	return []*expense.Expense{}, nil
}

var _ = Describe("Expense Handler", func() {
	const companyID = int64(1)

	var (
		service *listOnlyService
		handler *expense.Handler
	)

	BeforeEach(func() {
		service = &listOnlyService{}
		handler = expense.NewHandler(service)
	})

	listRequest := func(target string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		return req.WithContext(apperrors.ContextWithCompanyID(req.Context(), companyID))
	}

	Describe("ListExpenses pagination", func() {
		It("should echo the effective limit when the query asks for zero", func() {
			w := httptest.NewRecorder()
			handler.ListExpenses(w, listRequest("/expenses?limit=0&offset=-5"))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(service.gotLimit).To(Equal(20))
			Expect(service.gotOffset).To(Equal(0))

			var body map[string]json.RawMessage
			Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())

			var limit, offset int
			Expect(json.Unmarshal(body["limit"], &limit)).To(Succeed())
			Expect(json.Unmarshal(body["offset"], &offset)).To(Succeed())
			Expect(limit).To(Equal(20))
			Expect(offset).To(Equal(0))
		})

		It("should cap an oversized limit at the default page size", func() {
			w := httptest.NewRecorder()
			handler.ListExpenses(w, listRequest("/expenses?limit=500&offset=40"))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(service.gotLimit).To(Equal(20))
			Expect(service.gotOffset).To(Equal(40))
		})

		It("should pass through an in-range limit and offset unchanged", func() {
			w := httptest.NewRecorder()
			handler.ListExpenses(w, listRequest("/expenses?limit=50&offset=10"))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(service.gotLimit).To(Equal(50))
			Expect(service.gotOffset).To(Equal(10))
		})
	})
})
