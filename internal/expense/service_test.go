package expense_test

import (
	"errors"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/heitorcapra/contas-backend/internal"
	"github.com/heitorcapra/contas-backend/internal/core/events"
	"github.com/heitorcapra/contas-backend/internal/core/money"
	"github.com/heitorcapra/contas-backend/internal/expense"
)

// Mock repository for testing
type mockExpenseRepository struct {
	expenses      map[int64]*expense.Expense
	nextID        int64
	nextPaymentID int64
	createError   error
	updateError   error
	statusWrites  int
}

func newMockExpenseRepository() *mockExpenseRepository {
	return &mockExpenseRepository{
		expenses:      make(map[int64]*expense.Expense),
		nextID:        1,
		nextPaymentID: 1,
	}
}

func (m *mockExpenseRepository) Create(exp *expense.Expense) error {
	if m.createError != nil {
		return m.createError
	}
	exp.ID = m.nextID
	m.nextID++
	for idx := range exp.Items {
		exp.Items[idx].ID = m.nextID
		exp.Items[idx].ExpenseID = exp.ID
		m.nextID++
	}
	for idx := range exp.Installments {
		exp.Installments[idx].ID = m.nextID
		exp.Installments[idx].ExpenseID = exp.ID
		m.nextID++
	}
	exp.CreatedAt = time.Now()
	exp.UpdatedAt = time.Now()
	m.expenses[exp.ID] = exp
	return nil
}

func (m *mockExpenseRepository) GetByID(companyID, id int64) (*expense.Expense, error) {
	exp, exists := m.expenses[id]
	if !exists || exp.CompanyID != companyID {
		return nil, apperrors.ErrExpenseNotFound
	}
	return exp, nil
}

func (m *mockExpenseRepository) List(companyID int64, limit, offset int) ([]*expense.Expense, error) {
	result := make([]*expense.Expense, 0)
	for _, exp := range m.expenses {
		if exp.CompanyID == companyID {
			result = append(result, exp)
		}
	}
	return result, nil
}

func (m *mockExpenseRepository) Update(exp *expense.Expense) error {
	if m.updateError != nil {
		return m.updateError
	}
	exp.UpdatedAt = time.Now()
	m.expenses[exp.ID] = exp
	return nil
}

func (m *mockExpenseRepository) UpdateStatus(exp *expense.Expense) error {
	m.statusWrites++
	m.expenses[exp.ID] = exp
	return nil
}

func (m *mockExpenseRepository) SoftDelete(companyID, id int64) error {
	delete(m.expenses, id)
	return nil
}

func (m *mockExpenseRepository) AddPayment(exp *expense.Expense, inst *expense.Installment, payment *expense.Payment) error {
	payment.ID = m.nextPaymentID
	m.nextPaymentID++
	m.expenses[exp.ID] = exp
	return nil
}

func (m *mockExpenseRepository) RevertPayment(exp *expense.Expense, inst *expense.Installment, payment *expense.Payment) error {
	m.expenses[exp.ID] = exp
	return nil
}

func (m *mockExpenseRepository) RemoveInstallment(exp *expense.Expense, removed *expense.Installment) error {
	m.expenses[exp.ID] = exp
	return nil
}

// Mock reference checker for vendors, categories and accounts
type mockChecker struct {
	existing map[int64]bool
	err      error
}

func newMockChecker(ids ...int64) *mockChecker {
	existing := make(map[int64]bool)
	for _, id := range ids {
		existing[id] = true
	}
	return &mockChecker{existing: existing}
}

func (m *mockChecker) Exists(companyID, id int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.existing[id], nil
}

var _ = Describe("ExpenseService", func() {
	const companyID = int64(1)

	var (
		service    *expense.Service
		mockRepo   *mockExpenseRepository
		vendors    *mockChecker
		categories *mockChecker
		accounts   *mockChecker
		logger     *slog.Logger
	)

	newCreateDTO := func() *expense.CreateExpenseDTO {
		return &expense.CreateExpenseDTO{
			VendorID:       10,
			CategoryID:     20,
			Description:    "Compra de mercadoria",
			CompetenceDate: time.Now(),
			Items: []expense.ExpenseItemDTO{
				{Name: "Mercadoria", Quantity: money.MustFromString("3"), UnitPrice: money.MustFromString("100.00")},
			},
			Installments: []expense.InstallmentDTO{
				{Number: 1, DueDate: time.Now().AddDate(0, 1, 0), Amount: money.MustFromString("150.00")},
				{Number: 2, DueDate: time.Now().AddDate(0, 2, 0), Amount: money.MustFromString("150.00")},
			},
		}
	}

	paymentDTO := func(amount string) *expense.ApplyPaymentDTO {
		return &expense.ApplyPaymentDTO{
			AccountID: 30,
			PaidAt:    time.Now().Add(-time.Hour),
			Amount:    money.MustFromString(amount),
			Method:    "PIX",
		}
	}

	BeforeEach(func() {
		mockRepo = newMockExpenseRepository()
		vendors = newMockChecker(10)
		categories = newMockChecker(20)
		accounts = newMockChecker(30)
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus := events.NewEventBus(logger)
		service = expense.NewService(mockRepo, vendors, categories, accounts, bus, logger)
	})

	Describe("CreateExpense", func() {
		It("should derive the total from the items and start OPEN", func() {
			result, err := service.CreateExpense(companyID, newCreateDTO())

			Expect(err).ToNot(HaveOccurred())
			Expect(result.ID).To(BeNumerically(">", 0))
			Expect(money.Format(result.TotalNet)).To(Equal("300.00"))
			Expect(result.Status).To(Equal(expense.StatusOpen))
			Expect(result.Installments).To(HaveLen(2))
			Expect(result.Installments[0].Number).To(Equal(1))
			Expect(result.Installments[1].Number).To(Equal(2))
		})

		It("should normalize non-contiguous installment numbers preserving order", func() {
			dto := newCreateDTO()
			dto.Installments = []expense.InstallmentDTO{
				{Number: 5, DueDate: time.Now().AddDate(0, 2, 0), Amount: money.MustFromString("150.00")},
				{Number: 2, DueDate: time.Now().AddDate(0, 1, 0), Amount: money.MustFromString("150.00")},
			}

			result, err := service.CreateExpense(companyID, dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Installments[0].Number).To(Equal(1))
			Expect(money.Format(result.Installments[0].Amount)).To(Equal("150.00"))
			Expect(result.Installments[1].Number).To(Equal(2))
		})

		It("should create drafts when requested", func() {
			dto := newCreateDTO()
			dto.Draft = true

			result, err := service.CreateExpense(companyID, dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(expense.StatusDraft))
		})

		It("should reject an unknown vendor", func() {
			dto := newCreateDTO()
			dto.VendorID = 99

			_, err := service.CreateExpense(companyID, dto)
			Expect(err).To(Equal(apperrors.ErrVendorNotFound))
		})

		It("should reject an unknown category", func() {
			dto := newCreateDTO()
			dto.CategoryID = 99

			_, err := service.CreateExpense(companyID, dto)
			Expect(err).To(Equal(apperrors.ErrCategoryNotFound))
		})

		It("should reject an expense without items", func() {
			dto := newCreateDTO()
			dto.Items = nil

			_, err := service.CreateExpense(companyID, dto)
			Expect(err).To(HaveOccurred())
		})

		It("should reject an expense without installments", func() {
			dto := newCreateDTO()
			dto.Installments = nil

			_, err := service.CreateExpense(companyID, dto)
			Expect(err).To(HaveOccurred())
		})

		It("should wrap repository failures without leaking detail", func() {
			mockRepo.createError = errors.New("pq: connection refused")

			_, err := service.CreateExpense(companyID, newCreateDTO())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodePersistenceFailure))
			Expect(appErr.Message).ToNot(ContainSubstring("pq:"))
		})
	})

	Describe("ApplyPayment", func() {
		var exp *expense.Expense

		BeforeEach(func() {
			var err error
			exp, err = service.CreateExpense(companyID, newCreateDTO())
			Expect(err).ToNot(HaveOccurred())
		})

		It("should pay installments one by one until the expense is PAID", func() {
			first := exp.Installments[0].ID
			second := exp.Installments[1].ID

			result, err := service.ApplyPayment(companyID, exp.ID, first, paymentDTO("150.00"))
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(expense.StatusPartiallyPaid))

			result, err = service.ApplyPayment(companyID, exp.ID, second, paymentDTO("150.00"))
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(expense.StatusPaid))
		})

		It("should leave the expense OPEN -> PARTIALLY_PAID on a partial payment", func() {
			result, err := service.ApplyPayment(companyID, exp.ID, exp.Installments[0].ID, paymentDTO("50.00"))

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Installments[0].Status).To(Equal(expense.InstallmentPartial))
			Expect(result.Status).To(Equal(expense.StatusPartiallyPaid))
		})

		It("should reject a payment exceeding the remaining balance", func() {
			inst := exp.Installments[0].ID
			_, err := service.ApplyPayment(companyID, exp.ID, inst, paymentDTO("100.00"))
			Expect(err).ToNot(HaveOccurred())

			_, err = service.ApplyPayment(companyID, exp.ID, inst, paymentDTO("50.01"))
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeAmountExceedsRemaining))

			stored, err := service.GetExpense(companyID, exp.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(money.Format(stored.Installments[0].PaidAmount())).To(Equal("100.00"))
		})

		It("should reject payments on a draft expense", func() {
			dto := newCreateDTO()
			dto.Draft = true
			draft, err := service.CreateExpense(companyID, dto)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.ApplyPayment(companyID, draft.ID, draft.Installments[0].ID, paymentDTO("50.00"))
			Expect(err).To(HaveOccurred())
		})

		It("should reject an unknown account", func() {
			dto := paymentDTO("50.00")
			dto.AccountID = 99

			_, err := service.ApplyPayment(companyID, exp.ID, exp.Installments[0].ID, dto)
			Expect(err).To(Equal(apperrors.ErrAccountNotFound))
		})

		It("should fail for an installment of another expense", func() {
			_, err := service.ApplyPayment(companyID, exp.ID, 9999, paymentDTO("50.00"))
			Expect(err).To(Equal(apperrors.ErrInstallmentNotFound))
		})
	})

	Describe("RevertPayment", func() {
		It("should roll the expense status back", func() {
			exp, err := service.CreateExpense(companyID, newCreateDTO())
			Expect(err).ToNot(HaveOccurred())
			inst := exp.Installments[0].ID

			paid, err := service.ApplyPayment(companyID, exp.ID, inst, paymentDTO("150.00"))
			Expect(err).ToNot(HaveOccurred())
			Expect(paid.Status).To(Equal(expense.StatusPartiallyPaid))
			paymentID := paid.Installments[0].Payments[0].ID

			result, err := service.RevertPayment(companyID, exp.ID, inst, paymentID)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Installments[0].Status).To(Equal(expense.InstallmentPending))
			Expect(result.Status).To(Equal(expense.StatusOpen))
		})
	})

	Describe("SubmitExpense", func() {
		It("should move a draft into the OPEN ledger", func() {
			dto := newCreateDTO()
			dto.Draft = true
			draft, err := service.CreateExpense(companyID, dto)
			Expect(err).ToNot(HaveOccurred())

			result, err := service.SubmitExpense(companyID, draft.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(expense.StatusOpen))
		})

		It("should reject submitting twice", func() {
			dto := newCreateDTO()
			dto.Draft = true
			draft, err := service.CreateExpense(companyID, dto)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.SubmitExpense(companyID, draft.ID)
			Expect(err).ToNot(HaveOccurred())
			_, err = service.SubmitExpense(companyID, draft.ID)
			Expect(err).To(Equal(apperrors.ErrInvalidExpenseStatus))
		})
	})

	Describe("CancelExpense", func() {
		It("should cancel unpaid installments and keep paid ones", func() {
			exp, err := service.CreateExpense(companyID, newCreateDTO())
			Expect(err).ToNot(HaveOccurred())

			_, err = service.ApplyPayment(companyID, exp.ID, exp.Installments[0].ID, paymentDTO("150.00"))
			Expect(err).ToNot(HaveOccurred())

			result, err := service.CancelExpense(companyID, exp.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(expense.StatusCancelled))
			Expect(result.Installments[0].Status).To(Equal(expense.InstallmentPaid))
			Expect(result.Installments[1].Status).To(Equal(expense.InstallmentCancelled))
		})
	})

	Describe("UpdateExpense", func() {
		updateDTO := func() *expense.UpdateExpenseDTO {
			return &expense.UpdateExpenseDTO{
				VendorID:       10,
				CategoryID:     20,
				Description:    "Compra revisada",
				CompetenceDate: time.Now(),
				Items: []expense.ExpenseItemDTO{
					{Name: "Mercadoria", Quantity: money.MustFromString("2"), UnitPrice: money.MustFromString("100.00")},
				},
				Installments: []expense.InstallmentDTO{
					{Number: 1, DueDate: time.Now().AddDate(0, 1, 0), Amount: money.MustFromString("200.00")},
				},
			}
		}

		It("should replace items and installments and re-derive the total", func() {
			exp, err := service.CreateExpense(companyID, newCreateDTO())
			Expect(err).ToNot(HaveOccurred())

			result, err := service.UpdateExpense(companyID, exp.ID, updateDTO())
			Expect(err).ToNot(HaveOccurred())
			Expect(money.Format(result.TotalNet)).To(Equal("200.00"))
			Expect(result.Installments).To(HaveLen(1))
		})

		It("should refuse to rewrite an expense that has payments", func() {
			exp, err := service.CreateExpense(companyID, newCreateDTO())
			Expect(err).ToNot(HaveOccurred())
			_, err = service.ApplyPayment(companyID, exp.ID, exp.Installments[0].ID, paymentDTO("50.00"))
			Expect(err).ToNot(HaveOccurred())

			_, err = service.UpdateExpense(companyID, exp.ID, updateDTO())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeHasDependents))
		})
	})

	Describe("RemoveInstallment", func() {
		It("should renumber the survivors and keep the expense status current", func() {
			dto := newCreateDTO()
			dto.Installments = append(dto.Installments, expense.InstallmentDTO{
				Number: 3, DueDate: time.Now().AddDate(0, 3, 0), Amount: money.MustFromString("100.00"),
			})
			exp, err := service.CreateExpense(companyID, dto)
			Expect(err).ToNot(HaveOccurred())

			result, err := service.RemoveInstallment(companyID, exp.ID, exp.Installments[1].ID)
			Expect(err).ToNot(HaveOccurred())

			active := result.ActiveInstallments()
			Expect(active).To(HaveLen(2))
			Expect(active[0].Number).To(Equal(1))
			Expect(active[1].Number).To(Equal(2))
		})

		It("should refuse to remove an installment with payments", func() {
			exp, err := service.CreateExpense(companyID, newCreateDTO())
			Expect(err).ToNot(HaveOccurred())
			inst := exp.Installments[0].ID
			_, err = service.ApplyPayment(companyID, exp.ID, inst, paymentDTO("50.00"))
			Expect(err).ToNot(HaveOccurred())

			_, err = service.RemoveInstallment(companyID, exp.ID, inst)
			Expect(err).To(Equal(apperrors.ErrInstallmentHasPayments))
		})
	})

	Describe("RecomputeStatus", func() {
		It("should persist only when the status actually changes", func() {
			exp, err := service.CreateExpense(companyID, newCreateDTO())
			Expect(err).ToNot(HaveOccurred())

			writesBefore := mockRepo.statusWrites
			result, err := service.RecomputeStatus(companyID, exp.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(expense.StatusOpen))
			Expect(mockRepo.statusWrites).To(Equal(writesBefore))
		})
	})

	Describe("Reconcile", func() {
		It("should flag an expense whose installments drifted from the total", func() {
			dto := newCreateDTO()
			dto.Installments = []expense.InstallmentDTO{
				{Number: 1, DueDate: time.Now().AddDate(0, 1, 0), Amount: money.MustFromString("90.00")},
			}
			exp, err := service.CreateExpense(companyID, dto)
			Expect(err).ToNot(HaveOccurred())

			report, err := service.Reconcile(companyID, exp.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(report.IsValid).To(BeFalse())
			Expect(report.Differences).To(HaveLen(1))
		})
	})

	Describe("tenancy", func() {
		It("should hide expenses of other companies", func() {
			exp, err := service.CreateExpense(companyID, newCreateDTO())
			Expect(err).ToNot(HaveOccurred())

			_, err = service.GetExpense(companyID+1, exp.ID)
			Expect(err).To(Equal(apperrors.ErrExpenseNotFound))
		})
	})
})
