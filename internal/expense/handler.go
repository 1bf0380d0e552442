package expense

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	apperrors "github.com/heitorcapra/contas-backend/internal"
	"github.com/heitorcapra/contas-backend/internal/transport"
	"github.com/heitorcapra/contas-backend/pkg/logger"
)

type ServiceAPI interface {
	CreateExpense(companyID int64, dto *CreateExpenseDTO) (*Expense, error)
	GetExpense(companyID, id int64) (*Expense, error)
	ListExpenses(companyID int64, limit, offset int) ([]*Expense, error)
	UpdateExpense(companyID, id int64, dto *UpdateExpenseDTO) (*Expense, error)
	DeleteExpense(companyID, id int64) error
	SubmitExpense(companyID, id int64) (*Expense, error)
	CancelExpense(companyID, id int64) (*Expense, error)
	ApplyPayment(companyID, expenseID, installmentID int64, dto *ApplyPaymentDTO) (*Expense, error)
	RevertPayment(companyID, expenseID, installmentID, paymentID int64) (*Expense, error)
	RemoveInstallment(companyID, expenseID, installmentID int64) (*Expense, error)
	RecomputeStatus(companyID, expenseID int64) (*Expense, error)
	Reconcile(companyID, expenseID int64) (*ReconciliationReport, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.companyID(w, r)
	if !ok {
		return
	}

	var dto CreateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateExpense: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exp, err := h.Service.CreateExpense(companyID, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, exp)
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.companyID(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	exp, err := h.Service.GetExpense(companyID, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, exp)
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.companyID(w, r)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, offset = NormalizePage(limit, offset)

	expenses, err := h.Service.ListExpenses(companyID, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"expenses": expenses,
		"limit":    limit,
		"offset":   offset,
	})
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.companyID(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var dto UpdateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateExpense: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exp, err := h.Service.UpdateExpense(companyID, id, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, exp)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.companyID(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.Service.DeleteExpense(companyID, id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) SubmitExpense(w http.ResponseWriter, r *http.Request) {
	h.statusTransition(w, r, h.Service.SubmitExpense)
}

func (h *Handler) CancelExpense(w http.ResponseWriter, r *http.Request) {
	h.statusTransition(w, r, h.Service.CancelExpense)
}

func (h *Handler) RecomputeStatus(w http.ResponseWriter, r *http.Request) {
	h.statusTransition(w, r, h.Service.RecomputeStatus)
}

func (h *Handler) statusTransition(w http.ResponseWriter, r *http.Request, op func(companyID, id int64) (*Expense, error)) {
	companyID, ok := h.companyID(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	exp, err := op(companyID, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, exp)
}

func (h *Handler) GetReconciliation(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.companyID(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	report, err := h.Service.Reconcile(companyID, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) ApplyPayment(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.companyID(w, r)
	if !ok {
		return
	}
	expenseID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	installmentID, ok := h.pathID(w, r, "installmentID")
	if !ok {
		return
	}

	var dto ApplyPaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("ApplyPayment: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exp, err := h.Service.ApplyPayment(companyID, expenseID, installmentID, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, exp)
}

func (h *Handler) RevertPayment(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.companyID(w, r)
	if !ok {
		return
	}
	expenseID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	installmentID, ok := h.pathID(w, r, "installmentID")
	if !ok {
		return
	}
	paymentID, ok := h.pathID(w, r, "paymentID")
	if !ok {
		return
	}

	exp, err := h.Service.RevertPayment(companyID, expenseID, installmentID, paymentID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, exp)
}

func (h *Handler) RemoveInstallment(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.companyID(w, r)
	if !ok {
		return
	}
	expenseID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	installmentID, ok := h.pathID(w, r, "installmentID")
	if !ok {
		return
	}

	exp, err := h.Service.RemoveInstallment(companyID, expenseID, installmentID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, exp)
}

func (h *Handler) companyID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	companyID := apperrors.CompanyIDFromContext(r.Context())
	if companyID == 0 {
		h.Logger.Error("request without company scope", "path", r.URL.Path)
		h.WriteError(w, http.StatusBadRequest, "missing company scope")
		return 0, false
	}
	return companyID, true
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.Logger.Error("invalid path parameter", "param", param, "value", raw)
		h.WriteError(w, http.StatusBadRequest, "invalid "+param)
		return 0, false
	}
	return id, true
}
