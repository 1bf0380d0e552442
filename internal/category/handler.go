package category

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	apperrors "github.com/heitorcapra/contas-backend/internal"
	"github.com/heitorcapra/contas-backend/internal/transport"
)

type ServiceAPI interface {
	GetAll(companyID int64) ([]*Category, error)
	GetByID(companyID, id int64) (*Category, error)
	Create(companyID int64, dto *CategoryDTO) (*Category, error)
	Update(companyID, id int64, dto *CategoryDTO) (*Category, error)
	Delete(companyID, id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	companyID := apperrors.CompanyIDFromContext(r.Context())
	if companyID == 0 {
		h.WriteError(w, http.StatusBadRequest, "missing company scope")
		return
	}

	categories, err := h.Service.GetAll(companyID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, CategoriesResponse{Categories: categories})
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	companyID, id, ok := h.scope(w, r)
	if !ok {
		return
	}

	cat, err := h.Service.GetByID(companyID, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, cat)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	companyID := apperrors.CompanyIDFromContext(r.Context())
	if companyID == 0 {
		h.WriteError(w, http.StatusBadRequest, "missing company scope")
		return
	}

	var dto CategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cat, err := h.Service.Create(companyID, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, cat)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	companyID, id, ok := h.scope(w, r)
	if !ok {
		return
	}

	var dto CategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cat, err := h.Service.Update(companyID, id, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, cat)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	companyID, id, ok := h.scope(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(companyID, id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) scope(w http.ResponseWriter, r *http.Request) (companyID, id int64, ok bool) {
	companyID = apperrors.CompanyIDFromContext(r.Context())
	if companyID == 0 {
		h.WriteError(w, http.StatusBadRequest, "missing company scope")
		return 0, 0, false
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		h.WriteError(w, http.StatusBadRequest, "invalid category ID")
		return 0, 0, false
	}
	return companyID, id, true
}
