package vendor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	apperrors "github.com/heitorcapra/contas-backend/internal"
	"github.com/heitorcapra/contas-backend/internal/transport"
)

type ServiceAPI interface {
	GetAll(companyID int64) ([]*Vendor, error)
	GetByID(companyID, id int64) (*Vendor, error)
	Create(companyID int64, dto *VendorDTO) (*Vendor, error)
	Update(companyID, id int64, dto *VendorDTO) (*Vendor, error)
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

func (h *Handler) GetVendors(w http.ResponseWriter, r *http.Request) {
	companyID := apperrors.CompanyIDFromContext(r.Context())
	if companyID == 0 {
		h.WriteError(w, http.StatusBadRequest, "missing company scope")
		return
	}

	vendors, err := h.Service.GetAll(companyID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, VendorsResponse{Vendors: vendors})
}

func (h *Handler) GetVendor(w http.ResponseWriter, r *http.Request) {
	companyID, id, ok := h.scope(w, r)
	if !ok {
		return
	}

	v, err := h.Service.GetByID(companyID, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	companyID := apperrors.CompanyIDFromContext(r.Context())
	if companyID == 0 {
		h.WriteError(w, http.StatusBadRequest, "missing company scope")
		return
	}

	var dto VendorDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v, err := h.Service.Create(companyID, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, v)
}

func (h *Handler) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	companyID, id, ok := h.scope(w, r)
	if !ok {
		return
	}

	var dto VendorDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v, err := h.Service.Update(companyID, id, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) DeleteVendor(w http.ResponseWriter, r *http.Request) {
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
		h.WriteError(w, http.StatusBadRequest, "invalid vendor ID")
		return 0, 0, false
	}
	return companyID, id, true
}
