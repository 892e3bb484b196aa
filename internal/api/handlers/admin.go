package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/manacart/manacart/internal/api/response"
	"github.com/manacart/manacart/internal/checkout"
	"github.com/manacart/manacart/internal/storage"
	"github.com/manacart/manacart/internal/storage/models"
	"github.com/manacart/manacart/internal/storage/repository"
)

// AdminHandler handles the key-protected back-office surface.
type AdminHandler struct {
	checkout  *checkout.Service
	discounts repository.DiscountRepository
	backups   *storage.BackupManager
}

// NewAdminHandler creates a new AdminHandler. backups may be nil when the
// database has no on-disk file to back up.
func NewAdminHandler(svc *checkout.Service, discounts repository.DiscountRepository, backups *storage.BackupManager) *AdminHandler {
	return &AdminHandler{checkout: svc, discounts: discounts, backups: backups}
}

// ListOrders returns recent orders across all users, optionally filtered
// by status.
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.BadRequest(w, errors.New("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	orders, err := h.checkout.ListOrders(r.Context(), status, limit)
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	response.Success(w, orders)
}

// GetOrder returns any order with its lines.
func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, lines, err := h.checkout.GetOrder(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		writeCheckoutError(w, err)
		return
	}
	response.Success(w, OrderResponse{Order: order, Lines: lines})
}

// FulfillOrder marks a paid order shipped.
func (h *AdminHandler) FulfillOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.checkout.Fulfill(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		writeCheckoutError(w, err)
		return
	}
	response.Success(w, order)
}

// CreateDiscountRequest issues a new percent-off code.
type CreateDiscountRequest struct {
	Code      string     `json:"code"`
	Percent   int        `json:"percent"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// CreateDiscount creates a discount code. Codes are stored uppercase and
// matched case-insensitively at checkout.
func (h *AdminHandler) CreateDiscount(w http.ResponseWriter, r *http.Request) {
	var req CreateDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		response.BadRequest(w, errors.New("code is required"))
		return
	}
	if req.Percent <= 0 || req.Percent > 100 {
		response.BadRequest(w, errors.New("percent must be between 1 and 100"))
		return
	}

	existing, err := h.discounts.GetByCode(r.Context(), code)
	if err != nil {
		response.InternalError(w, err)
		return
	}
	if existing != nil {
		response.Conflict(w, errors.New("discount code already exists"))
		return
	}

	discount := &models.DiscountCode{
		Code:      code,
		Percent:   req.Percent,
		Active:    true,
		ExpiresAt: req.ExpiresAt,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.discounts.Create(r.Context(), discount); err != nil {
		response.InternalError(w, err)
		return
	}
	response.Created(w, discount)
}

// ListDiscounts returns all discount codes.
func (h *AdminHandler) ListDiscounts(w http.ResponseWriter, r *http.Request) {
	codes, err := h.discounts.List(r.Context())
	if err != nil {
		response.InternalError(w, err)
		return
	}
	response.Success(w, codes)
}

// CreateBackup snapshots the database and returns the backup path.
func (h *AdminHandler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	if h.backups == nil {
		response.ServiceUnavailable(w, errors.New("backups are not configured"))
		return
	}
	path, err := h.backups.Backup()
	if err != nil {
		response.InternalError(w, err)
		return
	}
	response.Created(w, map[string]string{"path": path})
}

// DeactivateDiscount retires a code. Orders that already used it keep
// their frozen totals.
func (h *AdminHandler) DeactivateDiscount(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(chi.URLParam(r, "code"))
	if err := h.discounts.Deactivate(r.Context(), code); err != nil {
		response.NotFound(w, err)
		return
	}
	response.NoContent(w)
}
