package handlers

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/favhome/deliveries/internal/apperrors"
	"github.com/favhome/deliveries/internal/logger"
	"github.com/favhome/deliveries/internal/models"
	"go.uber.org/zap"
)

//go:embed admin.tmpl
var adminTemplateSrc string

var adminTemplate = template.Must(template.New("admin").Parse(adminTemplateSrc))

type dashboardData struct {
	AdminPath string
	Token     string
	Orders    []models.Order
	Market    []models.Listing
}

// Dashboard renders the hidden admin page. A short-lived session token is
// embedded for the page's action buttons instead of the raw shared key.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.GetOrders(r.Context())
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	listings, err := h.listingService.GetListings(r.Context(), false)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	token, err := h.cred.IssueToken()
	if err != nil {
		logger.Log.Error("failed to issue admin token", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = adminTemplate.Execute(w, dashboardData{
		AdminPath: h.adminPath,
		Token:     token,
		Orders:    orders,
		Market:    listings,
	})
	if err != nil {
		logger.Log.Error("failed to render admin page", zap.Error(err))
	}
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login issues a session token. The shared key itself is checked by the
// AdminOnly middleware before this handler runs.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	token, err := h.cred.IssueToken()
	if err != nil {
		http.Error(w, "could not create token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

func (h *Handler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	h.orderAction(w, r, h.orderService.MarkDelivered)
}

func (h *Handler) ApprovePayment(w http.ResponseWriter, r *http.Request) {
	h.orderAction(w, r, h.orderService.ApprovePayment)
}

func (h *Handler) DisapprovePayment(w http.ResponseWriter, r *http.Request) {
	h.orderAction(w, r, h.orderService.DisapprovePayment)
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	h.orderAction(w, r, h.orderService.DeleteOrder)
}

func (h *Handler) MarkSold(w http.ResponseWriter, r *http.Request) {
	h.listingAction(w, r, h.listingService.MarkSold)
}

func (h *Handler) DeleteListingAdmin(w http.ResponseWriter, r *http.Request) {
	h.listingAction(w, r, h.listingService.DeleteListing)
}

type editRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (h *Handler) EditOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	h.writeActionResult(w, h.orderService.EditField(r.Context(), id, req.Field, req.Value))
}

func (h *Handler) EditListing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	h.writeActionResult(w, h.listingService.EditField(r.Context(), id, req.Field, req.Value))
}

func (h *Handler) orderAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, id int64) error) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	h.writeActionResult(w, action(r.Context(), id))
}

func (h *Handler) listingAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, id int64) error) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	h.writeActionResult(w, action(r.Context(), id))
}

func (h *Handler) writeActionResult(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	case errors.Is(err, apperrors.ErrOrderNotFound), errors.Is(err, apperrors.ErrListingNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, apperrors.ErrInvalidField), errors.Is(err, apperrors.ErrInvalidFieldValue):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		logger.Log.Error("admin action failed", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
