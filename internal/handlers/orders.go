package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/favhome/deliveries/internal/logger"
	"github.com/favhome/deliveries/internal/models"
	"go.uber.org/zap"
)

type orderRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Pickup  string `json:"pickup"`
	Drop    string `json:"drop"`
	Items   string `json:"items"`
	Time    string `json:"time"`
	Payment string `json:"payment"`
}

type orderResponse struct {
	Status  string `json:"status"`
	OrderID int64  `json:"order_id"`
	Fee     int    `json:"fee"`
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	order := &models.Order{
		Name:          strings.TrimSpace(req.Name),
		Phone:         strings.TrimSpace(req.Phone),
		Pickup:        strings.TrimSpace(req.Pickup),
		Drop:          strings.TrimSpace(req.Drop),
		Items:         strings.TrimSpace(req.Items),
		PreferredTime: strings.TrimSpace(req.Time),
		Payment:       strings.TrimSpace(req.Payment),
	}

	id, err := h.orderService.CreateOrder(r.Context(), order)
	if err != nil {
		logger.Log.Error("failed to create order", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, orderResponse{Status: "ok", OrderID: id, Fee: order.Fee})
}

// AdminListing returns the combined orders and listings dump for the
// dashboard.
func (h *Handler) AdminListing(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, map[string]any{
		"orders": orders,
		"market": listings,
	})
}

func (h *Handler) PublicOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.GetOrders(r.Context())
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode json response", zap.Error(err))
	}
}
