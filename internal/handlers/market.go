package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/favhome/deliveries/internal/apperrors"
	"github.com/favhome/deliveries/internal/logger"
	"github.com/favhome/deliveries/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type listingRequest struct {
	SellerName  string `json:"sellerName"`
	Phone       string `json:"phone"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Payment     string `json:"payment"`
	Image       string `json:"image"`
}

type listingResponse struct {
	Status   string `json:"status"`
	MarketID int64  `json:"market_id"`
}

func (h *Handler) CreateListing(w http.ResponseWriter, r *http.Request) {
	var req listingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Price < 0 {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	listing := &models.Listing{
		SellerName:  strings.TrimSpace(req.SellerName),
		Phone:       strings.TrimSpace(req.Phone),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Payment:     strings.TrimSpace(req.Payment),
		Image:       strings.TrimSpace(req.Image),
	}

	id, err := h.listingService.CreateListing(r.Context(), listing)
	if err != nil {
		logger.Log.Error("failed to create listing", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, listingResponse{Status: "ok", MarketID: id})
}

func (h *Handler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req listingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Price < 0 {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	err = h.listingService.UpdateListing(r.Context(), id,
		strings.TrimSpace(req.Title), strings.TrimSpace(req.Description),
		req.Price, strings.TrimSpace(req.Payment))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	case errors.Is(err, apperrors.ErrListingNotFound):
		http.Error(w, "listing not found", http.StatusNotFound)
	default:
		logger.Log.Error("failed to update listing", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	err = h.listingService.DeleteListing(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	case errors.Is(err, apperrors.ErrListingNotFound):
		http.Error(w, "listing not found", http.StatusNotFound)
	default:
		logger.Log.Error("failed to delete listing", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) ListMarket(w http.ResponseWriter, r *http.Request) {
	h.listMarket(w, r, false)
}

func (h *Handler) ListMarketPublic(w http.ResponseWriter, r *http.Request) {
	h.listMarket(w, r, true)
}

func (h *Handler) listMarket(w http.ResponseWriter, r *http.Request, publicOnly bool) {
	listings, err := h.listingService.GetListings(r.Context(), publicOnly)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	writeJSON(w, http.StatusOK, listings)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
