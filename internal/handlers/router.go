package handlers

import (
	"net/http"

	"github.com/favhome/deliveries/internal/middleware"
	"github.com/favhome/deliveries/internal/service"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

type Handler struct {
	orderService   service.OrderService
	listingService service.ListingService
	cred           *middleware.AdminCredential
	paybill        string
	uploadDir      string
	adminPath      string
}

func NewHandler(orderService service.OrderService, listingService service.ListingService,
	cred *middleware.AdminCredential, paybill, uploadDir, adminPath string) *Handler {
	return &Handler{
		orderService:   orderService,
		listingService: listingService,
		cred:           cred,
		paybill:        paybill,
		uploadDir:      uploadDir,
		adminPath:      adminPath,
	}
}

func NewRouter(handler *Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.NewLoggingMiddleware())

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Invalid URL format", http.StatusNotFound)
	})

	limiter := middleware.NewIPLimiter(rate.Limit(1), 5)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(limiter))
		r.Post("/order", handler.CreateOrder)
		r.Post("/market", handler.CreateListing)
	})

	r.Put("/market/{id}", handler.UpdateListing)
	r.Delete("/market/{id}", handler.DeleteListing)

	r.Get("/api/market", handler.ListMarket)
	r.Get("/api/market/public", handler.ListMarketPublic)
	r.Get("/api/orders/public", handler.PublicOrders)
	r.Get("/api/config", handler.SiteConfig)

	r.With(middleware.AdminOnly(handler.cred)).Get("/api/orders", handler.AdminListing)

	r.Route("/"+handler.adminPath, func(r chi.Router) {
		r.Use(middleware.AdminOnly(handler.cred))
		r.Get("/", handler.Dashboard)
		r.Post("/login", handler.Login)
		r.Post("/mark/{id}", handler.MarkDelivered)
		r.Post("/market/mark/{id}", handler.MarkSold)
		r.Post("/payment/{id}/approve", handler.ApprovePayment)
		r.Post("/payment/{id}/disapprove", handler.DisapprovePayment)
		r.Post("/order/delete/{id}", handler.DeleteOrder)
		r.Post("/market/delete/{id}", handler.DeleteListingAdmin)
		r.Post("/order/edit/{id}", handler.EditOrder)
		r.Post("/market/edit/{id}", handler.EditListing)
	})

	r.Post("/upload_image", handler.UploadImage)
	r.Get("/uploads/*", handler.ServeUpload)

	r.Get("/ping", handler.Ping)
	r.Get("/robots.txt", handler.Robots)
	r.Get("/sitemap.xml", handler.Sitemap)
	r.Get("/manifest.json", handler.Manifest)

	return r
}
