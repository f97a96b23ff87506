package handlers

import (
	"fmt"
	"net/http"
	"time"
)

func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"alive": true,
		"ts":    time.Now().Unix(),
	})
}

// SiteConfig exposes the values the ordering UI needs, currently just the
// paybill number shown on the payment step.
func (h *Handler) SiteConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"paybill": h.paybill,
	})
}

func (h *Handler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprint(w, "User-agent: *\nAllow: /\nSitemap: /sitemap.xml\n")
}

func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	scheme := "https"
	if r.TLS == nil {
		scheme = "http"
	}
	base := scheme + "://" + r.Host

	w.Header().Set("Content-Type", "application/xml")
	fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	fmt.Fprintf(w, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`+"\n")
	for _, u := range []string{"/", "/order", "/favmarket.html"} {
		fmt.Fprintf(w, "<url><loc>%s%s</loc></url>\n", base, u)
	}
	fmt.Fprint(w, "</urlset>")
}

func (h *Handler) Manifest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":             "FavHome Deliveries",
		"short_name":       "FavHome",
		"start_url":        ".",
		"display":          "standalone",
		"background_color": "#f7fbff",
		"theme_color":      "#0b76ef",
		"icons": []map[string]string{
			{"src": "/icon-192.png", "sizes": "192x192", "type": "image/png"},
			{"src": "/icon-512.png", "sizes": "512x512", "type": "image/png"},
		},
	})
}
