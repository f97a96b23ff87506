package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPingHandler(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/ping", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Alive bool  `json:"alive"`
		TS    int64 `json:"ts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Alive)
	assert.NotZero(t, resp.TS)
}

func TestSiteConfigHandler(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/config", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "400200", resp["paybill"])
}

func TestRobotsHandler(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/robots.txt", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "User-agent: *")
}

func TestSitemapHandler(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/sitemap.xml", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/xml")
	assert.Contains(t, rec.Body.String(), "<loc>http://example.com/order</loc>")
}

func TestManifestHandler(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/manifest.json", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var manifest map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &manifest))
	assert.Equal(t, "FavHome Deliveries", manifest["name"])
}

func TestRouter_UnknownRoute(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/no-such-page", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid URL format")
}
