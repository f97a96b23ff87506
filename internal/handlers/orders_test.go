package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/favhome/deliveries/internal/middleware"
	serviceMocks "github.com/favhome/deliveries/internal/mocks/service_mocks"
	"github.com/favhome/deliveries/internal/models"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAdminKey  = "test-admin-key"
	testAdminPath = "1q2w3e"
)

func middlewareCredential() *middleware.AdminCredential {
	return middleware.NewAdminCredential(testAdminKey, "", "")
}

type testEnv struct {
	orders   *serviceMocks.MockOrderService
	listings *serviceMocks.MockListingService
	router   http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	orders := serviceMocks.NewMockOrderService(ctrl)
	listings := serviceMocks.NewMockListingService(ctrl)

	cred := middlewareCredential()
	handler := NewHandler(orders, listings, cred, "400200", t.TempDir(), testAdminPath)

	return &testEnv{
		orders:   orders,
		listings: listings,
		router:   NewRouter(handler),
	}
}

func (e *testEnv) do(method, path, body string, opts ...func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.RemoteAddr = "127.0.0.1:54321"
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func asAdmin(req *http.Request) {
	req.Header.Set("X-ADMIN-KEY", testAdminKey)
}

func TestCreateOrderHandler(t *testing.T) {
	env := newTestEnv(t)

	env.orders.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, order *models.Order) (int64, error) {
			assert.Equal(t, "Jane", order.Name)
			assert.Equal(t, "Juja Square", order.Pickup)
			order.Fee = 99
			return 5, nil
		})

	rec := env.do(http.MethodPost, "/order",
		`{"name":"  Jane ","phone":"0712345678","pickup":" Juja Square ","drop":"Gate C","items":"milk","time":"2pm","payment":"mpesa"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp orderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, int64(5), resp.OrderID)
	assert.Equal(t, 99, resp.Fee)
}

func TestCreateOrderHandler_InvalidJSON(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/order", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderHandler_ServiceError(t *testing.T) {
	env := newTestEnv(t)

	env.orders.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(int64(0), assert.AnError)

	rec := env.do(http.MethodPost, "/order", `{"name":"Jane"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAdminListingHandler(t *testing.T) {
	env := newTestEnv(t)

	env.orders.EXPECT().GetOrders(gomock.Any()).Return([]models.Order{{ID: 1, Name: "Jane"}}, nil)
	env.listings.EXPECT().GetListings(gomock.Any(), false).Return([]models.Listing{{ID: 2, Title: "Lamp"}}, nil)

	rec := env.do(http.MethodGet, "/api/orders", "", asAdmin)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Orders []models.Order   `json:"orders"`
		Market []models.Listing `json:"market"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	require.Len(t, resp.Market, 1)
	assert.Equal(t, "Jane", resp.Orders[0].Name)
}

func TestAdminListingHandler_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/orders", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPublicOrdersHandler(t *testing.T) {
	env := newTestEnv(t)

	env.orders.EXPECT().GetOrders(gomock.Any()).Return([]models.Order{{ID: 1}}, nil)

	rec := env.do(http.MethodGet, "/api/orders/public", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	assert.Len(t, orders, 1)
}
