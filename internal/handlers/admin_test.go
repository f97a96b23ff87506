package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/favhome/deliveries/internal/apperrors"
	"github.com/favhome/deliveries/internal/models"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardHandler(t *testing.T) {
	env := newTestEnv(t)

	env.orders.EXPECT().GetOrders(gomock.Any()).Return([]models.Order{{ID: 1, Name: "Jane"}}, nil)
	env.listings.EXPECT().GetListings(gomock.Any(), false).Return([]models.Listing{{ID: 2, Title: "Lamp"}}, nil)

	rec := env.do(http.MethodGet, "/"+testAdminPath+"/", "", asAdmin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Jane")
	assert.Contains(t, rec.Body.String(), "Lamp")
	// The page embeds a session token, never the raw shared key.
	assert.NotContains(t, rec.Body.String(), testAdminKey)
}

func TestDashboardHandler_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/"+testAdminPath+"/", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginHandler(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/"+testAdminPath+"/login", `{"admin_key":"`+testAdminKey+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)

	// The issued token works as a credential on its own.
	env.orders.EXPECT().DeleteOrder(gomock.Any(), int64(1)).Return(nil)
	rec = env.do(http.MethodPost, "/"+testAdminPath+"/order/delete/1", "",
		func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+resp.Token)
		})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminOrderActions(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name  string
		path  string
		setup func()
	}{
		{
			name: "mark delivered",
			path: "/" + testAdminPath + "/mark/7",
			setup: func() {
				env.orders.EXPECT().MarkDelivered(gomock.Any(), int64(7)).Return(nil)
			},
		},
		{
			name: "approve payment",
			path: "/" + testAdminPath + "/payment/7/approve",
			setup: func() {
				env.orders.EXPECT().ApprovePayment(gomock.Any(), int64(7)).Return(nil)
			},
		},
		{
			name: "disapprove payment",
			path: "/" + testAdminPath + "/payment/7/disapprove",
			setup: func() {
				env.orders.EXPECT().DisapprovePayment(gomock.Any(), int64(7)).Return(nil)
			},
		},
		{
			name: "delete order",
			path: "/" + testAdminPath + "/order/delete/7",
			setup: func() {
				env.orders.EXPECT().DeleteOrder(gomock.Any(), int64(7)).Return(nil)
			},
		},
		{
			name: "mark sold",
			path: "/" + testAdminPath + "/market/mark/7",
			setup: func() {
				env.listings.EXPECT().MarkSold(gomock.Any(), int64(7)).Return(nil)
			},
		},
		{
			name: "delete listing",
			path: "/" + testAdminPath + "/market/delete/7",
			setup: func() {
				env.listings.EXPECT().DeleteListing(gomock.Any(), int64(7)).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			rec := env.do(http.MethodPost, tt.path, "", asAdmin)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestAdminActions_NotFound(t *testing.T) {
	env := newTestEnv(t)

	env.orders.EXPECT().MarkDelivered(gomock.Any(), int64(99)).Return(apperrors.ErrOrderNotFound)

	rec := env.do(http.MethodPost, "/"+testAdminPath+"/mark/99", "", asAdmin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEditOrderHandler(t *testing.T) {
	env := newTestEnv(t)

	env.orders.EXPECT().EditField(gomock.Any(), int64(4), "pickup", "Juja Square").Return(nil)

	rec := env.do(http.MethodPost, "/"+testAdminPath+"/order/edit/4",
		`{"field":"pickup","value":"Juja Square"}`, asAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEditOrderHandler_InvalidField(t *testing.T) {
	env := newTestEnv(t)

	env.orders.EXPECT().EditField(gomock.Any(), int64(4), "fee", "0").
		Return(apperrors.ErrInvalidField)

	rec := env.do(http.MethodPost, "/"+testAdminPath+"/order/edit/4",
		`{"field":"fee","value":"0"}`, asAdmin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEditListingHandler(t *testing.T) {
	env := newTestEnv(t)

	env.listings.EXPECT().EditField(gomock.Any(), int64(4), "price", "800").Return(nil)

	rec := env.do(http.MethodPost, "/"+testAdminPath+"/market/edit/4",
		`{"field":"price","value":"800"}`, asAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminActions_BadID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/"+testAdminPath+"/mark/abc", "", asAdmin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
