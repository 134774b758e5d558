package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	cachemem "github.com/Gunvolt24/storefront/internal/cache/memory"
	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports/mocks"
	rest "github.com/Gunvolt24/storefront/internal/transport/http"
	"github.com/Gunvolt24/storefront/pkg/validate"
)

const (
	adminToken = "admin-token"
	userToken  = "user-token"
	badToken   = "expired-token"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

type env struct {
	catalog   *mocks.MockCatalogService
	orders    *mocks.MockOrderService
	favorites *mocks.MockFavoriteService
	cache     *cachemem.ResponseCache
	router    *gin.Engine
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)

	tokens := mocks.NewMockTokenDecoder(ctrl)
	tokens.EXPECT().Decode(adminToken).Return(&domain.Claims{UserID: "admin-1", Role: domain.RoleAdmin}, nil).AnyTimes()
	tokens.EXPECT().Decode(userToken).Return(&domain.Claims{UserID: "u-1", Email: "u1@example.com", Role: domain.RoleCustomer}, nil).AnyTimes()
	tokens.EXPECT().Decode(badToken).Return(nil, errors.New("token is expired")).AnyTimes()

	e := &env{
		catalog:   mocks.NewMockCatalogService(ctrl),
		orders:    mocks.NewMockOrderService(ctrl),
		favorites: mocks.NewMockFavoriteService(ctrl),
		cache:     cachemem.NewResponseCache(),
	}
	h := rest.NewHandler(rest.Deps{
		Catalog:   e.catalog,
		Orders:    e.orders,
		Favorites: e.favorites,
		Cache:     e.cache,
		Tokens:    tokens,
		Log:       noopLogger{},
		TTL:       rest.CacheTTL{List: 30 * time.Second, Detail: 5 * time.Minute},
	})
	e.router = rest.NewRouter(h, "", "")
	return e
}

func (e *env) do(method, target, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body.Error
}

// --- служебные эндпоинты ---

func TestPing_200(t *testing.T) {
	e := newEnv(t)
	w := e.do(http.MethodGet, "/ping", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "pong", w.Body.String())
}

func TestMetrics_200(t *testing.T) {
	e := newEnv(t)
	w := e.do(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotZero(t, w.Body.Len())
}

func TestNoRoute_404(t *testing.T) {
	e := newEnv(t)
	w := e.do(http.MethodGet, "/no-such-route", "", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestMethodNotAllowed_405(t *testing.T) {
	e := newEnv(t)
	w := e.do(http.MethodPatch, "/api/discounts/SUMMER", "", "")
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	require.Equal(t, "GET", w.Header().Get("Allow"))
	require.Equal(t, "method not allowed", errorOf(t, w))
}

// --- каталог и кэш ответов ---

func TestListProducts_SecondRequestServedFromCache(t *testing.T) {
	e := newEnv(t)

	list := []*domain.Product{{ID: "p-1", Name: "Oud", IsActive: true}}
	e.catalog.EXPECT().
		ListProducts(gomock.Any(), domain.ProductFilter{Category: "perfume", Limit: 10, Offset: 10}).
		Return(list, 25, nil).
		Times(1)

	first := e.do(http.MethodGet, "/api/products?category=perfume&page=2&limit=10", "", "")
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())

	// порядок параметров другой — ключ тот же
	second := e.do(http.MethodGet, "/api/products?limit=10&page=2&category=perfume", "", "")
	require.Equal(t, http.StatusOK, second.Code)
	require.JSONEq(t, first.Body.String(), second.Body.String())

	for _, w := range []*httptest.ResponseRecorder{first, second} {
		require.Equal(t, "no-store", w.Header().Get("Cache-Control"))
		require.Equal(t, "25", w.Header().Get("X-Total-Count"))
		require.Equal(t, "2", w.Header().Get("X-Page"))
		require.Equal(t, "10", w.Header().Get("X-Limit"))
		require.Equal(t, "3", w.Header().Get("X-Total-Pages"))
	}
	require.Equal(t, 1, e.cache.Len())
}

func TestListProducts_NotPaged_NoPaginationHeaders(t *testing.T) {
	e := newEnv(t)
	e.catalog.EXPECT().ListProducts(gomock.Any(), gomock.Any()).Return(nil, 0, nil)

	w := e.do(http.MethodGet, "/api/products", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())
	require.Empty(t, w.Header().Get("X-Total-Count"))
}

func TestListProducts_NotPaged_ReturnsWholeCatalog(t *testing.T) {
	e := newEnv(t)

	all := make([]*domain.Product, 50)
	for i := range all {
		all[i] = &domain.Product{ID: fmt.Sprintf("p-%d", i), Name: "Oud", IsActive: true}
	}
	e.catalog.EXPECT().
		ListProducts(gomock.Any(), domain.ProductFilter{}).
		Return(all, len(all), nil)

	w := e.do(http.MethodGet, "/api/products", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got []domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 50)
	require.Empty(t, w.Header().Get("X-Total-Count"))
}

func TestListProducts_LimitOnly_SetsPaginationHeaders(t *testing.T) {
	e := newEnv(t)

	e.catalog.EXPECT().
		ListProducts(gomock.Any(), domain.ProductFilter{Limit: 20}).
		Return([]*domain.Product{{ID: "p-1", IsActive: true}}, 50, nil)

	w := e.do(http.MethodGet, "/api/products?limit=20", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "50", w.Header().Get("X-Total-Count"))
	require.Equal(t, "1", w.Header().Get("X-Page"))
	require.Equal(t, "20", w.Header().Get("X-Limit"))
	require.Equal(t, "3", w.Header().Get("X-Total-Pages"))
}

func TestListProducts_IncludeInactive_NonAdmin_403(t *testing.T) {
	e := newEnv(t)

	for _, token := range []string{"", userToken, badToken} {
		w := e.do(http.MethodGet, "/api/products?includeInactive=true", token, "")
		require.Equal(t, http.StatusForbidden, w.Code, "token=%q", token)
	}
}

func TestListProducts_Admin_BypassesCache(t *testing.T) {
	e := newEnv(t)

	e.catalog.EXPECT().
		ListProducts(gomock.Any(), domain.ProductFilter{IncludeInactive: true}).
		Return([]*domain.Product{{ID: "p-hidden"}}, 1, nil).
		Times(2)

	for i := 0; i < 2; i++ {
		w := e.do(http.MethodGet, "/api/products?includeInactive=true", adminToken, "")
		require.Equal(t, http.StatusOK, w.Code)
	}
	require.Zero(t, e.cache.Len())
}

func TestListProducts_BadBool_400(t *testing.T) {
	e := newEnv(t)
	w := e.do(http.MethodGet, "/api/products?featured=maybe", "", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProduct_NotFound_NotCached(t *testing.T) {
	e := newEnv(t)
	e.catalog.EXPECT().GetProduct(gomock.Any(), "p-x", false).
		Return(nil, fmt.Errorf("product p-x: %w", domain.ErrNotFound)).Times(2)

	for i := 0; i < 2; i++ {
		w := e.do(http.MethodGet, "/api/products/p-x", "", "")
		require.Equal(t, http.StatusNotFound, w.Code)
	}
	require.Zero(t, e.cache.Len())
}

func TestGetProduct_AdminSeesInactive(t *testing.T) {
	e := newEnv(t)
	e.catalog.EXPECT().GetProduct(gomock.Any(), "p-1", true).
		Return(&domain.Product{ID: "p-1", IsActive: false}, nil)

	w := e.do(http.MethodGet, "/api/products/p-1", adminToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Zero(t, e.cache.Len())
}

func TestCreateProduct_Auth(t *testing.T) {
	e := newEnv(t)
	body := `{"name":"Oud","category":"perfume","sizes":[{"size":"50ml","volume":"50ml","stockCount":3}]}`

	require.Equal(t, http.StatusUnauthorized, e.do(http.MethodPost, "/api/products", "", body).Code)
	require.Equal(t, http.StatusForbidden, e.do(http.MethodPost, "/api/products", userToken, body).Code)

	e.catalog.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *domain.Product) (*domain.Product, error) {
			p.ID = "new-id"
			return p, nil
		})
	w := e.do(http.MethodPost, "/api/products", adminToken, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Contains(t, w.Body.String(), `"id":"new-id"`)
}

func TestUpdateProduct_ValidationError_400(t *testing.T) {
	e := newEnv(t)
	e.catalog.EXPECT().UpdateProduct(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *domain.Product) (*domain.Product, error) {
			require.Equal(t, "p-1", p.ID)
			return nil, fmt.Errorf("%w: name is required", validate.ErrInvalidProduct)
		})

	w := e.do(http.MethodPut, "/api/products/p-1", adminToken, `{"name":""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, errorOf(t, w), "name is required")
}

func TestUpdateProduct_UnknownField_400(t *testing.T) {
	e := newEnv(t)
	w := e.do(http.MethodPut, "/api/products/p-1", adminToken, `{"bogus":1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

// --- заказы ---

const orderBody = `{
	"items":[{"productId":"p-1","size":"M","quantity":3,"price":"10"}],
	"shippingAddress":{"fullName":"A B","phone":"1","email":"a@b.c","address":"x","city":"y"},
	"paymentMethod":"cash_on_delivery"
}`

func TestCreateOrder_Created_GuestWhenTokenInvalid(t *testing.T) {
	e := newEnv(t)

	e.orders.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(&domain.Order{ID: "row-1", OrderID: "ORD-1-AB", UserID: domain.GuestUserID, Total: decimal.NewFromInt(30)}, nil)

	w := e.do(http.MethodPost, "/api/orders", badToken, orderBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Order   struct {
			ID      string `json:"id"`
			OrderID string `json:"orderId"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, "ORD-1-AB", resp.Order.OrderID)
	require.Equal(t, "row-1", resp.Order.ID)
}

func TestCreateOrder_PassesClaims(t *testing.T) {
	e := newEnv(t)
	e.orders.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *domain.CreateOrderRequest, c *domain.Claims) (*domain.Order, error) {
			require.NotNil(t, c)
			require.Equal(t, "u-1", c.UserID)
			return &domain.Order{OrderID: "ORD-2", UserID: "u-1"}, nil
		})

	w := e.do(http.MethodPost, "/api/orders", userToken, orderBody)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateOrder_InsufficientStock_400WithDetails(t *testing.T) {
	e := newEnv(t)
	e.orders.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &domain.InsufficientStockError{ProductID: "p-1", ProductName: "Oud", Size: "M", Available: 2, Requested: 3})

	w := e.do(http.MethodPost, "/api/orders", "", orderBody)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error   string `json:"error"`
		Details struct {
			ProductName string `json:"productName"`
			Size        string `json:"size"`
			Available   int    `json:"available"`
			Requested   int    `json:"requested"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Contains(t, resp.Error, "Oud")
	require.Equal(t, "M", resp.Details.Size)
	require.Equal(t, 2, resp.Details.Available)
	require.Equal(t, 3, resp.Details.Requested)
}

func TestCreateOrder_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"product not found", &domain.ProductNotFoundError{ProductID: "p-9"}, http.StatusNotFound, "product not found: p-9"},
		{"validation", fmt.Errorf("%w: items is required", validate.ErrInvalidOrder), http.StatusBadRequest, "items is required"},
		{"discount", domain.ErrInvalidDiscount, http.StatusBadRequest, "invalid discount code"},
		{"rls", fmt.Errorf("failed to save order: %w", domain.ErrStoreMisconfigured), http.StatusInternalServerError, "configuration error, contact support"},
		{"generic", errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout, "request timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			e.orders.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tt.err)

			w := e.do(http.MethodPost, "/api/orders", "", orderBody)
			require.Equal(t, tt.wantCode, w.Code)
			require.Contains(t, errorOf(t, w), tt.wantMsg)
		})
	}
}

func TestCreateOrder_BadJSON_400(t *testing.T) {
	e := newEnv(t)
	for _, body := range []string{`{`, `{"items":[],"unknown":1}`, orderBody + `{}`} {
		w := e.do(http.MethodPost, "/api/orders", "", body)
		require.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestGetOrder_Visibility(t *testing.T) {
	order := &domain.Order{OrderID: "ORD-1", UserID: "u-1"}

	tests := []struct {
		name     string
		token    string
		wantCode int
	}{
		{"owner", userToken, http.StatusOK},
		{"admin", adminToken, http.StatusOK},
		{"guest", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			e.orders.EXPECT().GetOrder(gomock.Any(), "ORD-1").Return(order, nil)
			w := e.do(http.MethodGet, "/api/orders/ORD-1", tt.token, "")
			require.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestGetOrder_OtherUser_404(t *testing.T) {
	e := newEnv(t)
	e.orders.EXPECT().GetOrder(gomock.Any(), "ORD-7").Return(&domain.Order{OrderID: "ORD-7", UserID: "u-2"}, nil)

	w := e.do(http.MethodGet, "/api/orders/ORD-7", userToken, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetOrder_Missing_404(t *testing.T) {
	e := newEnv(t)
	e.orders.EXPECT().GetOrder(gomock.Any(), "missing").Return(nil, nil)

	w := e.do(http.MethodGet, "/api/orders/missing", adminToken, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestListMyOrders(t *testing.T) {
	e := newEnv(t)

	require.Equal(t, http.StatusUnauthorized, e.do(http.MethodGet, "/api/orders", "", "").Code)

	e.orders.EXPECT().OrdersByUser(gomock.Any(), "u-1", 3, 7).Return([]*domain.Order{{OrderID: "x"}}, nil)
	w := e.do(http.MethodGet, "/api/orders?limit=3&offset=7", userToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"orderId":"x"`)
}

func TestAdminListOrders_PaginationHeaders(t *testing.T) {
	e := newEnv(t)

	require.Equal(t, http.StatusForbidden, e.do(http.MethodGet, "/api/admin/orders", userToken, "").Code)

	e.orders.EXPECT().
		ListOrders(gomock.Any(), domain.OrderFilter{Status: domain.OrderStatusPending, Limit: 5, Offset: 5}).
		Return([]*domain.Order{{OrderID: "a"}}, 11, nil)

	w := e.do(http.MethodGet, "/api/admin/orders?status=pending&page=2&limit=5", adminToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "11", w.Header().Get("X-Total-Count"))
	require.Equal(t, "3", w.Header().Get("X-Total-Pages"))

	// без page список всё равно ограничен, поэтому заголовки есть
	e.orders.EXPECT().
		ListOrders(gomock.Any(), domain.OrderFilter{Limit: 20}).
		Return([]*domain.Order{{OrderID: "a"}}, 41, nil)

	w = e.do(http.MethodGet, "/api/admin/orders", adminToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "41", w.Header().Get("X-Total-Count"))
	require.Equal(t, "1", w.Header().Get("X-Page"))
	require.Equal(t, "3", w.Header().Get("X-Total-Pages"))
}

func TestAdminUpdateStatus(t *testing.T) {
	e := newEnv(t)

	e.orders.EXPECT().UpdateStatus(gomock.Any(), domain.StatusUpdate{OrderID: "ORD-1", Status: domain.OrderStatusShipped}).Return(nil)
	w := e.do(http.MethodPatch, "/api/admin/orders/ORD-1/status", adminToken, `{"status":"shipped"}`)
	require.Equal(t, http.StatusOK, w.Code)

	e.orders.EXPECT().UpdateStatus(gomock.Any(), domain.StatusUpdate{OrderID: "ORD-1", Status: "lost"}).
		Return(fmt.Errorf("%w: %q", domain.ErrInvalidStatus, "lost"))
	w = e.do(http.MethodPatch, "/api/admin/orders/ORD-1/status", adminToken, `{"status":"lost"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	e.orders.EXPECT().UpdateStatus(gomock.Any(), gomock.Any()).Return(fmt.Errorf("order ORD-9: %w", domain.ErrNotFound))
	w = e.do(http.MethodPatch, "/api/admin/orders/ORD-9/status", adminToken, `{"status":"shipped"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}

// --- промокоды и избранное ---

func TestGetDiscount(t *testing.T) {
	e := newEnv(t)

	e.orders.EXPECT().LookupDiscount(gomock.Any(), "SUMMER").
		Return(&domain.Discount{Code: "SUMMER", Kind: domain.DiscountPercent, Value: decimal.NewFromInt(10), Active: true}, nil)
	w := e.do(http.MethodGet, "/api/discounts/SUMMER", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"code":"SUMMER","kind":"percent","value":"10"}`, w.Body.String())

	e.orders.EXPECT().LookupDiscount(gomock.Any(), "OLD").Return(nil, domain.ErrNotFound)
	require.Equal(t, http.StatusNotFound, e.do(http.MethodGet, "/api/discounts/OLD", "", "").Code)
}

func TestFavorites(t *testing.T) {
	e := newEnv(t)

	require.Equal(t, http.StatusUnauthorized, e.do(http.MethodGet, "/api/favorites", "", "").Code)

	e.favorites.EXPECT().List(gomock.Any(), "u-1").Return(nil, nil)
	w := e.do(http.MethodGet, "/api/favorites", userToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())

	e.favorites.EXPECT().Add(gomock.Any(), "u-1", "p-404").Return(fmt.Errorf("product p-404: %w", domain.ErrNotFound))
	require.Equal(t, http.StatusNotFound, e.do(http.MethodPut, "/api/favorites/p-404", userToken, "").Code)

	e.favorites.EXPECT().Remove(gomock.Any(), "u-1", "p-1").Return(nil)
	require.Equal(t, http.StatusOK, e.do(http.MethodDelete, "/api/favorites/p-1", userToken, "").Code)
}
