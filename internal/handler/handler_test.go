package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"fastfood/internal/config"
	"fastfood/internal/domain/model"
	infraRepo "fastfood/internal/infra/repository"
	"fastfood/internal/infra/vnpay"
	"fastfood/internal/middleware"
	"fastfood/internal/testutil"
	"fastfood/internal/usecase"
	auth "fastfood/internal/usecase/auth_usecase"
	"fastfood/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const statusURL = "http://localhost:3000/payment/status"

var testVNPay = config.VNPayConfig{
	TmnCode:    "TMN01",
	HashSecret: "SECRETKEY",
	URL:        "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
	ReturnURL:  "http://localhost:8080/payment/return",
}

type testApp struct {
	e  *echo.Echo
	db *gorm.DB
}

// 認証の代わりにヘッダのIDをPrincipalとして入れる
func fakeAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if id := c.Request().Header.Get("X-Test-Account"); id != "" {
			var n int64
			_ = json.Unmarshal([]byte(id), &n)
			c.Set(middleware.CtxUserIDKey, n)
			c.Set(middleware.CtxRolesKey, []string{string(model.RoleCustomer)})
		}
		return next(c)
	}
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gdb := testutil.NewSQLiteDB(t)
	tx := infraRepo.NewTxManagerGorm(gdb)
	customers := infraRepo.NewCustomerGormRepository(gdb)
	carts := infraRepo.NewCartGormRepository(gdb)
	foods := infraRepo.NewFoodGormRepository(gdb)
	orders := infraRepo.NewOrderGormRepository(gdb)
	orderItems := infraRepo.NewOrderItemGormRepository(gdb)
	payments := infraRepo.NewPaymentGormRepository(gdb)

	e := echo.New()
	e.Validator = validator.New()

	cartH := NewCartHandler(usecase.NewCartUsecase(tx, customers, carts, carts, foods))
	orderH := NewOrderHandler(usecase.NewOrderUsecase(tx, customers, orders, orderItems, payments))
	payH := NewPaymentHandler(usecase.NewPaymentUsecase(tx, customers, orders, payments, vnpay.NewClient(testVNPay), nil), statusURL)

	cartH.RegisterRoutes(e.Group("/cart", fakeAuth))
	orderH.RegisterRoutes(e.Group("/order", fakeAuth))
	payH.RegisterCallback(e)

	return &testApp{e: e, db: gdb}
}

func (a *testApp) seedCustomer(t *testing.T) int64 {
	t.Helper()
	acc := &model.Account{Username: "an", PasswordHash: "x", IsActive: true}
	require.NoError(t, a.db.Create(acc).Error)
	require.NoError(t, a.db.Create(&model.Customer{AccountID: acc.ID, Name: "An"}).Error)
	return acc.ID
}

func (a *testApp) seedFood(t *testing.T, price int64) int64 {
	t.Helper()
	f := model.Food{Name: "Burger", Price: decimal.NewFromInt(price), IsAvailable: true}
	require.NoError(t, a.db.Create(&f).Error)
	return f.ID
}

func (a *testApp) do(method, path, body string, accountID string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if accountID != "" {
		req.Header.Set("X-Test-Account", accountID)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var r ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&r))
	return r.Error
}

func TestCartHandler_AddAndGet(t *testing.T) {
	app := newTestApp(t)
	app.seedCustomer(t)
	foodID := app.seedFood(t, 10000)

	rec := app.do(http.MethodPost, "/cart/add", `{"food_id":`+strconv.FormatInt(foodID, 10)+`,"quantity":2}`, "1")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = app.do(http.MethodGet, "/cart", "", "1")
	require.Equal(t, http.StatusOK, rec.Code)
	var cart usecase.CartResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(2), cart.Items[0].Quantity)
	assert.True(t, cart.TotalPrice.Equal(decimal.NewFromInt(20000)))
}

func TestCartHandler_Errors(t *testing.T) {
	app := newTestApp(t)
	app.seedCustomer(t)

	rec := app.do(http.MethodGet, "/cart", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decodeError(t, rec))

	rec = app.do(http.MethodPost, "/cart/add", `{"food_id":1,"quantity":0}`, "1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodPost, "/cart/add", `{bad json`, "1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid body", decodeError(t, rec))

	rec = app.do(http.MethodPost, "/cart/add", `{"food_id":999,"quantity":1}`, "1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderHandler_EmptyCart(t *testing.T) {
	app := newTestApp(t)
	app.seedCustomer(t)

	rec := app.do(http.MethodPost, "/order/create", `{}`, "1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaymentHandler_Callback(t *testing.T) {
	app := newTestApp(t)

	//署名が合わない
	rec := app.do(http.MethodGet, "/payment/return?vnp_Amount=100&vnp_OrderInfo=1&vnp_SecureHash=abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	//署名は正しいが注文が無い
	q := url.Values{}
	q.Set("vnp_Amount", "2500000")
	q.Set("vnp_OrderInfo", "42")
	q.Set("vnp_ResponseCode", "00")
	q.Set("vnp_TransactionStatus", "00")
	q.Set("vnp_TxnRef", "REF42")
	q.Set(vnpay.ParamSecureHash, vnpay.Sign(testVNPay.HashSecret, q.Encode()))

	rec = app.do(http.MethodGet, "/payment/return?"+q.Encode(), "", "")
	require.Equal(t, http.StatusFound, rec.Code)
	loc, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
	require.NoError(t, err)
	assert.Equal(t, "failed", loc.Query().Get("status"))
	assert.Empty(t, loc.Query().Get("order_id"))
}

func TestWriteAuthError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{auth.ErrMissingField, http.StatusBadRequest},
		{auth.ErrResetCodeExpired, http.StatusBadRequest},
		{auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{auth.ErrInvalidRefreshToken, http.StatusUnauthorized},
		{auth.ErrAccountInactive, http.StatusForbidden},
		{auth.ErrEmailNotFound, http.StatusNotFound},
		{auth.ErrAccountNotFound, http.StatusNotFound},
		{auth.ErrUsernameTaken, http.StatusConflict},
		{auth.ErrEmailTaken, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
			require.NoError(t, writeAuthError(c, tt.err))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
		msg  string
	}{
		{"http error", usecase.NewHTTPError(http.StatusConflict, "already paid"), http.StatusConflict, "already paid"},
		{"invalid input", validator.ErrInvalidInput, http.StatusBadRequest, "invalid input"},
		{"unknown", errors.New("db gone"), http.StatusInternalServerError, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
			require.NoError(t, writeError(c, tt.err))
			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, tt.msg, decodeError(t, rec))
		})
	}
}
