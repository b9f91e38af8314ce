package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fastfood/internal/domain/model"
	"fastfood/internal/infra/token"
	"fastfood/internal/middleware"
	"fastfood/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const (
	testSecret   = "test-secret"
	testIssuer   = "fastfood"
	testAudience = "fastfood-clients"
)

type mwErrorResponse struct {
	Error string `json:"error"`
}

type mwOKResponse struct {
	UserID   int64    `json:"user_id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) Create(ctx context.Context, a *model.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAccountRepo) FindByID(ctx context.Context, id int64) (*model.Account, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*model.Account)
	return a, args.Error(1)
}

func (m *MockAccountRepo) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	args := m.Called(ctx, username)
	a, _ := args.Get(0).(*model.Account)
	return a, args.Error(1)
}

func (m *MockAccountRepo) Update(ctx context.Context, a *model.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAccountRepo) EnsureRole(ctx context.Context, name model.RoleName) (model.Role, error) {
	args := m.Called(ctx, name)
	r, _ := args.Get(0).(model.Role)
	return r, args.Error(1)
}

var _ repository.AccountRepository = (*MockAccountRepo)(nil)

func newJWT() *token.JWT {
	return token.NewJWT(testSecret, testIssuer, testAudience, 30*time.Minute)
}

func mustMakeJWT(t *testing.T, userID int64, roles ...string) string {
	t.Helper()
	raw, _, err := newJWT().Issue(userID, "alice", roles, time.Now())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	return raw
}

func runRequest(t *testing.T, e *echo.Echo, method string, path string, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeMWError(t *testing.T, rec *httptest.ResponseRecorder) mwErrorResponse {
	t.Helper()
	var r mwErrorResponse
	_ = json.NewDecoder(rec.Body).Decode(&r)
	return r
}

func okHandler(c echo.Context) error {
	p, _ := middleware.PrincipalFrom(c)
	return c.JSON(http.StatusOK, mwOKResponse{UserID: p.AccountID, Username: p.Username, Roles: p.Roles})
}

func TestAuthJWT_Unauthorized_NoHeader(t *testing.T) {
	e := echo.New()
	e.GET("/protected", okHandler, middleware.AuthJWT(newJWT()))

	rec := runRequest(t, e, http.MethodGet, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decodeMWError(t, rec).Error)
}

func TestAuthJWT_Unauthorized_BadScheme(t *testing.T) {
	e := echo.New()
	e.GET("/protected", okHandler, middleware.AuthJWT(newJWT()))

	rec := runRequest(t, e, http.MethodGet, "/protected", "Token abc.def.ghi")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_Unauthorized_BadSignature(t *testing.T) {
	e := echo.New()
	e.GET("/protected", okHandler, middleware.AuthJWT(newJWT()))

	other := token.NewJWT("wrong-secret", testIssuer, testAudience, time.Minute)
	raw, _, err := other.Issue(1, "alice", []string{"Customer"}, time.Now())
	assert.NoError(t, err)

	rec := runRequest(t, e, http.MethodGet, "/protected", "Bearer "+raw)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_Unauthorized_WrongAlg(t *testing.T) {
	e := echo.New()
	e.GET("/protected", okHandler, middleware.AuthJWT(newJWT()))

	claims := token.Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)

	rec := runRequest(t, e, http.MethodGet, "/protected", "Bearer "+raw)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_Unauthorized_Expired(t *testing.T) {
	e := echo.New()
	e.GET("/protected", okHandler, middleware.AuthJWT(newJWT()))

	raw, _, err := newJWT().Issue(1, "alice", []string{"Customer"}, time.Now().Add(-31*time.Minute))
	assert.NoError(t, err)

	rec := runRequest(t, e, http.MethodGet, "/protected", "Bearer "+raw)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_Success_SetsContext(t *testing.T) {
	e := echo.New()
	e.GET("/protected", okHandler, middleware.AuthJWT(newJWT()))

	rec := runRequest(t, e, http.MethodGet, "/protected", "Bearer "+mustMakeJWT(t, 123, "Customer"))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body mwOKResponse
	_ = json.NewDecoder(rec.Body).Decode(&body)
	assert.Equal(t, int64(123), body.UserID)
	assert.Equal(t, "alice", body.Username)
	assert.Equal(t, []string{"Customer"}, body.Roles)
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	e.GET("/admin", okHandler, middleware.AuthJWT(newJWT()), middleware.RequireRole(model.RoleAdmin, model.RoleEmployee))

	rec := runRequest(t, e, http.MethodGet, "/admin", "Bearer "+mustMakeJWT(t, 1, "Customer"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", decodeMWError(t, rec).Error)

	rec = runRequest(t, e, http.MethodGet, "/admin", "Bearer "+mustMakeJWT(t, 1, "Employee"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_MissingContext(t *testing.T) {
	e := echo.New()
	e.GET("/admin", okHandler, middleware.RequireRole(model.RoleAdmin))

	rec := runRequest(t, e, http.MethodGet, "/admin", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestActiveAccountGuard(t *testing.T) {
	accounts := new(MockAccountRepo)
	accounts.On("FindByID", mock.Anything, int64(1)).Return(&model.Account{ID: 1, IsActive: true}, nil)
	accounts.On("FindByID", mock.Anything, int64(2)).Return(&model.Account{ID: 2, IsActive: false}, nil)
	accounts.On("FindByID", mock.Anything, int64(3)).Return(nil, repository.ErrAccountNotFound)

	e := echo.New()
	e.GET("/protected", okHandler, middleware.AuthJWT(newJWT()), middleware.ActiveAccountGuard(accounts))

	rec := runRequest(t, e, http.MethodGet, "/protected", "Bearer "+mustMakeJWT(t, 1, "Customer"))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = runRequest(t, e, http.MethodGet, "/protected", "Bearer "+mustMakeJWT(t, 2, "Customer"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = runRequest(t, e, http.MethodGet, "/protected", "Bearer "+mustMakeJWT(t, 3, "Customer"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	accounts.AssertExpectations(t)
}
