package middleware

import (
	"net/http"
	"strings"

	"fastfood/internal/domain/model"
	"fastfood/internal/infra/token"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey   = "user_id"  // int64
	CtxUsernameKey = "username" // string
	CtxRolesKey    = "roles"    // []string
)

// アクセストークンの検証
type TokenParser interface {
	Parse(raw string) (*token.Claims, error)
}

// bearerAuth用のJWT検証ミドルウェア。
func AuthJWT(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//署名・issuer・audience・期限を検証
			claims, err := parser.Parse(rawToken)
			if err != nil || claims.UserID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//contextへ保存
			c.Set(CtxUserIDKey, claims.UserID)
			c.Set(CtxUsernameKey, claims.Name)
			c.Set(CtxRolesKey, claims.Roles)

			return next(c)
		}
	}
}

// AuthJWTが入れた値から呼び出し元を組み立てる
func PrincipalFrom(c echo.Context) (model.Principal, bool) {
	id, ok := c.Get(CtxUserIDKey).(int64)
	if !ok || id <= 0 {
		return model.Principal{}, false
	}
	name, _ := c.Get(CtxUsernameKey).(string)
	roles, _ := c.Get(CtxRolesKey).([]string)
	return model.Principal{AccountID: id, Username: name, Roles: roles}, true
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
