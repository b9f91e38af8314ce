package middleware

import (
	"net/http"

	"fastfood/internal/repository"

	"github.com/labstack/echo/v4"
)

// トークン発行後に停止・削除されたアカウントを弾く
func ActiveAccountGuard(accounts repository.AccountRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたuser_id を取得する
			userID, ok := c.Get(CtxUserIDKey).(int64)
			if !ok || userID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//DBから最新のアカウントを取得する
			account, err := accounts.FindByID(c.Request().Context(), userID)
			if err != nil || account == nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if !account.IsActive {
				return c.JSON(http.StatusForbidden, errorJSON("account is inactive"))
			}

			return next(c)
		}
	}
}
