package server

import (
	"net/http"

	"fastfood/internal/domain/model"
	"fastfood/internal/handler"
	"fastfood/internal/middleware"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth       *handler.AuthHandler
	Account    *handler.AccountHandler
	Address    *handler.AddressHandler
	Food       *handler.FoodHandler
	Cart       *handler.CartHandler
	Order      *handler.OrderHandler
	Payment    *handler.PaymentHandler
	AdminOrder *handler.AdminOrderHandler
	AdminUser  *handler.AdminUserHandler
	AuditLog   *handler.AdminAuditLogHandler
}

func RegisterRoutes(e *echo.Echo, d Deps, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	//認証（トークンバケットで制限）
	h.Auth.RegisterRoutes(e.Group("/auth", middleware.RateLimit(d.RateLimit, d.Redis)))

	//商品は公開
	h.Food.RegisterRoutes(e.Group("/foods"))

	//ゲートウェイからのリダイレクト（JWTなし、署名で検証）
	h.Payment.RegisterCallback(e)

	//顧客向け：JWT + 有効アカウント + Customer
	customer := []echo.MiddlewareFunc{
		middleware.AuthJWT(d.Tokens),
		middleware.ActiveAccountGuard(d.Accounts),
		middleware.RequireRole(model.RoleCustomer),
	}
	account := e.Group("/account", customer...)
	h.Account.RegisterRoutes(account)
	h.Address.RegisterRoutes(account)
	h.Cart.RegisterRoutes(e.Group("/cart", customer...))
	h.Order.RegisterRoutes(e.Group("/order", customer...))
	h.Payment.RegisterRoutes(e.Group("/payment", customer...))

	//管理：注文はAdmin/Employee、トークン失効と監査ログはAdminのみ
	staff := e.Group("/admin",
		middleware.AuthJWT(d.Tokens),
		middleware.ActiveAccountGuard(d.Accounts),
		middleware.RequireRole(model.RoleAdmin, model.RoleEmployee),
	)
	h.AdminOrder.RegisterRoutes(staff)
	admin := staff.Group("", middleware.RequireRole(model.RoleAdmin))
	h.AdminUser.RegisterRoutes(admin)
	h.AuditLog.RegisterRoutes(admin)
}
