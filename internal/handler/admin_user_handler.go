package handler

import (
	"net/http"
	"strconv"

	auth "fastfood/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

type AdminUserHandler struct {
	uc *auth.RevokeTokensUsecase
}

func NewAdminUserHandler(uc *auth.RevokeTokensUsecase) *AdminUserHandler {
	return &AdminUserHandler{uc: uc}
}

// gはAdmin限定
func (h *AdminUserHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/accounts/:id/revoke-tokens", h.RevokeTokens)
}

func (h *AdminUserHandler) RevokeTokens(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}

	accountID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || accountID <= 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid account_id"})
	}

	out, err := h.uc.Execute(c.Request().Context(), p.AccountID, accountID)
	if err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
