package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"fastfood/internal/domain/model"
	"fastfood/internal/usecase"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	uc        *usecase.PaymentUsecase
	statusURL string
}

// statusURLは決済結果を表示するフロントのページ
func NewPaymentHandler(uc *usecase.PaymentUsecase, statusURL string) *PaymentHandler {
	return &PaymentHandler{uc: uc, statusURL: statusURL}
}

type PaymentURLRequest struct {
	OrderID int64 `json:"order_id" validate:"required,gt=0"`
}

// 認証が必要な側
func (h *PaymentHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/create-url", h.createURL)
}

// ゲートウェイからのリダイレクト（認証なし、署名で検証）
func (h *PaymentHandler) RegisterCallback(e *echo.Echo) {
	e.GET("/payment/return", h.callback)
}

func (h *PaymentHandler) createURL(c echo.Context) error {
	p, ok := principal(c)
	if !ok {
		return unauthorized(c)
	}

	var req PaymentURLRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.CreatePaymentURL(c.Request().Context(), p, req.OrderID, c.RealIP())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PaymentHandler) callback(c echo.Context) error {
	params := make(map[string]string)
	for k, v := range c.QueryParams() {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}

	res, err := h.uc.HandleCallback(c.Request().Context(), params)
	if err != nil {
		//署名不正はJSONで返す。それ以外は失敗としてフロントへ
		if errors.Is(err, usecase.ErrSignatureInvalid) {
			return writeError(c, err)
		}
		if he, ok := usecase.AsHTTPError(err); ok && he.Status >= http.StatusInternalServerError {
			return writeError(c, err)
		}
		return c.Redirect(http.StatusFound, h.redirectURL("failed", 0))
	}

	status := "failed"
	if res.Status == model.PaymentStatusCompleted {
		status = "completed"
	}
	return c.Redirect(http.StatusFound, h.redirectURL(status, res.OrderID))
}

func (h *PaymentHandler) redirectURL(status string, orderID int64) string {
	q := url.Values{}
	q.Set("status", status)
	if orderID > 0 {
		q.Set("order_id", strconv.FormatInt(orderID, 10))
	}
	return h.statusURL + "?" + q.Encode()
}
