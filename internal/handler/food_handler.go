package handler

import (
	"net/http"
	"strconv"

	"fastfood/internal/usecase"

	"github.com/labstack/echo/v4"
)

type FoodHandler struct {
	uc *usecase.FoodUsecase
}

func NewFoodHandler(uc *usecase.FoodUsecase) *FoodHandler {
	return &FoodHandler{uc: uc}
}

// 認証なしで見られる
func (h *FoodHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.list)
	g.GET("/:id", h.get)
}

func (h *FoodHandler) list(c echo.Context) error {
	page, limit, err := pageParams(c, 20)
	if err != nil {
		return writeError(c, err)
	}

	popular := false
	if v := c.QueryParam("popular"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid popular"})
		}
		popular = b
	}

	out, err := h.uc.ListFoods(c.Request().Context(), usecase.ListFoodsInput{
		Page:        page,
		Limit:       limit,
		Q:           c.QueryParam("q"),
		PopularOnly: popular,
		Sort:        c.QueryParam("sort"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *FoodHandler) get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	f, err := h.uc.GetFood(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, f)
}
