package drug

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/erx/erx/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/drugs", auth.RequireRole(auth.RoleDoctor, auth.RolePharmacist))
	g.GET("", h.SearchDrugs)
	g.GET("/:id", h.GetDrug)
}

// SearchDrugs handles GET /api/v1/drugs?q=&limit=
func (h *Handler) SearchDrugs(c echo.Context) error {
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = n
	}
	drugs, err := h.svc.SearchDrugs(c.Request().Context(), c.QueryParam("q"), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, drugs)
}

// GetDrug handles GET /api/v1/drugs/:id
func (h *Handler) GetDrug(c echo.Context) error {
	d, err := h.svc.GetDrug(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "drug not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}
