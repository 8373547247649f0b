package pharmacy

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/erx/erx/internal/platform/auth"
)

type Handler struct {
	dir *Directory
}

func NewHandler(dir *Directory) *Handler {
	return &Handler{dir: dir}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/pharmacies", auth.RequireRole(auth.RoleDoctor, auth.RolePharmacist))
	g.GET("", h.ListPharmacies)
	g.GET("/:id", h.GetPharmacy)
}

// ListPharmacies handles GET /api/v1/pharmacies?q=
func (h *Handler) ListPharmacies(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dir.List(c.QueryParam("q")))
}

// GetPharmacy handles GET /api/v1/pharmacies/:id
func (h *Handler) GetPharmacy(c echo.Context) error {
	p, err := h.dir.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "pharmacy not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}
