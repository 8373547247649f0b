package patient

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/erx/erx/internal/platform/auth"
	"github.com/erx/erx/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("/patients", auth.RequireRole(auth.RoleDoctor, auth.RolePharmacist))
	read.GET("", h.ListPatients)
	read.GET("/:id", h.GetPatient)
	read.GET("/:id/medications", h.GetMedications)

	write := api.Group("/patients", auth.RequireRole(auth.RoleDoctor))
	write.POST("", h.CreatePatient)
}

// CreatePatient handles POST /api/v1/patients
func (h *Handler) CreatePatient(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	p, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, p)
}

// ListPatients handles GET /api/v1/patients?q=
func (h *Handler) ListPatients(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), c.QueryParam("q"), pg.Limit, pg.Offset)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg, "/api/v1/patients"))
}

// GetPatient handles GET /api/v1/patients/:id
func (h *Handler) GetPatient(c echo.Context) error {
	p, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, p)
}

// GetMedications handles GET /api/v1/patients/:id/medications
func (h *Handler) GetMedications(c echo.Context) error {
	meds, err := h.svc.Medications(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, meds)
}

func errorResponse(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	case errors.Is(err, ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
