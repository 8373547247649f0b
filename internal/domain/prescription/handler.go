package prescription

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
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
	// Read endpoints – doctor, pharmacist
	read := api.Group("", auth.RequireRole(auth.RoleDoctor, auth.RolePharmacist))
	read.GET("/prescriptions", h.ListPrescriptions)
	read.GET("/prescriptions/:id", h.GetPrescription)
	read.GET("/refills", h.ListRefills)
	read.GET("/refills/:id", h.GetRefill)

	// Prescriber endpoints – doctor
	prescriber := api.Group("", auth.RequireRole(auth.RoleDoctor))
	prescriber.POST("/prescriptions", h.CreatePrescription)
	prescriber.POST("/refills/:id/approve", h.ApproveRefill)
	prescriber.POST("/refills/:id/deny", h.DenyRefill)

	// Pharmacy endpoints – pharmacist
	pharmacy := api.Group("", auth.RequireRole(auth.RolePharmacist))
	pharmacy.POST("/prescriptions/:id/approve", h.ApprovePrescription)
	pharmacy.POST("/prescriptions/:id/reject", h.RejectPrescription)
	pharmacy.POST("/prescriptions/:id/dispense", h.DispensePrescription)
	pharmacy.POST("/refills", h.RequestRefill)

	// Reports – admin only
	reports := api.Group("/reports", auth.RequireRole(auth.RoleAdmin))
	reports.GET("/prescriptions", h.Report)
}

// CreatePrescription handles POST /api/v1/prescriptions
func (h *Handler) CreatePrescription(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	prescriber := auth.UserNameFromContext(ctx)
	if prescriber == "" {
		prescriber = auth.UserIDFromContext(ctx)
	}
	p, err := h.svc.Create(ctx, req, prescriber)
	if err != nil {
		return errorResponse(err, "not found")
	}
	return c.JSON(http.StatusCreated, p)
}

// ListPrescriptions handles GET /api/v1/prescriptions?status=&patient_id=&controlled=
func (h *Handler) ListPrescriptions(c echo.Context) error {
	var f ListFilter
	if s := c.QueryParam("status"); s != "" {
		f.Status = Status(s)
		if !validStatus(f.Status) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
		}
	}
	f.PatientID = c.QueryParam("patient_id")
	if v := c.QueryParam("controlled"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid controlled flag")
		}
		f.Controlled = &b
	}

	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), f, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg, "/api/v1/prescriptions"))
}

// GetPrescription handles GET /api/v1/prescriptions/:id
func (h *Handler) GetPrescription(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return errorResponse(err, "prescription not found")
	}
	return c.JSON(http.StatusOK, p)
}

// ApprovePrescription handles POST /api/v1/prescriptions/:id/approve
func (h *Handler) ApprovePrescription(c echo.Context) error {
	return h.changeStatus(c, h.svc.Approve)
}

// RejectPrescription handles POST /api/v1/prescriptions/:id/reject
func (h *Handler) RejectPrescription(c echo.Context) error {
	return h.changeStatus(c, h.svc.Reject)
}

// DispensePrescription handles POST /api/v1/prescriptions/:id/dispense
func (h *Handler) DispensePrescription(c echo.Context) error {
	return h.changeStatus(c, h.svc.Dispense)
}

type statusFunc func(ctx context.Context, id uuid.UUID) (*Prescription, error)

func (h *Handler) changeStatus(c echo.Context, fn statusFunc) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := fn(c.Request().Context(), id)
	if err != nil {
		return errorResponse(err, "prescription not found")
	}
	return c.JSON(http.StatusOK, p)
}

// RequestRefill handles POST /api/v1/refills
func (h *Handler) RequestRefill(c echo.Context) error {
	var req RefillCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	rr, err := h.svc.RequestRefill(c.Request().Context(), req)
	if err != nil {
		return errorResponse(err, "prescription not found")
	}
	return c.JSON(http.StatusCreated, rr)
}

// ListRefills handles GET /api/v1/refills?status=
func (h *Handler) ListRefills(c echo.Context) error {
	status := RefillStatus(c.QueryParam("status"))
	switch status {
	case "", RefillPending, RefillApproved, RefillDenied:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListRefills(c.Request().Context(), status, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg, "/api/v1/refills"))
}

// GetRefill handles GET /api/v1/refills/:id
func (h *Handler) GetRefill(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	rr, err := h.svc.GetRefill(c.Request().Context(), id)
	if err != nil {
		return errorResponse(err, "refill request not found")
	}
	return c.JSON(http.StatusOK, rr)
}

// ApproveRefill handles POST /api/v1/refills/:id/approve
func (h *Handler) ApproveRefill(c echo.Context) error {
	return h.decideRefill(c, h.svc.ApproveRefill)
}

// DenyRefill handles POST /api/v1/refills/:id/deny
func (h *Handler) DenyRefill(c echo.Context) error {
	return h.decideRefill(c, h.svc.DenyRefill)
}

func (h *Handler) decideRefill(c echo.Context, fn func(ctx context.Context, id uuid.UUID) (*RefillRequest, error)) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	rr, err := fn(c.Request().Context(), id)
	if err != nil {
		return errorResponse(err, "refill request not found")
	}
	return c.JSON(http.StatusOK, rr)
}

// Report handles GET /api/v1/reports/prescriptions
func (h *Handler) Report(c echo.Context) error {
	sum, err := h.svc.Summary(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, sum)
}

func errorResponse(err error, notFound string) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, notFound)
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrNoRefills):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func validStatus(s Status) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusDispensed:
		return true
	}
	return false
}
