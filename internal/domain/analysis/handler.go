package analysis

import (
	"context"
	"errors"
	"net/http"

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
	g := api.Group("/analysis", auth.RequireRole(auth.RoleDoctor))
	g.POST("", h.Analyze)
	g.POST("/quick", h.QuickGenerate)
	g.POST("/transcribe", h.Transcribe)
	g.POST("/image", h.DescribeImage)
}

// Analyze handles POST /api/v1/analysis
func (h *Handler) Analyze(c echo.Context) error {
	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	patient, err := h.svc.PatientFor(ctx, req.PatientID, req.Age, req.Allergies)
	if err != nil {
		return serviceError(err)
	}
	res, err := h.svc.AnalyzeFor(ctx, req.Notes, patient)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// QuickGenerate handles POST /api/v1/analysis/quick
func (h *Handler) QuickGenerate(c echo.Context) error {
	var req QuickRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	patient, err := h.svc.PatientFor(ctx, req.PatientID, req.Age, req.Allergies)
	if err != nil {
		return serviceError(err)
	}
	res, err := h.svc.QuickGenerate(ctx, req.ChiefComplaint, patient.Age, patient.Allergies)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// Transcribe handles POST /api/v1/analysis/transcribe
func (h *Handler) Transcribe(c echo.Context) error {
	var req TranscribeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	text, err := h.svc.Transcribe(c.Request().Context(), req.AudioURL)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, TextResponse{Text: text})
}

// DescribeImage handles POST /api/v1/analysis/image
func (h *Handler) DescribeImage(c echo.Context) error {
	var req ImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	text, err := h.svc.DescribeImage(c.Request().Context(), req.ImageURL)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, TextResponse{Text: text})
}

func serviceError(err error) error {
	switch {
	case errors.Is(err, ErrUnknownPatient):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return echo.NewHTTPError(http.StatusGatewayTimeout, "analysis timed out")
	case errors.Is(err, context.Canceled):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "request cancelled")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
