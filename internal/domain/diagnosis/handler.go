package diagnosis

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/erx/erx/internal/platform/auth"
)

// Handler exposes the ICD-10 catalog and the text matcher over HTTP.
type Handler struct {
	matcher *Matcher
}

// NewHandler creates a new diagnosis handler.
func NewHandler(m *Matcher) *Handler {
	return &Handler{matcher: m}
}

// RegisterRoutes registers diagnosis routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/diagnoses", auth.RequireRole(auth.RoleDoctor, auth.RolePharmacist))
	g.GET("", h.ListEntries)
	g.GET("/categories", h.ListCategories)
	g.GET("/:code", h.GetEntry)
	g.POST("/match", h.MatchText)
	g.POST("/medications", h.SuggestMedications)
}

// ListEntries handles GET /api/v1/diagnoses?category=...
func (h *Handler) ListEntries(c echo.Context) error {
	return c.JSON(http.StatusOK, h.matcher.Entries(c.QueryParam("category")))
}

// ListCategories handles GET /api/v1/diagnoses/categories
func (h *Handler) ListCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.matcher.Categories())
}

// GetEntry handles GET /api/v1/diagnoses/:code
func (h *Handler) GetEntry(c echo.Context) error {
	code := c.Param("code")
	if err := c.Validate(&codeParam{Code: code}); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ICD-10 code")
	}
	entry, ok := h.matcher.Lookup(code)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "diagnosis code not found")
	}
	return c.JSON(http.StatusOK, entry)
}

// MatchText handles POST /api/v1/diagnoses/match
func (h *Handler) MatchText(c echo.Context) error {
	var req MatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	matches := h.matcher.Match(req.Text)
	return c.JSON(http.StatusOK, MatchResponse{Matches: matches, Total: len(matches)})
}

// SuggestMedications handles POST /api/v1/diagnoses/medications
func (h *Handler) SuggestMedications(c echo.Context) error {
	var req MedicationsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MedicationsResponse{Medications: h.matcher.SuggestMedications(req.Codes)})
}
