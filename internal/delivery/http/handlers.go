package http

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/smartcity/trafficboard/internal/domain"
	"github.com/smartcity/trafficboard/internal/render"
	"github.com/smartcity/trafficboard/internal/service"
)

// Handler contains all HTTP handlers
type Handler struct {
	trafficSvc   *service.TrafficService
	dashboardSvc *service.DashboardService
	logger       *zap.Logger
}

// NewHandler creates a new handler
func NewHandler(trafficSvc *service.TrafficService, dashboardSvc *service.DashboardService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		trafficSvc:   trafficSvc,
		dashboardSvc: dashboardSvc,
		logger:       logger,
	}
}

// SelectionRequest is the body of POST /api/v1/dashboard/selection
type SelectionRequest struct {
	Area string `json:"area"`
}

// ChartResponse is one chart slot ready for `new Chart(ctx, config)`
type ChartResponse struct {
	Slot   string             `json:"slot"`
	Kind   domain.ChartKind   `json:"kind"`
	ID     string             `json:"id"`
	Config render.ChartConfig `json:"config"`
}

// SelectionResponse is the dashboard state returned to the page
type SelectionResponse struct {
	Area     domain.AreaName       `json:"area"`
	Snapshot domain.MetricSnapshot `json:"snapshot"`
	Charts   []ChartResponse       `json:"charts"`
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	code, status, catalog := fiber.StatusOK, "ok", "ok"
	if err := h.trafficSvc.Health(ctx); err != nil {
		h.logger.Warn("catalog health check failed", zap.Error(err))
		code, status, catalog = fiber.StatusServiceUnavailable, "degraded", "unavailable"
	}

	return c.Status(code).JSON(fiber.Map{
		"status":  status,
		"service": "trafficboard",
		"version": "1.0.0",
		"catalog": catalog,
	})
}

// GetAreas returns the area catalog for the dropdown
func (h *Handler) GetAreas(c *fiber.Ctx) error {
	areas, err := h.trafficSvc.Areas(c.Context())
	if err != nil {
		return h.fail(err, "Failed to fetch areas")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    areas,
		"count":   len(areas),
	})
}

// GetSnapshot returns headline metrics for an area
func (h *Handler) GetSnapshot(c *fiber.Ctx) error {
	area, err := areaParam(c)
	if err != nil {
		return err
	}

	data, err := h.trafficSvc.Snapshot(c.Context(), area)
	if err != nil {
		return h.fail(err, "Failed to compute snapshot")
	}
	return c.JSON(fiber.Map{"success": true, "data": data})
}

// GetHourly returns the hourly congestion series for an area
func (h *Handler) GetHourly(c *fiber.Ctx) error {
	area, err := areaParam(c)
	if err != nil {
		return err
	}

	data, err := h.trafficSvc.Hourly(c.Context(), area)
	if err != nil {
		return h.fail(err, "Failed to compute hourly data")
	}
	return c.JSON(fiber.Map{"success": true, "data": data})
}

// GetVehicles returns the vehicle-type distribution for an area
func (h *Handler) GetVehicles(c *fiber.Ctx) error {
	area, err := areaParam(c)
	if err != nil {
		return err
	}

	data, err := h.trafficSvc.Vehicles(c.Context(), area)
	if err != nil {
		return h.fail(err, "Failed to compute vehicle distribution")
	}
	return c.JSON(fiber.Map{"success": true, "data": data})
}

// GetWeekly returns the weekly trend for an area
func (h *Handler) GetWeekly(c *fiber.Ctx) error {
	area, err := areaParam(c)
	if err != nil {
		return err
	}

	data, err := h.trafficSvc.Weekly(c.Context(), area)
	if err != nil {
		return h.fail(err, "Failed to compute weekly trend")
	}
	return c.JSON(fiber.Map{"success": true, "data": data})
}

// GetReport returns every metric family for an area
func (h *Handler) GetReport(c *fiber.Ctx) error {
	area, err := areaParam(c)
	if err != nil {
		return err
	}

	data, err := h.trafficSvc.Report(c.Context(), area)
	if err != nil {
		return h.fail(err, "Failed to compute report")
	}
	return c.JSON(fiber.Map{"success": true, "data": data})
}

// SelectArea switches the dashboard to a new area and returns its charts
func (h *Handler) SelectArea(c *fiber.Ctx) error {
	var req SelectionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Area == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Area is required")
	}

	sel, err := h.dashboardSvc.Select(c.Context(), req.Area)
	if err != nil {
		return h.fail(err, "Failed to render dashboard")
	}

	resp, err := h.selectionResponse(sel)
	if err != nil {
		return h.fail(err, "Failed to render dashboard")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    resp,
	})
}

// GetSelection returns the current dashboard state
func (h *Handler) GetSelection(c *fiber.Ctx) error {
	sel, err := h.dashboardSvc.Current()
	if err != nil {
		return h.fail(err, "Failed to read dashboard state")
	}

	resp, err := h.selectionResponse(sel)
	if err != nil {
		return h.fail(err, "Failed to read dashboard state")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    resp,
	})
}

// GetHeatmap returns the congestion hotspots
func (h *Handler) GetHeatmap(c *fiber.Ctx) error {
	spots, err := h.trafficSvc.Hotspots(c.Context())
	if err != nil {
		return h.fail(err, "Failed to fetch heatmap data")
	}
	if spots == nil {
		spots = []domain.Hotspot{}
	}
	return c.JSON(spots)
}

// selectionResponse fails rather than send a chart the page cannot draw
func (h *Handler) selectionResponse(sel service.Selection) (SelectionResponse, error) {
	resp := SelectionResponse{
		Area:     sel.Area,
		Snapshot: sel.Snapshot,
		Charts:   make([]ChartResponse, 0, len(sel.Charts)),
	}
	for _, view := range sel.Charts {
		cfg, ok := view.Config.(render.ChartConfig)
		if !ok || cfg.Type == "" {
			return SelectionResponse{}, fmt.Errorf("http: chart %s (%s) has no Chart.js configuration", view.ID, view.Slot)
		}
		resp.Charts = append(resp.Charts, ChartResponse{
			Slot:   view.Slot,
			Kind:   view.Kind,
			ID:     view.ID,
			Config: cfg,
		})
	}
	return resp, nil
}

// fail maps service errors to HTTP errors
func (h *Handler) fail(err error, message string) error {
	switch {
	case errors.Is(err, domain.ErrUnknownArea):
		return fiber.NewError(fiber.StatusNotFound, "Unknown area")
	case errors.Is(err, domain.ErrNoSelection):
		return fiber.NewError(fiber.StatusConflict, "No area selected")
	}
	h.logger.Error(message, zap.Error(err))
	return fiber.NewError(fiber.StatusInternalServerError, message)
}

func areaParam(c *fiber.Ctx) (domain.AreaName, error) {
	area, err := url.PathUnescape(c.Params("area"))
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Malformed area name")
	}
	return area, nil
}

// ErrorHandler renders errors as {"error": true, "message": ...}
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
