package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"yacht-tracker/internal/domain/device"
	"yacht-tracker/internal/export"
	"yacht-tracker/internal/logger"
	"yacht-tracker/internal/middleware"
	"yacht-tracker/internal/tracking"
	appErrors "yacht-tracker/pkg/errors"
	"yacht-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ModeTracking = "tracking"
	ModeCabins   = "cabins"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type TrackingHandler struct {
	poller *tracking.Poller
	now    func() time.Time
}

func NewTrackingHandler(poller *tracking.Poller) *TrackingHandler {
	return &TrackingHandler{poller: poller, now: time.Now}
}

type viewQuery struct {
	Search      string `form:"search"`
	SortBy      string `form:"sort_by"`
	SortOrder   string `form:"sort_order"`
	GuestFilter string `form:"guest_filter"`
}

func (q viewQuery) toQuery() tracking.Query {
	return tracking.Query{
		Search:      q.Search,
		SortBy:      tracking.SortKey(q.SortBy),
		SortOrder:   tracking.SortOrder(q.SortOrder),
		GuestFilter: q.GuestFilter,
	}.Normalize()
}

type ModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=tracking cabins"`
}

// ViewResponse is a view plus the freshness of the snapshot it was built on.
type ViewResponse struct {
	*tracking.View
	FetchedAt  time.Time `json:"fetchedAt"`
	SourceTime time.Time `json:"sourceTime"`
	Stale      bool      `json:"stale"`
}

func (h *TrackingHandler) RegisterRoutes(router *gin.RouterGroup) {
	t := router.Group("/tracking")
	{
		t.GET("/view", h.GetView)
		t.GET("/status", h.GetStatus)
		t.PUT("/mode", h.SetMode)
		t.POST("/refresh", h.Refresh)
		t.GET("/analytics", h.GetAnalytics)
		t.GET("/export", h.Export)
	}
}

func (h *TrackingHandler) GetView(c *gin.Context) {
	var q viewQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.ErrorResponseWithCode(c, http.StatusBadRequest, appErrors.CodeValidation, "Invalid query parameters")
		return
	}

	snap, ok := h.snapshot(c)
	if !ok {
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Device view built successfully", ViewResponse{
		View:       tracking.BuildView(snap.Devices, q.toQuery()),
		FetchedAt:  snap.FetchedAt,
		SourceTime: snap.SourceTime,
		Stale:      h.poller.Status().Stale,
	})
}

func (h *TrackingHandler) GetStatus(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Tracking status retrieved successfully", h.poller.Status())
}

// SetMode resumes polling in tracking mode and suspends it in cabin mode.
func (h *TrackingHandler) SetMode(c *gin.Context) {
	var req ModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithCode(c, http.StatusBadRequest, appErrors.CodeValidation, "Invalid request body")
		return
	}
	req.Mode = strings.ToLower(strings.TrimSpace(req.Mode))
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithCode(c, http.StatusBadRequest, appErrors.CodeValidation, err.Error())
		return
	}

	var changed bool
	switch req.Mode {
	case ModeTracking:
		changed = h.poller.Start()
	case ModeCabins:
		changed = h.poller.Stop()
	}

	logger.WithRequestID(middleware.GetRequestID(c)).Info("Tracking mode set",
		zap.String("mode", req.Mode),
		zap.Bool("changed", changed),
	)
	utils.SuccessResponse(c, http.StatusOK, "Tracking mode updated", h.poller.Status())
}

func (h *TrackingHandler) Refresh(c *gin.Context) {
	err := h.poller.Refresh(c.Request.Context())
	switch {
	case err == nil:
		utils.SuccessResponse(c, http.StatusOK, "Snapshot refreshed", h.poller.Status())
	case errors.Is(err, tracking.ErrRefreshInFlight):
		c.JSON(http.StatusAccepted, utils.Response{
			Success: true,
			Message: "A refresh is already in progress",
			Data:    h.poller.Status(),
			Code:    appErrors.CodeRefreshInFlight,
		})
	case errors.Is(err, tracking.ErrFetchDiscarded):
		utils.SuccessResponse(c, http.StatusOK, "Refresh superseded by a mode change", h.poller.Status())
	default:
		respondError(c, appErrors.NewAppError(appErrors.CodeFetchFailed, "Failed to refresh device snapshot", err))
	}
}

func (h *TrackingHandler) GetAnalytics(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Device analytics computed successfully", tracking.Analyze(snap.Devices))
}

// Export downloads the devices of the current view as CSV or XLSX.
func (h *TrackingHandler) Export(c *gin.Context) {
	var q viewQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.ErrorResponseWithCode(c, http.StatusBadRequest, appErrors.CodeValidation, "Invalid query parameters")
		return
	}
	format := strings.ToLower(c.DefaultQuery("format", "csv"))
	if format != "csv" && format != "xlsx" {
		utils.ErrorResponseWithCode(c, http.StatusBadRequest, appErrors.CodeValidation, "format must be csv or xlsx")
		return
	}

	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	devices := tracking.BuildView(snap.Devices, q.toQuery()).Devices()
	now := h.now()
	filename := fmt.Sprintf("devices-%s.%s", now.UTC().Format("20060102-150405"), format)

	var (
		body        []byte
		contentType string
	)
	switch format {
	case "xlsx":
		data, err := export.BuildXLSX(devices, now)
		if err != nil {
			respondError(c, appErrors.NewAppError(appErrors.CodeInternal, "Failed to build export", err))
			return
		}
		body, contentType = data, xlsxContentType
	default:
		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, devices); err != nil {
			respondError(c, appErrors.NewAppError(appErrors.CodeInternal, "Failed to build export", err))
			return
		}
		body, contentType = buf.Bytes(), "text/csv; charset=utf-8"
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, body)
}

func (h *TrackingHandler) snapshot(c *gin.Context) (*device.Snapshot, bool) {
	snap := h.poller.Snapshot()
	if snap == nil {
		err := appErrors.NewAppError(appErrors.CodeFetchFailed, "No device snapshot available yet", device.ErrSnapshotUnavailable)
		utils.ErrorResponseWithCode(c, http.StatusServiceUnavailable, err.Code, err.Message)
		return nil, false
	}
	return snap, true
}
