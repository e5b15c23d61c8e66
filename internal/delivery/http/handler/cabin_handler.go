package handler

import (
	"net/http"
	"yacht-tracker/internal/usecase/assignment"
	"yacht-tracker/internal/usecase/cabin"
	appErrors "yacht-tracker/pkg/errors"
	"yacht-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
)

type CabinHandler struct {
	cabins      *cabin.Service
	assignments *assignment.Service
}

func NewCabinHandler(cabins *cabin.Service, assignments *assignment.Service) *CabinHandler {
	return &CabinHandler{cabins: cabins, assignments: assignments}
}

func (h *CabinHandler) RegisterRoutes(router *gin.RouterGroup) {
	cabins := router.Group("/cabins")
	{
		cabins.GET("", h.ListCabins)
		cabins.GET("/status", h.CabinStatus)
		cabins.POST("/:number/guests", h.AssignGuest)
		cabins.DELETE("/:number/guests", h.UnassignGuest)
	}

	router.GET("/wristbands/available", h.AvailableWristbands)
}

func (h *CabinHandler) ListCabins(c *gin.Context) {
	cabins, err := h.cabins.Cabins(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Cabins retrieved successfully", cabins)
}

func (h *CabinHandler) CabinStatus(c *gin.Context) {
	status, err := h.cabins.CabinStatus(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Cabin status retrieved successfully", status)
}

func (h *CabinHandler) AvailableWristbands(c *gin.Context) {
	wristbands, err := h.cabins.AvailableWristbands(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Available wristbands retrieved successfully", wristbands)
}

func (h *CabinHandler) AssignGuest(c *gin.Context) {
	var req assignment.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithCode(c, http.StatusBadRequest, appErrors.CodeValidation, "Invalid request body")
		return
	}
	req.CabinNumber = c.Param("number")

	res := h.assignments.Assign(c.Request.Context(), &req)
	respondResult(c, http.StatusCreated, "Guest assigned successfully", res)
}

func (h *CabinHandler) UnassignGuest(c *gin.Context) {
	res := h.assignments.Unassign(c.Request.Context(), c.Param("number"))
	respondResult(c, http.StatusOK, "Guest unassigned successfully", res)
}
