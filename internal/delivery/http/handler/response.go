package handler

import (
	"errors"
	"net/http"
	"yacht-tracker/internal/usecase/assignment"
	appErrors "yacht-tracker/pkg/errors"
	"yacht-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
)

// statusForCode maps an application error code to its HTTP status.
func statusForCode(code string) int {
	switch code {
	case appErrors.CodeValidation:
		return http.StatusBadRequest
	case appErrors.CodeDeviceAlreadyAssigned, appErrors.CodeCabinOccupied:
		return http.StatusConflict
	case appErrors.CodeNotFound:
		return http.StatusNotFound
	case appErrors.CodeStore, appErrors.CodeFetchFailed:
		return http.StatusBadGateway
	case appErrors.CodeRefreshInFlight:
		return http.StatusAccepted
	case appErrors.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	code := appErrors.CodeOf(err)
	message := err.Error()
	var appErr *appErrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	utils.ErrorResponseWithCode(c, statusForCode(code), code, message)
}

func respondResult(c *gin.Context, successStatus int, message string, res assignment.Result) {
	if !res.Success {
		utils.ErrorResponseWithCode(c, statusForCode(res.Code), res.Code, res.Error)
		return
	}
	if res.Warning != "" {
		c.JSON(successStatus, gin.H{
			"success": true,
			"message": message,
			"data":    res.Assignment,
			"warning": res.Warning,
			"code":    res.Code,
		})
		return
	}
	utils.SuccessResponse(c, successStatus, message, res.Assignment)
}
