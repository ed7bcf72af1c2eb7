package middleware

import (
	"fmt"
	"strconv"

	"github.com/MileWise/milewise-backend/errors"
	"github.com/MileWise/milewise-backend/logger"
	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors attached to the gin context into JSON responses.
// AppErrors map to their HTTP status; binding errors become 400s; anything
// else is a sanitized 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		if appError, ok := err.(*errors.AppError); ok {
			statusCode := appError.GetHTTPStatus()
			logger.LogHTTPError(c, err, statusCode, fmt.Sprintf("%s error", appError.Type))

			response := map[string]interface{}{
				"type":    string(appError.Type),
				"message": appError.Message,
				"code":    strconv.Itoa(statusCode),
			}

			// Only include details for validation and not-found errors or in debug mode
			if appError.Detail != "" && (gin.IsDebugging() ||
				appError.Type == errors.ValidationError ||
				appError.Type == errors.NotFoundError ||
				appError.Type == errors.WalletNotFoundError ||
				appError.Type == errors.ItineraryNotFoundError ||
				appError.Type == errors.RateLimitError) {
				response["details"] = appError.Detail
			}

			c.JSON(statusCode, response)
			return
		}

		if c.Errors.Last().Type == gin.ErrorTypeBind {
			logger.LogHTTPError(c, err, 400, "Request binding error")

			response := map[string]interface{}{
				"type":    string(errors.ValidationError),
				"message": "Failed to bind request",
				"code":    "400",
			}
			if gin.IsDebugging() {
				response["details"] = err.Error()
			}
			c.JSON(400, response)
			return
		}

		logger.LogHTTPError(c, err, 500, "Unexpected server error")

		response := map[string]interface{}{
			"type":    string(errors.ServerError),
			"message": "Internal Server Error",
			"code":    "500",
		}
		if gin.IsDebugging() {
			response["details"] = err.Error()
		}
		c.JSON(500, response)
	}
}
