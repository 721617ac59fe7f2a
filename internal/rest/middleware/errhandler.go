package middleware

import (
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/logger"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/sentry"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

// ErrorHandler middleware renders the last handler error as an ErrorResponse.
// Server side failures are logged and reported to Sentry.
func ErrorHandler(log *logger.Logger, sentrySvc *sentry.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		ctx := c.Request.Context()
		status := ierr.HTTPStatusFromErr(err)

		if status >= http.StatusInternalServerError {
			log.Errorw("request failed",
				"path", c.FullPath(),
				"status", status,
				"request_id", types.GetRequestID(ctx),
				"error", err,
			)
			sentrySvc.CaptureContextException(ctx, err)
		} else {
			log.Debugw("request rejected",
				"path", c.FullPath(),
				"status", status,
				"error", err,
			)
			sentrySvc.AddBreadcrumb("http", err.Error(), map[string]interface{}{
				"path":   c.FullPath(),
				"status": status,
			})
		}

		if c.Writer.Written() {
			return
		}

		c.JSON(status, ierr.ErrorResponse{
			Success: false,
			Error: ierr.ErrorDetail{
				Display:   getDisplayMessage(err),
				Code:      ierr.CodeFromErr(err),
				RequestID: types.GetRequestID(ctx),
				Details:   ierr.ReportableDetails(err),
			},
		})
	}
}

func getDisplayMessage(err error) string {
	if hints := errors.GetAllHints(err); len(hints) > 0 {
		// Get the first non-empty hint - GetAllHints is post-order traversal
		for _, hint := range hints {
			if hint = strings.TrimSpace(hint); hint != "" {
				return hint
			}
		}
	}

	// fallback to the error message
	return "An unexpected error occurred"
}
