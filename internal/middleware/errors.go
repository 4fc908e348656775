package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/portfoli/internal/domain/dto"
	"github.com/guttosm/portfoli/internal/domain/result"
	"github.com/guttosm/portfoli/internal/logger"
)

// ErrorHandler renders the last error a handler attached with c.Error when
// nothing has been written yet. A *result.Error keeps its category status;
// anything else is a 500 whose detail is logged, not returned.
var ErrorHandler gin.HandlerFunc = func(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	err := c.Errors.Last().Err

	var re *result.Error
	if errors.As(err, &re) {
		AbortWithResult(c, re)
		return
	}
	logger.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled handler error")
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", nil))
}

// AbortWithError stops the chain and writes status with message and err's
// text as details.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}

// AbortWithResult writes a use-case failure with the status of its category.
func AbortWithResult(c *gin.Context, e *result.Error) {
	c.AbortWithStatusJSON(e.HTTPStatus(), dto.FromResultError(e))
}
