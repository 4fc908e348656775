package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/guttosm/portfoli/internal/domain/dto"
	"github.com/guttosm/portfoli/internal/domain/result"
	"github.com/guttosm/portfoli/internal/middleware"
	"github.com/guttosm/portfoli/internal/service"
)

// Handler exposes the portfolio and asset use cases over HTTP.
//
// Responsibilities:
//   - Parse path IDs and bind JSON bodies, rejecting malformed input with 400
//   - Call the service layer with the request context
//   - Translate results into response DTOs, or into dto.ErrorResponse with the
//     status of the failure category
type Handler struct {
	portfolios service.PortfolioService
	assets     service.AssetService
}

// NewHandler constructs a Handler over the given services.
func NewHandler(portfolios service.PortfolioService, assets service.AssetService) *Handler {
	return &Handler{portfolios: portfolios, assets: assets}
}

// pathID parses the named path parameter. On failure it writes a 400 with a
// field error for that parameter and returns false.
func pathID[T any](c *gin.Context, param string, parse func(string) (T, error)) (T, bool) {
	id, err := parse(c.Param(param))
	if err != nil {
		middleware.AbortWithResult(c, result.NewFieldError(param, "must be a valid UUID"))
		return id, false
	}
	return id, true
}

// bindJSON decodes the body into dst. Binding-tag violations become field
// errors keyed by JSON name; undecodable bodies become a plain 400.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string][]string, len(verrs))
		for _, fe := range verrs {
			name := jsonName(fe.Field())
			fields[name] = append(fields[name], fmt.Sprintf("failed on '%s'", fe.Tag()))
		}
		middleware.AbortWithResult(c, result.NewValidationError(fields))
		return false
	}
	middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body", err)
	return false
}

// jsonName maps a request struct field to its JSON key. Request fields are
// tagged with their name in lower camel case.
func jsonName(field string) string {
	r, size := utf8.DecodeRuneInString(field)
	if r == utf8.RuneError {
		return field
	}
	return string(unicode.ToLower(r)) + field[size:]
}

// fail writes a use-case failure.
func fail(c *gin.Context, e *result.Error) {
	middleware.AbortWithResult(c, e)
}

// created answers 201 with the new resource id and its location below the
// request path.
func created(c *gin.Context, id fmt.Stringer) {
	location := strings.TrimSuffix(c.Request.URL.Path, "/") + "/" + id.String()
	c.Header("Location", location)
	c.JSON(http.StatusCreated, dto.CreatedResponse{ID: id.String()})
}
