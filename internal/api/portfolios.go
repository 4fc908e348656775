package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/portfoli/internal/domain/dto"
	"github.com/guttosm/portfoli/internal/domain/models"
	"github.com/guttosm/portfoli/internal/domain/result"
)

// ListPortfolios godoc
// @Summary      List portfolios
// @Description  Returns id and name of every portfolio, ordered by name
// @Tags         portfolios
// @Produce      json
// @Success      200  {array}   dto.PortfolioSummaryResponse
// @Failure      500  {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/portfolios [get]
func (h *Handler) ListPortfolios(c *gin.Context) {
	r := h.portfolios.ListPortfolios(c.Request.Context())
	if r.IsError() {
		fail(c, r.Err())
		return
	}
	c.JSON(http.StatusOK, dto.NewPortfolioSummaries(r.Value()))
}

// GetPortfolio handles GET /api/v1/portfolios/{portfolioId}.
//
// Responses:
//   - 200 OK: the portfolio with its holdings and their transactions.
//   - 400 Bad Request: portfolioId is not a UUID.
//   - 404 Not Found: no such portfolio.
//
// GetPortfolio godoc
// @Summary      Get a portfolio
// @Description  Returns the full portfolio: holdings, quantities and transaction history
// @Tags         portfolios
// @Produce      json
// @Param        portfolioId  path      string  true  "Portfolio ID" format(uuid)
// @Success      200          {object}  dto.PortfolioResponse
// @Failure      400          {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404          {object}  dto.ErrorResponse  "Not Found"
// @Failure      500          {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/portfolios/{portfolioId} [get]
func (h *Handler) GetPortfolio(c *gin.Context) {
	id, ok := pathID(c, "portfolioId", models.ParsePortfolioID)
	if !ok {
		return
	}
	result.Match(h.portfolios.GetPortfolio(c.Request.Context(), id),
		func(p *models.Portfolio) any {
			c.JSON(http.StatusOK, dto.NewPortfolioResponse(p))
			return nil
		},
		func(e *result.Error) any {
			fail(c, e)
			return nil
		},
	)
}

// CreatePortfolio godoc
// @Summary      Create a portfolio
// @Tags         portfolios
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreatePortfolioRequest  true  "Portfolio"
// @Success      201   {object}  dto.CreatedResponse
// @Header       201   {string}  Location  "URL of the new portfolio"
// @Failure      400   {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500   {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/portfolios [post]
func (h *Handler) CreatePortfolio(c *gin.Context) {
	var req dto.CreatePortfolioRequest
	if !bindJSON(c, &req) {
		return
	}
	r := h.portfolios.CreatePortfolio(c.Request.Context(), req.Name)
	if r.IsError() {
		fail(c, r.Err())
		return
	}
	created(c, r.Value())
}

// RenamePortfolio godoc
// @Summary      Rename a portfolio
// @Tags         portfolios
// @Accept       json
// @Param        portfolioId  path  string                      true  "Portfolio ID" format(uuid)
// @Param        body         body  dto.RenamePortfolioRequest  true  "New name"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Failure      409  {object}  dto.ErrorResponse  "Concurrent modification"
// @Router       /api/v1/portfolios/{portfolioId} [patch]
func (h *Handler) RenamePortfolio(c *gin.Context) {
	id, ok := pathID(c, "portfolioId", models.ParsePortfolioID)
	if !ok {
		return
	}
	var req dto.RenamePortfolioRequest
	if !bindJSON(c, &req) {
		return
	}
	noContent(c, h.portfolios.RenamePortfolio(c.Request.Context(), id, req.Name))
}

// DeletePortfolio godoc
// @Summary      Delete a portfolio
// @Description  Removes the portfolio together with its holdings and transactions
// @Tags         portfolios
// @Param        portfolioId  path  string  true  "Portfolio ID" format(uuid)
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Router       /api/v1/portfolios/{portfolioId} [delete]
func (h *Handler) DeletePortfolio(c *gin.Context) {
	id, ok := pathID(c, "portfolioId", models.ParsePortfolioID)
	if !ok {
		return
	}
	noContent(c, h.portfolios.DeletePortfolio(c.Request.Context(), id))
}

func noContent(c *gin.Context, r result.Result[result.Empty]) {
	if r.IsError() {
		fail(c, r.Err())
		return
	}
	c.Status(http.StatusNoContent)
}
