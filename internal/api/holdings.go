package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/portfoli/internal/domain/dto"
	"github.com/guttosm/portfoli/internal/domain/models"
)

// GetHolding godoc
// @Summary      Get a holding
// @Tags         holdings
// @Produce      json
// @Param        portfolioId  path      string  true  "Portfolio ID" format(uuid)
// @Param        holdingId    path      string  true  "Holding ID" format(uuid)
// @Success      200          {object}  dto.HoldingResponse
// @Failure      400          {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404          {object}  dto.ErrorResponse  "Not Found"
// @Router       /api/v1/portfolios/{portfolioId}/holdings/{holdingId} [get]
func (h *Handler) GetHolding(c *gin.Context) {
	pid, ok := pathID(c, "portfolioId", models.ParsePortfolioID)
	if !ok {
		return
	}
	hid, ok := pathID(c, "holdingId", models.ParseHoldingID)
	if !ok {
		return
	}
	r := h.portfolios.GetHolding(c.Request.Context(), pid, hid)
	if r.IsError() {
		fail(c, r.Err())
		return
	}
	c.JSON(http.StatusOK, dto.NewHoldingResponse(r.Value()))
}

// CreateHolding handles POST /api/v1/portfolios/{portfolioId}/holdings.
//
// The asset is looked up in the catalog by exchange and ticker, case
// insensitively. A portfolio holds each asset at most once.
//
// CreateHolding godoc
// @Summary      Add a holding
// @Description  Opens a zero-quantity position in a catalog asset
// @Tags         holdings
// @Accept       json
// @Produce      json
// @Param        portfolioId  path      string                    true  "Portfolio ID" format(uuid)
// @Param        body         body      dto.CreateHoldingRequest  true  "Asset"
// @Success      201          {object}  dto.CreatedResponse
// @Header       201          {string}  Location  "URL of the new holding"
// @Failure      400          {object}  dto.ErrorResponse  "Bad Request or duplicate holding"
// @Failure      404          {object}  dto.ErrorResponse  "Portfolio or asset not found"
// @Failure      409          {object}  dto.ErrorResponse  "Concurrent modification"
// @Router       /api/v1/portfolios/{portfolioId}/holdings [post]
func (h *Handler) CreateHolding(c *gin.Context) {
	pid, ok := pathID(c, "portfolioId", models.ParsePortfolioID)
	if !ok {
		return
	}
	var req dto.CreateHoldingRequest
	if !bindJSON(c, &req) {
		return
	}
	r := h.portfolios.CreateHolding(c.Request.Context(), pid, req.Exchange, req.Ticker)
	if r.IsError() {
		fail(c, r.Err())
		return
	}
	created(c, r.Value())
}

// DeleteHolding godoc
// @Summary      Remove a holding
// @Description  Removes the holding and all of its transactions
// @Tags         holdings
// @Param        portfolioId  path  string  true  "Portfolio ID" format(uuid)
// @Param        holdingId    path  string  true  "Holding ID" format(uuid)
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Router       /api/v1/portfolios/{portfolioId}/holdings/{holdingId} [delete]
func (h *Handler) DeleteHolding(c *gin.Context) {
	pid, ok := pathID(c, "portfolioId", models.ParsePortfolioID)
	if !ok {
		return
	}
	hid, ok := pathID(c, "holdingId", models.ParseHoldingID)
	if !ok {
		return
	}
	noContent(c, h.portfolios.DeleteHolding(c.Request.Context(), pid, hid))
}
