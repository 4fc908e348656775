package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/portfoli/internal/domain/dto"
	"github.com/guttosm/portfoli/internal/domain/models"
	"github.com/guttosm/portfoli/internal/service"
)

// GetTransaction godoc
// @Summary      Get a transaction
// @Tags         transactions
// @Produce      json
// @Param        portfolioId    path      string  true  "Portfolio ID" format(uuid)
// @Param        holdingId      path      string  true  "Holding ID" format(uuid)
// @Param        transactionId  path      string  true  "Transaction ID" format(uuid)
// @Success      200            {object}  dto.TransactionResponse
// @Failure      400            {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404            {object}  dto.ErrorResponse  "Not Found"
// @Router       /api/v1/portfolios/{portfolioId}/holdings/{holdingId}/transactions/{transactionId} [get]
func (h *Handler) GetTransaction(c *gin.Context) {
	pid, hid, ok := holdingPath(c)
	if !ok {
		return
	}
	tid, ok := pathID(c, "transactionId", models.ParseTransactionID)
	if !ok {
		return
	}
	r := h.portfolios.GetTransaction(c.Request.Context(), pid, hid, tid)
	if r.IsError() {
		fail(c, r.Err())
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionResponse(r.Value()))
}

// CreateTransaction handles POST .../holdings/{holdingId}/transactions.
//
// Responses:
//   - 201 Created: the transaction was recorded and the quantity updated.
//   - 400 Bad Request: invalid fields, or a sell that would take the
//     holding's quantity below zero.
//   - 404 Not Found: no such portfolio or holding.
//   - 409 Conflict: the portfolio changed concurrently; retry.
//
// CreateTransaction godoc
// @Summary      Record a buy or sell
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        portfolioId  path      string                        true  "Portfolio ID" format(uuid)
// @Param        holdingId    path      string                        true  "Holding ID" format(uuid)
// @Param        body         body      dto.CreateTransactionRequest  true  "Transaction"
// @Success      201          {object}  dto.CreatedResponse
// @Header       201          {string}  Location  "URL of the new transaction"
// @Failure      400          {object}  dto.ErrorResponse  "Bad Request or negative quantity"
// @Failure      404          {object}  dto.ErrorResponse  "Not Found"
// @Failure      409          {object}  dto.ErrorResponse  "Concurrent modification"
// @Router       /api/v1/portfolios/{portfolioId}/holdings/{holdingId}/transactions [post]
func (h *Handler) CreateTransaction(c *gin.Context) {
	pid, hid, ok := holdingPath(c)
	if !ok {
		return
	}
	var req dto.CreateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	in := service.TransactionInput{
		Type:       req.Type,
		Date:       req.Date,
		Quantity:   req.Quantity,
		Price:      req.Price,
		Commission: req.Commission,
	}
	r := h.portfolios.CreateTransaction(c.Request.Context(), pid, hid, in)
	if r.IsError() {
		fail(c, r.Err())
		return
	}
	created(c, r.Value())
}

// DeleteTransaction godoc
// @Summary      Remove a transaction
// @Description  Rejected when the remaining history would take the quantity below zero
// @Tags         transactions
// @Param        portfolioId    path  string  true  "Portfolio ID" format(uuid)
// @Param        holdingId      path  string  true  "Holding ID" format(uuid)
// @Param        transactionId  path  string  true  "Transaction ID" format(uuid)
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse  "Bad Request or negative quantity"
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Router       /api/v1/portfolios/{portfolioId}/holdings/{holdingId}/transactions/{transactionId} [delete]
func (h *Handler) DeleteTransaction(c *gin.Context) {
	pid, hid, ok := holdingPath(c)
	if !ok {
		return
	}
	tid, ok := pathID(c, "transactionId", models.ParseTransactionID)
	if !ok {
		return
	}
	noContent(c, h.portfolios.DeleteTransaction(c.Request.Context(), pid, hid, tid))
}

func holdingPath(c *gin.Context) (models.PortfolioID, models.HoldingID, bool) {
	pid, ok := pathID(c, "portfolioId", models.ParsePortfolioID)
	if !ok {
		return pid, models.HoldingID{}, false
	}
	hid, ok := pathID(c, "holdingId", models.ParseHoldingID)
	return pid, hid, ok
}
