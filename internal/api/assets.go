package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/portfoli/internal/domain/dto"
	"github.com/guttosm/portfoli/internal/domain/models"
	"github.com/guttosm/portfoli/internal/domain/result"
	"github.com/guttosm/portfoli/internal/service"
)

// ListAssets godoc
// @Summary      List the asset catalog
// @Tags         assets
// @Produce      json
// @Success      200  {array}   dto.AssetResponse
// @Failure      500  {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/assets [get]
func (h *Handler) ListAssets(c *gin.Context) {
	r := h.assets.ListAssets(c.Request.Context())
	if r.IsError() {
		fail(c, r.Err())
		return
	}
	c.JSON(http.StatusOK, dto.NewAssetResponses(r.Value()))
}

// GetAsset godoc
// @Summary      Get an asset
// @Tags         assets
// @Produce      json
// @Param        assetId  path      string  true  "Asset ID" format(uuid)
// @Success      200      {object}  dto.AssetResponse
// @Failure      400      {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404      {object}  dto.ErrorResponse  "Not Found"
// @Router       /api/v1/assets/{assetId} [get]
func (h *Handler) GetAsset(c *gin.Context) {
	id, ok := pathID(c, "assetId", models.ParseAssetID)
	if !ok {
		return
	}
	r := h.assets.GetAsset(c.Request.Context(), id)
	if r.IsError() {
		fail(c, r.Err())
		return
	}
	c.JSON(http.StatusOK, dto.NewAssetResponse(r.Value()))
}

// FindAsset handles GET /api/v1/assets/lookup.
//
// Query Parameters:
//   - exchange (string, required): e.g. "NASDAQ", any casing.
//   - ticker (string, required): e.g. "AAPL", any casing.
//
// FindAsset godoc
// @Summary      Look up an asset by exchange and ticker
// @Tags         assets
// @Produce      json
// @Param        exchange  query     string  true  "Exchange" example(NASDAQ)
// @Param        ticker    query     string  true  "Ticker" example(AAPL)
// @Success      200       {object}  dto.AssetResponse
// @Failure      400       {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404       {object}  dto.ErrorResponse  "Not Found"
// @Router       /api/v1/assets/lookup [get]
func (h *Handler) FindAsset(c *gin.Context) {
	exchange := strings.TrimSpace(c.Query("exchange"))
	ticker := strings.TrimSpace(c.Query("ticker"))
	verrs := models.ValidationErrors{}
	if exchange == "" {
		verrs.Add("exchange", "is required")
	}
	if ticker == "" {
		verrs.Add("ticker", "is required")
	}
	if len(verrs) > 0 {
		fail(c, result.NewValidationError(verrs))
		return
	}

	r := h.assets.FindAsset(c.Request.Context(), exchange, ticker)
	if r.IsError() {
		fail(c, r.Err())
		return
	}
	c.JSON(http.StatusOK, dto.NewAssetResponse(r.Value()))
}

// CreateAsset godoc
// @Summary      Add an asset to the catalog
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateAssetRequest  true  "Asset"
// @Success      201   {object}  dto.CreatedResponse
// @Header       201   {string}  Location  "URL of the new asset"
// @Failure      400   {object}  dto.ErrorResponse  "Bad Request"
// @Failure      409   {object}  dto.ErrorResponse  "Asset already exists"
// @Router       /api/v1/assets [post]
func (h *Handler) CreateAsset(c *gin.Context) {
	var req dto.CreateAssetRequest
	if !bindJSON(c, &req) {
		return
	}
	r := h.assets.CreateAsset(c.Request.Context(), service.AssetInput{
		Exchange:  req.Exchange,
		Ticker:    req.Ticker,
		Name:      req.Name,
		AssetType: req.AssetType,
	})
	if r.IsError() {
		fail(c, r.Err())
		return
	}
	created(c, r.Value())
}

// DeleteAsset godoc
// @Summary      Remove an asset from the catalog
// @Description  Rejected with 409 while any portfolio holds the asset
// @Tags         assets
// @Param        assetId  path  string  true  "Asset ID" format(uuid)
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Failure      409  {object}  dto.ErrorResponse  "Asset in use"
// @Router       /api/v1/assets/{assetId} [delete]
func (h *Handler) DeleteAsset(c *gin.Context) {
	id, ok := pathID(c, "assetId", models.ParseAssetID)
	if !ok {
		return
	}
	noContent(c, h.assets.DeleteAsset(c.Request.Context(), id))
}
