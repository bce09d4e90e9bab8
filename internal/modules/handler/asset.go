package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/memodb-io/assetd/internal/modules/model"
	"github.com/memodb-io/assetd/internal/modules/serializer"
	"github.com/memodb-io/assetd/internal/modules/service"
)

type AssetHandler struct {
	svc service.AssetService
	gc  service.GCService
}

func NewAssetHandler(svc service.AssetService, gc service.GCService) *AssetHandler {
	return &AssetHandler{svc: svc, gc: gc}
}

// respondErr maps the service error taxonomy to boundary codes. Unknown
// failures are always surfaced as the opaque internal-error envelope.
func respondErr(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
	case errors.Is(err, service.ErrAssetNotFound):
		c.JSON(http.StatusNotFound, serializer.NotFoundErr("asset not found"))
	default:
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
	}
}

type AddAssetReq struct {
	AssetType string          `json:"assetType" binding:"required" example:"IMAGE"`
	Label     string          `json:"label" binding:"required" example:"cat.png"`
	Content   model.AssetData `json:"content" binding:"required"`
	Origin    json.RawMessage `json:"origin" binding:"required" swaggertype:"object"`
	Metadata  json.RawMessage `json:"metadata" binding:"required" swaggertype:"object"`
	ContextID *string         `json:"contextId,omitempty" example:"GLOBAL"`
	ScopeID   *string         `json:"scopeId,omitempty" example:"APP_CHAT"`
}

type AddAssetResp struct {
	ID uuid.UUID `json:"id"`
}

// AddAsset godoc
//
//	@Summary		Add asset
//	@Description	Persist a new asset; all immutable fields are supplied here
//	@Tags			asset
//	@Accept			json
//	@Produce		json
//	@Param			body	body	AddAssetReq	true	"Asset to add"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=AddAssetResp}
//	@Router			/asset [post]
func (h *AssetHandler) AddAsset(c *gin.Context) {
	req := AddAssetReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	in := service.AddAssetInput{
		AssetType: model.AssetType(req.AssetType),
		Label:     req.Label,
		Data:      req.Content,
		Origin:    req.Origin,
		Metadata:  req.Metadata,
	}
	if req.ContextID != nil {
		ctxID := model.ContextID(*req.ContextID)
		in.ContextID = &ctxID
	}
	if req.ScopeID != nil {
		scID := model.ScopeID(*req.ScopeID)
		in.ScopeID = &scID
	}

	id, err := h.svc.Add(c.Request.Context(), in)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: AddAssetResp{ID: id}})
}

// GetAsset godoc
//
//	@Summary		Get asset
//	@Description	Point lookup by id
//	@Tags			asset
//	@Produce		json
//	@Param			asset_id	path	string	true	"Asset ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Asset}
//	@Router			/asset/{asset_id} [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("asset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	a, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: a})
}

type ListAssetsByTypeReq struct {
	AssetType string `form:"asset_type" binding:"required" example:"IMAGE"`
}

// ListAssetsByType godoc
//
//	@Summary		List assets by type
//	@Description	All assets of one type, most recent first
//	@Tags			asset
//	@Produce		json
//	@Param			asset_type	query	string	true	"IMAGE or AUDIO"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Asset}
//	@Router			/asset [get]
func (h *AssetHandler) ListAssetsByType(c *gin.Context) {
	req := ListAssetsByTypeReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	items, err := h.svc.ListByType(c.Request.Context(), model.AssetType(req.AssetType))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: items})
}

type ListScopedAssetsReq struct {
	AssetType string `form:"asset_type" binding:"required" example:"IMAGE"`
	ContextID string `form:"context_id" binding:"required" example:"GLOBAL"`
	ScopeID   string `form:"scope_id" binding:"required" example:"APP_CHAT"`
}

// ListAssetsByScopeAndType godoc
//
//	@Summary		List assets by scope and type
//	@Description	Assets of one type within a (context, scope) partition, most recent first
//	@Tags			asset
//	@Produce		json
//	@Param			asset_type	query	string	true	"IMAGE or AUDIO"
//	@Param			context_id	query	string	true	"Context partition"
//	@Param			scope_id	query	string	true	"Scope partition"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Asset}
//	@Router			/asset/scoped [get]
func (h *AssetHandler) ListAssetsByScopeAndType(c *gin.Context) {
	req := ListScopedAssetsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	items, err := h.svc.ListByScopeAndType(c.Request.Context(),
		model.AssetType(req.AssetType), model.ContextID(req.ContextID), model.ScopeID(req.ScopeID))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: items})
}

type UpdateAssetReq struct {
	Label    *string         `json:"label,omitempty"`
	Metadata json.RawMessage `json:"metadata,omitempty" swaggertype:"object"`
}

// UpdateAsset godoc
//
//	@Summary		Update asset
//	@Description	Partial update; only label and metadata are mutable
//	@Tags			asset
//	@Accept			json
//	@Produce		json
//	@Param			asset_id	path	string			true	"Asset ID"	Format(uuid)
//	@Param			body		body	UpdateAssetReq	true	"Fields to change"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Asset}
//	@Router			/asset/{asset_id} [put]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("asset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := UpdateAssetReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	a, err := h.svc.Update(c.Request.Context(), id, service.UpdateAssetInput{
		Label:    req.Label,
		Metadata: req.Metadata,
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: a})
}

type TransferAssetScopeReq struct {
	ContextID string `json:"contextId" binding:"required" example:"GLOBAL"`
	ScopeID   string `json:"scopeId" binding:"required" example:"APP_CHAT"`
}

// TransferAssetScope godoc
//
//	@Summary		Transfer asset context/scope
//	@Description	Atomic repartition, no content change
//	@Tags			asset
//	@Accept			json
//	@Produce		json
//	@Param			asset_id	path	string					true	"Asset ID"	Format(uuid)
//	@Param			body		body	TransferAssetScopeReq	true	"Target partition"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/asset/{asset_id}/scope [put]
func (h *AssetHandler) TransferAssetScope(c *gin.Context) {
	id, err := uuid.Parse(c.Param("asset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := TransferAssetScopeReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	err = h.svc.TransferScope(c.Request.Context(), id,
		model.ContextID(req.ContextID), model.ScopeID(req.ScopeID))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

// DeleteAsset godoc
//
//	@Summary		Delete asset
//	@Description	Unconditional, irreversible; an absent id is already gone
//	@Tags			asset
//	@Produce		json
//	@Param			asset_id	path	string	true	"Asset ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/asset/{asset_id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("asset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

type DeleteAssetsReq struct {
	IDs []uuid.UUID `json:"ids" binding:"required"`
}

type DeleteCountResp struct {
	Count int64 `json:"count"`
}

// DeleteAssets godoc
//
//	@Summary		Delete assets
//	@Description	Bulk delete; count may be lower than requested if some ids were already absent
//	@Tags			asset
//	@Accept			json
//	@Produce		json
//	@Param			body	body	DeleteAssetsReq	true	"Ids to delete"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=DeleteCountResp}
//	@Router			/asset/delete_batch [post]
func (h *AssetHandler) DeleteAssets(c *gin.Context) {
	req := DeleteAssetsReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	n, err := h.svc.DeleteMany(c.Request.Context(), req.IDs)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: DeleteCountResp{Count: n}})
}

type DeleteScopedAssetsReq struct {
	ContextID string `form:"context_id" binding:"required" example:"GLOBAL"`
	ScopeID   string `form:"scope_id" binding:"required" example:"ATTACHMENT_DRAFTS"`
}

// DeleteScopedAssets godoc
//
//	@Summary		Delete all scoped assets
//	@Description	Remove every asset in a (context, scope) partition
//	@Tags			asset
//	@Produce		json
//	@Param			context_id	query	string	true	"Context partition"
//	@Param			scope_id	query	string	true	"Scope partition"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=DeleteCountResp}
//	@Router			/asset/scoped [delete]
func (h *AssetHandler) DeleteScopedAssets(c *gin.Context) {
	req := DeleteScopedAssetsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	n, err := h.svc.DeleteAllScoped(c.Request.Context(),
		model.ContextID(req.ContextID), model.ScopeID(req.ScopeID))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: DeleteCountResp{Count: n}})
}

type GCAssetsReq struct {
	ContextID string      `json:"contextId" binding:"required" example:"GLOBAL"`
	ScopeID   string      `json:"scopeId" binding:"required" example:"ATTACHMENT_DRAFTS"`
	AssetType *string     `json:"assetType,omitempty" example:"IMAGE"`
	KeepIDs   []uuid.UUID `json:"keepIds"`
}

// GCAssets godoc
//
//	@Summary		Garbage collect assets by scope
//	@Description	Delete every asset in the partition whose id is not in keepIds; empty keepIds keeps nothing
//	@Tags			asset
//	@Accept			json
//	@Produce		json
//	@Param			body	body	GCAssetsReq	true	"Sweep request"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=DeleteCountResp}
//	@Router			/asset/gc [post]
func (h *AssetHandler) GCAssets(c *gin.Context) {
	req := GCAssetsReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	var assetType *model.AssetType
	if req.AssetType != nil {
		t := model.AssetType(*req.AssetType)
		assetType = &t
	}

	n, err := h.gc.SweepScope(c.Request.Context(),
		model.ContextID(req.ContextID), model.ScopeID(req.ScopeID), assetType, req.KeepIDs)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: DeleteCountResp{Count: n}})
}
