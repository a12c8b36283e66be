package controller

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MarketplaceController struct {
	MarketplaceService *service.MarketplaceService
}

func NewMarketplaceController(marketplaceService *service.MarketplaceService) *MarketplaceController {
	return &MarketplaceController{MarketplaceService: marketplaceService}
}

type ListingRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price" binding:"min=0"`
	Status      string  `json:"status" binding:"omitempty,oneof=DRAFT ACTIVE ARCHIVED"`
}

// CreateListing godoc
// @Summary 发布服务（讲师）
// @Tags 服务市场
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body ListingRequest true "服务信息"
// @Success 201 {object} util.Response{data=model.ServiceListing}
// @Router /api/v1/marketplace/listings [post]
func (c *MarketplaceController) CreateListing(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req ListingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	listing := &model.ServiceListing{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
	}

	if err := c.MarketplaceService.CreateListing(claims, listing); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, listing)
}

// UpdateListing godoc
// @Summary 更新服务（讲师）
// @Tags 服务市场
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "服务ID"
// @Param   body body ListingRequest true "服务信息"
// @Success 200 {object} util.Response{data=model.ServiceListing}
// @Router /api/v1/marketplace/listings/{id} [put]
func (c *MarketplaceController) UpdateListing(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req ListingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	listing := &model.ServiceListing{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
	}
	listing.ID = util.MustParseUint(ctx.Param("id"))
	if req.Status != "" {
		listing.Status = model.ListingStatus(req.Status)
	}

	if err := c.MarketplaceService.UpdateListing(claims, listing); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, listing)
}

// DeleteListing godoc
// @Summary 删除服务（讲师）
// @Tags 服务市场
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "服务ID"
// @Success 200 {object} util.Response
// @Router /api/v1/marketplace/listings/{id} [delete]
func (c *MarketplaceController) DeleteListing(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.MarketplaceService.DeleteListing(claims, util.MustParseUint(ctx.Param("id"))); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// GetListing godoc
// @Summary 服务详情
// @Tags 服务市场
// @Produce  json
// @Param   id path int true "服务ID"
// @Success 200 {object} util.Response{data=model.ServiceListing}
// @Router /api/v1/marketplace/listings/{id} [get]
func (c *MarketplaceController) GetListing(ctx *gin.Context) {
	listing, err := c.MarketplaceService.GetListing(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, listing)
}

// ListListings godoc
// @Summary 上架中的服务列表
// @Tags 服务市场
// @Produce  json
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Param   category query string false "分类过滤"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/v1/marketplace/listings [get]
func (c *MarketplaceController) ListListings(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx)
	listings, total, err := c.MarketplaceService.ListListings(page, limit, ctx.Query("category"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: listings, Total: total, Page: page, Limit: limit})
}

type PlaceOrderRequest struct {
	ListingID uint   `json:"listingId" binding:"required"`
	Message   string `json:"message"`
}

// PlaceOrder godoc
// @Summary 下单购买服务
// @Tags 服务市场
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body PlaceOrderRequest true "订单信息"
// @Success 201 {object} util.Response{data=model.ServiceOrder}
// @Router /api/v1/marketplace/orders [post]
func (c *MarketplaceController) PlaceOrder(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req PlaceOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	order, err := c.MarketplaceService.PlaceOrder(claims, req.ListingID, req.Message)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, order)
}

type UpdateOrderRequest struct {
	Status string `json:"status" binding:"required,oneof=ACCEPTED COMPLETED CANCELLED"`
}

// UpdateOrder godoc
// @Summary 更新订单状态
// @Description 提供者接单/完成，买家取消未接单的订单
// @Tags 服务市场
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "订单ID"
// @Param   body body UpdateOrderRequest true "目标状态"
// @Success 200 {object} util.Response
// @Router /api/v1/marketplace/orders/{id} [put]
func (c *MarketplaceController) UpdateOrder(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req UpdateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.MarketplaceService.UpdateOrderStatus(claims, util.MustParseUint(ctx.Param("id")), model.OrderStatus(req.Status)); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// MyOrders godoc
// @Summary 我的订单
// @Tags 服务市场
// @Produce  json
// @Security BearerAuth
// @Param   role query string false "buyer 或 provider，默认 buyer"
// @Success 200 {object} util.Response{data=[]model.ServiceOrder}
// @Router /api/v1/marketplace/orders [get]
func (c *MarketplaceController) MyOrders(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	orders, err := c.MarketplaceService.ListOrders(claims, ctx.Query("role") == "provider")
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, orders)
}
