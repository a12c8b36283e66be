package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	PaymentService *service.PaymentService
}

func NewPaymentController(paymentService *service.PaymentService) *PaymentController {
	return &PaymentController{PaymentService: paymentService}
}

// Webhook godoc
// @Summary 支付网关异步回调
// @Description 由支付网关调用。settlement/capture 激活报名，refund 停用报名使模块重新锁定
// @Tags 支付
// @Accept  json
// @Produce  json
// @Param   body body object true "网关通知载荷"
// @Success 200 {object} util.Response
// @Router /api/v1/payments/notification [post]
func (c *PaymentController) Webhook(ctx *gin.Context) {
	var payload map[string]interface{}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.PaymentService.HandleNotification(payload); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// MyPayments godoc
// @Summary 我的支付记录
// @Tags 支付
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Payment}
// @Router /api/v1/payments [get]
func (c *PaymentController) MyPayments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	payments, err := c.PaymentService.ListForUser(claims.UserID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, payments)
}
