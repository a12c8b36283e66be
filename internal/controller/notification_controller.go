package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	NotificationService *service.NotificationService
}

func NewNotificationController(notificationService *service.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notificationService}
}

// ListNotifications godoc
// @Summary 我的通知
// @Tags 通知
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/v1/notifications [get]
func (c *NotificationController) ListNotifications(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	page, limit := util.ParsePagination(ctx)
	notifications, total, err := c.NotificationService.ListForUser(claims.UserID, page, limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: notifications, Total: total, Page: page, Limit: limit})
}

// MarkRead godoc
// @Summary 标记通知已读
// @Tags 通知
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "通知ID"
// @Success 200 {object} util.Response
// @Router /api/v1/notifications/{id}/read [put]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.NotificationService.MarkRead(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// MarkAllRead godoc
// @Summary 全部标记已读
// @Tags 通知
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/v1/notifications/read-all [put]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.NotificationService.MarkAllRead(claims.UserID); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
