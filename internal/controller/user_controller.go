package controller

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

type UpdateProfileRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Bio    string `json:"bio"`
}

// UpdateProfile godoc
// @Summary 更新个人资料
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body UpdateProfileRequest true "资料字段"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/v1/users/me [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, req.Name, req.Avatar, req.Bio)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// GetUser godoc
// @Summary 查看用户公开资料
// @Tags 用户
// @Produce  json
// @Param   id path int true "用户ID"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/v1/users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	user, err := c.UserService.GetByID(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// ListUsers godoc
// @Summary 用户列表（管理员）
// @Tags 用户
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/v1/admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx)
	users, total, err := c.UserService.List(page, limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE SUSPENDED INACTIVE"`
}

// SetStatus godoc
// @Summary 修改用户状态（管理员）
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "用户ID"
// @Param   body body SetStatusRequest true "目标状态"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/users/{id}/status [put]
func (c *UserController) SetStatus(ctx *gin.Context) {
	var req SetStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.SetStatus(util.MustParseUint(ctx.Param("id")), model.UserStatus(req.Status)); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
