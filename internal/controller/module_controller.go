package controller

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ModuleController struct {
	ModuleService *service.ModuleService
}

func NewModuleController(moduleService *service.ModuleService) *ModuleController {
	return &ModuleController{ModuleService: moduleService}
}

// ListModules godoc
// @Summary 课程模块列表及解锁状态
// @Description 返回课程全部模块。已报名的学生附带各模块解锁时间和是否已解锁
// @Tags 模块
// @Produce  json
// @Param   courseId path int true "课程ID"
// @Success 200 {object} util.Response{data=[]service.ModuleUnlockState}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/v1/courses/{courseId}/modules [get]
func (c *ModuleController) ListModules(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	states, err := c.ModuleService.ListForUser(claims, util.MustParseUint(ctx.Param("courseId")))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, states)
}

// GetModule godoc
// @Summary 模块详情（含内容列表）
// @Description 学生仅能访问已解锁的模块
// @Tags 模块
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "模块ID"
// @Success 200 {object} util.Response{data=model.CourseModule}
// @Failure 403 {object} util.Response "模块未解锁"
// @Router /api/v1/modules/{id} [get]
func (c *ModuleController) GetModule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	module, err := c.ModuleService.GetForUser(claims, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

type ModuleRequest struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description"`
	Order          int      `json:"order"`
	DurationInDays int      `json:"durationInDays" binding:"min=0"`
	Status         string   `json:"status" binding:"omitempty,oneof=DRAFT ACTIVE ARCHIVED"`
	Price          *float64 `json:"price"`
}

// CreateModule godoc
// @Summary 新增模块（讲师）
// @Tags 模块
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   courseId path int true "课程ID"
// @Param   body body ModuleRequest true "模块信息"
// @Success 201 {object} util.Response{data=model.CourseModule}
// @Router /api/v1/courses/{courseId}/modules [post]
func (c *ModuleController) CreateModule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module := &model.CourseModule{
		CourseID:       util.MustParseUint(ctx.Param("courseId")),
		Title:          req.Title,
		Description:    req.Description,
		Order:          req.Order,
		DurationInDays: req.DurationInDays,
		Price:          req.Price,
	}
	if req.Status != "" {
		module.Status = model.ModuleStatus(req.Status)
	}

	if err := c.ModuleService.Create(claims, module); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, module)
}

// UpdateModule godoc
// @Summary 更新模块（讲师）
// @Tags 模块
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "模块ID"
// @Param   body body ModuleRequest true "模块信息"
// @Success 200 {object} util.Response{data=model.CourseModule}
// @Router /api/v1/modules/{id} [put]
func (c *ModuleController) UpdateModule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module := &model.CourseModule{
		Title:          req.Title,
		Description:    req.Description,
		Order:          req.Order,
		DurationInDays: req.DurationInDays,
		Price:          req.Price,
	}
	module.ID = util.MustParseUint(ctx.Param("id"))
	if req.Status != "" {
		module.Status = model.ModuleStatus(req.Status)
	}

	if err := c.ModuleService.Update(claims, module); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

// DeleteModule godoc
// @Summary 删除模块（讲师）
// @Tags 模块
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "模块ID"
// @Success 200 {object} util.Response
// @Router /api/v1/modules/{id} [delete]
func (c *ModuleController) DeleteModule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.ModuleService.Delete(claims, util.MustParseUint(ctx.Param("id"))); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type ContentRequest struct {
	Title string `json:"title" binding:"required"`
	Type  string `json:"type" binding:"required,oneof=video article document"`
	Order int    `json:"order"`
	Body  string `json:"body"`
}

// CreateContent godoc
// @Summary 新增模块内容（讲师）
// @Description 视频类内容创建后通过上传接口提交文件
// @Tags 模块
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   moduleId path int true "模块ID"
// @Param   body body ContentRequest true "内容信息"
// @Success 201 {object} util.Response{data=model.Content}
// @Router /api/v1/modules/{moduleId}/contents [post]
func (c *ModuleController) CreateContent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req ContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	content := &model.Content{
		ModuleID: util.MustParseUint(ctx.Param("moduleId")),
		Title:    req.Title,
		Type:     model.ContentType(req.Type),
		Order:    req.Order,
		Body:     req.Body,
	}

	if err := c.ModuleService.CreateContent(claims, content); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, content)
}

// GetContent godoc
// @Summary 内容详情
// @Description 需要所属模块已解锁
// @Tags 模块
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "内容ID"
// @Success 200 {object} util.Response{data=model.Content}
// @Failure 403 {object} util.Response "模块未解锁"
// @Router /api/v1/contents/{id} [get]
func (c *ModuleController) GetContent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	content, err := c.ModuleService.GetContentForUser(claims, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, content)
}
