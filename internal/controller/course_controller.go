package controller

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// ListCourses godoc
// @Summary 已发布课程列表
// @Tags 课程
// @Produce  json
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/v1/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx)
	courses, total, err := c.CourseService.ListPublished(ctx.Request.Context(), page, limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// GetCourse godoc
// @Summary 课程详情
// @Tags 课程
// @Produce  json
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/v1/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	course, err := c.CourseService.GetByID(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

type CourseRequest struct {
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description"`
	CoverURL     string  `json:"coverUrl"`
	Price        float64 `json:"price" binding:"min=0"`
	DurationDays int     `json:"durationDays" binding:"omitempty,min=1"`
}

// CreateCourse godoc
// @Summary 创建课程（讲师）
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Course}
// @Router /api/v1/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course := &model.Course{
		Title:        req.Title,
		Description:  req.Description,
		CoverURL:     req.CoverURL,
		Price:        req.Price,
		DurationDays: req.DurationDays,
	}
	if course.DurationDays == 0 {
		course.DurationDays = 365
	}

	if err := c.CourseService.Create(claims.UserID, course); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary 更新课程（讲师）
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   body body CourseRequest true "课程信息"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/v1/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.GetByID(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	course.Title = req.Title
	course.Description = req.Description
	course.CoverURL = req.CoverURL
	course.Price = req.Price
	if req.DurationDays > 0 {
		course.DurationDays = req.DurationDays
	}

	if err := c.CourseService.Update(ctx.Request.Context(), claims, course); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary 删除课程（讲师）
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/v1/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.CourseService.Delete(ctx.Request.Context(), claims, util.MustParseUint(ctx.Param("id"))); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// PublishCourse godoc
// @Summary 发布课程（讲师）
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "课程没有模块"
// @Router /api/v1/courses/{id}/publish [post]
func (c *CourseController) PublishCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.CourseService.Publish(ctx.Request.Context(), claims, util.MustParseUint(ctx.Param("id"))); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// MyCourses godoc
// @Summary 我创建的课程（讲师）
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/v1/instructor/courses [get]
func (c *CourseController) MyCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courses, err := c.CourseService.ListByInstructor(claims.UserID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}
