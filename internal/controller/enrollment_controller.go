package controller

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

type PurchaseRequest struct {
	CourseID    uint   `json:"courseId" binding:"required"`
	PaymentPlan string `json:"paymentPlan" binding:"omitempty,oneof=FULL INSTALLMENT"`
}

// Purchase godoc
// @Summary 购买课程
// @Description 创建报名和支付单，返回收银台 token。报名在支付成功回调后激活，免费课程立即激活
// @Tags 报名
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body PurchaseRequest true "课程与付款计划"
// @Success 201 {object} util.Response{data=service.PurchaseResult}
// @Failure 409 {object} util.Response "已报名该课程"
// @Router /api/v1/enrollments [post]
func (c *EnrollmentController) Purchase(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req PurchaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.EnrollmentService.Purchase(claims, req.CourseID, model.PaymentPlan(req.PaymentPlan))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// MyEnrollments godoc
// @Summary 我的报名记录
// @Tags 报名
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Enrollment}
// @Router /api/v1/enrollments [get]
func (c *EnrollmentController) MyEnrollments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	enrollments, err := c.EnrollmentService.ListForUser(claims.UserID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}

// GetEnrollment godoc
// @Summary 报名详情
// @Tags 报名
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "报名ID"
// @Success 200 {object} util.Response{data=model.Enrollment}
// @Router /api/v1/enrollments/{id} [get]
func (c *EnrollmentController) GetEnrollment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	enrollment, err := c.EnrollmentService.GetForUser(claims, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, enrollment)
}
