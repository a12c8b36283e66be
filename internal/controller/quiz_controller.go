package controller

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// GetQuiz godoc
// @Summary 测验详情
// @Description 学生视角，题目不包含正确答案。需要所属模块已解锁
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 403 {object} util.Response "模块未解锁"
// @Router /api/v1/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	quiz, err := c.QuizService.GetForUser(claims, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

type SubmitQuizRequest struct {
	Answers []service.AnswerSubmission `json:"answers" binding:"required,dive"`
}

// SubmitQuiz godoc
// @Summary 提交测验答案
// @Description 答案必须覆盖全部题目。缺题或未知题目ID时返回 400 并列出具体ID，不保存任何记录
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Param   body body SubmitQuizRequest true "全部题目的作答"
// @Success 201 {object} util.Response{data=object} "判分结果"
// @Failure 400 {object} util.Response "作答不完整"
// @Router /api/v1/quizzes/{id}/attempts [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, result, err := c.QuizService.SubmitAttempt(claims, util.MustParseUint(ctx.Param("id")), req.Answers)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"attemptId":   attempt.ID,
		"score":       result.Score,
		"passed":      result.Passed,
		"perQuestion": result.PerQuestion,
		"submittedAt": attempt.SubmittedAt,
	})
}

// ListAttempts godoc
// @Summary 我的测验成绩记录
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response{data=[]model.QuizAttempt}
// @Router /api/v1/quizzes/{id}/attempts [get]
func (c *QuizController) ListAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	attempts, err := c.QuizService.ListAttempts(claims, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

type QuizQuestionRequest struct {
	Text               string   `json:"text" binding:"required"`
	Options            []string `json:"options" binding:"required,min=2"`
	CorrectOptionIndex int      `json:"correctOptionIndex" binding:"min=0"`
	Points             int      `json:"points" binding:"min=0"`
	Order              int      `json:"order"`
}

type CreateQuizRequest struct {
	Title        string                `json:"title" binding:"required"`
	Description  string                `json:"description"`
	PassingScore int                   `json:"passingScore" binding:"min=0,max=100"`
	Questions    []QuizQuestionRequest `json:"questions" binding:"dive"`
}

// CreateQuiz godoc
// @Summary 创建测验（讲师）
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   moduleId path int true "模块ID"
// @Param   body body CreateQuizRequest true "测验及题目"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Router /api/v1/modules/{moduleId}/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz := &model.Quiz{
		ModuleID:     util.MustParseUint(ctx.Param("moduleId")),
		Title:        req.Title,
		Description:  req.Description,
		PassingScore: req.PassingScore,
		Questions:    toQuestionModels(req.Questions),
	}

	if err := c.QuizService.Create(claims, quiz); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

type ReplaceQuestionsRequest struct {
	Questions []QuizQuestionRequest `json:"questions" binding:"required,dive"`
}

// ReplaceQuestions godoc
// @Summary 整体替换测验题目（讲师）
// @Description 历史成绩记录不受影响
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Param   body body ReplaceQuestionsRequest true "新题目列表"
// @Success 200 {object} util.Response
// @Router /api/v1/quizzes/{id}/questions [put]
func (c *QuizController) ReplaceQuestions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req ReplaceQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.QuizService.ReplaceQuestions(claims, util.MustParseUint(ctx.Param("id")), toQuestionModels(req.Questions)); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// DeleteQuiz godoc
// @Summary 删除测验（讲师）
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/v1/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.QuizService.Delete(claims, util.MustParseUint(ctx.Param("id"))); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func toQuestionModels(reqs []QuizQuestionRequest) []model.QuizQuestion {
	questions := make([]model.QuizQuestion, 0, len(reqs))
	for _, q := range reqs {
		questions = append(questions, model.QuizQuestion{
			Text:               q.Text,
			Options:            q.Options,
			CorrectOptionIndex: q.CorrectOptionIndex,
			Points:             q.Points,
			Order:              q.Order,
		})
	}
	return questions
}
