package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CommunityController struct {
	CommunityService *service.CommunityService
}

func NewCommunityController(communityService *service.CommunityService) *CommunityController {
	return &CommunityController{CommunityService: communityService}
}

type CreatePostRequest struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags"`
}

// CreatePost godoc
// @Summary 发帖
// @Tags 社区
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CreatePostRequest true "帖子内容"
// @Success 201 {object} util.Response{data=model.Post}
// @Router /api/v1/community/posts [post]
func (c *CommunityController) CreatePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.CommunityService.CreatePost(claims, req.Title, req.Content, req.Tags)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, post)
}

// GetPost godoc
// @Summary 帖子详情
// @Tags 社区
// @Produce  json
// @Param   id path string true "帖子ID"
// @Success 200 {object} util.Response{data=model.Post}
// @Failure 404 {object} util.Response "帖子不存在"
// @Router /api/v1/community/posts/{id} [get]
func (c *CommunityController) GetPost(ctx *gin.Context) {
	post, err := c.CommunityService.GetPost(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, post)
}

// ListPosts godoc
// @Summary 帖子列表
// @Tags 社区
// @Produce  json
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Param   tag query string false "按标签过滤"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/v1/community/posts [get]
func (c *CommunityController) ListPosts(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx)
	posts, total, err := c.CommunityService.ListPosts(page, limit, ctx.Query("tag"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: posts, Total: total, Page: page, Limit: limit})
}

// DeletePost godoc
// @Summary 删除帖子
// @Tags 社区
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "帖子ID"
// @Success 200 {object} util.Response
// @Router /api/v1/community/posts/{id} [delete]
func (c *CommunityController) DeletePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.CommunityService.DeletePost(claims, ctx.Param("id")); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type PinPostRequest struct {
	Pinned bool `json:"pinned"`
}

// PinPost godoc
// @Summary 置顶帖子（管理员）
// @Tags 社区
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "帖子ID"
// @Param   body body PinPostRequest true "置顶开关"
// @Success 200 {object} util.Response
// @Router /api/v1/community/posts/{id}/pin [put]
func (c *CommunityController) PinPost(ctx *gin.Context) {
	var req PinPostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.CommunityService.PinPost(ctx.Param("id"), req.Pinned); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type CreateCommentRequest struct {
	Content  string  `json:"content" binding:"required"`
	ParentID *string `json:"parentId"`
}

// CreateComment godoc
// @Summary 评论或回复
// @Tags 社区
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   postId path string true "帖子ID"
// @Param   body body CreateCommentRequest true "评论内容"
// @Success 201 {object} util.Response{data=model.Comment}
// @Router /api/v1/community/posts/{postId}/comments [post]
func (c *CommunityController) CreateComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.CommunityService.CreateComment(claims, ctx.Param("postId"), req.Content, req.ParentID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, comment)
}

// ListComments godoc
// @Summary 帖子评论列表
// @Tags 社区
// @Produce  json
// @Param   postId path string true "帖子ID"
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/v1/community/posts/{postId}/comments [get]
func (c *CommunityController) ListComments(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx)
	comments, total, err := c.CommunityService.ListComments(ctx.Param("postId"), page, limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: comments, Total: total, Page: page, Limit: limit})
}

// DeleteComment godoc
// @Summary 删除评论
// @Tags 社区
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "评论ID"
// @Success 200 {object} util.Response
// @Router /api/v1/community/comments/{id} [delete]
func (c *CommunityController) DeleteComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.CommunityService.DeleteComment(claims, ctx.Param("id")); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListTags godoc
// @Summary 社区标签列表
// @Tags 社区
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Tag}
// @Router /api/v1/community/tags [get]
func (c *CommunityController) ListTags(ctx *gin.Context) {
	tags, err := c.CommunityService.ListTags()
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, tags)
}
