package controller

import (
	"path/filepath"
	"strings"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UploadController struct {
	StorageService *service.StorageService
	MediaService   *service.MediaService
	ModuleService  *service.ModuleService
}

func NewUploadController(storageService *service.StorageService, mediaService *service.MediaService,
	moduleService *service.ModuleService) *UploadController {
	return &UploadController{
		StorageService: storageService,
		MediaService:   mediaService,
		ModuleService:  moduleService,
	}
}

// UploadFile godoc
// @Summary 上传图片或文档
// @Description 深度校验 MIME 类型，仅允许图片和 PDF
// @Tags 上传
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   file formData file true "文件"
// @Success 201 {object} util.Response{data=object} "文件 URL"
// @Failure 400 {object} util.Response "文件类型不允许"
// @Router /api/v1/uploads [post]
func (c *UploadController) UploadFile(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少 file 字段")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer f.Close()

	mimeType, err := util.ValidateMimeType(f, []string{util.MimeImage, util.MimePDF})
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if _, err := f.Seek(0, 0); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	objectName := "files/" + uuid.New().String() + ext
	url, err := c.StorageService.Upload(ctx.Request.Context(), objectName, f, fileHeader.Size, mimeType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"url": url, "mimeType": mimeType})
}

// UploadVideo godoc
// @Summary 上传课程视频（讲师）
// @Description 视频落临时文件后异步转码，返回任务ID供轮询
// @Tags 上传
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   contentId path int true "内容ID"
// @Param   file formData file true "视频文件"
// @Success 202 {object} util.Response{data=model.TranscodeJob}
// @Failure 400 {object} util.Response "不是视频文件"
// @Router /api/v1/contents/{contentId}/video [post]
func (c *UploadController) UploadVideo(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	contentID := util.MustParseUint(ctx.Param("contentId"))
	content, err := c.ModuleService.ModuleRepo.FindContentByID(contentID)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	module, err := c.ModuleService.ModuleRepo.FindByID(content.ModuleID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	course, err := c.ModuleService.CourseRepo.FindByID(module.CourseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if claims.UserID != course.InstructorID && claims.Role != model.Admin {
		util.Forbidden(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少 file 字段")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	allowed := false
	for _, e := range util.AllowedVideoExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		util.BadRequest(ctx, "不支持的视频格式: "+ext)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer f.Close()

	if _, err := util.ValidateMimeType(f, []string{util.MimeVideo, util.MimeOctetStream}); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if _, err := f.Seek(0, 0); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	tmpPath, err := c.StorageService.SaveTemp(f, ".tmp")
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	job, err := c.MediaService.SubmitVideo(contentID, tmpPath)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	ctx.JSON(202, util.Response{Success: true, Message: "transcode scheduled", Data: job})
}

// GetTranscodeJob godoc
// @Summary 转码任务状态
// @Tags 上传
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "任务ID"
// @Success 200 {object} util.Response{data=model.TranscodeJob}
// @Router /api/v1/transcode-jobs/{id} [get]
func (c *UploadController) GetTranscodeJob(ctx *gin.Context) {
	job, err := c.MediaService.GetJob(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, job)
}
