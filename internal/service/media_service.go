package service

import (
	"context"
	"os"
	"strings"
	"time"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MediaService 异步视频转码。上传的视频先落临时文件，
// 由后台 worker 转成 H.264 MP4 并截取封面，完成后回写内容记录。
type MediaService struct {
	TranscodeRepo *repository.TranscodeRepository
	ModuleRepo    *repository.ModuleRepository
	Storage       *StorageService

	jobs chan uint
	quit chan struct{}
}

func NewMediaService(transcodeRepo *repository.TranscodeRepository, moduleRepo *repository.ModuleRepository,
	storage *StorageService) *MediaService {
	return &MediaService{
		TranscodeRepo: transcodeRepo,
		ModuleRepo:    moduleRepo,
		Storage:       storage,
		jobs:          make(chan uint, 64),
		quit:          make(chan struct{}),
	}
}

// Start 启动转码 worker
func (s *MediaService) Start() {
	go s.worker()
}

func (s *MediaService) Stop() {
	close(s.quit)
}

// SubmitVideo 提交转码任务并立即返回，客户端轮询任务状态
func (s *MediaService) SubmitVideo(contentID uint, sourcePath string) (*model.TranscodeJob, error) {
	job := &model.TranscodeJob{
		ContentID:  contentID,
		SourcePath: sourcePath,
		Status:     model.TranscodePending,
	}
	if err := s.TranscodeRepo.Create(job); err != nil {
		return nil, util.NewUnexpectedError(err)
	}

	select {
	case s.jobs <- job.ID:
	default:
		// 队列已满，任务留在 PENDING，由下次扫描兜底
		logger.Log.Warn("transcode queue full", zap.Uint("jobId", job.ID))
	}
	return job, nil
}

func (s *MediaService) GetJob(id uint) (*model.TranscodeJob, error) {
	job, err := s.TranscodeRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.NewNotFoundError("转码任务不存在")
	} else if err != nil {
		return nil, util.NewUnexpectedError(err)
	}
	return job, nil
}

func (s *MediaService) worker() {
	for {
		select {
		case jobID := <-s.jobs:
			s.process(jobID)
		case <-s.quit:
			return
		}
	}
}

func (s *MediaService) process(jobID uint) {
	monitoring.TranscodeJobGauge.Inc()
	defer monitoring.TranscodeJobGauge.Dec()

	job, err := s.TranscodeRepo.FindByID(jobID)
	if err != nil {
		logger.Log.Error("transcode job missing", zap.Uint("jobId", jobID), zap.Error(err))
		return
	}

	start := time.Now()
	if err := s.TranscodeRepo.UpdateStatus(job.ID, model.TranscodeProcessing, ""); err != nil {
		logger.Log.Error("failed to mark job processing", zap.Uint("jobId", job.ID), zap.Error(err))
		return
	}

	outputPath := strings.TrimSuffix(job.SourcePath, ".tmp") + ".out.mp4"
	thumbPath := strings.TrimSuffix(job.SourcePath, ".tmp") + ".thumb.jpg"
	defer func() {
		os.Remove(job.SourcePath)
		os.Remove(outputPath)
		os.Remove(thumbPath)
	}()

	if err := util.TranscodeToMP4(job.SourcePath, outputPath); err != nil {
		s.fail(job, "转码失败: "+err.Error())
		return
	}
	if err := util.GenerateThumbnail(outputPath, thumbPath, "00:00:01"); err != nil {
		s.fail(job, "生成缩略图失败: "+err.Error())
		return
	}

	info, err := util.GetVideoInfo(outputPath)
	if err != nil {
		s.fail(job, "读取视频信息失败: "+err.Error())
		return
	}

	ctx := context.Background()
	base := "videos/" + util.FormatUint(job.ContentID) + "/" + util.FormatUint(job.ID)
	videoURL, err := s.Storage.UploadLocalFile(ctx, outputPath, base+".mp4", "video/mp4")
	if err != nil {
		s.fail(job, "上传视频失败: "+err.Error())
		return
	}
	thumbURL, err := s.Storage.UploadLocalFile(ctx, thumbPath, base+".jpg", "image/jpeg")
	if err != nil {
		s.fail(job, "上传缩略图失败: "+err.Error())
		return
	}

	job.OutputURL = videoURL
	job.ThumbnailURL = thumbURL
	job.Status = model.TranscodeReady
	job.ErrorMsg = ""
	if err := s.TranscodeRepo.Update(job); err != nil {
		logger.Log.Error("failed to finalize transcode job", zap.Uint("jobId", job.ID), zap.Error(err))
		return
	}

	content, err := s.ModuleRepo.FindContentByID(job.ContentID)
	if err == nil {
		content.FileURL = videoURL
		content.ThumbnailURL = thumbURL
		content.DurationSecs = info.Duration
		if err := s.ModuleRepo.UpdateContent(content); err != nil {
			logger.Log.Error("failed to update content after transcode",
				zap.Uint("contentId", job.ContentID), zap.Error(err))
		}
	}

	logger.Log.Info("transcode job finished",
		zap.Uint("jobId", job.ID),
		zap.Uint("contentId", job.ContentID),
		zap.Float64("durationSecs", info.Duration),
		zap.Duration("elapsed", time.Since(start)))
}

func (s *MediaService) fail(job *model.TranscodeJob, msg string) {
	logger.Log.Error("transcode job failed", zap.Uint("jobId", job.ID), zap.String("reason", msg))
	if err := s.TranscodeRepo.UpdateStatus(job.ID, model.TranscodeFailed, msg); err != nil {
		logger.Log.Error("failed to mark job failed", zap.Uint("jobId", job.ID), zap.Error(err))
	}
}
