package service

import (
	"context"
	"time"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SweepService 后台定时任务：
//   - 停用已过有效期的报名
//   - 为新解锁的模块补发通知（兜底长时间未访问的用户）
//   - 将 redis 中累积的帖子浏览数回写数据库
//   - 分期付款到期前提醒
type SweepService struct {
	EnrollmentRepo  *repository.EnrollmentRepository
	ModuleRepo      *repository.ModuleRepository
	PaymentRepo     *repository.PaymentRepository
	CommunityRepo   *repository.CommunityRepository
	NotificationSvc *NotificationService

	cron *cron.Cron
}

func NewSweepService(enrollmentRepo *repository.EnrollmentRepository, moduleRepo *repository.ModuleRepository,
	paymentRepo *repository.PaymentRepository, communityRepo *repository.CommunityRepository,
	notificationSvc *NotificationService) *SweepService {
	return &SweepService{
		EnrollmentRepo:  enrollmentRepo,
		ModuleRepo:      moduleRepo,
		PaymentRepo:     paymentRepo,
		CommunityRepo:   communityRepo,
		NotificationSvc: notificationSvc,
		cron:            cron.New(),
	}
}

func (s *SweepService) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.SweepEnrollments); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@hourly", s.SweepUnlockNotices); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@every 5m", s.SweepPostViews); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@daily", s.SweepInstallmentReminders); err != nil {
		return err
	}
	s.cron.Start()
	logger.Log.Info("sweep scheduler started")
	return nil
}

func (s *SweepService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// SweepEnrollments 批量停用已过期的报名
func (s *SweepService) SweepEnrollments() {
	affected, err := s.EnrollmentRepo.DeactivateExpired(time.Now())
	if err != nil {
		logger.Log.Error("failed to deactivate expired enrollments", zap.Error(err))
		return
	}
	if affected > 0 {
		logger.Log.Info("deactivated expired enrollments", zap.Int64("count", affected))
	}
}

// SweepUnlockNotices 扫描激活中的报名，给刚解锁的模块补发通知。
// 通知表的唯一索引保证不会重复发送。
func (s *SweepService) SweepUnlockNotices() {
	enrollments, err := s.EnrollmentRepo.FindAllActive()
	if err != nil {
		logger.Log.Error("failed to load active enrollments", zap.Error(err))
		return
	}

	now := time.Now()
	modulesByCourse := make(map[uint][]model.CourseModule)

	for i := range enrollments {
		e := &enrollments[i]
		modules, ok := modulesByCourse[e.CourseID]
		if !ok {
			modules, err = s.ModuleRepo.FindByCourse(e.CourseID)
			if err != nil {
				logger.Log.Error("failed to load course modules",
					zap.Uint("courseId", e.CourseID), zap.Error(err))
				continue
			}
			modulesByCourse[e.CourseID] = modules
		}

		for _, state := range ComputeUnlockedModules(e, modules, now) {
			if !state.IsUnlocked {
				continue
			}
			if err := s.NotificationSvc.NotifyModuleUnlocked(e, &state.Module); err != nil {
				logger.Log.Warn("failed to send unlock notice",
					zap.Uint("enrollmentId", e.ID),
					zap.Uint("moduleId", state.Module.ID),
					zap.Error(err))
			}
		}
	}
}

// SweepPostViews 浏览数回写
func (s *SweepService) SweepPostViews() {
	if err := s.CommunityRepo.FlushViews(context.Background()); err != nil {
		logger.Log.Error("failed to flush post views", zap.Error(err))
	}
}

// SweepInstallmentReminders 提前 3 天提醒下一期扣款
func (s *SweepService) SweepInstallmentReminders() {
	payments, err := s.PaymentRepo.FindDueInstallments(time.Now().AddDate(0, 0, 3))
	if err != nil {
		logger.Log.Error("failed to load due installments", zap.Error(err))
		return
	}

	for i := range payments {
		p := &payments[i]
		enrollment, err := s.EnrollmentRepo.FindByID(p.EnrollmentID)
		if err != nil {
			continue
		}
		if err := s.NotificationSvc.Notify(enrollment.UserID, model.NotifyPayment,
			"分期付款提醒",
			"你的分期订单 "+p.OrderID+" 下一期付款日为 "+p.NextPaymentDate.Format("2006-01-02")+"，请及时完成支付。"); err != nil {
			logger.Log.Warn("failed to send installment reminder",
				zap.String("orderId", p.OrderID), zap.Error(err))
		}
	}
}
