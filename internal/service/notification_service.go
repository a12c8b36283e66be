package service

import (
	"net/http"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

type NotificationService struct {
	NotificationRepo *repository.NotificationRepository
	UserRepo         *repository.UserRepository
	Mail             config.MailConfig
}

func NewNotificationService(notificationRepo *repository.NotificationRepository, userRepo *repository.UserRepository, cfg *config.Config) *NotificationService {
	return &NotificationService{
		NotificationRepo: notificationRepo,
		UserRepo:         userRepo,
		Mail:             cfg.Mail,
	}
}

// Notify 写入站内通知并异步发送邮件
func (s *NotificationService) Notify(userID uint, typ model.NotificationType, title, body string) error {
	n := &model.Notification{
		UserID: userID,
		Type:   typ,
		Title:  title,
		Body:   body,
	}
	if err := s.NotificationRepo.Create(n); err != nil {
		return util.NewUnexpectedError(err)
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil // 站内通知已落库，邮箱拿不到就不发了
	}
	go s.sendEmail(user.Email, user.Name, title, body)

	return nil
}

// NotifyModuleUnlocked 某模块首次解锁时的一次性通知。
// 通过 module_unlock_notices 表去重，已发过的直接跳过。
func (s *NotificationService) NotifyModuleUnlocked(enrollment *model.Enrollment, module *model.CourseModule) error {
	sent, err := s.NotificationRepo.HasUnlockNotice(enrollment.UserID, module.ID)
	if err != nil {
		return util.NewUnexpectedError(err)
	}
	if sent {
		return nil
	}

	if err := s.NotificationRepo.CreateUnlockNotice(&model.ModuleUnlockNotice{
		UserID:       enrollment.UserID,
		ModuleID:     module.ID,
		EnrollmentID: enrollment.ID,
	}); err != nil {
		// 并发请求可能同时写入，唯一索引兜底，重复即视为已发
		return nil
	}

	return s.Notify(enrollment.UserID, model.NotifyModuleUnlocked,
		"新模块已解锁: "+module.Title,
		"课程模块「"+module.Title+"」已对你开放，快去学习吧。")
}

func (s *NotificationService) ListForUser(userID uint, page, limit int) ([]model.Notification, int64, error) {
	notifications, total, err := s.NotificationRepo.FindByUser(userID, page, limit)
	if err != nil {
		return nil, 0, util.NewUnexpectedError(err)
	}
	return notifications, total, nil
}

func (s *NotificationService) MarkRead(userID, id uint) error {
	if err := s.NotificationRepo.MarkRead(userID, id); err != nil {
		return util.NewUnexpectedError(err)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	if err := s.NotificationRepo.MarkAllRead(userID); err != nil {
		return util.NewUnexpectedError(err)
	}
	return nil
}

func (s *NotificationService) sendEmail(toEmail, toName, subject, body string) {
	if s.Mail.SendgridKey == "" {
		return
	}

	m := sgmail.NewV3Mail()
	m.SetFrom(sgmail.NewEmail(s.Mail.FromName, s.Mail.FromEmail))

	p := sgmail.NewPersonalization()
	p.Subject = "[LearnHub] " + subject
	p.AddTos(sgmail.NewEmail(toName, toEmail))
	m.AddPersonalizations(p)

	m.AddContent(sgmail.NewContent("text/plain", body))

	req := sendgrid.GetRequest(s.Mail.SendgridKey, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.API(req)
	if err != nil || res.StatusCode >= http.StatusBadRequest {
		logger.Log.Error("failed to send email",
			zap.String("to", toEmail),
			zap.String("subject", subject),
			zap.Error(err))
	}
}
