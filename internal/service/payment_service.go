package service

import (
	"fmt"
	"time"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PaymentService struct {
	PaymentRepo     *repository.PaymentRepository
	EnrollmentRepo  *repository.EnrollmentRepository
	NotificationSvc *NotificationService
	client          snap.Client
}

func NewPaymentService(paymentRepo *repository.PaymentRepository, enrollmentRepo *repository.EnrollmentRepository,
	notificationSvc *NotificationService, cfg *config.Config) *PaymentService {
	s := &PaymentService{
		PaymentRepo:     paymentRepo,
		EnrollmentRepo:  enrollmentRepo,
		NotificationSvc: notificationSvc,
	}
	env := midtrans.Sandbox
	if cfg.Payment.Production {
		env = midtrans.Production
	}
	s.client.New(cfg.Payment.MidtransServerKey, env)
	return s
}

// CreateSnapTransaction 向支付网关创建交易并回写 SnapToken
func (s *PaymentService) CreateSnapTransaction(payment *model.Payment, user *model.User, itemName string) (string, string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  payment.OrderID,
			GrossAmt: int64(payment.Amount),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.Name,
			Email: user.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    payment.OrderID,
				Price: int64(payment.Amount),
				Qty:   1,
				Name:  itemName,
			},
		},
	}

	resp, midErr := s.client.CreateTransaction(req)
	if midErr != nil {
		return "", "", util.NewUnexpectedError(fmt.Errorf("midtrans: %w", midErr))
	}

	payment.SnapToken = resp.Token
	if err := s.PaymentRepo.Update(payment); err != nil {
		return "", "", util.NewUnexpectedError(err)
	}
	return resp.Token, resp.RedirectURL, nil
}

// HandleNotification 处理支付网关的异步回调。
// settlement/capture 视为支付完成并激活报名；deny/cancel/expire 标记失败；
// refund 标记退款并同时停用报名，使全部模块重新锁定。
func (s *PaymentService) HandleNotification(payload map[string]interface{}) error {
	orderID, _ := payload["order_id"].(string)
	txStatus, _ := payload["transaction_status"].(string)
	fraudStatus, _ := payload["fraud_status"].(string)
	if orderID == "" || txStatus == "" {
		return util.NewValidationError("invalid payment notification payload")
	}

	payment, err := s.PaymentRepo.FindByOrderID(orderID)
	if err == gorm.ErrRecordNotFound {
		return util.NewNotFoundError("未知的订单号: " + orderID)
	} else if err != nil {
		return util.NewUnexpectedError(err)
	}

	logger.Log.Info("payment notification received",
		zap.String("orderId", orderID),
		zap.String("transactionStatus", txStatus),
		zap.String("fraudStatus", fraudStatus))

	switch txStatus {
	case "capture":
		if fraudStatus == "challenge" {
			return nil // 待人工审核，保持 PENDING
		}
		return s.markCompleted(payment)
	case "settlement":
		return s.markCompleted(payment)
	case "deny", "cancel", "expire":
		return s.markFailed(payment)
	case "refund", "partial_refund", "chargeback":
		return s.markRefunded(payment)
	case "pending":
		return nil
	default:
		logger.Log.Warn("unhandled transaction status",
			zap.String("orderId", orderID),
			zap.String("transactionStatus", txStatus))
		return nil
	}
}

func (s *PaymentService) markCompleted(payment *model.Payment) error {
	if payment.Status == model.PaymentCompleted {
		return nil // 回调可能重复投递
	}

	enrollment, err := s.EnrollmentRepo.FindByID(payment.EnrollmentID)
	if err != nil {
		return util.NewUnexpectedError(err)
	}

	// 同一 (user, course) 至多一条激活报名：这笔订单对应的报名还没激活、
	// 但同课程下已有另一条激活报名时，不再重复开通，订单转入退款
	if !enrollment.IsActive {
		existing, err := s.EnrollmentRepo.FindActive(enrollment.UserID, enrollment.CourseID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return util.NewUnexpectedError(err)
		}
		if err == nil && existing.ID != enrollment.ID {
			return s.refundDuplicate(payment, enrollment)
		}
	}

	now := time.Now()
	payment.Status = model.PaymentCompleted
	payment.PaymentDate = &now
	if err := s.PaymentRepo.Update(payment); err != nil {
		return util.NewUnexpectedError(err)
	}

	if !enrollment.IsActive {
		if err := s.EnrollmentRepo.SetActive(enrollment.ID, true); err != nil {
			return util.NewUnexpectedError(err)
		}
	}

	return s.NotificationSvc.Notify(enrollment.UserID, model.NotifyPayment,
		"支付成功", "订单 "+payment.OrderID+" 已完成，课程访问权限已开通。")
}

// refundDuplicate 重复购买的订单标记退款，报名保持未激活
func (s *PaymentService) refundDuplicate(payment *model.Payment, enrollment *model.Enrollment) error {
	logger.Log.Warn("duplicate enrollment settlement, marking refunded",
		zap.String("orderId", payment.OrderID),
		zap.Uint("userId", enrollment.UserID),
		zap.Uint("courseId", enrollment.CourseID))

	payment.Status = model.PaymentRefunded
	if err := s.PaymentRepo.Update(payment); err != nil {
		return util.NewUnexpectedError(err)
	}

	return s.NotificationSvc.Notify(enrollment.UserID, model.NotifyPayment,
		"重复购买已退款", "订单 "+payment.OrderID+" 对应的课程已开通过，款项将原路退回。")
}

func (s *PaymentService) markFailed(payment *model.Payment) error {
	if payment.Status != model.PaymentPending {
		return nil
	}
	payment.Status = model.PaymentFailed
	if err := s.PaymentRepo.Update(payment); err != nil {
		return util.NewUnexpectedError(err)
	}

	enrollment, err := s.EnrollmentRepo.FindByID(payment.EnrollmentID)
	if err != nil {
		return util.NewUnexpectedError(err)
	}
	return s.NotificationSvc.Notify(enrollment.UserID, model.NotifyPayment,
		"支付未完成", "订单 "+payment.OrderID+" 支付失败或已过期，请重新下单。")
}

// markRefunded 退款后停用报名，课程内容重新锁定
func (s *PaymentService) markRefunded(payment *model.Payment) error {
	payment.Status = model.PaymentRefunded
	if err := s.PaymentRepo.Update(payment); err != nil {
		return util.NewUnexpectedError(err)
	}

	enrollment, err := s.EnrollmentRepo.FindByID(payment.EnrollmentID)
	if err != nil {
		return util.NewUnexpectedError(err)
	}
	if err := s.EnrollmentRepo.SetActive(enrollment.ID, false); err != nil {
		return util.NewUnexpectedError(err)
	}

	return s.NotificationSvc.Notify(enrollment.UserID, model.NotifyPayment,
		"退款已处理", "订单 "+payment.OrderID+" 已退款，课程访问权限已关闭。")
}

func (s *PaymentService) ListForUser(userID uint) ([]model.Payment, error) {
	payments, err := s.PaymentRepo.FindByUser(userID)
	if err != nil {
		return nil, util.NewUnexpectedError(err)
	}
	return payments, nil
}
