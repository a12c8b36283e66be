package service

import (
	"time"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const installmentCount = 3

// PurchaseResult 下单结果，免费课程时 Payment 为 nil 且报名立即生效
type PurchaseResult struct {
	Enrollment  *model.Enrollment `json:"enrollment"`
	Payment     *model.Payment    `json:"payment,omitempty"`
	SnapToken   string            `json:"snapToken,omitempty"`
	RedirectURL string            `json:"redirectUrl,omitempty"`
}

type EnrollmentService struct {
	EnrollmentRepo  *repository.EnrollmentRepository
	CourseRepo      *repository.CourseRepository
	PaymentRepo     *repository.PaymentRepository
	UserRepo        *repository.UserRepository
	PaymentSvc      *PaymentService
	NotificationSvc *NotificationService
}

func NewEnrollmentService(enrollmentRepo *repository.EnrollmentRepository, courseRepo *repository.CourseRepository,
	paymentRepo *repository.PaymentRepository, userRepo *repository.UserRepository,
	paymentSvc *PaymentService, notificationSvc *NotificationService) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo:  enrollmentRepo,
		CourseRepo:      courseRepo,
		PaymentRepo:     paymentRepo,
		UserRepo:        userRepo,
		PaymentSvc:      paymentSvc,
		NotificationSvc: notificationSvc,
	}
}

// Purchase 购买课程：创建未激活报名和 PENDING 支付单，返回收银台 token。
// 报名在支付回调确认后才激活。免费课程跳过支付直接激活。
func (s *EnrollmentService) Purchase(caller *util.Claims, courseID uint, plan model.PaymentPlan) (*PurchaseResult, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.NewNotFoundError("课程不存在")
	} else if err != nil {
		return nil, util.NewUnexpectedError(err)
	}
	if course.Status != model.CoursePublished {
		return nil, util.NewValidationError("课程未发布，无法购买")
	}

	if _, err := s.EnrollmentRepo.FindActive(caller.UserID, courseID); err == nil {
		return nil, util.NewConflictError("已报名该课程")
	} else if err != gorm.ErrRecordNotFound {
		return nil, util.NewUnexpectedError(err)
	}

	// 未激活的历史报名若还挂着待支付订单，不允许再开新单
	if prior, err := s.EnrollmentRepo.FindAnyByUserAndCourse(caller.UserID, courseID); err == nil {
		payments, perr := s.PaymentRepo.FindByEnrollment(prior.ID)
		if perr != nil {
			return nil, util.NewUnexpectedError(perr)
		}
		for _, p := range payments {
			if p.Status == model.PaymentPending {
				return nil, util.NewConflictError("该课程已有待支付订单，请先完成或等待其过期")
			}
		}
	} else if err != gorm.ErrRecordNotFound {
		return nil, util.NewUnexpectedError(err)
	}

	if plan == "" {
		plan = model.PlanFull
	}
	if plan != model.PlanFull && plan != model.PlanInstallment {
		return nil, util.NewValidationError("不支持的付款计划: " + string(plan))
	}

	now := time.Now()
	enrollment := &model.Enrollment{
		UserID:         caller.UserID,
		CourseID:       courseID,
		EnrollmentDate: now,
		ExpiryDate:     now.AddDate(0, 0, course.DurationDays),
		IsActive:       false,
		PaymentPlan:    plan,
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		return nil, util.NewUnexpectedError(err)
	}

	if course.Price <= 0 {
		if err := s.EnrollmentRepo.SetActive(enrollment.ID, true); err != nil {
			return nil, util.NewUnexpectedError(err)
		}
		enrollment.IsActive = true
		s.NotificationSvc.Notify(caller.UserID, model.NotifyEnrollment,
			"报名成功", "课程「"+course.Title+"」已开通，现在就可以开始学习。")
		return &PurchaseResult{Enrollment: enrollment}, nil
	}

	amount := course.Price
	var nextPaymentDate *time.Time
	if plan == model.PlanInstallment {
		amount = course.Price / installmentCount
		next := now.AddDate(0, 1, 0)
		nextPaymentDate = &next
	}

	payment := &model.Payment{
		EnrollmentID:    enrollment.ID,
		OrderID:         uuid.New().String(),
		Amount:          amount,
		Status:          model.PaymentPending,
		NextPaymentDate: nextPaymentDate,
	}
	if err := s.PaymentRepo.Create(payment); err != nil {
		return nil, util.NewUnexpectedError(err)
	}

	user, err := s.UserRepo.FindByID(caller.UserID)
	if err != nil {
		return nil, util.NewUnexpectedError(err)
	}

	token, redirectURL, err := s.PaymentSvc.CreateSnapTransaction(payment, user, course.Title)
	if err != nil {
		return nil, err
	}

	return &PurchaseResult{
		Enrollment:  enrollment,
		Payment:     payment,
		SnapToken:   token,
		RedirectURL: redirectURL,
	}, nil
}

// ListForUser 当前用户的全部报名记录
func (s *EnrollmentService) ListForUser(userID uint) ([]model.Enrollment, error) {
	enrollments, err := s.EnrollmentRepo.FindByUser(userID)
	if err != nil {
		return nil, util.NewUnexpectedError(err)
	}
	return enrollments, nil
}

// GetForUser 报名详情，仅本人或管理员可见
func (s *EnrollmentService) GetForUser(caller *util.Claims, id uint) (*model.Enrollment, error) {
	enrollment, err := s.EnrollmentRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.NewNotFoundError("报名记录不存在")
	} else if err != nil {
		return nil, util.NewUnexpectedError(err)
	}
	if caller.Role != model.Admin && caller.UserID != enrollment.UserID {
		return nil, util.NewAuthorizationError("无权查看该报名记录")
	}
	return enrollment, nil
}
