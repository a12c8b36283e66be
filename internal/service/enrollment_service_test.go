package service

import (
	"errors"
	"testing"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"gorm.io/gorm"
)

func newTestEnrollmentService(db *gorm.DB) *EnrollmentService {
	cfg := &config.Config{}
	notificationSvc := NewNotificationService(
		repository.NewNotificationRepository(db), repository.NewUserRepository(db), cfg)
	paymentSvc := NewPaymentService(
		repository.NewPaymentRepository(db), repository.NewEnrollmentRepository(db), notificationSvc, cfg)
	return NewEnrollmentService(
		repository.NewEnrollmentRepository(db),
		repository.NewCourseRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewUserRepository(db),
		paymentSvc,
		notificationSvc,
	)
}

// 已有待支付订单时不允许重复下单
func TestPurchaseRejectsPendingPayment(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newTestEnrollmentService(db)

	mock.ExpectQuery("SELECT (.+) FROM `courses`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "instructor_id", "title", "status", "price", "duration_days"}).
			AddRow(3, 1, "Go 进阶", "PUBLISHED", 100.0, 365))
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	// 无激活报名
	mock.ExpectQuery("SELECT (.+) FROM `enrollments`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	// 但有一条挂着待支付订单的历史报名
	mock.ExpectQuery("SELECT (.+) FROM `enrollments`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "course_id", "is_active"}).
			AddRow(7, 9, 3, false))
	mock.ExpectQuery("SELECT (.+) FROM `payments`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "enrollment_id", "status"}).
			AddRow(11, 7, "PENDING"))

	caller := &util.Claims{UserID: 9, Role: model.Student}
	_, err := svc.Purchase(caller, 3, model.PlanFull)

	var appErr *util.AppError
	if !errors.As(err, &appErr) || appErr.Kind != util.KindConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// 免费课程直接激活，不创建支付单
func TestPurchaseFreeCourseActivatesImmediately(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newTestEnrollmentService(db)

	mock.ExpectQuery("SELECT (.+) FROM `courses`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "instructor_id", "title", "status", "price", "duration_days"}).
			AddRow(3, 1, "公开课", "PUBLISHED", 0.0, 30))
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	mock.ExpectQuery("SELECT (.+) FROM `enrollments`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT (.+) FROM `enrollments`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `enrollments`").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `enrollments`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `notifications`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	caller := &util.Claims{UserID: 9, Role: model.Student}
	result, err := svc.Purchase(caller, 3, "")
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if result.Payment != nil {
		t.Error("free course purchase should not create a payment")
	}
	if !result.Enrollment.IsActive {
		t.Error("free course enrollment should be active immediately")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
