package service

import (
	"testing"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/repository"
	"learnhub_backend/pkg/logger"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	logger.Log = zap.NewNop()
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return db, mock
}

func newTestPaymentService(db *gorm.DB) *PaymentService {
	cfg := &config.Config{}
	notificationSvc := NewNotificationService(
		repository.NewNotificationRepository(db), repository.NewUserRepository(db), cfg)
	return NewPaymentService(
		repository.NewPaymentRepository(db), repository.NewEnrollmentRepository(db), notificationSvc, cfg)
}

// 结算回调激活报名并把订单标记为已完成
func TestHandleNotificationSettlementActivates(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newTestPaymentService(db)

	mock.ExpectQuery("SELECT (.+) FROM `payments`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "enrollment_id", "order_id", "amount", "status"}).
			AddRow(11, 7, "ord-1", 100.0, "PENDING"))

	mock.ExpectQuery("SELECT (.+) FROM `enrollments`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "course_id", "is_active"}).
			AddRow(7, 9, 3, false))
	mock.ExpectQuery("SELECT (.+) FROM `courses`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	// 同课程下没有其他激活报名
	mock.ExpectQuery("SELECT (.+) FROM `enrollments`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `payments`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `enrollments`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `notifications`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := svc.HandleNotification(map[string]interface{}{
		"order_id":           "ord-1",
		"transaction_status": "settlement",
	})
	if err != nil {
		t.Fatalf("HandleNotification: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// 同一 (user, course) 已有激活报名时，后来的结算不再重复开通，订单转入退款
func TestHandleNotificationDuplicateEnrollmentRefunded(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newTestPaymentService(db)

	mock.ExpectQuery("SELECT (.+) FROM `payments`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "enrollment_id", "order_id", "amount", "status"}).
			AddRow(11, 7, "ord-2", 100.0, "PENDING"))

	// 订单对应的报名尚未激活
	mock.ExpectQuery("SELECT (.+) FROM `enrollments`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "course_id", "is_active"}).
			AddRow(7, 9, 3, false))
	mock.ExpectQuery("SELECT (.+) FROM `courses`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	// 同课程下已存在另一条激活报名
	mock.ExpectQuery("SELECT (.+) FROM `enrollments`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "course_id", "is_active"}).
			AddRow(5, 9, 3, true))

	// 只改订单状态，不应出现针对 enrollments 的 UPDATE
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `payments`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `notifications`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := svc.HandleNotification(map[string]interface{}{
		"order_id":           "ord-2",
		"transaction_status": "settlement",
	})
	if err != nil {
		t.Fatalf("HandleNotification: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
