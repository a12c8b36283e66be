package repository

import (
	"time"

	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(p *model.Payment) error {
	return r.DB.Create(p).Error
}

func (r *PaymentRepository) FindByID(id uint) (*model.Payment, error) {
	var p model.Payment
	err := r.DB.First(&p, id).Error
	return &p, err
}

func (r *PaymentRepository) FindByOrderID(orderID string) (*model.Payment, error) {
	var p model.Payment
	err := r.DB.Where("order_id = ?", orderID).First(&p).Error
	return &p, err
}

func (r *PaymentRepository) FindByEnrollment(enrollmentID uint) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.DB.Where("enrollment_id = ?", enrollmentID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

func (r *PaymentRepository) FindByUser(userID uint) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.DB.Joins("JOIN enrollments ON enrollments.id = payments.enrollment_id").
		Where("enrollments.user_id = ?", userID).
		Order("payments.created_at DESC").
		Find(&payments).Error
	return payments, err
}

func (r *PaymentRepository) Update(p *model.Payment) error {
	return r.DB.Save(p).Error
}

// FindDueInstallments 查询下一期扣款日早于 before 的已完成分期付款记录
func (r *PaymentRepository) FindDueInstallments(before time.Time) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.DB.Where("status = ? AND next_payment_date IS NOT NULL AND next_payment_date <= ?",
		model.PaymentCompleted, before).
		Find(&payments).Error
	return payments, err
}
