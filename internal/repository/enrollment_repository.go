package repository

import (
	"time"

	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(e *model.Enrollment) error {
	return r.DB.Create(e).Error
}

func (r *EnrollmentRepository) FindByID(id uint) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.DB.Preload("Course").First(&e, id).Error
	return &e, err
}

// FindActive 查找用户在某课程下激活中的报名记录
func (r *EnrollmentRepository) FindActive(userID, courseID uint) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.DB.Where("user_id = ? AND course_id = ? AND is_active = ?", userID, courseID, true).
		First(&e).Error
	return &e, err
}

// FindAnyByUserAndCourse 返回用户在某课程下最近一条报名记录（含未激活）
func (r *EnrollmentRepository) FindAnyByUserAndCourse(userID, courseID uint) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("created_at DESC").
		First(&e).Error
	return &e, err
}

func (r *EnrollmentRepository) FindByUser(userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Preload("Course").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) Update(e *model.Enrollment) error {
	return r.DB.Save(e).Error
}

func (r *EnrollmentRepository) SetActive(id uint, active bool) error {
	return r.DB.Model(&model.Enrollment{}).
		Where("id = ?", id).
		Update("is_active", active).
		Error
}

// FindAllActive 全部激活中的报名，供定时解锁巡检使用
func (r *EnrollmentRepository) FindAllActive() ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Preload("User").Where("is_active = ?", true).Find(&enrollments).Error
	return enrollments, err
}

// DeactivateExpired 批量停用已过期的报名，返回受影响行数
func (r *EnrollmentRepository) DeactivateExpired(now time.Time) (int64, error) {
	result := r.DB.Model(&model.Enrollment{}).
		Where("is_active = ? AND expiry_date < ?", true, now).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
