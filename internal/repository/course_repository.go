package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Instructor").First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) FindByIDWithModules(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Instructor").
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("course_modules.order ASC")
		}).
		First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Course{}, id).Error
}

func (r *CourseRepository) ListPublished(page, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	q := r.DB.Model(&model.Course{}).Where("status = ?", model.CoursePublished)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Instructor").
		Offset((page - 1) * limit).Limit(limit).
		Order("created_at DESC").
		Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) ListByInstructor(instructorID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("instructor_id = ?", instructorID).Order("created_at DESC").Find(&courses).Error
	return courses, err
}
