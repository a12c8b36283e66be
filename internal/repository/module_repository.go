package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) Create(m *model.CourseModule) error {
	return r.DB.Create(m).Error
}

func (r *ModuleRepository) FindByID(id uint) (*model.CourseModule, error) {
	var m model.CourseModule
	err := r.DB.First(&m, id).Error
	return &m, err
}

func (r *ModuleRepository) FindByIDWithContents(id uint) (*model.CourseModule, error) {
	var m model.CourseModule
	err := r.DB.Preload("Contents", func(db *gorm.DB) *gorm.DB {
		return db.Order("contents.order ASC")
	}).First(&m, id).Error
	return &m, err
}

func (r *ModuleRepository) Update(m *model.CourseModule) error {
	return r.DB.Save(m).Error
}

func (r *ModuleRepository) Delete(id uint) error {
	return r.DB.Delete(&model.CourseModule{}, id).Error
}

// FindByCourse 按 order 升序返回课程全部模块
func (r *ModuleRepository) FindByCourse(courseID uint) ([]model.CourseModule, error) {
	var modules []model.CourseModule
	err := r.DB.Where("course_id = ?", courseID).
		Order("`order` ASC").
		Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) CreateContent(content *model.Content) error {
	return r.DB.Create(content).Error
}

func (r *ModuleRepository) FindContentByID(id uint) (*model.Content, error) {
	var content model.Content
	err := r.DB.First(&content, id).Error
	return &content, err
}

func (r *ModuleRepository) UpdateContent(content *model.Content) error {
	return r.DB.Save(content).Error
}
