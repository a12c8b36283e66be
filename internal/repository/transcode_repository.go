package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type TranscodeRepository struct {
	DB *gorm.DB
}

func NewTranscodeRepository(db *gorm.DB) *TranscodeRepository {
	return &TranscodeRepository{DB: db}
}

func (r *TranscodeRepository) Create(job *model.TranscodeJob) error {
	return r.DB.Create(job).Error
}

func (r *TranscodeRepository) FindByID(id uint) (*model.TranscodeJob, error) {
	var job model.TranscodeJob
	err := r.DB.First(&job, id).Error
	return &job, err
}

func (r *TranscodeRepository) Update(job *model.TranscodeJob) error {
	return r.DB.Save(job).Error
}

func (r *TranscodeRepository) UpdateStatus(id uint, status model.TranscodeStatus, errMsg string) error {
	return r.DB.Model(&model.TranscodeJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "error_msg": errMsg}).
		Error
}
