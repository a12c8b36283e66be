package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(n *model.Notification) error {
	return r.DB.Create(n).Error
}

func (r *NotificationRepository) FindByUser(userID uint, page, limit int) ([]model.Notification, int64, error) {
	q := r.DB.Model(&model.Notification{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []model.Notification
	err := q.Offset((page - 1) * limit).Limit(limit).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, total, err
}

func (r *NotificationRepository) MarkRead(userID, id uint) error {
	return r.DB.Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).
		Error
}

func (r *NotificationRepository) MarkAllRead(userID uint) error {
	return r.DB.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).
		Error
}

// HasUnlockNotice 某用户某模块的解锁通知是否已发过
func (r *NotificationRepository) HasUnlockNotice(userID, moduleID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ModuleUnlockNotice{}).
		Where("user_id = ? AND module_id = ?", userID, moduleID).
		Count(&count).Error
	return count > 0, err
}

func (r *NotificationRepository) CreateUnlockNotice(notice *model.ModuleUnlockNotice) error {
	return r.DB.Create(notice).Error
}
