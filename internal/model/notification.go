package model

type NotificationType string

const (
	NotifyModuleUnlocked NotificationType = "module_unlocked"
	NotifyPayment        NotificationType = "payment"
	NotifyEnrollment     NotificationType = "enrollment"
	NotifyCommunity      NotificationType = "community"
	NotifyMarketplace    NotificationType = "marketplace"
)

// Notification 站内通知
type Notification struct {
	BaseModel
	UserID uint             `gorm:"index;type:bigint unsigned" json:"userId"`
	Type   NotificationType `gorm:"size:30;not null" json:"type"`
	Title  string           `gorm:"size:255;not null" json:"title"`
	Body   string           `gorm:"type:text" json:"body"`
	IsRead bool             `gorm:"default:false" json:"isRead"`
}

func (Notification) TableName() string {
	return "notifications"
}

// ModuleUnlockNotice 记录某用户某模块的解锁通知是否已发出，保证只发一次
type ModuleUnlockNotice struct {
	BaseModel
	UserID       uint `gorm:"uniqueIndex:idx_user_module;type:bigint unsigned" json:"userId"`
	ModuleID     uint `gorm:"uniqueIndex:idx_user_module;type:bigint unsigned" json:"moduleId"`
	EnrollmentID uint `gorm:"index;type:bigint unsigned" json:"enrollmentId"`
}

func (ModuleUnlockNotice) TableName() string {
	return "module_unlock_notices"
}
