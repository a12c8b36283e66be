package model

import (
	"time"
)

type PaymentPlan string

const (
	PlanFull        PaymentPlan = "FULL"
	PlanInstallment PaymentPlan = "INSTALLMENT"
)

// Enrollment 用户与课程的报名关系
// 约束：同一 (user, course) 至多一条激活中的报名记录
type Enrollment struct {
	BaseModel
	UserID         uint        `gorm:"index:idx_user_course;type:bigint unsigned" json:"userId"`
	User           User        `gorm:"foreignKey:UserID" json:"-"`
	CourseID       uint        `gorm:"index:idx_user_course;type:bigint unsigned" json:"courseId"`
	Course         Course      `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	EnrollmentDate time.Time   `json:"enrollmentDate"`
	ExpiryDate     time.Time   `json:"expiryDate"`
	IsActive       bool        `gorm:"default:false" json:"isActive"`
	PaymentPlan    PaymentPlan `gorm:"type:enum('FULL','INSTALLMENT');default:'FULL'" json:"paymentPlan"`
	Payments       []Payment   `gorm:"foreignKey:EnrollmentID" json:"payments,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// Expired 判断报名是否已过期
func (e *Enrollment) Expired(now time.Time) bool {
	return !e.ExpiryDate.IsZero() && now.After(e.ExpiryDate)
}
