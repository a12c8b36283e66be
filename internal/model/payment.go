package model

import (
	"time"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// Payment 报名关联的支付记录，分期计划时 NextPaymentDate 指向下一期扣款日
type Payment struct {
	BaseModel
	EnrollmentID    uint          `gorm:"index;type:bigint unsigned" json:"enrollmentId"`
	OrderID         string        `gorm:"size:64;uniqueIndex" json:"orderId"` // 支付网关订单号
	Amount          float64       `gorm:"not null" json:"amount"`
	Status          PaymentStatus `gorm:"type:enum('PENDING','COMPLETED','FAILED','REFUNDED');default:'PENDING'" json:"status"`
	PaymentDate     *time.Time    `json:"paymentDate"`
	NextPaymentDate *time.Time    `json:"nextPaymentDate"`
	SnapToken       string        `gorm:"size:255" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}
