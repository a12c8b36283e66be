package model

import (
	"time"
)

type UserRole string

const (
	Student    UserRole = "student"
	Instructor UserRole = "instructor"
	Admin      UserRole = "admin"
)

type UserStatus string

const (
	UserActive    UserStatus = "ACTIVE"
	UserSuspended UserStatus = "SUSPENDED"
	UserInactive  UserStatus = "INACTIVE"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string     `gorm:"size:100;not null" json:"name"`
	Email     string     `gorm:"size:100;unique;not null" json:"email"`
	Password  string     `gorm:"size:100;not null" json:"-"`
	Role      UserRole   `gorm:"type:enum('student','instructor','admin');default:'student'" json:"role"`
	Status    UserStatus `gorm:"type:enum('ACTIVE','SUSPENDED','INACTIVE');default:'ACTIVE'" json:"status"`
	Avatar    string     `gorm:"size:255" json:"avatar"`
	Bio       string     `gorm:"type:text" json:"bio"`
	LastLogin time.Time  `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen  time.Time  `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
