package model

type ModuleStatus string

const (
	ModuleDraft    ModuleStatus = "DRAFT"
	ModuleActive   ModuleStatus = "ACTIVE"
	ModuleArchived ModuleStatus = "ARCHIVED"
)

// CourseModule 课程下的章节模块，按报名日期 + durationInDays 解锁
// swagger:model CourseModule
type CourseModule struct {
	BaseModel
	CourseID       uint         `gorm:"index;type:bigint unsigned" json:"courseId"`
	Title          string       `gorm:"size:255;not null" json:"title"`
	Description    string       `gorm:"type:text" json:"description"`
	Order          int          `gorm:"default:0" json:"order"`
	DurationInDays int          `gorm:"default:0" json:"durationInDays"` // 相对报名日期的解锁偏移（自然日）
	Status         ModuleStatus `gorm:"type:enum('DRAFT','ACTIVE','ARCHIVED');default:'DRAFT'" json:"status"`
	Price          *float64     `json:"price,omitempty"` // 独立售卖价格，nil 表示不可单独购买
	Contents       []Content    `gorm:"foreignKey:ModuleID" json:"contents,omitempty"`
	Quizzes        []Quiz       `gorm:"foreignKey:ModuleID" json:"quizzes,omitempty"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}
