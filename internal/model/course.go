package model

type CourseStatus string

const (
	CourseDraft     CourseStatus = "DRAFT"
	CoursePublished CourseStatus = "PUBLISHED"
	CourseArchived  CourseStatus = "ARCHIVED"
)

// swagger:model Course
type Course struct {
	BaseModel
	Title        string         `gorm:"size:255;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	CoverURL     string         `gorm:"size:255" json:"coverUrl"`
	InstructorID uint           `gorm:"index;type:bigint unsigned" json:"instructorId"`
	Instructor   User           `gorm:"foreignKey:InstructorID" json:"instructor"`
	Status       CourseStatus   `gorm:"type:enum('DRAFT','PUBLISHED','ARCHIVED');default:'DRAFT'" json:"status"`
	Price        float64        `gorm:"default:0" json:"price"`
	DurationDays int            `gorm:"default:365" json:"durationDays"` // 报名后访问有效期
	Modules      []CourseModule `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
