package model

type ContentType string

const (
	ContentVideo    ContentType = "video"
	ContentArticle  ContentType = "article"
	ContentDocument ContentType = "document"
)

// Content 模块下的学习内容
type Content struct {
	BaseModel
	ModuleID     uint        `gorm:"index;type:bigint unsigned" json:"moduleId"`
	Title        string      `gorm:"size:255;not null" json:"title"`
	Type         ContentType `gorm:"size:20;not null" json:"type"`
	Order        int         `gorm:"default:0" json:"order"`
	FileURL      string      `gorm:"size:255" json:"fileUrl"`
	ThumbnailURL string      `gorm:"size:255" json:"thumbnailUrl"`
	Body         string      `gorm:"type:text" json:"body"` // 文章正文
	DurationSecs float64     `gorm:"default:0" json:"durationSecs"`
}

func (Content) TableName() string {
	return "contents"
}
