package model

type TranscodeStatus string

const (
	TranscodePending    TranscodeStatus = "PENDING"
	TranscodeProcessing TranscodeStatus = "PROCESSING"
	TranscodeReady      TranscodeStatus = "READY"
	TranscodeFailed     TranscodeStatus = "FAILED"
)

// TranscodeJob 视频转码任务，提交后由后台 worker 处理，客户端轮询状态
type TranscodeJob struct {
	BaseModel
	ContentID    uint            `gorm:"index;type:bigint unsigned" json:"contentId"`
	SourcePath   string          `gorm:"size:255;not null" json:"-"`
	OutputURL    string          `gorm:"size:255" json:"outputUrl"`
	ThumbnailURL string          `gorm:"size:255" json:"thumbnailUrl"`
	Status       TranscodeStatus `gorm:"type:enum('PENDING','PROCESSING','READY','FAILED');default:'PENDING'" json:"status"`
	ErrorMsg     string          `gorm:"size:255" json:"errorMsg,omitempty"`
}

func (TranscodeJob) TableName() string {
	return "transcode_jobs"
}
