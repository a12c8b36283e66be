package model

import (
	"time"
)

// swagger:model Quiz
type Quiz struct {
	BaseModel
	ModuleID     uint           `gorm:"index;type:bigint unsigned" json:"moduleId"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	PassingScore int            `gorm:"default:60" json:"passingScore"` // 百分比及格线，含边界
	Questions    []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

type QuizQuestion struct {
	BaseModel
	QuizID             uint     `gorm:"index;type:bigint unsigned" json:"quizId"`
	Text               string   `gorm:"type:text;not null" json:"text"`
	Options            []string `gorm:"serializer:json;type:json" json:"options"`
	CorrectOptionIndex int      `gorm:"not null" json:"-"` // 不下发给学生
	Points             int      `gorm:"default:1" json:"points"`
	Order              int      `gorm:"default:0" json:"order"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// QuizAttempt 一次判分提交的不可变记录，创建后不再更新
type QuizAttempt struct {
	BaseModel
	QuizID      uint         `gorm:"index;type:bigint unsigned" json:"quizId"`
	UserID      uint         `gorm:"index;type:bigint unsigned" json:"userId"`
	Score       int          `gorm:"not null" json:"score"` // 0..100
	Passed      bool         `gorm:"not null" json:"passed"`
	SubmittedAt time.Time    `json:"submittedAt"`
	Answers     []QuizAnswer `gorm:"foreignKey:AttemptID" json:"answers,omitempty"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

type QuizAnswer struct {
	BaseModel
	AttemptID           uint `gorm:"index;type:bigint unsigned" json:"attemptId"`
	QuestionID          uint `gorm:"index;type:bigint unsigned" json:"questionId"`
	SelectedOptionIndex int  `gorm:"not null" json:"selectedOptionIndex"`
	IsCorrect           bool `gorm:"not null" json:"isCorrect"`
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}
