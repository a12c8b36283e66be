package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("quiz_questions.order ASC")
	}).First(&quiz, id).Error
	return &quiz, err
}

func (r *QuizRepository) FindByModule(moduleID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Where("module_id = ?", moduleID).Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

func (r *QuizRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, id).Error
	})
}

func (r *QuizRepository) ReplaceQuestions(quizID uint, questions []model.QuizQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", quizID).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		if len(questions) == 0 {
			return nil
		}
		return tx.Create(&questions).Error
	})
}

// CreateAttempt 在同一事务中写入判分记录和每题答案，保证不落半条
func (r *QuizRepository) CreateAttempt(attempt *model.QuizAttempt, answers []model.QuizAnswer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}
		// 零题测验只落尝试记录，空切片直接 Create 会报 ErrEmptySlice
		if len(answers) == 0 {
			return nil
		}
		for i := range answers {
			answers[i].AttemptID = attempt.ID
		}
		return tx.Create(&answers).Error
	})
}

func (r *QuizRepository) FindAttemptsByUser(quizID, userID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Preload("Answers").
		Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Order("submitted_at DESC").
		Find(&attempts).Error
	return attempts, err
}
