package repository

import (
	"testing"
	"time"

	"learnhub_backend/internal/model"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return db, mock
}

// 零题测验的提交只落尝试记录，不写答案行
func TestCreateAttemptWithoutAnswers(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuizRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `quiz_attempts`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	attempt := &model.QuizAttempt{QuizID: 3, UserID: 9, Score: 0, SubmittedAt: time.Now()}
	if err := repo.CreateAttempt(attempt, nil); err != nil {
		t.Fatalf("CreateAttempt without answers: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreateAttemptLinksAnswers(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuizRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `quiz_attempts`").WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO `quiz_answers`").WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectCommit()

	attempt := &model.QuizAttempt{QuizID: 3, UserID: 9, Score: 50, SubmittedAt: time.Now()}
	answers := []model.QuizAnswer{
		{QuestionID: 1, SelectedOptionIndex: 0, IsCorrect: true},
		{QuestionID: 2, SelectedOptionIndex: 2},
	}
	if err := repo.CreateAttempt(attempt, answers); err != nil {
		t.Fatalf("CreateAttempt: %v", err)
	}

	for i := range answers {
		if answers[i].AttemptID != attempt.ID {
			t.Errorf("answer %d attemptID = %d, want %d", i, answers[i].AttemptID, attempt.ID)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
