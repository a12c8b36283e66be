package database

import (
	"fmt"
	"log"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !migrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.CourseModule{},
		&model.Content{},
		&model.Enrollment{},
		&model.Payment{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizAttempt{},
		&model.QuizAnswer{},
		&model.ModuleUnlockNotice{},
		&model.Notification{},
		&model.Post{},
		&model.Comment{},
		&model.Tag{},
		&model.ServiceListing{},
		&model.ServiceOrder{},
		&model.TranscodeJob{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认社区标签（为空时插入常用标签）
	var tagCount int64
	db.Model(&model.Tag{}).Count(&tagCount)
	if tagCount == 0 {
		defaultTags := []model.Tag{
			{Name: "general", Description: "日常讨论"},
			{Name: "question", Description: "提问求助"},
			{Name: "showcase", Description: "作品展示"},
			{Name: "feedback", Description: "课程反馈"},
		}
		for _, t := range defaultTags {
			db.Create(&t)
		}
	}

	return db, nil
}
