// 手动触发模块解锁通知补发脚本
//
// 该功能已集成到主应用的后台定时任务中（每小时自动执行一次）。
// 此脚本仅用于手动触发，例如首次部署或批量导入报名数据后。
//
// 用法: go run scripts/sweep_unlock_notices.go

package main

import (
	"log"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/service"
	"learnhub_backend/pkg/database"
	"learnhub_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, false)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	notificationSvc := service.NewNotificationService(notificationRepo, userRepo, cfg)
	sweep := service.NewSweepService(enrollmentRepo, moduleRepo, paymentRepo, nil, notificationSvc)

	log.Println("手动触发解锁通知补发...")
	sweep.SweepUnlockNotices()
	log.Println("完成！")
}
