package controller

import (
	"context"
	"time"

	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type HealthController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewHealthController(db *gorm.DB, rdb *redis.Client) *HealthController {
	return &HealthController{DB: db, Redis: rdb}
}

// Health godoc
// @Summary 健康检查
// @Tags 系统
// @Produce  json
// @Success 200 {object} util.Response{data=object}
// @Failure 503 {object} util.Response "依赖不可用"
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"database": "up", "redis": "up"}
	healthy := true

	if sqlDB, err := c.DB.DB(); err != nil || sqlDB.PingContext(checkCtx) != nil {
		status["database"] = "down"
		healthy = false
	}
	if err := c.Redis.Ping(checkCtx).Err(); err != nil {
		status["redis"] = "down"
		healthy = false
	}

	if !healthy {
		ctx.JSON(503, util.Response{Success: false, Message: "degraded", Data: status})
		return
	}
	util.Success(ctx, status)
}
