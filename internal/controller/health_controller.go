package controller

import (
	"context"
	"time"

	"hp_quiz_backend/internal/util"

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
// @Summary Liveness and dependency status
// @Tags health
// @Produce  json
// @Success 200 {object} util.Response{data=object} "Status"
// @Router /api/health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if sqlDB, err := c.DB.DB(); err != nil {
		dbStatus = "error"
	} else if err := sqlDB.PingContext(checkCtx); err != nil {
		dbStatus = "error"
	}

	redisStatus := "disabled"
	if c.Redis != nil {
		redisStatus = "ok"
		if err := c.Redis.Ping(checkCtx).Err(); err != nil {
			redisStatus = "error"
		}
	}

	util.Success(ctx, gin.H{
		"status":   "up",
		"time":     time.Now().Format(util.TimeFormat),
		"database": dbStatus,
		"redis":    redisStatus,
	})
}
