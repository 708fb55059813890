package handler

import (
	"github.com/gin-gonic/gin"

	"fantaprof/backend/internal/service"
	"fantaprof/backend/pkg/response"
)

// AchievementHandler 成就模块 HTTP 处理器
type AchievementHandler struct {
	achSvc service.AchievementService
}

// NewAchievementHandler 创建 AchievementHandler
func NewAchievementHandler(achSvc service.AchievementService) *AchievementHandler {
	return &AchievementHandler{achSvc: achSvc}
}

// List 全部成就（含当前用户解锁状态）
// GET /api/achievements
func (h *AchievementHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.achSvc.ListAll(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// My 我的成就与进度
// GET /api/achievements/my
func (h *AchievementHandler) My(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.achSvc.My(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
