package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"fantaprof/backend/internal/service"
	"fantaprof/backend/pkg/response"
)

// ProfessorHandler 教授模块 HTTP 处理器（玩家侧只读）
type ProfessorHandler struct {
	profSvc service.ProfessorService
}

// NewProfessorHandler 创建 ProfessorHandler
func NewProfessorHandler(profSvc service.ProfessorService) *ProfessorHandler {
	return &ProfessorHandler{profSvc: profSvc}
}

// List 教授市场列表
// GET /api/professors
func (h *ProfessorHandler) List(c *gin.Context) {
	result, err := h.profSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Get 单个教授详情
// GET /api/professors/:id
func (h *ProfessorHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.profSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProfessorNotFound) {
			response.NotFound(c, 12001, "教授不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// History 教授计分历史
// GET /api/professors/:id/history?limit=50
func (h *ProfessorHandler) History(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 500 {
		response.BadRequest(c, 10001, "无效的 limit")
		return
	}

	result, err := h.profSvc.History(c.Request.Context(), id, limit)
	if err != nil {
		if errors.Is(err, service.ErrProfessorNotFound) {
			response.NotFound(c, 12001, "教授不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
