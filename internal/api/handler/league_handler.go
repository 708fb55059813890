package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fantaprof/backend/internal/dto"
	"fantaprof/backend/internal/service"
	"fantaprof/backend/pkg/response"
)

// LeagueHandler 联赛模块 HTTP 处理器
type LeagueHandler struct {
	leagueSvc service.LeagueService
}

// NewLeagueHandler 创建 LeagueHandler
func NewLeagueHandler(leagueSvc service.LeagueService) *LeagueHandler {
	return &LeagueHandler{leagueSvc: leagueSvc}
}

// Create 创建联赛
// POST /api/leagues
func (h *LeagueHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.leagueSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// Join 按邀请码加入联赛
// POST /api/leagues/join
func (h *LeagueHandler) Join(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.JoinLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.leagueSvc.Join(c.Request.Context(), userID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLeagueNotFound):
			response.NotFound(c, 14001, "邀请码无效")
		case errors.Is(err, service.ErrLeagueFull):
			response.Conflict(c, 14002, "联赛人数已满")
		case errors.Is(err, service.ErrAlreadyMember):
			response.Conflict(c, 14003, "已是该联赛成员")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Leave 退出联赛
// DELETE /api/leagues/:id/leave
func (h *LeagueHandler) Leave(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.leagueSvc.Leave(c.Request.Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrLeagueNotFound):
			response.NotFound(c, 14004, "联赛不存在")
		case errors.Is(err, service.ErrCreatorLeave):
			response.Forbidden(c, 14005, "创建者不能退出，只能解散联赛")
		case errors.Is(err, service.ErrNotMember):
			response.BadRequest(c, 14006, "不是该联赛成员")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// Delete 解散联赛（仅创建者）
// DELETE /api/leagues/:id
func (h *LeagueHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.leagueSvc.Delete(c.Request.Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrLeagueNotFound):
			response.NotFound(c, 14004, "联赛不存在")
		case errors.Is(err, service.ErrNotLeagueCreator):
			response.Forbidden(c, 14007, "只有创建者可以解散联赛")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// ListPublic 公开联赛列表
// GET /api/leagues/public
func (h *LeagueHandler) ListPublic(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.leagueSvc.ListPublic(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// My 我加入的联赛
// GET /api/leagues/my
func (h *LeagueHandler) My(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.leagueSvc.My(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Detail 联赛详情与榜单
// GET /api/leagues/:id
func (h *LeagueHandler) Detail(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.leagueSvc.Detail(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, service.ErrLeagueNotFound) {
			response.NotFound(c, 14004, "联赛不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
