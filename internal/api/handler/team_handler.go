package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fantaprof/backend/internal/dto"
	"fantaprof/backend/internal/service"
	"fantaprof/backend/pkg/response"
)

// TeamHandler 队伍模块 HTTP 处理器
type TeamHandler struct {
	teamSvc service.TeamService
}

// NewTeamHandler 创建 TeamHandler
func NewTeamHandler(teamSvc service.TeamService) *TeamHandler {
	return &TeamHandler{teamSvc: teamSvc}
}

// Create 组建队伍
// POST /api/teams
func (h *TeamHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.teamSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleCreateError(c, err)
		return
	}

	response.Created(c, result)
}

func (h *TeamHandler) handleCreateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRosterSize):
		response.BadRequest(c, 13001, "阵容人数不符合要求")
	case errors.Is(err, service.ErrRosterDuplicate):
		response.BadRequest(c, 13002, "阵容中存在重复教授")
	case errors.Is(err, service.ErrCaptainNotInRoster):
		response.BadRequest(c, 13003, "队长必须在阵容中")
	case errors.Is(err, service.ErrProfessorNotFound):
		response.BadRequest(c, 13004, "阵容中存在不存在的教授")
	case errors.Is(err, service.ErrOverBudget):
		response.BadRequest(c, 13005, "阵容总成本超出预算")
	case errors.Is(err, service.ErrNotLeagueMember):
		response.Forbidden(c, 13006, "尚未加入该联赛")
	case errors.Is(err, service.ErrTeamInLeagueExists):
		response.Conflict(c, 13007, "该联赛中已有你的队伍")
	default:
		response.InternalError(c)
	}
}

// My 我的队伍列表
// GET /api/teams/my
func (h *TeamHandler) My(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.teamSvc.My(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Get 队伍详情
// GET /api/teams/:id
func (h *TeamHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.teamSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.NotFound(c, 13008, "队伍不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Delete 解散队伍（仅队伍所有者）
// DELETE /api/teams/:id
func (h *TeamHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.teamSvc.Delete(c.Request.Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			response.NotFound(c, 13008, "队伍不存在")
		case errors.Is(err, service.ErrNotTeamOwner):
			response.Forbidden(c, 13009, "只能解散自己的队伍")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// Leaderboard 全局排行榜
// GET /api/leaderboard
func (h *TeamHandler) Leaderboard(c *gin.Context) {
	result, err := h.teamSvc.GlobalLeaderboard(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
