package handler

import (
	"go.uber.org/zap"

	"fantaprof/backend/internal/service"
	"fantaprof/backend/pkg/jwt"
	"fantaprof/backend/pkg/realtime"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	Professor    *ProfessorHandler
	Team         *TeamHandler
	League       *LeagueHandler
	Achievement  *AchievementHandler
	Notification *NotificationHandler
	Admin        *AdminHandler
	WS           *WSHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, jwtMgr *jwt.Manager, hub *realtime.Hub, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Professor:    NewProfessorHandler(svc.Professor),
		Team:         NewTeamHandler(svc.Team),
		League:       NewLeagueHandler(svc.League),
		Achievement:  NewAchievementHandler(svc.Achievement),
		Notification: NewNotificationHandler(svc.Notification),
		Admin:        NewAdminHandler(svc.User, svc.Professor, svc.Scoring, svc.Export),
		WS:           NewWSHandler(jwtMgr, hub, logger),
	}
}
