package service

import (
	"go.uber.org/zap"

	"fantaprof/backend/config"
	"fantaprof/backend/internal/repository"
	"fantaprof/backend/pkg/jwt"
	"fantaprof/backend/pkg/redis"
)

// Publisher 实时推送出口，由 realtime.Hub 实现。
// 推送失败只影响在线提醒，不影响落库，所以方法不返回错误。
type Publisher interface {
	PublishToUser(userID uint, event string, data interface{})
	PublishToLeague(leagueID uint, event string, data interface{})
	Broadcast(event string, data interface{})
}

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	User         UserService
	Professor    ProfessorService
	Scoring      ScoringService
	Team         TeamService
	League       LeagueService
	Achievement  AchievementService
	Notification NotificationService
	Export       ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	pub Publisher,
	logger *zap.Logger,
) *Service {
	achievement := NewAchievementService(cfg, repo, pub, logger)
	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, achievement, logger),
		User:         NewUserService(repo, logger),
		Professor:    NewProfessorService(repo, pub, logger),
		Scoring:      NewScoringService(repo, pub, achievement, logger),
		Team:         NewTeamService(cfg, repo, pub, achievement, logger),
		League:       NewLeagueService(cfg, repo, pub, achievement, logger),
		Achievement:  achievement,
		Notification: NewNotificationService(repo, logger),
		Export:       NewExportService(repo, logger),
	}
}
