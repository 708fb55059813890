package repository

import (
	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User         UserRepository
	Professor    ProfessorRepository
	ScoreEvent   ScoreEventRepository
	Team         TeamRepository
	League       LeagueRepository
	Achievement  AchievementRepository
	Notification NotificationRepository
}

// NewRepository 创建 Repository 聚合实例
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		Professor:    NewProfessorRepo(db),
		ScoreEvent:   NewScoreEventRepo(db),
		Team:         NewTeamRepo(db),
		League:       NewLeagueRepo(db),
		Achievement:  NewAchievementRepo(db),
		Notification: NewNotificationRepo(db),
	}
}
