package repository

import (
	"context"

	"gorm.io/gorm"

	"fantaprof/backend/internal/model"
)

// ScoreEventRepository 计分审计日志访问接口（只读；写入走 ProfessorRepository.ApplyScoreEvent）
type ScoreEventRepository interface {
	ListByProfessor(ctx context.Context, profID uint, limit int) ([]model.ScoreEvent, error)
}

// scoreEventRepo ScoreEventRepository 的 GORM 实现
type scoreEventRepo struct {
	db *gorm.DB
}

// NewScoreEventRepo 创建 ScoreEventRepository 实例
func NewScoreEventRepo(db *gorm.DB) ScoreEventRepository {
	return &scoreEventRepo{db: db}
}

func (r *scoreEventRepo) ListByProfessor(ctx context.Context, profID uint, limit int) ([]model.ScoreEvent, error) {
	var events []model.ScoreEvent
	err := r.db.WithContext(ctx).
		Preload("Admin").
		Where("professor_id = ?", profID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}
