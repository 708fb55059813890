package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fantaprof/backend/internal/model"
)

// AchievementRepository 成就数据访问接口
type AchievementRepository interface {
	ListAll(ctx context.Context) ([]model.Achievement, error)
	GetByCode(ctx context.Context, code string) (*model.Achievement, error)
	ListUnlockedByUser(ctx context.Context, userID uint) ([]model.UserAchievement, error)
	CountUnlockedByUser(ctx context.Context, userID uint) (int64, error)
	// Unlock 幂等解锁：已解锁时返回 inserted=false 且不报错。
	// 依赖 (user_id, achievement_id) 唯一约束消解并发评估的竞态。
	Unlock(ctx context.Context, userID, achievementID uint) (inserted bool, err error)
}

// achievementRepo AchievementRepository 的 GORM 实现
type achievementRepo struct {
	db *gorm.DB
}

// NewAchievementRepo 创建 AchievementRepository 实例
func NewAchievementRepo(db *gorm.DB) AchievementRepository {
	return &achievementRepo{db: db}
}

func (r *achievementRepo) ListAll(ctx context.Context) ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.db.WithContext(ctx).
		Order("points ASC").
		Find(&achievements).Error
	return achievements, err
}

func (r *achievementRepo) GetByCode(ctx context.Context, code string) (*model.Achievement, error) {
	var achievement model.Achievement
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&achievement).Error
	if err != nil {
		return nil, err
	}
	return &achievement, nil
}

func (r *achievementRepo) ListUnlockedByUser(ctx context.Context, userID uint) ([]model.UserAchievement, error) {
	var unlocked []model.UserAchievement
	err := r.db.WithContext(ctx).
		Preload("Achievement").
		Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Find(&unlocked).Error
	return unlocked, err
}

func (r *achievementRepo) CountUnlockedByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserAchievement{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *achievementRepo) Unlock(ctx context.Context, userID, achievementID uint) (bool, error) {
	ua := &model.UserAchievement{UserID: userID, AchievementID: achievementID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(ua)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
