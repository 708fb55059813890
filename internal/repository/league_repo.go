package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fantaprof/backend/internal/model"
	pkgerrors "fantaprof/backend/pkg/errors"
)

// LeagueSummary 联赛列表行（带创建者用户名与成员数）
type LeagueSummary struct {
	model.League
	CreatorName string     `json:"creator_name"`
	MemberCount int        `json:"member_count"`
	JoinedAt    *time.Time `json:"joined_at,omitempty"`
}

// LeagueRepository 联赛数据访问接口
type LeagueRepository interface {
	// CreateWithCreator 在同一事务内创建联赛并把创建者加入成员
	CreateWithCreator(ctx context.Context, league *model.League) error
	GetByID(ctx context.Context, id uint) (*model.League, error)
	GetByCode(ctx context.Context, code string) (*model.League, error)
	ListPublic(ctx context.Context) ([]LeagueSummary, error)
	ListByUser(ctx context.Context, userID uint) ([]LeagueSummary, error)
	Delete(ctx context.Context, id uint) error
	IsMember(ctx context.Context, leagueID, userID uint) (bool, error)
	MemberCount(ctx context.Context, leagueID uint) (int64, error)
	AddMember(ctx context.Context, leagueID, userID uint) error
	RemoveMember(ctx context.Context, leagueID, userID uint) error
	CountCreatedBy(ctx context.Context, userID uint) (int64, error)
	CountJoinedBy(ctx context.Context, userID uint) (int64, error)
}

// leagueRepo LeagueRepository 的 GORM 实现
type leagueRepo struct {
	db *gorm.DB
}

// NewLeagueRepo 创建 LeagueRepository 实例
func NewLeagueRepo(db *gorm.DB) LeagueRepository {
	return &leagueRepo{db: db}
}

func (r *leagueRepo) CreateWithCreator(ctx context.Context, league *model.League) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(league).Error; err != nil {
			if pkgerrors.IsUniqueViolation(err) {
				return pkgerrors.ErrDuplicate
			}
			return err
		}
		member := &model.LeagueMember{LeagueID: league.ID, UserID: league.CreatorID}
		return tx.Create(member).Error
	})
}

func (r *leagueRepo) GetByID(ctx context.Context, id uint) (*model.League, error) {
	var league model.League
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Where("id = ?", id).
		First(&league).Error
	if err != nil {
		return nil, err
	}
	return &league, nil
}

func (r *leagueRepo) GetByCode(ctx context.Context, code string) (*model.League, error) {
	var league model.League
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&league).Error
	if err != nil {
		return nil, err
	}
	return &league, nil
}

func (r *leagueRepo) ListPublic(ctx context.Context) ([]LeagueSummary, error) {
	var leagues []LeagueSummary
	err := r.db.WithContext(ctx).
		Table("leagues l").
		Select(`l.*, u.username AS creator_name,
			(SELECT COUNT(*) FROM league_members WHERE league_id = l.id) AS member_count`).
		Joins("JOIN users u ON l.creator_id = u.id").
		Where("l.is_public = ?", true).
		Order("member_count DESC").
		Scan(&leagues).Error
	return leagues, err
}

func (r *leagueRepo) ListByUser(ctx context.Context, userID uint) ([]LeagueSummary, error) {
	var leagues []LeagueSummary
	err := r.db.WithContext(ctx).
		Table("league_members lm").
		Select(`l.*, u.username AS creator_name, lm.joined_at,
			(SELECT COUNT(*) FROM league_members WHERE league_id = l.id) AS member_count`).
		Joins("JOIN leagues l ON lm.league_id = l.id").
		Joins("JOIN users u ON l.creator_id = u.id").
		Where("lm.user_id = ?", userID).
		Order("lm.joined_at DESC").
		Scan(&leagues).Error
	return leagues, err
}

func (r *leagueRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 成员级联删除、队伍的联赛引用置空；显式执行，不依赖连接参数里的外键开关
		if err := tx.Where("league_id = ?", id).Delete(&model.LeagueMember{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Team{}).
			Where("league_id = ?", id).
			Update("league_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.League{}, id).Error
	})
}

func (r *leagueRepo) IsMember(ctx context.Context, leagueID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.LeagueMember{}).
		Where("league_id = ? AND user_id = ?", leagueID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *leagueRepo) MemberCount(ctx context.Context, leagueID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.LeagueMember{}).
		Where("league_id = ?", leagueID).
		Count(&count).Error
	return count, err
}

func (r *leagueRepo) AddMember(ctx context.Context, leagueID, userID uint) error {
	member := &model.LeagueMember{LeagueID: leagueID, UserID: userID}
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return pkgerrors.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *leagueRepo) RemoveMember(ctx context.Context, leagueID, userID uint) error {
	return r.db.WithContext(ctx).
		Where("league_id = ? AND user_id = ?", leagueID, userID).
		Delete(&model.LeagueMember{}).Error
}

func (r *leagueRepo) CountCreatedBy(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.League{}).
		Where("creator_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *leagueRepo) CountJoinedBy(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.LeagueMember{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
