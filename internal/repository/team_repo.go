package repository

import (
	"context"

	"gorm.io/gorm"

	"fantaprof/backend/internal/model"
)

// totalScoreExpr 队伍总分聚合：队长得分 2 倍计入
// 总分永远实时推导，不落盘（见数据模型不变量）
const totalScoreExpr = `(
	SELECT COALESCE(SUM(
		CASE WHEN tp.is_captain = 1 THEN p.score * 2 ELSE p.score END
	), 0)
	FROM team_professors tp
	JOIN professors p ON tp.professor_id = p.id
	WHERE tp.team_id = teams.id
)`

// TeamOwnership 某教授所属队伍的归属信息（计分 fan-out 用）
type TeamOwnership struct {
	TeamID    uint   `json:"team_id"`
	TeamName  string `json:"team_name"`
	UserID    uint   `json:"user_id"`
	LeagueID  *uint  `json:"league_id,omitempty"`
	IsCaptain bool   `json:"is_captain"`
}

// LeaderboardEntry 排行榜单行
type LeaderboardEntry struct {
	TeamID     uint    `json:"team_id"`
	TeamName   string  `json:"team_name"`
	UserID     uint    `json:"user_id"`
	Username   string  `json:"username"`
	Avatar     string  `json:"avatar"`
	LeagueName *string `json:"league_name,omitempty"`
	TotalScore int     `json:"total_score"`
}

// TeamRepository 队伍数据访问接口
type TeamRepository interface {
	// CreateWithRoster 在同一事务内创建队伍及其阵容
	CreateWithRoster(ctx context.Context, team *model.Team, roster []model.TeamProfessor) error
	GetByID(ctx context.Context, id uint) (*model.Team, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Team, error)
	Delete(ctx context.Context, id uint) error
	CountByUser(ctx context.Context, userID uint) (int64, error)
	HasTeamInLeague(ctx context.Context, userID, leagueID uint) (bool, error)
	// ListOwnersByProfessor 枚举包含该教授的全部队伍及其归属
	ListOwnersByProfessor(ctx context.Context, profID uint) ([]TeamOwnership, error)
	// TotalScore 单支队伍的实时总分
	TotalScore(ctx context.Context, teamID uint) (int, error)
	// UserTotalScore 用户全部队伍的聚合总分（成就评估用）
	UserTotalScore(ctx context.Context, userID uint) (int, error)
	GlobalLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	LeagueLeaderboard(ctx context.Context, leagueID uint) ([]LeaderboardEntry, error)
	// ClearLeagueForUser 将用户在某联赛的队伍改为无联赛（退赛时调用）
	ClearLeagueForUser(ctx context.Context, leagueID, userID uint) error
}

// teamRepo TeamRepository 的 GORM 实现
type teamRepo struct {
	db *gorm.DB
}

// NewTeamRepo 创建 TeamRepository 实例
func NewTeamRepo(db *gorm.DB) TeamRepository {
	return &teamRepo{db: db}
}

func (r *teamRepo) CreateWithRoster(ctx context.Context, team *model.Team, roster []model.TeamProfessor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}
		for i := range roster {
			roster[i].TeamID = team.ID
		}
		return tx.Create(&roster).Error
	})
}

func (r *teamRepo) GetByID(ctx context.Context, id uint) (*model.Team, error) {
	var team model.Team
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("League").
		Preload("Professors.Professor").
		Where("id = ?", id).
		First(&team).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepo) ListByUser(ctx context.Context, userID uint) ([]model.Team, error) {
	var teams []model.Team
	err := r.db.WithContext(ctx).
		Preload("League").
		Preload("Professors.Professor").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&teams).Error
	return teams, err
}

func (r *teamRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 阵容行级联删除；SQLite 外键已配置，这里显式删除保证与任何连接参数无关
		if err := tx.Where("team_id = ?", id).Delete(&model.TeamProfessor{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Team{}, id).Error
	})
}

func (r *teamRepo) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Team{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *teamRepo) HasTeamInLeague(ctx context.Context, userID, leagueID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Team{}).
		Where("user_id = ? AND league_id = ?", userID, leagueID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *teamRepo) ListOwnersByProfessor(ctx context.Context, profID uint) ([]TeamOwnership, error) {
	var owners []TeamOwnership
	err := r.db.WithContext(ctx).
		Table("team_professors tp").
		Select("t.id AS team_id, t.name AS team_name, t.user_id, t.league_id, tp.is_captain").
		Joins("JOIN teams t ON tp.team_id = t.id").
		Where("tp.professor_id = ?", profID).
		Scan(&owners).Error
	return owners, err
}

func (r *teamRepo) TotalScore(ctx context.Context, teamID uint) (int, error) {
	var total int
	err := r.db.WithContext(ctx).
		Table("team_professors tp").
		Select("COALESCE(SUM(CASE WHEN tp.is_captain = 1 THEN p.score * 2 ELSE p.score END), 0)").
		Joins("JOIN professors p ON tp.professor_id = p.id").
		Where("tp.team_id = ?", teamID).
		Scan(&total).Error
	return total, err
}

func (r *teamRepo) UserTotalScore(ctx context.Context, userID uint) (int, error) {
	var total int
	err := r.db.WithContext(ctx).
		Table("teams t").
		Select("COALESCE(SUM(CASE WHEN tp.is_captain = 1 THEN p.score * 2 ELSE p.score END), 0)").
		Joins("JOIN team_professors tp ON t.id = tp.team_id").
		Joins("JOIN professors p ON tp.professor_id = p.id").
		Where("t.user_id = ?", userID).
		Scan(&total).Error
	return total, err
}

func (r *teamRepo) GlobalLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	q := r.db.WithContext(ctx).
		Table("teams").
		Select("teams.id AS team_id, teams.name AS team_name, u.id AS user_id, u.username, u.avatar, l.name AS league_name, "+totalScoreExpr+" AS total_score").
		Joins("JOIN users u ON teams.user_id = u.id").
		Joins("LEFT JOIN leagues l ON teams.league_id = l.id").
		Order("total_score DESC")
	// limit<=0 表示不设上限（导出用）
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Scan(&entries).Error
	return entries, err
}

func (r *teamRepo) LeagueLeaderboard(ctx context.Context, leagueID uint) ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	err := r.db.WithContext(ctx).
		Table("teams").
		Select("teams.id AS team_id, teams.name AS team_name, u.id AS user_id, u.username, u.avatar, "+totalScoreExpr+" AS total_score").
		Joins("JOIN users u ON teams.user_id = u.id").
		Where("teams.league_id = ?", leagueID).
		Order("total_score DESC").
		Scan(&entries).Error
	return entries, err
}

func (r *teamRepo) ClearLeagueForUser(ctx context.Context, leagueID, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&model.Team{}).
		Where("league_id = ? AND user_id = ?", leagueID, userID).
		Update("league_id", nil).Error
}
