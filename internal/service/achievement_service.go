package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"fantaprof/backend/config"
	"fantaprof/backend/internal/dto"
	"fantaprof/backend/internal/model"
	"fantaprof/backend/internal/repository"
)

// AchievementService 成就业务接口
type AchievementService interface {
	ListAll(ctx context.Context, userID uint) ([]dto.AchievementResponse, error)
	My(ctx context.Context, userID uint) (*dto.MyAchievementsResponse, error)
	// Evaluate 重新评估用户的全部成就条件，解锁新达成的成就。
	// 幂等：重复调用不产生重复通知或推送。评估失败只记日志，
	// 不向调用方冒泡，成就永远不能阻断触发它的主操作。
	Evaluate(ctx context.Context, userID uint)
}

type achievementService struct {
	cfg    *config.Config
	repo   *repository.Repository
	pub    Publisher
	logger *zap.Logger
}

// NewAchievementService 创建 AchievementService 实例
func NewAchievementService(
	cfg *config.Config,
	repo *repository.Repository,
	pub Publisher,
	logger *zap.Logger,
) AchievementService {
	return &achievementService{
		cfg:    cfg,
		repo:   repo,
		pub:    pub,
		logger: logger,
	}
}

func (s *achievementService) ListAll(ctx context.Context, userID uint) ([]dto.AchievementResponse, error) {
	achievements, err := s.repo.Achievement.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	unlocked, err := s.repo.Achievement.ListUnlockedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	unlockedByID := make(map[uint]*model.UserAchievement, len(unlocked))
	for i := range unlocked {
		unlockedByID[unlocked[i].AchievementID] = &unlocked[i]
	}

	result := make([]dto.AchievementResponse, 0, len(achievements))
	for _, a := range achievements {
		resp := dto.AchievementResponse{
			ID:          a.ID,
			Code:        a.Code,
			Name:        a.Name,
			Description: a.Description,
			Icon:        a.Icon,
			Points:      a.Points,
		}
		if ua, ok := unlockedByID[a.ID]; ok {
			resp.Unlocked = true
			t := ua.UnlockedAt
			resp.UnlockedAt = &t
		}
		result = append(result, resp)
	}
	return result, nil
}

func (s *achievementService) My(ctx context.Context, userID uint) (*dto.MyAchievementsResponse, error) {
	achievements, err := s.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalPoints := 0
	unlockedCount := 0
	for _, a := range achievements {
		if a.Unlocked {
			totalPoints += a.Points
			unlockedCount++
		}
	}

	return &dto.MyAchievementsResponse{
		Achievements: achievements,
		TotalPoints:  totalPoints,
		Unlocked:     unlockedCount,
		Total:        len(achievements),
	}, nil
}

// userStats 评估用快照。一次性采集，保证同一轮评估内各条件看到一致的数据。
type userStats struct {
	teamsCreated         int64
	leaguesJoined        int64
	leaguesCreated       int64
	achievementsUnlocked int64
	totalScore           int
}

func (s *achievementService) Evaluate(ctx context.Context, userID uint) {
	stats, err := s.collectStats(ctx, userID)
	if err != nil {
		s.logger.Error("采集成就统计失败", zap.Uint("user_id", userID), zap.Error(err))
		return
	}

	achievements, err := s.repo.Achievement.ListAll(ctx)
	if err != nil {
		s.logger.Error("读取成就目录失败", zap.Error(err))
		return
	}

	unlocked, err := s.repo.Achievement.ListUnlockedByUser(ctx, userID)
	if err != nil {
		s.logger.Error("读取已解锁成就失败", zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	alreadyUnlocked := make(map[uint]struct{}, len(unlocked))
	for _, ua := range unlocked {
		alreadyUnlocked[ua.AchievementID] = struct{}{}
	}

	for _, a := range achievements {
		if _, ok := alreadyUnlocked[a.ID]; ok {
			continue
		}
		if !conditionMet(&a, userID, stats) {
			continue
		}
		s.unlock(ctx, userID, &a)
	}
}

func (s *achievementService) collectStats(ctx context.Context, userID uint) (*userStats, error) {
	teams, err := s.repo.Team.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	joined, err := s.repo.League.CountJoinedBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.League.CountCreatedBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlocked, err := s.repo.Achievement.CountUnlockedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	score, err := s.repo.Team.UserTotalScore(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &userStats{
		teamsCreated:         teams,
		leaguesJoined:        joined,
		leaguesCreated:       created,
		achievementsUnlocked: unlocked,
		totalScore:           score,
	}, nil
}

// conditionMet 封闭枚举上的条件判定。未支持的条件类型恒为 false，对应成就保持锁定。
func conditionMet(a *model.Achievement, userID uint, stats *userStats) bool {
	switch a.ConditionType {
	case model.CondTeamsCreated:
		return stats.teamsCreated >= int64(a.ConditionValue)
	case model.CondLeaguesJoined:
		return stats.leaguesJoined >= int64(a.ConditionValue)
	case model.CondLeaguesCreated:
		return stats.leaguesCreated >= int64(a.ConditionValue)
	case model.CondTotalScore:
		return stats.totalScore >= a.ConditionValue
	case model.CondAchievementsUnlocked:
		return stats.achievementsUnlocked >= int64(a.ConditionValue)
	case model.CondUserID:
		return userID <= uint(a.ConditionValue)
	default:
		return false
	}
}

// unlock 解锁单个成就。只有真正插入成功的那次才落通知与推送。
func (s *achievementService) unlock(ctx context.Context, userID uint, a *model.Achievement) {
	inserted, err := s.repo.Achievement.Unlock(ctx, userID, a.ID)
	if err != nil {
		s.logger.Error("解锁成就失败",
			zap.Uint("user_id", userID),
			zap.String("code", a.Code),
			zap.Error(err))
		return
	}
	if !inserted {
		return
	}

	n := &model.Notification{
		UserID:  userID,
		Type:    model.NotificationTypeAchievement,
		Title:   "Achievement Sbloccato!",
		Message: fmt.Sprintf("Hai sbloccato %q!", a.Name),
		Data:    model.JSONMap{"achievement_code": a.Code},
	}
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.logger.Error("写入成就通知失败", zap.Uint("user_id", userID), zap.Error(err))
	}

	s.pub.PublishToUser(userID, "achievement", map[string]interface{}{
		"code":   a.Code,
		"name":   a.Name,
		"icon":   a.Icon,
		"points": a.Points,
	})

	s.logger.Info("成就已解锁",
		zap.Uint("user_id", userID),
		zap.String("code", a.Code))
}
