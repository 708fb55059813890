package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fantaprof/backend/config"
	"fantaprof/backend/internal/dto"
	"fantaprof/backend/internal/model"
	"fantaprof/backend/internal/repository"
	pkgerrors "fantaprof/backend/pkg/errors"
)

var (
	ErrLeagueNotFound   = errors.New("联赛不存在")
	ErrLeagueFull       = errors.New("联赛人数已满")
	ErrAlreadyMember    = errors.New("已是该联赛成员")
	ErrNotMember        = errors.New("不是该联赛成员")
	ErrCreatorLeave     = errors.New("创建者不能退出联赛，只能解散")
	ErrNotLeagueCreator = errors.New("只有创建者可以解散联赛")
)

// 邀请码生成的碰撞重试上限
const codeGenRetries = 5

// LeagueService 联赛业务接口
type LeagueService interface {
	Create(ctx context.Context, userID uint, req *dto.CreateLeagueRequest) (*dto.LeagueResponse, error)
	Join(ctx context.Context, userID uint, code string) (*dto.LeagueResponse, error)
	Leave(ctx context.Context, userID, leagueID uint) error
	Delete(ctx context.Context, userID, leagueID uint) error
	ListPublic(ctx context.Context, userID uint) ([]dto.LeagueResponse, error)
	My(ctx context.Context, userID uint) ([]dto.LeagueResponse, error)
	Detail(ctx context.Context, userID, leagueID uint) (*dto.LeagueDetailResponse, error)
}

type leagueService struct {
	cfg          *config.Config
	repo         *repository.Repository
	pub          Publisher
	achievements AchievementService
	logger       *zap.Logger
}

// NewLeagueService 创建 LeagueService 实例
func NewLeagueService(
	cfg *config.Config,
	repo *repository.Repository,
	pub Publisher,
	achievements AchievementService,
	logger *zap.Logger,
) LeagueService {
	return &leagueService{
		cfg:          cfg,
		repo:         repo,
		pub:          pub,
		achievements: achievements,
		logger:       logger,
	}
}

// generateCode 从 UUID 截取大写邀请码
func (s *leagueService) generateCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	n := s.cfg.Game.LeagueCodeLength
	if n <= 0 || n > len(raw) {
		n = 8
	}
	return strings.ToUpper(raw[:n])
}

func (s *leagueService) Create(ctx context.Context, userID uint, req *dto.CreateLeagueRequest) (*dto.LeagueResponse, error) {
	maxMembers := req.MaxMembers
	if maxMembers <= 0 {
		maxMembers = s.cfg.Game.MaxLeagueMembers
	}

	league := &model.League{
		Name:        req.Name,
		Description: req.Description,
		CreatorID:   userID,
		IsPublic:    req.IsPublic,
		MaxMembers:  maxMembers,
	}

	// 邀请码唯一索引兜底，碰撞时换码重试
	var err error
	for i := 0; i < codeGenRetries; i++ {
		league.Code = s.generateCode()
		err = s.repo.League.CreateWithCreator(ctx, league)
		if err == nil || !errors.Is(err, pkgerrors.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		s.logger.Error("创建联赛失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("联赛已创建",
		zap.Uint("league_id", league.ID),
		zap.Uint("creator_id", userID),
		zap.String("code", league.Code))

	s.achievements.Evaluate(ctx, userID)

	resp := s.toLeagueResponse(league, 1, true, nil)
	return &resp, nil
}

func (s *leagueService) Join(ctx context.Context, userID uint, code string) (*dto.LeagueResponse, error) {
	league, err := s.repo.League.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeagueNotFound
		}
		return nil, err
	}

	memberCount, err := s.repo.League.MemberCount(ctx, league.ID)
	if err != nil {
		return nil, err
	}
	if memberCount >= int64(league.MaxMembers) {
		return nil, ErrLeagueFull
	}

	if err := s.repo.League.AddMember(ctx, league.ID, userID); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicate) {
			return nil, ErrAlreadyMember
		}
		s.logger.Error("加入联赛失败", zap.Uint("league_id", league.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("成员加入联赛", zap.Uint("league_id", league.ID), zap.Uint("user_id", userID))

	user, err := s.repo.User.GetByID(ctx, userID)
	if err == nil {
		s.pub.PublishToLeague(league.ID, "member-joined", map[string]interface{}{
			"league_id": league.ID,
			"user_id":   userID,
			"username":  user.Username,
		})
	}

	s.achievements.Evaluate(ctx, userID)

	resp := s.toLeagueResponse(league, memberCount+1, true, nil)
	return &resp, nil
}

func (s *leagueService) Leave(ctx context.Context, userID, leagueID uint) error {
	league, err := s.repo.League.GetByID(ctx, leagueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLeagueNotFound
		}
		return err
	}
	if league.CreatorID == userID {
		return ErrCreatorLeave
	}

	isMember, err := s.repo.League.IsMember(ctx, leagueID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return ErrNotMember
	}

	if err := s.repo.League.RemoveMember(ctx, leagueID, userID); err != nil {
		return err
	}
	// 该用户在此联赛的队伍转为无联赛队伍
	if err := s.repo.Team.ClearLeagueForUser(ctx, leagueID, userID); err != nil {
		s.logger.Error("清理退赛队伍失败", zap.Uint("league_id", leagueID), zap.Error(err))
		return err
	}

	s.logger.Info("成员退出联赛", zap.Uint("league_id", leagueID), zap.Uint("user_id", userID))
	return nil
}

func (s *leagueService) Delete(ctx context.Context, userID, leagueID uint) error {
	league, err := s.repo.League.GetByID(ctx, leagueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLeagueNotFound
		}
		return err
	}
	if league.CreatorID != userID {
		return ErrNotLeagueCreator
	}

	if err := s.repo.League.Delete(ctx, leagueID); err != nil {
		s.logger.Error("解散联赛失败", zap.Uint("league_id", leagueID), zap.Error(err))
		return err
	}

	s.logger.Info("联赛已解散", zap.Uint("league_id", leagueID), zap.Uint("creator_id", userID))
	return nil
}

func (s *leagueService) ListPublic(ctx context.Context, userID uint) ([]dto.LeagueResponse, error) {
	summaries, err := s.repo.League.ListPublic(ctx)
	if err != nil {
		return nil, err
	}
	return s.toSummaryResponses(ctx, userID, summaries, false)
}

func (s *leagueService) My(ctx context.Context, userID uint) ([]dto.LeagueResponse, error) {
	summaries, err := s.repo.League.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toSummaryResponses(ctx, userID, summaries, true)
}

func (s *leagueService) Detail(ctx context.Context, userID, leagueID uint) (*dto.LeagueDetailResponse, error) {
	league, err := s.repo.League.GetByID(ctx, leagueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeagueNotFound
		}
		return nil, err
	}

	isMember, err := s.repo.League.IsMember(ctx, leagueID, userID)
	if err != nil {
		return nil, err
	}
	// 非公开联赛仅成员可见
	if !league.IsPublic && !isMember {
		return nil, ErrLeagueNotFound
	}

	memberCount, err := s.repo.League.MemberCount(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.Team.LeagueLeaderboard(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	return &dto.LeagueDetailResponse{
		LeagueResponse: s.toLeagueResponse(league, memberCount, isMember, nil),
		Leaderboard:    toLeaderboardResponses(entries),
	}, nil
}

func (s *leagueService) toSummaryResponses(ctx context.Context, userID uint, summaries []repository.LeagueSummary, allMember bool) ([]dto.LeagueResponse, error) {
	result := make([]dto.LeagueResponse, 0, len(summaries))
	for i := range summaries {
		sum := &summaries[i]
		isMember := allMember
		if !allMember {
			var err error
			isMember, err = s.repo.League.IsMember(ctx, sum.League.ID, userID)
			if err != nil {
				return nil, err
			}
		}
		resp := s.toLeagueResponse(&sum.League, int64(sum.MemberCount), isMember, sum.JoinedAt)
		if sum.CreatorName != "" {
			resp.CreatorName = sum.CreatorName
		}
		result = append(result, resp)
	}
	return result, nil
}

func (s *leagueService) toLeagueResponse(league *model.League, memberCount int64, isMember bool, joinedAt *time.Time) dto.LeagueResponse {
	resp := dto.LeagueResponse{
		ID:          league.ID,
		Name:        league.Name,
		Description: league.Description,
		CreatorID:   league.CreatorID,
		IsPublic:    league.IsPublic,
		MaxMembers:  league.MaxMembers,
		MemberCount: memberCount,
		IsMember:    isMember,
		JoinedAt:    joinedAt,
		CreatedAt:   league.CreatedAt,
	}
	// 邀请码只下发给成员
	if isMember {
		resp.Code = league.Code
	}
	if league.Creator != nil {
		resp.CreatorName = league.Creator.Username
	}
	return resp
}
