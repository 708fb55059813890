package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fantaprof/backend/config"
	"fantaprof/backend/internal/dto"
	"fantaprof/backend/internal/model"
	"fantaprof/backend/internal/repository"
	pkgerrors "fantaprof/backend/pkg/errors"
)

var (
	ErrTeamNotFound       = errors.New("队伍不存在")
	ErrNotTeamOwner       = errors.New("只有队伍拥有者可以操作")
	ErrRosterSize         = errors.New("阵容人数不符合要求")
	ErrRosterDuplicate    = errors.New("阵容中存在重复教授")
	ErrCaptainNotInRoster = errors.New("队长必须在阵容之中")
	ErrOverBudget         = errors.New("阵容总花费超出预算")
	ErrNotLeagueMember    = errors.New("必须先加入联赛才能在其中组队")
	ErrTeamInLeagueExists = errors.New("该联赛中已有你的队伍")
)

// TeamService 队伍业务接口
type TeamService interface {
	Create(ctx context.Context, userID uint, req *dto.CreateTeamRequest) (*dto.TeamResponse, error)
	My(ctx context.Context, userID uint) ([]dto.TeamResponse, error)
	Get(ctx context.Context, id uint) (*dto.TeamResponse, error)
	Delete(ctx context.Context, userID, teamID uint) error
	GlobalLeaderboard(ctx context.Context) ([]dto.LeaderboardEntryResponse, error)
}

type teamService struct {
	cfg          *config.Config
	repo         *repository.Repository
	pub          Publisher
	achievements AchievementService
	logger       *zap.Logger
}

// NewTeamService 创建 TeamService 实例
func NewTeamService(
	cfg *config.Config,
	repo *repository.Repository,
	pub Publisher,
	achievements AchievementService,
	logger *zap.Logger,
) TeamService {
	return &teamService{
		cfg:          cfg,
		repo:         repo,
		pub:          pub,
		achievements: achievements,
		logger:       logger,
	}
}

func (s *teamService) Create(ctx context.Context, userID uint, req *dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	game := s.cfg.Game

	// 1. 阵容人数与去重
	if len(req.ProfessorIDs) != game.TeamSize {
		return nil, fmt.Errorf("%w: 需要 %d 名教授", ErrRosterSize, game.TeamSize)
	}
	seen := make(map[uint]struct{}, len(req.ProfessorIDs))
	for _, id := range req.ProfessorIDs {
		if _, dup := seen[id]; dup {
			return nil, ErrRosterDuplicate
		}
		seen[id] = struct{}{}
	}
	if _, ok := seen[req.CaptainID]; !ok {
		return nil, ErrCaptainNotInRoster
	}

	// 2. 教授存在性与预算
	profs, err := s.repo.Professor.GetByIDs(ctx, req.ProfessorIDs)
	if err != nil {
		return nil, err
	}
	if len(profs) != game.TeamSize {
		return nil, ErrProfessorNotFound
	}
	totalCost := 0
	for _, p := range profs {
		totalCost += p.Cost
	}
	if totalCost > game.Budget {
		return nil, fmt.Errorf("%w: %d/%d 学分", ErrOverBudget, totalCost, game.Budget)
	}

	// 3. 联赛约束：必须是成员且未在该联赛组过队
	if req.LeagueID != nil {
		isMember, err := s.repo.League.IsMember(ctx, *req.LeagueID, userID)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, ErrNotLeagueMember
		}
		hasTeam, err := s.repo.Team.HasTeamInLeague(ctx, userID, *req.LeagueID)
		if err != nil {
			return nil, err
		}
		if hasTeam {
			return nil, ErrTeamInLeagueExists
		}
	}

	// 4. 事务落库，唯一索引兜底并发重复组队
	team := &model.Team{
		Name:     req.Name,
		UserID:   userID,
		LeagueID: req.LeagueID,
	}
	roster := make([]model.TeamProfessor, 0, len(profs))
	for _, p := range profs {
		roster = append(roster, model.TeamProfessor{
			ProfessorID: p.ID,
			IsCaptain:   p.ID == req.CaptainID,
		})
	}
	if err := s.repo.Team.CreateWithRoster(ctx, team, roster); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrTeamInLeagueExists
		}
		s.logger.Error("创建队伍失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("队伍已创建",
		zap.Uint("team_id", team.ID),
		zap.Uint("user_id", userID),
		zap.Int("total_cost", totalCost))

	// 5. 成就评估与联赛内广播
	s.achievements.Evaluate(ctx, userID)
	if req.LeagueID != nil {
		s.pub.PublishToLeague(*req.LeagueID, "team-created", map[string]interface{}{
			"team_id":   team.ID,
			"team_name": team.Name,
			"user_id":   userID,
		})
	}

	return s.Get(ctx, team.ID)
}

func (s *teamService) My(ctx context.Context, userID uint) ([]dto.TeamResponse, error) {
	teams, err := s.repo.Team.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.TeamResponse, 0, len(teams))
	for i := range teams {
		resp, err := s.toTeamResponse(ctx, &teams[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *resp)
	}
	return result, nil
}

func (s *teamService) Get(ctx context.Context, id uint) (*dto.TeamResponse, error) {
	team, err := s.repo.Team.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return s.toTeamResponse(ctx, team)
}

func (s *teamService) Delete(ctx context.Context, userID, teamID uint) error {
	team, err := s.repo.Team.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return err
	}
	if team.UserID != userID {
		return ErrNotTeamOwner
	}

	if err := s.repo.Team.Delete(ctx, teamID); err != nil {
		s.logger.Error("删除队伍失败", zap.Uint("team_id", teamID), zap.Error(err))
		return err
	}
	s.logger.Info("队伍已删除", zap.Uint("team_id", teamID), zap.Uint("user_id", userID))
	return nil
}

func (s *teamService) GlobalLeaderboard(ctx context.Context) ([]dto.LeaderboardEntryResponse, error) {
	entries, err := s.repo.Team.GlobalLeaderboard(ctx, 100)
	if err != nil {
		return nil, err
	}
	return toLeaderboardResponses(entries), nil
}

func (s *teamService) toTeamResponse(ctx context.Context, team *model.Team) (*dto.TeamResponse, error) {
	totalScore, err := s.repo.Team.TotalScore(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	resp := &dto.TeamResponse{
		ID:         team.ID,
		Name:       team.Name,
		UserID:     team.UserID,
		LeagueID:   team.LeagueID,
		TotalScore: totalScore,
		CreatedAt:  team.CreatedAt,
		Professors: make([]dto.TeamProfessorResponse, 0, len(team.Professors)),
	}
	if team.Owner != nil {
		resp.OwnerName = team.Owner.Username
	}
	if team.League != nil {
		resp.LeagueName = team.League.Name
	}
	for _, tp := range team.Professors {
		if tp.Professor == nil {
			continue
		}
		resp.TotalCost += tp.Professor.Cost
		resp.Professors = append(resp.Professors, dto.TeamProfessorResponse{
			ProfessorResponse: toProfessorResponse(tp.Professor),
			IsCaptain:         tp.IsCaptain,
		})
	}
	return resp, nil
}

func toLeaderboardResponses(entries []repository.LeaderboardEntry) []dto.LeaderboardEntryResponse {
	result := make([]dto.LeaderboardEntryResponse, 0, len(entries))
	for i, e := range entries {
		item := dto.LeaderboardEntryResponse{
			Rank:       i + 1,
			TeamID:     e.TeamID,
			TeamName:   e.TeamName,
			UserID:     e.UserID,
			Username:   e.Username,
			Avatar:     e.Avatar,
			TotalScore: e.TotalScore,
		}
		if e.LeagueName != nil {
			item.LeagueName = *e.LeagueName
		}
		result = append(result, item)
	}
	return result
}
