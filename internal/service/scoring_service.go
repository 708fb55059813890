package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fantaprof/backend/internal/dto"
	"fantaprof/backend/internal/model"
	"fantaprof/backend/internal/repository"
)

var ErrUnknownEvent = errors.New("未知的计分事件")

// ApplyEventResult 计分结果
type ApplyEventResult struct {
	Professor dto.ProfessorResponse    `json:"professor"`
	Event     dto.ScoringEventResponse `json:"event"`
}

// ScoringService 计分业务接口（管理员侧）
type ScoringService interface {
	// Events 计分事件目录，加分降序、扣分升序
	Events(ctx context.Context) (bonus, malus []dto.ScoringEventResponse)
	// ApplyEvent 对教授应用一次计分事件：事务内改分并审计，
	// 随后通知所有选用该教授的队伍拥有者（队长 2 倍）并全局广播。
	ApplyEvent(ctx context.Context, adminID, professorID uint, eventCode string) (*ApplyEventResult, error)
}

type scoringService struct {
	repo         *repository.Repository
	pub          Publisher
	achievements AchievementService
	logger       *zap.Logger
}

// NewScoringService 创建 ScoringService 实例
func NewScoringService(
	repo *repository.Repository,
	pub Publisher,
	achievements AchievementService,
	logger *zap.Logger,
) ScoringService {
	return &scoringService{
		repo:         repo,
		pub:          pub,
		achievements: achievements,
		logger:       logger,
	}
}

func (s *scoringService) Events(_ context.Context) (bonus, malus []dto.ScoringEventResponse) {
	for _, ev := range BonusEvents() {
		bonus = append(bonus, toScoringEventResponse(ev))
	}
	for _, ev := range MalusEvents() {
		malus = append(malus, toScoringEventResponse(ev))
	}
	return bonus, malus
}

func (s *scoringService) ApplyEvent(ctx context.Context, adminID, professorID uint, eventCode string) (*ApplyEventResult, error) {
	event, ok := LookupScoringEvent(eventCode)
	if !ok {
		return nil, ErrUnknownEvent
	}

	// 1. 事务内累加分数并写审计行
	prof, err := s.repo.Professor.ApplyScoreEvent(ctx, professorID, event.Name, event.Points, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfessorNotFound
		}
		s.logger.Error("计分失败",
			zap.Uint("professor_id", professorID),
			zap.String("event", eventCode),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("计分事件已应用",
		zap.Uint("admin_id", adminID),
		zap.Uint("professor_id", professorID),
		zap.String("event", eventCode),
		zap.Int("points", event.Points),
		zap.Int("new_score", prof.Score))

	// 2. 通知每个选用该教授的队伍拥有者
	owners, err := s.repo.Team.ListOwnersByProfessor(ctx, professorID)
	if err != nil {
		// 分数已落库，通知失败只记日志
		s.logger.Error("枚举受影响队伍失败", zap.Uint("professor_id", professorID), zap.Error(err))
		owners = nil
	}
	for _, owner := range owners {
		s.notifyOwner(ctx, prof, event, owner)
		s.achievements.Evaluate(ctx, owner.UserID)
	}

	// 3. 全局广播新分数
	s.pub.Broadcast("professor-score-changed", map[string]interface{}{
		"professor_id": prof.ID,
		"name":         prof.Name,
		"new_score":    prof.Score,
		"event":        event.Name,
		"points":       event.Points,
	})

	return &ApplyEventResult{
		Professor: toProfessorResponse(prof),
		Event:     toScoringEventResponse(event),
	}, nil
}

func (s *scoringService) notifyOwner(ctx context.Context, prof *model.Professor, event ScoringEvent, owner repository.TeamOwnership) {
	points := event.Points
	if owner.IsCaptain {
		points *= 2
	}

	title := "📈 Punti Guadagnati!"
	if event.Points < 0 {
		title = "📉 Punti Persi!"
	}
	suffix := ""
	if owner.IsCaptain {
		suffix = " x2 capitano!"
	}
	message := fmt.Sprintf("%s ha fatto %q (%+d punti%s)", prof.Name, event.Name, points, suffix)

	n := &model.Notification{
		UserID:  owner.UserID,
		Type:    model.NotificationTypeScore,
		Title:   title,
		Message: message,
		Data: model.JSONMap{
			"professor_id": prof.ID,
			"event_code":   event.Code,
			"points":       points,
		},
	}
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.logger.Error("写入计分通知失败", zap.Uint("user_id", owner.UserID), zap.Error(err))
	}

	s.pub.PublishToUser(owner.UserID, "score-update", map[string]interface{}{
		"professor_id": prof.ID,
		"name":         prof.Name,
		"event":        event.Name,
		"points":       points,
		"is_captain":   owner.IsCaptain,
	})
}

func toScoringEventResponse(ev ScoringEvent) dto.ScoringEventResponse {
	return dto.ScoringEventResponse{
		Code:   ev.Code,
		Name:   ev.Name,
		Points: ev.Points,
		Emoji:  ev.Emoji,
	}
}
