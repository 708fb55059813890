package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fantaprof/backend/internal/dto"
	"fantaprof/backend/internal/model"
	"fantaprof/backend/internal/repository"
	pkgerrors "fantaprof/backend/pkg/errors"
)

var (
	ErrProfessorNotFound = errors.New("教授不存在")
	ErrProfessorExists   = errors.New("同名教授已存在")
	ErrProfessorInTeams  = errors.New("教授已被队伍选用，无法删除")
)

// ProfessorService 教授业务接口
type ProfessorService interface {
	List(ctx context.Context) ([]dto.ProfessorResponse, error)
	Get(ctx context.Context, id uint) (*dto.ProfessorResponse, error)
	History(ctx context.Context, id uint, limit int) ([]dto.ScoreEventResponse, error)
	Create(ctx context.Context, req *dto.CreateProfessorRequest) (*dto.ProfessorResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateProfessorRequest) (*dto.ProfessorResponse, error)
	Delete(ctx context.Context, id uint) error
}

type professorService struct {
	repo   *repository.Repository
	pub    Publisher
	logger *zap.Logger
}

// NewProfessorService 创建 ProfessorService 实例
func NewProfessorService(repo *repository.Repository, pub Publisher, logger *zap.Logger) ProfessorService {
	return &professorService{repo: repo, pub: pub, logger: logger}
}

func (s *professorService) List(ctx context.Context) ([]dto.ProfessorResponse, error) {
	profs, err := s.repo.Professor.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ProfessorResponse, 0, len(profs))
	for i := range profs {
		result = append(result, toProfessorResponse(&profs[i]))
	}
	return result, nil
}

func (s *professorService) Get(ctx context.Context, id uint) (*dto.ProfessorResponse, error) {
	prof, err := s.repo.Professor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfessorNotFound
		}
		return nil, err
	}
	resp := toProfessorResponse(prof)
	return &resp, nil
}

func (s *professorService) History(ctx context.Context, id uint, limit int) ([]dto.ScoreEventResponse, error) {
	if _, err := s.repo.Professor.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfessorNotFound
		}
		return nil, err
	}

	events, err := s.repo.ScoreEvent.ListByProfessor(ctx, id, limit)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ScoreEventResponse, 0, len(events))
	for _, ev := range events {
		item := dto.ScoreEventResponse{
			ID:        ev.ID,
			EventName: ev.EventName,
			Points:    ev.Points,
			CreatedAt: ev.CreatedAt,
		}
		if ev.Admin != nil {
			item.AdminName = ev.Admin.Username
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *professorService) Create(ctx context.Context, req *dto.CreateProfessorRequest) (*dto.ProfessorResponse, error) {
	prof := &model.Professor{
		Name:    req.Name,
		Subject: req.Subject,
		Cost:    req.Cost,
	}
	if req.Avatar != "" {
		prof.Avatar = req.Avatar
	}

	if err := s.repo.Professor.Create(ctx, prof); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrProfessorExists
		}
		s.logger.Error("创建教授失败", zap.Error(err))
		return nil, err
	}

	resp := toProfessorResponse(prof)
	s.pub.Broadcast("professor-added", resp)
	s.logger.Info("教授已创建", zap.Uint("professor_id", prof.ID), zap.String("name", prof.Name))
	return &resp, nil
}

func (s *professorService) Update(ctx context.Context, id uint, req *dto.UpdateProfessorRequest) (*dto.ProfessorResponse, error) {
	prof, err := s.repo.Professor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfessorNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		prof.Name = *req.Name
	}
	if req.Subject != nil {
		prof.Subject = *req.Subject
	}
	if req.Cost != nil {
		prof.Cost = *req.Cost
	}
	if req.Avatar != nil {
		prof.Avatar = *req.Avatar
	}

	if err := s.repo.Professor.Update(ctx, prof); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrProfessorExists
		}
		s.logger.Error("更新教授失败", zap.Uint("professor_id", id), zap.Error(err))
		return nil, err
	}

	resp := toProfessorResponse(prof)
	s.pub.Broadcast("professor-updated", resp)
	return &resp, nil
}

func (s *professorService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Professor.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfessorNotFound
		}
		return err
	}

	// 在任何队伍阵容里的教授不可删除，历史积分不能凭空蒸发
	count, err := s.repo.Professor.CountTeamRefs(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrProfessorInTeams
	}

	if err := s.repo.Professor.Delete(ctx, id); err != nil {
		s.logger.Error("删除教授失败", zap.Uint("professor_id", id), zap.Error(err))
		return err
	}

	s.pub.Broadcast("professor-deleted", map[string]interface{}{"id": id})
	s.logger.Info("教授已删除", zap.Uint("professor_id", id))
	return nil
}

func toProfessorResponse(p *model.Professor) dto.ProfessorResponse {
	return dto.ProfessorResponse{
		ID:        p.ID,
		Name:      p.Name,
		Subject:   p.Subject,
		Cost:      p.Cost,
		Score:     p.Score,
		Avatar:    p.Avatar,
		CreatedAt: p.CreatedAt,
	}
}
