package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fantaprof/backend/internal/dto"
	"fantaprof/backend/internal/repository"
)

var ErrSelfDemotion = errors.New("不能修改自己的角色")

// UserService 用户管理业务接口（管理员侧）
type UserService interface {
	List(ctx context.Context, page, pageSize int) (*dto.UserListResponse, error)
	UpdateRole(ctx context.Context, operatorID, targetID uint, role string) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) List(ctx context.Context, page, pageSize int) (*dto.UserListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	users, total, err := s.repo.User.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}

	return &dto.UserListResponse{
		Users:    result,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *userService) UpdateRole(ctx context.Context, operatorID, targetID uint, role string) error {
	// 自降级会把系统锁在没有管理员的状态
	if operatorID == targetID {
		return ErrSelfDemotion
	}

	if err := s.repo.User.UpdateRole(ctx, targetID, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("修改用户角色失败", zap.Uint("target_id", targetID), zap.Error(err))
		return err
	}

	s.logger.Info("用户角色已修改",
		zap.Uint("operator_id", operatorID),
		zap.Uint("target_id", targetID),
		zap.String("role", role))
	return nil
}
