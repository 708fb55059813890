package repository

import (
	"context"

	"gorm.io/gorm"

	"fantaprof/backend/internal/model"
)

// ProfessorRepository 教授数据访问接口
type ProfessorRepository interface {
	Create(ctx context.Context, prof *model.Professor) error
	GetByID(ctx context.Context, id uint) (*model.Professor, error)
	GetByIDs(ctx context.Context, ids []uint) ([]model.Professor, error)
	GetByName(ctx context.Context, name string) (*model.Professor, error)
	List(ctx context.Context) ([]model.Professor, error)
	Update(ctx context.Context, prof *model.Professor) error
	Delete(ctx context.Context, id uint) error
	CountTeamRefs(ctx context.Context, id uint) (int64, error)
	// ApplyScoreEvent 在同一事务内累加教授分数并追加审计行，
	// 返回更新后的教授。崩溃时两者要么都落盘要么都回滚。
	ApplyScoreEvent(ctx context.Context, profID uint, eventName string, points int, adminID uint) (*model.Professor, error)
}

// professorRepo ProfessorRepository 的 GORM 实现
type professorRepo struct {
	db *gorm.DB
}

// NewProfessorRepo 创建 ProfessorRepository 实例
func NewProfessorRepo(db *gorm.DB) ProfessorRepository {
	return &professorRepo{db: db}
}

func (r *professorRepo) Create(ctx context.Context, prof *model.Professor) error {
	return r.db.WithContext(ctx).Create(prof).Error
}

func (r *professorRepo) GetByID(ctx context.Context, id uint) (*model.Professor, error) {
	var prof model.Professor
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&prof).Error
	if err != nil {
		return nil, err
	}
	return &prof, nil
}

func (r *professorRepo) GetByIDs(ctx context.Context, ids []uint) ([]model.Professor, error) {
	var profs []model.Professor
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&profs).Error
	return profs, err
}

func (r *professorRepo) GetByName(ctx context.Context, name string) (*model.Professor, error) {
	var prof model.Professor
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&prof).Error
	if err != nil {
		return nil, err
	}
	return &prof, nil
}

func (r *professorRepo) List(ctx context.Context) ([]model.Professor, error) {
	var profs []model.Professor
	err := r.db.WithContext(ctx).
		Order("cost DESC, name ASC").
		Find(&profs).Error
	return profs, err
}

func (r *professorRepo) Update(ctx context.Context, prof *model.Professor) error {
	return r.db.WithContext(ctx).Save(prof).Error
}

func (r *professorRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Professor{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *professorRepo) CountTeamRefs(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.TeamProfessor{}).
		Where("professor_id = ?", id).
		Count(&count).Error
	return count, err
}

func (r *professorRepo) ApplyScoreEvent(ctx context.Context, profID uint, eventName string, points int, adminID uint) (*model.Professor, error) {
	var prof model.Professor

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Professor{}).
			Where("id = ?", profID).
			Update("score", gorm.Expr("score + ?", points))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		event := &model.ScoreEvent{
			ProfessorID: profID,
			EventName:   eventName,
			Points:      points,
			AdminID:     adminID,
		}
		if err := tx.Create(event).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", profID).First(&prof).Error
	})
	if err != nil {
		return nil, err
	}
	return &prof, nil
}
