package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/simoamogit/school-timetable/backend/internal/model"
)

// SubstitutionRepository 代课记录数据访问接口
type SubstitutionRepository interface {
	Create(ctx context.Context, sub *model.Substitution) error
	ListByUser(ctx context.Context, userID uint) ([]model.Substitution, error)
	DeleteByID(ctx context.Context, userID, id uint) error
	// DeleteExpired 删除日期早于 today（YYYY-MM-DD）的所有代课记录
	DeleteExpired(ctx context.Context, userID uint, today string) error
}

type substitutionRepo struct {
	db *gorm.DB
}

// NewSubstitutionRepo 创建 SubstitutionRepository 实例
func NewSubstitutionRepo(db *gorm.DB) SubstitutionRepository {
	return &substitutionRepo{db: db}
}

func (r *substitutionRepo) Create(ctx context.Context, sub *model.Substitution) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *substitutionRepo) ListByUser(ctx context.Context, userID uint) ([]model.Substitution, error) {
	var subs []model.Substitution
	// id DESC 作为次序键，保证并列日期时列表顺序确定
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("sub_date DESC, id DESC").
		Find(&subs).Error
	return subs, err
}

func (r *substitutionRepo) DeleteByID(ctx context.Context, userID, id uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Substitution{}).Error
}

func (r *substitutionRepo) DeleteExpired(ctx context.Context, userID uint, today string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND sub_date < ?", userID, today).
		Delete(&model.Substitution{}).Error
}
