package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/simoamogit/school-timetable/backend/internal/model"
)

// ShareRepository 分享令牌数据访问接口
type ShareRepository interface {
	GetByUser(ctx context.Context, userID uint) (*model.ShareToken, error)
	GetByToken(ctx context.Context, token string) (*model.ShareToken, error)
	Create(ctx context.Context, token *model.ShareToken) error
	DeleteByUser(ctx context.Context, userID uint) error
}

type shareRepo struct {
	db *gorm.DB
}

// NewShareRepo 创建 ShareRepository 实例
func NewShareRepo(db *gorm.DB) ShareRepository {
	return &shareRepo{db: db}
}

func (r *shareRepo) GetByUser(ctx context.Context, userID uint) (*model.ShareToken, error) {
	var t model.ShareToken
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *shareRepo) GetByToken(ctx context.Context, token string) (*model.ShareToken, error) {
	var t model.ShareToken
	err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *shareRepo) Create(ctx context.Context, token *model.ShareToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *shareRepo) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.ShareToken{}).Error
}
