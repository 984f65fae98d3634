package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/simoamogit/school-timetable/backend/internal/model"
)

// ChangeLogRepository 变更日志数据访问接口（只追加）
type ChangeLogRepository interface {
	Create(ctx context.Context, entry *model.ChangeLogEntry) error
	// ListRecent 最近 limit 条，新的在前
	ListRecent(ctx context.Context, userID uint, limit int) ([]model.ChangeLogEntry, error)
}

type changeLogRepo struct {
	db *gorm.DB
}

// NewChangeLogRepo 创建 ChangeLogRepository 实例
func NewChangeLogRepo(db *gorm.DB) ChangeLogRepository {
	return &changeLogRepo{db: db}
}

func (r *changeLogRepo) Create(ctx context.Context, entry *model.ChangeLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *changeLogRepo) ListRecent(ctx context.Context, userID uint, limit int) ([]model.ChangeLogEntry, error) {
	var entries []model.ChangeLogEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
