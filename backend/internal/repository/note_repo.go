package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/simoamogit/school-timetable/backend/internal/model"
)

// NoteRepository 备注数据访问接口
type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	ListByUser(ctx context.Context, userID uint) ([]model.Note, error)
	// DeleteByID 删除并返回被删记录；记录不存在时返回 (nil, nil)
	DeleteByID(ctx context.Context, userID, id uint) (*model.Note, error)
	// DeleteExpired 删除日期早于 today（YYYY-MM-DD）的所有备注
	DeleteExpired(ctx context.Context, userID uint, today string) error
}

type noteRepo struct {
	db *gorm.DB
}

// NewNoteRepo 创建 NoteRepository 实例
func NewNoteRepo(db *gorm.DB) NoteRepository {
	return &noteRepo{db: db}
}

func (r *noteRepo) Create(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *noteRepo) ListByUser(ctx context.Context, userID uint) ([]model.Note, error) {
	var notes []model.Note
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notes).Error
	return notes, err
}

func (r *noteRepo) DeleteByID(ctx context.Context, userID, id uint) (*model.Note, error) {
	var note model.Note
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepo) DeleteExpired(ctx context.Context, userID uint, today string) error {
	// YYYY-MM-DD 字典序与时间序一致，直接字符串比较
	return r.db.WithContext(ctx).
		Where("user_id = ? AND note_date IS NOT NULL AND note_date < ?", userID, today).
		Delete(&model.Note{}).Error
}
