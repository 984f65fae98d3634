package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/simoamogit/school-timetable/backend/internal/model"
)

// SlotRepository 课表格子数据访问接口
//
// (user_id, day, hour) 上有唯一约束：Upsert 依赖 ON CONFLICT 覆盖写，
// 并发写同一格子时由约束保证至多一行、后提交者生效。
type SlotRepository interface {
	Upsert(ctx context.Context, slot *model.Slot) error
	GetByCell(ctx context.Context, userID uint, cell Cell) (*model.Slot, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Slot, error)
	DeleteByCell(ctx context.Context, userID uint, cell Cell) error
	// SwapCells 在单个事务中交换两个格子的内容，返回交换前双方的记录
	// （任一方可能为 nil，表示该格子原本为空）。失败时整体回滚。
	SwapCells(ctx context.Context, userID uint, from, to Cell) (prevFrom, prevTo *model.Slot, err error)
}

type slotRepo struct {
	db *gorm.DB
}

// NewSlotRepo 创建 SlotRepository 实例
func NewSlotRepo(db *gorm.DB) SlotRepository {
	return &slotRepo{db: db}
}

// cellConflict (user_id, day, hour) 冲突时覆盖内容列
var cellConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "user_id"}, {Name: "day"}, {Name: "hour"}},
	DoUpdates: clause.AssignmentColumns([]string{"subject", "color", "slot_type"}),
}

func (r *slotRepo) Upsert(ctx context.Context, slot *model.Slot) error {
	return r.db.WithContext(ctx).
		Clauses(cellConflict).
		Create(slot).Error
}

func (r *slotRepo) GetByCell(ctx context.Context, userID uint, cell Cell) (*model.Slot, error) {
	var slot model.Slot
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND day = ? AND hour = ?", userID, cell.Day, cell.Hour).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepo) ListByUser(ctx context.Context, userID uint) ([]model.Slot, error) {
	var slots []model.Slot
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day ASC, hour ASC").
		Find(&slots).Error
	return slots, err
}

func (r *slotRepo) DeleteByCell(ctx context.Context, userID uint, cell Cell) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND day = ? AND hour = ?", userID, cell.Day, cell.Hour).
		Delete(&model.Slot{}).Error
}

func (r *slotRepo) SwapCells(ctx context.Context, userID uint, from, to Cell) (*model.Slot, *model.Slot, error) {
	var prevFrom, prevTo *model.Slot

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		read := func(cell Cell) (*model.Slot, error) {
			var s model.Slot
			err := tx.Where("user_id = ? AND day = ? AND hour = ?", userID, cell.Day, cell.Hour).
				First(&s).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			if err != nil {
				return nil, err
			}
			return &s, nil
		}
		write := func(cell Cell, content *model.Slot) error {
			if content == nil {
				// 对侧为空：清掉本格
				return tx.Where("user_id = ? AND day = ? AND hour = ?", userID, cell.Day, cell.Hour).
					Delete(&model.Slot{}).Error
			}
			return tx.Clauses(cellConflict).Create(&model.Slot{
				UserID:   userID,
				Day:      cell.Day,
				Hour:     cell.Hour,
				Subject:  content.Subject,
				Color:    content.Color,
				SlotType: content.SlotType,
			}).Error
		}

		var err error
		if prevFrom, err = read(from); err != nil {
			return err
		}
		if prevTo, err = read(to); err != nil {
			return err
		}
		if err := write(from, prevTo); err != nil {
			return err
		}
		return write(to, prevFrom)
	})
	if err != nil {
		return nil, nil, err
	}
	return prevFrom, prevTo, nil
}
