package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/simoamogit/school-timetable/backend/internal/model"
)

// DatasetRepository 整套数据的事务性批量替换（导入场景）
type DatasetRepository interface {
	// ReplaceAll 在单个事务中：覆盖设置并标记初始化完成，
	// 删除该用户现有的 slots/notes/substitutions，再批量插入新记录。
	// 任一步失败则整体回滚，导入前状态保持不变。
	ReplaceAll(
		ctx context.Context,
		userID uint,
		schoolDays []string,
		hoursPerDay int,
		slots []model.Slot,
		notes []model.Note,
		subs []model.Substitution,
	) error
}

type datasetRepo struct {
	db *gorm.DB
}

// NewDatasetRepo 创建 DatasetRepository 实例
func NewDatasetRepo(db *gorm.DB) DatasetRepository {
	return &datasetRepo{db: db}
}

func (r *datasetRepo) ReplaceAll(
	ctx context.Context,
	userID uint,
	schoolDays []string,
	hoursPerDay int,
	slots []model.Slot,
	notes []model.Note,
	subs []model.Substitution,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.UserSettings{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{
				"school_days":    model.StringArray(schoolDays),
				"hours_per_day":  hoursPerDay,
				"setup_complete": true,
			}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&model.Slot{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.Note{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.Substitution{}).Error; err != nil {
			return err
		}

		if len(slots) > 0 {
			if err := tx.Create(&slots).Error; err != nil {
				return err
			}
		}
		if len(notes) > 0 {
			if err := tx.Create(&notes).Error; err != nil {
				return err
			}
		}
		if len(subs) > 0 {
			if err := tx.Create(&subs).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
