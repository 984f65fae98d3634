package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/simoamogit/school-timetable/backend/internal/model"
)

// SettingsRepository 用户设置数据访问接口
type SettingsRepository interface {
	GetByUser(ctx context.Context, userID uint) (*model.UserSettings, error)
	// UpdateGrid 写入上课日与每日课时数并标记初始设置完成
	UpdateGrid(ctx context.Context, userID uint, schoolDays []string, hoursPerDay int) error
	// Reset 回到初始设置状态并清空课表数据（保留主题/头像等外观配置）
	Reset(ctx context.Context, userID uint) error
	SetLocked(ctx context.Context, userID uint, locked bool) error
	SetTheme(ctx context.Context, userID uint, theme string) error
	SetHiddenHours(ctx context.Context, userID uint, hiddenHours []int) error
	SetAvatarColor(ctx context.Context, userID uint, color string) error
}

type settingsRepo struct {
	db *gorm.DB
}

// NewSettingsRepo 创建 SettingsRepository 实例
func NewSettingsRepo(db *gorm.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) GetByUser(ctx context.Context, userID uint) (*model.UserSettings, error) {
	var s model.UserSettings
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepo) UpdateGrid(ctx context.Context, userID uint, schoolDays []string, hoursPerDay int) error {
	return r.db.WithContext(ctx).
		Model(&model.UserSettings{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"school_days":    model.StringArray(schoolDays),
			"hours_per_day":  hoursPerDay,
			"setup_complete": true,
		}).Error
}

func (r *settingsRepo) Reset(ctx context.Context, userID uint) error {
	// 重置即推倒重来：设置回到未初始化，课表数据一并清空
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.UserSettings{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{
				"setup_complete": false,
				"school_days":    model.StringArray{},
				"hours_per_day":  model.DefaultHoursPerDay,
			}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.Slot{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.Note{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&model.Substitution{}).Error
	})
}

func (r *settingsRepo) SetLocked(ctx context.Context, userID uint, locked bool) error {
	return r.db.WithContext(ctx).
		Model(&model.UserSettings{}).
		Where("user_id = ?", userID).
		Update("locked", locked).Error
}

func (r *settingsRepo) SetTheme(ctx context.Context, userID uint, theme string) error {
	return r.db.WithContext(ctx).
		Model(&model.UserSettings{}).
		Where("user_id = ?", userID).
		Update("theme", theme).Error
}

func (r *settingsRepo) SetHiddenHours(ctx context.Context, userID uint, hiddenHours []int) error {
	return r.db.WithContext(ctx).
		Model(&model.UserSettings{}).
		Where("user_id = ?", userID).
		Update("hidden_hours", model.IntArray(hiddenHours)).Error
}

func (r *settingsRepo) SetAvatarColor(ctx context.Context, userID uint, color string) error {
	return r.db.WithContext(ctx).
		Model(&model.UserSettings{}).
		Where("user_id = ?", userID).
		Update("avatar_color", color).Error
}
